package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

// GFM for the operations snapshot table.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the markdown export to HTML for the on-screen preview. Both
// outputs share the same serialization path, so they cannot disagree.
func HTML(report models.NewsletterReport, entities []models.Entity) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(report, entities)), &buf); err != nil {
		return "", fmt.Errorf("render preview html: %w", err)
	}
	return buf.String(), nil
}
