package summary

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

// ErrNotConfigured indicates no generation backend is available, typically
// because the API key is missing. Detected before any call is issued.
var ErrNotConfigured = errors.New("summary generation not configured: api key missing")

// ErrGenerationInFlight indicates a generation request arrived while another
// one was still outstanding. Such requests are rejected rather than queued.
var ErrGenerationInFlight = errors.New("summary generation already in progress")

const promptTemplate = `
Act as a world-class Executive Operations Director for "Mvuvi Group".
Your task is to write a cohesive "Executive Overview" (approx 150-200 words) for the weekly newsletter.
Summarize the performance across the 3 fish farms (Chicoa in Mozambique, Kariba Harvest in Zambia, Lake Harvest in Zimbabwe) and 2 distribution hubs (Lake Harvest Distribution in Zimbabwe, Pende in Malawi).

Focus on:
1. Consolidated group revenue vs targets.
2. Operational health (production levels, logistics).
3. Critical financial notes (cash position, receivables).
4. ESG/Safety highlights.

Tone: Objective, professional, and strategic. Use one solid paragraph or two short ones. No fluff.
`

// Summarizer is the narrow boundary to the text-generation backend.
type Summarizer interface {
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}

// ReportStore is the slice of the report service the generator needs.
type ReportStore interface {
	Snapshot() models.NewsletterReport
	SetExecutiveSummary(text string) models.NewsletterReport
}

// Service orchestrates executive summary generation: it digests the current
// weekly records into a prompt, calls the backend, and stores the returned
// text verbatim. Any failure leaves the stored summary untouched.
type Service struct {
	store  ReportStore
	client Summarizer
	logger *zap.Logger

	mu         sync.Mutex
	generating bool
}

// NewService wires a summary service. A nil client is allowed and turns every
// Generate call into ErrNotConfigured.
func NewService(store ReportStore, client Summarizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, client: client, logger: logger}
}

// Generate produces a new executive summary from the current draft. At most
// one generation runs at a time; overlapping requests are rejected.
func (s *Service) Generate(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return "", ErrGenerationInFlight
	}
	s.generating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	snapshot := s.store.Snapshot()
	prompt := BuildPrompt(snapshot)

	text, err := s.client.GenerateSummary(ctx, prompt)
	if err != nil {
		s.logger.Error("summary generation failed", zap.Error(err))
		return "", fmt.Errorf("generate executive summary: %w", err)
	}

	s.store.SetExecutiveSummary(text)
	s.logger.Info("executive summary updated", zap.Int("length", len(text)))

	return text, nil
}

// BuildPrompt assembles the instruction template with a one-line digest per
// weekly record, in stored order. Deterministic for a given report value.
func BuildPrompt(report models.NewsletterReport) string {
	lines := make([]string, 0, len(report.Records))
	for _, rec := range report.Records {
		name := rec.EntityID
		if entity, ok := models.EntityByID(rec.EntityID); ok {
			name = entity.Name
		}
		lines = append(lines, fmt.Sprintf("%s: Revenue $%s vs $%s. Win: %s. Challenge: %s",
			name,
			amount(rec.KPIs.Revenue),
			amount(rec.KPIs.RevenueTarget),
			rec.Operational.Win,
			rec.Operational.Challenge))
	}

	return promptTemplate + "\n\nRAW WEEKLY DATA:\n" + strings.Join(lines, "\n")
}

func amount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
