package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/domain/models"
	"github.com/mvuvi-group/pulse/internal/render"
	"github.com/mvuvi-group/pulse/internal/service/report"
	"github.com/mvuvi-group/pulse/internal/service/summary"
)

// ReportHandler exposes the newsletter draft over HTTP.
type ReportHandler struct {
	reports   *report.Service
	summaries *summary.Service
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reports *report.Service, summaries *summary.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, summaries: summaries, logger: logger}
}

// Get returns the current draft plus the derived group revenue alignment.
func (h *ReportHandler) Get(c *gin.Context) {
	snapshot := h.reports.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"report":           snapshot,
		"revenueAlignment": render.RevenueAlignment(snapshot),
	})
}

// UpdateRecord patches the status and narrative fields of one weekly record.
func (h *ReportHandler) UpdateRecord(c *gin.Context) {
	var patch report.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid record patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.reports.UpdateRecord(c.Param("entityId"), patch)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": updated})
}

// kpiUpdateRequest carries one KPI edit. Value is kept raw so non-numeric
// input can be coerced instead of rejected.
type kpiUpdateRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// UpdateKPI sets a single KPI field on one weekly record. Unparsable numeric
// input coerces to zero, matching the dashboard's form behavior.
func (h *ReportHandler) UpdateKPI(c *gin.Context) {
	var req kpiUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid kpi payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.reports.UpdateKPI(c.Param("entityId"), req.Field, coerceNumber(req.Value))
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": updated})
}

// UpdateCashflow replaces the whole cashflow block.
func (h *ReportHandler) UpdateCashflow(c *gin.Context) {
	var cashflow models.CashflowSummary
	if err := c.ShouldBindJSON(&cashflow); err != nil {
		h.logger.Warn("invalid cashflow payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.reports.UpdateCashflow(cashflow)})
}

type linesRequest struct {
	Lines []string `json:"lines"`
}

// UpdatePriorities replaces the priorities list.
func (h *ReportHandler) UpdatePriorities(c *gin.Context) {
	var req linesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid priorities payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.reports.UpdatePriorities(req.Lines)})
}

// UpdateSupportRequired replaces the support-required list.
func (h *ReportHandler) UpdateSupportRequired(c *gin.Context) {
	var req linesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid support payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.reports.UpdateSupportRequired(req.Lines)})
}

// UpdateESMS replaces the ESMS note lists.
func (h *ReportHandler) UpdateESMS(c *gin.Context) {
	var esms models.ESMS
	if err := c.ShouldBindJSON(&esms); err != nil {
		h.logger.Warn("invalid esms payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.reports.UpdateESMS(esms)})
}

type summaryRequest struct {
	Text string `json:"text"`
}

// SetSummary overwrites the executive summary manually.
func (h *ReportHandler) SetSummary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid summary payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.reports.SetExecutiveSummary(req.Text)})
}

// GenerateSummary asks the text-generation backend for a fresh executive
// overview. Failures leave the stored summary untouched.
func (h *ReportHandler) GenerateSummary(c *gin.Context) {
	text, err := h.summaries.Generate(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "API key is missing. Please ensure it is set in the environment."})
		case errors.Is(err, summary.ErrGenerationInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a generation is already in progress"})
		default:
			h.logger.Error("summary generation failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error generating summary. Please check your data and try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"executiveSummary": text})
}

// Export serves the markdown document for copy/export.
func (h *ReportHandler) Export(c *gin.Context) {
	doc := render.Markdown(h.reports.Snapshot(), models.Entities())
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}

// Preview serves the HTML rendering of the same markdown document.
func (h *ReportHandler) Preview(c *gin.Context) {
	html, err := render.HTML(h.reports.Snapshot(), models.Entities())
	if err != nil {
		h.logger.Error("preview rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *ReportHandler) respondUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrUnknownEntity):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity"})
	case errors.Is(err, report.ErrFieldNotApplicable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "field not applicable to entity"})
	default:
		h.logger.Error("update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
	}
}

// coerceNumber turns a raw JSON scalar into a float64. Numbers pass through,
// numeric strings parse, anything else (including NaN/Inf strings) becomes 0.
func coerceNumber(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}

	return 0
}
