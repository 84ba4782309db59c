package report

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

// ErrUnknownEntity indicates the entity identifier has no weekly record.
var ErrUnknownEntity = errors.New("unknown entity id")

// ErrFieldNotApplicable indicates a KPI field that does not exist on the
// record's metric block, or is not a KPI field at all.
var ErrFieldNotApplicable = errors.New("kpi field not applicable to entity")

// RecordPatch carries the editable non-KPI fields of a weekly record. Nil
// fields are left untouched.
type RecordPatch struct {
	Status    *models.Status `json:"status"`
	Win       *string        `json:"win"`
	Challenge *string        `json:"challenge"`
}

// Service owns the current newsletter draft. Every mutation builds a full
// replacement aggregate and swaps it in under the lock, so readers only ever
// see complete states.
type Service struct {
	mu      sync.RWMutex
	current models.NewsletterReport
	logger  *zap.Logger
}

// NewService wires a report service around the given seed draft.
func NewService(seed models.NewsletterReport, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{current: seed, logger: logger}
}

// Snapshot returns a deep copy of the current draft.
func (s *Service) Snapshot() models.NewsletterReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// StartWeek discards the current draft and seeds a fresh one for the ISO week
// containing the given instant.
func (s *Service) StartWeek(at time.Time) models.NewsletterReport {
	next := models.SeedReport(at)

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.logger.Info("new weekly draft started",
		zap.Int("week", next.WeekNumber),
		zap.Int("year", next.Year),
		zap.String("week_ending", next.WeekEnding))

	return next.Clone()
}

// UpdateRecord merges the patch into the weekly record for the entity. The
// record keeps its position and the rest of the collection is untouched.
// Returns ErrUnknownEntity when no record exists for the identifier.
func (s *Service) UpdateRecord(entityID string, patch RecordPatch) (models.NewsletterReport, error) {
	return s.mutateRecord(entityID, func(rec *models.WeeklyRecord) error {
		if patch.Status != nil {
			rec.Status = *patch.Status
		}
		if patch.Win != nil {
			rec.Operational.Win = *patch.Win
		}
		if patch.Challenge != nil {
			rec.Operational.Challenge = *patch.Challenge
		}
		return nil
	})
}

// UpdateKPI sets a single KPI field, leaving sibling fields untouched. The
// field must belong to the record's metric block; a farm record can never
// gain distribution fields and vice versa. Any finite value is accepted, no
// range checks.
func (s *Service) UpdateKPI(entityID, field string, value float64) (models.NewsletterReport, error) {
	return s.mutateRecord(entityID, func(rec *models.WeeklyRecord) error {
		switch field {
		case "revenue":
			rec.KPIs.Revenue = value
		case "revenueTarget":
			rec.KPIs.RevenueTarget = value
		case "production", "productionTarget", "mortality", "fcr":
			farm := rec.KPIs.Farm
			if farm == nil {
				return ErrFieldNotApplicable
			}
			switch field {
			case "production":
				farm.Production = value
			case "productionTarget":
				farm.ProductionTarget = value
			case "mortality":
				farm.Mortality = value
			case "fcr":
				farm.FCR = value
			}
		case "salesVolume", "salesTarget", "fulfillmentRate", "newCustomers":
			dist := rec.KPIs.Distribution
			if dist == nil {
				return ErrFieldNotApplicable
			}
			switch field {
			case "salesVolume":
				dist.SalesVolume = value
			case "salesTarget":
				dist.SalesTarget = value
			case "fulfillmentRate":
				dist.FulfillmentRate = value
			case "newCustomers":
				dist.NewCustomers = &value
			}
		default:
			return ErrFieldNotApplicable
		}
		return nil
	})
}

// UpdateCashflow replaces the whole cashflow block. Closing stays whatever
// the caller sent, it is never derived from the other figures.
func (s *Service) UpdateCashflow(cashflow models.CashflowSummary) models.NewsletterReport {
	return s.mutate(func(draft *models.NewsletterReport) {
		draft.Cashflow = cashflow
	})
}

// UpdatePriorities replaces the priorities list.
func (s *Service) UpdatePriorities(lines []string) models.NewsletterReport {
	return s.mutate(func(draft *models.NewsletterReport) {
		draft.Priorities = lines
	})
}

// UpdateSupportRequired replaces the support-required list.
func (s *Service) UpdateSupportRequired(lines []string) models.NewsletterReport {
	return s.mutate(func(draft *models.NewsletterReport) {
		draft.SupportRequired = lines
	})
}

// UpdateESMS replaces the ESMS note lists.
func (s *Service) UpdateESMS(esms models.ESMS) models.NewsletterReport {
	return s.mutate(func(draft *models.NewsletterReport) {
		draft.ESMS = esms
	})
}

// SetExecutiveSummary overwrites the executive summary verbatim.
func (s *Service) SetExecutiveSummary(text string) models.NewsletterReport {
	return s.mutate(func(draft *models.NewsletterReport) {
		draft.ExecutiveSummary = text
	})
}

func (s *Service) mutate(apply func(*models.NewsletterReport)) models.NewsletterReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.current.Clone()
	apply(&draft)
	s.current = draft

	return draft.Clone()
}

func (s *Service) mutateRecord(entityID string, apply func(*models.WeeklyRecord) error) (models.NewsletterReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.current.Clone()
	for i := range draft.Records {
		if draft.Records[i].EntityID != entityID {
			continue
		}
		if err := apply(&draft.Records[i]); err != nil {
			return models.NewsletterReport{}, err
		}
		s.current = draft
		return draft.Clone(), nil
	}

	return models.NewsletterReport{}, ErrUnknownEntity
}
