package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/config"
	"github.com/mvuvi-group/pulse/internal/service/report"
)

// Scheduler rolls the in-memory draft over to the next reporting week once
// the current one closes.
type Scheduler struct {
	cron       *cron.Cron
	reportsSvc *report.Service
	cfg        config.ReportingConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, reportsSvc *report.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:       cron.New(),
		reportsSvc: reportsSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the rollover job and starts the cron loop. The default
// schedule fires Friday at 20:00, after the reporting week has closed.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.rolloverWeek)
	if err != nil {
		s.logger.Error("failed to schedule weekly rollover", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) rolloverWeek() {
	// Seed the draft for the week after the one that just closed.
	next := s.reportsSvc.StartWeek(time.Now().AddDate(0, 0, 7))
	s.logger.Info("weekly draft rolled over",
		zap.Int("week", next.WeekNumber),
		zap.Int("year", next.Year))
}
