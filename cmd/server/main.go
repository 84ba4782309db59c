package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/config"
	"github.com/mvuvi-group/pulse/internal/domain/models"
	"github.com/mvuvi-group/pulse/internal/scheduler"
	"github.com/mvuvi-group/pulse/internal/server/handlers"
	"github.com/mvuvi-group/pulse/internal/server/router"
	reportsvc "github.com/mvuvi-group/pulse/internal/service/report"
	summarysvc "github.com/mvuvi-group/pulse/internal/service/summary"
	"github.com/mvuvi-group/pulse/pkg/clients/gemini"
	"github.com/mvuvi-group/pulse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	reportSvc := reportsvc.NewService(models.SeedReport(time.Now()), baseLogger.Named("svc.report"))

	var summarizer summarysvc.Summarizer
	if cfg.Gemini.APIKey != "" {
		summarizer = gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)
		baseLogger.Info("gemini client enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		baseLogger.Warn("gemini api key missing, summary generation disabled")
	}

	summarySvc := summarysvc.NewService(reportSvc, summarizer, baseLogger.Named("svc.summary"))
	reportHandler := handlers.NewReportHandler(reportSvc, summarySvc, baseLogger.Named("handlers.report"))
	engine := router.New(reportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
