package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/felipin127/dashboard-analista-de-custos/internal/config"
	"github.com/felipin127/dashboard-analista-de-custos/internal/ingest"
	"github.com/felipin127/dashboard-analista-de-custos/internal/scheduler"
	"github.com/felipin127/dashboard-analista-de-custos/internal/server/handlers"
	"github.com/felipin127/dashboard-analista-de-custos/internal/server/router"
	"github.com/felipin127/dashboard-analista-de-custos/internal/service/dashboard"
	"github.com/felipin127/dashboard-analista-de-custos/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Mode))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var sheetSource dashboard.RangeReader
	if cfg.UsesSheets() {
		src, err := ingest.NewSheetSource(context.Background(), cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, baseLogger.Named("ingest.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets source", zap.Error(err))
		}
		sheetSource = src
	}

	fetcher := ingest.NewRemoteFetcher(cfg.Export.Token)

	svc := dashboard.NewService(cfg.Sources, sheetSource, fetcher, baseLogger.Named("svc.dashboard"))

	// Load whatever is configured up front. A bad export should not keep the
	// upload endpoints from coming up.
	initCtx, cancelInit := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := svc.Refresh(initCtx); err != nil {
		baseLogger.Warn("initial source load incomplete", zap.Error(err))
	}
	cancelInit()

	handler := handlers.NewDashboardHandler(svc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(handler, baseLogger.Named("router"))

	if cfg.Refresh.Enabled {
		sched := scheduler.NewScheduler(cfg.Refresh, svc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
