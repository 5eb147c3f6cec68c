package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/felipin127/dashboard-analista-de-custos/internal/config"
	"github.com/felipin127/dashboard-analista-de-custos/internal/service/dashboard"
)

// Scheduler periodically re-reads the configured export sources.
type Scheduler struct {
	cron   *cron.Cron
	svc    *dashboard.Service
	cfg    config.RefreshConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RefreshConfig, svc *dashboard.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	return &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshSources)
	if err != nil {
		s.logger.Error("failed to schedule source refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshSources() {
	s.logger.Info("refreshing export sources")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.svc.Refresh(ctx); err != nil {
		s.logger.Error("scheduled refresh failed", zap.Error(err))
		return
	}

	s.logger.Info("export sources refreshed")
}
