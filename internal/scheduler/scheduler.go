package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"greencalc/internal/config"
	"greencalc/internal/service/countries"
	"greencalc/internal/service/reporting"
)

// Scheduler manages the periodic background jobs: country-directory refresh
// and the optional history export.
type Scheduler struct {
	cron         *cron.Cron
	directory    *countries.Directory
	reportingSvc *reporting.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil reporting service
// disables the export job.
func NewScheduler(cfg config.Config, directory *countries.Directory, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:         c,
		directory:    directory,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers and starts the scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Countries.RefreshCron, s.refreshCountries); err != nil {
		s.logger.Error("failed to schedule country refresh", zap.Error(err))
	}

	if s.reportingSvc != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.exportHistory); err != nil {
			s.logger.Error("failed to schedule history export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshCountries() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// A failed refresh keeps the previous snapshot; the calculator stays
	// usable either way.
	if err := s.directory.Refresh(ctx); err != nil {
		s.logger.Warn("country directory refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) exportHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.reportingSvc.Export(ctx, time.Now()); err != nil {
		s.logger.Error("history export failed", zap.Error(err))
	} else {
		s.logger.Info("history export completed")
	}
}
