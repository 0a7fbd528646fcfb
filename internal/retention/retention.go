// Package retention periodically deletes old analysis history.
package retention

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raysh454/jobcheck/internal/logging"
)

// Pruner is the store operation retention needs.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config controls history retention. A zero MaxAge keeps history forever.
type Config struct {
	MaxAge   time.Duration `json:"max_age" yaml:"max_age"`
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// DefaultConfig keeps thirty days and sweeps hourly.
func DefaultConfig() Config {
	return Config{MaxAge: 30 * 24 * time.Hour, Interval: time.Hour}
}

// Scheduler wraps robfig/cron and runs the prune job.
type Scheduler struct {
	cron   *cron.Cron
	store  Pruner
	cfg    Config
	logger logging.Logger
	now    func() time.Time
}

func NewScheduler(store Pruner, cfg Config, logger logging.Logger) (*Scheduler, error) {
	if store == nil {
		return nil, errors.New("retention: nil store")
	}
	if logger == nil {
		return nil, errors.New("retention: nil logger")
	}
	if cfg.MaxAge > 0 && cfg.Interval <= 0 {
		return nil, fmt.Errorf("retention: interval must be positive, got %s", cfg.Interval)
	}
	return &Scheduler{
		cron:   cron.New(),
		store:  store,
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "retention"}),
		now:    time.Now,
	}, nil
}

// Start registers the job and starts the scheduler. One sweep runs
// immediately. With MaxAge zero nothing is scheduled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.MaxAge <= 0 {
		s.logger.Info("history retention disabled")
		return nil
	}
	spec := "@every " + s.cfg.Interval.String()
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", spec, err)
	}
	s.cron.Start()
	s.logger.Info("retention started",
		logging.Field{Key: "spec", Value: spec},
		logging.Field{Key: "max_age", Value: s.cfg.MaxAge.String()})

	go s.RunOnce(ctx)
	return nil
}

// RunOnce deletes history older than MaxAge and returns how many rows went.
func (s *Scheduler) RunOnce(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.cfg.MaxAge)
	n, err := s.store.PruneBefore(ctx, cutoff)
	if err != nil {
		s.logger.Warn("retention sweep failed", logging.Field{Key: "error", Value: err.Error()})
		return 0
	}
	s.logger.Debug("retention sweep complete", logging.Field{Key: "removed", Value: n})
	return n
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("retention stopped")
}
