// Package scheduler runs the background cache warmer so dashboard
// requests land on a fresh cache instead of paying upstream latency.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"tradeagent/internal/service"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	cron   *cron.Cron
	market *service.MarketService
	ctx    context.Context
	log    *logrus.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *service.MarketService, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		market: svc,
		ctx:    ctx,
		log:    log,
	}
}

// Register registers the cache-warm task on the given cron expression.
func (s *Scheduler) Register(warmCron string) error {
	if _, err := s.cron.AddFunc(warmCron, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("component", "scheduler").Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.WithField("component", "scheduler").Info("scheduler stopped")
}

// RunWarmNow executes the warm task immediately (for startup warming).
func (s *Scheduler) RunWarmNow() {
	s.warmTask()
}

// warmTask refreshes the two payloads the dashboard always asks for.
// Failures are logged only; the next tick tries again.
func (s *Scheduler) warmTask() {
	log := s.log.WithField("component", "scheduler")
	log.Debug("running cache warm")

	if _, err := s.market.Stocks(s.ctx); err != nil {
		log.WithError(err).Warn("warm stocks failed")
	}
	// Empty ids hits the same cache key a default dashboard request uses.
	if _, err := s.market.Prices(s.ctx, "", "usd"); err != nil {
		log.WithError(err).Warn("warm prices failed")
	}
}
