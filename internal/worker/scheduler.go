// Package worker drives the polling loop. A cron tick fires every few
// seconds, computes which enabled targets are due by their own interval, and
// runs their checks concurrently with at most one in-flight check per target.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/services"
)

// Scheduler polls enabled targets on their configured intervals
type Scheduler struct {
	tickSpec string
	targets  target.Repository
	checks   check.Repository
	monitor  *services.MonitorService
	limiter  *FlightLimiter
	logger   *logger.Logger

	cron *cron.Cron
	wg   sync.WaitGroup

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewScheduler creates a scheduler ticking on the given six-field cron spec
func NewScheduler(
	tickSpec string,
	targets target.Repository,
	checks check.Repository,
	monitor *services.MonitorService,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		tickSpec: tickSpec,
		targets:  targets,
		checks:   checks,
		monitor:  monitor,
		limiter:  NewFlightLimiter(),
		logger:   log.With("component", "scheduler"),
		lastRun:  make(map[string]time.Time),
	}
}

// Start begins ticking. It returns immediately; checks run on the cron's
// goroutine pool until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithSeconds())
	_, err := s.cron.AddFunc(s.tickSpec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.With("spec", s.tickSpec).Info("scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts ticking and waits for in-flight checks to finish
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// tick dispatches a check for every enabled target that is due. A listing
// failure skips the whole tick; the next one retries.
func (s *Scheduler) tick(ctx context.Context) {
	targets, err := s.targets.ListEnabled(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list targets, skipping tick")
		return
	}

	now := time.Now()
	for _, t := range targets {
		if !s.due(ctx, t, now) {
			continue
		}
		if !s.limiter.TryAcquire(t.ID) {
			s.logger.With("target_id", t.ID).Debug("check still in flight, skipping")
			continue
		}
		s.markRun(t.ID, now)

		s.wg.Add(1)
		go func(t *target.Target) {
			defer s.wg.Done()
			defer s.limiter.Release(t.ID)
			if err := s.monitor.CheckTarget(ctx, t); err != nil {
				s.logger.WithError(err).With("target_id", t.ID).Error("check failed")
			}
		}(t)
	}
}

// due reports whether at least the target's interval has elapsed since its
// last check. Targets never checked are due immediately.
func (s *Scheduler) due(ctx context.Context, t *target.Target, now time.Time) bool {
	last, ok := s.lastSeen(t.ID)
	if !ok {
		recent, err := s.checks.MostRecent(ctx, t.ID)
		if err != nil {
			s.logger.WithError(err).With("target_id", t.ID).Warn("failed to load last check")
			return true
		}
		if recent == nil {
			return true
		}
		last = recent.CheckedAt
		s.markRun(t.ID, last)
	}
	return now.Sub(last) >= time.Duration(t.IntervalSec)*time.Second
}

func (s *Scheduler) lastSeen(targetID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastRun[targetID]
	return last, ok
}

func (s *Scheduler) markRun(targetID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun[targetID] = at
}
