package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/events"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/metrics"
	"github.com/SergioM098/Monitoring-proyect/internal/probe"
)

// MonitorService runs the check pipeline for a single target: execute the
// probe, persist the result, reconcile target status, incidents and alerts,
// and publish live events.
type MonitorService struct {
	registry  *probe.Registry
	targets   target.Repository
	checks    check.Repository
	incidents incident.Service
	alerts    notification.Service
	publisher events.Publisher
	logger    *logger.Logger
}

// NewMonitorService creates a new check pipeline
func NewMonitorService(
	registry *probe.Registry,
	targets target.Repository,
	checks check.Repository,
	incidents incident.Service,
	alerts notification.Service,
	publisher events.Publisher,
	log *logger.Logger,
) *MonitorService {
	return &MonitorService{
		registry:  registry,
		targets:   targets,
		checks:    checks,
		incidents: incidents,
		alerts:    alerts,
		publisher: publisher,
		logger:    log.With("service", "monitor"),
	}
}

// CheckTarget runs one probe cycle for the given target. The check record is
// the source of truth: when it cannot be persisted the cycle aborts and no
// downstream state is touched.
func (s *MonitorService) CheckTarget(ctx context.Context, t *target.Target) error {
	strategy := s.registry.For(t.CheckKind)

	started := time.Now()
	result := strategy.Execute(ctx, t)
	result.ID = uuid.New().String()
	result.TargetID = t.ID

	metrics.RecordCheck(t.CheckKind, result.Status, time.Since(started))

	if err := s.checks.Append(ctx, &result); err != nil {
		s.logger.WithError(err).With("target_id", t.ID).Error("failed to persist check result")
		return errors.DatabaseError("failed to persist check result", err)
	}
	s.publisher.Publish(events.EventCheckNew, &result)

	previous := t.Status
	if result.Status != previous {
		if err := s.targets.SetStatus(ctx, t.ID, result.Status); err != nil {
			s.logger.WithError(err).With("target_id", t.ID).Error("failed to update target status")
			return errors.DatabaseError("failed to update target status", err)
		}
		s.publisher.Publish(events.EventStatusChanged, map[string]interface{}{
			"target_id": t.ID,
			"previous":  previous,
			"status":    result.Status,
		})
		s.logger.WithFields(map[string]interface{}{
			"target_id": t.ID,
			"previous":  previous,
			"status":    result.Status,
		}).Info("target status changed")

		if err := s.incidents.Apply(ctx, t.ID, previous, result.Status); err != nil {
			s.logger.WithError(err).With("target_id", t.ID).Error("incident transition failed")
		}
		if target.IsBad(result.Status) {
			if err := s.alerts.Dispatch(ctx, t, result.Status); err != nil {
				s.logger.WithError(err).With("target_id", t.ID).Error("alert dispatch failed")
			}
		}
	} else if target.IsBad(result.Status) {
		// still bad, re-alert subject to the throttle
		if err := s.alerts.DispatchThrottled(ctx, t, result.Status); err != nil {
			s.logger.WithError(err).With("target_id", t.ID).Error("alert dispatch failed")
		}
	}

	if result.Status == target.StatusUp {
		if err := s.incidents.CloseOrphaned(ctx, t.ID); err != nil {
			s.logger.WithError(err).With("target_id", t.ID).Error("orphan incident sweep failed")
		}
	}
	return nil
}

// CheckByID loads a target and runs one probe cycle immediately, regardless
// of schedule. Used by the on-demand check endpoint.
func (s *MonitorService) CheckByID(ctx context.Context, id string) (*check.Result, error) {
	t, err := s.targets.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("target")
	}
	if err := s.CheckTarget(ctx, t); err != nil {
		return nil, err
	}
	return s.checks.MostRecent(ctx, id)
}
