package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/events"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/metrics"
)

// incidentService implements incident.Service
type incidentService struct {
	repo      incident.Repository
	publisher events.Publisher
	logger    *logger.Logger
}

// NewIncidentService creates a new incident lifecycle service
func NewIncidentService(repo incident.Repository, publisher events.Publisher, log *logger.Logger) incident.Service {
	return &incidentService{
		repo:      repo,
		publisher: publisher,
		logger:    log.With("service", "incident"),
	}
}

// Apply consumes one status transition for a target. A transition into a bad
// status opens an incident (or flips the severity of the one already open), a
// transition back to up closes whatever is open. Equal statuses are a no-op.
func (s *incidentService) Apply(ctx context.Context, targetID, previousStatus, newStatus string) error {
	if previousStatus == newStatus {
		return nil
	}

	wasBad := target.IsBad(previousStatus)
	isBad := target.IsBad(newStatus)

	switch {
	case !wasBad && isBad:
		return s.open(ctx, targetID, newStatus)
	case wasBad && !isBad:
		return s.closeOpen(ctx, targetID)
	case wasBad && isBad:
		return s.flipSeverity(ctx, targetID, newStatus)
	default:
		// unknown <-> up carries no incident consequence
		return nil
	}
}

func (s *incidentService) open(ctx context.Context, targetID, status string) error {
	existing, err := s.repo.OpenForTarget(ctx, targetID)
	if err != nil {
		return errors.DatabaseError("failed to look up open incident", err)
	}
	if existing != nil {
		// already open, keep the record but track the current severity
		return s.flipSeverity(ctx, targetID, status)
	}

	inc := &incident.Incident{
		ID:        uuid.New().String(),
		TargetID:  targetID,
		Status:    status,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, inc); err != nil {
		return errors.DatabaseError("failed to open incident", err)
	}

	metrics.RecordIncidentOpened()
	s.refreshOpenGauge(ctx)
	s.publisher.Publish(events.EventIncidentOpened, inc)
	s.logger.WithFields(map[string]interface{}{
		"target_id":   targetID,
		"incident_id": inc.ID,
		"status":      status,
	}).Info("incident opened")
	return nil
}

func (s *incidentService) closeOpen(ctx context.Context, targetID string) error {
	inc, err := s.repo.OpenForTarget(ctx, targetID)
	if err != nil {
		return errors.DatabaseError("failed to look up open incident", err)
	}
	if inc == nil {
		return nil
	}
	return s.resolve(ctx, inc)
}

func (s *incidentService) flipSeverity(ctx context.Context, targetID, status string) error {
	inc, err := s.repo.OpenForTarget(ctx, targetID)
	if err != nil {
		return errors.DatabaseError("failed to look up open incident", err)
	}
	if inc == nil {
		// bad-to-bad with nothing on record, open fresh
		inc = &incident.Incident{
			ID:        uuid.New().String(),
			TargetID:  targetID,
			Status:    status,
			StartedAt: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, inc); err != nil {
			return errors.DatabaseError("failed to open incident", err)
		}
		metrics.RecordIncidentOpened()
		s.refreshOpenGauge(ctx)
		s.publisher.Publish(events.EventIncidentOpened, inc)
		return nil
	}
	if inc.Status == status {
		return nil
	}
	inc.Status = status
	if err := s.repo.Update(ctx, inc); err != nil {
		return errors.DatabaseError("failed to update incident severity", err)
	}
	s.logger.WithFields(map[string]interface{}{
		"target_id":   targetID,
		"incident_id": inc.ID,
		"status":      status,
	}).Info("incident severity changed")
	return nil
}

// resolve stamps the end of an incident and records its exact duration
func (s *incidentService) resolve(ctx context.Context, inc *incident.Incident) error {
	now := time.Now().UTC()
	duration := now.Sub(inc.StartedAt).Milliseconds()
	inc.ResolvedAt = &now
	inc.DurationMs = &duration
	if err := s.repo.Update(ctx, inc); err != nil {
		return errors.DatabaseError("failed to resolve incident", err)
	}

	metrics.RecordIncidentResolved()
	s.refreshOpenGauge(ctx)
	s.publisher.Publish(events.EventIncidentResolved, inc)
	s.logger.WithFields(map[string]interface{}{
		"target_id":   inc.TargetID,
		"incident_id": inc.ID,
		"duration_ms": duration,
	}).Info("incident resolved")
	return nil
}

// CloseOrphaned resolves every incident still open for a target. A healthy
// target should never have open incidents, so anything found here is leftover
// state from a missed transition.
func (s *incidentService) CloseOrphaned(ctx context.Context, targetID string) error {
	open, err := s.repo.ListOpenForTarget(ctx, targetID)
	if err != nil {
		return errors.DatabaseError("failed to list open incidents", err)
	}
	for _, inc := range open {
		if err := s.resolve(ctx, inc); err != nil {
			return err
		}
	}
	return nil
}

func (s *incidentService) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*incident.Incident, int64, error) {
	list, total, err := s.repo.ListByTarget(ctx, targetID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list incidents", err)
	}
	return list, total, nil
}

func (s *incidentService) List(ctx context.Context, limit, offset int) ([]*incident.Incident, int64, error) {
	list, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list incidents", err)
	}
	return list, total, nil
}

func (s *incidentService) refreshOpenGauge(ctx context.Context) {
	count, err := s.repo.CountOpen(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to count open incidents")
		return
	}
	metrics.SetOpenIncidents(float64(count))
}
