package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
)

// targetService implements target.Service
type targetService struct {
	repo   target.Repository
	logger *logger.Logger
}

// NewTargetService creates a new target service
func NewTargetService(repo target.Repository, log *logger.Logger) target.Service {
	return &targetService{
		repo:   repo,
		logger: log.With("service", "target"),
	}
}

func (s *targetService) Create(ctx context.Context, t *target.Target) error {
	if t.IntervalSec < target.MinIntervalSec {
		return errors.BadRequest(fmt.Sprintf("interval must be at least %d seconds", target.MinIntervalSec))
	}

	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.Status = target.StatusUnknown
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.Public {
		slug, err := s.uniqueSlug(ctx, t.Name)
		if err != nil {
			return err
		}
		t.Slug = &slug
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return errors.DatabaseError("failed to create target", err)
	}
	s.logger.WithFields(map[string]interface{}{
		"target_id": t.ID,
		"name":      t.Name,
		"kind":      t.CheckKind,
	}).Info("target created")
	return nil
}

// uniqueSlug derives a URL-safe slug from the name, suffixing a counter when
// the plain slug is taken
func (s *targetService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "status"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", errors.DatabaseError("failed to check slug", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *targetService) GetByID(ctx context.Context, id string) (*target.Target, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("target")
	}
	return t, nil
}

func (s *targetService) Update(ctx context.Context, id string, updates map[string]interface{}) (*target.Target, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("target")
	}

	for field, value := range updates {
		switch field {
		case "name":
			if v, ok := value.(string); ok && v != "" {
				t.Name = v
			}
		case "url":
			if v, ok := value.(string); ok && v != "" {
				t.URL = v
			}
		case "check_kind":
			if v, ok := value.(string); ok && v != "" {
				t.CheckKind = v
			}
		case "interval_sec":
			if v, ok := toInt(value); ok {
				if v < target.MinIntervalSec {
					return nil, errors.BadRequest(fmt.Sprintf("interval must be at least %d seconds", target.MinIntervalSec))
				}
				t.IntervalSec = v
			}
		case "degraded_threshold_ms":
			if v, ok := toInt64(value); ok {
				t.DegradedThresholdMs = v
			}
		case "enabled":
			if v, ok := value.(bool); ok {
				t.Enabled = v
			}
		case "public":
			if v, ok := value.(bool); ok {
				t.Public = v
				if v && t.Slug == nil {
					slug, err := s.uniqueSlug(ctx, t.Name)
					if err != nil {
						return nil, err
					}
					t.Slug = &slug
				}
			}
		}
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, errors.DatabaseError("failed to update target", err)
	}
	return t, nil
}

func (s *targetService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.NotFound("target")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.DatabaseError("failed to delete target", err)
	}
	s.logger.With("target_id", id).Info("target deleted")
	return nil
}

func (s *targetService) List(ctx context.Context) ([]*target.Target, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to list targets", err)
	}
	return list, nil
}

func (s *targetService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NotFound("target")
	}
	if t.Enabled == enabled {
		return nil
	}
	t.Enabled = enabled
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return errors.DatabaseError("failed to update target", err)
	}
	return nil
}

// toInt accepts the numeric shapes JSON decoding can hand us
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
