package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/metrics"
)

// alertService implements notification.Service
type alertService struct {
	repo      notification.Repository
	notifiers map[string]notification.Notifier
	throttle  time.Duration
	logger    *logger.Logger
}

// NewAlertService creates the alert dispatch service. Each notifier covers
// one transport kind; rules referencing a kind with no notifier fail softly
// and are recorded as failed attempts.
func NewAlertService(repo notification.Repository, notifiers []notification.Notifier, throttle time.Duration, log *logger.Logger) notification.Service {
	byKind := make(map[string]notification.Notifier, len(notifiers))
	for _, n := range notifiers {
		byKind[n.Kind()] = n
	}
	return &alertService{
		repo:      repo,
		notifiers: byKind,
		throttle:  throttle,
		logger:    log.With("service", "alert"),
	}
}

// Dispatch fans the alert out to every matching rule. Rules fail
// independently; a broken transport never blocks the others.
func (s *alertService) Dispatch(ctx context.Context, t *target.Target, status string) error {
	rules, err := s.repo.MatchingRules(ctx, t.ID, status)
	if err != nil {
		return errors.DatabaseError("failed to match notification rules", err)
	}
	if len(rules) == 0 {
		return nil
	}

	subject, body := composeAlert(t, status)
	for _, rule := range rules {
		s.deliver(ctx, t, rule, subject, body)
	}
	return nil
}

// DispatchThrottled suppresses the send when the target was already alerted
// on within the throttle window. Only successful sends arm the throttle.
func (s *alertService) DispatchThrottled(ctx context.Context, t *target.Target, status string) error {
	last, err := s.repo.LastSuccessfulSend(ctx, t.ID)
	if err != nil {
		return errors.DatabaseError("failed to look up last notification", err)
	}
	if last != nil && time.Since(*last) < s.throttle {
		s.logger.WithFields(map[string]interface{}{
			"target_id": t.ID,
			"last_sent": last.Format(time.RFC3339),
		}).Debug("alert throttled")
		return nil
	}
	return s.Dispatch(ctx, t, status)
}

// deliver runs one rule end to end and records the attempt, success or not
func (s *alertService) deliver(ctx context.Context, t *target.Target, rule *notification.Rule, subject, body string) {
	entry := &notification.LogEntry{
		ID:          uuid.New().String(),
		TargetID:    t.ID,
		Destination: rule.Destination,
		Message:     subject,
		SentAt:      time.Now().UTC(),
	}

	err := s.send(ctx, rule, subject, body)
	if err != nil {
		msg := err.Error()
		entry.ErrorMessage = &msg
		metrics.RecordNotification(rule.Kind, "failed")
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"target_id":   t.ID,
			"rule_id":     rule.ID,
			"kind":        rule.Kind,
			"destination": rule.Destination,
		}).Warn("notification failed")
	} else {
		entry.Success = true
		metrics.RecordNotification(rule.Kind, "sent")
		s.logger.WithFields(map[string]interface{}{
			"target_id":   t.ID,
			"kind":        rule.Kind,
			"destination": rule.Destination,
		}).Info("notification sent")
	}

	if logErr := s.repo.AppendLog(ctx, entry); logErr != nil {
		s.logger.WithError(logErr).Error("failed to record notification attempt")
	}
}

func (s *alertService) send(ctx context.Context, rule *notification.Rule, subject, body string) error {
	n, ok := s.notifiers[rule.Kind]
	if !ok {
		return fmt.Errorf("no notifier registered for kind %q", rule.Kind)
	}
	if !n.IsReady() {
		return fmt.Errorf("%s notifier is not configured", rule.Kind)
	}
	return n.Send(ctx, rule.Destination, subject, body)
}

func composeAlert(t *target.Target, status string) (subject, body string) {
	subject = fmt.Sprintf("[%s] %s is %s", strings.ToUpper(status), t.Name, status)
	body = fmt.Sprintf("Monitor alert for %s\n\nTarget: %s\nStatus: %s\nTime: %s\n",
		t.Name, t.URL, status, time.Now().UTC().Format(time.RFC3339))
	return subject, body
}

func (s *alertService) CreateRule(ctx context.Context, r *notification.Rule) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return errors.DatabaseError("failed to create notification rule", err)
	}
	return nil
}

func (s *alertService) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.repo.GetRule(ctx, id); err != nil {
		return errors.NotFound("notification rule")
	}
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return errors.DatabaseError("failed to delete notification rule", err)
	}
	return nil
}

func (s *alertService) ListRules(ctx context.Context) ([]*notification.Rule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to list notification rules", err)
	}
	return rules, nil
}

func (s *alertService) ListLogs(ctx context.Context, limit, offset int) ([]*notification.LogEntry, int64, error) {
	logs, total, err := s.repo.ListLogs(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list notification logs", err)
	}
	return logs, total, nil
}
