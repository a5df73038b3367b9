package notification

import (
	"context"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// Service is the alert dispatch policy. It decides which rules fire for a
// target in a bad status and fans the alert out through the registered
// notifiers, recording every attempt.
type Service interface {
	// Dispatch sends an alert unconditionally. Used on a status transition
	// into down or degraded.
	Dispatch(ctx context.Context, t *target.Target, status string) error

	// DispatchThrottled sends an alert only when the most recent successful
	// send for the target is older than the throttle window. Used while a bad
	// status persists.
	DispatchThrottled(ctx context.Context, t *target.Target, status string) error

	// Rule administration, read-mostly for the alert pipeline.
	CreateRule(ctx context.Context, r *Rule) error
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]*Rule, error)
	ListLogs(ctx context.Context, limit, offset int) ([]*LogEntry, int64, error)
}
