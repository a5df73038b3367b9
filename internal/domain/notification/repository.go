package notification

import (
	"context"
	"time"
)

// Repository defines the interface for notification rule and log data access
type Repository interface {
	// CreateRule stores a new rule
	CreateRule(ctx context.Context, r *Rule) error

	// GetRule retrieves a rule by ID
	GetRule(ctx context.Context, id string) (*Rule, error)

	// DeleteRule deletes a rule
	DeleteRule(ctx context.Context, id string) error

	// ListRules retrieves every rule
	ListRules(ctx context.Context) ([]*Rule, error)

	// MatchingRules retrieves enabled rules applying to the target (its own
	// rules plus global ones) whose trigger matches the given bad status
	MatchingRules(ctx context.Context, targetID string, status string) ([]*Rule, error)

	// AppendLog stores an audit record for one send attempt
	AppendLog(ctx context.Context, e *LogEntry) error

	// LastSuccessfulSend retrieves the timestamp of the most recent
	// successful send for a target, nil when there is none
	LastSuccessfulSend(ctx context.Context, targetID string) (*time.Time, error)

	// ListLogs retrieves log entries, newest first
	ListLogs(ctx context.Context, limit, offset int) ([]*LogEntry, int64, error)
}
