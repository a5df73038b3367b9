package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateRule(ctx context.Context, rule *notification.Rule) error {
	query := `
		INSERT INTO notification_rules (id, target_id, kind, destination, trigger_on, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.TargetID, rule.Kind, rule.Destination, rule.TriggerOn,
		rule.Enabled, rule.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("failed to create notification rule", err)
	}
	return nil
}

func (r *NotificationRepository) GetRule(ctx context.Context, id string) (*notification.Rule, error) {
	query := `
		SELECT id, target_id, kind, destination, trigger_on, enabled, created_at
		FROM notification_rules WHERE id = $1
	`
	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("notification rule")
	}
	return rule, err
}

func (r *NotificationRepository) DeleteRule(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notification_rules WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("failed to delete notification rule", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("notification rule")
	}
	return nil
}

func (r *NotificationRepository) ListRules(ctx context.Context) ([]*notification.Rule, error) {
	query := `
		SELECT id, target_id, kind, destination, trigger_on, enabled, created_at
		FROM notification_rules ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("failed to list notification rules", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

func (r *NotificationRepository) MatchingRules(ctx context.Context, targetID string, status string) ([]*notification.Rule, error) {
	query := `
		SELECT id, target_id, kind, destination, trigger_on, enabled, created_at
		FROM notification_rules
		WHERE enabled = $1
		  AND (target_id IS NULL OR target_id = $2)
		  AND (trigger_on = $3 OR trigger_on = $4)
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, true, targetID, status, notification.TriggerBoth)
	if err != nil {
		return nil, errors.DatabaseError("failed to match notification rules", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

func (r *NotificationRepository) AppendLog(ctx context.Context, e *notification.LogEntry) error {
	query := `
		INSERT INTO notification_logs (id, target_id, destination, message, success, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TargetID, e.Destination, e.Message, e.Success, e.ErrorMessage,
		e.SentAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.DatabaseError("failed to append notification log", err)
	}
	return nil
}

func (r *NotificationRepository) LastSuccessfulSend(ctx context.Context, targetID string) (*time.Time, error) {
	query := `
		SELECT sent_at FROM notification_logs
		WHERE target_id = $1 AND success = $2
		ORDER BY sent_at DESC LIMIT 1
	`
	var sentAt string
	err := r.db.QueryRowContext(ctx, query, targetID, true).Scan(&sentAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to look up last notification", err)
	}
	t, err := time.Parse(time.RFC3339Nano, sentAt)
	if err != nil {
		return nil, errors.DatabaseError("invalid sent_at timestamp", err)
	}
	return &t, nil
}

func (r *NotificationRepository) ListLogs(ctx context.Context, limit, offset int) ([]*notification.LogEntry, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM notification_logs`).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to count notification logs", err)
	}

	query := `
		SELECT id, target_id, destination, message, success, error_message, sent_at
		FROM notification_logs
		ORDER BY sent_at DESC LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list notification logs", err)
	}
	defer rows.Close()

	var logs []*notification.LogEntry
	for rows.Next() {
		var e notification.LogEntry
		var sentAt string
		if err := rows.Scan(&e.ID, &e.TargetID, &e.Destination, &e.Message, &e.Success, &e.ErrorMessage, &sentAt); err != nil {
			return nil, 0, errors.DatabaseError("failed to scan notification log", err)
		}
		if e.SentAt, err = time.Parse(time.RFC3339Nano, sentAt); err != nil {
			return nil, 0, errors.DatabaseError("invalid sent_at timestamp", err)
		}
		logs = append(logs, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("failed to iterate notification logs", err)
	}
	return logs, total, nil
}

func collectRules(rows *sql.Rows) ([]*notification.Rule, error) {
	var rules []*notification.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate notification rules", err)
	}
	return rules, nil
}

func scanRule(row rowScanner) (*notification.Rule, error) {
	var rule notification.Rule
	var createdAt string
	err := row.Scan(&rule.ID, &rule.TargetID, &rule.Kind, &rule.Destination, &rule.TriggerOn, &rule.Enabled, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to scan notification rule", err)
	}
	if rule.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, errors.DatabaseError("invalid created_at timestamp", err)
	}
	return &rule, nil
}
