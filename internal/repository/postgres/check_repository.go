package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
)

type CheckRepository struct {
	db *sql.DB
}

func NewCheckRepository(db *sql.DB) check.Repository {
	return &CheckRepository{db: db}
}

func (r *CheckRepository) Append(ctx context.Context, c *check.Result) error {
	query := `
		INSERT INTO checks (id, target_id, status, response_time_ms, status_code, error_message, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TargetID, c.Status, c.ResponseTimeMs, c.StatusCode, c.ErrorMessage,
		c.CheckedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.DatabaseError("failed to append check result", err)
	}
	return nil
}

func (r *CheckRepository) MostRecent(ctx context.Context, targetID string) (*check.Result, error) {
	query := `
		SELECT id, target_id, status, response_time_ms, status_code, error_message, checked_at
		FROM checks WHERE target_id = $1
		ORDER BY checked_at DESC LIMIT 1
	`
	c, err := scanCheck(r.db.QueryRowContext(ctx, query, targetID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *CheckRepository) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*check.Result, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM checks WHERE target_id = $1`, targetID).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to count check results", err)
	}

	query := `
		SELECT id, target_id, status, response_time_ms, status_code, error_message, checked_at
		FROM checks WHERE target_id = $1
		ORDER BY checked_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, targetID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list check results", err)
	}
	defer rows.Close()

	var results []*check.Result
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("failed to iterate check results", err)
	}
	return results, total, nil
}

func scanCheck(row rowScanner) (*check.Result, error) {
	var c check.Result
	var checkedAt string
	err := row.Scan(&c.ID, &c.TargetID, &c.Status, &c.ResponseTimeMs, &c.StatusCode, &c.ErrorMessage, &checkedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to scan check result", err)
	}
	if c.CheckedAt, err = time.Parse(time.RFC3339Nano, checkedAt); err != nil {
		return nil, errors.DatabaseError("invalid checked_at timestamp", err)
	}
	return &c, nil
}
