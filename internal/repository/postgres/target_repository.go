package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
)

type TargetRepository struct {
	db *sql.DB
}

func NewTargetRepository(db *sql.DB) target.Repository {
	return &TargetRepository{db: db}
}

const targetColumns = `id, name, url, check_kind, interval_sec, degraded_threshold_ms, status, enabled, public, slug, created_at, updated_at`

func (r *TargetRepository) Create(ctx context.Context, t *target.Target) error {
	query := `
		INSERT INTO targets (` + targetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.URL, t.CheckKind, t.IntervalSec, t.DegradedThresholdMs,
		t.Status, t.Enabled, t.Public, t.Slug,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.DatabaseError("failed to create target", err)
	}
	return nil
}

func (r *TargetRepository) GetByID(ctx context.Context, id string) (*target.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *TargetRepository) GetBySlug(ctx context.Context, slug string) (*target.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE slug = $1 AND public = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug, true))
}

func (r *TargetRepository) Update(ctx context.Context, t *target.Target) error {
	query := `
		UPDATE targets
		SET name = $1, url = $2, check_kind = $3, interval_sec = $4,
		    degraded_threshold_ms = $5, status = $6, enabled = $7,
		    public = $8, slug = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.URL, t.CheckKind, t.IntervalSec, t.DegradedThresholdMs,
		t.Status, t.Enabled, t.Public, t.Slug,
		t.UpdatedAt.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return errors.DatabaseError("failed to update target", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("target")
	}
	return nil
}

func (r *TargetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM targets WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("failed to delete target", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("target")
	}
	return nil
}

func (r *TargetRepository) List(ctx context.Context) ([]*target.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets ORDER BY created_at`
	return r.queryMany(ctx, query)
}

func (r *TargetRepository) ListEnabled(ctx context.Context) ([]*target.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE enabled = $1 ORDER BY created_at`
	return r.queryMany(ctx, query, true)
}

func (r *TargetRepository) SetStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE targets SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return errors.DatabaseError("failed to update target status", err)
	}
	return nil
}

func (r *TargetRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM targets WHERE slug = $1`, slug).Scan(&count)
	if err != nil {
		return false, errors.DatabaseError("failed to check slug", err)
	}
	return count > 0, nil
}

func (r *TargetRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*target.Target, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("failed to list targets", err)
	}
	defer rows.Close()

	var targets []*target.Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate targets", err)
	}
	return targets, nil
}

func (r *TargetRepository) scanOne(row *sql.Row) (*target.Target, error) {
	t, err := scanTarget(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("target")
	}
	return t, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTarget(row rowScanner) (*target.Target, error) {
	var t target.Target
	var createdAt, updatedAt string
	err := row.Scan(
		&t.ID, &t.Name, &t.URL, &t.CheckKind, &t.IntervalSec, &t.DegradedThresholdMs,
		&t.Status, &t.Enabled, &t.Public, &t.Slug, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to scan target", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, errors.DatabaseError("invalid created_at timestamp", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, errors.DatabaseError("invalid updated_at timestamp", err)
	}
	return &t, nil
}
