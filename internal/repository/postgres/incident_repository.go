package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
)

type IncidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) incident.Repository {
	return &IncidentRepository{db: db}
}

const incidentColumns = `id, target_id, status, started_at, resolved_at, duration_ms`

func (r *IncidentRepository) Create(ctx context.Context, i *incident.Incident) error {
	query := `
		INSERT INTO incidents (` + incidentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		i.ID, i.TargetID, i.Status,
		i.StartedAt.Format(time.RFC3339Nano), formatTimePtr(i.ResolvedAt), i.DurationMs,
	)
	if err != nil {
		return errors.DatabaseError("failed to create incident", err)
	}
	return nil
}

func (r *IncidentRepository) Update(ctx context.Context, i *incident.Incident) error {
	query := `
		UPDATE incidents
		SET status = $1, resolved_at = $2, duration_ms = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		i.Status, formatTimePtr(i.ResolvedAt), i.DurationMs, i.ID,
	)
	if err != nil {
		return errors.DatabaseError("failed to update incident", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("incident")
	}
	return nil
}

func (r *IncidentRepository) OpenForTarget(ctx context.Context, targetID string) (*incident.Incident, error) {
	query := `
		SELECT ` + incidentColumns + ` FROM incidents
		WHERE target_id = $1 AND resolved_at IS NULL
		ORDER BY started_at DESC LIMIT 1
	`
	i, err := scanIncident(r.db.QueryRowContext(ctx, query, targetID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return i, err
}

func (r *IncidentRepository) ListOpenForTarget(ctx context.Context, targetID string) ([]*incident.Incident, error) {
	query := `
		SELECT ` + incidentColumns + ` FROM incidents
		WHERE target_id = $1 AND resolved_at IS NULL
		ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, errors.DatabaseError("failed to list open incidents", err)
	}
	defer rows.Close()
	return collectIncidents(rows)
}

func (r *IncidentRepository) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*incident.Incident, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM incidents WHERE target_id = $1`, targetID).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to count incidents", err)
	}

	query := `
		SELECT ` + incidentColumns + ` FROM incidents
		WHERE target_id = $1
		ORDER BY started_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, targetID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list incidents", err)
	}
	defer rows.Close()

	incidents, err := collectIncidents(rows)
	return incidents, total, err
}

func (r *IncidentRepository) List(ctx context.Context, limit, offset int) ([]*incident.Incident, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM incidents`).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to count incidents", err)
	}

	query := `
		SELECT ` + incidentColumns + ` FROM incidents
		ORDER BY started_at DESC LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("failed to list incidents", err)
	}
	defer rows.Close()

	incidents, err := collectIncidents(rows)
	return incidents, total, err
}

func (r *IncidentRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM incidents WHERE resolved_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("failed to count open incidents", err)
	}
	return count, nil
}

func collectIncidents(rows *sql.Rows) ([]*incident.Incident, error) {
	var incidents []*incident.Incident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, i)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate incidents", err)
	}
	return incidents, nil
}

func scanIncident(row rowScanner) (*incident.Incident, error) {
	var i incident.Incident
	var startedAt string
	var resolvedAt sql.NullString
	err := row.Scan(&i.ID, &i.TargetID, &i.Status, &startedAt, &resolvedAt, &i.DurationMs)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to scan incident", err)
	}
	if i.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, errors.DatabaseError("invalid started_at timestamp", err)
	}
	if resolvedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, resolvedAt.String)
		if err != nil {
			return nil, errors.DatabaseError("invalid resolved_at timestamp", err)
		}
		i.ResolvedAt = &t
	}
	return &i, nil
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}
