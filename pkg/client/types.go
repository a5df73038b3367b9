package client

import "time"

// Target is an endpoint under monitoring
type Target struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	URL                 string    `json:"url"`
	CheckKind           string    `json:"check_kind"`
	IntervalSec         int       `json:"interval_sec"`
	DegradedThresholdMs int64     `json:"degraded_threshold_ms"`
	Status              string    `json:"status"`
	Enabled             bool      `json:"enabled"`
	Public              bool      `json:"public"`
	Slug                *string   `json:"slug,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CheckResult is one probe execution record
type CheckResult struct {
	ID             string    `json:"id"`
	TargetID       string    `json:"target_id"`
	Status         string    `json:"status"`
	ResponseTimeMs *int64    `json:"response_time_ms"`
	StatusCode     *int      `json:"status_code"`
	ErrorMessage   *string   `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at"`
}

// Incident is a span of degraded or down status
type Incident struct {
	ID         string     `json:"id"`
	TargetID   string     `json:"target_id"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	DurationMs *int64     `json:"duration_ms"`
}

// NotificationRule routes alerts to a destination
type NotificationRule struct {
	ID          string    `json:"id"`
	TargetID    *string   `json:"target_id,omitempty"`
	Kind        string    `json:"kind"`
	Destination string    `json:"destination"`
	TriggerOn   string    `json:"trigger_on"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationLog is one delivery attempt record
type NotificationLog struct {
	ID           string    `json:"id"`
	TargetID     string    `json:"target_id"`
	Destination  string    `json:"destination"`
	Message      string    `json:"message"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}

// Page wraps a paginated result set
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
