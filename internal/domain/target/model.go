package target

import "time"

// Target represents a monitored endpoint
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

// Check kinds
const (
	KindHTTP = "http"
	KindTCP  = "tcp"
	KindPing = "ping"
)

// Target statuses
const (
	StatusUnknown  = "unknown"
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDegraded = "degraded"
)

// MinIntervalSec is the smallest allowed poll interval
const MinIntervalSec = 10

// IsBad reports whether a status counts as unhealthy
func IsBad(status string) bool {
	return status == StatusDown || status == StatusDegraded
}
