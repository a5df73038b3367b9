package check

import "time"

// Result is the immutable record of one probe execution
type Result struct {
	ID             string    `json:"id"`
	TargetID       string    `json:"target_id"`
	Status         string    `json:"status"`
	ResponseTimeMs *int64    `json:"response_time_ms"` // nil when the probe could not establish timing
	StatusCode     *int      `json:"status_code"`      // HTTP only
	ErrorMessage   *string   `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at"`
}
