package incident

import "time"

// Incident is a contiguous span during which a target was not up.
// At most one incident per target may be open (ResolvedAt == nil) at a time.
type Incident struct {
	ID         string     `json:"id"`
	TargetID   string     `json:"target_id"`
	Status     string     `json:"status"` // down or degraded; may flip while open
	StartedAt  time.Time  `json:"started_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	DurationMs *int64     `json:"duration_ms"`
}

// Open reports whether the incident is still unresolved
func (i *Incident) Open() bool {
	return i.ResolvedAt == nil
}
