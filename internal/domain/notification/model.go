package notification

import "time"

// Rule is a subscription describing who to alert and when
type Rule struct {
	ID          string    `json:"id"`
	TargetID    *string   `json:"target_id"` // nil = applies to every target
	Kind        string    `json:"kind"`
	Destination string    `json:"destination"`
	TriggerOn   string    `json:"trigger_on"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transport kinds
const (
	KindEmail    = "email"
	KindWhatsApp = "whatsapp"
)

// Trigger conditions
const (
	TriggerDown     = "down"
	TriggerDegraded = "degraded"
	TriggerBoth     = "both"
)

// Matches reports whether the rule fires for the given bad status
func (r *Rule) Matches(status string) bool {
	return r.TriggerOn == TriggerBoth || r.TriggerOn == status
}

// LogEntry is the immutable audit record of one attempted send
type LogEntry struct {
	ID           string    `json:"id"`
	TargetID     string    `json:"target_id"`
	Destination  string    `json:"destination"`
	Message      string    `json:"message"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"error_message"`
	SentAt       time.Time `json:"sent_at"`
}
