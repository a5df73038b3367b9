package dto

import "time"

// CreateRuleRequest is the payload for registering a notification rule
type CreateRuleRequest struct {
	TargetID    *string `json:"target_id" validate:"omitempty,uuid"`
	Kind        string  `json:"kind" validate:"required,oneof=email whatsapp"`
	Destination string  `json:"destination" validate:"required,min=1,max=255"`
	TriggerOn   string  `json:"trigger_on" validate:"omitempty,oneof=down degraded both"`
	Enabled     *bool   `json:"enabled"`
}

// RuleDTO is the API shape of a notification rule
type RuleDTO struct {
	ID          string    `json:"id"`
	TargetID    *string   `json:"target_id,omitempty"`
	Kind        string    `json:"kind"`
	Destination string    `json:"destination"`
	TriggerOn   string    `json:"trigger_on"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogEntryDTO is the API shape of a notification attempt
type LogEntryDTO struct {
	ID           string    `json:"id"`
	TargetID     string    `json:"target_id"`
	Destination  string    `json:"destination"`
	Message      string    `json:"message"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}
