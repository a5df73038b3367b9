package dto

import "time"

// CreateTargetRequest is the payload for registering a new target
type CreateTargetRequest struct {
	Name                string `json:"name" validate:"required,min=1,max=255"`
	URL                 string `json:"url" validate:"required,min=1,max=2048"`
	CheckKind           string `json:"check_kind" validate:"omitempty,oneof=http tcp ping"`
	IntervalSec         int    `json:"interval_sec" validate:"omitempty,gte=10"`
	DegradedThresholdMs int64  `json:"degraded_threshold_ms" validate:"omitempty,gt=0"`
	Enabled             *bool  `json:"enabled"`
	Public              bool   `json:"public"`
}

// UpdateTargetRequest carries partial target updates. Absent fields are left
// untouched.
type UpdateTargetRequest struct {
	Name                *string `json:"name" validate:"omitempty,min=1,max=255"`
	URL                 *string `json:"url" validate:"omitempty,min=1,max=2048"`
	CheckKind           *string `json:"check_kind" validate:"omitempty,oneof=http tcp ping"`
	IntervalSec         *int    `json:"interval_sec" validate:"omitempty,gte=10"`
	DegradedThresholdMs *int64  `json:"degraded_threshold_ms" validate:"omitempty,gt=0"`
	Enabled             *bool   `json:"enabled"`
	Public              *bool   `json:"public"`
}

// Updates flattens the request into the field map the service consumes
func (r *UpdateTargetRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.URL != nil {
		updates["url"] = *r.URL
	}
	if r.CheckKind != nil {
		updates["check_kind"] = *r.CheckKind
	}
	if r.IntervalSec != nil {
		updates["interval_sec"] = *r.IntervalSec
	}
	if r.DegradedThresholdMs != nil {
		updates["degraded_threshold_ms"] = *r.DegradedThresholdMs
	}
	if r.Enabled != nil {
		updates["enabled"] = *r.Enabled
	}
	if r.Public != nil {
		updates["public"] = *r.Public
	}
	return updates
}

// TargetDTO is the API shape of a target
type TargetDTO struct {
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
