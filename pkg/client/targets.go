package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TargetService handles target-related API calls
type TargetService struct {
	client *Client
}

// CreateTargetRequest represents a request to register a target
type CreateTargetRequest struct {
	Name                string `json:"name"`
	URL                 string `json:"url"`
	CheckKind           string `json:"check_kind,omitempty"`
	IntervalSec         int    `json:"interval_sec,omitempty"`
	DegradedThresholdMs int64  `json:"degraded_threshold_ms,omitempty"`
	Enabled             *bool  `json:"enabled,omitempty"`
	Public              bool   `json:"public,omitempty"`
}

// UpdateTargetRequest represents a partial target update
type UpdateTargetRequest struct {
	Name                *string `json:"name,omitempty"`
	URL                 *string `json:"url,omitempty"`
	CheckKind           *string `json:"check_kind,omitempty"`
	IntervalSec         *int    `json:"interval_sec,omitempty"`
	DegradedThresholdMs *int64  `json:"degraded_threshold_ms,omitempty"`
	Enabled             *bool   `json:"enabled,omitempty"`
	Public              *bool   `json:"public,omitempty"`
}

// List retrieves all targets
func (s *TargetService) List(ctx context.Context) ([]Target, error) {
	var targets []Target
	err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/targets", nil, &targets)
	return targets, err
}

// Get retrieves a target by ID
func (s *TargetService) Get(ctx context.Context, id string) (*Target, error) {
	var target Target
	err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/targets/"+id, nil, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Create registers a new target
func (s *TargetService) Create(ctx context.Context, req *CreateTargetRequest) (*Target, error) {
	var target Target
	err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/targets", req, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Update applies partial updates to a target
func (s *TargetService) Update(ctx context.Context, id string, req *UpdateTargetRequest) (*Target, error) {
	var target Target
	err := s.client.doRequest(ctx, http.MethodPatch, "/api/v1/targets/"+id, req, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Delete removes a target and its history
func (s *TargetService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/targets/"+id, nil, nil)
}

// Enable resumes polling for a target
func (s *TargetService) Enable(ctx context.Context, id string) (*Target, error) {
	var target Target
	err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/targets/"+id+"/enable", nil, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Disable suspends polling for a target
func (s *TargetService) Disable(ctx context.Context, id string) (*Target, error) {
	var target Target
	err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/targets/"+id+"/disable", nil, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// CheckNow runs an immediate check and returns its result
func (s *TargetService) CheckNow(ctx context.Context, id string) (*CheckResult, error) {
	var result CheckResult
	err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/targets/"+id+"/check", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListChecks retrieves the check history of a target, newest first
func (s *TargetService) ListChecks(ctx context.Context, id string, opts *ListOptions) (*Page[CheckResult], error) {
	path := fmt.Sprintf("/api/v1/targets/%s/checks%s", id, listQuery(opts))
	var page Page[CheckResult]
	err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func listQuery(opts *ListOptions) string {
	if opts == nil {
		return ""
	}
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}
