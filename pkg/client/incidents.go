package client

import (
	"context"
	"fmt"
	"net/http"
)

// IncidentService handles incident history API calls
type IncidentService struct {
	client *Client
}

// List retrieves incidents across all targets, newest first
func (s *IncidentService) List(ctx context.Context, opts *ListOptions) (*Page[Incident], error) {
	var page Page[Incident]
	err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/incidents"+listQuery(opts), nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListByTarget retrieves the incident history of one target, newest first
func (s *IncidentService) ListByTarget(ctx context.Context, targetID string, opts *ListOptions) (*Page[Incident], error) {
	path := fmt.Sprintf("/api/v1/targets/%s/incidents%s", targetID, listQuery(opts))
	var page Page[Incident]
	err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
