package client

import (
	"context"
	"net/http"
)

// NotificationService handles notification rule and log API calls
type NotificationService struct {
	client *Client
}

// CreateRuleRequest represents a request to register a notification rule
type CreateRuleRequest struct {
	TargetID    *string `json:"target_id,omitempty"`
	Kind        string  `json:"kind"`
	Destination string  `json:"destination"`
	TriggerOn   string  `json:"trigger_on,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// ListRules retrieves all notification rules
func (s *NotificationService) ListRules(ctx context.Context) ([]NotificationRule, error) {
	var rules []NotificationRule
	err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/notifications/rules", nil, &rules)
	return rules, err
}

// CreateRule registers a new notification rule
func (s *NotificationService) CreateRule(ctx context.Context, req *CreateRuleRequest) (*NotificationRule, error) {
	var rule NotificationRule
	err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/notifications/rules", req, &rule)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteRule removes a notification rule
func (s *NotificationService) DeleteRule(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/notifications/rules/"+id, nil, nil)
}

// ListLogs retrieves the notification attempt history, newest first
func (s *NotificationService) ListLogs(ctx context.Context, opts *ListOptions) (*Page[NotificationLog], error) {
	var page Page[NotificationLog]
	err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/notifications/logs"+listQuery(opts), nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
