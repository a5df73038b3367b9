package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// MockTargetRepository is an in-memory implementation of target.Repository
type MockTargetRepository struct {
	mu      sync.Mutex
	Targets map[string]*target.Target

	CreateError error
	ListError   error
}

func NewMockTargetRepository() *MockTargetRepository {
	return &MockTargetRepository{Targets: make(map[string]*target.Target)}
}

func (m *MockTargetRepository) Create(ctx context.Context, t *target.Target) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.Targets[t.ID] = &cp
	return nil
}

func (m *MockTargetRepository) GetByID(ctx context.Context, id string) (*target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Targets[id]
	if !ok {
		return nil, fmt.Errorf("target not found")
	}
	cp := *t
	return &cp, nil
}

func (m *MockTargetRepository) GetBySlug(ctx context.Context, slug string) (*target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Targets {
		if t.Slug != nil && *t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("target not found")
}

func (m *MockTargetRepository) Update(ctx context.Context, t *target.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Targets[t.ID]; !ok {
		return fmt.Errorf("target not found")
	}
	cp := *t
	m.Targets[t.ID] = &cp
	return nil
}

func (m *MockTargetRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Targets, id)
	return nil
}

func (m *MockTargetRepository) List(ctx context.Context) ([]*target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*target.Target
	for _, t := range m.Targets {
		cp := *t
		result = append(result, &cp)
	}
	return result, nil
}

func (m *MockTargetRepository) ListEnabled(ctx context.Context) ([]*target.Target, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*target.Target
	for _, t := range m.Targets {
		if t.Enabled {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockTargetRepository) SetStatus(ctx context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Targets[id]
	if !ok {
		return fmt.Errorf("target not found")
	}
	t.Status = status
	return nil
}

func (m *MockTargetRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Targets {
		if t.Slug != nil && *t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// MockCheckRepository is an in-memory implementation of check.Repository
type MockCheckRepository struct {
	mu      sync.Mutex
	Results []*check.Result

	AppendError error
}

func NewMockCheckRepository() *MockCheckRepository {
	return &MockCheckRepository{}
}

func (m *MockCheckRepository) Append(ctx context.Context, r *check.Result) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.Results = append(m.Results, &cp)
	return nil
}

func (m *MockCheckRepository) MostRecent(ctx context.Context, targetID string) (*check.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *check.Result
	for _, r := range m.Results {
		if r.TargetID != targetID {
			continue
		}
		if latest == nil || r.CheckedAt.After(latest.CheckedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *MockCheckRepository) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*check.Result, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*check.Result
	for _, r := range m.Results {
		if r.TargetID == targetID {
			cp := *r
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CheckedAt.After(matched[j].CheckedAt) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// MockIncidentRepository is an in-memory implementation of incident.Repository
type MockIncidentRepository struct {
	mu        sync.Mutex
	Incidents map[string]*incident.Incident

	CreateError error
	UpdateError error
}

func NewMockIncidentRepository() *MockIncidentRepository {
	return &MockIncidentRepository{Incidents: make(map[string]*incident.Incident)}
}

func (m *MockIncidentRepository) Create(ctx context.Context, i *incident.Incident) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *i
	m.Incidents[i.ID] = &cp
	return nil
}

func (m *MockIncidentRepository) Update(ctx context.Context, i *incident.Incident) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Incidents[i.ID]; !ok {
		return fmt.Errorf("incident not found")
	}
	cp := *i
	m.Incidents[i.ID] = &cp
	return nil
}

func (m *MockIncidentRepository) OpenForTarget(ctx context.Context, targetID string) (*incident.Incident, error) {
	open, err := m.ListOpenForTarget(ctx, targetID)
	if err != nil || len(open) == 0 {
		return nil, err
	}
	return open[0], nil
}

func (m *MockIncidentRepository) ListOpenForTarget(ctx context.Context, targetID string) ([]*incident.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*incident.Incident
	for _, i := range m.Incidents {
		if i.TargetID == targetID && i.ResolvedAt == nil {
			cp := *i
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].StartedAt.After(result[b].StartedAt) })
	return result, nil
}

func (m *MockIncidentRepository) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*incident.Incident, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*incident.Incident
	for _, i := range m.Incidents {
		if i.TargetID == targetID {
			cp := *i
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].StartedAt.After(result[b].StartedAt) })
	return paginateIncidents(result, limit, offset)
}

func (m *MockIncidentRepository) List(ctx context.Context, limit, offset int) ([]*incident.Incident, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*incident.Incident
	for _, i := range m.Incidents {
		cp := *i
		result = append(result, &cp)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].StartedAt.After(result[b].StartedAt) })
	return paginateIncidents(result, limit, offset)
}

func (m *MockIncidentRepository) CountOpen(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, i := range m.Incidents {
		if i.ResolvedAt == nil {
			n++
		}
	}
	return n, nil
}

func paginateIncidents(in []*incident.Incident, limit, offset int) ([]*incident.Incident, int64, error) {
	total := int64(len(in))
	if offset >= len(in) {
		return nil, total, nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in, total, nil
}

// MockNotificationRepository is an in-memory implementation of
// notification.Repository
type MockNotificationRepository struct {
	mu    sync.Mutex
	Rules map[string]*notification.Rule
	Logs  []*notification.LogEntry

	AppendLogError error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{Rules: make(map[string]*notification.Rule)}
}

func (m *MockNotificationRepository) CreateRule(ctx context.Context, r *notification.Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.Rules[r.ID] = &cp
	return nil
}

func (m *MockNotificationRepository) GetRule(ctx context.Context, id string) (*notification.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Rules[id]
	if !ok {
		return nil, fmt.Errorf("rule not found")
	}
	cp := *r
	return &cp, nil
}

func (m *MockNotificationRepository) DeleteRule(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rules, id)
	return nil
}

func (m *MockNotificationRepository) ListRules(ctx context.Context) ([]*notification.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*notification.Rule
	for _, r := range m.Rules {
		cp := *r
		result = append(result, &cp)
	}
	return result, nil
}

func (m *MockNotificationRepository) MatchingRules(ctx context.Context, targetID string, status string) ([]*notification.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*notification.Rule
	for _, r := range m.Rules {
		if !r.Enabled || !r.Matches(status) {
			continue
		}
		if r.TargetID != nil && *r.TargetID != targetID {
			continue
		}
		cp := *r
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockNotificationRepository) AppendLog(ctx context.Context, e *notification.LogEntry) error {
	if m.AppendLogError != nil {
		return m.AppendLogError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.Logs = append(m.Logs, &cp)
	return nil
}

func (m *MockNotificationRepository) LastSuccessfulSend(ctx context.Context, targetID string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	for _, e := range m.Logs {
		if e.TargetID != targetID || !e.Success {
			continue
		}
		if latest == nil || e.SentAt.After(*latest) {
			t := e.SentAt
			latest = &t
		}
	}
	return latest, nil
}

func (m *MockNotificationRepository) ListLogs(ctx context.Context, limit, offset int) ([]*notification.LogEntry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*notification.LogEntry, 0, len(m.Logs))
	for _, e := range m.Logs {
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SentAt.After(result[j].SentAt) })
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

// MockNotifier records sends for one transport kind
type MockNotifier struct {
	mu        sync.Mutex
	kind      string
	Ready     bool
	SendError error
	Sent      []MockSend
}

// MockSend captures one Send invocation
type MockSend struct {
	Destination string
	Subject     string
	Body        string
}

func NewMockNotifier(kind string) *MockNotifier {
	return &MockNotifier{kind: kind, Ready: true}
}

func (m *MockNotifier) Kind() string  { return m.kind }
func (m *MockNotifier) IsReady() bool { return m.Ready }

func (m *MockNotifier) Send(ctx context.Context, destination, subject, body string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, MockSend{Destination: destination, Subject: subject, Body: body})
	return nil
}

// SentCount returns how many sends succeeded
func (m *MockNotifier) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	Events []MockEvent
}

// MockEvent captures one Publish invocation
type MockEvent struct {
	Event   string
	Payload interface{}
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, MockEvent{Event: event, Payload: payload})
}

// Named returns the published events with the given name
func (m *MockPublisher) Named(event string) []MockEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []MockEvent
	for _, e := range m.Events {
		if e.Event == event {
			result = append(result, e)
		}
	}
	return result
}
