package services

import (
	"context"
	"testing"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/events"
	"github.com/SergioM098/Monitoring-proyect/internal/testutil"
)

func newIncidentFixture() (incident.Service, *testutil.MockIncidentRepository, *testutil.MockPublisher) {
	repo := testutil.NewMockIncidentRepository()
	pub := testutil.NewMockPublisher()
	svc := NewIncidentService(repo, pub, testutil.NewTestLogger())
	return svc, repo, pub
}

func openIncident(repo *testutil.MockIncidentRepository, targetID string) *incident.Incident {
	list, _ := repo.ListOpenForTarget(context.Background(), targetID)
	return list[0]
}

func TestIncidentService_Apply_OpensOnTransitionToBad(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		next     string
	}{
		{"up to down", target.StatusUp, target.StatusDown},
		{"up to degraded", target.StatusUp, target.StatusDegraded},
		{"unknown to down", target.StatusUnknown, target.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := newIncidentFixture()

			if err := svc.Apply(context.Background(), "t1", tt.previous, tt.next); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			open, _ := repo.ListOpenForTarget(context.Background(), "t1")
			if len(open) != 1 {
				t.Fatalf("expected 1 open incident, got %d", len(open))
			}
			if open[0].Status != tt.next {
				t.Errorf("incident status = %q, want %q", open[0].Status, tt.next)
			}
			if open[0].ResolvedAt != nil {
				t.Error("new incident should not be resolved")
			}
			if got := pub.Named(events.EventIncidentOpened); len(got) != 1 {
				t.Errorf("expected 1 incident:opened event, got %d", len(got))
			}
		})
	}
}

func TestIncidentService_Apply_NoOpOnEqualStatus(t *testing.T) {
	svc, repo, pub := newIncidentFixture()

	if err := svc.Apply(context.Background(), "t1", target.StatusDown, target.StatusDown); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(repo.Incidents) != 0 {
		t.Errorf("expected no incidents, got %d", len(repo.Incidents))
	}
	if len(pub.Events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.Events))
	}
}

func TestIncidentService_Apply_UnknownToUpIsQuiet(t *testing.T) {
	svc, repo, _ := newIncidentFixture()

	if err := svc.Apply(context.Background(), "t1", target.StatusUnknown, target.StatusUp); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(repo.Incidents) != 0 {
		t.Errorf("expected no incidents, got %d", len(repo.Incidents))
	}
}

func TestIncidentService_Apply_ClosesOnRecovery(t *testing.T) {
	svc, repo, pub := newIncidentFixture()

	if err := svc.Apply(context.Background(), "t1", target.StatusUp, target.StatusDown); err != nil {
		t.Fatalf("Apply(open) error = %v", err)
	}
	inc := openIncident(repo, "t1")
	started := inc.StartedAt

	if err := svc.Apply(context.Background(), "t1", target.StatusDown, target.StatusUp); err != nil {
		t.Fatalf("Apply(close) error = %v", err)
	}

	stored := repo.Incidents[inc.ID]
	if stored.ResolvedAt == nil {
		t.Fatal("incident should be resolved")
	}
	if stored.DurationMs == nil {
		t.Fatal("resolved incident should carry duration")
	}
	want := stored.ResolvedAt.Sub(started).Milliseconds()
	if *stored.DurationMs != want {
		t.Errorf("DurationMs = %d, want %d", *stored.DurationMs, want)
	}
	if got := pub.Named(events.EventIncidentResolved); len(got) != 1 {
		t.Errorf("expected 1 incident:resolved event, got %d", len(got))
	}
}

func TestIncidentService_Apply_SeverityFlipKeepsIncidentOpen(t *testing.T) {
	svc, repo, pub := newIncidentFixture()

	if err := svc.Apply(context.Background(), "t1", target.StatusUp, target.StatusDegraded); err != nil {
		t.Fatalf("Apply(open) error = %v", err)
	}
	original := openIncident(repo, "t1")

	if err := svc.Apply(context.Background(), "t1", target.StatusDegraded, target.StatusDown); err != nil {
		t.Fatalf("Apply(flip) error = %v", err)
	}

	open, _ := repo.ListOpenForTarget(context.Background(), "t1")
	if len(open) != 1 {
		t.Fatalf("expected 1 open incident after flip, got %d", len(open))
	}
	if open[0].ID != original.ID {
		t.Error("severity flip should reuse the open incident, not open a new one")
	}
	if open[0].Status != target.StatusDown {
		t.Errorf("incident status = %q, want %q", open[0].Status, target.StatusDown)
	}
	if got := pub.Named(events.EventIncidentOpened); len(got) != 1 {
		t.Errorf("expected exactly 1 incident:opened event, got %d", len(got))
	}
}

func TestIncidentService_Apply_RecoveryWithNothingOpenIsNoOp(t *testing.T) {
	svc, repo, pub := newIncidentFixture()

	if err := svc.Apply(context.Background(), "t1", target.StatusDown, target.StatusUp); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(repo.Incidents) != 0 {
		t.Errorf("expected no incidents, got %d", len(repo.Incidents))
	}
	if len(pub.Events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.Events))
	}
}

func TestIncidentService_Apply_FullLifecycle(t *testing.T) {
	svc, repo, _ := newIncidentFixture()
	ctx := context.Background()

	// up -> down opens, down -> degraded flips, degraded -> up closes
	if err := svc.Apply(ctx, "t1", target.StatusUp, target.StatusDown); err != nil {
		t.Fatal(err)
	}
	if err := svc.Apply(ctx, "t1", target.StatusDown, target.StatusDegraded); err != nil {
		t.Fatal(err)
	}
	if err := svc.Apply(ctx, "t1", target.StatusDegraded, target.StatusUp); err != nil {
		t.Fatal(err)
	}

	if len(repo.Incidents) != 1 {
		t.Fatalf("lifecycle should touch exactly 1 incident, got %d", len(repo.Incidents))
	}
	for _, inc := range repo.Incidents {
		if inc.Open() {
			t.Error("incident should be closed after recovery")
		}
		if inc.Status != target.StatusDegraded {
			t.Errorf("closed incident keeps last severity, got %q", inc.Status)
		}
	}
}

func TestIncidentService_CloseOrphaned(t *testing.T) {
	svc, repo, pub := newIncidentFixture()
	ctx := context.Background()

	stale := &incident.Incident{
		ID:        "orphan-1",
		TargetID:  "t1",
		Status:    target.StatusDown,
		StartedAt: time.Now().UTC().Add(-10 * time.Minute),
	}
	if err := repo.Create(ctx, stale); err != nil {
		t.Fatal(err)
	}
	other := &incident.Incident{
		ID:        "other-1",
		TargetID:  "t2",
		Status:    target.StatusDown,
		StartedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	if err := svc.CloseOrphaned(ctx, "t1"); err != nil {
		t.Fatalf("CloseOrphaned() error = %v", err)
	}

	if repo.Incidents["orphan-1"].Open() {
		t.Error("orphaned incident should be resolved")
	}
	if repo.Incidents["orphan-1"].DurationMs == nil {
		t.Error("orphaned incident should carry duration when resolved")
	}
	if !repo.Incidents["other-1"].Open() {
		t.Error("other target's incident must stay open")
	}
	if got := pub.Named(events.EventIncidentResolved); len(got) != 1 {
		t.Errorf("expected 1 incident:resolved event, got %d", len(got))
	}
}

func TestIncidentService_CloseOrphaned_NothingOpen(t *testing.T) {
	svc, _, pub := newIncidentFixture()

	if err := svc.CloseOrphaned(context.Background(), "t1"); err != nil {
		t.Fatalf("CloseOrphaned() error = %v", err)
	}
	if len(pub.Events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.Events))
	}
}

func TestIncidentService_AtMostOneOpenPerTarget(t *testing.T) {
	svc, repo, _ := newIncidentFixture()
	ctx := context.Background()

	// repeated bad transitions must never stack incidents
	transitions := [][2]string{
		{target.StatusUp, target.StatusDown},
		{target.StatusDown, target.StatusDegraded},
		{target.StatusDegraded, target.StatusDown},
	}
	for _, tr := range transitions {
		if err := svc.Apply(ctx, "t1", tr[0], tr[1]); err != nil {
			t.Fatal(err)
		}
	}

	open, _ := repo.ListOpenForTarget(ctx, "t1")
	if len(open) != 1 {
		t.Fatalf("expected at most 1 open incident, got %d", len(open))
	}
}
