package services

import (
	"context"
	"testing"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/testutil"
)

func newTargetFixture() (target.Service, *testutil.MockTargetRepository) {
	repo := testutil.NewMockTargetRepository()
	svc := NewTargetService(repo, testutil.NewTestLogger())
	return svc, repo
}

func validTarget(name string) *target.Target {
	return &target.Target{
		Name:                name,
		URL:                 "https://example.com/health",
		CheckKind:           target.KindHTTP,
		IntervalSec:         60,
		DegradedThresholdMs: 5000,
		Enabled:             true,
	}
}

func TestTargetService_Create(t *testing.T) {
	svc, repo := newTargetFixture()

	tgt := validTarget("My API")
	if err := svc.Create(context.Background(), tgt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if tgt.ID == "" {
		t.Error("Create() should assign an ID")
	}
	if tgt.Status != target.StatusUnknown {
		t.Errorf("new target status = %q, want unknown", tgt.Status)
	}
	if tgt.Slug != nil {
		t.Error("private target should not get a slug")
	}
	if len(repo.Targets) != 1 {
		t.Fatalf("expected 1 stored target, got %d", len(repo.Targets))
	}
}

func TestTargetService_Create_RejectsShortInterval(t *testing.T) {
	svc, repo := newTargetFixture()

	tgt := validTarget("fast poller")
	tgt.IntervalSec = 5
	if err := svc.Create(context.Background(), tgt); err == nil {
		t.Fatal("expected error for interval below minimum")
	}
	if len(repo.Targets) != 0 {
		t.Error("rejected target must not be stored")
	}
}

func TestTargetService_Create_PublicSlug(t *testing.T) {
	svc, _ := newTargetFixture()

	tgt := validTarget("My Cool API!")
	tgt.Public = true
	if err := svc.Create(context.Background(), tgt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tgt.Slug == nil || *tgt.Slug != "my-cool-api" {
		t.Fatalf("slug = %v, want my-cool-api", tgt.Slug)
	}
}

func TestTargetService_Create_SlugCollision(t *testing.T) {
	svc, _ := newTargetFixture()
	ctx := context.Background()

	first := validTarget("status page")
	first.Public = true
	if err := svc.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := validTarget("Status Page")
	second.Public = true
	if err := svc.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	if *first.Slug == *second.Slug {
		t.Fatalf("slugs must be unique, both are %q", *first.Slug)
	}
	if *second.Slug != "status-page-2" {
		t.Errorf("second slug = %q, want status-page-2", *second.Slug)
	}
}

func TestTargetService_Update(t *testing.T) {
	svc, repo := newTargetFixture()
	ctx := context.Background()

	tgt := validTarget("api")
	if err := svc.Create(ctx, tgt); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, tgt.ID, map[string]interface{}{
		"name":         "api v2",
		"interval_sec": float64(120), // json numbers decode as float64
		"enabled":      false,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "api v2" || updated.IntervalSec != 120 || updated.Enabled {
		t.Errorf("update not applied: %+v", updated)
	}
	if repo.Targets[tgt.ID].Name != "api v2" {
		t.Error("update not persisted")
	}
}

func TestTargetService_Update_RejectsShortInterval(t *testing.T) {
	svc, _ := newTargetFixture()
	ctx := context.Background()

	tgt := validTarget("api")
	if err := svc.Create(ctx, tgt); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, tgt.ID, map[string]interface{}{"interval_sec": 3}); err == nil {
		t.Fatal("expected error for interval below minimum")
	}
}

func TestTargetService_Update_NotFound(t *testing.T) {
	svc, _ := newTargetFixture()
	if _, err := svc.Update(context.Background(), "missing", map[string]interface{}{"name": "x"}); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestTargetService_Update_MakePublicDerivesSlug(t *testing.T) {
	svc, _ := newTargetFixture()
	ctx := context.Background()

	tgt := validTarget("internal api")
	if err := svc.Create(ctx, tgt); err != nil {
		t.Fatal(err)
	}
	updated, err := svc.Update(ctx, tgt.ID, map[string]interface{}{"public": true})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Slug == nil || *updated.Slug != "internal-api" {
		t.Fatalf("slug = %v, want internal-api", updated.Slug)
	}
}

func TestTargetService_Delete(t *testing.T) {
	svc, repo := newTargetFixture()
	ctx := context.Background()

	tgt := validTarget("api")
	if err := svc.Create(ctx, tgt); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, tgt.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.Targets) != 0 {
		t.Error("target should be gone")
	}
	if err := svc.Delete(ctx, tgt.ID); err == nil {
		t.Error("deleting a missing target should fail")
	}
}

func TestTargetService_SetEnabled(t *testing.T) {
	svc, repo := newTargetFixture()
	ctx := context.Background()

	tgt := validTarget("api")
	if err := svc.Create(ctx, tgt); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetEnabled(ctx, tgt.ID, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if repo.Targets[tgt.ID].Enabled {
		t.Error("target should be disabled")
	}

	// disabling twice is a no-op
	if err := svc.SetEnabled(ctx, tgt.ID, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
}
