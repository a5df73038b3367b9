package worker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/probe"
	"github.com/SergioM098/Monitoring-proyect/internal/services"
	"github.com/SergioM098/Monitoring-proyect/internal/testutil"
)

type schedulerFixture struct {
	scheduler *Scheduler
	targets   *testutil.MockTargetRepository
	checks    *testutil.MockCheckRepository
	serverURL string
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	log := testutil.NewTestLogger()
	targets := testutil.NewMockTargetRepository()
	checks := testutil.NewMockCheckRepository()
	incidents := services.NewIncidentService(testutil.NewMockIncidentRepository(), testutil.NewMockPublisher(), log)
	alerts := services.NewAlertService(testutil.NewMockNotificationRepository(), nil, 5*time.Minute, log)
	monitor := services.NewMonitorService(
		probe.NewRegistry(2*time.Second),
		targets, checks, incidents, alerts, testutil.NewMockPublisher(), log,
	)

	return &schedulerFixture{
		scheduler: NewScheduler("*/10 * * * * *", targets, checks, monitor, log),
		targets:   targets,
		checks:    checks,
		serverURL: server.URL,
	}
}

func (f *schedulerFixture) addTarget(t *testing.T, id string, intervalSec int, enabled bool) {
	t.Helper()
	err := f.targets.Create(context.Background(), &target.Target{
		ID: id, Name: id, URL: f.serverURL,
		CheckKind: target.KindHTTP, IntervalSec: intervalSec,
		DegradedThresholdMs: 5000, Status: target.StatusUnknown,
		Enabled: enabled,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *schedulerFixture) recordCheck(t *testing.T, targetID string, ago time.Duration) {
	t.Helper()
	err := f.checks.Append(context.Background(), &check.Result{
		ID: uuid.New().String(), TargetID: targetID,
		Status: target.StatusUp, CheckedAt: time.Now().Add(-ago),
	})
	if err != nil {
		t.Fatal(err)
	}
}

// runTick fires one tick and waits for the dispatched checks to finish
func (f *schedulerFixture) runTick(ctx context.Context) {
	f.scheduler.tick(ctx)
	f.scheduler.wg.Wait()
}

func checksFor(f *schedulerFixture, targetID string) int {
	n := 0
	for _, r := range f.checks.Results {
		if r.TargetID == targetID {
			n++
		}
	}
	return n
}

func TestScheduler_Tick_NeverCheckedIsDueImmediately(t *testing.T) {
	f := newSchedulerFixture(t)
	f.addTarget(t, "t1", 60, true)

	f.runTick(context.Background())

	if got := checksFor(f, "t1"); got != 1 {
		t.Errorf("expected 1 check, got %d", got)
	}
}

func TestScheduler_Tick_DueByInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		lastAgo  time.Duration
		wantRun  bool
	}{
		{"interval elapsed", 60, 61 * time.Second, true},
		{"exactly at interval", 60, 60 * time.Second, true},
		{"not yet due", 60, 30 * time.Second, false},
		{"short interval due", 10, 11 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSchedulerFixture(t)
			f.addTarget(t, "t1", tt.interval, true)
			f.recordCheck(t, "t1", tt.lastAgo)

			f.runTick(context.Background())

			want := 1
			if tt.wantRun {
				want = 2
			}
			if got := checksFor(f, "t1"); got != want {
				t.Errorf("check count = %d, want %d", got, want)
			}
		})
	}
}

func TestScheduler_Tick_SkipsDisabledTargets(t *testing.T) {
	f := newSchedulerFixture(t)
	f.addTarget(t, "t1", 60, false)

	f.runTick(context.Background())

	if got := checksFor(f, "t1"); got != 0 {
		t.Errorf("disabled target must not be checked, got %d checks", got)
	}
}

func TestScheduler_Tick_IndependentIntervals(t *testing.T) {
	f := newSchedulerFixture(t)
	f.addTarget(t, "fast", 10, true)
	f.addTarget(t, "slow", 300, true)
	f.recordCheck(t, "fast", 15*time.Second)
	f.recordCheck(t, "slow", 15*time.Second)

	f.runTick(context.Background())

	if got := checksFor(f, "fast"); got != 2 {
		t.Errorf("fast target should have run, got %d checks", got)
	}
	if got := checksFor(f, "slow"); got != 1 {
		t.Errorf("slow target should not have run, got %d checks", got)
	}
}

func TestScheduler_Tick_SkipsInFlightTarget(t *testing.T) {
	f := newSchedulerFixture(t)
	f.addTarget(t, "t1", 60, true)

	// simulate a check still running from a previous tick
	if !f.scheduler.limiter.TryAcquire("t1") {
		t.Fatal("limiter should be free")
	}
	defer f.scheduler.limiter.Release("t1")

	f.runTick(context.Background())

	if got := checksFor(f, "t1"); got != 0 {
		t.Errorf("in-flight target must be skipped, got %d checks", got)
	}
}

func TestScheduler_Tick_ListFailureSkipsTick(t *testing.T) {
	f := newSchedulerFixture(t)
	f.addTarget(t, "t1", 60, true)
	f.targets.ListError = fmt.Errorf("db gone")

	f.runTick(context.Background())

	if got := checksFor(f, "t1"); got != 0 {
		t.Errorf("tick with listing failure must run nothing, got %d checks", got)
	}

	// next tick recovers
	f.targets.ListError = nil
	f.runTick(context.Background())
	if got := checksFor(f, "t1"); got != 1 {
		t.Errorf("recovered tick should check the target, got %d checks", got)
	}
}

func TestFlightLimiter(t *testing.T) {
	l := NewFlightLimiter()

	if !l.TryAcquire("a") {
		t.Fatal("first acquire should succeed")
	}
	if l.TryAcquire("a") {
		t.Fatal("second acquire for the same target must fail")
	}
	if !l.TryAcquire("b") {
		t.Fatal("acquire for a different target should succeed")
	}
	if l.InFlight() != 2 {
		t.Errorf("InFlight() = %d, want 2", l.InFlight())
	}

	l.Release("a")
	if !l.TryAcquire("a") {
		t.Fatal("acquire after release should succeed")
	}
}
