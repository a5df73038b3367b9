package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/testutil"
)

const testThrottle = 5 * time.Minute

func newAlertFixture(notifiers ...notification.Notifier) (notification.Service, *testutil.MockNotificationRepository) {
	repo := testutil.NewMockNotificationRepository()
	svc := NewAlertService(repo, notifiers, testThrottle, testutil.NewTestLogger())
	return svc, repo
}

func testTarget() *target.Target {
	return &target.Target{
		ID:        "t1",
		Name:      "api",
		URL:       "https://api.example.com/health",
		CheckKind: target.KindHTTP,
	}
}

func addRule(t *testing.T, repo *testutil.MockNotificationRepository, r *notification.Rule) {
	t.Helper()
	r.Enabled = true
	if err := repo.CreateRule(context.Background(), r); err != nil {
		t.Fatal(err)
	}
}

func TestAlertService_Dispatch_SendsToMatchingRules(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	svc, repo := newAlertFixture(email)

	addRule(t, repo, &notification.Rule{
		ID: "r1", Kind: notification.KindEmail,
		Destination: "ops@example.com", TriggerOn: notification.TriggerDown,
	})

	if err := svc.Dispatch(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if email.SentCount() != 1 {
		t.Fatalf("expected 1 send, got %d", email.SentCount())
	}
	if email.Sent[0].Destination != "ops@example.com" {
		t.Errorf("destination = %q", email.Sent[0].Destination)
	}
	if !strings.Contains(email.Sent[0].Subject, "api") {
		t.Errorf("subject should name the target, got %q", email.Sent[0].Subject)
	}
	if len(repo.Logs) != 1 || !repo.Logs[0].Success {
		t.Fatalf("expected 1 successful log entry, got %+v", repo.Logs)
	}
}

func TestAlertService_Dispatch_TriggerFiltering(t *testing.T) {
	tests := []struct {
		name      string
		triggerOn string
		status    string
		wantSend  bool
	}{
		{"down rule fires on down", notification.TriggerDown, target.StatusDown, true},
		{"down rule skips degraded", notification.TriggerDown, target.StatusDegraded, false},
		{"degraded rule skips down", notification.TriggerDegraded, target.StatusDown, false},
		{"both fires on down", notification.TriggerBoth, target.StatusDown, true},
		{"both fires on degraded", notification.TriggerBoth, target.StatusDegraded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := testutil.NewMockNotifier(notification.KindEmail)
			svc, repo := newAlertFixture(email)
			addRule(t, repo, &notification.Rule{
				ID: "r1", Kind: notification.KindEmail,
				Destination: "ops@example.com", TriggerOn: tt.triggerOn,
			})

			if err := svc.Dispatch(context.Background(), testTarget(), tt.status); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			got := email.SentCount() == 1
			if got != tt.wantSend {
				t.Errorf("sent = %v, want %v", got, tt.wantSend)
			}
		})
	}
}

func TestAlertService_Dispatch_TargetScopedRule(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	svc, repo := newAlertFixture(email)

	other := "t-other"
	addRule(t, repo, &notification.Rule{
		ID: "scoped", Kind: notification.KindEmail, TargetID: &other,
		Destination: "scoped@example.com", TriggerOn: notification.TriggerBoth,
	})
	addRule(t, repo, &notification.Rule{
		ID: "global", Kind: notification.KindEmail,
		Destination: "global@example.com", TriggerOn: notification.TriggerBoth,
	})

	if err := svc.Dispatch(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if email.SentCount() != 1 {
		t.Fatalf("expected only the global rule to fire, got %d sends", email.SentCount())
	}
	if email.Sent[0].Destination != "global@example.com" {
		t.Errorf("destination = %q, want global rule", email.Sent[0].Destination)
	}
}

func TestAlertService_Dispatch_DisabledRuleSkipped(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	svc, repo := newAlertFixture(email)

	r := &notification.Rule{
		ID: "r1", Kind: notification.KindEmail,
		Destination: "ops@example.com", TriggerOn: notification.TriggerBoth,
		Enabled: false,
	}
	if err := repo.CreateRule(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if err := svc.Dispatch(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if email.SentCount() != 0 {
		t.Errorf("disabled rule must not fire, got %d sends", email.SentCount())
	}
}

func TestAlertService_Dispatch_FailureIsIndependentAndLogged(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	email.SendError = fmt.Errorf("smtp: connection refused")
	wa := testutil.NewMockNotifier(notification.KindWhatsApp)
	svc, repo := newAlertFixture(email, wa)

	addRule(t, repo, &notification.Rule{
		ID: "r-email", Kind: notification.KindEmail,
		Destination: "ops@example.com", TriggerOn: notification.TriggerBoth,
	})
	addRule(t, repo, &notification.Rule{
		ID: "r-wa", Kind: notification.KindWhatsApp,
		Destination: "+15550001111", TriggerOn: notification.TriggerBoth,
	})

	if err := svc.Dispatch(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if wa.SentCount() != 1 {
		t.Error("whatsapp send should succeed despite the email failure")
	}
	if len(repo.Logs) != 2 {
		t.Fatalf("every attempt must be logged, got %d entries", len(repo.Logs))
	}
	var failed, succeeded int
	for _, e := range repo.Logs {
		if e.Success {
			succeeded++
		} else {
			failed++
			if e.ErrorMessage == nil || !strings.Contains(*e.ErrorMessage, "connection refused") {
				t.Errorf("failed entry should carry the error, got %+v", e.ErrorMessage)
			}
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("logs: failed=%d succeeded=%d, want 1 each", failed, succeeded)
	}
}

func TestAlertService_Dispatch_NotReadyNotifierLogsFailedAttempt(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	email.Ready = false
	svc, repo := newAlertFixture(email)

	addRule(t, repo, &notification.Rule{
		ID: "r1", Kind: notification.KindEmail,
		Destination: "ops@example.com", TriggerOn: notification.TriggerBoth,
	})

	if err := svc.Dispatch(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if email.SentCount() != 0 {
		t.Error("not-ready notifier must not send")
	}
	if len(repo.Logs) != 1 || repo.Logs[0].Success {
		t.Fatalf("expected 1 failed log entry, got %+v", repo.Logs)
	}
}

func TestAlertService_DispatchThrottled(t *testing.T) {
	tests := []struct {
		name     string
		lastSent time.Duration // ago; 0 means no previous send
		wantSend bool
	}{
		{"no previous send", 0, true},
		{"recent send suppressed", 2 * time.Minute, false},
		{"window elapsed", 6 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := testutil.NewMockNotifier(notification.KindEmail)
			svc, repo := newAlertFixture(email)
			addRule(t, repo, &notification.Rule{
				ID: "r1", Kind: notification.KindEmail,
				Destination: "ops@example.com", TriggerOn: notification.TriggerBoth,
			})

			if tt.lastSent > 0 {
				err := repo.AppendLog(context.Background(), &notification.LogEntry{
					ID: "prev", TargetID: "t1", Destination: "ops@example.com",
					Success: true, SentAt: time.Now().UTC().Add(-tt.lastSent),
				})
				if err != nil {
					t.Fatal(err)
				}
			}

			if err := svc.DispatchThrottled(context.Background(), testTarget(), target.StatusDown); err != nil {
				t.Fatalf("DispatchThrottled() error = %v", err)
			}
			got := email.SentCount() == 1
			if got != tt.wantSend {
				t.Errorf("sent = %v, want %v", got, tt.wantSend)
			}
		})
	}
}

func TestAlertService_DispatchThrottled_FailedSendDoesNotArmThrottle(t *testing.T) {
	email := testutil.NewMockNotifier(notification.KindEmail)
	svc, repo := newAlertFixture(email)
	addRule(t, repo, &notification.Rule{
		ID: "r1", Kind: notification.KindEmail,
		Destination: "ops@example.com", TriggerOn: notification.TriggerBoth,
	})

	msg := "smtp down"
	err := repo.AppendLog(context.Background(), &notification.LogEntry{
		ID: "prev", TargetID: "t1", Destination: "ops@example.com",
		Success: false, ErrorMessage: &msg, SentAt: time.Now().UTC().Add(-time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DispatchThrottled(context.Background(), testTarget(), target.StatusDown); err != nil {
		t.Fatalf("DispatchThrottled() error = %v", err)
	}
	if email.SentCount() != 1 {
		t.Error("a failed attempt must not suppress the retry")
	}
}
