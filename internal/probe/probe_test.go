package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		responseMs  int64
		thresholdMs int64
		want        string
	}{
		{name: "under threshold is up", responseMs: 200, thresholdMs: 5000, want: target.StatusUp},
		{name: "equal to threshold is up", responseMs: 5000, thresholdMs: 5000, want: target.StatusUp},
		{name: "over threshold is degraded", responseMs: 5001, thresholdMs: 5000, want: target.StatusDegraded},
		{name: "zero threshold degrades everything slower", responseMs: 1, thresholdMs: 0, want: target.StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.responseMs, tt.thresholdMs); got != tt.want {
				t.Errorf("classify(%d, %d) = %q, want %q", tt.responseMs, tt.thresholdMs, got, tt.want)
			}
		})
	}
}

func TestHTTPStrategy_Execute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/unavailable":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/redirectish":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	reg := NewRegistry(2 * time.Second)
	strategy := reg.For(target.KindHTTP)

	tests := []struct {
		name           string
		url            string
		thresholdMs    int64
		wantStatus     string
		wantStatusCode int
	}{
		{name: "fast 200 is up", url: srv.URL + "/ok", thresholdMs: 5000, wantStatus: target.StatusUp, wantStatusCode: 200},
		{name: "503 is degraded regardless of latency", url: srv.URL + "/unavailable", thresholdMs: 5000, wantStatus: target.StatusDegraded, wantStatusCode: 503},
		{name: "404 is degraded", url: srv.URL + "/missing", thresholdMs: 5000, wantStatus: target.StatusDegraded, wantStatusCode: 404},
		{name: "2xx over threshold is degraded", url: srv.URL + "/ok", thresholdMs: -1, wantStatus: target.StatusDegraded, wantStatusCode: 200},
		{name: "204 is up", url: srv.URL + "/redirectish", thresholdMs: 5000, wantStatus: target.StatusUp, wantStatusCode: 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt := &target.Target{URL: tt.url, CheckKind: target.KindHTTP, DegradedThresholdMs: tt.thresholdMs}
			result := strategy.Execute(context.Background(), tgt)

			if result.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", result.Status, tt.wantStatus)
			}
			if result.StatusCode == nil || *result.StatusCode != tt.wantStatusCode {
				t.Errorf("statusCode = %v, want %d", result.StatusCode, tt.wantStatusCode)
			}
			if result.ResponseTimeMs == nil {
				t.Error("responseTimeMs = nil, want a value for a received response")
			}
			if result.ErrorMessage != nil {
				t.Errorf("errorMessage = %q, want nil", *result.ErrorMessage)
			}
		})
	}
}

func TestHTTPStrategy_Execute_TransportFailure(t *testing.T) {
	// Reserve a port, then close the listener so the connection is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()

	reg := NewRegistry(2 * time.Second)
	tgt := &target.Target{URL: url, CheckKind: target.KindHTTP, DegradedThresholdMs: 5000}
	result := reg.For(target.KindHTTP).Execute(context.Background(), tgt)

	if result.Status != target.StatusDown {
		t.Errorf("status = %q, want %q", result.Status, target.StatusDown)
	}
	if result.StatusCode != nil {
		t.Errorf("statusCode = %v, want nil for transport failure", *result.StatusCode)
	}
	if result.ResponseTimeMs == nil {
		t.Error("responseTimeMs = nil, want elapsed time up to failure")
	}
	if result.ErrorMessage == nil {
		t.Error("errorMessage = nil, want a failure message")
	}
}

func TestTCPStrategy_Execute(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	reg := NewRegistry(2 * time.Second)
	strategy := reg.For(target.KindTCP)

	t.Run("open port is up", func(t *testing.T) {
		tgt := &target.Target{URL: ln.Addr().String(), CheckKind: target.KindTCP, DegradedThresholdMs: 5000}
		result := strategy.Execute(context.Background(), tgt)

		if result.Status != target.StatusUp {
			t.Errorf("status = %q, want %q", result.Status, target.StatusUp)
		}
		if result.ResponseTimeMs == nil {
			t.Error("responseTimeMs = nil, want a value")
		}
	})

	t.Run("refused connection is down and names the address", func(t *testing.T) {
		closed, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
		addr := closed.Addr().String()
		closed.Close()

		tgt := &target.Target{URL: addr, CheckKind: target.KindTCP, DegradedThresholdMs: 5000}
		result := strategy.Execute(context.Background(), tgt)

		if result.Status != target.StatusDown {
			t.Errorf("status = %q, want %q", result.Status, target.StatusDown)
		}
		if result.ErrorMessage == nil || !strings.Contains(*result.ErrorMessage, addr) {
			t.Errorf("errorMessage = %v, want it to mention %s", result.ErrorMessage, addr)
		}
	})

	t.Run("invalid host rejected before any socket attempt", func(t *testing.T) {
		tgt := &target.Target{URL: "bad;host:80", CheckKind: target.KindTCP, DegradedThresholdMs: 5000}
		result := strategy.Execute(context.Background(), tgt)

		if result.Status != target.StatusDown {
			t.Errorf("status = %q, want %q", result.Status, target.StatusDown)
		}
		if result.ResponseTimeMs != nil {
			t.Errorf("responseTimeMs = %v, want nil when no connection was attempted", *result.ResponseTimeMs)
		}
		if result.ErrorMessage == nil || !strings.Contains(*result.ErrorMessage, "invalid host") {
			t.Errorf("errorMessage = %v, want a validation message", result.ErrorMessage)
		}
	})
}

func TestPingStrategy_Execute_InvalidHost(t *testing.T) {
	reg := NewRegistry(2 * time.Second)
	tgt := &target.Target{URL: "ping://bad;host", CheckKind: target.KindPing, DegradedThresholdMs: 5000}
	result := reg.For(target.KindPing).Execute(context.Background(), tgt)

	if result.Status != target.StatusDown {
		t.Errorf("status = %q, want %q", result.Status, target.StatusDown)
	}
	if result.ResponseTimeMs != nil {
		t.Errorf("responseTimeMs = %v, want nil when no echo was sent", *result.ResponseTimeMs)
	}
	if result.ErrorMessage == nil || !strings.Contains(*result.ErrorMessage, "invalid host") {
		t.Errorf("errorMessage = %v, want a validation message", result.ErrorMessage)
	}
}

func TestRegistry_For_FallsBackToHTTP(t *testing.T) {
	reg := NewRegistry(time.Second)
	if got := reg.For("bogus").Kind(); got != target.KindHTTP {
		t.Errorf("For(bogus).Kind() = %q, want %q", got, target.KindHTTP)
	}
}
