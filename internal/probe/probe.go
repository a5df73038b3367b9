// Package probe implements the protocol-specific check strategies. A strategy
// never returns an error: every failure mode is encoded as a down result with
// a human-readable message so monitoring continues and stays visible in
// history.
package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// DefaultTimeout bounds a single probe execution
const DefaultTimeout = 10 * time.Second

// Strategy executes one probe against a target and classifies the outcome
type Strategy interface {
	Kind() string
	Execute(ctx context.Context, t *target.Target) check.Result
}

// Registry holds one strategy per check kind
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry creates a registry with the HTTP, TCP and ping strategies,
// all bounded by the given timeout
func NewRegistry(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpStrategy := &HTTPStrategy{
		client: &http.Client{Timeout: timeout},
	}

	r := &Registry{
		strategies: map[string]Strategy{},
		fallback:   httpStrategy,
	}
	r.Register(httpStrategy)
	r.Register(&TCPStrategy{timeout: timeout})
	r.Register(&PingStrategy{timeout: timeout})
	return r
}

// Register adds a strategy to the registry
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Kind()] = s
}

// For returns the strategy for a check kind, falling back to HTTP for
// unrecognized kinds
func (r *Registry) For(kind string) Strategy {
	if s, ok := r.strategies[kind]; ok {
		return s
	}
	return r.fallback
}

// classify applies the strict threshold rule for reachable targets
func classify(responseTimeMs, thresholdMs int64) string {
	if responseTimeMs > thresholdMs {
		return target.StatusDegraded
	}
	return target.StatusUp
}

func downResult(responseTimeMs *int64, message string) check.Result {
	return check.Result{
		Status:         target.StatusDown,
		ResponseTimeMs: responseTimeMs,
		ErrorMessage:   &message,
		CheckedAt:      time.Now(),
	}
}

func int64Ptr(v int64) *int64 { return &v }
