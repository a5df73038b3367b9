package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// HTTPStrategy probes a target with a single GET request. A reachable server
// answering with a non-2xx/3xx status is classified degraded, not down: it is
// erroring, but it is there.
type HTTPStrategy struct {
	client *http.Client
}

func (s *HTTPStrategy) Kind() string { return target.KindHTTP }

func (s *HTTPStrategy) Execute(ctx context.Context, t *target.Target) check.Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return downResult(nil, "invalid URL: "+err.Error())
	}

	resp, err := s.client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return downResult(int64Ptr(elapsed), err.Error())
	}
	defer resp.Body.Close()

	status := target.StatusDegraded
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		status = classify(elapsed, t.DegradedThresholdMs)
	}

	code := resp.StatusCode
	return check.Result{
		Status:         status,
		ResponseTimeMs: int64Ptr(elapsed),
		StatusCode:     &code,
		CheckedAt:      time.Now(),
	}
}
