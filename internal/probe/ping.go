package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// PingStrategy probes a target with a single ICMP echo. Runs unprivileged
// (UDP datagram sockets), so no raw-socket capability is required.
type PingStrategy struct {
	timeout time.Duration
}

func (s *PingStrategy) Kind() string { return target.KindPing }

func (s *PingStrategy) Execute(ctx context.Context, t *target.Target) check.Result {
	host := ExtractPingHost(t.URL)

	if !ValidHost(host) {
		return downResult(nil, fmt.Sprintf("invalid host: %s", host))
	}

	start := time.Now()

	pinger, err := probing.NewPinger(host)
	if err != nil {
		return downResult(int64Ptr(time.Since(start).Milliseconds()), fmt.Sprintf("ping %s - %v", host, err))
	}
	pinger.Count = 1
	pinger.Timeout = s.timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return downResult(int64Ptr(time.Since(start).Milliseconds()), fmt.Sprintf("ping %s - %v", host, err))
	}

	elapsed := time.Since(start).Milliseconds()
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return downResult(int64Ptr(elapsed), fmt.Sprintf("ping to %s failed - host unreachable", host))
	}

	// Fall back to wall-clock time when the library reports no usable RTT
	responseTimeMs := stats.AvgRtt.Milliseconds()
	if stats.AvgRtt <= 0 {
		responseTimeMs = elapsed
	}

	return check.Result{
		Status:         classify(responseTimeMs, t.DegradedThresholdMs),
		ResponseTimeMs: int64Ptr(responseTimeMs),
		CheckedAt:      time.Now(),
	}
}
