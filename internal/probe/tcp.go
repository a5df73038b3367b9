package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
)

// TCPStrategy probes a target by opening a raw connection to host:port
type TCPStrategy struct {
	timeout time.Duration
}

func (s *TCPStrategy) Kind() string { return target.KindTCP }

func (s *TCPStrategy) Execute(ctx context.Context, t *target.Target) check.Result {
	host, port := ParseTCPTarget(t.URL)

	if !ValidHost(host) {
		return downResult(nil, fmt.Sprintf("invalid host: %s", host))
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	start := time.Now()

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return downResult(int64Ptr(elapsed), fmt.Sprintf("tcp connection to %s timed out", addr))
		}
		return downResult(int64Ptr(elapsed), fmt.Sprintf("tcp %s - %v", addr, err))
	}
	conn.Close()

	return check.Result{
		Status:         classify(elapsed, t.DegradedThresholdMs),
		ResponseTimeMs: int64Ptr(elapsed),
		CheckedAt:      time.Now(),
	}
}
