package worker

import "sync"

// FlightLimiter enforces at most one in-flight check per target. A tick that
// finds a target still being checked skips it rather than queueing behind it.
type FlightLimiter struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFlightLimiter creates an empty limiter
func NewFlightLimiter() *FlightLimiter {
	return &FlightLimiter{inFlight: make(map[string]struct{})}
}

// TryAcquire reserves the target for a check. It returns false when a check
// for the target is already running.
func (l *FlightLimiter) TryAcquire(targetID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.inFlight[targetID]; busy {
		return false
	}
	l.inFlight[targetID] = struct{}{}
	return true
}

// Release frees the target after its check completes
func (l *FlightLimiter) Release(targetID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, targetID)
}

// InFlight reports how many checks are currently running
func (l *FlightLimiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inFlight)
}
