package services

import "sync"

// loadTracker hands out increasing generation tokens per scope so that only
// the most recently started load of a browsing session may publish results.
// Entries are dropped once the newest load of a scope finishes.
type loadTracker struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

func newLoadTracker() *loadTracker {
	return &loadTracker{latest: make(map[string]uint64)}
}

func (t *loadTracker) begin(scope string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	t.latest[scope] = t.next
	return t.next
}

func (t *loadTracker) isCurrent(scope string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.latest[scope] == token
}

func (t *loadTracker) end(scope string, token uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest[scope] == token {
		delete(t.latest, scope)
	}
}

func (t *loadTracker) inFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.latest)
}
