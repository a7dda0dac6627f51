package testkit

import (
	"sync"
	"testing"
)

// one lock per seam name; "" is the shared default
var (
	seamsMu sync.Mutex
	seams   = map[string]*sync.Mutex{}
)

// Swap points target at replacement until the test ends and returns the value it replaced
func Swap[T any](t *testing.T, target *T, replacement T) T {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
	return prev
}

// Serial holds the default seam lock for the rest of the test
func Serial(t *testing.T) { SerialOn(t, "") }

// SerialOn holds the lock for the named seam, so tests touching the same
// process-wide state (module registry, env-derived globals) never overlap
func SerialOn(t *testing.T, seam string) {
	t.Helper()
	mu := seamLock(seam)
	mu.Lock()
	t.Cleanup(mu.Unlock)
}

func seamLock(seam string) *sync.Mutex {
	seamsMu.Lock()
	defer seamsMu.Unlock()
	mu, ok := seams[seam]
	if !ok {
		mu = &sync.Mutex{}
		seams[seam] = mu
	}
	return mu
}
