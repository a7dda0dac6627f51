// Package repo stores the operator identity as key/value pairs
package repo

import (
	"context"
	"sync"
)

// Repo is the persistence surface for identity values
type Repo interface {
	// Load returns the stored values for keys; missing keys are absent from the map
	Load(ctx context.Context, keys []string) (map[string]string, error)
	// Replace deletes keys then writes kv in one unit
	Replace(ctx context.Context, keys []string, kv map[string]string) error
	// Delete removes keys
	Delete(ctx context.Context, keys []string) error
}

// Memory is an in-process Repo used when postgres is disabled
type Memory struct {
	mu sync.RWMutex
	kv map[string]string
}

var _ Repo = (*Memory)(nil)

// NewMemory returns an empty Memory repo
func NewMemory() *Memory { return &Memory{kv: map[string]string{}} }

// Load implements Repo
func (m *Memory) Load(_ context.Context, keys []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.kv[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Replace implements Repo
func (m *Memory) Replace(_ context.Context, keys []string, kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.kv, k)
	}
	for k, v := range kv {
		m.kv[k] = v
	}
	return nil
}

// Delete implements Repo
func (m *Memory) Delete(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}
