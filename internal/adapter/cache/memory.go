// Package cache provides ClassificationCache implementations: an in-process
// map for single-instance deployments and a Redis cache for shared state.
package cache

import (
	"sync"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// Memory is an in-process classification cache. Entries never expire; the
// registry is small and classifications do not change at runtime.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.Classification
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: map[string]domain.Classification{}}
}

// Get looks up a cached classification by normalized company name.
func (m *Memory) Get(_ domain.Context, name string) (domain.Classification, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.entries[name]
	return c, ok, nil
}

// Put stores a classification under the normalized company name.
func (m *Memory) Put(_ domain.Context, name string, c domain.Classification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = c
	return nil
}
