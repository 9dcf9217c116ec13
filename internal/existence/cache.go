// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package existence

import "sync"

// Cache remembers definitive existence answers. Implementations only ever
// see true or false; inconclusive probes are never stored.
type Cache interface {
	// Get returns the stored answer for doi and whether one was found.
	Get(doi string) (exists bool, ok bool, err error)
	// Put records the answer for doi.
	Put(doi string, exists bool) error
	// Clear forgets every answer.
	Clear() error
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.Mutex
	answers map[string]bool
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{answers: make(map[string]bool)}
}

func (m *MemoryCache) Get(doi string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exists, ok := m.answers[doi]
	return exists, ok, nil
}

func (m *MemoryCache) Put(doi string, exists bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[doi] = exists
	return nil
}

func (m *MemoryCache) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = make(map[string]bool)
	return nil
}

// Len returns the number of stored answers.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.answers)
}
