// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retraction

import (
	"path/filepath"
	"sync"
)

// Cache hands out one Table per dataset file so repeated reports against
// the same dataset load it once.
type Cache struct {
	opts []Option

	mu     sync.Mutex
	tables map[string]*Table
}

// NewCache returns an empty cache. opts are applied to every Table it
// creates.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		opts:   opts,
		tables: make(map[string]*Table),
	}
}

// Get returns the Table for path, creating it on first request. Paths that
// resolve to the same absolute location share a Table.
func (c *Cache) Get(path string) *Table {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[key]; ok {
		return t
	}
	t := New(key, c.opts...)
	c.tables[key] = t
	return t
}

// Reset drops every cached Table.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]*Table)
}
