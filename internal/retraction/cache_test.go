// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSharesTablePerPath(t *testing.T) {
	cache := NewCache(WithLogger(quietLogger()))

	wd, err := os.Getwd()
	require.NoError(t, err)

	a := cache.Get(mockDatabase)
	b := cache.Get(filepath.Join(wd, "testdata", ".", "rw_database.csv"))
	assert.Same(t, a, b)

	other := cache.Get(filepath.Join(t.TempDir(), "other.csv"))
	assert.NotSame(t, a, other)
}

func TestCacheReset(t *testing.T) {
	cache := NewCache(WithLogger(quietLogger()))
	first := cache.Get(mockDatabase)
	require.NoError(t, first.Load())

	cache.Reset()
	second := cache.Get(mockDatabase)
	assert.NotSame(t, first, second)

	ok, err := second.Contains("10.1234/retracted12349")
	require.NoError(t, err)
	assert.True(t, ok)
}
