package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Run("starts anonymous", func(t *testing.T) {
		s := NewMemoryStore()
		access, refresh := s.Tokens()
		assert.Empty(t, access)
		assert.Empty(t, refresh)
	})

	t.Run("SetPair stores both tokens", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.SetPair("a1", "r1"))
		access, refresh := s.Tokens()
		assert.Equal(t, "a1", access)
		assert.Equal(t, "r1", refresh)
	})

	t.Run("SetAccess keeps the refresh token", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.SetPair("a1", "r1"))
		require.NoError(t, s.SetAccess("a2"))
		access, refresh := s.Tokens()
		assert.Equal(t, "a2", access)
		assert.Equal(t, "r1", refresh)
	})

	t.Run("Clear returns to anonymous", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.SetPair("a1", "r1"))
		require.NoError(t, s.Clear())
		access, refresh := s.Tokens()
		assert.Empty(t, access)
		assert.Empty(t, refresh)
	})
}

// TestMemoryStore_ConcurrentAccess exercises the store under parallel
// readers and writers; run with -race.
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetPair("a", "r"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Tokens()
		}()
		go func() {
			defer wg.Done()
			_ = s.SetAccess("a2")
		}()
	}
	wg.Wait()

	access, refresh := s.Tokens()
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r", refresh)
}
