package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggestable/internal/domain"
)

func items(qs ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, len(qs))
	for i, q := range qs {
		out[i] = domain.Suggestion{Query: q}
	}
	return out
}

func TestKey(t *testing.T) {
	assert.Equal(t, "http://x/s:cat", Key("http://x/s", "cat"))
}

func TestMapStoreExactKeys(t *testing.T) {
	s := NewMapStore()
	s.Set(Key("u", "cat"), items("cat food"))

	got, ok := s.Get(Key("u", "cat"))
	require.True(t, ok)
	assert.Equal(t, items("cat food"), got)

	// no normalisation of case or whitespace
	_, ok = s.Get(Key("u", "Cat"))
	assert.False(t, ok)
	_, ok = s.Get(Key("u", "cat "))
	assert.False(t, ok)
}

func TestMapStoreKeepsEmptyResults(t *testing.T) {
	s := NewMapStore()
	s.Set("k", []domain.Suggestion{})

	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMapStoreOverwrites(t *testing.T) {
	s := NewMapStore()
	s.Set("k", items("a"))
	s.Set("k", items("b"))

	got, _ := s.Get("k")
	assert.Equal(t, items("b"), got)
	assert.Equal(t, 1, s.Len())
}

func TestNewPicksImplementation(t *testing.T) {
	assert.IsType(t, &MapStore{}, New(0))
	assert.IsType(t, &LRUStore{}, New(8))
}

func TestLRUStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewLRUStore(2)
	require.NoError(t, err)

	s.Set("a", items("a"))
	s.Set("b", items("b"))
	_, _ = s.Get("a") // a is now most recent
	s.Set("c", items("c"))

	_, ok := s.Get("b")
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}
