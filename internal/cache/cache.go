// Package cache holds fetched suggestion lists keyed by "url:term".
//
// Stores are confined to the UI goroutine and are not safe for concurrent use.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"suggestable/internal/domain"
)

// Store maps a cache key to the last result set fetched for it
type Store interface {
	Get(key string) ([]domain.Suggestion, bool)
	Set(key string, items []domain.Suggestion)
	Len() int
}

// Key builds the exact-match cache key for an endpoint and term
func Key(url, term string) string {
	return url + ":" + term
}

// New returns an unbounded store when size <= 0, otherwise an LRU of that size
func New(size int) Store {
	if size <= 0 {
		return NewMapStore()
	}
	s, err := NewLRUStore(size)
	if err != nil {
		return NewMapStore()
	}
	return s
}

// MapStore never evicts
type MapStore struct {
	entries map[string][]domain.Suggestion
}

// NewMapStore creates an empty unbounded store
func NewMapStore() *MapStore {
	return &MapStore{entries: make(map[string][]domain.Suggestion)}
}

// Get returns the cached items, or nil and false on a miss
func (s *MapStore) Get(key string) ([]domain.Suggestion, bool) {
	items, ok := s.entries[key]
	return items, ok
}

// Set stores items, replacing any existing entry
func (s *MapStore) Set(key string, items []domain.Suggestion) {
	s.entries[key] = items
}

func (s *MapStore) Len() int {
	return len(s.entries)
}

// LRUStore evicts the least recently used key once full
type LRUStore struct {
	entries *lru.Cache[string, []domain.Suggestion]
}

// NewLRUStore creates a store holding at most size keys
func NewLRUStore(size int) (*LRUStore, error) {
	c, err := lru.New[string, []domain.Suggestion](size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{entries: c}, nil
}

func (s *LRUStore) Get(key string) ([]domain.Suggestion, bool) {
	return s.entries.Get(key)
}

func (s *LRUStore) Set(key string, items []domain.Suggestion) {
	s.entries.Add(key, items)
}

func (s *LRUStore) Len() int {
	return s.entries.Len()
}
