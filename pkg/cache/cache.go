// Package cache is a small memoization layer for read queries. Entries carry
// a set of tags so one mutation can drop every cached view it affects, and a
// fixed TTL bounds staleness when nothing invalidates them. The backing
// store is injectable so call sites can run against a no-op store in tests.
//
// The cache is never the source of truth: on any disagreement the database
// wins once the entry expires or is invalidated.
package cache

import (
	"context"
	"sync"
	"time"
)

type (
	Entry struct {
		Value     interface{}
		Tags      []string
		ExpiresAt time.Time
	}

	Store interface {
		Get(key string) (*Entry, bool)
		Set(key string, entry *Entry)
		Delete(key string)
		DeleteByTag(tag string)
	}

	Cache struct {
		store Store
		ttl   time.Duration
	}
)

func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// GetOrLoad returns the cached value for key if present and fresh, otherwise
// runs load and memoizes its result under key with the given tags.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, tags []string, load func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := c.store.Get(key); ok {
		if time.Now().Before(entry.ExpiresAt) {
			if value, ok := entry.Value.(T); ok {
				return value, nil
			}
		}
		c.store.Delete(key)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	c.store.Set(key, &Entry{
		Value:     value,
		Tags:      tags,
		ExpiresAt: time.Now().Add(c.ttl),
	})
	return value, nil
}

// Invalidate drops every entry carrying any of the given tags.
func (c *Cache) Invalidate(tags ...string) {
	for _, tag := range tags {
		c.store.DeleteByTag(tag)
	}
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	byTag   map[string]map[string]struct{}
}

func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]*Entry),
		byTag:   make(map[string]map[string]struct{}),
	}
}

func (s *memoryStore) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok
}

func (s *memoryStore) Set(key string, entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
	s.entries[key] = entry
	for _, tag := range entry.Tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

func (s *memoryStore) DeleteByTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.byTag[tag] {
		s.removeLocked(key)
	}
}

func (s *memoryStore) removeLocked(key string) {
	entry, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, tag := range entry.Tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}

// noopStore disables memoization entirely; every GetOrLoad hits the loader.
type noopStore struct{}

func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) Get(string) (*Entry, bool) { return nil, false }
func (noopStore) Set(string, *Entry)        {}
func (noopStore) Delete(string)             {}
func (noopStore) DeleteByTag(string)        {}
