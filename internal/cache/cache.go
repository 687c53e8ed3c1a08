package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Key identifies a derived query result. Parameterized lookups derive child
// keys with For, so invalidating a base key wipes every variant of it.
type Key string

const (
	KeyPendingByWeek   Key = "approvals:pending-by-week"
	KeyPending         Key = "approvals:pending"
	KeyValidationCount Key = "approvals:validation-count"
)

func (k Key) For(parts ...string) Key {
	if len(parts) == 0 {
		return k
	}
	return k + Key(":"+strings.Join(parts, ":"))
}

// Store is the injectable query cache the batch processor and the approval
// queries depend on. Invalidate removes the key and all keys derived from it
// and returns how many entries were dropped.
type Store interface {
	Get(key Key) (interface{}, bool)
	Set(key Key, value interface{})
	Invalidate(key Key) int
}

// LRUStore backs Store with an expirable LRU so stale derived views age out
// even when nothing invalidates them explicitly.
type LRUStore struct {
	lru *expirable.LRU[Key, interface{}]
}

func NewLRUStore(size int, ttl time.Duration) *LRUStore {
	if size <= 0 {
		size = 256
	}
	return &LRUStore{
		lru: expirable.NewLRU[Key, interface{}](size, nil, ttl),
	}
}

func (s *LRUStore) Get(key Key) (interface{}, bool) {
	return s.lru.Get(key)
}

func (s *LRUStore) Set(key Key, value interface{}) {
	s.lru.Add(key, value)
}

func (s *LRUStore) Invalidate(key Key) int {
	removed := 0
	prefix := string(key) + ":"
	for _, k := range s.lru.Keys() {
		if k == key || strings.HasPrefix(string(k), prefix) {
			if s.lru.Remove(k) {
				removed++
			}
		}
	}
	return removed
}
