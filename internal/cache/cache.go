// Package cache provides the in-process translation memo. The cache is an
// explicit object injected into the engine, bounded by entry count and TTL,
// replacing any notion of a global unbounded map.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// keyPrefixRunes is how much of the source text participates in the memo key.
// Long texts with an identical first 100 runes and language pair share an
// entry, so the memo trades exactness for key size on large documents.
const keyPrefixRunes = 100

// Key builds the memo key from the text prefix and the language pair.
func Key(text, sourceLang, targetLang string) string {
	r := []rune(text)
	if len(r) > keyPrefixRunes {
		r = r[:keyPrefixRunes]
	}
	return fmt.Sprintf("%s_%s_%s", string(r), sourceLang, targetLang)
}

// Cache is the memo seam the engine depends on.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Add(key string, value V)
	Len() int
}

// LRU is a size- and TTL-bounded memo backed by an expirable LRU. It is safe
// for concurrent use.
type LRU[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewLRU creates a bounded memo. size ≤ 0 means unbounded entry count
// (entries still expire after ttl); ttl 0 disables expiry.
func NewLRU[V any](size int, ttl time.Duration) *LRU[V] {
	return &LRU[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *LRU[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

func (c *LRU[V]) Len() int {
	return c.lru.Len()
}
