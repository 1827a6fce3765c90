// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beancache

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a bounded cache evicting the least recently used entry once full.
type LRUCache[K comparable, V any] struct {
	size    int
	entries *lru.Cache[K, V]
}

var _ Cache[string, int] = (*LRUCache[string, int])(nil)

// NewLRUCache creates a cache holding at most size entries. A size below 1 is treated as 1.
func NewLRUCache[K comparable, V any](size int) *LRUCache[K, V] {
	if size < 1 {
		size = 1
	}

	// lru.New only fails for sizes below 1
	entries, _ := lru.New[K, V](size)

	return &LRUCache[K, V]{
		size:    size,
		entries: entries,
	}
}

func (c *LRUCache[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if value, ok := c.entries.Get(key); ok {
		return value, nil
	}

	// load runs unlocked, a loader may resolve other keys through the same cache
	value, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}

	if found, _ := c.entries.ContainsOrAdd(key, value); found {
		if existing, ok := c.entries.Get(key); ok {
			return existing, nil
		}
	}

	return value, nil
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	return c.entries.Get(key)
}

func (c *LRUCache[K, V]) Remove(key K) {
	c.entries.Remove(key)
}

func (c *LRUCache[K, V]) Clear() {
	c.entries.Purge()
}

func (c *LRUCache[K, V]) Len() int {
	return c.entries.Len()
}

// Keys returns the keys ordered from most to least recently used.
func (c *LRUCache[K, V]) Keys() []K {
	keys := c.entries.Keys()
	slices.Reverse(keys)
	return keys
}
