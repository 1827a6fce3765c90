// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

// Package beancache provides get-or-compute caches with pluggable eviction policies.
//
// All caches are safe for concurrent use. A load running concurrently for the same key
// in several goroutines is tolerated: every loader runs, the first stored value wins and
// is returned to all of them (except for the nop cache, which never stores anything).
package beancache

// Cache is a get-or-compute key value store.
type Cache[K comparable, V any] interface {
	// GetOrLoad returns the cached value for key, calling load and storing its result on a miss.
	// Errors from load are returned unchanged and nothing is stored.
	GetOrLoad(key K, load func(K) (V, error)) (V, error)

	// Get returns the cached value for key.
	Get(key K) (V, bool)

	// Remove drops the entry for key.
	Remove(key K)

	// Clear drops all entries.
	Clear()

	// Len returns the number of live entries.
	Len() int

	// Keys returns the keys of all live entries in no particular order.
	Keys() []K
}

// NopCache never memoizes, every GetOrLoad calls load.
type NopCache[K comparable, V any] struct{}

var _ Cache[string, int] = NopCache[string, int]{}

// NewNopCache returns a cache that stores nothing.
func NewNopCache[K comparable, V any]() NopCache[K, V] {
	return NopCache[K, V]{}
}

func (NopCache[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	return load(key)
}

func (NopCache[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}

func (NopCache[K, V]) Remove(K) {}

func (NopCache[K, V]) Clear() {}

func (NopCache[K, V]) Len() int { return 0 }

func (NopCache[K, V]) Keys() []K { return nil }
