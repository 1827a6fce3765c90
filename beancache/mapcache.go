// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beancache

import (
	"sync"
)

// MapCache is an unbounded cache backed by a sync.Map.
type MapCache[K comparable, V any] struct {
	entries sync.Map // map[K]V
}

var _ Cache[string, int] = (*MapCache[string, int])(nil)

// NewMapCache creates an unbounded cache.
func NewMapCache[K comparable, V any]() *MapCache[K, V] {
	return &MapCache[K, V]{}
}

func (c *MapCache[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if value, ok := c.entries.Load(key); ok {
		return value.(V), nil
	}

	value, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}

	actual, _ := c.entries.LoadOrStore(key, value)
	return actual.(V), nil
}

func (c *MapCache[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return value.(V), true
}

func (c *MapCache[K, V]) Remove(key K) {
	c.entries.Delete(key)
}

func (c *MapCache[K, V]) Clear() {
	c.entries.Clear()
}

func (c *MapCache[K, V]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *MapCache[K, V]) Keys() []K {
	keys := []K{}
	c.entries.Range(func(key, _ any) bool {
		keys = append(keys, key.(K))
		return true
	})
	return keys
}
