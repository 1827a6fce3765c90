// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beancache

import (
	"runtime"
	"sync"
	"weak"
)

// WeakCache holds its values through weak pointers. An entry stays usable as long as
// something else references the value; after the value is collected the entry reads as
// a miss and a cleanup removes the slot.
type WeakCache[K comparable, V any] struct {
	mutex   sync.Mutex
	entries map[K]weak.Pointer[V]
}

var _ Cache[string, *int] = (*WeakCache[string, int])(nil)

type weakSlot[K comparable, V any] struct {
	key K
	ptr weak.Pointer[V]
}

// NewWeakCache creates a cache with weakly referenced values.
func NewWeakCache[K comparable, V any]() *WeakCache[K, V] {
	return &WeakCache[K, V]{
		entries: make(map[K]weak.Pointer[V]),
	}
}

// GetOrLoad returns the live value for key or loads it. Nil values are returned but never stored.
func (c *WeakCache[K, V]) GetOrLoad(key K, load func(K) (*V, error)) (*V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := load(key)
	if err != nil || value == nil {
		return value, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if ptr, ok := c.entries[key]; ok {
		if existing := ptr.Value(); existing != nil {
			return existing, nil
		}
	}

	ptr := weak.Make(value)
	c.entries[key] = ptr
	runtime.AddCleanup(value, c.release, weakSlot[K, V]{key: key, ptr: ptr})

	return value, nil
}

func (c *WeakCache[K, V]) release(slot weakSlot[K, V]) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.entries[slot.key] == slot.ptr {
		delete(c.entries, slot.key)
	}
}

func (c *WeakCache[K, V]) Get(key K) (*V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ptr, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	value := ptr.Value()
	if value == nil {
		delete(c.entries, key)
		return nil, false
	}
	return value, true
}

func (c *WeakCache[K, V]) Remove(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

func (c *WeakCache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[K]weak.Pointer[V])
}

func (c *WeakCache[K, V]) Len() int {
	return len(c.Keys())
}

func (c *WeakCache[K, V]) Keys() []K {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys := make([]K, 0, len(c.entries))
	for key, ptr := range c.entries {
		if ptr.Value() != nil {
			keys = append(keys, key)
		}
	}
	return keys
}
