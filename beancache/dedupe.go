// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beancache

import (
	"golang.org/x/sync/singleflight"
)

// DedupeCache wraps a cache so that concurrent misses for the same key share one load.
// keyFn must map distinct keys to distinct strings.
type DedupeCache[K comparable, V any] struct {
	inner Cache[K, V]
	keyFn func(K) string
	group singleflight.Group
}

var _ Cache[string, int] = (*DedupeCache[string, int])(nil)

// NewDedupeCache wraps inner.
func NewDedupeCache[K comparable, V any](inner Cache[K, V], keyFn func(K) string) *DedupeCache[K, V] {
	return &DedupeCache[K, V]{
		inner: inner,
		keyFn: keyFn,
	}
}

func (c *DedupeCache[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if value, ok := c.inner.Get(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(c.keyFn(key), func() (any, error) {
		return c.inner.GetOrLoad(key, load)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return value.(V), nil
}

func (c *DedupeCache[K, V]) Get(key K) (V, bool) { return c.inner.Get(key) }
func (c *DedupeCache[K, V]) Remove(key K)        { c.inner.Remove(key) }
func (c *DedupeCache[K, V]) Clear()              { c.inner.Clear() }
func (c *DedupeCache[K, V]) Len() int            { return c.inner.Len() }
func (c *DedupeCache[K, V]) Keys() []K           { return c.inner.Keys() }
