// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"slices"
)

// AccessorSet is a name keyed set of accessors that remembers insertion order.
// Putting an existing name replaces the accessor but keeps its original position.
type AccessorSet[A any] struct {
	names []string
	items map[string]A
}

// NewAccessorSet creates an empty accessor set.
func NewAccessorSet[A any]() *AccessorSet[A] {
	return &AccessorSet[A]{
		items: map[string]A{},
	}
}

func (s *AccessorSet[A]) Put(name string, accessor A) {
	if _, exists := s.items[name]; !exists {
		s.names = append(s.names, name)
	}
	s.items[name] = accessor
}

func (s *AccessorSet[A]) Get(name string) (A, bool) {
	accessor, ok := s.items[name]
	return accessor, ok
}

func (s *AccessorSet[A]) Delete(name string) {
	if _, exists := s.items[name]; !exists {
		return
	}
	delete(s.items, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
}

// Names returns the accessor names in insertion order.
func (s *AccessorSet[A]) Names() []string {
	return slices.Clone(s.names)
}

func (s *AccessorSet[A]) Len() int {
	return len(s.names)
}

// MergeAccessors pairs the getters and setters found by one scan into properties.
//
// Getters are visited in insertion order. A getter without a setter of the same name
// is emitted read-only. A getter whose setter has the same value type (as decided by
// sameType) is emitted read-write and the setter is consumed. A getter whose setter has
// a different value type is dropped and the setter stays pending. Finally every pending
// setter is emitted write-only, in insertion order.
//
// emit receives nil for the missing side of a read-only or write-only property.
// The first error returned by emit stops the merge.
func MergeAccessors[A any](getters, setters *AccessorSet[A], sameType func(getter, setter A) bool, emit func(name string, getter, setter *A) error) error {
	for _, name := range getters.names {
		getter := getters.items[name]
		setter, hasSetter := setters.Get(name)

		switch {
		case !hasSetter:
			if err := emit(name, &getter, nil); err != nil {
				return err
			}
		case sameType(getter, setter):
			if err := emit(name, &getter, &setter); err != nil {
				return err
			}
			setters.Delete(name)
		}
	}

	for _, name := range setters.Names() {
		setter := setters.items[name]
		if err := emit(name, nil, &setter); err != nil {
			return err
		}
	}

	return nil
}
