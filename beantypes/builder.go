// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"fmt"
	"reflect"

	"github.com/pk910/dynamic-bean/beanutils"
)

// Builder accumulates the properties of one type while the handler chain runs.
//
// Handlers read the properties collected so far through the builder itself. Build is
// called once, by the resolver, after the chain finished; it seals the builder and
// returns an immutable snapshot.
type Builder struct {
	typ        reflect.Type
	typeArgs   map[reflect.Type]reflect.Type
	names      []string
	properties map[string]*Property
	built      *BeanType
}

// NewBuilder creates a builder for t.
func NewBuilder(t reflect.Type, typeArgs map[reflect.Type]reflect.Type) *Builder {
	return &Builder{
		typ:        t,
		typeArgs:   typeArgs,
		properties: map[string]*Property{},
	}
}

func (b *Builder) Type() reflect.Type {
	return b.typ
}

func (b *Builder) HasProperty(name string) bool {
	_, exists := b.properties[name]
	return exists
}

func (b *Builder) Property(name string) *Property {
	return b.properties[name]
}

// Properties returns the properties added so far, in insertion order.
func (b *Builder) Properties() []*Property {
	properties := make([]*Property, len(b.names))
	for i, name := range b.names {
		properties[i] = b.properties[name]
	}
	return properties
}

func (b *Builder) Len() int {
	return len(b.names)
}

// AddProperty appends prop. Adding a name twice or adding after Build fails.
func (b *Builder) AddProperty(prop *Property) error {
	if b.built != nil {
		return beanutils.ErrBuilderSealed
	}
	if prop == nil {
		return fmt.Errorf("%w: property", beanutils.ErrNilValue)
	}
	if b.HasProperty(prop.name) {
		return fmt.Errorf("%w: %v", beanutils.ErrDuplicateProperty, prop.name)
	}

	b.names = append(b.names, prop.name)
	b.properties[prop.name] = prop
	return nil
}

// Build seals the builder and returns the bean type. Later calls return the same instance.
func (b *Builder) Build() *BeanType {
	if b.built != nil {
		return b.built
	}

	typeArgs := make(map[reflect.Type]reflect.Type, len(b.typeArgs))
	for from, to := range b.typeArgs {
		typeArgs[from] = to
	}

	bt := &BeanType{
		typ:        b.typ,
		typeArgs:   typeArgs,
		names:      b.names,
		properties: b.properties,
	}
	for _, prop := range bt.properties {
		prop.owner = bt
	}

	b.built = bt
	return bt
}
