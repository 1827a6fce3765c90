// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// BeanType is the resolved property schema of one type. It is immutable once built and
// shared by every caller resolving the same type while it stays cached.
type BeanType struct {
	typ        reflect.Type
	typeArgs   map[reflect.Type]reflect.Type
	names      []string
	properties map[string]*Property
}

// Type returns the resolved type.
func (bt *BeanType) Type() reflect.Type {
	return bt.typ
}

// TypeArguments returns the type argument bindings used for the resolution.
func (bt *BeanType) TypeArguments() map[reflect.Type]reflect.Type {
	args := make(map[reflect.Type]reflect.Type, len(bt.typeArgs))
	for from, to := range bt.typeArgs {
		args[from] = to
	}
	return args
}

// Property returns the property called name, or nil.
func (bt *BeanType) Property(name string) *Property {
	return bt.properties[name]
}

// Properties returns all properties in discovery order.
func (bt *BeanType) Properties() []*Property {
	properties := make([]*Property, len(bt.names))
	for i, name := range bt.names {
		properties[i] = bt.properties[name]
	}
	return properties
}

// PropertyNames returns the property names in discovery order.
func (bt *BeanType) PropertyNames() []string {
	names := make([]string, len(bt.names))
	copy(names, bt.names)
	return names
}

func (bt *BeanType) Len() int {
	return len(bt.names)
}

func (bt *BeanType) String() string {
	parts := make([]string, len(bt.names))
	for i, name := range bt.names {
		parts[i] = bt.properties[name].String()
	}
	return fmt.Sprintf("bean %v(%v)", bt.typ, strings.Join(parts, ", "))
}

// Description is a serializable summary of a bean type.
type Description struct {
	Type       string                `json:"type" yaml:"type"`
	Properties []PropertyDescription `json:"properties" yaml:"properties"`
}

// PropertyDescription is a serializable summary of a property.
type PropertyDescription struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Readable bool   `json:"readable" yaml:"readable"`
	Writable bool   `json:"writable" yaml:"writable"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Getter   string `json:"getter,omitempty" yaml:"getter,omitempty"`
	Setter   string `json:"setter,omitempty" yaml:"setter,omitempty"`
}

// Description summarizes the bean type.
func (bt *BeanType) Description() *Description {
	desc := &Description{
		Type:       bt.typ.String(),
		Properties: make([]PropertyDescription, 0, len(bt.names)),
	}

	for _, name := range bt.names {
		prop := bt.properties[name]
		propDesc := PropertyDescription{
			Name:     prop.name,
			Type:     prop.typ.String(),
			Readable: prop.Readable(),
			Writable: prop.Writable(),
		}
		if prop.field != nil {
			propDesc.Field = prop.field.Name
		}
		if prop.getterMethod != nil {
			propDesc.Getter = prop.getterMethod.Name
		}
		if prop.setterMethod != nil {
			propDesc.Setter = prop.setterMethod.Name
		}
		desc.Properties = append(desc.Properties, propDesc)
	}

	return desc
}

// GetTypeHash returns the sha256 hash of the json encoded description. Bean types with the
// same property layout share a hash.
func (bt *BeanType) GetTypeHash() ([32]byte, error) {
	jsonDesc, err := json.Marshal(bt.Description())
	if err != nil {
		return [32]byte{}, err
	}

	return sha256.Sum256(jsonDesc), nil
}
