// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

// Package beanyaml encodes bean values and bean type descriptions as yaml and decodes
// yaml mappings into beans through their setters.
//
// Mapping keys are property names, or the name of the yaml struct tag of the backing
// field when there is one. A tag name of "-" hides the property.
package beanyaml

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pk910/dynamic-bean/beantypes"
	"github.com/pk910/dynamic-bean/beanutils"
)

var ErrNotMapping = fmt.Errorf("yaml document is not a mapping")

// KeyOf returns the yaml key of prop, or "" when the property is hidden.
func KeyOf(prop *beantypes.Property) string {
	if tag, ok := prop.Tag("yaml"); ok {
		name, _, _ := strings.Cut(tag, ",")
		switch name {
		case "-":
			return ""
		case "":
		default:
			return name
		}
	}
	return prop.Name()
}

// MarshalDescription encodes the description of bt.
func MarshalDescription(bt *beantypes.BeanType) ([]byte, error) {
	return yaml.Marshal(bt.Description())
}

// Marshal encodes the readable properties of obj as a yaml mapping, in property order.
func Marshal(resolver *beantypes.Resolver, obj any) ([]byte, error) {
	node, err := encodeNode(resolver, obj)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Encode writes the yaml encoding of obj to w.
func Encode(w io.Writer, resolver *beantypes.Resolver, obj any) error {
	node, err := encodeNode(resolver, obj)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return err
	}
	return encoder.Close()
}

func encodeNode(resolver *beantypes.Resolver, obj any) (*yaml.Node, error) {
	if obj == nil {
		return nil, beanutils.ErrNilValue
	}
	bt, err := resolver.Resolve(reflect.TypeOf(obj))
	if err != nil {
		return nil, err
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, prop := range bt.Properties() {
		key := KeyOf(prop)
		if key == "" || !prop.Readable() {
			continue
		}

		value, err := prop.Get(obj)
		if err != nil {
			return nil, fmt.Errorf("property %v: %w", prop.Name(), err)
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("property %v: %w", prop.Name(), err)
		}

		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
	}

	return mapping, nil
}

// Unmarshal decodes a yaml mapping into the writable properties of obj, which must be a
// pointer. Keys without a writable property are ignored.
func Unmarshal(resolver *beantypes.Resolver, data []byte, obj any) error {
	return unmarshal(resolver, data, obj, false)
}

// UnmarshalStrict is Unmarshal failing on keys without a writable property.
func UnmarshalStrict(resolver *beantypes.Resolver, data []byte, obj any) error {
	return unmarshal(resolver, data, obj, true)
}

func unmarshal(resolver *beantypes.Resolver, data []byte, obj any, strict bool) error {
	if obj == nil {
		return beanutils.ErrNilValue
	}

	document := &yaml.Node{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return err
	}
	if len(document.Content) == 0 {
		return nil
	}

	mapping := document.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return fmt.Errorf("%w (line %d)", ErrNotMapping, mapping.Line)
	}

	bt, err := resolver.Resolve(reflect.TypeOf(obj))
	if err != nil {
		return err
	}

	properties := make(map[string]*beantypes.Property, bt.Len())
	for _, prop := range bt.Properties() {
		if key := KeyOf(prop); key != "" {
			properties[key] = prop
		}
	}

	target := reflect.ValueOf(obj)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		prop := properties[keyNode.Value]
		if prop == nil || !prop.Writable() {
			if strict {
				return fmt.Errorf("line %d: %w: %v", keyNode.Line, beanutils.ErrPropertyNotFound, keyNode.Value)
			}
			continue
		}

		value := reflect.New(prop.Type())
		if err := valueNode.Decode(value.Interface()); err != nil {
			return fmt.Errorf("line %d: property %v: %w", valueNode.Line, prop.Name(), err)
		}
		if err := prop.SetValue(target, value.Elem()); err != nil {
			return fmt.Errorf("line %d: property %v: %w", valueNode.Line, prop.Name(), err)
		}
	}

	return nil
}
