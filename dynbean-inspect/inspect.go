// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package main

import (
	"go/types"

	"github.com/pk910/dynamic-bean/beantypes"
)

// StaticProperty is a property found on a go/types type.
type StaticProperty struct {
	Name   string
	Type   string
	Getter string
	Setter string
	Style  string
}

func (p *StaticProperty) Access() string {
	switch {
	case p.Getter != "" && p.Setter != "":
		return "rw"
	case p.Getter != "":
		return "r"
	default:
		return "w"
	}
}

type staticAccessor struct {
	method string
	typ    types.Type
}

var errorType = types.Universe.Lookup("error").Type()

// methodShape describes fn the way the runtime scanner describes a reflect.Method.
func methodShape(fn *types.Func) (beantypes.MethodShape, *types.Signature) {
	sig := fn.Type().(*types.Signature)
	shape := beantypes.MethodShape{
		Name:     fn.Name(),
		NumIn:    sig.Params().Len(),
		NumOut:   sig.Results().Len(),
		Variadic: sig.Variadic(),
	}
	if shape.NumOut > 0 {
		shape.ErrorResult = types.Identical(sig.Results().At(shape.NumOut-1).Type(), errorType)
	}
	return shape, sig
}

// methodSet returns the method set the runtime resolver sees for t: the one of *T for
// concrete types, the one of T for interfaces and pointers.
func methodSet(t types.Type) *types.MethodSet {
	switch t.Underlying().(type) {
	case *types.Interface, *types.Pointer:
		return types.NewMethodSet(t)
	}
	return types.NewMethodSet(types.NewPointer(t))
}

// inspectType runs the accessor styles over the method set of t. Earlier styles win
// property names, like handlers earlier in a resolver chain.
func inspectType(t types.Type, pkg *types.Package, styles []beantypes.Style) []StaticProperty {
	qualifier := types.RelativeTo(pkg)
	mset := methodSet(t)

	properties := []StaticProperty{}
	found := map[string]bool{}

	for _, style := range styles {
		getters := beantypes.NewAccessorSet[staticAccessor]()
		setters := beantypes.NewAccessorSet[staticAccessor]()

		for i := 0; i < mset.Len(); i++ {
			fn, ok := mset.At(i).Obj().(*types.Func)
			if !ok || !fn.Exported() {
				continue
			}

			shape, sig := methodShape(fn)
			kind, name := style.Classify(shape)
			if kind == beantypes.AccessorNone || name == "" || found[name] {
				continue
			}

			if kind == beantypes.AccessorGetter {
				getters.Put(name, staticAccessor{method: fn.Name(), typ: sig.Results().At(0).Type()})
			} else {
				setters.Put(name, staticAccessor{method: fn.Name(), typ: sig.Params().At(0).Type()})
			}
		}

		sameType := func(getter, setter staticAccessor) bool {
			return types.Identical(getter.typ, setter.typ)
		}

		_ = beantypes.MergeAccessors(getters, setters, sameType, func(name string, getter, setter *staticAccessor) error {
			prop := StaticProperty{Name: name, Style: style.Name()}
			if getter != nil {
				prop.Getter = getter.method
				prop.Type = types.TypeString(getter.typ, qualifier)
			}
			if setter != nil {
				prop.Setter = setter.method
				prop.Type = types.TypeString(setter.typ, qualifier)
			}

			found[name] = true
			properties = append(properties, prop)
			return nil
		})
	}

	return properties
}
