// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Method is a reflected method of a bean type together with its accessor shape.
type Method struct {
	reflect.Method
	Shape MethodShape

	recvOffset int // 1 when Method.Type carries the receiver as first parameter
}

// In returns the type of the i'th parameter, receiver excluded.
func (m *Method) In(i int) reflect.Type {
	return m.Type.In(i + m.recvOffset)
}

// Out returns the type of the i'th result.
func (m *Method) Out(i int) reflect.Type {
	return m.Type.Out(i)
}

// ResolveContext is the per-resolution state shared by the handler chain. It is created
// for a single resolution and never cached.
type ResolveContext struct {
	// Type is the requested type.
	Type reflect.Type

	// Methods is the exported method set of Type, or of *Type for non-pointer,
	// non-interface types so pointer receiver setters are visible. Sorted by name.
	Methods []Method

	// TypeArguments maps placeholder types to the concrete types they stand for.
	TypeArguments map[reflect.Type]reflect.Type

	// Log receives verbose resolution messages, may be nil.
	Log func(format string, args ...any)
}

// NewResolveContext reflects the method set of t.
func NewResolveContext(t reflect.Type, typeArgs map[reflect.Type]reflect.Type) *ResolveContext {
	return &ResolveContext{
		Type:          t,
		Methods:       methodsOf(t),
		TypeArguments: typeArgs,
	}
}

func (ctx *ResolveContext) logf(format string, args ...any) {
	if ctx.Log != nil {
		ctx.Log(format, args...)
	}
}

// Substitute replaces placeholder types in t by their bound type arguments.
func (ctx *ResolveContext) Substitute(t reflect.Type) reflect.Type {
	return SubstituteType(t, ctx.TypeArguments)
}

// SearchField looks up the struct field backing a property. The match is case-insensitive
// and includes fields promoted from embedded structs. It returns nil for non-struct types,
// missing fields and ambiguous matches.
func (ctx *ResolveContext) SearchField(name string) *reflect.StructField {
	t := ctx.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	field, ok := t.FieldByNameFunc(func(fieldName string) bool {
		return strings.EqualFold(fieldName, name)
	})
	if !ok {
		return nil
	}
	return &field
}

func methodsOf(t reflect.Type) []Method {
	methodSet := t
	recvOffset := 1
	switch t.Kind() {
	case reflect.Interface:
		recvOffset = 0
	case reflect.Pointer:
	default:
		methodSet = reflect.PointerTo(t)
	}

	methods := make([]Method, 0, methodSet.NumMethod())
	for i := 0; i < methodSet.NumMethod(); i++ {
		m := methodSet.Method(i)
		if !m.IsExported() {
			continue
		}

		numOut := m.Type.NumOut()
		methods = append(methods, Method{
			Method:     m,
			recvOffset: recvOffset,
			Shape: MethodShape{
				Name:        m.Name,
				NumIn:       m.Type.NumIn() - recvOffset,
				NumOut:      numOut,
				Variadic:    m.Type.IsVariadic(),
				ErrorResult: numOut > 0 && m.Type.Out(numOut-1) == errorType,
			},
		})
	}

	return methods
}

// SubstituteType replaces every occurrence of a key of args inside t by its value.
// Unnamed composite types (pointers, slices, arrays, maps, channels and funcs) are rebuilt
// around their substituted element types; named types are only replaced as a whole.
func SubstituteType(t reflect.Type, args map[reflect.Type]reflect.Type) reflect.Type {
	if t == nil || len(args) == 0 {
		return t
	}
	if bound, ok := args[t]; ok {
		return bound
	}
	if t.Name() != "" {
		return t
	}

	switch t.Kind() {
	case reflect.Pointer:
		if elem := SubstituteType(t.Elem(), args); elem != t.Elem() {
			return reflect.PointerTo(elem)
		}
	case reflect.Slice:
		if elem := SubstituteType(t.Elem(), args); elem != t.Elem() {
			return reflect.SliceOf(elem)
		}
	case reflect.Array:
		if elem := SubstituteType(t.Elem(), args); elem != t.Elem() {
			return reflect.ArrayOf(t.Len(), elem)
		}
	case reflect.Chan:
		if elem := SubstituteType(t.Elem(), args); elem != t.Elem() {
			return reflect.ChanOf(t.ChanDir(), elem)
		}
	case reflect.Map:
		key := SubstituteType(t.Key(), args)
		elem := SubstituteType(t.Elem(), args)
		if key != t.Key() || elem != t.Elem() {
			return reflect.MapOf(key, elem)
		}
	case reflect.Func:
		changed := false
		in := make([]reflect.Type, t.NumIn())
		for i := range in {
			in[i] = SubstituteType(t.In(i), args)
			changed = changed || in[i] != t.In(i)
		}
		out := make([]reflect.Type, t.NumOut())
		for i := range out {
			out[i] = SubstituteType(t.Out(i), args)
			changed = changed || out[i] != t.Out(i)
		}
		if changed {
			return reflect.FuncOf(in, out, t.IsVariadic())
		}
	}

	return t
}

// TypeKey identifies a resolution: the requested type plus its type argument bindings.
type TypeKey struct {
	Type reflect.Type
	Args string // canonical rendering of the bindings, empty when unbound
}

// NewTypeKey builds the cache key for resolving t with the given bindings.
func NewTypeKey(t reflect.Type, typeArgs map[reflect.Type]reflect.Type) TypeKey {
	if len(typeArgs) == 0 {
		return TypeKey{Type: t}
	}

	pairs := make([]string, 0, len(typeArgs))
	for from, to := range typeArgs {
		pairs = append(pairs, qualifiedTypeName(from)+"="+qualifiedTypeName(to))
	}
	sort.Strings(pairs)

	return TypeKey{Type: t, Args: strings.Join(pairs, ";")}
}

// String renders the key uniquely: type identity plus bindings.
func (k TypeKey) String() string {
	return fmt.Sprintf("%p|%v|%v", k.Type, k.Type, k.Args)
}

func qualifiedTypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if name := t.Name(); name != "" {
		if t.PkgPath() != "" {
			name = t.PkgPath() + "." + name
		}
		if strings.Contains(name, "[") {
			// type arguments of generic instances carry short package names
			name = fmt.Sprintf("%s@%p", name, t)
		}
		return name
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + qualifiedTypeName(t.Elem())
	case reflect.Slice:
		return "[]" + qualifiedTypeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), qualifiedTypeName(t.Elem()))
	case reflect.Map:
		return "map[" + qualifiedTypeName(t.Key()) + "]" + qualifiedTypeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + qualifiedTypeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + qualifiedTypeName(t.Elem())
		default:
			return "chan " + qualifiedTypeName(t.Elem())
		}
	}

	// func, struct and interface literals
	return fmt.Sprintf("%s@%p", t.String(), t)
}
