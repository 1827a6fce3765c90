// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"context"
	"errors"
	"fmt"
	randv1 "math/rand"
	randv2 "math/rand/v2"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pk910/dynamic-bean/beancache"
	"github.com/pk910/dynamic-bean/beanutils"
)

type expectedProperty struct {
	name     string
	typ      reflect.Type
	readable bool
	writable bool
}

func checkProperties(t *testing.T, bt *BeanType, expected []expectedProperty) {
	t.Helper()

	names := bt.PropertyNames()
	if len(names) != len(expected) {
		t.Fatalf("expected %d properties, got %d: %v", len(expected), len(names), bt)
	}

	for i, exp := range expected {
		if names[i] != exp.name {
			t.Errorf("property %d: expected name %q, got %q", i, exp.name, names[i])
			continue
		}
		prop := bt.Property(exp.name)
		if prop.Type() != exp.typ {
			t.Errorf("property %q: expected type %v, got %v", exp.name, exp.typ, prop.Type())
		}
		if prop.Readable() != exp.readable {
			t.Errorf("property %q: expected readable=%v", exp.name, exp.readable)
		}
		if prop.Writable() != exp.writable {
			t.Errorf("property %q: expected writable=%v", exp.name, exp.writable)
		}
		if prop.Owner() != bt {
			t.Errorf("property %q: owner not set", exp.name)
		}
	}
}

func TestResolver_BeanStyle(t *testing.T) {
	resolver := NewResolver(DefaultHandlers(), nil)

	tests := []struct {
		name     string
		typ      reflect.Type
		expected []expectedProperty
	}{
		{
			name: "Point",
			typ:  reflect.TypeOf(Point{}),
			expected: []expectedProperty{
				{"x", intType, true, true},
				{"y", intType, true, false},
			},
		},
		{
			name: "PointerToPoint",
			typ:  reflect.TypeOf(&Point{}),
			expected: []expectedProperty{
				{"x", intType, true, true},
				{"y", intType, true, false},
			},
		},
		{
			name: "TypeMismatch",
			typ:  reflect.TypeOf(mismatchBean{}),
			expected: []expectedProperty{
				{"only", stringType, false, true},
				{"v", stringType, false, true},
			},
		},
		{
			name: "ErrorResults",
			typ:  reflect.TypeOf(conn{}),
			expected: []expectedProperty{
				{"addr", stringType, true, true},
			},
		},
		{
			name: "GenericInstance",
			typ:  reflect.TypeOf(pair[int]{}),
			expected: []expectedProperty{
				{"first", intType, true, true},
			},
		},
		{
			name: "Embedded",
			typ:  reflect.TypeOf(derived{}),
			expected: []expectedProperty{
				{"id", intType, true, false},
				{"label", stringType, true, false},
			},
		},
		{
			name: "Interface",
			typ:  reflect.TypeOf((*named)(nil)).Elem(),
			expected: []expectedProperty{
				{"name", stringType, true, true},
			},
		},
		{
			name:     "Empty",
			typ:      reflect.TypeOf(struct{}{}),
			expected: []expectedProperty{},
		},
		{
			name:     "Builtin",
			typ:      intType,
			expected: []expectedProperty{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt, err := resolver.Resolve(tt.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bt.Type() != tt.typ {
				t.Errorf("expected type %v, got %v", tt.typ, bt.Type())
			}
			checkProperties(t, bt, tt.expected)
		})
	}
}

func TestResolver_RecordStyle(t *testing.T) {
	resolver := NewResolver([]Handler{RecordStyleHandler()}, nil)

	bt, err := resolver.Resolve(reflect.TypeOf(recordBean{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkProperties(t, bt, []expectedProperty{
		{"Name", stringType, true, false},
		{"Age", intType, false, true},
	})
	if bt.Property("String") != nil {
		t.Errorf("String must not be a property")
	}
}

func TestResolver_GoStyle(t *testing.T) {
	resolver := NewResolver([]Handler{GoStyleHandler()}, nil)

	bt, err := resolver.Resolve(reflect.TypeOf(account{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkProperties(t, bt, []expectedProperty{
		{"balance", intType, true, false},
		{"owner", stringType, true, true},
	})
}

func TestResolver_Fields(t *testing.T) {
	resolver := NewResolver(DefaultHandlers(), nil)

	bt, err := resolver.Resolve(reflect.TypeOf(conn{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr := bt.Property("addr")
	if addr.Field() == nil || addr.Field().Name != "Addr" {
		t.Fatalf("expected backing field Addr, got %v", addr.Field())
	}
	if tag, ok := addr.Tag("json"); !ok || tag != "addr" {
		t.Errorf("expected json tag addr, got %q", tag)
	}
	if addr.GetterMethod().Name != "GetAddr" || addr.SetterMethod().Name != "SetAddr" {
		t.Errorf("unexpected accessor methods")
	}

	bt, err = resolver.Resolve(reflect.TypeOf(derived{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field := bt.Property("id").Field(); field == nil || field.Name != "id" || len(field.Index) != 2 {
		t.Errorf("expected promoted field id, got %v", field)
	}
	if _, ok := bt.Property("label").Tag("json"); ok {
		t.Errorf("expected no tag on label")
	}
}

func TestResolver_TypeArguments(t *testing.T) {
	resolver := NewResolver(DefaultHandlers(), beancache.NewMapCache[TypeKey, *BeanType]())
	boxType := reflect.TypeOf(box{})

	bound, err := resolver.ResolveWithArguments(boxType, map[reflect.Type]reflect.Type{anyType: stringType})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkProperties(t, bound, []expectedProperty{
		{"items", reflect.TypeOf([]string{}), true, true},
		{"value", stringType, true, true},
	})

	plain, err := resolver.Resolve(boxType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plain == bound {
		t.Fatalf("bound and plain resolution must not share a cache entry")
	}
	if plain.Property("value").Type() != anyType {
		t.Errorf("expected unbound value type any, got %v", plain.Property("value").Type())
	}

	if args := bound.TypeArguments(); args[anyType] != stringType {
		t.Errorf("expected bound type arguments, got %v", args)
	}
}

func TestNewTypeKey_SamePackageName(t *testing.T) {
	// both render as "[]*rand.Rand" through reflect.Type.String
	v1Type := reflect.TypeOf([]*randv1.Rand{})
	v2Type := reflect.TypeOf([]*randv2.Rand{})
	if v1Type.String() != v2Type.String() {
		t.Fatalf("expected matching short names, got %v and %v", v1Type, v2Type)
	}

	boxType := reflect.TypeOf(box{})
	key1 := NewTypeKey(boxType, map[reflect.Type]reflect.Type{anyType: v1Type})
	key2 := NewTypeKey(boxType, map[reflect.Type]reflect.Type{anyType: v2Type})
	if key1 == key2 {
		t.Fatalf("expected distinct keys, both are %v", key1)
	}
	if !strings.Contains(key1.Args, "[]*math/rand.Rand") || !strings.Contains(key2.Args, "[]*math/rand/v2.Rand") {
		t.Errorf("expected package paths in keys, got %q and %q", key1.Args, key2.Args)
	}

	resolver := NewResolver(DefaultHandlers(), beancache.NewMapCache[TypeKey, *BeanType]())
	bound1, err := resolver.ResolveWithArguments(boxType, map[reflect.Type]reflect.Type{anyType: v1Type})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound2, err := resolver.ResolveWithArguments(boxType, map[reflect.Type]reflect.Type{anyType: v2Type})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound1 == bound2 {
		t.Fatalf("bindings from different packages must not share a cache entry")
	}
	if got := bound2.Property("value").Type(); got != v2Type {
		t.Errorf("expected value type %v, got %v", v2Type, got)
	}
}

func TestQualifiedTypeName(t *testing.T) {
	pkg := reflect.TypeOf(box{}).PkgPath()

	tests := []struct {
		in   reflect.Type
		want string
	}{
		{intType, "int"},
		{reflect.TypeOf(box{}), pkg + ".box"},
		{reflect.TypeOf(&box{}), "*" + pkg + ".box"},
		{reflect.TypeOf([]box{}), "[]" + pkg + ".box"},
		{reflect.TypeOf([2]*box{}), "[2]*" + pkg + ".box"},
		{reflect.TypeOf(map[string]box{}), "map[string]" + pkg + ".box"},
		{reflect.TypeOf(make(<-chan box)), "<-chan " + pkg + ".box"},
		{reflect.TypeOf(make(chan<- box)), "chan<- " + pkg + ".box"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := qualifiedTypeName(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSubstituteType(t *testing.T) {
	args := map[reflect.Type]reflect.Type{anyType: intType}

	tests := []struct {
		in  reflect.Type
		out reflect.Type
	}{
		{anyType, intType},
		{reflect.TypeOf((*any)(nil)), reflect.TypeOf((*int)(nil))},
		{reflect.TypeOf([]any{}), reflect.TypeOf([]int{})},
		{reflect.TypeOf([2]any{}), reflect.TypeOf([2]int{})},
		{reflect.TypeOf(map[string]any{}), reflect.TypeOf(map[string]int{})},
		{reflect.TypeOf(make(chan any)), reflect.TypeOf(make(chan int))},
		{reflect.TypeOf(func(any) error { return nil }), reflect.TypeOf(func(int) error { return nil })},
		{stringType, stringType},
		{reflect.TypeOf(beanutils.ErrNilType), reflect.TypeOf(beanutils.ErrNilType)},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := SubstituteType(tt.in, args); got != tt.out {
				t.Errorf("expected %v, got %v", tt.out, got)
			}
		})
	}
}

func TestResolver_Cache(t *testing.T) {
	var calls atomic.Int32
	counter := HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		calls.Add(1)
		return Continue, nil
	})

	resolver := NewResolver([]Handler{counter, BeanStyleHandler()}, beancache.NewMapCache[TypeKey, *BeanType]())
	pointType := reflect.TypeOf(Point{})

	first, err := resolver.Resolve(pointType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := resolver.Resolve(pointType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical descriptor from cache")
	}
	if calls.Load() != 1 {
		t.Errorf("expected chain to run once, ran %d times", calls.Load())
	}

	resolver.Cache().Remove(NewTypeKey(pointType, nil))
	third, err := resolver.Resolve(pointType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Errorf("expected a fresh descriptor after eviction")
	}
	if !reflect.DeepEqual(third.PropertyNames(), first.PropertyNames()) {
		t.Errorf("re-resolution changed the property layout")
	}
	if calls.Load() != 2 {
		t.Errorf("expected chain to run twice, ran %d times", calls.Load())
	}
}

func TestResolver_NoCache(t *testing.T) {
	resolver := NewResolver(DefaultHandlers(), nil)
	pointType := reflect.TypeOf(Point{})

	first, _ := resolver.Resolve(pointType)
	second, _ := resolver.Resolve(pointType)
	if first == second {
		t.Errorf("expected distinct descriptors without cache")
	}
}

func TestResolver_FirstHandlerWins(t *testing.T) {
	custom := HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		getter := InvokerFunc(func(obj reflect.Value, args ...reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf("custom"), nil
		})
		prop, err := NewProperty("x", stringType, getter, nil, nil, nil, nil)
		if err != nil {
			return Continue, err
		}
		return Continue, builder.AddProperty(prop)
	})

	resolver := NewResolver(DefaultHandlers(), nil).Extend(custom)
	if len(resolver.Handlers()) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(resolver.Handlers()))
	}

	bt, err := resolver.Resolve(reflect.TypeOf(Point{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkProperties(t, bt, []expectedProperty{
		{"x", stringType, true, false},
		{"y", intType, true, false},
	})

	value, err := bt.Property("x").Get(&Point{x: 5})
	if err != nil || value != "custom" {
		t.Errorf("expected custom getter, got %v (%v)", value, err)
	}
}

func addNamed(name string) Handler {
	return HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		getter := InvokerFunc(func(obj reflect.Value, args ...reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(name), nil
		})
		prop, err := NewProperty(name, stringType, getter, nil, nil, nil, nil)
		if err != nil {
			return Continue, err
		}
		return Continue, builder.AddProperty(prop)
	})
}

func jump(state JumpState) Handler {
	return HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		return state, nil
	})
}

func TestResolver_JumpStates(t *testing.T) {
	tests := []struct {
		name     string
		state    JumpState
		expected string
	}{
		{"Continue", Continue, "a,b,c"},
		{"Break", Break, "a,c"},
		{"Return", Return, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := NewResolver([]Handler{addNamed("a"), jump(tt.state), addNamed("b")}, nil)
			outer := NewResolver([]Handler{inner.AsHandler(), addNamed("c")}, nil)

			bt, err := outer.Resolve(reflect.TypeOf(struct{}{}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Join(bt.PropertyNames(), ","); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	resolver := NewResolver(DefaultHandlers(), nil)
	if _, err := resolver.Resolve(nil); !errors.Is(err, beanutils.ErrNilType) {
		t.Errorf("expected ErrNilType, got %v", err)
	}

	failure := errors.New("broken handler")
	failing := NewResolver([]Handler{HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		return Continue, failure
	})}, beancache.NewMapCache[TypeKey, *BeanType]())

	_, err := failing.Resolve(reflect.TypeOf(Point{}))
	if !errors.Is(err, failure) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Point") {
		t.Errorf("expected type name in error, got %v", err)
	}
	if failing.Cache().Len() != 0 {
		t.Errorf("failed resolutions must not be cached")
	}

	duplicate := NewResolver([]Handler{addNamed("a"), addNamed("a")}, nil)
	if _, err := duplicate.Resolve(reflect.TypeOf(Point{})); !errors.Is(err, beanutils.ErrDuplicateProperty) {
		t.Errorf("expected ErrDuplicateProperty, got %v", err)
	}
}

func TestResolver_Warm(t *testing.T) {
	var calls atomic.Int32
	counter := HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		calls.Add(1)
		return Continue, nil
	})
	resolver := NewResolver([]Handler{counter, BeanStyleHandler()}, beancache.NewMapCache[TypeKey, *BeanType]())

	types := []reflect.Type{
		reflect.TypeOf(Point{}),
		reflect.TypeOf(conn{}),
		reflect.TypeOf(derived{}),
	}
	if err := resolver.Warm(context.Background(), types...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 resolutions, got %d", calls.Load())
	}

	for _, typ := range types {
		if _, err := resolver.Resolve(typ); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Errorf("expected cache hits after warm, got %d resolutions", calls.Load())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := resolver.Warm(ctx, reflect.TypeOf(recordBean{})); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResolver_LogCb(t *testing.T) {
	messages := []string{}
	resolver := NewResolver([]Handler{BeanStyleHandler(), BeanStyleHandler()}, nil)
	resolver.SetLogCb(func(format string, args ...any) {
		messages = append(messages, fmt.Sprintf(format, args...))
	})

	if _, err := resolver.Resolve(reflect.TypeOf(mismatchBean{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(messages, "\n")
	if !strings.Contains(joined, "getter GetV") {
		t.Errorf("expected dropped getter message, got:\n%v", joined)
	}
	if !strings.Contains(joined, "already defined") {
		t.Errorf("expected skip message from second handler, got:\n%v", joined)
	}
}
