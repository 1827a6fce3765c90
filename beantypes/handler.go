// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pk910/dynamic-bean/beanutils"
)

// JumpState tells the resolver how to continue after a handler ran.
type JumpState uint8

const (
	// Continue runs the next handler.
	Continue JumpState = iota
	// Break stops the current chain.
	Break
	// Return stops the current chain and every chain it is nested in.
	Return
)

func (s JumpState) IsContinue() bool {
	return s == Continue
}

func (s JumpState) String() string {
	switch s {
	case Continue:
		return "continue"
	case Break:
		return "break"
	case Return:
		return "return"
	default:
		return fmt.Sprintf("jump(%d)", uint8(s))
	}
}

// Handler is one scanning strategy of a resolver's chain. It contributes properties to
// the builder and tells the resolver whether later handlers should still run.
type Handler interface {
	Resolve(ctx *ResolveContext, builder *Builder) (JumpState, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx *ResolveContext, builder *Builder) (JumpState, error)

func (f HandlerFunc) Resolve(ctx *ResolveContext, builder *Builder) (JumpState, error) {
	return f(ctx, builder)
}

// AccessorHandler scans the context's methods with one accessor style, merges the
// getters and setters it finds into properties and always continues the chain.
// Property names already present in the builder are left alone, so earlier handlers win.
type AccessorHandler struct {
	Style Style
}

// NewAccessorHandler creates a handler scanning with style.
func NewAccessorHandler(style Style) *AccessorHandler {
	return &AccessorHandler{Style: style}
}

// BeanStyleHandler scans GetXxx/SetXxx accessors.
func BeanStyleHandler() Handler { return NewAccessorHandler(BeanStyle) }

// RecordStyleHandler scans Xxx()/Xxx(v) accessors.
func RecordStyleHandler() Handler { return NewAccessorHandler(RecordStyle) }

// GoStyleHandler scans Xxx()/SetXxx(v) accessors.
func GoStyleHandler() Handler { return NewAccessorHandler(GoStyle) }

// DefaultHandlers returns the default chain: a single bean style handler.
func DefaultHandlers() []Handler {
	return []Handler{BeanStyleHandler()}
}

// HandlersByName builds a chain from style names ("bean", "record", "go").
func HandlersByName(names ...string) ([]Handler, error) {
	handlers := make([]Handler, 0, len(names))
	for _, name := range names {
		style, ok := StyleByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q", beanutils.ErrUnknownHandler, name)
		}
		handlers = append(handlers, NewAccessorHandler(style))
	}
	return handlers, nil
}

type accessorInfo struct {
	typ     reflect.Type
	invoker Invoker
	field   *reflect.StructField
	method  *Method
}

func (h *AccessorHandler) Resolve(ctx *ResolveContext, builder *Builder) (JumpState, error) {
	getters := NewAccessorSet[accessorInfo]()
	setters := NewAccessorSet[accessorInfo]()

	for i := range ctx.Methods {
		method := &ctx.Methods[i]
		kind, name := h.Style.Classify(method.Shape)
		if kind == AccessorNone || name == "" {
			continue
		}
		if builder.HasProperty(name) {
			ctx.logf("%v: %v %v of %v skipped, property already defined", h.Style.Name(), kind, method.Name, ctx.Type)
			continue
		}

		info := accessorInfo{
			invoker: NewMethodInvoker(method, kind),
			field:   ctx.SearchField(name),
			method:  method,
		}
		if kind == AccessorGetter {
			info.typ = ctx.Substitute(method.Out(0))
			getters.Put(name, info)
		} else {
			info.typ = ctx.Substitute(method.In(0))
			setters.Put(name, info)
		}
	}

	sameType := func(getter, setter accessorInfo) bool {
		if getter.typ == setter.typ {
			return true
		}
		ctx.logf("%v: getter %v of %v dropped, type %v differs from setter type %v", h.Style.Name(), getter.method.Name, ctx.Type, getter.typ, setter.typ)
		return false
	}

	err := MergeAccessors(getters, setters, sameType, func(name string, getter, setter *accessorInfo) error {
		var prop *Property
		var err error
		switch {
		case getter != nil && setter != nil:
			prop, err = NewProperty(name, getter.typ, getter.invoker, setter.invoker, getter.field, getter.method, setter.method)
		case getter != nil:
			prop, err = NewProperty(name, getter.typ, getter.invoker, nil, getter.field, getter.method, nil)
		default:
			prop, err = NewProperty(name, setter.typ, nil, setter.invoker, setter.field, nil, setter.method)
		}
		if err != nil {
			return err
		}
		return builder.AddProperty(prop)
	})
	if err != nil {
		return Continue, err
	}

	return Continue, nil
}
