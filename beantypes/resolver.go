// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pk910/dynamic-bean/beancache"
	"github.com/pk910/dynamic-bean/beanutils"
)

// Cache is the cache type used by resolvers.
type Cache = beancache.Cache[TypeKey, *BeanType]

// Resolver runs a handler chain against requested types and memoizes the results.
//
// Resolution is synchronous and side effect free apart from the cache, so a Resolver is
// safe for concurrent use as long as its cache is. Two goroutines resolving the same
// uncached type may both run the chain; the cache decides which result is kept.
type Resolver struct {
	handlers []Handler
	cache    Cache
	logCb    func(format string, args ...any)
}

// NewResolver creates a resolver running handlers in order. A nil cache disables memoization.
func NewResolver(handlers []Handler, cache Cache) *Resolver {
	if cache == nil {
		cache = beancache.NewNopCache[TypeKey, *BeanType]()
	}

	return &Resolver{
		handlers: append([]Handler(nil), handlers...),
		cache:    cache,
	}
}

// SetLogCb installs a callback receiving verbose resolution messages.
func (r *Resolver) SetLogCb(logCb func(format string, args ...any)) {
	r.logCb = logCb
}

func (r *Resolver) logf(format string, args ...any) {
	if r.logCb != nil {
		r.logCb(format, args...)
	}
}

// Handlers returns a copy of the handler chain.
func (r *Resolver) Handlers() []Handler {
	return append([]Handler(nil), r.handlers...)
}

// Cache returns the resolver's cache.
func (r *Resolver) Cache() Cache {
	return r.cache
}

// Extend returns a resolver whose chain is handler followed by this resolver's handlers.
// The new resolver shares the cache and log callback.
func (r *Resolver) Extend(handler Handler) *Resolver {
	handlers := make([]Handler, 0, len(r.handlers)+1)
	handlers = append(handlers, handler)
	handlers = append(handlers, r.handlers...)

	return &Resolver{
		handlers: handlers,
		cache:    r.cache,
		logCb:    r.logCb,
	}
}

// Resolve returns the bean type of t.
//
// Example:
//
//	bt, err := resolver.Resolve(reflect.TypeOf(Point{}))
//	if err != nil {
//	    return err
//	}
//	for _, prop := range bt.Properties() {
//	    fmt.Println(prop)
//	}
func (r *Resolver) Resolve(t reflect.Type) (*BeanType, error) {
	return r.ResolveWithArguments(t, nil)
}

// ResolveWithArguments returns the bean type of t with placeholder types replaced by
// typeArgs in every property type. Results are cached per (t, typeArgs).
func (r *Resolver) ResolveWithArguments(t reflect.Type, typeArgs map[reflect.Type]reflect.Type) (*BeanType, error) {
	if t == nil {
		return nil, beanutils.ErrNilType
	}

	return r.cache.GetOrLoad(NewTypeKey(t, typeArgs), func(key TypeKey) (*BeanType, error) {
		r.logf("resolving bean type %v (args: %q)", key.Type, key.Args)
		return r.buildBeanType(key.Type, typeArgs)
	})
}

func (r *Resolver) buildBeanType(t reflect.Type, typeArgs map[reflect.Type]reflect.Type) (*BeanType, error) {
	ctx := NewResolveContext(t, typeArgs)
	ctx.Log = r.logCb
	builder := NewBuilder(t, typeArgs)

	if _, err := r.runChain(ctx, builder); err != nil {
		return nil, fmt.Errorf("failed resolving bean type %v: %w", t, err)
	}

	return builder.Build(), nil
}

func (r *Resolver) runChain(ctx *ResolveContext, builder *Builder) (JumpState, error) {
	for idx, handler := range r.handlers {
		state, err := handler.Resolve(ctx, builder)
		if err != nil {
			return state, fmt.Errorf("handler %d: %w", idx, err)
		}
		if !state.IsContinue() {
			ctx.logf("handler %d stopped the chain for %v (%v)", idx, ctx.Type, state)
			return state, nil
		}
	}
	return Continue, nil
}

// AsHandler exposes the resolver's chain as a single handler, for nesting it into
// another resolver. A Break inside the nested chain only ends the nested chain, a
// Return is passed on to the outer chain.
func (r *Resolver) AsHandler() Handler {
	return HandlerFunc(func(ctx *ResolveContext, builder *Builder) (JumpState, error) {
		state, err := r.runChain(ctx, builder)
		if err != nil {
			return state, err
		}
		if state == Return {
			return Return, nil
		}
		return Continue, nil
	})
}

// Warm resolves types in parallel so later calls hit the cache. It stops at the first
// error or when ctx is done.
func (r *Resolver) Warm(ctx context.Context, types ...reflect.Type) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, t := range types {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			_, err := r.Resolve(t)
			return err
		})
	}

	return group.Wait()
}
