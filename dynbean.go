// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package dynbean

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/casbin/govaluate"

	"github.com/pk910/dynamic-bean/beancache"
	"github.com/pk910/dynamic-bean/beantypes"
	"github.com/pk910/dynamic-bean/beanutils"
)

// DynBean resolves bean types and works with bean values through their properties.
//
// The instance owns a resolver with its cache and a cache of compiled expressions.
// It's recommended to reuse one DynBean across operations to benefit from caching.
// A DynBean is safe for concurrent use.
//
// Example usage:
//
//	db := dynbean.NewDynBean()
//
//	bt, err := db.Resolve(reflect.TypeOf(Point{}))
//	for _, prop := range bt.Properties() {
//	    fmt.Println(prop)
//	}
//
//	err = db.SetProperty(&point, "x", 5)
//	values, err := db.ToMap(&point)
type DynBean struct {
	resolver *beantypes.Resolver

	exprMutex sync.RWMutex
	exprCache map[string]*govaluate.EvaluableExpression

	// Verbose enables logging of resolutions and conversions.
	Verbose bool

	logCb func(format string, args ...any)
}

// NewDynBean creates a DynBean. Without options it resolves bean style accessors
// (GetXxx/SetXxx) and caches bean types in an unbounded map.
func NewDynBean(options ...DynBeanOption) *DynBean {
	opts := &DynBeanOptions{}
	for _, option := range options {
		option(opts)
	}

	handlers := opts.Handlers
	if len(handlers) == 0 {
		handlers = beantypes.DefaultHandlers()
	}

	var cache beantypes.Cache
	switch {
	case opts.NoCache:
		cache = nil
	case opts.Cache != nil:
		cache = opts.Cache
	default:
		cache = beancache.NewMapCache[beantypes.TypeKey, *beantypes.BeanType]()
	}

	db := &DynBean{
		resolver:  beantypes.NewResolver(handlers, cache),
		exprCache: map[string]*govaluate.EvaluableExpression{},
		Verbose:   opts.Verbose,
		logCb:     opts.LogCb,
	}
	db.resolver.SetLogCb(db.logResolve)

	return db
}

// logResolve forwards resolver messages while Verbose is set.
func (d *DynBean) logResolve(format string, args ...any) {
	if d.Verbose {
		d.logf(format, args...)
	}
}

func (d *DynBean) logf(format string, args ...any) {
	if d.logCb != nil {
		d.logCb(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}

// GetResolver returns the underlying resolver.
func (d *DynBean) GetResolver() *beantypes.Resolver {
	return d.resolver
}

// Resolve returns the bean type of t.
func (d *DynBean) Resolve(t reflect.Type) (*beantypes.BeanType, error) {
	return d.resolver.Resolve(t)
}

// ResolveValue returns the bean type of the dynamic type of v.
func (d *DynBean) ResolveValue(v any) (*beantypes.BeanType, error) {
	if v == nil {
		return nil, beanutils.ErrNilValue
	}
	return d.resolver.Resolve(reflect.TypeOf(v))
}

func (d *DynBean) lookupProperty(obj any, name string) (*beantypes.Property, error) {
	bt, err := d.ResolveValue(obj)
	if err != nil {
		return nil, err
	}

	prop := bt.Property(name)
	if prop == nil {
		return nil, fmt.Errorf("%w: %v on %v", beanutils.ErrPropertyNotFound, name, bt.Type())
	}
	return prop, nil
}

// GetProperty reads the property called name from obj.
func (d *DynBean) GetProperty(obj any, name string) (any, error) {
	prop, err := d.lookupProperty(obj, name)
	if err != nil {
		return nil, err
	}
	return prop.Get(obj)
}

// SetProperty writes value to the property called name of obj. obj must be a pointer.
// Values convertible to the property type (numbers of another width, named string
// types, ...) are converted.
func (d *DynBean) SetProperty(obj any, name string, value any) error {
	prop, err := d.lookupProperty(obj, name)
	if err != nil {
		return err
	}

	converted, err := convertValue(reflect.ValueOf(value), prop.Type())
	if err != nil {
		return fmt.Errorf("property %v: %w", name, err)
	}
	return prop.SetValue(reflect.ValueOf(obj), converted)
}
