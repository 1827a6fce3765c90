// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

// Package dynbean resolves the getter/setter properties of Go types at runtime and
// reads, writes, converts and evaluates bean values through them.
package dynbean

import (
	"github.com/pk910/dynamic-bean/beantypes"
)

type DynBeanOption func(*DynBeanOptions)

type DynBeanOptions struct {
	Handlers []beantypes.Handler
	Cache    beantypes.Cache
	NoCache  bool
	Verbose  bool
	LogCb    func(format string, args ...any)
}

// WithHandlers replaces the default handler chain.
func WithHandlers(handlers ...beantypes.Handler) DynBeanOption {
	return func(opts *DynBeanOptions) {
		opts.Handlers = handlers
	}
}

// WithCache sets the cache holding resolved bean types.
func WithCache(cache beantypes.Cache) DynBeanOption {
	return func(opts *DynBeanOptions) {
		opts.Cache = cache
		opts.NoCache = false
	}
}

// WithNoCache disables memoization, every resolution runs the handler chain.
func WithNoCache() DynBeanOption {
	return func(opts *DynBeanOptions) {
		opts.Cache = nil
		opts.NoCache = true
	}
}

func WithVerbose() DynBeanOption {
	return func(opts *DynBeanOptions) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) DynBeanOption {
	return func(opts *DynBeanOptions) {
		opts.LogCb = logCb
	}
}
