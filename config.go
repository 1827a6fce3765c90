// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package dynbean

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pk910/dynamic-bean/beancache"
	"github.com/pk910/dynamic-bean/beantypes"
	"github.com/pk910/dynamic-bean/beanutils"
)

// Config is the yaml representation of a DynBean setup.
//
//	handlers: [go, bean]
//	cache:
//	  policy: lru
//	  size: 512
//	verbose: true
type Config struct {
	Handlers []string    `yaml:"handlers"`
	Cache    CacheConfig `yaml:"cache"`
	Verbose  bool        `yaml:"verbose"`
}

// CacheConfig selects the cache policy: "map" (default), "lru", "weak" or "none".
// Size is the capacity of the lru cache. Dedupe makes concurrent resolutions of the
// same uncached type share one handler chain run.
type CacheConfig struct {
	Policy string `yaml:"policy"`
	Size   int    `yaml:"size"`
	Dedupe bool   `yaml:"dedupe"`
}

// DefaultLRUSize is the lru capacity used when the config does not set one.
const DefaultLRUSize = 256

// ParseConfig decodes a yaml config document. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing dynbean config: %w", err)
	}

	return config, nil
}

// LoadConfig reads and decodes a yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dynbean config: %w", err)
	}
	return ParseConfig(data)
}

// NewCache builds the cache described by the config, nil for policy "none".
func (c *CacheConfig) NewCache() (beantypes.Cache, error) {
	cache, err := c.newPolicyCache()
	if err != nil || cache == nil || !c.Dedupe {
		return cache, err
	}
	return beancache.NewDedupeCache(cache, beantypes.TypeKey.String), nil
}

func (c *CacheConfig) newPolicyCache() (beantypes.Cache, error) {
	switch strings.ToLower(c.Policy) {
	case "", "map":
		return beancache.NewMapCache[beantypes.TypeKey, *beantypes.BeanType](), nil
	case "lru":
		size := c.Size
		if size <= 0 {
			size = DefaultLRUSize
		}
		return beancache.NewLRUCache[beantypes.TypeKey, *beantypes.BeanType](size), nil
	case "weak":
		return beancache.NewWeakCache[beantypes.TypeKey, beantypes.BeanType](), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", beanutils.ErrUnknownCache, c.Policy)
}

// Options converts the config into DynBean options.
func (c *Config) Options() ([]DynBeanOption, error) {
	options := []DynBeanOption{}

	if len(c.Handlers) > 0 {
		handlers, err := beantypes.HandlersByName(c.Handlers...)
		if err != nil {
			return nil, err
		}
		options = append(options, WithHandlers(handlers...))
	}

	cache, err := c.Cache.NewCache()
	if err != nil {
		return nil, err
	}
	if cache == nil {
		options = append(options, WithNoCache())
	} else {
		options = append(options, WithCache(cache))
	}

	if c.Verbose {
		options = append(options, WithVerbose())
	}

	return options, nil
}

// NewDynBeanFromConfig creates a DynBean from a config, extra options are applied last.
func NewDynBeanFromConfig(config *Config, extra ...DynBeanOption) (*DynBean, error) {
	options, err := config.Options()
	if err != nil {
		return nil, err
	}
	return NewDynBean(append(options, extra...)...), nil
}
