// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

// Command dynbean-inspect lists the bean properties of Go types without running them.
//
// It loads a package from source, scans the method sets of the requested types with the
// same accessor styles the runtime resolver uses and prints one property table per type.
//
//	dynbean-inspect -package ./model -types User,Account -styles go,bean
package main

import (
	"flag"
	"fmt"
	"go/types"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/tools/go/packages"

	dynbean "github.com/pk910/dynamic-bean"
	"github.com/pk910/dynamic-bean/beantypes"
)

// Config holds the command line settings.
type Config struct {
	PackagePath string
	TypeNames   string
	Styles      string
	ConfigFile  string
	Verbose     bool
	NoColor     bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.PackagePath, "package", "", "Go package path to analyze")
	flag.StringVar(&config.TypeNames, "types", "", "Comma-separated list of type names to inspect")
	flag.StringVar(&config.Styles, "styles", "bean", "Comma-separated list of accessor styles (bean, record, go)")
	flag.StringVar(&config.ConfigFile, "config", "", "dynbean yaml config, its handlers replace -styles")
	flag.BoolVar(&config.Verbose, "v", false, "Verbose output")
	flag.BoolVar(&config.NoColor, "nocolor", false, "Disable colored output")
	flag.Parse()

	if config.NoColor {
		color.NoColor = true
	}

	if err := run(config, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(config Config, out io.Writer) error {
	if config.PackagePath == "" {
		return fmt.Errorf("package path is required (-package)")
	}
	if config.TypeNames == "" {
		return fmt.Errorf("type names are required (-types)")
	}

	styles, err := loadStyles(config)
	if err != nil {
		return err
	}

	if config.Verbose {
		log.Printf("Analyzing package: %s", config.PackagePath)
		log.Printf("Looking for types: %s", config.TypeNames)
	}

	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, config.PackagePath)
	if err != nil {
		return fmt.Errorf("failed to load package %s: %v", config.PackagePath, err)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no packages found for %s", config.PackagePath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		for _, err := range pkg.Errors {
			log.Printf("Package error: %v", err)
		}
		return fmt.Errorf("package %s has errors", config.PackagePath)
	}

	for _, typeName := range splitList(config.TypeNames) {
		named, err := lookupType(pkg.Types, typeName)
		if err != nil {
			return err
		}

		properties := inspectType(named, pkg.Types, styles)
		if config.Verbose {
			log.Printf("Found %d properties on %s", len(properties), typeName)
		}

		if err := renderProperties(out, pkg.PkgPath+"."+typeName, properties); err != nil {
			return fmt.Errorf("failed to render %s: %v", typeName, err)
		}
	}

	return nil
}

func loadStyles(config Config) ([]beantypes.Style, error) {
	names := splitList(config.Styles)
	if config.ConfigFile != "" {
		beanConfig, err := dynbean.LoadConfig(config.ConfigFile)
		if err != nil {
			return nil, err
		}
		if len(beanConfig.Handlers) > 0 {
			names = beanConfig.Handlers
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one style is required (-styles)")
	}

	styles := make([]beantypes.Style, 0, len(names))
	for _, name := range names {
		style, ok := beantypes.StyleByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown style %q", name)
		}
		styles = append(styles, style)
	}
	return styles, nil
}

func lookupType(pkg *types.Package, typeName string) (types.Type, error) {
	obj := pkg.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", typeName, pkg.Path())
	}

	typeObj, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("object %s is not a type in package %s", typeName, pkg.Path())
	}
	return typeObj.Type(), nil
}

func splitList(list string) []string {
	items := []string{}
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
