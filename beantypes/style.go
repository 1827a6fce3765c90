// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pk910/dynamic-bean/beanutils"
)

// AccessorKind classifies a method as getter, setter or neither.
type AccessorKind uint8

const (
	AccessorNone AccessorKind = iota
	AccessorGetter
	AccessorSetter
)

func (k AccessorKind) String() string {
	switch k {
	case AccessorGetter:
		return "getter"
	case AccessorSetter:
		return "setter"
	default:
		return "none"
	}
}

// MethodShape is the part of a method signature the accessor styles look at.
// It is built from reflect.Method at runtime and from go/types signatures by the inspector.
type MethodShape struct {
	Name        string
	NumIn       int  // parameters, receiver excluded
	NumOut      int  // results
	Variadic    bool // last parameter is variadic
	ErrorResult bool // last result is of type error
}

// IsGetterShape reports whether the shape can be a getter: no parameters and either one
// result or a value followed by an error.
func (s MethodShape) IsGetterShape() bool {
	return s.NumIn == 0 && (s.NumOut == 1 || (s.NumOut == 2 && s.ErrorResult))
}

// IsSetterShape reports whether the shape can be a setter: one non-variadic parameter and
// either no result or a single error.
func (s MethodShape) IsSetterShape() bool {
	return s.NumIn == 1 && !s.Variadic && (s.NumOut == 0 || (s.NumOut == 1 && s.ErrorResult))
}

// ErrorIndex returns the index of the trailing error result an accessor of the given kind
// reports, or -1.
func (s MethodShape) ErrorIndex(kind AccessorKind) int {
	switch {
	case kind == AccessorGetter && s.NumOut == 2 && s.ErrorResult:
		return 1
	case kind == AccessorSetter && s.NumOut == 1 && s.ErrorResult:
		return 0
	}
	return -1
}

// Style is an accessor naming convention. Classify returns the accessor kind of a method
// and the name of the property it belongs to.
type Style interface {
	Name() string
	Classify(shape MethodShape) (AccessorKind, string)
}

// Built-in styles.
var (
	// BeanStyle accepts GetXxx() getters and SetXxx(v) setters, property "xxx".
	BeanStyle Style = beanStyle{}

	// RecordStyle accepts Xxx() getters and Xxx(v) setters, property "Xxx".
	RecordStyle Style = recordStyle{}

	// GoStyle accepts Xxx() getters and SetXxx(v) setters, property "xxx".
	GoStyle Style = goStyle{}
)

// universalMethods are implemented by almost every type and never describe a property.
var universalMethods = map[string]bool{
	"String":   true,
	"GoString": true,
	"Error":    true,
	"Format":   true,
}

// StyleByName returns the built-in style registered under name.
func StyleByName(name string) (Style, bool) {
	switch strings.ToLower(name) {
	case "bean":
		return BeanStyle, true
	case "record":
		return RecordStyle, true
	case "go":
		return GoStyle, true
	}
	return nil, false
}

type beanStyle struct{}

func (beanStyle) Name() string { return "bean" }

func (beanStyle) Classify(shape MethodShape) (AccessorKind, string) {
	if len(shape.Name) <= 3 {
		return AccessorNone, ""
	}
	switch {
	case hasAccessorPrefix(shape.Name, "Get") && shape.IsGetterShape():
		return AccessorGetter, beanutils.LowerCamel(shape.Name[3:])
	case hasAccessorPrefix(shape.Name, "Set") && shape.IsSetterShape():
		return AccessorSetter, beanutils.LowerCamel(shape.Name[3:])
	}
	return AccessorNone, ""
}

type recordStyle struct{}

func (recordStyle) Name() string { return "record" }

func (recordStyle) Classify(shape MethodShape) (AccessorKind, string) {
	if universalMethods[shape.Name] {
		return AccessorNone, ""
	}
	switch {
	case shape.IsGetterShape():
		return AccessorGetter, shape.Name
	case shape.IsSetterShape():
		return AccessorSetter, shape.Name
	}
	return AccessorNone, ""
}

type goStyle struct{}

func (goStyle) Name() string { return "go" }

func (goStyle) Classify(shape MethodShape) (AccessorKind, string) {
	if universalMethods[shape.Name] {
		return AccessorNone, ""
	}
	switch {
	case len(shape.Name) > 3 && hasAccessorPrefix(shape.Name, "Set") && shape.IsSetterShape():
		return AccessorSetter, beanutils.LowerCamel(shape.Name[3:])
	case shape.IsGetterShape():
		return AccessorGetter, beanutils.LowerCamel(shape.Name)
	}
	return AccessorNone, ""
}

// hasAccessorPrefix reports whether name starts with prefix followed by a rune that is not
// lower case, so Getaway or Settle are not mistaken for accessors.
func hasAccessorPrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return r != utf8.RuneError && !unicode.IsLower(r)
}
