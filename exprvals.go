// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package dynbean

import (
	"fmt"

	"github.com/casbin/govaluate"

	"github.com/pk910/dynamic-bean/beantypes"
	"github.com/pk910/dynamic-bean/beanutils"
)

// beanParameters exposes the readable properties of a bean value as expression parameters.
type beanParameters struct {
	bean any
	typ  *beantypes.BeanType
}

func (p *beanParameters) Get(name string) (any, error) {
	prop := p.typ.Property(name)
	if prop == nil || !prop.Readable() {
		return nil, fmt.Errorf("%w: %v on %v", beanutils.ErrPropertyNotFound, name, p.typ.Type())
	}
	return prop.Get(p.bean)
}

func (d *DynBean) getExpression(expression string) (*govaluate.EvaluableExpression, error) {
	d.exprMutex.RLock()
	compiled := d.exprCache[expression]
	d.exprMutex.RUnlock()
	if compiled != nil {
		return compiled, nil
	}

	compiled, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("error parsing bean expression: %v", err)
	}

	d.exprMutex.Lock()
	d.exprCache[expression] = compiled
	d.exprMutex.Unlock()

	return compiled, nil
}

// Evaluate evaluates expression with the readable properties of obj as parameters.
// Numeric properties take part as float64.
//
// Example:
//
//	// point has GetX() and GetY()
//	result, err := db.Evaluate(point, "x * 2 + y")
func (d *DynBean) Evaluate(obj any, expression string) (any, error) {
	bt, err := d.ResolveValue(obj)
	if err != nil {
		return nil, err
	}

	compiled, err := d.getExpression(expression)
	if err != nil {
		return nil, err
	}

	result, err := compiled.Eval(&beanParameters{bean: obj, typ: bt})
	if err != nil {
		return nil, fmt.Errorf("error evaluating bean expression %q: %w", expression, err)
	}

	if d.Verbose {
		d.logf("evaluated %q on %v: %v", expression, bt.Type(), result)
	}
	return result, nil
}

// Matches evaluates a boolean expression on obj.
func (d *DynBean) Matches(obj any, expression string) (bool, error) {
	result, err := d.Evaluate(obj, expression)
	if err != nil {
		return false, err
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression %q returned %T, not bool", beanutils.ErrTypeMismatch, expression, result)
	}
	return matched, nil
}
