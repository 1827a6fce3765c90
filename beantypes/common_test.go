// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beantypes

import (
	"errors"
	"reflect"
)

type Point struct {
	x, y int
}

func (p *Point) GetX() int  { return p.x }
func (p *Point) SetX(x int) { p.x = x }
func (p *Point) GetY() int  { return p.y }

type mismatchBean struct {
	v int
}

func (m *mismatchBean) GetV() int        { return m.v }
func (m *mismatchBean) SetV(v string)    {}
func (m *mismatchBean) SetOnly(s string) {}

type recordBean struct {
	name string
	age  int
}

func (r recordBean) Name() string    { return r.name }
func (r recordBean) String() string  { return "record(" + r.name + ")" }
func (r *recordBean) Age(age int)    { r.age = age }
func (r *recordBean) Reset(a, b int) {}

type account struct {
	owner   string
	balance int
}

func (a *account) Owner() string         { return a.owner }
func (a *account) SetOwner(owner string) { a.owner = owner }
func (a *account) Balance() int          { return a.balance }
func (a *account) String() string        { return a.owner }

var errNoAddr = errors.New("no address")

type conn struct {
	Addr string `json:"addr" yaml:"address"`
}

func (c *conn) GetAddr() (string, error) {
	if c.Addr == "" {
		return "", errNoAddr
	}
	return c.Addr, nil
}

func (c *conn) SetAddr(addr string) error {
	if addr == "" {
		return errNoAddr
	}
	c.Addr = addr
	return nil
}

type box struct {
	value any
	items []any
}

func (b *box) GetValue() any    { return b.value }
func (b *box) SetValue(v any)   { b.value = v }
func (b *box) GetItems() []any  { return b.items }
func (b *box) SetItems(v []any) { b.items = v }

type pair[T any] struct {
	first T
}

func (p *pair[T]) GetFirst() T  { return p.first }
func (p *pair[T]) SetFirst(v T) { p.first = v }

type base struct {
	id int
}

func (b *base) GetID() int { return b.id }

type derived struct {
	base
	label string
}

func (d *derived) GetLabel() string { return d.label }

type named interface {
	GetName() string
	SetName(name string)
}

var (
	intType    = reflect.TypeOf(0)
	stringType = reflect.TypeOf("")
	anyType    = reflect.TypeOf((*any)(nil)).Elem()
)
