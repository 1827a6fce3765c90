// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package dynbean

import "errors"

type Point struct {
	x, y int
}

func (p *Point) GetX() int  { return p.x }
func (p *Point) SetX(x int) { p.x = x }
func (p *Point) GetY() int  { return p.y }
func (p *Point) SetY(y int) { p.y = y }

type Point3 struct {
	x, y, z int64
}

func (p *Point3) GetX() int64  { return p.x }
func (p *Point3) SetX(x int64) { p.x = x }
func (p *Point3) GetY() int64  { return p.y }
func (p *Point3) SetY(y int64) { p.y = y }
func (p *Point3) GetZ() int64  { return p.z }
func (p *Point3) SetZ(z int64) { p.z = z }

type counter struct {
	x uint8
	y int
}

func (c *counter) GetX() uint8  { return c.x }
func (c *counter) SetX(x uint8) { c.x = x }
func (c *counter) GetY() int    { return c.y }
func (c *counter) SetY(y int)   { c.y = y }

type rack struct {
	slots [3]int
}

func (r *rack) GetSlots() [3]int      { return r.slots }
func (r *rack) SetSlots(slots [3]int) { r.slots = slots }

type Label string

type person struct {
	name    string
	label   Label
	enabled bool
}

func (p *person) GetName() string      { return p.name }
func (p *person) SetName(name string)  { p.name = name }
func (p *person) GetLabel() Label      { return p.label }
func (p *person) SetLabel(label Label) { p.label = label }
func (p *person) GetEnabled() bool     { return p.enabled }
func (p *person) SetEnabled(on bool)   { p.enabled = on }

type account struct {
	owner   string
	balance int
}

func (a *account) Owner() string         { return a.owner }
func (a *account) SetOwner(owner string) { a.owner = owner }
func (a *account) Balance() int          { return a.balance }

var errBroken = errors.New("broken")

type broken struct{}

func (broken) GetValue() (int, error) { return 0, errBroken }
