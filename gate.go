// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"image/color"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind identifies the type of a gate.
//
type Kind int

// Gate kinds.
//
const (
	Input Kind = iota
	Output
	And
	Or
	Not
	Nand
	Nor
	kindCount
)

// distance between a gate body and its pins.
const pinMargin = 8

// a gate transfer function.
type gate func(a, b bool) bool

type descriptor struct {
	name   string
	label  string
	size   r2.Vec
	color  color.RGBA
	inputs int
	fn     gate
}

var (
	ioSize   = r2.Vec{X: 60, Y: 40}
	gateSize = r2.Vec{X: 75, Y: 50}

	pass = gate(func(a, _ bool) bool { return a })

	kinds = [kindCount]descriptor{
		Input:  {"INPUT", "INP", ioSize, color.RGBA{200, 200, 200, 255}, 0, pass},
		Output: {"OUTPUT", "OUT", ioSize, color.RGBA{102, 191, 255, 255}, 1, pass},
		And:    {"AND", "AND", gateSize, color.RGBA{0, 117, 44, 255}, 2, func(a, b bool) bool { return a && b }},
		Or:     {"OR", "OR", gateSize, color.RGBA{0, 82, 172, 255}, 2, func(a, b bool) bool { return a || b }},
		Not:    {"NOT", "NOT", gateSize, color.RGBA{190, 33, 55, 255}, 1, func(a, _ bool) bool { return !a }},
		Nand:   {"NAND", "NAND", gateSize, color.RGBA{0, 158, 47, 255}, 2, func(a, b bool) bool { return !(a && b) }},
		Nor:    {"NOR", "NOR", gateSize, color.RGBA{200, 122, 255, 255}, 2, func(a, b bool) bool { return !(a || b) }},
	}
)

// Kinds returns all gate kinds in sidebar order.
//
func Kinds() []Kind {
	return []Kind{Input, Output, And, Or, Not, Nand, Nor}
}

// Valid returns true if k is a known gate kind.
//
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return "UNKNOWN"
	}
	return kinds[k].name
}

// Label returns the short label drawn on the gate body.
//
func (k Kind) Label() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].label
}

// Size returns the body size of gates of kind k.
//
func (k Kind) Size() r2.Vec {
	if !k.Valid() {
		return r2.Vec{}
	}
	return kinds[k].size
}

// Color returns the body color of gates of kind k.
//
func (k Kind) Color() color.RGBA {
	if !k.Valid() {
		return color.RGBA{}
	}
	return kinds[k].color
}

// InputCount returns the number of input pins of gates of kind k.
//
//	INPUT: 0
//	NOT, OUTPUT: 1
//	AND, OR, NAND, NOR: 2
//
func (k Kind) InputCount() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].inputs
}

// HasOutput returns true for all kinds but Output.
//
func (k Kind) HasOutput() bool {
	return k.Valid() && k != Output
}

// Eval applies the transfer function of kind k to the given inputs.
//
func (k Kind) Eval(a, b bool) bool {
	if !k.Valid() {
		return false
	}
	return kinds[k].fn(a, b)
}

// ParseKind returns the gate kind with the given name (case insensitive).
// "IN" and "OUT" are accepted as aliases for INPUT and OUTPUT.
//
func ParseKind(name string) (Kind, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "IN", "INP":
		return Input, true
	case "OUT":
		return Output, true
	}
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// A Gate is a logic element placed on the canvas.
//
// Pos is the top-left corner of the gate body. Input1 and Input2 are latched
// by the wiring engine on every tick; for Input gates, Input1 is the externally
// toggled state.
//
type Gate struct {
	kind   Kind
	Pos    r2.Vec
	Input1 bool
	Input2 bool
	Output bool
}

// NewGate returns a new gate of kind k with its top-left corner at pos.
//
func NewGate(k Kind, pos r2.Vec) *Gate {
	return &Gate{kind: k, Pos: pos}
}

// Kind returns the gate kind.
//
func (g *Gate) Kind() Kind { return g.kind }

// Size returns the gate body size.
//
func (g *Gate) Size() r2.Vec { return g.kind.Size() }

// InputCount returns the number of input pins of g.
//
func (g *Gate) InputCount() int { return g.kind.InputCount() }

// HasOutput returns true if g has an output pin.
//
func (g *Gate) HasOutput() bool { return g.kind.HasOutput() }

// ComputeOutput sets g.Output from g's inputs according to its kind.
//
func (g *Gate) ComputeOutput() {
	g.Output = g.kind.Eval(g.Input1, g.Input2)
}

// Input returns the state of input pin i. Out of range pins are off.
//
func (g *Gate) Input(i int) bool {
	switch i {
	case 0:
		return g.Input1
	case 1:
		return g.Input2
	}
	return false
}

// SetInput latches s into input pin i. Out of range pins are ignored.
//
func (g *Gate) SetInput(i int, s bool) {
	switch i {
	case 0:
		g.Input1 = s
	case 1:
		g.Input2 = s
	}
}

// Bounds returns the gate body rectangle.
//
func (g *Gate) Bounds() r2.Box {
	return r2.Box{Min: g.Pos, Max: r2.Add(g.Pos, g.Size())}
}

// Center returns the center of the gate body.
//
func (g *Gate) Center() r2.Vec {
	return r2.Add(g.Pos, r2.Scale(0.5, g.Size()))
}

// ContainsPoint returns true if p lies within the gate body. The top and left
// edges belong to the body, the bottom and right ones do not.
//
func (g *Gate) ContainsPoint(p r2.Vec) bool {
	b := g.Bounds()
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// CollidesWith returns true if the bodies of g and other overlap.
//
func (g *Gate) CollidesWith(other *Gate) bool {
	return boxOverlaps(g.Bounds(), other.Bounds())
}

// InputPoint returns the location of input pin i.
//
func (g *Gate) InputPoint(i int) r2.Vec {
	sz := g.Size()
	y := sz.Y * 0.5
	if g.InputCount() > 1 {
		if i == 0 {
			y = sz.Y * 0.33
		} else {
			y = sz.Y * 0.66
		}
	}
	return r2.Vec{X: g.Pos.X - pinMargin, Y: g.Pos.Y + y}
}

// OutputPoint returns the location of the output pin.
//
func (g *Gate) OutputPoint() r2.Vec {
	sz := g.Size()
	return r2.Vec{X: g.Pos.X + sz.X + pinMargin, Y: g.Pos.Y + sz.Y*0.5}
}

// ConnectionPoints returns all the pins of g: input pins first, in index
// order, then the output pin if any. self is the index of g in its gate
// collection.
//
func (g *Gate) ConnectionPoints(self int) []ConnectionPoint {
	n := g.InputCount()
	pts := make([]ConnectionPoint, 0, n+1)
	for i := 0; i < n; i++ {
		pts = append(pts, ConnectionPoint{Pos: g.InputPoint(i), IsInput: true, Gate: self, Index: i})
	}
	if g.HasOutput() {
		pts = append(pts, ConnectionPoint{Pos: g.OutputPoint(), Gate: self})
	}
	return pts
}
