// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// A Scene is a snapshot of everything a renderer needs to draw one frame.
// It shares nothing with the editor state.
//
type Scene struct {
	Mode      Mode
	Selected  Kind
	HasSelect bool
	PinRadius float64
	Sidebar   float64
	Gates     []GateView
	Wires     []WireView
	// Highlight is the pin under the mouse, if any.
	Highlight *Highlight
	// Preview is the wire being created, if any.
	Preview *Preview
}

// GateView is the draw data of a gate.
//
type GateView struct {
	Index  int
	Kind   Kind
	Label  string
	Color  color.RGBA
	Bounds r2.Box
	Output bool
	Pins   []PinView
}

// PinView is the draw data of a pin.
//
type PinView struct {
	Pos     r2.Vec
	IsInput bool
	State   bool
}

// WireView is the draw data of a wire.
//
type WireView struct {
	Waypoints []r2.Vec
	State     bool
	Hovered   bool
}

// Highlight is a pin under the mouse cursor.
//
type Highlight struct {
	Pin      ConnectionPoint
	Validity Validity
}

// Preview is a straight line from the pending wire source to the mouse.
//
type Preview struct {
	From, To r2.Vec
}

func gateView(i int, g *Gate) GateView {
	v := GateView{
		Index:  i,
		Kind:   g.Kind(),
		Label:  g.Kind().Label(),
		Color:  g.Kind().Color(),
		Bounds: g.Bounds(),
		Output: g.Output,
	}
	for _, p := range g.ConnectionPoints(i) {
		s := g.Output
		if p.IsInput {
			s = g.Input(p.Index)
		}
		v.Pins = append(v.Pins, PinView{Pos: p.Pos, IsInput: p.IsInput, State: s})
	}
	return v
}
