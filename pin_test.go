// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	ls "github.com/db47h/logicsim"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFindConnectionPoint(t *testing.T) {
	// a's output pin is at (183, 125), b's first input pin at (192, 126.5).
	a := ls.NewGate(ls.And, r2.Vec{X: 100, Y: 100})
	b := ls.NewGate(ls.And, r2.Vec{X: 200, Y: 110})
	mouse := r2.Vec{X: 187, Y: 125}

	td := []struct {
		name  string
		gates []*ls.Gate
		pos   r2.Vec
		ok    bool
		exp   ls.ConnectionPoint
	}{
		{"first match a", []*ls.Gate{a, b}, mouse, true, ls.ConnectionPoint{Pos: a.OutputPoint(), Gate: 0}},
		{"first match b", []*ls.Gate{b, a}, mouse, true, ls.ConnectionPoint{Pos: b.InputPoint(0), IsInput: true, Gate: 0}},
		{"second input", []*ls.Gate{a, b}, b.InputPoint(1), true, ls.ConnectionPoint{Pos: b.InputPoint(1), IsInput: true, Gate: 1, Index: 1}},
		{"snap limit", []*ls.Gate{a}, r2.Vec{X: 183 + 15, Y: 125}, true, ls.ConnectionPoint{Pos: a.OutputPoint(), Gate: 0}},
		{"too far", []*ls.Gate{a}, r2.Vec{X: 183 + 15.5, Y: 125}, false, ls.ConnectionPoint{}},
		{"empty", nil, mouse, false, ls.ConnectionPoint{}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			p, ok := ls.FindConnectionPoint(d.pos, d.gates, ls.DefaultSnapDistance)
			if ok != d.ok {
				t.Fatalf("expected found = %v, got %v", d.ok, ok)
			}
			if ok && !p.Same(d.exp) {
				t.Errorf("expected %+v, got %+v", d.exp, p)
			}
			if ok && p.Pos != d.exp.Pos {
				t.Errorf("expected pin at %v, got %v", d.exp.Pos, p.Pos)
			}
		})
	}
}
