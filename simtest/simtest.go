// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
// The helpers drive an Editor the way a user would: by clicking pins and
// canvas locations. They fail the test immediately if the editor rejects
// an action.
//
package simtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"gonum.org/v1/gonum/spatial/r2"
)

// Settings returns the default settings with grid snapping disabled, so that
// gates land exactly where tests put them.
//
func Settings() logicsim.Settings {
	s := logicsim.DefaultSettings()
	s.SnapToGrid = false
	return s
}

// Place places a gate of kind k with its top-left corner at (x, y) by
// clicking in placement mode. It returns the index of the new gate.
// The editor mode and selection are restored afterwards.
//
func Place(t testing.TB, e *logicsim.Editor, k logicsim.Kind, x, y float64) int {
	t.Helper()
	mode := e.Mode()
	sel, hasSel := e.Selection()
	defer func() {
		e.SetMode(mode)
		if hasSel {
			e.SelectKind(sel)
		} else {
			e.ClearSelection()
		}
	}()

	e.SetMode(logicsim.ModePlacement)
	e.SelectKind(k)
	n := len(e.Gates())
	center := r2.Add(r2.Vec{X: x, Y: y}, r2.Scale(0.5, k.Size()))
	if !e.Click(center) || len(e.Gates()) != n+1 {
		t.Fatalf("placement of %v at (%v, %v) rejected", k, x, y)
	}
	return n
}

// Wire connects the output of gate from to input pin input of gate to by
// clicking both pins in wiring mode.
//
func Wire(t testing.TB, e *logicsim.Editor, from, to, input int) {
	t.Helper()
	mode := e.Mode()
	defer e.SetMode(mode)

	e.SetMode(logicsim.ModeWiring)
	gates := e.Gates()
	n := len(e.Wires())
	if !e.Click(gates[from].OutputPoint()) {
		t.Fatalf("no output pin selected on gate %d", from)
	}
	e.Click(gates[to].InputPoint(input))
	if len(e.Wires()) != n+1 {
		t.Fatalf("wire %d -> %d.%d rejected", from, to, input)
	}
}

// TruthTable returns the outputs of a gate of kind k for the input
// combinations (0, 0), (0, 1), (1, 0), (1, 1), where the first value is
// input 1. For unary gates, only (0) and (1) are returned.
//
func TruthTable(k logicsim.Kind) []bool {
	n := k.InputCount()
	if n == 0 {
		n = 1
	}
	g := logicsim.NewGate(k, r2.Vec{})
	out := make([]bool, 0, 1<<uint(n))
	for i := 0; i < 1<<uint(n); i++ {
		g.Input1 = i&(1<<uint(n-1)) != 0
		g.Input2 = n > 1 && i&1 != 0
		g.ComputeOutput()
		out = append(out, g.Output)
	}
	return out
}

// CheckTruthTable compares the truth table of kind k to want.
//
func CheckTruthTable(t testing.TB, k logicsim.Kind, want []bool) {
	t.Helper()
	got := TruthTable(k)
	if len(got) != len(want) {
		t.Fatalf("%v: got %d rows, expected %d", k, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%v: row %s = %v, got %v", k, row(i, k.InputCount()), want[i], got[i])
		}
	}
}

func row(i, n int) string {
	if n == 0 {
		n = 1
	}
	var b strings.Builder
	for bit := n - 1; bit >= 0; bit-- {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "in%d=%v", n-bit, i&(1<<uint(bit)) != 0)
	}
	return b.String()
}

// Outputs returns the output state of every gate.
//
func Outputs(e *logicsim.Editor) []bool {
	gates := e.Gates()
	out := make([]bool, len(gates))
	for i, g := range gates {
		out[i] = g.Output
	}
	return out
}
