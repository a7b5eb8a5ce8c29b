// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"reflect"
	"testing"
	"testing/quick"

	ls "github.com/db47h/logicsim"
	"gonum.org/v1/gonum/spatial/r2"
)

// three gates far enough apart for pin snapping to be unambiguous:
//
//	0: INPUT at (300, 100)
//	1: AND at (500, 100)
//	2: INPUT at (300, 300)
func testGates() []*ls.Gate {
	return []*ls.Gate{
		ls.NewGate(ls.Input, r2.Vec{X: 300, Y: 100}),
		ls.NewGate(ls.And, r2.Vec{X: 500, Y: 100}),
		ls.NewGate(ls.Input, r2.Vec{X: 300, Y: 300}),
	}
}

func TestWiring_HandleWireClick(t *testing.T) {
	gates := testGates()
	a, b, c := gates[0], gates[1], gates[2]
	w := ls.NewWiring()

	// idle: inputs can't be wire sources.
	if w.HandleWireClick(b.InputPoint(0), gates) {
		t.Fatal("click on input pin started a wire")
	}
	if _, ok := w.Pending(); ok {
		t.Fatal("pending wire after click on input pin")
	}
	// idle: click on empty space.
	if w.HandleWireClick(r2.Vec{X: 1000, Y: 1000}, gates) {
		t.Fatal("click on empty space reported as handled")
	}

	td := []struct {
		name    string
		src     r2.Vec
		dst     r2.Vec
		created bool
	}{
		{"same gate", b.OutputPoint(), b.InputPoint(0), false},
		{"output to output", a.OutputPoint(), c.OutputPoint(), false},
		{"empty space", a.OutputPoint(), r2.Vec{X: 1000, Y: 1000}, false},
		{"a to b.0", a.OutputPoint(), b.InputPoint(0), true},
		{"c to b.0 already connected", c.OutputPoint(), b.InputPoint(0), false},
		{"c to b.1", c.OutputPoint(), b.InputPoint(1), true},
	}
	for _, d := range td {
		n := w.Len()
		if !w.HandleWireClick(d.src, gates) {
			t.Fatalf("%s: source click not handled", d.name)
		}
		if _, ok := w.Pending(); !ok {
			t.Fatalf("%s: no pending wire after source click", d.name)
		}
		if !w.HandleWireClick(d.dst, gates) {
			t.Fatalf("%s: destination click not handled", d.name)
		}
		if _, ok := w.Pending(); ok {
			t.Fatalf("%s: wire still pending", d.name)
		}
		if created := w.Len() == n+1; created != d.created {
			t.Fatalf("%s: expected created = %v, got %v", d.name, d.created, created)
		}
	}

	wr := w.Wires()
	if wr[0].From != 0 || wr[0].To != 1 || wr[0].ToInput != 0 {
		t.Errorf("unexpected wire 0: %+v", wr[0])
	}
	if wr[1].From != 2 || wr[1].To != 1 || wr[1].ToInput != 1 {
		t.Errorf("unexpected wire 1: %+v", wr[1])
	}
	for i, x := range wr {
		start, end, _ := x.Endpoints(gates)
		if len(x.Waypoints) != 4 || x.Waypoints[0] != start || x.Waypoints[3] != end {
			t.Errorf("wire %d not routed: %v", i, x.Waypoints)
		}
	}
}

func TestWiring_Connect(t *testing.T) {
	gates := testGates()
	w := ls.NewWiring()
	td := []struct {
		name         string
		from, to, in int
		ok           bool
	}{
		{"out of range", 0, 5, 0, false},
		{"bad input", 0, 1, 2, false},
		{"input gate has no input", 1, 0, 0, false},
		{"same gate", 1, 1, 0, false},
		{"ok", 0, 1, 0, true},
		{"already connected", 2, 1, 0, false},
	}
	for _, d := range td {
		if _, ok := w.Connect(d.from, d.to, d.in, gates); ok != d.ok {
			t.Errorf("%s: Connect(%d, %d, %d) = %v", d.name, d.from, d.to, d.in, ok)
		}
	}
}

func TestWiring_HandleWireDeletion(t *testing.T) {
	gates := testGates()
	w := ls.NewWiring()
	w.Connect(0, 1, 0, gates)
	w.Connect(2, 1, 1, gates)

	if w.HandleWireDeletion(r2.Vec{X: 430, Y: 500}, gates) {
		t.Fatal("wire deleted by far click")
	}
	// halfway between (368, 120) and (492, 116.5)
	if !w.HandleWireDeletion(r2.Vec{X: 430, Y: 118}, gates) {
		t.Fatal("wire not deleted")
	}
	if w.Len() != 1 || w.Wires()[0].From != 2 {
		t.Fatalf("wrong wire deleted: %+v", w.Wires())
	}
}

func randomWiring(pairs [][3]uint8, n int) ([]*ls.Gate, *ls.Wiring) {
	gates := make([]*ls.Gate, n)
	for i := range gates {
		gates[i] = ls.NewGate(ls.And, r2.Vec{X: float64(i) * 100, Y: 0})
	}
	w := ls.NewWiring()
	for _, p := range pairs {
		w.Connect(int(p[0])%n, int(p[1])%n, int(p[2])%2, gates)
	}
	return gates, w
}

func TestWiring_RemoveWiresForGate(t *testing.T) {
	const n = 8
	f := func(pairs [][3]uint8, g uint8) bool {
		_, w := randomWiring(pairs, n)
		r := int(g) % n
		w.RemoveWiresForGate(r)
		for _, wr := range w.Wires() {
			if wr.From == r || wr.To == r {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestWiring_UpdateWireIndices(t *testing.T) {
	const n = 8
	f := func(pairs [][3]uint8, g uint8) bool {
		_, w := randomWiring(pairs, n)
		r := int(g) % n
		w.RemoveWiresForGate(r)
		type ends struct{ from, to, in int }
		var before []ends
		for _, wr := range w.Wires() {
			before = append(before, ends{wr.From, wr.To, wr.ToInput})
		}
		w.UpdateWireIndices(r)
		if len(before) != w.Len() {
			return false
		}
		shift := func(i int) int {
			if i > r {
				return i - 1
			}
			return i
		}
		for i, wr := range w.Wires() {
			b := before[i]
			if wr.From != shift(b.from) || wr.To != shift(b.to) || wr.ToInput != b.in {
				return false
			}
			if wr.From < 0 || wr.From >= n-1 || wr.To < 0 || wr.To >= n-1 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestWiring_UpdateSignals(t *testing.T) {
	gates := testGates()
	a, b, c := gates[0], gates[1], gates[2]
	w := ls.NewWiring()
	w.Connect(0, 1, 0, gates)

	a.Input1 = true
	w.UpdateSignals(gates)
	if b.Output {
		t.Fatal("AND(true, <unconnected>) = true")
	}
	if !w.Wires()[0].State {
		t.Fatal("wire state does not mirror its source")
	}

	w.Connect(2, 1, 1, gates)
	c.Input1 = true
	w.UpdateSignals(gates)
	if !b.Output {
		t.Fatal("AND(true, true) = false")
	}

	c.Input1 = false
	w.UpdateSignals(gates)
	if b.Output || w.Wires()[1].State {
		t.Fatal("AND(true, false) = true")
	}
}

// INPUT -> NOT -> OUTPUT: the output lags one tick behind the NOT gate.
func TestWiring_UpdateSignals_latency(t *testing.T) {
	gates := []*ls.Gate{
		ls.NewGate(ls.Input, r2.Vec{X: 300, Y: 100}),
		ls.NewGate(ls.Not, r2.Vec{X: 500, Y: 100}),
		ls.NewGate(ls.Output, r2.Vec{X: 700, Y: 100}),
	}
	in, not, out := gates[0], gates[1], gates[2]
	w := ls.NewWiring()
	w.Connect(1, 2, 0, gates)
	w.Connect(0, 1, 0, gates)

	w.UpdateSignals(gates)
	if !not.Output {
		t.Fatal("NOT(false) = false")
	}
	if out.Output {
		t.Fatal("OUTPUT saw NOT's output on the same tick")
	}
	// the wire shows the fresh value even though OUTPUT consumed the stale one.
	if !w.Wires()[0].State {
		t.Fatal("NOT -> OUTPUT wire state not refreshed")
	}

	w.UpdateSignals(gates)
	if !out.Output {
		t.Fatal("OUTPUT did not catch up after one tick")
	}

	in.Input1 = true
	w.UpdateSignals(gates)
	if not.Output || !out.Output {
		t.Fatalf("tick 1 after toggle: NOT = %v, OUTPUT = %v", not.Output, out.Output)
	}
	w.UpdateSignals(gates)
	if out.Output {
		t.Fatal("tick 2 after toggle: OUTPUT = true")
	}
}

func TestWiring_UpdateSignals_danglingWire(t *testing.T) {
	gates := []*ls.Gate{
		ls.NewGate(ls.Input, r2.Vec{X: 300, Y: 100}),
		ls.NewGate(ls.And, r2.Vec{X: 500, Y: 100}),
		ls.NewGate(ls.Not, r2.Vec{X: 700, Y: 100}),
	}
	w := ls.NewWiring()
	w.Connect(0, 2, 0, gates)
	w.Connect(2, 1, 0, gates)
	gates[0].Input1 = true

	// gate 2 is gone but the wires were not updated: they must be skipped.
	w.UpdateSignals(gates[:2])
	if !gates[0].Output || gates[1].Output {
		t.Fatalf("unexpected outputs %v, %v", gates[0].Output, gates[1].Output)
	}
	if w.HandleWireDeletion(gates[0].OutputPoint(), gates[:2]) {
		t.Fatal("dangling wire deleted")
	}
}

func TestWiring_Highlight(t *testing.T) {
	gates := testGates()
	a, b, c := gates[0], gates[1], gates[2]
	w := ls.NewWiring()
	w.Connect(2, 1, 1, gates)

	if _, _, ok := w.Highlight(r2.Vec{X: 1000, Y: 1000}, gates); ok {
		t.Fatal("highlight on empty space")
	}
	if _, v, ok := w.Highlight(a.OutputPoint(), gates); !ok || v != ls.Neutral {
		t.Fatalf("idle highlight: %v, %v", v, ok)
	}
	w.HandleWireClick(a.OutputPoint(), gates)
	td := []struct {
		pos r2.Vec
		v   ls.Validity
	}{
		{b.InputPoint(0), ls.Valid},
		{b.InputPoint(1), ls.Invalid},
		{c.OutputPoint(), ls.Invalid},
		{b.OutputPoint(), ls.Invalid},
	}
	for _, d := range td {
		if _, v, ok := w.Highlight(d.pos, gates); !ok || v != d.v {
			t.Errorf("highlight at %v: expected %v, got %v, %v", d.pos, d.v, v, ok)
		}
	}
}

func wireSnapshot(w *ls.Wiring) []ls.Wire {
	s := make([]ls.Wire, w.Len())
	for i, wr := range w.Wires() {
		s[i] = *wr
	}
	return s
}

// operations given no gates at all must neither panic nor touch the wires.
func TestWiring_noGates(t *testing.T) {
	empty := ls.NewWiring()
	for _, gates := range [][]*ls.Gate{nil, {}} {
		if empty.HandleWireClick(r2.Vec{X: 300, Y: 100}, gates) {
			t.Error("click on an empty wiring changed its state")
		}
		if empty.HandleWireDeletion(r2.Vec{X: 300, Y: 100}, gates) {
			t.Error("wire deleted from an empty wiring")
		}
		if _, _, ok := empty.Highlight(r2.Vec{X: 300, Y: 100}, gates); ok {
			t.Error("highlight without gates")
		}
		empty.UpdateSignals(gates)
		empty.RouteWires(gates, nil)
	}
	empty.RemoveWiresForGate(0)
	empty.UpdateWireIndices(0)
	if empty.Len() != 0 {
		t.Fatalf("empty wiring now holds %d wires", empty.Len())
	}
	if _, ok := empty.Pending(); ok {
		t.Fatal("empty wiring has a pending wire")
	}

	gates := testGates()
	w := ls.NewWiring()
	w.Connect(0, 1, 0, gates)
	w.Connect(2, 1, 1, gates)
	gates[0].Input1 = true
	w.UpdateSignals(gates)
	want := wireSnapshot(w)
	if !want[0].State {
		t.Fatal("wire 0 not on before the test")
	}

	for _, gates := range [][]*ls.Gate{nil, {}} {
		if w.HandleWireClick(want[0].Waypoints[1], gates) {
			t.Error("idle click without gates changed the wiring state")
		}
		if w.HandleWireDeletion(want[0].Waypoints[1], gates) {
			t.Error("wire deleted without gates")
		}
		if _, _, ok := w.Highlight(want[0].Waypoints[0], gates); ok {
			t.Error("highlight without gates")
		}
		if _, ok := w.Connect(0, 1, 1, gates); ok {
			t.Error("wire connected without gates")
		}
		w.UpdateSignals(gates)
		w.RouteWires(gates, nil)
		if got := wireSnapshot(w); !reflect.DeepEqual(got, want) {
			t.Fatalf("wires changed:\n got %+v\nwant %+v", got, want)
		}
		if _, ok := w.Pending(); ok {
			t.Fatal("pending wire after idle clicks")
		}
	}

	// gate indices no wire refers to.
	w.RemoveWiresForGate(3)
	w.RemoveWiresForGate(-1)
	w.UpdateWireIndices(2)
	w.UpdateWireIndices(10)
	if got := wireSnapshot(w); !reflect.DeepEqual(got, want) {
		t.Fatalf("wires changed:\n got %+v\nwant %+v", got, want)
	}
}
