// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "gonum.org/v1/gonum/spatial/r2"

// DefaultDeleteTolerance is the slack used by the wire deletion hit test.
//
const DefaultDeleteTolerance = 10

// Validity qualifies a pin under the cursor with respect to the wire being
// created.
//
type Validity int

// Pin validity values.
//
const (
	// Neutral: no wire is being created.
	Neutral Validity = iota
	// Valid: clicking the pin would complete the pending wire.
	Valid
	// Invalid: clicking the pin would abort the pending wire.
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "neutral"
}

// Wiring owns the wire collection of a circuit. It drives click based wire
// creation and deletion and propagates signals through the wires.
//
// Gates are owned by the caller and only referenced by index. Every method
// taking a gate slice borrows it for the duration of the call.
//
// Wire creation is a two state machine: idle, or pending with a source gate
// selected. A click on an output pin selects the source. The next click
// either lands on a free input pin of another gate and creates a wire, or
// aborts the pending wire.
//
type Wiring struct {
	wires   []*Wire
	pending int // source gate index, -1 when idle

	// Snap is the pin snap distance.
	Snap float64
	// DeleteTolerance is the slack of the wire deletion hit test.
	DeleteTolerance float64
	// Router routes new and moved wires. A nil Router uses SimpleRoute.
	Router *Router
}

// NewWiring returns an empty wiring engine with default settings.
//
func NewWiring() *Wiring {
	return &Wiring{
		pending:         -1,
		Snap:            DefaultSnapDistance,
		DeleteTolerance: DefaultDeleteTolerance,
	}
}

// Wires returns the wire collection. The returned slice must not be modified.
//
func (w *Wiring) Wires() []*Wire { return w.wires }

// Len returns the number of wires.
//
func (w *Wiring) Len() int { return len(w.wires) }

// Pending returns the source gate of the wire being created, if any.
//
func (w *Wiring) Pending() (int, bool) {
	return w.pending, w.pending >= 0
}

// Cancel aborts the wire being created, if any.
//
func (w *Wiring) Cancel() { w.pending = -1 }

// Connected returns true if a wire ends at input pin input of gate g.
//
func (w *Wiring) Connected(g, input int) bool {
	for _, wr := range w.wires {
		if wr.To == g && wr.ToInput == input {
			return true
		}
	}
	return false
}

func (w *Wiring) accepts(src int, p ConnectionPoint) bool {
	return p.IsInput && p.Gate != src && !w.Connected(p.Gate, p.Index)
}

// HandleWireClick processes a wiring mode click at pos. It returns true if the
// click changed the wiring state: a source was selected, a wire was created or
// a pending wire was aborted.
//
func (w *Wiring) HandleWireClick(pos r2.Vec, gates []*Gate) bool {
	p, ok := FindConnectionPoint(pos, gates, w.Snap)
	src, pending := w.Pending()
	switch {
	case !ok:
		// empty space
		w.Cancel()
		return pending
	case !pending:
		if p.IsInput {
			return false
		}
		w.pending = p.Gate
		return true
	}
	w.Cancel()
	if w.accepts(src, p) {
		w.add(NewWire(src, p.Gate, p.Index), gates)
	}
	return true
}

func (w *Wiring) add(wr *Wire, gates []*Gate) {
	wr.Route(w.Router, gates)
	w.wires = append(w.wires, wr)
}

// Connect creates a wire from the output of gate from to input pin input of
// gate to, applying the same rules as click based creation. It returns the new
// wire, or false if the connection is rejected.
//
func (w *Wiring) Connect(from, to, input int, gates []*Gate) (*Wire, bool) {
	if from < 0 || from >= len(gates) || to < 0 || to >= len(gates) ||
		gates[from] == nil || gates[to] == nil {
		return nil, false
	}
	if !gates[from].HasOutput() || input < 0 || input >= gates[to].InputCount() {
		return nil, false
	}
	if !w.accepts(from, ConnectionPoint{IsInput: true, Gate: to, Index: input}) {
		return nil, false
	}
	wr := NewWire(from, to, input)
	w.add(wr, gates)
	return wr, true
}

// HandleWireDeletion deletes the first wire, in collection order, hit by pos.
// The hit test is an ellipse around the straight line between the wire
// endpoints, not the routed path. It returns true if a wire was deleted.
//
func (w *Wiring) HandleWireDeletion(pos r2.Vec, gates []*Gate) bool {
	for i, wr := range w.wires {
		start, end, ok := wr.Endpoints(gates)
		if !ok {
			continue
		}
		if hit(pos, start, end, w.DeleteTolerance) {
			w.remove(i)
			return true
		}
	}
	return false
}

func (w *Wiring) remove(i int) {
	copy(w.wires[i:], w.wires[i+1:])
	w.wires[len(w.wires)-1] = nil
	w.wires = w.wires[:len(w.wires)-1]
}

// WireAt returns the index of the first wire whose path lies within threshold
// of pos, or -1.
//
func (w *Wiring) WireAt(pos r2.Vec, threshold float64) int {
	for i, wr := range w.wires {
		if wr.IsNearWirePath(pos, threshold) {
			return i
		}
	}
	return -1
}

// RemoveWiresForGate removes all wires from or to gate g. It must be called
// before removing g from the gate collection.
//
func (w *Wiring) RemoveWiresForGate(g int) {
	out := w.wires[:0]
	for _, wr := range w.wires {
		if wr.From != g && wr.To != g {
			out = append(out, wr)
		}
	}
	for i := len(out); i < len(w.wires); i++ {
		w.wires[i] = nil
	}
	w.wires = out
	if w.pending == g {
		w.Cancel()
	}
}

// UpdateWireIndices shifts down all gate references greater than removed. It
// must be called right after the gate at index removed has been taken out of
// the gate collection.
//
func (w *Wiring) UpdateWireIndices(removed int) {
	for _, wr := range w.wires {
		if wr.From > removed {
			wr.From--
		}
		if wr.To > removed {
			wr.To--
		}
	}
	if w.pending > removed {
		w.pending--
	}
}

// RouteWires recomputes the path of every wire for which sel returns true, or
// of all wires if sel is nil.
//
func (w *Wiring) RouteWires(gates []*Gate, sel func(*Wire) bool) {
	for _, wr := range w.wires {
		if sel == nil || sel(wr) {
			wr.Route(w.Router, gates)
		}
	}
}

// UpdateSignals runs one propagation tick:
//
//	1. Input gates compute their output, all other gates have their inputs
//	   reset to false.
//	2. Each wire, in collection order, copies the current output of its source
//	   gate into its state and into its destination input pin.
//	3. All non Input gates compute their output.
//	4. Each wire refreshes its state from its source gate.
//
// Gates that are not Input gates still hold the previous tick's output during
// step 2, so a signal crosses one combinational gate per tick. A chain of N
// gates needs N ticks to settle.
//
// Wires with out of range gate references are skipped.
//
func (w *Wiring) UpdateSignals(gates []*Gate) {
	for _, g := range gates {
		if g == nil {
			continue
		}
		if g.Kind() == Input {
			g.ComputeOutput()
		} else {
			g.Input1, g.Input2 = false, false
		}
	}
	for _, wr := range w.wires {
		if !wr.valid(gates) {
			continue
		}
		s := gates[wr.From].Output
		wr.State = s
		gates[wr.To].SetInput(wr.ToInput, s)
	}
	for _, g := range gates {
		if g != nil && g.Kind() != Input {
			g.ComputeOutput()
		}
	}
	for _, wr := range w.wires {
		if wr.From >= 0 && wr.From < len(gates) && gates[wr.From] != nil {
			wr.State = gates[wr.From].Output
		}
	}
}

// Highlight returns the pin under pos and its validity with respect to the
// pending wire.
//
func (w *Wiring) Highlight(pos r2.Vec, gates []*Gate) (ConnectionPoint, Validity, bool) {
	p, ok := FindConnectionPoint(pos, gates, w.Snap)
	if !ok {
		return p, Neutral, false
	}
	src, pending := w.Pending()
	switch {
	case !pending:
		return p, Neutral, true
	case w.accepts(src, p):
		return p, Valid, true
	}
	return p, Invalid, true
}
