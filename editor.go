// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// Mode selects how clicks are handled.
//
type Mode int

// Editor modes.
//
const (
	ModePlacement Mode = iota
	ModeWiring
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModePlacement:
		return "place"
	case ModeWiring:
		return "wire"
	case ModeDelete:
		return "delete"
	}
	return "unknown"
}

// An Option configures an Editor.
//
type Option func(*Editor)

// WithLogger sets the editor logger. By default, nothing is logged.
//
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// Editor is the top level circuit state. It owns the gate collection and the
// wiring engine and must only be used from a single goroutine, typically the
// frame loop.
//
type Editor struct {
	gates  []*Gate
	wiring *Wiring
	set    Settings

	mode     Mode
	selected Kind
	hasSel   bool
	mouse    r2.Vec
	ticks    uint

	log *slog.Logger
}

// NewEditor returns an empty editor.
//
func NewEditor(s Settings, opts ...Option) *Editor {
	w := NewWiring()
	w.Snap = s.SnapDistance
	w.DeleteTolerance = s.DeleteTolerance
	w.Router = &Router{
		Clearance:      s.Clearance,
		AvoidObstacles: s.AvoidObstacles,
		BendPenalty:    2 * s.Clearance,
	}
	e := &Editor{
		wiring: w,
		set:    s,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Settings returns the editor settings.
//
func (e *Editor) Settings() Settings { return e.set }

// Gates returns the gate collection. The returned slice must not be modified.
//
func (e *Editor) Gates() []*Gate { return e.gates }

// Wires returns the wire collection. The returned slice must not be modified.
//
func (e *Editor) Wires() []*Wire { return e.wiring.Wires() }

// Wiring returns the wiring engine.
//
func (e *Editor) Wiring() *Wiring { return e.wiring }

// Ticks returns the number of propagation ticks run so far.
//
func (e *Editor) Ticks() uint { return e.ticks }

// Mode returns the current mode.
//
func (e *Editor) Mode() Mode { return e.mode }

// SetMode changes the current mode. Leaving wiring mode aborts any pending
// wire.
//
func (e *Editor) SetMode(m Mode) {
	if m != ModeWiring {
		e.wiring.Cancel()
	}
	e.mode = m
}

// SelectKind selects the kind of gate placed by placement clicks.
//
func (e *Editor) SelectKind(k Kind) {
	if !k.Valid() {
		return
	}
	e.selected, e.hasSel = k, true
}

// ClearSelection deselects the gate kind.
//
func (e *Editor) ClearSelection() { e.hasSel = false }

// Selection returns the selected gate kind, if any.
//
func (e *Editor) Selection() (Kind, bool) { return e.selected, e.hasSel }

// CancelWire aborts the pending wire, if any.
//
func (e *Editor) CancelWire() { e.wiring.Cancel() }

// Click handles a primary click at pos according to the current mode. It
// returns true if the click changed the editor state.
//
// In placement mode, a click on an Input gate toggles it, otherwise a gate of
// the selected kind is placed centered on pos. In wiring mode, the click drives
// wire creation. In delete mode, the first wire hit is deleted, or else the
// gate under pos.
//
func (e *Editor) Click(pos r2.Vec) bool {
	e.mouse = pos
	switch e.mode {
	case ModePlacement:
		if i := e.GateAt(pos); i >= 0 {
			return e.ToggleInput(i)
		}
		if !e.hasSel {
			return false
		}
		_, ok := e.PlaceGate(e.selected, pos)
		return ok
	case ModeWiring:
		n := e.wiring.Len()
		ok := e.wiring.HandleWireClick(pos, e.gates)
		if e.wiring.Len() > n {
			wr := e.wiring.Wires()[n]
			e.log.Debug("wire created", "from", wr.From, "to", wr.To, "input", wr.ToInput)
		} else if ok {
			if src, p := e.wiring.Pending(); p {
				e.log.Debug("wire source selected", "gate", src)
			} else {
				e.log.Debug("wire aborted", "x", pos.X, "y", pos.Y)
			}
		}
		return ok
	case ModeDelete:
		if e.wiring.HandleWireDeletion(pos, e.gates) {
			e.log.Debug("wire deleted", "x", pos.X, "y", pos.Y)
			return true
		}
		if i := e.GateAt(pos); i >= 0 {
			return e.DeleteGate(i)
		}
	}
	return false
}

// GateAt returns the index of the topmost gate containing pos, or -1.
// Gates are drawn in collection order, so the last one is on top.
//
func (e *Editor) GateAt(pos r2.Vec) int {
	for i := len(e.gates) - 1; i >= 0; i-- {
		if e.gates[i].ContainsPoint(pos) {
			return i
		}
	}
	return -1
}

func (e *Editor) anchor(k Kind, center r2.Vec) r2.Vec {
	pos := r2.Sub(center, r2.Scale(0.5, k.Size()))
	if e.set.SnapToGrid {
		pos = SnapToGrid(pos, e.set.GridSize)
	}
	return pos
}

// PlaceGate places a new gate of kind k centered on center. The gate is
// rejected if it overlaps the sidebar or another gate. It returns the index of
// the new gate.
//
func (e *Editor) PlaceGate(k Kind, center r2.Vec) (int, bool) {
	if !k.Valid() {
		return -1, false
	}
	g := NewGate(k, e.anchor(k, center))
	if g.Pos.X < e.set.SidebarWidth {
		e.log.Debug("placement rejected", "kind", k, "reason", "sidebar")
		return -1, false
	}
	for _, o := range e.gates {
		if g.CollidesWith(o) {
			e.log.Debug("placement rejected", "kind", k, "reason", "collision")
			return -1, false
		}
	}
	e.gates = append(e.gates, g)
	if e.set.AvoidObstacles {
		e.wiring.RouteWires(e.gates, nil)
	}
	e.log.Debug("gate placed", "kind", k, "index", len(e.gates)-1, "x", g.Pos.X, "y", g.Pos.Y)
	return len(e.gates) - 1, true
}

// ToggleInput flips the state of Input gate i. It returns false if i is not
// an Input gate.
//
func (e *Editor) ToggleInput(i int) bool {
	if i < 0 || i >= len(e.gates) || e.gates[i].Kind() != Input {
		return false
	}
	g := e.gates[i]
	g.Input1 = !g.Input1
	e.log.Debug("input toggled", "index", i, "state", g.Input1)
	return true
}

// MoveGate moves the top-left corner of gate i to pos and re-routes the wires
// attached to it. When obstacle avoidance is on, all wires are re-routed.
//
func (e *Editor) MoveGate(i int, pos r2.Vec) bool {
	if i < 0 || i >= len(e.gates) {
		return false
	}
	if e.set.SnapToGrid {
		pos = SnapToGrid(pos, e.set.GridSize)
	}
	e.gates[i].Pos = pos
	if e.set.AvoidObstacles {
		e.wiring.RouteWires(e.gates, nil)
	} else {
		e.wiring.RouteWires(e.gates, func(w *Wire) bool { return w.From == i || w.To == i })
	}
	return true
}

// DeleteGate removes gate i and all the wires attached to it, then renumbers
// the remaining wires. Removing a gate must always go through DeleteGate to
// keep wire references consistent.
//
func (e *Editor) DeleteGate(i int) bool {
	if i < 0 || i >= len(e.gates) {
		return false
	}
	k := e.gates[i].Kind()
	e.wiring.RemoveWiresForGate(i)
	copy(e.gates[i:], e.gates[i+1:])
	e.gates[len(e.gates)-1] = nil
	e.gates = e.gates[:len(e.gates)-1]
	e.wiring.UpdateWireIndices(i)
	if e.set.AvoidObstacles {
		e.wiring.RouteWires(e.gates, nil)
	}
	e.log.Debug("gate deleted", "kind", k, "index", i)
	return true
}

// Connect wires the output of gate from to input pin input of gate to.
//
func (e *Editor) Connect(from, to, input int) bool {
	_, ok := e.wiring.Connect(from, to, input, e.gates)
	if !ok {
		e.log.Debug("wire rejected", "from", from, "to", to, "input", input)
	}
	return ok
}

// Tick runs one propagation tick.
//
func (e *Editor) Tick() {
	e.wiring.UpdateSignals(e.gates)
	e.ticks++
}

// Update runs one frame: it records the mouse position used for highlights
// and wire previews, then runs one propagation tick.
//
func (e *Editor) Update(mouse r2.Vec) {
	e.mouse = mouse
	e.Tick()
}

// Settle runs up to limit ticks and stops as soon as a tick leaves every gate
// output unchanged. It returns the number of ticks run and whether the last
// one left the circuit stable.
//
func (e *Editor) Settle(limit int) (ticks int, stable bool) {
	prev := make([]bool, len(e.gates))
	for n := 1; n <= limit; n++ {
		for i, g := range e.gates {
			prev[i] = g.Output
		}
		e.Tick()
		stable := true
		for i, g := range e.gates {
			if g.Output != prev[i] {
				stable = false
				break
			}
		}
		if stable {
			return n, true
		}
	}
	return limit, false
}

// Scene returns the draw data for the current frame.
//
func (e *Editor) Scene() Scene {
	s := Scene{
		Mode:      e.mode,
		Selected:  e.selected,
		HasSelect: e.hasSel,
		PinRadius: e.set.PinRadius,
		Sidebar:   e.set.SidebarWidth,
		Gates:     make([]GateView, 0, len(e.gates)),
		Wires:     make([]WireView, 0, e.wiring.Len()),
	}
	for i, g := range e.gates {
		s.Gates = append(s.Gates, gateView(i, g))
	}
	hover := -1
	if e.mode == ModeDelete {
		hover = e.wiring.WireAt(e.mouse, e.set.HoverThreshold)
	}
	for i, w := range e.wiring.Wires() {
		if !w.valid(e.gates) {
			continue
		}
		pts := make([]r2.Vec, len(w.Waypoints))
		copy(pts, w.Waypoints)
		s.Wires = append(s.Wires, WireView{Waypoints: pts, State: w.State, Hovered: i == hover})
	}
	if e.mode == ModeWiring {
		if p, v, ok := e.wiring.Highlight(e.mouse, e.gates); ok {
			s.Highlight = &Highlight{Pin: p, Validity: v}
		}
		if src, ok := e.wiring.Pending(); ok && src < len(e.gates) {
			s.Preview = &Preview{From: e.gates[src].OutputPoint(), To: e.mouse}
		}
	}
	return s
}
