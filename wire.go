// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "gonum.org/v1/gonum/spatial/r2"

// A Wire is a directed link from the output pin of gate From to input pin
// ToInput of gate To. Gates are referenced by their index in the gate
// collection.
//
type Wire struct {
	From    int
	To      int
	ToInput int
	// State mirrors the output of the source gate. It is updated on every tick.
	State bool
	// Waypoints is the orthogonal path from the source pin to the destination
	// pin. It is recomputed whenever either end moves.
	Waypoints []r2.Vec
}

// NewWire returns a new wire from the output of gate from to input pin input
// of gate to.
//
func NewWire(from, to, input int) *Wire {
	return &Wire{From: from, To: to, ToInput: input}
}

// Endpoints returns the source and destination pin locations of w.
// ok is false if either gate index is out of range.
//
func (w *Wire) Endpoints(gates []*Gate) (start, end r2.Vec, ok bool) {
	if !w.valid(gates) {
		return start, end, false
	}
	return gates[w.From].OutputPoint(), gates[w.To].InputPoint(w.ToInput), true
}

func (w *Wire) valid(gates []*Gate) bool {
	return w.From >= 0 && w.From < len(gates) && gates[w.From] != nil &&
		w.To >= 0 && w.To < len(gates) && gates[w.To] != nil
}

// Route recomputes the wire waypoints with r. Wires with dangling gate
// references are left untouched.
//
func (w *Wire) Route(r *Router, gates []*Gate) {
	start, end, ok := w.Endpoints(gates)
	if !ok {
		return
	}
	if r == nil || !r.AvoidObstacles {
		w.Waypoints = SimpleRoute(start, end)
		return
	}
	w.Waypoints = r.Route(start, end, gates)
}

// IsNearWirePath returns true if p is within threshold of any segment of the
// wire path.
//
func (w *Wire) IsNearWirePath(p r2.Vec, threshold float64) bool {
	for i := 1; i < len(w.Waypoints); i++ {
		if SegmentDistance(p, w.Waypoints[i-1], w.Waypoints[i]) <= threshold {
			return true
		}
	}
	return false
}

// hit is the approximate hit test used for wire deletion: p lies within the
// ellipse whose foci are the wire endpoints and whose string length exceeds
// the direct distance by tolerance.
func hit(p, start, end r2.Vec, tolerance float64) bool {
	return Distance(p, start)+Distance(p, end) <= Distance(start, end)+tolerance
}
