// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "gonum.org/v1/gonum/spatial/r2"

// DefaultSnapDistance is the maximum distance between a click and a pin for
// the click to be considered on that pin.
//
const DefaultSnapDistance = 15

// A ConnectionPoint is a view of one pin of a gate. It is derived from the gate
// kind and position and must not be kept across gate moves or removals.
//
type ConnectionPoint struct {
	Pos     r2.Vec
	IsInput bool
	Gate    int // index of the owning gate in the gate collection
	Index   int // input pin number, 0 for outputs
}

// Same returns true if p and o designate the same pin.
//
func (p ConnectionPoint) Same(o ConnectionPoint) bool {
	return p.Gate == o.Gate && p.IsInput == o.IsInput && p.Index == o.Index
}

// FindConnectionPoint returns the first pin within snap distance of pos.
// Gates are scanned in collection order and pins in ConnectionPoints order.
// The first match wins, not the closest one.
//
func FindConnectionPoint(pos r2.Vec, gates []*Gate, snap float64) (ConnectionPoint, bool) {
	for i, g := range gates {
		if g == nil {
			continue
		}
		for _, p := range g.ConnectionPoints(i) {
			if Distance(pos, p.Pos) <= snap {
				return p, true
			}
		}
	}
	return ConnectionPoint{}, false
}
