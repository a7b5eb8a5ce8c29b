// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultClearance is the margin kept between routed wires and gate bodies.
	DefaultClearance = 15

	// fraction of the dominant axis covered before the first bend.
	split = 0.7
)

// A Router computes orthogonal wire paths.
//
// With AvoidObstacles unset, or when no gates are given, Route returns the
// simple two-bend path of SimpleRoute.
//
// With AvoidObstacles set, Route looks for a path that does not cross any gate
// body expanded by Clearance. Gates whose expanded body contains one of the
// path endpoints (usually the gates owning the pins) are only avoided by
// their bare body. If no such path exists, Route falls back to SimpleRoute.
//
type Router struct {
	Clearance      float64
	AvoidObstacles bool
	// BendPenalty is the cost of a bend, in distance units, when searching
	// the routing grid.
	BendPenalty float64
}

// NewRouter returns an obstacle avoiding router with the given clearance.
//
func NewRouter(clearance float64) *Router {
	return &Router{
		Clearance:      clearance,
		AvoidObstacles: true,
		BendPenalty:    2 * clearance,
	}
}

// CalculateRoute returns the orthogonal path from start to end. If gates is
// nil, the simple path is returned, otherwise the route avoids gates with the
// default clearance.
//
func CalculateRoute(start, end r2.Vec, gates []*Gate) []r2.Vec {
	if gates == nil {
		return SimpleRoute(start, end)
	}
	return NewRouter(DefaultClearance).Route(start, end, gates)
}

// SimpleRoute returns a Z shaped path from start to end. If the horizontal
// distance dominates, the path goes horizontally for 70% of that distance,
// then vertically, then horizontally to end. Otherwise it does the same
// starting vertically.
//
// The returned path always has 4 waypoints.
//
func SimpleRoute(start, end r2.Vec) []r2.Vec {
	d := r2.Sub(end, start)
	if math.Abs(d.X) > math.Abs(d.Y) {
		x := start.X + d.X*split
		return []r2.Vec{start, {X: x, Y: start.Y}, {X: x, Y: end.Y}, end}
	}
	y := start.Y + d.Y*split
	return []r2.Vec{start, {X: start.X, Y: y}, {X: end.X, Y: y}, end}
}

// Simple returns the path of SimpleRoute, ignoring any obstacle.
//
func (r *Router) Simple(start, end r2.Vec) []r2.Vec { return SimpleRoute(start, end) }

// Route returns an orthogonal path from start to end.
//
func (r *Router) Route(start, end r2.Vec, gates []*Gate) []r2.Vec {
	base := SimpleRoute(start, end)
	if r == nil || !r.AvoidObstacles || len(gates) == 0 {
		return base
	}
	obs := r.obstacles(start, end, gates)
	if len(obs) == 0 {
		return base
	}
	for _, c := range candidates(start, end, base) {
		if unobstructed(c, obs) {
			return c
		}
	}
	if p, ok := r.search(start, end, obs); ok {
		return p
	}
	return base
}

func (r *Router) obstacles(start, end r2.Vec, gates []*Gate) []r2.Box {
	obs := make([]r2.Box, 0, len(gates))
	for _, g := range gates {
		if g == nil {
			continue
		}
		b := g.Bounds()
		x := expandBox(b, r.Clearance)
		if boxContains(x, start) || boxContains(x, end) {
			obs = append(obs, b)
			continue
		}
		obs = append(obs, x)
	}
	return obs
}

// candidates returns the cheap routes tried before a grid search, best first.
func candidates(start, end r2.Vec, base []r2.Vec) [][]r2.Vec {
	d := r2.Sub(end, start)
	var alt []r2.Vec
	if math.Abs(d.X) > math.Abs(d.Y) {
		y := start.Y + d.Y*split
		alt = []r2.Vec{start, {X: start.X, Y: y}, {X: end.X, Y: y}, end}
	} else {
		x := start.X + d.X*split
		alt = []r2.Vec{start, {X: x, Y: start.Y}, {X: x, Y: end.Y}, end}
	}
	return [][]r2.Vec{
		base,
		{start, {X: end.X, Y: start.Y}, end},
		{start, {X: start.X, Y: end.Y}, end},
		alt,
	}
}

func unobstructed(pts []r2.Vec, obs []r2.Box) bool {
	for i := 1; i < len(pts); i++ {
		for _, b := range obs {
			if segmentCrosses(pts[i-1], pts[i], b) {
				return false
			}
		}
	}
	return true
}

// routing grid lanes. Each grid vertex has a horizontal and a vertical lane
// node, joined by an edge weighted with the bend penalty.
const (
	laneH = iota
	laneV
	laneCount
)

type grid struct {
	xs, ys []float64
}

func (gr *grid) id(i, j, lane int) int64 {
	return int64((j*len(gr.xs)+i)*laneCount + lane)
}

func (gr *grid) pos(id int64) r2.Vec {
	v := int(id) / laneCount
	return r2.Vec{X: gr.xs[v%len(gr.xs)], Y: gr.ys[v/len(gr.xs)]}
}

func newGrid(start, end r2.Vec, obs []r2.Box, margin float64) *grid {
	xs := []float64{start.X, end.X}
	ys := []float64{start.Y, end.Y}
	lo, hi := r2.Vec{X: math.Min(start.X, end.X), Y: math.Min(start.Y, end.Y)},
		r2.Vec{X: math.Max(start.X, end.X), Y: math.Max(start.Y, end.Y)}
	for _, b := range obs {
		xs = append(xs, b.Min.X, b.Max.X)
		ys = append(ys, b.Min.Y, b.Max.Y)
		lo.X, lo.Y = math.Min(lo.X, b.Min.X), math.Min(lo.Y, b.Min.Y)
		hi.X, hi.Y = math.Max(hi.X, b.Max.X), math.Max(hi.Y, b.Max.Y)
	}
	xs = append(xs, lo.X-margin, hi.X+margin)
	ys = append(ys, lo.Y-margin, hi.Y+margin)
	return &grid{xs: uniq(xs), ys: uniq(ys)}
}

func uniq(v []float64) []float64 {
	sort.Float64s(v)
	out := v[:1]
	for _, f := range v[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}

func inside(p r2.Vec, obs []r2.Box) bool {
	for _, b := range obs {
		if p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y {
			return true
		}
	}
	return false
}

// search runs A* over a partial grid built from the obstacle edges. There are
// no grid vertices inside obstacles and no grid edges crossing them.
func (r *Router) search(start, end r2.Vec, obs []r2.Box) ([]r2.Vec, bool) {
	if inside(start, obs) || inside(end, obs) {
		return nil, false
	}
	margin := r.Clearance
	if margin <= 0 {
		margin = DefaultClearance
	}
	gr := newGrid(start, end, obs, margin)
	nx, ny := len(gr.xs), len(gr.ys)
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))

	ok := make([]bool, nx*ny)
	for j, y := range gr.ys {
		for i, x := range gr.xs {
			p := r2.Vec{X: x, Y: y}
			if inside(p, obs) {
				continue
			}
			ok[j*nx+i] = true
			bend := r.BendPenalty
			if p == start || p == end {
				bend = 0
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(gr.id(i, j, laneH)), simple.Node(gr.id(i, j, laneV)), bend))
		}
	}
	link := func(i0, j0, i1, j1, lane int) {
		if !ok[j0*nx+i0] || !ok[j1*nx+i1] {
			return
		}
		a, b := r2.Vec{X: gr.xs[i0], Y: gr.ys[j0]}, r2.Vec{X: gr.xs[i1], Y: gr.ys[j1]}
		for _, o := range obs {
			if segmentCrosses(a, b, o) {
				return
			}
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(gr.id(i0, j0, lane)), simple.Node(gr.id(i1, j1, lane)), Distance(a, b)))
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if i+1 < nx {
				link(i, j, i+1, j, laneH)
			}
			if j+1 < ny {
				link(i, j, i, j+1, laneV)
			}
		}
	}

	si, sj := sort.SearchFloat64s(gr.xs, start.X), sort.SearchFloat64s(gr.ys, start.Y)
	ei, ej := sort.SearchFloat64s(gr.xs, end.X), sort.SearchFloat64s(gr.ys, end.Y)
	src, dst := g.Node(gr.id(si, sj, laneH)), g.Node(gr.id(ei, ej, laneH))
	if src == nil || dst == nil {
		return nil, false
	}
	h := func(x, y graph.Node) float64 {
		d := r2.Sub(gr.pos(x.ID()), gr.pos(y.ID()))
		return math.Abs(d.X) + math.Abs(d.Y)
	}
	sp, _ := path.AStar(src, dst, g, h)
	nodes, w := sp.To(dst.ID())
	if len(nodes) == 0 || math.IsInf(w, 1) {
		return nil, false
	}
	pts := make([]r2.Vec, len(nodes))
	for i, n := range nodes {
		pts[i] = gr.pos(n.ID())
	}
	return simplify(pts), true
}

// simplify removes repeated and collinear waypoints.
func simplify(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		if n := len(out); n > 1 {
			a, b := out[n-2], out[n-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out[n-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}
