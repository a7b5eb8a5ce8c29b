// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the euclidean distance between p and q.
//
func Distance(p, q r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// SegmentDistance returns the distance between p and the segment [a, b].
//
func SegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Dot(ab, ab)
	if l2 == 0 {
		return Distance(p, a)
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(p, r2.Add(a, r2.Scale(t, ab)))
}

func boxContains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// boxOverlaps reports whether the interiors of a and b intersect.
func boxOverlaps(a, b r2.Box) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X && a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

func expandBox(b r2.Box, m float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.Min.X - m, Y: b.Min.Y - m},
		Max: r2.Vec{X: b.Max.X + m, Y: b.Max.Y + m},
	}
}

// segmentCrosses reports whether the axis-aligned segment [a, b] passes
// through the interior of box. Running along an edge is not a crossing.
func segmentCrosses(a, b r2.Vec, box r2.Box) bool {
	seg := r2.Box{
		Min: r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
	if seg.Min.Y == seg.Max.Y {
		return seg.Min.Y > box.Min.Y && seg.Min.Y < box.Max.Y &&
			seg.Min.X < box.Max.X && seg.Max.X > box.Min.X
	}
	return seg.Min.X > box.Min.X && seg.Min.X < box.Max.X &&
		seg.Min.Y < box.Max.Y && seg.Max.Y > box.Min.Y
}

// SnapToGrid rounds p to the nearest multiple of size on both axes.
// A non-positive size returns p unchanged.
//
func SnapToGrid(p r2.Vec, size float64) r2.Vec {
	if size <= 0 {
		return p
	}
	return r2.Vec{X: math.Round(p.X/size) * size, Y: math.Round(p.Y/size) * size}
}
