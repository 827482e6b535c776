package voronoi

import (
	"math"

	"github.com/paulmach/orb"
)

// plotBox is the square display box around the site extent, 10% larger
// than its longest side.
func plotBox(xMin, xMax, yMin, yMax float64) orb.Bound {
	dx := xMax - xMin
	dy := yMax - yMin
	d := math.Max(dx, dy) * 1.1

	return orb.Bound{
		Min: orb.Point{xMin - (d-dx)/2, yMin - (d-dy)/2},
		Max: orb.Point{xMax + (d-dx)/2, yMax + (d-dy)/2},
	}
}

// clipLine cuts the edge to the display box. Bounded ends stop at their
// vertex when the vertex is inside the box.
func clipLine(l Line, box orb.Bound) ([2]orb.Point, bool) {
	var s1, s2 *orb.Point
	first, second := 0, 1
	if l.A == 1.0 && l.B >= 0.0 {
		first, second = 1, 0
	}
	if l.Bounded(first) {
		s1 = &l.Points[first]
	}
	if l.Bounded(second) {
		s2 = &l.Points[second]
	}

	xl, xr := box.Min[0], box.Max[0]
	yt, yb := box.Min[1], box.Max[1]
	var x1, y1, x2, y2 float64

	if l.A == 1.0 {
		y1 = yt
		if s1 != nil && s1[1] > yt {
			y1 = s1[1]
		}
		if y1 > yb {
			return [2]orb.Point{}, false
		}
		x1 = l.C - l.B*y1

		y2 = yb
		if s2 != nil && s2[1] < yb {
			y2 = s2[1]
		}
		if y2 < yt {
			return [2]orb.Point{}, false
		}
		x2 = l.C - l.B*y2

		if (x1 > xr && x2 > xr) || (x1 < xl && x2 < xl) {
			return [2]orb.Point{}, false
		}
		if x1 > xr {
			x1 = xr
			y1 = (l.C - x1) / l.B
		}
		if x1 < xl {
			x1 = xl
			y1 = (l.C - x1) / l.B
		}
		if x2 > xr {
			x2 = xr
			y2 = (l.C - x2) / l.B
		}
		if x2 < xl {
			x2 = xl
			y2 = (l.C - x2) / l.B
		}
	} else {
		x1 = xl
		if s1 != nil && s1[0] > xl {
			x1 = s1[0]
		}
		if x1 > xr {
			return [2]orb.Point{}, false
		}
		y1 = l.C - l.A*x1

		x2 = xr
		if s2 != nil && s2[0] < xr {
			x2 = s2[0]
		}
		if x2 < xl {
			return [2]orb.Point{}, false
		}
		y2 = l.C - l.A*x2

		if (y1 > yb && y2 > yb) || (y1 < yt && y2 < yt) {
			return [2]orb.Point{}, false
		}
		if y1 > yb {
			y1 = yb
			x1 = (l.C - y1) / l.A
		}
		if y1 < yt {
			y1 = yt
			x1 = (l.C - y1) / l.A
		}
		if y2 > yb {
			y2 = yb
			x2 = (l.C - y2) / l.A
		}
		if y2 < yt {
			y2 = yt
			x2 = (l.C - y2) / l.A
		}
	}

	return [2]orb.Point{{x1, y1}, {x2, y2}}, true
}

// SegmentHitsBound reports whether segment a-b has at least one point in
// bound (borders included), using Liang-Barsky parametric clipping.
func SegmentHitsBound(a, b orb.Point, bound orb.Bound) bool {
	t0 := 0.0
	t1 := 1.0
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	// left, right, top, bottom
	return clip(-dx, a[0]-bound.Min[0]) &&
		clip(dx, bound.Max[0]-a[0]) &&
		clip(-dy, a[1]-bound.Min[1]) &&
		clip(dy, bound.Max[1]-a[1])
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 share a point.
// Touching ends and collinear overlaps count.
func SegmentsIntersect(a1, a2, b1, b2 orb.Point) bool {
	return relativeCCW(a1, a2, b1)*relativeCCW(a1, a2, b2) <= 0 &&
		relativeCCW(b1, b2, a1)*relativeCCW(b1, b2, a2) <= 0
}

// relativeCCW tells on which side of a->b the point p lies: -1, 0 or 1.
// Collinear points beyond either end of the segment get a non-zero answer.
func relativeCCW(a, b, p orb.Point) int {
	x2, y2 := b[0]-a[0], b[1]-a[1]
	px, py := p[0]-a[0], p[1]-a[1]

	ccw := px*y2 - py*x2
	if ccw == 0.0 {
		ccw = px*x2 + py*y2
		if ccw > 0.0 {
			px -= x2
			py -= y2
			ccw = px*x2 + py*y2
			if ccw < 0.0 {
				ccw = 0.0
			}
		}
	}

	switch {
	case ccw < 0.0:
		return -1
	case ccw > 0.0:
		return 1
	default:
		return 0
	}
}
