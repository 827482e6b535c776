// Package aoi holds the convex area of interest a multicast packet is
// addressed to.
package aoi

import (
	"errors"
	"math"

	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
)

var ErrDegenerateHull = errors.New("aoi: hull has fewer than 3 vertices")

const epsilon = 1e-9

// Area is a convex polygon built as the hull of a point set. The ring is
// not closed: the last vertex connects back to the first.
type Area struct {
	ring  orb.Ring
	bound orb.Bound
}

// New wraps points into their convex hull.
func New(points []orb.Point) (*Area, error) {
	ring, err := wrap(points)
	if err != nil {
		return nil, err
	}
	return &Area{ring: ring, bound: ring.Bound()}, nil
}

// wrap is gift wrapping started at the leftmost point. Collinear points
// are skipped in favour of the farthest one.
func wrap(points []orb.Point) (orb.Ring, error) {
	if len(points) < 3 {
		return nil, ErrDegenerateHull
	}

	start := points[0]
	for _, p := range points[1:] {
		if p[0] < start[0] || (p[0] == start[0] && p[1] < start[1]) {
			start = p
		}
	}

	ring := orb.Ring{}
	seen := make(map[orb.Point]bool)
	cur := start

	for iter := 0; iter <= len(points); iter++ {
		if seen[cur] {
			break
		}
		seen[cur] = true
		ring = append(ring, cur)

		next, found := orb.Point{}, false
		for _, p := range points {
			if p == cur {
				continue
			}
			if !found {
				next, found = p, true
				continue
			}
			c := cross(cur, next, p)
			if c < 0 || (c == 0 && voronoi.DistanceSquared(cur, p) > voronoi.DistanceSquared(cur, next)) {
				next = p
			}
		}
		if !found {
			break
		}
		if next == start {
			if len(ring) < 3 {
				return nil, ErrDegenerateHull
			}
			return ring, nil
		}
		cur = next
	}

	return nil, ErrDegenerateHull
}

// cross is the z component of (p0-p1) x (p2-p1).
func cross(p0, p1, p2 orb.Point) float64 {
	x1 := p0[0] - p1[0]
	x2 := p2[0] - p1[0]
	y1 := p0[1] - p1[1]
	y2 := p2[1] - p1[1]
	return x1*y2 - x2*y1
}

// Contains reports whether p lies inside the hull. Points on the boundary
// are inside. The crossing count uses a horizontal ray towards a point to
// the right of the bounding box, and an edge only counts when it spans the
// ray half-open in y, so a ray through a vertex is counted once.
func (a *Area) Contains(p orb.Point) bool {
	n := len(a.ring)
	for i := 0; i < n; i++ {
		if onSegment(p, a.ring[i], a.ring[(i+1)%n]) {
			return true
		}
	}
	if !a.bound.Contains(p) {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := a.ring[i], a.ring[j]
		if (pi[1] > p[1]) != (pj[1] > p[1]) &&
			p[0] < (pj[0]-pi[0])*(p[1]-pi[1])/(pj[1]-pi[1])+pi[0] {
			inside = !inside
		}
	}
	return inside
}

func onSegment(p, a, b orb.Point) bool {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return voronoi.SamePoint(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	if t < 0 || t > 1 {
		return false
	}
	q := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return math.Hypot(p[0]-q[0], p[1]-q[1]) < epsilon*math.Max(1, math.Sqrt(l2))
}

// Crosses reports whether the hull boundary meets the edge. Bounded ends
// of the edge stop at their vertices, unbounded ends run past the hull.
func (a *Area) Crosses(l voronoi.Line) bool {
	p, q, ok := l.Reach(a.bound)
	if !ok {
		return false
	}
	return a.crossesSegment(p, q)
}

func (a *Area) crossesSegment(p, q orb.Point) bool {
	n := len(a.ring)
	for i := 0; i < n; i++ {
		if voronoi.SegmentsIntersect(p, q, a.ring[i], a.ring[(i+1)%n]) {
			return true
		}
	}
	return false
}

// CellStraddlesOrIsInside reports whether the hull boundary crosses any of
// edges, or else whether the first visible edge lies inside the hull.
func (a *Area) CellStraddlesOrIsInside(edges []voronoi.Line) bool {
	for _, e := range edges {
		if a.Crosses(e) {
			return true
		}
	}
	for _, e := range edges {
		if e.Visible {
			return a.Contains(e.Segment[0])
		}
	}
	return false
}

// Ring returns a copy of the hull vertices.
func (a *Area) Ring() orb.Ring {
	return append(orb.Ring(nil), a.ring...)
}

func (a *Area) Bound() orb.Bound {
	return a.bound
}

func (a *Area) Len() int {
	return len(a.ring)
}

// Rotate returns the same polygon with vertex k as its first vertex.
func (a *Area) Rotate(k int) *Area {
	n := len(a.ring)
	k = ((k % n) + n) % n
	ring := make(orb.Ring, 0, n)
	ring = append(ring, a.ring[k:]...)
	ring = append(ring, a.ring[:k]...)
	return &Area{ring: ring, bound: a.bound}
}
