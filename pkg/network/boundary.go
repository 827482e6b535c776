package network

import (
	"fmt"

	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
)

// BoundaryValidator maps coordinates to sequential site ids and decides
// which diagram edges are adjacencies inside the simulated domain.
type BoundaryValidator struct {
	ids map[orb.Point]int
}

func NewBoundaryValidator() *BoundaryValidator {
	return &BoundaryValidator{ids: make(map[orb.Point]int)}
}

// Register assigns the next id to p.
func (v *BoundaryValidator) Register(p orb.Point) (int, error) {
	if id, ok := v.ids[p]; ok {
		return id, fmt.Errorf("%w: %v already registered as %d", ErrDuplicatePoint, p, id)
	}
	id := len(v.ids)
	v.ids[p] = id
	return id, nil
}

// ID returns the id registered for p, or NoSite.
func (v *BoundaryValidator) ID(p orb.Point) int {
	if id, ok := v.ids[p]; ok {
		return id
	}
	return NoSite
}

// IsBoundedAdjacency reports whether edge l separates two cells that touch
// inside domain.
//
// Infinite lines always do. Segments do when they meet the domain and have
// non-zero length. A ray does when it heads back into the domain from a
// vertex lying outside it, judged against the first half-plane the vertex
// violates.
func (v *BoundaryValidator) IsBoundedAdjacency(l voronoi.Line, vertices []orb.Point, domain orb.Bound) bool {
	b0, b1 := l.Bounded(0), l.Bounded(1)

	switch {
	case !b0 && !b1:
		return true
	case b0 && b1:
		p, q := vertices[l.Vertices[0]], vertices[l.Vertices[1]]
		if voronoi.SamePoint(p, q) {
			return false
		}
		return voronoi.SegmentHitsBound(p, q, domain)
	}

	// from here on exactly one end is bounded; b0 tells which
	vx := l.Vertices[1]
	if b0 {
		vx = l.Vertices[0]
	}
	x, y := vertices[vx][0], vertices[vx][1]

	switch {
	case x < domain.Min[0]:
		return b0
	case x > domain.Max[0]:
		return !b0
	case y < domain.Min[1]:
		if l.B == 0 {
			return !b0
		}
		q := l.C/l.B - y
		if !b0 {
			return q > 0
		}
		return q < 0
	case y > domain.Max[1]:
		if l.B == 0 {
			return b0
		}
		q := l.C/l.B - y
		if !b0 {
			return q < 0
		}
		return q > 0
	}
	return true
}
