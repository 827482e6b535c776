package voronoi

import "github.com/paulmach/orb"

// halfedge is one side of a bisector living on the beach line. The same
// record doubles as an entry of the circle event queue (vertex, ystar,
// pqNext).
type halfedge struct {
	left, right halfedgeRef
	edge        edgeRef
	pm          int
	vertex      vertexRef
	ystar       float64
	pqNext      halfedgeRef
}

// beachLine is the doubly linked status structure with a bucket hash over x
// to jump close to the arc above a new site.
type beachLine struct {
	hash     []halfedgeRef
	leftEnd  halfedgeRef
	rightEnd halfedgeRef
}

func (s *sweep) newHalfedge(e edgeRef, pm int) halfedgeRef {
	s.halfedges = append(s.halfedges, halfedge{
		left:   noHalfedge,
		right:  noHalfedge,
		edge:   e,
		pm:     pm,
		vertex: noVertex,
		pqNext: noHalfedge,
	})
	return halfedgeRef(len(s.halfedges) - 1)
}

func (s *sweep) he(h halfedgeRef) *halfedge {
	return &s.halfedges[h]
}

func (s *sweep) initBeachLine() {
	size := 2 * s.sqrtN
	s.beach.hash = make([]halfedgeRef, size)
	for i := range s.beach.hash {
		s.beach.hash[i] = noHalfedge
	}

	s.beach.leftEnd = s.newHalfedge(noEdge, le)
	s.beach.rightEnd = s.newHalfedge(noEdge, le)
	s.he(s.beach.leftEnd).right = s.beach.rightEnd
	s.he(s.beach.rightEnd).left = s.beach.leftEnd

	s.beach.hash[0] = s.beach.leftEnd
	s.beach.hash[size-1] = s.beach.rightEnd
}

// hashed returns the halfedge cached in bucket b, dropping stale entries
// that point to deleted halfedges.
func (s *sweep) hashed(b int) halfedgeRef {
	if b < 0 || b >= len(s.beach.hash) {
		return noHalfedge
	}
	h := s.beach.hash[b]
	if h == noHalfedge || s.he(h).edge != deletedEdge {
		return h
	}
	s.beach.hash[b] = noHalfedge
	return noHalfedge
}

// leftBound finds the halfedge immediately left of p on the beach line.
func (s *sweep) leftBound(p orb.Point) halfedgeRef {
	size := len(s.beach.hash)
	bucket := 0
	if s.deltaX > 0 {
		bucket = int((p[0] - s.xMin) / s.deltaX * float64(size))
	}
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= size {
		bucket = size - 1
	}

	h := s.hashed(bucket)
	if h == noHalfedge {
		for i := 1; ; i++ {
			if h = s.hashed(bucket - i); h != noHalfedge {
				break
			}
			if h = s.hashed(bucket + i); h != noHalfedge {
				break
			}
		}
	}

	if h == s.beach.leftEnd || (h != s.beach.rightEnd && s.rightOf(h, p)) {
		for {
			h = s.he(h).right
			if h == s.beach.rightEnd || !s.rightOf(h, p) {
				break
			}
		}
		h = s.he(h).left
	} else {
		for {
			h = s.he(h).left
			if h == s.beach.leftEnd || s.rightOf(h, p) {
				break
			}
		}
	}

	if bucket > 0 && bucket < size-1 {
		s.beach.hash[bucket] = h
	}
	return h
}

func (s *sweep) insertAfter(lb, h halfedgeRef) {
	n := s.he(h)
	n.left = lb
	n.right = s.he(lb).right
	s.he(s.he(lb).right).left = h
	s.he(lb).right = h
}

func (s *sweep) unlink(h halfedgeRef) {
	n := s.he(h)
	s.he(n.left).right = n.right
	s.he(n.right).left = n.left
	n.edge = deletedEdge
}

func (s *sweep) leftReg(h halfedgeRef) siteRef {
	n := s.he(h)
	if n.edge < 0 {
		return s.bottom
	}
	if n.pm == le {
		return s.edges[n.edge].reg[le]
	}
	return s.edges[n.edge].reg[re]
}

func (s *sweep) rightReg(h halfedgeRef) siteRef {
	n := s.he(h)
	if n.edge < 0 {
		return s.bottom
	}
	if n.pm == le {
		return s.edges[n.edge].reg[re]
	}
	return s.edges[n.edge].reg[le]
}

// rightOf reports whether p lies right of the parabolic breakpoint traced
// by halfedge h.
func (s *sweep) rightOf(h halfedgeRef, p orb.Point) bool {
	n := s.he(h)
	e := &s.edges[n.edge]
	top := s.cells[e.reg[1]].site

	rightOfSite := p[0] > top[0]
	if rightOfSite && n.pm == le {
		return true
	}
	if !rightOfSite && n.pm == re {
		return false
	}

	var above bool
	if e.a == 1.0 {
		dyp := p[1] - top[1]
		dxp := p[0] - top[0]
		fast := false

		if (!rightOfSite && e.b < 0.0) || (rightOfSite && e.b >= 0.0) {
			above = dyp >= e.b*dxp
			fast = above
		} else {
			above = p[0]+p[1]*e.b > e.c
			if e.b < 0.0 {
				above = !above
			}
			if !above {
				fast = true
			}
		}
		if !fast {
			dxs := top[0] - s.cells[e.reg[0]].site[0]
			if dxs != 0 {
				above = e.b*(dxp*dxp-dyp*dyp) < dxs*dyp*(1.0+2.0*dxp/dxs+e.b*e.b)
			} else {
				above = false
			}
			if e.b < 0.0 {
				above = !above
			}
		}
	} else {
		yl := e.c - e.a*p[0]
		t1 := p[1] - yl
		t2 := p[0] - top[0]
		t3 := yl - top[1]
		above = t1*t1 > t2*t2+t3*t3
	}

	if n.pm == le {
		return above
	}
	return !above
}
