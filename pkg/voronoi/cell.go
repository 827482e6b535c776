package voronoi

import "github.com/paulmach/orb"

// Arena handles. Every sweep record lives in a slice owned by the sweep and
// is addressed by one of these; the zero record is never implied.
type (
	siteRef     int32
	edgeRef     int32
	vertexRef   int32
	halfedgeRef int32
)

const (
	noEdge      edgeRef     = -1
	deletedEdge edgeRef     = -2
	noVertex    vertexRef   = -1
	noHalfedge  halfedgeRef = -1
	noSite      siteRef     = -1
)

// left / right side of a bisector
const (
	le = 0
	re = 1
)

// cell is a site as seen by the sweep.
type cell struct {
	site orb.Point
	id   int
}

// bisector is an edge under construction. reg holds the two sites it
// separates, ep the vertices that bound it once circle events reach it.
type bisector struct {
	a, b, c float64
	reg     [2]siteRef
	ep      [2]vertexRef
}

// circlePoint is the lowest-point center candidate of a circle event. num is
// the diagram vertex index once the event fires, -1 before.
type circlePoint struct {
	coord orb.Point
	num   int
}
