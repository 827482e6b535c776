package voronoi

import (
	"math"

	"github.com/paulmach/orb"
)

// NoVertex marks an unbounded end of a Line.
const NoVertex = -1

const epsilon = 1e-9

// Line is a bisector of two sites in normal form A*x + B*y = C.
//
// Vertices holds the indices of the diagram vertices bounding the edge on
// each end (NoVertex when unbounded), Points the coordinates of those
// vertices. Segment is the part of the edge visible inside a box 10% larger
// than the extent of the sites; Visible is false when the edge misses that
// box entirely.
type Line struct {
	A, B, C  float64
	Sites    [2]int
	Vertices [2]int
	Points   [2]orb.Point
	Segment  [2]orb.Point
	Visible  bool
}

// Bounded reports whether end i (0 or 1) carries a vertex.
func (l Line) Bounded(i int) bool {
	return l.Vertices[i] != NoVertex
}

// IsSegment reports whether both ends are bounded.
func (l Line) IsSegment() bool {
	return l.Bounded(0) && l.Bounded(1)
}

// Has reports whether the line bisects site id.
func (l Line) Has(id int) bool {
	return l.Sites[0] == id || l.Sites[1] == id
}

// Other returns the site on the other side of the line from id.
func (l Line) Other(id int) int {
	if l.Sites[0] == id {
		return l.Sites[1]
	}
	return l.Sites[0]
}

// Degenerate reports a bounded edge whose two vertices coincide.
func (l Line) Degenerate() bool {
	return l.IsSegment() && samePoint(l.Points[0], l.Points[1])
}

// Touches reports whether one of the bounded ends coincides with p.
func (l Line) Touches(p orb.Point) bool {
	for i := 0; i < 2; i++ {
		if l.Bounded(i) && samePoint(l.Points[i], p) {
			return true
		}
	}
	return false
}

// Reach returns a finite segment covering the edge with respect to bound:
// bounded ends stay at their vertices, unbounded ends are pushed along the
// edge until they are well outside bound. The direction of an unbounded end
// follows from the end it sits on, so edges far from the sites still reach.
// ok is false only for a line without a direction.
func (l Line) Reach(bound orb.Bound) (orb.Point, orb.Point, bool) {
	if l.IsSegment() {
		return l.Points[0], l.Points[1], true
	}

	if l.A == 0 && l.B == 0 {
		return orb.Point{}, orb.Point{}, false
	}
	dir, low := l.direction()
	n := math.Hypot(dir[0], dir[1])
	dir = orb.Point{dir[0] / n, dir[1] / n}

	// heading of each end, away from the rest of the edge
	var heading [2]orb.Point
	heading[low] = orb.Point{-dir[0], -dir[1]}
	heading[1-low] = dir

	center := bound.Center()
	diag := distance(bound.Min, bound.Max) + 1

	if !l.Bounded(0) && !l.Bounded(1) {
		// foot of the perpendicular from the center
		k := (l.C - l.A*center[0] - l.B*center[1]) / (l.A*l.A + l.B*l.B)
		p := orb.Point{center[0] + k*l.A, center[1] + k*l.B}
		r := diag + distance(p, center)
		return move(p, heading[0], r), move(p, heading[1], r), true
	}

	side := 0
	if l.Bounded(0) {
		side = 1
	}
	v := l.Points[1-side]
	return v, move(v, heading[side], diag+distance(v, center)), true
}

// direction returns a vector along the line and the index of the end lying
// against it. Lines with A == 1 run towards growing y, x = C - B*y; the
// others towards growing x, y = C - A*x. The sweep stores the low end of a
// line with A == 1 and B >= 0 in slot 1, every other low end in slot 0.
func (l Line) direction() (orb.Point, int) {
	if l.A == 1.0 {
		if l.B >= 0.0 {
			return orb.Point{-l.B, 1}, 1
		}
		return orb.Point{-l.B, 1}, 0
	}
	return orb.Point{1, -l.A}, 0
}

func move(p, dir orb.Point, r float64) orb.Point {
	return orb.Point{p[0] + dir[0]*r, p[1] + dir[1]*r}
}

func distance(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// DistanceSquared is the squared euclidean distance between a and b.
func DistanceSquared(a, b orb.Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

func samePoint(a, b orb.Point) bool {
	return equalWithEpsilon(a[0], b[0]) && equalWithEpsilon(a[1], b[1])
}

// SamePoint compares two points with the package epsilon.
func SamePoint(a, b orb.Point) bool {
	return samePoint(a, b)
}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// pointLess orders points by y, then x: the order of the sweep.
func pointLess(q, p orb.Point) bool {
	if q[1] != p[1] {
		return q[1] < p[1]
	}
	return q[0] < p[0]
}
