package voronoi

import (
	"math"
	"sort"

	"github.com/0x0FACED/go-mabravo/pkg/logger"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// sweep is one run of Fortune's algorithm. All records live in the slices
// below and reference each other through typed handles.
type sweep struct {
	cells     []cell
	edges     []bisector
	circles   []circlePoint
	halfedges []halfedge
	vertices  []orb.Point

	next   int
	bottom siteRef

	xMin, xMax, yMin, yMax float64
	deltaX, deltaY         float64
	sqrtN                  int

	queue eventQueue
	beach beachLine

	log *logger.ZapLogger
}

// result is the output of a sweep: flat edge and vertex lists.
type result struct {
	edges    []Line
	vertices []orb.Point
}

// runSweep builds the Voronoi diagram of cells. cells must be non-empty and
// free of duplicate coordinates.
func runSweep(cells []cell, log *logger.ZapLogger) result {
	s := &sweep{cells: cells, log: log}

	// sort by (y, x) so the sweep goes from the lowest site upwards
	sort.Slice(s.cells, func(i, j int) bool {
		return pointLess(s.cells[i].site, s.cells[j].site)
	})

	s.xMin, s.xMax = s.cells[0].site[0], s.cells[0].site[0]
	s.yMin, s.yMax = s.cells[0].site[1], s.cells[0].site[1]
	for _, c := range s.cells[1:] {
		s.xMin = math.Min(s.xMin, c.site[0])
		s.xMax = math.Max(s.xMax, c.site[0])
		s.yMin = math.Min(s.yMin, c.site[1])
		s.yMax = math.Max(s.yMax, c.site[1])
	}
	s.deltaX = s.xMax - s.xMin
	s.deltaY = s.yMax - s.yMin
	s.sqrtN = int(math.Sqrt(float64(len(s.cells) + 4)))

	log.Debug("[sweep] started",
		zap.Int("sites", len(s.cells)),
		zap.Float64("ymin", s.yMin),
		zap.Float64("ymax", s.yMax))

	s.initQueue()
	s.bottom = s.pop()
	s.initBeachLine()

	newSite := s.pop()
	var circleMin orb.Point
	var siteEvents, circleEvents int

	for {
		if !s.queueEmpty() {
			circleMin = s.queueMin()
		}

		if newSite != noSite && (s.queueEmpty() || pointLess(s.cells[newSite].site, circleMin)) {
			s.siteEvent(newSite)
			siteEvents++
			newSite = s.pop()
		} else if !s.queueEmpty() {
			s.circleEvent()
			circleEvents++
		} else {
			break
		}
	}

	log.Debug("[sweep] finished",
		zap.Int("site-events", siteEvents),
		zap.Int("circle-events", circleEvents),
		zap.Int("edges", len(s.edges)),
		zap.Int("vertices", len(s.vertices)))

	return s.output()
}

func (s *sweep) pop() siteRef {
	if s.next >= len(s.cells) {
		return noSite
	}
	s.next++
	return siteRef(s.next - 1)
}

// siteEvent splits the arc above the new site with two halfedges of a new
// bisector and schedules the circle events of the new arc triples.
func (s *sweep) siteEvent(site siteRef) {
	p := s.cells[site].site

	lbnd := s.leftBound(p)
	rbnd := s.he(lbnd).right
	bot := s.rightReg(lbnd)

	e := s.bisect(bot, site)
	h := s.newHalfedge(e, le)
	s.insertAfter(lbnd, h)

	if v, ok := s.intersect(lbnd, h); ok {
		s.dequeue(lbnd)
		s.enqueue(lbnd, v, s.dist(v, site))
	}

	lbnd = h
	h = s.newHalfedge(e, re)
	s.insertAfter(lbnd, h)

	if v, ok := s.intersect(h, rbnd); ok {
		s.enqueue(h, v, s.dist(v, site))
	}

	if s.log.Enabled(zap.DebugLevel) {
		s.log.Debug("[sweep] site event",
			zap.Int("site", s.cells[site].id),
			zap.Int("above", s.cells[bot].id))
	}
}

// circleEvent turns the earliest circle into a vertex, bounds the two edges
// meeting there, removes the collapsing arc and starts the bisector of the
// two surviving neighbours.
func (s *sweep) circleEvent() {
	lbnd := s.extractMin()
	llbnd := s.he(lbnd).left
	rbnd := s.he(lbnd).right
	rrbnd := s.he(rbnd).right
	bot := s.leftReg(lbnd)
	top := s.rightReg(rbnd)

	v := s.he(lbnd).vertex
	s.makeVertex(v)

	s.endpoint(s.he(lbnd).edge, s.he(lbnd).pm, v)
	s.endpoint(s.he(rbnd).edge, s.he(rbnd).pm, v)

	s.unlink(lbnd)
	s.dequeue(rbnd)
	s.unlink(rbnd)

	pm := le
	if s.cells[bot].site[1] > s.cells[top].site[1] {
		bot, top = top, bot
		pm = re
	}

	e := s.bisect(bot, top)
	h := s.newHalfedge(e, pm)
	s.insertAfter(llbnd, h)
	s.endpoint(e, re-pm, v)

	if p, ok := s.intersect(llbnd, h); ok {
		s.dequeue(llbnd)
		s.enqueue(llbnd, p, s.dist(p, bot))
	}
	if p, ok := s.intersect(h, rrbnd); ok {
		s.enqueue(h, p, s.dist(p, bot))
	}

	if s.log.Enabled(zap.DebugLevel) {
		s.log.Debug("[sweep] circle event",
			zap.Int("vertex", s.circles[v].num),
			zap.Float64("x", s.circles[v].coord[0]),
			zap.Float64("y", s.circles[v].coord[1]))
	}
}

// bisect creates the perpendicular bisector of s1 and s2, normalized so that
// the larger of |a|, |b| is 1.
func (s *sweep) bisect(s1, s2 siteRef) edgeRef {
	p1 := s.cells[s1].site
	p2 := s.cells[s2].site

	dx := p2[0] - p1[0]
	dy := p2[1] - p1[1]

	e := bisector{
		reg: [2]siteRef{s1, s2},
		ep:  [2]vertexRef{noVertex, noVertex},
		c:   p1[0]*dx + p1[1]*dy + (dx*dx+dy*dy)*0.5,
	}
	if math.Abs(dx) > math.Abs(dy) {
		e.a = 1.0
		e.b = dy / dx
		e.c /= dx
	} else {
		e.b = 1.0
		e.a = dx / dy
		e.c /= dy
	}

	s.edges = append(s.edges, e)
	return edgeRef(len(s.edges) - 1)
}

// intersect returns the candidate circle center where the breakpoints of
// el1 and el2 would meet, if they converge.
func (s *sweep) intersect(el1, el2 halfedgeRef) (vertexRef, bool) {
	e1r, e2r := s.he(el1).edge, s.he(el2).edge
	if e1r < 0 || e2r < 0 {
		return noVertex, false
	}
	e1, e2 := &s.edges[e1r], &s.edges[e2r]
	if e1.reg[1] == e2.reg[1] {
		return noVertex, false
	}

	d := e1.a*e2.b - e1.b*e2.a
	if -1.0e-10 < d && d < 1.0e-10 {
		return noVertex, false
	}

	xint := (e1.c*e2.b - e2.c*e1.b) / d
	yint := (e2.c*e1.a - e1.c*e2.a) / d

	el, e := el1, e1
	if !pointLess(s.cells[e1.reg[1]].site, s.cells[e2.reg[1]].site) {
		el, e = el2, e2
	}

	rightOfSite := xint >= s.cells[e.reg[1]].site[0]
	pm := s.he(el).pm
	if (rightOfSite && pm == le) || (!rightOfSite && pm == re) {
		return noVertex, false
	}

	s.circles = append(s.circles, circlePoint{coord: orb.Point{xint, yint}, num: -1})
	return vertexRef(len(s.circles) - 1), true
}

func (s *sweep) endpoint(e edgeRef, lr int, v vertexRef) {
	s.edges[e].ep[lr] = v
}

func (s *sweep) makeVertex(v vertexRef) {
	s.circles[v].num = len(s.vertices)
	s.vertices = append(s.vertices, s.circles[v].coord)
}

func (s *sweep) dist(v vertexRef, site siteRef) float64 {
	return distance(s.circles[v].coord, s.cells[site].site)
}

// output converts the arena into public lines: external site ids, vertex
// indices in construction order and the display segment of every edge.
func (s *sweep) output() result {
	box := plotBox(s.xMin, s.xMax, s.yMin, s.yMax)

	lines := make([]Line, len(s.edges))
	for i, e := range s.edges {
		l := Line{
			A:        e.a,
			B:        e.b,
			C:        e.c,
			Sites:    [2]int{s.cells[e.reg[0]].id, s.cells[e.reg[1]].id},
			Vertices: [2]int{NoVertex, NoVertex},
		}
		for side := 0; side < 2; side++ {
			if e.ep[side] != noVertex {
				l.Vertices[side] = s.circles[e.ep[side]].num
				l.Points[side] = s.circles[e.ep[side]].coord
			}
		}
		l.Segment, l.Visible = clipLine(l, box)
		lines[i] = l
	}
	return result{edges: lines, vertices: s.vertices}
}
