// Package network is the routing overlay built on top of a Voronoi diagram:
// sites are peers, validated bisectors are links.
package network

import (
	"fmt"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/0x0FACED/go-mabravo/pkg/logger"
	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Graph is one simulated network. Traversal results live in scratch
// vectors that every call overwrites; use Visits and SiteInAoI to keep a
// copy. A Graph is not safe for concurrent use.
type Graph struct {
	diagram   *voronoi.Diagram
	validator *BoundaryValidator
	domain    orb.Bound
	points    []orb.Point

	neighbors [][]int

	siteInAoI []bool
	tagged    bool
	visit     []int

	log *logger.ZapLogger
}

// New registers points with ids 0..n-1 and builds the diagram.
func New(domain orb.Bound, points []orb.Point, log *logger.ZapLogger) (*Graph, error) {
	g := &Graph{
		diagram:   voronoi.New(log),
		validator: NewBoundaryValidator(),
		domain:    domain,
		points:    make([]orb.Point, len(points)),
		siteInAoI: make([]bool, len(points)),
		visit:     make([]int, len(points)),
		log:       log,
	}
	copy(g.points, points)

	for _, p := range points {
		id, err := g.validator.Register(p)
		if err != nil {
			return nil, err
		}
		if !g.diagram.Insert(id, p) {
			return nil, fmt.Errorf("insert site %d: %w", id, voronoi.ErrDuplicateSite)
		}
	}

	g.diagram.Rebuild()
	g.neighbors = make([][]int, len(points))
	links := 0
	for id := range points {
		g.neighbors[id] = g.validNeighbors(id)
		links += len(g.neighbors[id])
	}
	for id := range g.visit {
		g.visit[id] = Unreached
	}

	log.Info("[graph] built",
		zap.Int("sites", len(points)),
		zap.Int("edges", len(g.diagram.Edges())),
		zap.Int("links", links/2))

	return g, nil
}

func (g *Graph) validNeighbors(id int) []int {
	set := siteSet{}
	vertices := g.diagram.Vertices()
	for _, ei := range g.diagram.IncidentEdges(id) {
		e := g.diagram.Edge(ei)
		if g.validator.IsBoundedAdjacency(e, vertices, g.domain) {
			set.add(e.Other(id))
		}
	}
	return set.sorted()
}

// valid reports whether edge e is a link of the graph.
func (g *Graph) valid(e voronoi.Line) bool {
	return g.validator.IsBoundedAdjacency(e, g.diagram.Vertices(), g.domain)
}

func (g *Graph) has(id int) bool {
	return id >= 0 && id < len(g.points)
}

// Neighbors returns the validated neighbours of id in ascending order.
func (g *Graph) Neighbors(id int) []int {
	if !g.has(id) {
		return nil
	}
	return append([]int(nil), g.neighbors[id]...)
}

// TagAoI marks every site whose cell is crossed by the boundary of area or
// lies inside it. A cell containing the whole area is tagged as well.
func (g *Graph) TagAoI(area *aoi.Area) {
	holder := g.ClosestSite(area.Ring()[0])

	for id, p := range g.points {
		idx := g.diagram.IncidentEdges(id)
		switch {
		case id == holder:
			g.siteInAoI[id] = true
		case len(idx) == 0:
			g.siteInAoI[id] = area.Contains(p)
		default:
			edges := make([]voronoi.Line, len(idx))
			for k, ei := range idx {
				edges[k] = g.diagram.Edge(ei)
			}
			g.siteInAoI[id] = area.CellStraddlesOrIsInside(edges)
		}
	}
	g.tagged = true

	g.log.Debug("[graph] AoI tagged",
		zap.Int("in-aoi", g.CountInAoI()),
		zap.Int("hull", area.Len()))
}

// ClosestSite returns the site nearest to p, ties to the smallest id.
func (g *Graph) ClosestSite(p orb.Point) int {
	id, ok := g.diagram.ClosestSite(p)
	if !ok {
		return NoSite
	}
	return id
}

// Visits returns a copy of the rounds of the last traversal.
func (g *Graph) Visits() []int {
	return append([]int(nil), g.visit...)
}

// SiteInAoI returns a copy of the AoI membership of the last TagAoI.
func (g *Graph) SiteInAoI() []bool {
	return append([]bool(nil), g.siteInAoI...)
}

func (g *Graph) CountInAoI() int {
	n := 0
	for _, in := range g.siteInAoI {
		if in {
			n++
		}
	}
	return n
}

func (g *Graph) Point(id int) (orb.Point, bool) {
	if !g.has(id) {
		return orb.Point{}, false
	}
	return g.points[id], true
}

func (g *Graph) Size() int {
	return len(g.points)
}

func (g *Graph) Diagram() *voronoi.Diagram {
	return g.diagram
}

func (g *Graph) Domain() orb.Bound {
	return g.domain
}
