package network

import (
	"fmt"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// MabravoDecision reports whether site i forwards a packet originated at
// root to its neighbour j.
//
// The packet never moves towards root. When no bounded vertex of the i-j
// bisector lies in area, i forwards only if the bisector crosses the area.
// Otherwise, at every such vertex, a third site k of that vertex that is
// closer to root than j and better aligned with the root->j direction than
// i takes over the delivery to j.
func (g *Graph) MabravoDecision(root orb.Point, i, j int, area *aoi.Area) (bool, error) {
	if !g.has(i) || !g.has(j) {
		return false, fmt.Errorf("decision %d -> %d: %w", i, j, ErrUnknownSite)
	}
	pi, pj := g.points[i], g.points[j]

	if voronoi.DistanceSquared(root, pi) > voronoi.DistanceSquared(root, pj) {
		g.trace("towards root", i, j)
		return false, nil
	}

	border, err := g.border(i, j)
	if err != nil {
		return false, err
	}

	var inside [2]bool
	for side := 0; side < 2; side++ {
		inside[side] = border.Bounded(side) && area.Contains(border.Points[side])
	}
	if !inside[0] && !inside[1] {
		ok := area.Crosses(border)
		g.trace("no vertex in AoI", i, j, zap.Bool("crosses", ok))
		return ok, nil
	}

	for side := 0; side < 2; side++ {
		if !inside[side] {
			continue
		}
		candidates, err := g.thirdSites(i, j, border, side)
		if err != nil {
			return false, err
		}
		for _, k := range candidates {
			pk := g.points[k]
			if voronoi.DistanceSquared(root, pk) >= voronoi.DistanceSquared(root, pj) {
				continue
			}
			ck := cos2(root, pj, pk)
			ci := cos2(root, pj, pi)
			if ck > ci || (ck == ci && k < i) {
				g.trace("better forwarder", i, j, zap.Int("k", k))
				return false, nil
			}
		}
	}

	g.trace("forward", i, j)
	return true, nil
}

// border returns the bisector of i and j.
func (g *Graph) border(i, j int) (voronoi.Line, error) {
	idx := g.diagram.EdgesBetween(i, j)
	if len(idx) == 0 {
		return voronoi.Line{}, fmt.Errorf("no bisector between %d and %d: %w", i, j, ErrConsistency)
	}
	if len(idx) > 1 {
		g.log.Warn("[mabravo] duplicate bisector",
			zap.Int("i", i),
			zap.Int("j", j),
			zap.Ints("edges", idx))
	}
	return g.diagram.Edge(idx[0]), nil
}

// thirdSites finds the sites other than i sharing with j the vertex at the
// given end of the i-j bisector. Vertices are matched by coordinate, so a
// vertex split in two by cocircular sites still resolves. The sites that i
// sees at the same vertex index are a cross-check only.
func (g *Graph) thirdSites(i, j int, border voronoi.Line, side int) ([]int, error) {
	vp := border.Points[side]
	vi := border.Vertices[side]

	var out []int
	for _, k := range g.neighbors[j] {
		if k == i {
			continue
		}
		for _, ei := range g.diagram.EdgesBetween(j, k) {
			if g.diagram.Edge(ei).Touches(vp) {
				out = append(out, k)
				break
			}
		}
	}

	raw := NoSite
	for _, ei := range g.diagram.IncidentEdges(i) {
		e := g.diagram.Edge(ei)
		if (e.Vertices[0] == vi || e.Vertices[1] == vi) && e.Other(i) != j {
			raw = e.Other(i)
		}
	}

	if len(out) == 0 && raw == NoSite {
		return nil, fmt.Errorf("no third site at vertex %d between %d and %d: %w", vi, i, j, ErrConsistency)
	}
	if raw != NoSite && !contains(out, raw) {
		g.log.Warn("[mabravo] third site mismatch",
			zap.Int("i", i),
			zap.Int("j", j),
			zap.Int("vertex", vi),
			zap.Int("seen-from-i", raw),
			zap.Ints("seen-from-j", out))
	}
	if len(out) > 1 {
		g.log.Debug("[mabravo] several third sites",
			zap.Int("i", i),
			zap.Int("j", j),
			zap.Ints("sites", out))
	}
	return out, nil
}

func (g *Graph) trace(reason string, i, j int, fields ...zap.Field) {
	if !g.log.Enabled(zap.DebugLevel) {
		return
	}
	g.log.Debug("[mabravo] "+reason, append([]zap.Field{zap.Int("i", i), zap.Int("j", j)}, fields...)...)
}

// cos2 is the squared cosine of the angle at from between from->target and
// from->to, carrying the sign of the dot product. It orders directions and
// is not a true cosine.
func cos2(target, from, to orb.Point) float64 {
	d1 := voronoi.DistanceSquared(target, from)
	d2 := voronoi.DistanceSquared(to, from)
	if d1 == 0 || d2 == 0 {
		return 0
	}
	dot := (target[0]-from[0])*(to[0]-from[0]) + (target[1]-from[1])*(to[1]-from[1])
	c := dot * dot
	if dot < 0 {
		c = -c
	}
	return c / d1 / d2
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
