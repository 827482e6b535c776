package network

import (
	"fmt"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// ComputeRoute walks greedily from the site closest to src towards dst and
// returns the sites on the way, the first one included. The walk ends when
// no neighbour is closer to dst, which may be before the cell of dst when
// the area cuts the way.
func (g *Graph) ComputeRoute(src, dst orb.Point, area *aoi.Area) ([]int, error) {
	cur := g.ClosestSite(src)
	if cur == NoSite {
		return nil, fmt.Errorf("route from %v: %w", src, ErrUnknownSite)
	}

	route := []int{cur}
	for {
		next, ok, err := g.NextHop(dst, cur, area)
		if err != nil {
			return route, fmt.Errorf("route from %v to %v: %w", src, dst, err)
		}
		if !ok {
			break
		}
		if len(route) > len(g.points) {
			return route, fmt.Errorf("route from %v to %v longer than the network: %w", src, dst, ErrConsistency)
		}
		route = append(route, next)
		cur = next
	}

	g.log.Debug("[route] computed",
		zap.Int("from", route[0]),
		zap.Int("to", cur),
		zap.Int("hops", len(route)-1))

	return route, nil
}

// NextHop picks the neighbour of current to forward a packet for dst to.
//
// Candidates are the neighbours not farther from dst than current whose
// link has a bounded vertex inside area; the one best aligned with the
// current->dst direction wins, ties to the smallest id. ok is false when
// no neighbour is strictly closer to dst. When closer neighbours exist but
// none qualifies, the first strictly closer one whose link crosses the area
// is taken.
func (g *Graph) NextHop(dst orb.Point, current int, area *aoi.Area) (int, bool, error) {
	if !g.has(current) {
		return NoSite, false, fmt.Errorf("next hop from %d: %w", current, ErrUnknownSite)
	}
	pc := g.points[current]
	limit := voronoi.DistanceSquared(dst, pc)

	var candidates []int
	closer := false
	for _, j := range g.neighbors[current] {
		d := voronoi.DistanceSquared(dst, g.points[j])
		if d < limit {
			closer = true
		}
		if d <= limit && g.vertexInArea(current, j, area) {
			candidates = append(candidates, j)
		}
	}
	if !closer {
		return NoSite, false, nil
	}

	if len(candidates) == 0 {
		for _, j := range g.neighbors[current] {
			if voronoi.DistanceSquared(dst, g.points[j]) >= limit {
				continue
			}
			for _, ei := range g.diagram.EdgesBetween(current, j) {
				e := g.diagram.Edge(ei)
				if g.valid(e) && area.Crosses(e) {
					return j, true, nil
				}
			}
		}
		return NoSite, false, fmt.Errorf("no way out of %d towards %v: %w", current, dst, ErrConsistency)
	}

	best := candidates[0]
	bestCos := cos2(dst, pc, g.points[best])
	for _, j := range candidates[1:] {
		c := cos2(dst, pc, g.points[j])
		if c > bestCos || (c == bestCos && j < best) {
			best, bestCos = j, c
		}
	}
	return best, true, nil
}

// vertexInArea reports whether a valid link between a and b has a bounded
// vertex inside area.
func (g *Graph) vertexInArea(a, b int, area *aoi.Area) bool {
	for _, ei := range g.diagram.EdgesBetween(a, b) {
		e := g.diagram.Edge(ei)
		if !g.valid(e) {
			continue
		}
		for side := 0; side < 2; side++ {
			if e.Bounded(side) && area.Contains(e.Points[side]) {
				return true
			}
		}
	}
	return false
}
