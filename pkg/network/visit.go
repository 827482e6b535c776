package network

import (
	"fmt"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// advance decides whether the traversal moves from i to j.
type advance func(i, j int) (bool, error)

// BFSVisit runs a level-synchronous breadth-first visit from source. With
// aoiOnly only sites tagged by TagAoI are entered.
func (g *Graph) BFSVisit(source int, aoiOnly bool) error {
	return g.levels("bfs", source, aoiOnly, false, func(i, j int) (bool, error) {
		return true, nil
	})
}

// MabravoVisit is BFSVisit with every step gated by MabravoDecision for a
// packet originated at root. Reaching a site twice is a consistency fault.
func (g *Graph) MabravoVisit(source int, aoiOnly bool, area *aoi.Area, root orb.Point) error {
	return g.levels("mabravo", source, aoiOnly, true, func(i, j int) (bool, error) {
		return g.MabravoDecision(root, i, j, area)
	})
}

// levels runs rounds until one of them reaches nothing new. In round r
// every site visited in round r offers itself to its neighbours in
// ascending id order. With tree set, visited neighbours are offered too and
// any admitted step into them is a fault.
func (g *Graph) levels(name string, source int, aoiOnly, tree bool, step advance) error {
	if !g.has(source) {
		return fmt.Errorf("%s visit from %d: %w", name, source, ErrUnknownSite)
	}
	if aoiOnly && !g.tagged {
		return fmt.Errorf("%s visit from %d: %w", name, source, ErrNotTagged)
	}

	for id := range g.visit {
		g.visit[id] = Unreached
	}
	g.visit[source] = 0

	reached := 1

	for round, progressed := 0, true; progressed; round++ {
		progressed = false
		for i := range g.points {
			if g.visit[i] != round {
				continue
			}
			for _, j := range g.neighbors[i] {
				if aoiOnly && !g.siteInAoI[j] {
					continue
				}
				if !tree && g.visit[j] != Unreached {
					continue
				}
				ok, err := step(i, j)
				if err != nil {
					return fmt.Errorf("%s visit from %d: %w", name, source, err)
				}
				if !ok {
					continue
				}
				if g.visit[j] != Unreached {
					return fmt.Errorf("%s visit from %d: site %d reached again from %d in round %d (first in round %d): %w",
						name, source, j, i, round+1, g.visit[j], ErrConsistency)
				}
				g.visit[j] = round + 1
				reached++
				progressed = true
			}
		}
	}

	g.log.Debug("[graph] visit done",
		zap.String("kind", name),
		zap.Int("source", source),
		zap.Bool("aoi-only", aoiOnly),
		zap.Int("reached", reached))

	return nil
}
