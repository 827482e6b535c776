package experiment

import (
	"math/rand"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/paulmach/orb"
)

// Generator draws the random inputs of an experiment. The same seed gives
// the same networks, areas and packets.
type Generator struct {
	r *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

// Points returns n points uniformly distributed in domain.
func (g *Generator) Points(n int, domain orb.Bound) []orb.Point {
	pts := make([]orb.Point, n)
	for i := range pts {
		pts[i] = g.point(domain)
	}
	return pts
}

// PointIn returns a point uniformly distributed in area.
func (g *Generator) PointIn(area *aoi.Area) orb.Point {
	b := area.Bound()
	for {
		if p := g.point(b); area.Contains(p) {
			return p
		}
	}
}

// Seed draws a seed for a follow-up run.
func (g *Generator) Seed() int64 {
	return g.r.Int63()
}

func (g *Generator) point(b orb.Bound) orb.Point {
	return orb.Point{
		b.Min[0] + g.r.Float64()*(b.Max[0]-b.Min[0]),
		b.Min[1] + g.r.Float64()*(b.Max[1]-b.Min[1]),
	}
}
