package voronoi

import (
	"errors"
	"sort"

	"github.com/0x0FACED/go-mabravo/pkg/logger"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// ErrDuplicateSite is returned by callers that turn a refused Insert into
// an error.
var ErrDuplicateSite = errors.New("voronoi: duplicate site")

// Diagram is a site registry plus the Voronoi diagram of the registered
// sites, rebuilt lazily after inserts. It is not safe for concurrent use.
type Diagram struct {
	sites  map[int]orb.Point
	coords map[orb.Point]int
	ids    []int // ascending

	edges    []Line
	vertices []orb.Point
	incident map[int][]int

	dirty    bool
	rebuilds int

	log *logger.ZapLogger
}

func New(log *logger.ZapLogger) *Diagram {
	return &Diagram{
		sites:    make(map[int]orb.Point),
		coords:   make(map[orb.Point]int),
		incident: make(map[int][]int),
		log:      log,
	}
}

// Insert registers a site. It reports false and changes nothing when the id
// or the exact coordinate is already registered.
func (d *Diagram) Insert(id int, p orb.Point) bool {
	if _, ok := d.sites[id]; ok {
		d.log.Debug("[diagram] duplicate id", zap.Int("id", id))
		return false
	}
	if other, ok := d.coords[p]; ok {
		d.log.Debug("[diagram] duplicate coordinate", zap.Int("id", id), zap.Int("registered", other))
		return false
	}

	d.sites[id] = p
	d.coords[p] = id

	i := sort.SearchInts(d.ids, id)
	d.ids = append(d.ids, 0)
	copy(d.ids[i+1:], d.ids[i:])
	d.ids[i] = id

	d.dirty = true
	return true
}

func (d *Diagram) Get(id int) (orb.Point, bool) {
	p, ok := d.sites[id]
	return p, ok
}

func (d *Diagram) Size() int {
	return len(d.sites)
}

// IDs returns the registered ids in ascending order.
func (d *Diagram) IDs() []int {
	out := make([]int, len(d.ids))
	copy(out, d.ids)
	return out
}

// ClosestSite returns the site nearest to p. Sites are scanned in ascending
// id order and only a strictly smaller distance replaces the current best, so
// ties go to the smallest id.
func (d *Diagram) ClosestSite(p orb.Point) (int, bool) {
	if len(d.ids) == 0 {
		return 0, false
	}
	best := d.ids[0]
	bestDist := DistanceSquared(p, d.sites[best])
	for _, id := range d.ids[1:] {
		if dd := DistanceSquared(p, d.sites[id]); dd < bestDist {
			best, bestDist = id, dd
		}
	}
	return best, true
}

// NeighborsOf returns the site on the other side of every edge incident to
// id, in edge order. No boundary filtering happens here.
func (d *Diagram) NeighborsOf(id int) []int {
	d.rebuild()
	idx := d.incident[id]
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.edges[i].Other(id))
	}
	return out
}

// IncidentEdges returns the indices of the edges bisecting id.
func (d *Diagram) IncidentEdges(id int) []int {
	d.rebuild()
	out := make([]int, len(d.incident[id]))
	copy(out, d.incident[id])
	return out
}

// EdgesBetween returns the indices of every edge bisecting a and b.
func (d *Diagram) EdgesBetween(a, b int) []int {
	d.rebuild()
	var out []int
	for _, i := range d.incident[a] {
		if d.edges[i].Other(a) == b {
			out = append(out, i)
		}
	}
	return out
}

// Edges returns the edge list. The slice is shared; callers must not modify it.
func (d *Diagram) Edges() []Line {
	d.rebuild()
	return d.edges
}

// Vertices returns the vertex list in construction order. The slice is
// shared; callers must not modify it.
func (d *Diagram) Vertices() []orb.Point {
	d.rebuild()
	return d.vertices
}

func (d *Diagram) Edge(i int) Line {
	d.rebuild()
	return d.edges[i]
}

func (d *Diagram) Vertex(i int) orb.Point {
	d.rebuild()
	return d.vertices[i]
}

// Rebuilds counts how many times the sweep ran.
func (d *Diagram) Rebuilds() int {
	return d.rebuilds
}

// Rebuild forces the diagram to be up to date.
func (d *Diagram) Rebuild() {
	d.rebuild()
}

func (d *Diagram) rebuild() {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.rebuilds++

	d.edges = nil
	d.vertices = nil
	d.incident = make(map[int][]int, len(d.sites))

	if len(d.sites) == 0 {
		return
	}

	cells := make([]cell, 0, len(d.ids))
	for _, id := range d.ids {
		cells = append(cells, cell{site: d.sites[id], id: id})
	}

	res := runSweep(cells, d.log)
	d.edges = res.edges
	d.vertices = res.vertices

	for i, e := range d.edges {
		d.incident[e.Sites[0]] = append(d.incident[e.Sites[0]], i)
		d.incident[e.Sites[1]] = append(d.incident[e.Sites[1]], i)
	}

	d.log.Info("[diagram] rebuilt",
		zap.Int("sites", len(d.sites)),
		zap.Int("edges", len(d.edges)),
		zap.Int("vertices", len(d.vertices)))
}
