package voronoi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func build(pts ...orb.Point) *Diagram {
	d := New(nil)
	for i, p := range pts {
		d.Insert(i, p)
	}
	return d
}

func TestSweepTriangle(t *testing.T) {
	d := build(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 10})

	vertices := d.Vertices()
	if len(vertices) != 1 {
		t.Fatalf("vertices: got %v, want exactly one", vertices)
	}
	if v := vertices[0]; !SamePoint(v, orb.Point{5, 3.75}) {
		t.Errorf("circumcenter: got %v, want [5 3.75]", v)
	}

	want := []struct {
		sites    [2]int
		vertices [2]int
		a, b, c  float64
	}{
		{[2]int{0, 1}, [2]int{0, NoVertex}, 1, 0, 5},
		{[2]int{0, 2}, [2]int{NoVertex, 0}, 0.5, 1, 6.25},
		{[2]int{1, 2}, [2]int{0, NoVertex}, -0.5, 1, 1.25},
	}
	edges := d.Edges()
	if len(edges) != len(want) {
		t.Fatalf("edges: got %d, want %d", len(edges), len(want))
	}
	for i, w := range want {
		e := edges[i]
		if e.Sites != w.sites || e.Vertices != w.vertices {
			t.Errorf("edge %d: got sites %v vertices %v, want %v %v", i, e.Sites, e.Vertices, w.sites, w.vertices)
		}
		if e.A != w.a || e.B != w.b || e.C != w.c {
			t.Errorf("edge %d: got %vx + %vy = %v, want %vx + %vy = %v", i, e.A, e.B, e.C, w.a, w.b, w.c)
		}
		if e.IsSegment() || !e.Visible {
			t.Errorf("edge %d: want a visible ray", i)
		}
	}

	for id := 0; id < 3; id++ {
		if n := d.NeighborsOf(id); len(n) != 2 {
			t.Errorf("site %d: got neighbours %v, want two", id, n)
		}
	}
}

// Four cocircular sites produce two coincident vertices joined by a
// zero-length edge between the diagonal corners.
func TestSweepCocircularSquare(t *testing.T) {
	d := build(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 10}, orb.Point{10, 10})

	vertices := d.Vertices()
	if len(vertices) != 2 {
		t.Fatalf("vertices: got %v, want two", vertices)
	}
	for _, v := range vertices {
		if !SamePoint(v, orb.Point{5, 5}) {
			t.Errorf("vertex %v, want [5 5]", v)
		}
	}

	edges := d.Edges()
	if len(edges) != 5 {
		t.Fatalf("edges: got %d, want 5", len(edges))
	}
	degenerate := 0
	for _, e := range edges {
		if e.Degenerate() {
			degenerate++
			if !(e.Has(0) && e.Has(3)) {
				t.Errorf("zero-length edge bisects %v, want the 0-3 diagonal", e.Sites)
			}
		}
	}
	if degenerate != 1 {
		t.Errorf("zero-length edges: got %d, want 1", degenerate)
	}
}

func TestSweepSingleAndPair(t *testing.T) {
	d := build(orb.Point{3, 4})
	if len(d.Edges()) != 0 || len(d.Vertices()) != 0 {
		t.Errorf("single site: got %d edges %d vertices", len(d.Edges()), len(d.Vertices()))
	}

	d = build(orb.Point{0, 0}, orb.Point{10, 0})
	edges := d.Edges()
	if len(edges) != 1 {
		t.Fatalf("pair: got %d edges, want 1", len(edges))
	}
	if e := edges[0]; e.Bounded(0) || e.Bounded(1) {
		t.Errorf("pair bisector should be an infinite line, got vertices %v", e.Vertices)
	}
}

// Every bounded vertex of an edge is equidistant from the two sites of the
// edge and no site is strictly closer.
func TestSweepEmptyCircle(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		n := 3 + r.Intn(150)
		d := New(nil)
		pts := make([]orb.Point, 0, n)
		for i := 0; i < n; i++ {
			p := orb.Point{r.Float64() * 1000, r.Float64() * 1000}
			if d.Insert(i, p) {
				pts = append(pts, p)
			}
		}

		for ei, e := range d.Edges() {
			if e.Sites[0] == e.Sites[1] {
				t.Fatalf("seed %d edge %d bisects a site with itself", seed, ei)
			}
			pa, okA := d.Get(e.Sites[0])
			pb, okB := d.Get(e.Sites[1])
			if !okA || !okB {
				t.Fatalf("seed %d edge %d references unknown sites %v", seed, ei, e.Sites)
			}
			for side := 0; side < 2; side++ {
				if !e.Bounded(side) {
					continue
				}
				v := d.Vertex(e.Vertices[side])
				if v != e.Points[side] {
					t.Fatalf("seed %d edge %d: point %v differs from vertex %v", seed, ei, e.Points[side], v)
				}
				da := distance(v, pa)
				db := distance(v, pb)
				tol := 1e-6 * math.Max(1, da)
				if math.Abs(da-db) > tol {
					t.Errorf("seed %d edge %d: vertex %v at %v from %d but %v from %d", seed, ei, v, da, e.Sites[0], db, e.Sites[1])
				}
				for _, p := range pts {
					if distance(v, p) < da-tol {
						t.Errorf("seed %d edge %d: site %v inside the circle of vertex %v", seed, ei, p, v)
						break
					}
				}
			}
		}
	}
}

func TestSweepCollinearSites(t *testing.T) {
	d := build(orb.Point{0, 5}, orb.Point{10, 5}, orb.Point{20, 5}, orb.Point{30, 5})
	if len(d.Vertices()) != 0 {
		t.Errorf("collinear sites: got %d vertices, want 0", len(d.Vertices()))
	}
	for _, e := range d.Edges() {
		if e.A != 1 || e.B != 0 {
			t.Errorf("bisector of horizontal neighbours should be vertical, got %vx + %vy = %v", e.A, e.B, e.C)
		}
	}
}
