package aoi

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/0x0FACED/go-mabravo/pkg/voronoi"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func square(t *testing.T, min, max float64) *Area {
	t.Helper()
	a, err := New([]orb.Point{{min, min}, {max, min}, {max, max}, {min, max}})
	if err != nil {
		t.Fatalf("square hull: %v", err)
	}
	return a
}

func TestHullDropsInteriorAndCollinear(t *testing.T) {
	pts := []orb.Point{
		{5, 5}, {10, 0}, {0, 0}, {5, 0}, {10, 10}, {3, 7}, {0, 10}, {0, 4},
	}
	a, err := New(pts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Len() != 4 {
		t.Fatalf("hull: got %v, want the four corners", a.Ring())
	}
	corners := map[orb.Point]bool{{0, 0}: true, {10, 0}: true, {10, 10}: true, {0, 10}: true}
	for _, p := range a.Ring() {
		if !corners[p] {
			t.Errorf("hull vertex %v is not a corner", p)
		}
	}
	if a.Ring()[0] != (orb.Point{0, 0}) {
		t.Errorf("hull starts at %v, want the leftmost-lowest point", a.Ring()[0])
	}
}

func TestHullWinding(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for run := 0; run < 50; run++ {
		pts := make([]orb.Point, 3+r.Intn(20))
		for i := range pts {
			pts[i] = orb.Point{r.Float64() * 100, r.Float64() * 100}
		}
		a, err := New(pts)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		ring := a.Ring()
		n := len(ring)
		for i := 0; i < n; i++ {
			if c := cross(ring[i], ring[(i+1)%n], ring[(i+2)%n]); c <= 0 {
				t.Fatalf("run %d: turn at %v is %v, want a consistent strict turn", run, ring[(i+1)%n], c)
			}
		}
		for _, p := range pts {
			if !a.Contains(p) {
				t.Errorf("run %d: input point %v outside its own hull", run, p)
			}
		}
	}
}

func TestHullDegenerate(t *testing.T) {
	cases := []struct {
		name string
		pts  []orb.Point
	}{
		{"empty", nil},
		{"two points", []orb.Point{{0, 0}, {1, 1}}},
		{"collinear", []orb.Point{{0, 0}, {1, 1}, {2, 2}, {5, 5}}},
		{"coincident", []orb.Point{{3, 3}, {3, 3}, {3, 3}}},
		{"two distinct", []orb.Point{{3, 3}, {3, 3}, {4, 4}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.pts); !errors.Is(err, ErrDegenerateHull) {
				t.Errorf("got %v, want ErrDegenerateHull", err)
			}
		})
	}
}

func TestContainsBoundaryAndVertexRay(t *testing.T) {
	diamond, err := New([]orb.Point{{0, 5}, {5, 0}, {10, 5}, {5, 10}})
	if err != nil {
		t.Fatalf("diamond: %v", err)
	}
	cases := []struct {
		p    orb.Point
		want bool
	}{
		{orb.Point{5, 5}, true},
		{orb.Point{2, 5}, true},  // ray through the vertex (10,5)
		{orb.Point{5, 2}, true},  // below the right vertex level
		{orb.Point{10, 5}, true}, // vertex
		{orb.Point{2.5, 2.5}, true},
		{orb.Point{1, 1}, false},
		{orb.Point{-1, 5}, false},
		{orb.Point{5, 10.0001}, false},
	}
	for _, tc := range cases {
		if got := diamond.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v): got %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestContainsMatchesPlanar(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for run := 0; run < 40; run++ {
		pts := make([]orb.Point, 3+r.Intn(12))
		for i := range pts {
			pts[i] = orb.Point{r.Float64() * 1000, r.Float64() * 1000}
		}
		a, err := New(pts)
		if err != nil {
			continue
		}
		ring := a.Ring()

		for k := 0; k < 500; k++ {
			p := orb.Point{r.Float64()*1200 - 100, r.Float64()*1200 - 100}
			if nearBoundary(p, ring, 1e-6) {
				continue
			}
			if got, want := a.Contains(p), planar.RingContains(ring, p); got != want {
				t.Fatalf("run %d: Contains(%v) = %v, planar says %v", run, p, got, want)
			}
		}
	}
}

func nearBoundary(p orb.Point, ring orb.Ring, tol float64) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		dx, dy := b[0]-a[0], b[1]-a[1]
		t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
		t = math.Max(0, math.Min(1, t))
		if math.Hypot(p[0]-a[0]-t*dx, p[1]-a[1]-t*dy) < tol {
			return true
		}
	}
	return false
}

func TestRotationInvariance(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	pts := make([]orb.Point, 12)
	for i := range pts {
		pts[i] = orb.Point{r.Float64() * 100, r.Float64() * 100}
	}
	a, err := New(pts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	probes := make([]orb.Point, 300)
	for i := range probes {
		probes[i] = orb.Point{r.Float64()*120 - 10, r.Float64()*120 - 10}
	}
	probes = append(probes, a.Ring()...)

	for k := 0; k < a.Len(); k++ {
		rot := a.Rotate(k)
		if rot.Ring()[0] != a.Ring()[k] {
			t.Fatalf("Rotate(%d) starts at %v", k, rot.Ring()[0])
		}
		for _, p := range probes {
			if rot.Contains(p) != a.Contains(p) {
				t.Errorf("Rotate(%d): Contains(%v) changed", k, p)
			}
		}
	}
}

func TestCrosses(t *testing.T) {
	d := voronoi.New(nil)
	d.Insert(0, orb.Point{0, 0})
	d.Insert(1, orb.Point{10, 0})
	line := d.Edges()[0] // x = 5, unbounded both ways

	if !square(t, 0, 10).Crosses(line) {
		t.Errorf("x=5 does not cross the square [0,10]")
	}
	if square(t, 100, 110).Crosses(line) {
		t.Errorf("x=5 crosses the square [100,110]")
	}
	if !square(t, 0, 10).Rotate(2).Crosses(line) {
		t.Errorf("rotation changed the crossing")
	}
}

func TestCrossesRayFromInside(t *testing.T) {
	d := voronoi.New(nil)
	d.Insert(0, orb.Point{0, 0})
	d.Insert(1, orb.Point{10, 0})
	d.Insert(2, orb.Point{5, 10})

	small := square(t, 3, 7) // around the vertex (5, 3.75)
	for i, e := range d.Edges() {
		if !small.Crosses(e) {
			t.Errorf("edge %d: ray from inside the area does not cross it", i)
		}
	}
	if !small.CellStraddlesOrIsInside(d.Edges()) {
		t.Errorf("cell around the area not tagged")
	}

	far := square(t, 500, 600)
	if far.CellStraddlesOrIsInside(d.Edges()) {
		t.Errorf("far area tagged")
	}
}

// The sites sit far above the area, so the ray of the 0-1 bisector leaves
// the display box before it reaches the area.
func TestCrossesRayOutsideDisplayBox(t *testing.T) {
	d := voronoi.New(nil)
	d.Insert(0, orb.Point{1100, 1600})
	d.Insert(1, orb.Point{1200, 1600})
	d.Insert(2, orb.Point{1150, 1602})

	area, err := New([]orb.Point{{1100, 100}, {1200, 100}, {1200, 900}, {1100, 900}})
	if err != nil {
		t.Fatal(err)
	}

	ray := d.Edge(d.EdgesBetween(0, 1)[0])
	if ray.Visible {
		t.Fatalf("edge 0-1 is visible: %+v", ray)
	}
	if !area.Crosses(ray) {
		t.Errorf("ray x=1150 going down from y=976 does not cross the area")
	}
	for _, pair := range [][2]int{{0, 2}, {1, 2}} {
		e := d.Edge(d.EdgesBetween(pair[0], pair[1])[0])
		if area.Crosses(e) {
			t.Errorf("edge %v going up crosses the area", pair)
		}
	}

	edges := func(id int) []voronoi.Line {
		var out []voronoi.Line
		for _, ei := range d.IncidentEdges(id) {
			out = append(out, d.Edge(ei))
		}
		return out
	}
	if !area.CellStraddlesOrIsInside(edges(1)) {
		t.Errorf("cell of site 1 covers half of the area but is not tagged")
	}
	if area.CellStraddlesOrIsInside(edges(2)) {
		t.Errorf("cell of site 2 tagged")
	}
}

func TestCellStraddlesOrIsInsideFallback(t *testing.T) {
	a := square(t, 0, 10)
	segment := func(p, q orb.Point) voronoi.Line {
		return voronoi.Line{
			Vertices: [2]int{0, 1},
			Points:   [2]orb.Point{p, q},
			Segment:  [2]orb.Point{p, q},
			Visible:  true,
		}
	}

	inside := segment(orb.Point{2, 2}, orb.Point{3, 3})
	outside := segment(orb.Point{20, 20}, orb.Point{30, 30})
	hidden := voronoi.Line{Vertices: [2]int{voronoi.NoVertex, voronoi.NoVertex}}

	cases := []struct {
		name  string
		edges []voronoi.Line
		want  bool
	}{
		{"inside", []voronoi.Line{inside}, true},
		{"outside", []voronoi.Line{outside}, false},
		{"hidden first", []voronoi.Line{hidden, inside}, true},
		{"crossing", []voronoi.Line{outside, segment(orb.Point{5, 5}, orb.Point{15, 5})}, true},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.CellStraddlesOrIsInside(tc.edges); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
