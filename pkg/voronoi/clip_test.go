package voronoi

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestPlotBox(t *testing.T) {
	box := plotBox(0, 10, 0, 5)
	want := orb.Bound{Min: orb.Point{-0.5, -3}, Max: orb.Point{10.5, 8}}
	if !SamePoint(box.Min, want.Min) || !SamePoint(box.Max, want.Max) {
		t.Errorf("plotBox: got %v, want %v", box, want)
	}
}

func TestSegmentHitsBound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	cases := []struct {
		name string
		a, b orb.Point
		want bool
	}{
		{"inside", orb.Point{1, 1}, orb.Point{2, 2}, true},
		{"crossing", orb.Point{-5, 5}, orb.Point{15, 5}, true},
		{"one end inside", orb.Point{5, 5}, orb.Point{50, 50}, true},
		{"on the border", orb.Point{10, -5}, orb.Point{10, 15}, true},
		{"corner touch", orb.Point{-1, 1}, orb.Point{1, -1}, true},
		{"left of box", orb.Point{-5, -5}, orb.Point{-1, 20}, false},
		{"passes the corner", orb.Point{-1, 2}, orb.Point{2, -1.5}, true},
		{"misses the corner", orb.Point{-2, 1}, orb.Point{1, -2}, false},
		{"degenerate outside", orb.Point{11, 11}, orb.Point{11, 11}, false},
		{"degenerate inside", orb.Point{3, 3}, orb.Point{3, 3}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentHitsBound(tc.a, tc.b, bound); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name           string
		a1, a2, b1, b2 orb.Point
		want           bool
	}{
		{"cross", orb.Point{0, 0}, orb.Point{10, 10}, orb.Point{0, 10}, orb.Point{10, 0}, true},
		{"parallel", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 1}, orb.Point{10, 1}, false},
		{"touching ends", orb.Point{0, 0}, orb.Point{5, 5}, orb.Point{5, 5}, orb.Point{10, 0}, true},
		{"collinear overlap", orb.Point{0, 0}, orb.Point{6, 0}, orb.Point{4, 0}, orb.Point{10, 0}, true},
		{"collinear apart", orb.Point{0, 0}, orb.Point{3, 0}, orb.Point{4, 0}, orb.Point{10, 0}, false},
		{"T short", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 1}, orb.Point{5, 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentsIntersect(tc.a1, tc.a2, tc.b1, tc.b2); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if got := SegmentsIntersect(tc.b2, tc.b1, tc.a1, tc.a2); got != tc.want {
				t.Errorf("swapped: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClipLineVertical(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	l := Line{A: 1, B: 0, C: 5, Vertices: [2]int{NoVertex, NoVertex}}

	seg, ok := clipLine(l, box)
	if !ok {
		t.Fatalf("vertical line through the box was not visible")
	}
	if seg[0] != (orb.Point{5, 0}) || seg[1] != (orb.Point{5, 10}) {
		t.Errorf("got %v", seg)
	}

	l.C = 20
	if _, ok := clipLine(l, box); ok {
		t.Errorf("line x=20 reported visible")
	}
}

func TestClipLineStopsAtVertex(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	// y = 4 to the right of (3, 4)
	l := Line{
		A:        0,
		B:        1,
		C:        4,
		Vertices: [2]int{0, NoVertex},
		Points:   [2]orb.Point{{3, 4}},
	}
	seg, ok := clipLine(l, box)
	if !ok {
		t.Fatalf("ray not visible")
	}
	if seg[0] != (orb.Point{3, 4}) || seg[1] != (orb.Point{10, 4}) {
		t.Errorf("got %v, want [[3 4] [10 4]]", seg)
	}
}

func TestReach(t *testing.T) {
	d := build(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 10})
	bound := orb.Bound{Min: orb.Point{-100, -100}, Max: orb.Point{100, 100}}

	for i, e := range d.Edges() {
		a, b, ok := e.Reach(bound)
		if !ok {
			t.Fatalf("edge %d: no reach", i)
		}
		if !SamePoint(a, orb.Point{5, 3.75}) {
			t.Errorf("edge %d: reach starts at %v, want the vertex", i, a)
		}
		if bound.Contains(b) {
			t.Errorf("edge %d: reach end %v still inside %v", i, b, bound)
		}
		// the far end stays on the bisector
		if r := e.A*b[0] + e.B*b[1] - e.C; r > 1e-6 || r < -1e-6 {
			t.Errorf("edge %d: reach end %v off the line by %v", i, b, r)
		}
	}

	// the bisector of (0,0)-(10,0) goes downwards from the circumcenter
	e := d.Edge(d.EdgesBetween(0, 1)[0])
	if _, b, _ := e.Reach(bound); b[1] >= 3.75 {
		t.Errorf("ray of 0-1 points up: %v", b)
	}
}

func TestReachOutsideDisplayBox(t *testing.T) {
	d := build(orb.Point{1100, 1600}, orb.Point{1200, 1600}, orb.Point{1150, 1602})
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2000, 2000}}

	e := d.Edge(d.EdgesBetween(0, 1)[0])
	if e.Visible {
		t.Fatalf("edge 0-1 is visible")
	}
	a, b, ok := e.Reach(bound)
	if !ok {
		t.Fatalf("no reach for an invisible ray")
	}
	if math.Abs(a[0]-1150) > 1e-6 || math.Abs(a[1]-976) > 1e-6 {
		t.Errorf("reach starts at %v, want (1150, 976)", a)
	}
	if b[1] >= 0 || b[0] < 1150-1e-6 || b[0] > 1150+1e-6 {
		t.Errorf("reach end %v does not run down x=1150 past the bound", b)
	}

	if _, _, ok := (Line{Vertices: [2]int{NoVertex, NoVertex}}).Reach(bound); ok {
		t.Errorf("reach of a line without coefficients")
	}
}

func TestReachFullLine(t *testing.T) {
	d := build(orb.Point{0, 0}, orb.Point{10, 0})
	bound := orb.Bound{Min: orb.Point{100, 100}, Max: orb.Point{200, 200}}

	a, b, ok := d.Edges()[0].Reach(bound)
	if !ok {
		t.Fatalf("no reach for x=5")
	}
	if a[0] != 5 || b[0] != 5 {
		t.Errorf("reach %v-%v leaves x=5", a, b)
	}
	lo, hi := math.Min(a[1], b[1]), math.Max(a[1], b[1])
	if lo >= bound.Min[1] || hi <= bound.Max[1] {
		t.Errorf("reach %v-%v does not span the bound in y", a, b)
	}
}
