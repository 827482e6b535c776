package voronoi

import "github.com/paulmach/orb"

// eventQueue holds pending circle events in buckets hashed by ystar. Each
// bucket head is a sentinel halfedge; entries are chained through pqNext in
// (ystar, x) order.
type eventQueue struct {
	hash  []halfedgeRef
	count int
	min   int
}

func (s *sweep) initQueue() {
	size := 4 * s.sqrtN
	s.queue = eventQueue{hash: make([]halfedgeRef, size)}
	for i := range s.queue.hash {
		s.queue.hash[i] = s.newHalfedge(noEdge, le)
	}
}

func (s *sweep) bucket(h halfedgeRef) int {
	size := len(s.queue.hash)
	b := 0
	if s.deltaY > 0 {
		b = int((s.he(h).ystar - s.yMin) / s.deltaY * float64(size))
	}
	if b < 0 {
		b = 0
	}
	if b >= size {
		b = size - 1
	}
	if b < s.queue.min {
		s.queue.min = b
	}
	return b
}

// enqueue schedules the circle event of h at vertex v; offset is the circle
// radius so ystar is the lowest point of the circle.
func (s *sweep) enqueue(h halfedgeRef, v vertexRef, offset float64) {
	n := s.he(h)
	n.vertex = v
	n.ystar = s.circles[v].coord[1] + offset
	x := s.circles[v].coord[0]

	last := s.queue.hash[s.bucket(h)]
	for {
		next := s.he(last).pqNext
		if next == noHalfedge {
			break
		}
		nn := s.he(next)
		if n.ystar > nn.ystar || (n.ystar == nn.ystar && x > s.circles[nn.vertex].coord[0]) {
			last = next
			continue
		}
		break
	}
	n.pqNext = s.he(last).pqNext
	s.he(last).pqNext = h
	s.queue.count++
}

func (s *sweep) dequeue(h halfedgeRef) {
	n := s.he(h)
	if n.vertex == noVertex {
		return
	}
	last := s.queue.hash[s.bucket(h)]
	for s.he(last).pqNext != h {
		last = s.he(last).pqNext
	}
	s.he(last).pqNext = n.pqNext
	s.queue.count--
	n.vertex = noVertex
}

func (s *sweep) queueEmpty() bool {
	return s.queue.count == 0
}

// queueMin returns the (x, ystar) of the earliest pending circle event.
func (s *sweep) queueMin() orb.Point {
	for s.he(s.queue.hash[s.queue.min]).pqNext == noHalfedge {
		s.queue.min++
	}
	h := s.he(s.he(s.queue.hash[s.queue.min]).pqNext)
	return orb.Point{s.circles[h.vertex].coord[0], h.ystar}
}

func (s *sweep) extractMin() halfedgeRef {
	head := s.queue.hash[s.queue.min]
	cur := s.he(head).pqNext
	s.he(head).pqNext = s.he(cur).pqNext
	s.queue.count--
	return cur
}
