package network

import "sort"

// siteSet is a set of site ids.
type siteSet map[int]struct{}

func (s siteSet) add(id int) {
	s[id] = struct{}{}
}

func (s siteSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

// sorted returns the members in ascending order.
func (s siteSet) sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
