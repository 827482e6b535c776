package experiment

import (
	"fmt"
	"strconv"
	"strings"
)

// Header names the columns of Report.String.
const Header = "src, dst, total nodes, nodes in AoI, unicast route length (oracle), " +
	"avg AoIcast route (oracle), avg AoIcast route (mabravo), unicasts route (mabravo):"

// Report is the outcome of one routed packet.
type Report struct {
	Source      int
	Destination int

	// Total is the number of sites a plain BFS from Source reaches.
	Total int
	// InAoI is the number of sites a BFS restricted to the AoI reaches.
	InAoI int
	// Unicast is the round in which the AoI-restricted BFS reaches
	// Destination, -1 if it does not.
	Unicast int

	AvgOracle  float64
	AvgMabravo float64

	Route []int

	// Disagreements counts sites reached by only one of the two AoI visits.
	Disagreements int
}

// Hops is the number of hops of the greedy route.
func (r Report) Hops() int {
	if len(r.Route) == 0 {
		return 0
	}
	return len(r.Route) - 1
}

func (r Report) String() string {
	route := make([]string, len(r.Route))
	for i, id := range r.Route {
		route[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%d, %d, %d, %d, %d, %s, %s, %d: (%s)",
		r.Source, r.Destination, r.Total, r.InAoI, r.Unicast,
		formatAvg(r.AvgOracle), formatAvg(r.AvgMabravo),
		r.Hops(), strings.Join(route, ","))
}

func formatAvg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
