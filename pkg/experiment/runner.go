// Package experiment drives batches of simulated networks and collects
// one report per routed packet.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/0x0FACED/go-mabravo/pkg/logger"
	"github.com/0x0FACED/go-mabravo/pkg/metrics"
	"github.com/0x0FACED/go-mabravo/pkg/network"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Network is one simulated network with its area of interest, tagged.
type Network struct {
	Graph *network.Graph
	Area  *aoi.Area
}

type Runner struct {
	Domain orb.Bound
	Gen    *Generator
	Log    *logger.ZapLogger
}

func NewRunner(domain orb.Bound, gen *Generator, log *logger.ZapLogger) *Runner {
	return &Runner{Domain: domain, Gen: gen, Log: log}
}

// Summary counts what a batch went through.
type Summary struct {
	Networks      int
	Failed        int
	Packets       int
	Faults        int
	Disagreements int
}

// Build draws the area first and the sites second, then builds and tags
// the network.
func (r *Runner) Build(sites, aoiVertices int) (*Network, error) {
	area, err := aoi.New(r.Gen.Points(aoiVertices, r.Domain))
	if err != nil {
		metrics.ConstructionFailuresTotal.WithLabelValues("aoi").Inc()
		return nil, fmt.Errorf("build area of %d vertices: %w", aoiVertices, err)
	}

	pts := r.Gen.Points(sites, r.Domain)
	start := time.Now()
	g, err := network.New(r.Domain, pts, r.Log)
	if err != nil {
		metrics.ConstructionFailuresTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("build network of %d sites: %w", sites, err)
	}
	elapsed := time.Since(start)
	metrics.BuildDurationMs.Observe(float64(elapsed.Microseconds()) / 1000)
	metrics.NetworksBuiltTotal.Inc()

	g.TagAoI(area)

	r.Log.Info("[runner] network built",
		zap.Int("sites", sites),
		zap.Int("hull", area.Len()),
		zap.Int("in-aoi", g.CountInAoI()),
		zap.Duration("elapsed", elapsed))

	return &Network{Graph: g, Area: area}, nil
}

// Packet routes one packet from src to dst and compares the AoI-cast of
// the BFS oracle with the MABRAVO one.
func (r *Runner) Packet(n *Network, src, dst orb.Point) (Report, error) {
	g := n.Graph

	route, err := g.ComputeRoute(src, dst, n.Area)
	if err != nil {
		return Report{}, r.fault("route", err)
	}
	rep := Report{
		Source:      g.ClosestSite(src),
		Destination: g.ClosestSite(dst),
		Route:       route,
	}

	if err := g.BFSVisit(rep.Source, false); err != nil {
		return rep, r.fault("bfs", err)
	}
	all := g.Visits()
	rep.Total, _ = reached(all)
	for id, v := range all {
		if v == network.Unreached {
			r.Log.Warn("[runner] rogue site", zap.Int("site", id))
		}
	}

	if err := g.BFSVisit(rep.Source, true); err != nil {
		return rep, r.fault("bfs", err)
	}
	oracle := g.Visits()
	rep.InAoI, rep.AvgOracle = reached(oracle)
	rep.Unicast = oracle[rep.Destination]

	if err := g.MabravoVisit(rep.Source, true, n.Area, src); err != nil {
		return rep, r.fault("mabravo", err)
	}
	mab := g.Visits()
	_, rep.AvgMabravo = reached(mab)

	for id := range mab {
		if (oracle[id] == network.Unreached) != (mab[id] == network.Unreached) {
			rep.Disagreements++
			r.Log.Warn("[runner] BFS and MABRAVO disagree",
				zap.Int("site", id),
				zap.Int("bfs", oracle[id]),
				zap.Int("mabravo", mab[id]))
		}
	}

	metrics.PacketsRoutedTotal.Inc()
	metrics.RouteHops.Observe(float64(rep.Hops()))
	metrics.DisagreementsTotal.Add(float64(rep.Disagreements))

	return rep, nil
}

// Visited returns the sites reached by the last traversal of n.
func (n *Network) Visited() []int {
	var out []int
	for id, v := range n.Graph.Visits() {
		if v != network.Unreached {
			out = append(out, id)
		}
	}
	return out
}

// RunNetwork builds one network and routes packets between random points
// of its area. A faulty packet is skipped; its error is returned joined
// with the others next to the reports of the good packets.
func (r *Runner) RunNetwork(sites, aoiVertices, packets int) ([]Report, error) {
	n, err := r.Build(sites, aoiVertices)
	if err != nil {
		return nil, err
	}

	srcs := make([]orb.Point, packets)
	dsts := make([]orb.Point, packets)
	for i := 0; i < packets; i++ {
		srcs[i] = r.Gen.PointIn(n.Area)
		dsts[i] = r.Gen.PointIn(n.Area)
	}

	reports := make([]Report, 0, packets)
	var errs []error
	for i := range srcs {
		rep, err := r.Packet(n, srcs[i], dsts[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("packet %d: %w", i, err))
			continue
		}
		reports = append(reports, rep)
	}
	return reports, errors.Join(errs...)
}

// RunBatch runs networks one after the other and hands every report to
// sink. A failing network or packet is counted and the batch goes on; ctx
// is checked between networks.
func (r *Runner) RunBatch(ctx context.Context, sites, aoiVertices, packets, networks int, sink func(Report)) (Summary, error) {
	var s Summary
	for i := 0; i < networks; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		s.Networks++

		reports, err := r.RunNetwork(sites, aoiVertices, packets)
		if err != nil {
			if reports == nil {
				s.Failed++
			} else {
				s.Faults += packets - len(reports)
			}
			r.Log.Error("[runner] network fault", zap.Int("network", i), zap.Error(err))
		}
		for _, rep := range reports {
			s.Packets++
			s.Disagreements += rep.Disagreements
			if sink != nil {
				sink(rep)
			}
		}
	}

	r.Log.Info("[runner] batch done",
		zap.Int("networks", s.Networks),
		zap.Int("failed", s.Failed),
		zap.Int("packets", s.Packets),
		zap.Int("faults", s.Faults),
		zap.Int("disagreements", s.Disagreements))

	return s, nil
}

func (r *Runner) fault(op string, err error) error {
	if errors.Is(err, network.ErrConsistency) {
		metrics.ConsistencyFaultsTotal.WithLabelValues(op).Inc()
	}
	r.Log.Warn("[runner] packet aborted", zap.String("op", op), zap.Error(err))
	return err
}

// reached counts the visited sites and their mean round.
func reached(visits []int) (int, float64) {
	n, steps := 0, 0
	for _, v := range visits {
		if v != network.Unreached {
			n++
			steps += v
		}
	}
	if n == 0 {
		return 0, 0
	}
	return n, float64(steps) / float64(n)
}
