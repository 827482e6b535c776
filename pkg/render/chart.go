// Package render draws a network, its area of interest and the traffic of
// one packet as an echarts page.
package render

import (
	"fmt"
	"html"
	"io"

	"github.com/0x0FACED/go-mabravo/pkg/aoi"
	"github.com/0x0FACED/go-mabravo/pkg/network"
	"github.com/0x0FACED/go-mabravo/static"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paulmach/orb"
)

// Series names, also used as legend entries.
const (
	SeriesSites    = "Sites"
	SeriesAoISites = "AoI sites"
	SeriesVisited  = "Reached by MABRAVO"
	SeriesRoute    = "Route"
	SeriesEdges    = "Edges"
	SeriesAoIEdges = "AoI edges"
	SeriesArea     = "AoI"
)

// Overlay is the traffic drawn on top of the network.
type Overlay struct {
	Title   string
	Route   []int
	Visited []int
}

func prepareScatter(scatter *charts.Scatter, title string, domain orb.Bound) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			Min:  domain.Min[0],
			Max:  domain.Max[0],
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			Min:  domain.Min[1],
			Max:  domain.Max[1],
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Chart draws the sites of g split by AoI membership, the diagram edges,
// the hull of area and the overlay.
func Chart(g *network.Graph, area *aoi.Area, overlay Overlay) *charts.Scatter {
	scatter := charts.NewScatter()
	title := overlay.Title
	if title == "" {
		title = "MABRAVO over a Voronoi network"
	}
	prepareScatter(scatter, title, g.Domain())

	inAoI := g.SiteInAoI()
	var plain, tagged []opts.ScatterData
	for id := 0; id < g.Size(); id++ {
		p, _ := g.Point(id)
		d := opts.ScatterData{Name: fmt.Sprint(id), Value: []float64{p[0], p[1]}}
		if inAoI[id] {
			tagged = append(tagged, d)
		} else {
			plain = append(plain, d)
		}
	}

	scatter.AddSeries(SeriesSites, plain).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)
	scatter.AddSeries(SeriesAoISites, tagged).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "orange",
			}),
		)

	if len(overlay.Visited) > 0 {
		visited := make([]opts.ScatterData, 0, len(overlay.Visited))
		for _, id := range overlay.Visited {
			p, _ := g.Point(id)
			visited = append(visited, opts.ScatterData{
				Name:       fmt.Sprint(id),
				Value:      []float64{p[0], p[1]},
				SymbolSize: 14,
			})
		}
		scatter.AddSeries(SeriesVisited, visited).
			SetSeriesOptions(
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: "yellow",
				}),
			)
	}

	for _, e := range g.Diagram().Edges() {
		if !e.Visible {
			continue
		}
		name, color := SeriesEdges, "#757575"
		if inAoI[e.Sites[0]] || inAoI[e.Sites[1]] {
			name, color = SeriesAoIEdges, "lightblue"
		}
		scatter.Overlap(polyline(name, color, 1, e.Segment[0], e.Segment[1]))
	}

	ring := area.Ring()
	scatter.Overlap(polyline(SeriesArea, "red", 2, append(ring, ring[0])...))

	if len(overlay.Route) > 0 {
		pts := make([]orb.Point, 0, len(overlay.Route))
		for _, id := range overlay.Route {
			p, _ := g.Point(id)
			pts = append(pts, p)
		}
		scatter.Overlap(polyline(SeriesRoute, "magenta", 3, pts...))
	}

	return scatter
}

func polyline(name, color string, width float32, pts ...orb.Point) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
	)

	data := make([]opts.LineData, 0, len(pts))
	for _, p := range pts {
		data = append(data, opts.LineData{Value: []float64{p[0], p[1]}})
	}
	line.AddSeries(name, data).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{
			Width: width,
			Color: color,
		}),
	)
	return line
}

// PageData is what the form on the page shows.
type PageData struct {
	Sites       int
	AoIVertices int
	Seed        int64
	Report      string
}

// Page writes the whole viewer page: form, chart and logs.
func Page(w io.Writer, chart *charts.Scatter, data PageData, logs []string) error {
	fmt.Fprintln(w, static.Part1)
	fmt.Fprintf(w, static.Form, data.Sites, data.AoIVertices, data.Seed, html.EscapeString(data.Report))

	if chart != nil {
		if err := chart.Render(w); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
	}

	fmt.Fprintln(w, static.Part2)
	for _, log := range logs {
		fmt.Fprintln(w, log)
	}
	fmt.Fprintln(w, static.Part3)
	return nil
}
