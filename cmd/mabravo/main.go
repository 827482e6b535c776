package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/0x0FACED/go-mabravo/pkg/config"
	"github.com/0x0FACED/go-mabravo/pkg/experiment"
	"github.com/0x0FACED/go-mabravo/pkg/logger"
	"github.com/0x0FACED/go-mabravo/pkg/metrics"
	"github.com/0x0FACED/go-mabravo/pkg/render"
	"go.uber.org/zap"
)

const usage = `usage:
  mabravo N AOI PACKETS NETWORKS SEED   run NETWORKS networks of N sites, PACKETS packets each
  mabravo N AOI SEED                    serve the viewer on MABRAVO_ADDR

N is the number of sites, AOI the number of random points the area of
interest is the hull of.`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	switch len(args) {
	case 5:
		err = batch(cfg, args)
	case 3:
		err = serve(cfg, args)
	default:
		fmt.Println(usage)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func atoi(name, s string, min int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v < min {
		return 0, fmt.Errorf("%s must be at least %d, got %d", name, min, v)
	}
	return v, nil
}

func batch(cfg config.Config, args []string) error {
	sites, err := atoi("N", args[0], 1)
	if err != nil {
		return err
	}
	aoiVertices, err := atoi("AOI", args[1], 3)
	if err != nil {
		return err
	}
	packets, err := atoi("PACKETS", args[2], 1)
	if err != nil {
		return err
	}
	networks, err := atoi("NETWORKS", args[3], 1)
	if err != nil {
		return err
	}
	seed, err := strconv.ParseInt(args[4], 10, 64)
	if err != nil {
		return fmt.Errorf("SEED: %w", err)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Stderr: cfg.LogStderr})
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("nodes vertices_aoi packets networks seed")
	fmt.Println(sites, aoiVertices, packets, networks, seed)
	fmt.Println(experiment.Header)

	runner := experiment.NewRunner(cfg.Domain(), experiment.NewGenerator(seed), log)
	_, err = runner.RunBatch(ctx, sites, aoiVertices, packets, networks, func(rep experiment.Report) {
		fmt.Println(rep.String())
	})
	fmt.Println("End -------------------------")
	return err
}

type viewer struct {
	cfg         config.Config
	sites       int
	aoiVertices int
	seed        int64
}

func serve(cfg config.Config, args []string) error {
	sites, err := atoi("N", args[0], 1)
	if err != nil {
		return err
	}
	aoiVertices, err := atoi("AOI", args[1], 3)
	if err != nil {
		return err
	}
	seed, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("SEED: %w", err)
	}

	v := &viewer{cfg: cfg, sites: sites, aoiVertices: aoiVertices, seed: seed}

	mux := http.NewServeMux()
	mux.HandleFunc("/", v.diagramHandler)
	mux.Handle("/metrics", metrics.Handler())

	fmt.Printf("Server started on http://localhost%s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// diagramHandler builds a fresh network for every request and routes one
// packet through it. A POST reads sites, aoi and seed from the form; an
// empty seed draws a new one.
func (v *viewer) diagramHandler(w http.ResponseWriter, r *http.Request) {
	sites, aoiVertices, seed := v.sites, v.aoiVertices, v.seed

	if r.Method == http.MethodPost {
		r.ParseForm()
		if n, err := strconv.Atoi(r.FormValue("sites")); err == nil && n > 0 {
			sites = n
		}
		if n, err := strconv.Atoi(r.FormValue("aoi")); err == nil && n >= 3 {
			aoiVertices = n
		}
		if s, err := strconv.ParseInt(r.FormValue("seed"), 10, 64); err == nil {
			seed = s
		} else {
			seed = time.Now().UnixNano()
		}
	}

	log := logger.NewWithOptions(logger.Options{
		Level:  v.cfg.LogLevel,
		Buffer: true,
		Stderr: v.cfg.LogStderr,
	})
	defer log.ClearLogs()

	data := render.PageData{Sites: sites, AoIVertices: aoiVertices, Seed: seed}

	gen := experiment.NewGenerator(seed)
	runner := experiment.NewRunner(v.cfg.Domain(), gen, log)

	n, err := runner.Build(sites, aoiVertices)
	if err != nil {
		log.Error("[viewer] build failed", zap.Int64("seed", seed), zap.Error(err))
		data.Report = err.Error()
		log.UpdateLogs()
		if err := render.Page(w, nil, data, log.Logs); err != nil {
			fmt.Println("page render failed:", err)
		}
		return
	}

	overlay := render.Overlay{}
	rep, err := runner.Packet(n, gen.PointIn(n.Area), gen.PointIn(n.Area))
	if err != nil {
		data.Report = err.Error()
	} else {
		data.Report = experiment.Header + "\n" + rep.String()
		overlay.Route = rep.Route
		overlay.Visited = n.Visited()
	}

	chart := render.Chart(n.Graph, n.Area, overlay)

	log.UpdateLogs()
	if err := render.Page(w, chart, data, log.Logs); err != nil {
		fmt.Println("page render failed:", err)
	}
}
