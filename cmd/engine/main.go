package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lintang-b-s/navigatorx-ch/pkg/config"
	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-ch/pkg/kv"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

var (
	listenAddr  = flag.String("listenaddr", "", "serve /metrics and /debug on this address, e.g. :5000")
	graphFile   = flag.String("f", "", "dimacs .gr graph file, may be zstd compressed (.zst)")
	configFile  = flag.String("config", "", "yaml config file")
	graphName   = flag.String("name", "", "name the contraction order was stored under, defaults to the graph file name")
	queriesFile = flag.String("queries", "", "file with one \"source target\" query per line, 0-based ids; stdin if empty")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so its deferred cleanups run before os.Exit.
func realMain() int {
	flag.Parse()
	if *graphFile == "" {
		log.Print("missing -f graph file")
		return 2
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfig(*configFile)
		if err != nil {
			log.Print(err)
			return 1
		}
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	h, err := loadHierarchy(context.Background(), cfg, logger, m)
	if err != nil {
		logger.Error("loading contraction hierarchies failed", zap.Error(err))
		return 1
	}
	recordMemProfile(memprofile, "load_contracted_graph")

	if *listenAddr != "" {
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Mount("/debug", middleware.Profiler())
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("metrics server started", zap.String("addr", *listenAddr))
			if err := http.ListenAndServe(*listenAddr, r); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	in := os.Stdin
	if *queriesFile != "" {
		f, err := os.Open(*queriesFile)
		if err != nil {
			logger.Error("open queries file", zap.Error(err))
			return 1
		}
		defer f.Close()
		in = f
	}

	rt := routingalgorithm.NewRouteAlgorithm(h, m)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if err := answerQueries(rt, in, out); err != nil {
		logger.Error("answering queries", zap.Error(err))
		return 1
	}
	return 0
}

func loadHierarchy(ctx context.Context, cfg config.Config, logger *zap.Logger, m *metrics.Metrics) (*contractor.Hierarchy, error) {
	name := *graphName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(*graphFile), ".zst")
	}
	g, err := da.ReadDimacsFile(*graphFile)
	if err != nil {
		return nil, err
	}

	store, err := kv.Open(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return replayStored(ctx, store, g, name, cfg.Contraction.HopLimit, logger, m)
}

// replayStored rebuilds the hierarchy of g from the order stored under name, with the hop limit
// the order was computed with. hopLimit is used for records that did not store one.
func replayStored(ctx context.Context, store kv.OrderStore, g *da.Graph, name string, hopLimit int32,
	logger *zap.Logger, m *metrics.Metrics) (*contractor.Hierarchy, error) {
	stored, err := store.LoadOrder(ctx, name, g.NumNodes(), g.NumArcs())
	if err != nil {
		return nil, err
	}
	if stored.HopLimit > 0 {
		hopLimit = stored.HopLimit
	}
	logger.Info("replaying stored order", zap.String("graph", name), zap.Int32("hop_limit", hopLimit))
	return contractor.Build(g,
		contractor.WithOrder(stored.Order),
		contractor.WithHopLimit(hopLimit),
		contractor.WithLogger(logger),
		contractor.WithMetrics(m))
}

// answerQueries prints "distance hops" for each "s t" line, -1 -1 when t is unreachable.
func answerQueries(rt *routingalgorithm.RouteAlgorithm, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return util.NewErrorf(util.ErrBadInput, "line %d: want \"source target\", got %q", line, sc.Text())
		}
		s, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return util.WrapErrorf(err, util.ErrBadInput, "line %d", line)
		}
		t, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return util.WrapErrorf(err, util.ErrBadInput, "line %d", line)
		}

		path, dist, err := rt.ShortestPathBiDijkstraCH(da.Index(s), da.Index(t))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if dist == da.Unreachable {
			fmt.Fprintln(out, "-1 -1")
			continue
		}
		fmt.Fprintf(out, "%d %d\n", dist, len(path))
	}
	return sc.Err()
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		file := strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(file)
		if err != nil {
			log.Printf("memory profile %s: %v", file, err)
			return
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
