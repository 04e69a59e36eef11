package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/lintang-b-s/navigatorx-ch/pkg/config"
	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-ch/pkg/kv"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
)

var (
	graphFile    = flag.String("f", "", "dimacs .gr graph file, may be zstd compressed (.zst)")
	configFile   = flag.String("config", "", "yaml config file")
	graphName    = flag.String("name", "", "name the contraction order is stored under, defaults to the graph file name")
	priorityFlag = flag.String("priority", "", "override contraction.priority from the config")
	checkQueries = flag.Int("check", 0, "compare this many random queries against a plain bidirectional dijkstra")
	verifyReplay = flag.Bool("verify-replay", false, "rebuild from the computed order and check both hierarchies are equal")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
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
	if *cpuprofile != "" {
		// ./bin/navigatorx-preprocessing -f usa.gr.zst -cpuprofile=chcpu.prof -memprofile=chmem.mprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Print(err)
			return 1
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Print(err)
		return 1
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("preprocessing failed", zap.Error(err))
		return 1
	}
	return 0
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfig(*configFile)
		if err != nil {
			return cfg, err
		}
	}
	if *priorityFlag != "" {
		cfg.Contraction.Priority = *priorityFlag
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	name := *graphName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(*graphFile), ".zst")
	}

	logger.Info("reading graph", zap.String("file", *graphFile))
	g, err := da.ReadDimacsFile(*graphFile)
	if err != nil {
		return err
	}
	numNodes, numArcs := g.NumNodes(), g.NumArcs()
	original := g.Clone()
	recordMemProfile(memprofile, "read_graph")

	store, err := kv.Open(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := cfg.Contraction.Options()
	if err != nil {
		return err
	}
	m := metrics.NewMetrics(prometheus.NewRegistry())
	opts = append(opts, contractor.WithLogger(logger), contractor.WithMetrics(m))

	hopLimit := cfg.Contraction.HopLimit
	if contractor.PriorityKind(cfg.Contraction.Priority) == contractor.Predetermined {
		stored, err := store.LoadOrder(ctx, name, numNodes, numArcs)
		if err != nil {
			return err
		}
		if stored.HopLimit > 0 {
			hopLimit = stored.HopLimit
		}
		logger.Info("replaying stored order", zap.String("graph", name), zap.Int32("hop_limit", hopLimit))
		opts = append(opts, contractor.WithOrder(stored.Order), contractor.WithHopLimit(hopLimit))
	}

	h, err := contractor.Build(g, opts...)
	if err != nil {
		return err
	}
	recordMemProfile(memprofile, "contracted_graph")

	err = store.SaveOrders(ctx, []kv.OrderEntry{{
		Name:     name,
		NumNodes: numNodes,
		NumArcs:  numArcs,
		HopLimit: hopLimit,
		Order:    h.Order(),
	}})
	if err != nil {
		return err
	}

	if *verifyReplay {
		replayed, err := contractor.Build(original.Clone(), contractor.WithOrder(h.Order()),
			contractor.WithHopLimit(hopLimit), contractor.WithLogger(logger))
		if err != nil {
			return err
		}
		if !contractor.Equivalent(h, replayed) {
			return fmt.Errorf("replaying the order of %s gave a different hierarchy", name)
		}
		logger.Info("replay verified", zap.String("graph", name))
	}

	if *checkQueries > 0 {
		if err := checkRandomQueries(h, original, *checkQueries, logger); err != nil {
			return err
		}
	}

	fmt.Printf("\nContraction Hierarchies for %s ready!! %d shortcuts\n", name, h.Stats().ShortcutCount)
	return nil
}

func checkRandomQueries(h *contractor.Hierarchy, original *da.Graph, n int, logger *zap.Logger) error {
	rnd := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	q := routingalgorithm.NewQueryEngine(h)
	numNodes := original.NumNodes()
	for i := 0; i < n; i++ {
		s := da.Index(rnd.Intn(numNodes))
		t := da.Index(rnd.Intn(numNodes))
		got, err := q.Run(s, t)
		if err != nil {
			return err
		}
		want, _, err := routingalgorithm.ShortestPathBiDijkstra(original, s, t)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("query %d -> %d: contraction hierarchies %d, dijkstra %d", s, t, got, want)
		}
	}
	logger.Info("random queries match dijkstra", zap.Int("queries", n))
	return nil
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
