package contractor

import (
	"fmt"
	"time"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
	"go.uber.org/zap"
)

type Stats struct {
	NodeCount         int
	OriginalArcCount  int
	ShortcutCount     int
	ForwardArcCount   int
	BackwardArcCount  int
	ComponentCount    int
	PreprocessingTime time.Duration
}

/*
Hierarchy owns everything a build produces: the graph with its shortcuts, the rank of every
node, the contraction order and the two search graphs.
forward holds arcs u->v with rank(u) < rank(v). backward holds the arcs with rank(u) > rank(v),
reversed. ArcRef of both points into graph. a Hierarchy is never modified after Build returns.
*/
type Hierarchy struct {
	graph    *da.Graph
	rank     []da.Index
	order    Order
	forward  *da.StaticGraph
	backward *da.StaticGraph
	stats    Stats
}

type buildConfig struct {
	priority   PriorityKind
	heuristics Heuristics
	hopLimit   int32
	order      []da.Index
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

type Option func(*buildConfig)

func WithPriority(kind PriorityKind) Option {
	return func(c *buildConfig) {
		c.priority = kind
	}
}

func WithHeuristics(h Heuristics) Option {
	return func(c *buildConfig) {
		c.heuristics = h
	}
}

func WithHopLimit(limit int32) Option {
	return func(c *buildConfig) {
		c.hopLimit = limit
	}
}

// WithOrder replays order instead of computing one. order is borrowed, Build never modifies it.
// a later WithPriority with another kind makes Build fail.
func WithOrder(order []da.Index) Option {
	return func(c *buildConfig) {
		c.order = order
		c.priority = Predetermined
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *buildConfig) {
		c.metrics = m
	}
}

func newPriority(cfg *buildConfig, st *contractionState) (Priority, error) {
	if cfg.order != nil && cfg.priority != Predetermined {
		return nil, util.WrapErrorf(util.ErrInvalidOrder, util.ErrConfig,
			"an order was given but the %s priority computes its own", cfg.priority)
	}
	switch cfg.priority {
	case EdgeDifference:
		return newEdgeDifferencePriority(st, cfg.heuristics), nil
	case Experimental:
		return newExperimentalPriority(st, cfg.heuristics), nil
	case Predetermined:
		if cfg.order == nil {
			return nil, util.WrapErrorf(util.ErrInvalidOrder, util.ErrConfig, "predetermined priority needs an order")
		}
		return NewPredeterminedPriority(cfg.order, st.graph.NumNodes()), nil
	}
	return nil, util.NewErrorf(util.ErrConfig, "unknown priority %q", cfg.priority)
}

func validateGraph(g *da.Graph) error {
	for a := 0; a < g.NumArcs(); a++ {
		arc := g.Arc(da.Index(a))
		if arc.Cost < 0 {
			return util.WrapErrorf(util.ErrNegativeCost, util.ErrBadInput,
				"arc %d (%d -> %d) has cost %d", a, arc.From, arc.To, arc.Cost)
		}
	}
	return nil
}

/*
Build contracts every node of g and returns the hierarchy. g is modified in place: shortcut
arcs are appended and may overwrite more expensive arcs. on error no hierarchy is returned
and g must not be reused.
*/
func Build(g *da.Graph, opts ...Option) (*Hierarchy, error) {
	cfg := &buildConfig{
		priority:   EdgeDifference,
		heuristics: DefaultHeuristics(),
		hopLimit:   search.DefaultHopLimit,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateGraph(g); err != nil {
		return nil, err
	}

	st := time.Now()
	state := newContractionState(g, cfg.hopLimit, cfg.metrics)
	priority, err := newPriority(cfg, state)
	if err != nil {
		return nil, err
	}

	n := g.NumNodes()
	cfg.logger.Info("computing initial priorities",
		zap.Int("nodes", n), zap.Int("arcs", g.NumArcs()), zap.String("priority", string(cfg.priority)))
	if err := priority.Init(); err != nil {
		return nil, fmt.Errorf("init %s priority: %w", cfg.priority, err)
	}

	rank := make([]da.Index, n)
	for i := range rank {
		rank[i] = da.INVALID_INDEX
	}
	order := make([]da.Index, 0, n)

	for {
		v, ok := priority.NextNode()
		if !ok {
			break
		}
		if rank[v] != da.INVALID_INDEX {
			return nil, util.WrapErrorf(util.ErrInvalidOrder, util.ErrInternal, "node %d contracted twice", v)
		}
		rank[v] = da.Index(len(order))
		order = append(order, v)

		added := state.contract(v)
		state.finalize(v)
		priority.Finalize(v)

		if cfg.metrics != nil {
			cfg.metrics.NodesContracted.Inc()
			cfg.metrics.ShortcutsAdded.Add(float64(added))
		}
		if len(order)%10000 == 0 {
			cfg.logger.Info("contracting nodes", zap.Int("contracted", len(order)), zap.Int("shortcuts", state.shortcuts))
		}
	}

	if len(order) != n {
		return nil, util.WrapErrorf(util.ErrInvalidOrder, util.ErrInternal,
			"priority stopped after %d of %d nodes", len(order), n)
	}

	h := &Hierarchy{
		graph: g,
		rank:  rank,
	}
	if cfg.priority == Predetermined {
		h.order = BorrowedOrder{nodes: cfg.order}
	} else {
		h.order = OwnedOrder{nodes: order}
	}
	h.splitGraph()

	h.stats = Stats{
		NodeCount:         n,
		OriginalArcCount:  g.NumOriginalArcs(),
		ShortcutCount:     g.NumShortcuts(),
		ForwardArcCount:   h.forward.NumArcs(),
		BackwardArcCount:  h.backward.NumArcs(),
		ComponentCount:    len(StronglyConnectedComponents(g)),
		PreprocessingTime: time.Since(st),
	}
	if cfg.metrics != nil {
		cfg.metrics.BuildDuration.Observe(h.stats.PreprocessingTime.Seconds())
	}
	cfg.logger.Info("contraction hierarchies ready",
		zap.Int("shortcuts", h.stats.ShortcutCount),
		zap.Int("forward_arcs", h.stats.ForwardArcCount),
		zap.Int("backward_arcs", h.stats.BackwardArcCount),
		zap.Int("strongly_connected_components", h.stats.ComponentCount),
		zap.Duration("took", h.stats.PreprocessingTime))
	return h, nil
}

// splitGraph compiles the upward arcs into forward and the reversed downward arcs into backward.
func (h *Hierarchy) splitGraph() {
	g := h.graph
	fwd := make([]da.StaticArc, 0, g.NumArcs()/2)
	bwd := make([]da.StaticArc, 0, g.NumArcs()/2)
	for i := 0; i < g.NumArcs(); i++ {
		a := da.Index(i)
		arc := g.Arc(a)
		if arc.From == arc.To {
			continue
		}
		if h.rank[arc.From] < h.rank[arc.To] {
			fwd = append(fwd, da.StaticArc{From: arc.From, To: arc.To, Cost: arc.Cost, Ref: a})
		} else {
			bwd = append(bwd, da.StaticArc{From: arc.To, To: arc.From, Cost: arc.Cost, Ref: a})
		}
	}
	h.forward = da.NewStaticGraph(g.NumNodes(), fwd)
	h.backward = da.NewStaticGraph(g.NumNodes(), bwd)
}

func (h *Hierarchy) Graph() *da.Graph {
	return h.graph
}

func (h *Hierarchy) Forward() *da.StaticGraph {
	return h.forward
}

func (h *Hierarchy) Backward() *da.StaticGraph {
	return h.backward
}

func (h *Hierarchy) NumNodes() int {
	return h.graph.NumNodes()
}

func (h *Hierarchy) Rank(v da.Index) da.Index {
	return h.rank[v]
}

// Order returns a copy of the contraction order, usable with WithOrder on an identical graph.
func (h *Hierarchy) Order() []da.Index {
	return CloneOrder(h.order)
}

// OrderOwnership reports whether the order was computed by this build or borrowed from the caller.
func (h *Hierarchy) OrderOwnership() Order {
	return h.order
}

func (h *Hierarchy) Stats() Stats {
	return h.stats
}
