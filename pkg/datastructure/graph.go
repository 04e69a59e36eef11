package datastructure

// pack holds the two arcs a shortcut replaces. first == INVALID_INDEX for original arcs.
type pack struct {
	first  Index
	second Index
}

/*
Graph is the mutable directed graph used during preprocessing.
arcs are never removed. contraction only appends shortcut arcs or lowers the cost of an existing arc,
so arc ids handed out stay valid for the lifetime of the graph.
original keeps the arcs as loaded, since contraction may turn an original arc into a shortcut.
*/
type Graph struct {
	arcs     []Arc
	packs    []pack
	outArcs  [][]Index
	inArcs   [][]Index
	original []Arc
}

func NewGraph(numNodes int) *Graph {
	return &Graph{
		arcs:    make([]Arc, 0),
		packs:   make([]pack, 0),
		outArcs: make([][]Index, numNodes),
		inArcs:  make([][]Index, numNodes),
	}
}

// NewGraphFromArcs builds a graph with numNodes nodes and one original arc per element of arcs.
func NewGraphFromArcs(numNodes int, arcs []Arc) *Graph {
	g := NewGraph(numNodes)
	g.grow(len(arcs))
	for _, arc := range arcs {
		g.AddArc(arc.From, arc.To, arc.Cost)
	}
	return g
}

func (g *Graph) AddNode() Index {
	g.outArcs = append(g.outArcs, nil)
	g.inArcs = append(g.inArcs, nil)
	return Index(len(g.outArcs) - 1)
}

func (g *Graph) grow(numArcs int) {
	g.arcs = make([]Arc, 0, numArcs)
	g.packs = make([]pack, 0, numArcs)
	g.original = make([]Arc, 0, numArcs)
}

// AddArc adds an original arc.
func (g *Graph) AddArc(from, to Index, cost Weight) Index {
	g.original = append(g.original, NewArc(from, to, cost))
	return g.appendArc(from, to, cost, pack{INVALID_INDEX, INVALID_INDEX})
}

func (g *Graph) AddShortcut(from, to Index, cost Weight, first, second Index) Index {
	return g.appendArc(from, to, cost, pack{first, second})
}

func (g *Graph) appendArc(from, to Index, cost Weight, p pack) Index {
	id := Index(len(g.arcs))
	g.arcs = append(g.arcs, NewArc(from, to, cost))
	g.packs = append(g.packs, p)
	g.outArcs[from] = append(g.outArcs[from], id)
	g.inArcs[to] = append(g.inArcs[to], id)
	return id
}

// SetShortcut overwrites the cost and the constituent pair of an existing arc.
func (g *Graph) SetShortcut(arc Index, cost Weight, first, second Index) {
	g.arcs[arc].Cost = cost
	g.packs[arc] = pack{first, second}
}

// FindArc returns the first arc from -> to.
func (g *Graph) FindArc(from, to Index) (Index, bool) {
	for _, id := range g.outArcs[from] {
		if g.arcs[id].To == to {
			return id, true
		}
	}
	return INVALID_INDEX, false
}

func (g *Graph) NumNodes() int {
	return len(g.outArcs)
}

func (g *Graph) NumArcs() int {
	return len(g.arcs)
}

func (g *Graph) NumOriginalArcs() int {
	return len(g.original)
}

func (g *Graph) NumShortcuts() int {
	return len(g.arcs) - len(g.original)
}

func (g *Graph) OutArcs(v Index) []Index {
	return g.outArcs[v]
}

func (g *Graph) InArcs(v Index) []Index {
	return g.inArcs[v]
}

func (g *Graph) Arc(a Index) Arc {
	return g.arcs[a]
}

func (g *Graph) Head(a Index) Index {
	return g.arcs[a].To
}

func (g *Graph) Tail(a Index) Index {
	return g.arcs[a].From
}

func (g *Graph) Cost(a Index) Weight {
	return g.arcs[a].Cost
}

// Pack returns the arcs replaced by shortcut a. ok is false for original arcs.
func (g *Graph) Pack(a Index) (first, second Index, ok bool) {
	p := g.packs[a]
	if p.first == INVALID_INDEX {
		return INVALID_INDEX, INVALID_INDEX, false
	}
	return p.first, p.second, true
}

func (g *Graph) IsShortcut(a Index) bool {
	return g.packs[a].first != INVALID_INDEX
}

func (g *Graph) ValidNode(v Index) bool {
	return v >= 0 && int(v) < len(g.outArcs)
}

// OriginalArcs returns a copy of the arcs the graph was loaded with.
func (g *Graph) OriginalArcs() []Arc {
	arcs := make([]Arc, len(g.original))
	copy(arcs, g.original)
	return arcs
}

// Clone copies the original arcs into a new graph without shortcuts.
func (g *Graph) Clone() *Graph {
	return NewGraphFromArcs(g.NumNodes(), g.OriginalArcs())
}

// WithUnitCosts copies the original arcs into a new graph where every arc costs 1.
func (g *Graph) WithUnitCosts() *Graph {
	arcs := g.OriginalArcs()
	for i := range arcs {
		arcs[i].Cost = 1
	}
	return NewGraphFromArcs(g.NumNodes(), arcs)
}
