package datastructure

// StaticArc is an input arc for NewStaticGraph. Ref points back to the arc of the graph it was derived from.
type StaticArc struct {
	From Index
	To   Index
	Cost Weight
	Ref  Index
}

/*
StaticGraph is an immutable compressed sparse row graph.
out arcs of node v are arcs [firstOut[v], firstOut[v+1]).
*/
type StaticGraph struct {
	firstOut []Index
	heads    []Index
	tails    []Index
	costs    []Weight
	arcRefs  []Index
	arcIDs   []Index

	nodeRefs []Index
}

func NewStaticGraph(numNodes int, arcs []StaticArc) *StaticGraph {
	sg := &StaticGraph{
		firstOut: make([]Index, numNodes+1),
		heads:    make([]Index, len(arcs)),
		tails:    make([]Index, len(arcs)),
		costs:    make([]Weight, len(arcs)),
		arcRefs:  make([]Index, len(arcs)),
		arcIDs:   make([]Index, len(arcs)),
		nodeRefs: make([]Index, numNodes),
	}

	for v := 0; v < numNodes; v++ {
		sg.nodeRefs[v] = Index(v)
	}

	// counting sort by tail, stable w.r.t. input order
	for _, arc := range arcs {
		sg.firstOut[arc.From+1]++
	}
	for v := 0; v < numNodes; v++ {
		sg.firstOut[v+1] += sg.firstOut[v]
	}

	next := make([]Index, numNodes)
	copy(next, sg.firstOut[:numNodes])
	for _, arc := range arcs {
		pos := next[arc.From]
		next[arc.From]++
		sg.heads[pos] = arc.To
		sg.tails[pos] = arc.From
		sg.costs[pos] = arc.Cost
		sg.arcRefs[pos] = arc.Ref
	}

	for i := range sg.arcIDs {
		sg.arcIDs[i] = Index(i)
	}
	return sg
}

func (sg *StaticGraph) NumNodes() int {
	return len(sg.nodeRefs)
}

func (sg *StaticGraph) NumArcs() int {
	return len(sg.heads)
}

func (sg *StaticGraph) OutArcs(v Index) []Index {
	return sg.arcIDs[sg.firstOut[v]:sg.firstOut[v+1]]
}

func (sg *StaticGraph) Head(a Index) Index {
	return sg.heads[a]
}

func (sg *StaticGraph) Tail(a Index) Index {
	return sg.tails[a]
}

func (sg *StaticGraph) Cost(a Index) Weight {
	return sg.costs[a]
}

// ArcRef returns the arc of the preprocessing graph that arc a was built from.
func (sg *StaticGraph) ArcRef(a Index) Index {
	return sg.arcRefs[a]
}

// NodeRef maps a node id of the preprocessing graph to its id in sg.
func (sg *StaticGraph) NodeRef(v Index) Index {
	return sg.nodeRefs[v]
}
