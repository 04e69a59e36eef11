package search

import da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"

// Policy customises relaxation of a Dijkstra search.
type Policy interface {
	// Grow is called once with the node count of the searched graph.
	Grow(numNodes int)
	// CanExpand reports whether the out arcs of settled node u may be relaxed.
	CanExpand(u da.Index) bool
	// Labeled is called whenever the tentative distance of v improves via arc from u.
	// u is INVALID_INDEX for sources.
	Labeled(u, v, arc da.Index)
	// Reset forgets the per node state of v.
	Reset(v da.Index)
}

// PlainPolicy relaxes every arc and keeps no extra state.
type PlainPolicy struct{}

func (PlainPolicy) Grow(int) {}

func (PlainPolicy) CanExpand(da.Index) bool { return true }

func (PlainPolicy) Labeled(_, _, _ da.Index) {}

func (PlainPolicy) Reset(da.Index) {}

const DefaultHopLimit = 5

// HopLimitPolicy stops expanding a node once the path to it has Limit arcs.
type HopLimitPolicy struct {
	Limit int32
	hops  []int32
}

func NewHopLimitPolicy(limit int32) *HopLimitPolicy {
	if limit <= 0 {
		limit = DefaultHopLimit
	}
	return &HopLimitPolicy{Limit: limit}
}

func (p *HopLimitPolicy) Grow(numNodes int) {
	p.hops = make([]int32, numNodes)
}

func (p *HopLimitPolicy) CanExpand(u da.Index) bool {
	return p.hops[u] < p.Limit
}

func (p *HopLimitPolicy) Labeled(u, v, _ da.Index) {
	if u == da.INVALID_INDEX {
		p.hops[v] = 0
		return
	}
	p.hops[v] = p.hops[u] + 1
}

func (p *HopLimitPolicy) Reset(v da.Index) {
	p.hops[v] = 0
}

func (p *HopLimitPolicy) Hops(v da.Index) int32 {
	return p.hops[v]
}

// PredecessorPolicy remembers the arc each node was last labeled through.
type PredecessorPolicy struct {
	pred []da.Index
}

func NewPredecessorPolicy() *PredecessorPolicy {
	return &PredecessorPolicy{}
}

func (p *PredecessorPolicy) Grow(numNodes int) {
	p.pred = make([]da.Index, numNodes)
	for i := range p.pred {
		p.pred[i] = da.INVALID_INDEX
	}
}

func (p *PredecessorPolicy) CanExpand(da.Index) bool { return true }

func (p *PredecessorPolicy) Labeled(_, v, arc da.Index) {
	p.pred[v] = arc
}

func (p *PredecessorPolicy) Reset(v da.Index) {
	p.pred[v] = da.INVALID_INDEX
}

// PredArc returns the arc v was reached through, INVALID_INDEX for sources and unreached nodes.
func (p *PredecessorPolicy) PredArc(v da.Index) da.Index {
	return p.pred[v]
}
