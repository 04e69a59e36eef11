package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
)

/*
lazyPriority keeps every active node in a min-heap keyed by its heuristic priority.
keys are refreshed lazily: NextNode recomputes the edge difference of the heap top and only
accepts it if it is still the minimum afterwards, otherwise the next top is tried.
*/
type lazyPriority struct {
	st *contractionState
	h  Heuristics

	heap        *da.MinHeap[int64]
	edgeDiff    []int64
	deleted     []int64
	searchSpace []int64
	hub         []int64

	// stamp dedupes neighbours reached over several arcs within one Finalize
	stamp []int32
	gen   int32
}

func newLazyPriority(st *contractionState, h Heuristics, withHub bool) *lazyPriority {
	n := st.graph.NumNodes()
	p := &lazyPriority{
		st:          st,
		h:           h,
		heap:        da.NewMinHeap[int64](n),
		edgeDiff:    make([]int64, n),
		deleted:     make([]int64, n),
		searchSpace: make([]int64, n),
		stamp:       make([]int32, n),
	}
	if withHub {
		p.hub = make([]int64, n)
	}
	return p
}

func (p *lazyPriority) key(v da.Index) int64 {
	k := p.h.EdgeDiff*p.edgeDiff[v] + p.h.Deleted*p.deleted[v] + p.h.SearchSpace*p.searchSpace[v]
	if p.hub != nil {
		k += p.h.Hub * p.hub[v]
	}
	return k
}

func (p *lazyPriority) Init() error {
	for i := 0; i < p.st.graph.NumNodes(); i++ {
		v := da.Index(i)
		p.edgeDiff[v] = p.st.edgeDifference(v)
		if p.hub != nil {
			p.hub[v] = p.st.hubRatio(v)
		}
		p.heap.Insert(da.PriorityQueueNode[int64]{Rank: p.key(v), Item: v})
	}
	return nil
}

func (p *lazyPriority) NextNode() (da.Index, bool) {
	for p.heap.Size() > 0 {
		top, _ := p.heap.GetMin()
		v := top.Item

		p.edgeDiff[v] = p.st.edgeDifference(v)
		p.heap.Update(da.PriorityQueueNode[int64]{Rank: p.key(v), Item: v})

		if newTop, _ := p.heap.GetMin(); newTop.Item == v {
			p.heap.ExtractMin()
			return v, true
		}
	}
	return da.INVALID_INDEX, false
}

// Finalize updates deleted neighbours, search space depth and edge difference of every active neighbour of v.
func (p *lazyPriority) Finalize(v da.Index) {
	g := p.st.graph
	p.gen++
	for _, arcs := range [][]da.Index{g.OutArcs(v), g.InArcs(v)} {
		for _, a := range arcs {
			u := g.Head(a)
			if u == v {
				u = g.Tail(a)
			}
			if u == v || p.st.finalized[u] || p.stamp[u] == p.gen {
				continue
			}
			p.stamp[u] = p.gen

			p.deleted[u]++
			if p.searchSpace[v]+1 > p.searchSpace[u] {
				p.searchSpace[u] = p.searchSpace[v] + 1
			}
			p.edgeDiff[u] = p.st.edgeDifference(u)
			p.heap.Update(da.PriorityQueueNode[int64]{Rank: p.key(u), Item: u})
		}
	}
}

// EdgeDifferencePriority orders nodes by edge difference, deleted neighbours and search space depth.
type EdgeDifferencePriority struct {
	*lazyPriority
}

func newEdgeDifferencePriority(st *contractionState, h Heuristics) *EdgeDifferencePriority {
	return &EdgeDifferencePriority{newLazyPriority(st, h, false)}
}

// ExperimentalPriority adds the ratio between the most expensive and the mean incident arc,
// computed once at Init, so nodes joining very unequal arcs are contracted later.
type ExperimentalPriority struct {
	*lazyPriority
}

func newExperimentalPriority(st *contractionState, h Heuristics) *ExperimentalPriority {
	return &ExperimentalPriority{newLazyPriority(st, h, true)}
}
