package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
)

type witnessSearch = search.Dijkstra[*da.Graph, *search.HopLimitPolicy]

/*
contractionState is shared by the contraction loop and the heuristic priorities.
finalized nodes are also excluded inside witness, so witness searches never enter them.
*/
type contractionState struct {
	graph     *da.Graph
	finalized []bool
	witness   *witnessSearch
	metrics   *metrics.Metrics
	shortcuts int
}

func newContractionState(g *da.Graph, hopLimit int32, m *metrics.Metrics) *contractionState {
	return &contractionState{
		graph:     g,
		finalized: make([]bool, g.NumNodes()),
		witness:   search.NewDijkstra(g, search.NewHopLimitPolicy(hopLimit)),
		metrics:   m,
	}
}

func (st *contractionState) finalize(v da.Index) {
	st.finalized[v] = true
	st.witness.AddContractedNode(v)
}

// maxOutCost is the largest cost of an arc from v to a non-finalized node other than v.
func (st *contractionState) maxOutCost(v da.Index) da.Weight {
	maxOut := da.Weight(0)
	for _, f := range st.graph.OutArcs(v) {
		t := st.graph.Head(f)
		if st.finalized[t] || t == v {
			continue
		}
		if c := st.graph.Cost(f); c > maxOut {
			maxOut = c
		}
	}
	return maxOut
}

/*
searchWitnesses explores from w, settling every node whose distance is at most bound.
v (the node being contracted) must already be excluded from the search.
*/
func (st *contractionState) searchWitnesses(w da.Index, bound da.Weight) {
	st.witness.Clear()
	st.witness.AddSource(w, 0)
	st.witness.RunBounded(bound)
}

// hasWitness reports whether the last search found a path to t avoiding v of cost at most maxCost.
// a labeled but unsettled node still carries the cost of a real path.
func (st *contractionState) hasWitness(t da.Index, maxCost da.Weight) bool {
	return st.witness.Reached(t) && st.witness.CurrentDist(t) <= maxCost
}

/*
contract adds the shortcuts needed to remove v from the graph: for every in neighbour w and
out neighbour t, a shortcut w->t of cost c(w,v)+c(v,t) unless a witness path w->t avoiding v
of at most that cost exists. an existing arc w->t is reused, and only overwritten when it is
more expensive. returns the number of shortcuts added or updated.
*/
func (st *contractionState) contract(v da.Index) int {
	g := st.graph
	st.witness.AddContractedNode(v)
	maxOut := st.maxOutCost(v)

	added := 0
	for _, e := range g.InArcs(v) {
		w := g.Tail(e)
		if st.finalized[w] || w == v {
			continue
		}
		inCost := g.Cost(e)
		st.searchWitnesses(w, inCost+maxOut)
		if st.metrics != nil {
			st.metrics.WitnessSearches.Inc()
		}

		for _, f := range g.OutArcs(v) {
			t := g.Head(f)
			if st.finalized[t] || t == v || t == w {
				continue
			}
			viaCost := inCost + g.Cost(f)
			if st.hasWitness(t, viaCost) {
				continue
			}

			if existing, ok := g.FindArc(w, t); ok {
				if g.Cost(existing) > viaCost {
					g.SetShortcut(existing, viaCost, e, f)
					added++
				}
				continue
			}
			g.AddShortcut(w, t, viaCost, e, f)
			added++
		}
	}
	st.witness.Clear()

	st.shortcuts += added
	return added
}

/*
edgeDifference simulates contracting v without touching the graph and returns
|shortcuts| - |in arcs| - |out arcs|, counting only arcs to non-finalized nodes.
the witness search here stops below the bound instead of at it.
*/
func (st *contractionState) edgeDifference(v da.Index) int64 {
	g := st.graph
	maxOut := st.maxOutCost(v)

	out := 0
	for _, f := range g.OutArcs(v) {
		if t := g.Head(f); !st.finalized[t] && t != v {
			out++
		}
	}

	st.witness.AddContractedNode(v)
	in, shortcuts := 0, 0
	for _, e := range g.InArcs(v) {
		w := g.Tail(e)
		if st.finalized[w] || w == v {
			continue
		}
		in++
		inCost := g.Cost(e)
		st.searchWitnesses(w, inCost+maxOut-1)

		for _, f := range g.OutArcs(v) {
			t := g.Head(f)
			if st.finalized[t] || t == v || t == w {
				continue
			}
			if !st.hasWitness(t, inCost+g.Cost(f)) {
				shortcuts++
			}
		}
	}
	st.witness.Clear()
	st.witness.RemoveContractedNode(v)

	return int64(shortcuts - in - out)
}

// hubRatio is max / mean over the costs of every arc incident to v, in integer arithmetic.
func (st *contractionState) hubRatio(v da.Index) int64 {
	g := st.graph
	var maxCost, sum, count int64
	for _, arcs := range [][]da.Index{g.OutArcs(v), g.InArcs(v)} {
		for _, a := range arcs {
			c := int64(g.Cost(a))
			sum += c
			count++
			if c > maxCost {
				maxCost = c
			}
		}
	}
	if count == 0 || sum/count == 0 {
		return 0
	}
	return maxCost / (sum / count)
}
