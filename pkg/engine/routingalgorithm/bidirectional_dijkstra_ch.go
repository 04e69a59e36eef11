package routingalgorithm

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
)

// PathUnpacker expands shortcut arcs of a hierarchy into the original arcs they replace.
type PathUnpacker struct {
	ch    ContractedGraph
	stack []da.Index
}

func NewPathUnpacker(ch ContractedGraph) *PathUnpacker {
	return &PathUnpacker{
		ch:    ch,
		stack: make([]da.Index, 0, 64),
	}
}

// Unpack appends the original arcs represented by arc to out, in path order.
func (u *PathUnpacker) Unpack(arc da.Index, out []da.Index) []da.Index {
	g := u.ch.Graph()
	u.stack = append(u.stack[:0], arc)
	for len(u.stack) > 0 {
		a := u.stack[len(u.stack)-1]
		u.stack = u.stack[:len(u.stack)-1]

		first, second, ok := g.Pack(a)
		if !ok {
			out = append(out, a)
			continue
		}
		u.stack = append(u.stack, second, first)
	}
	return out
}

// Path returns the original arcs of the last query answered by q, nil if the target was unreachable.
func (u *PathUnpacker) Path(q *QueryEngine) []da.Index {
	if q.Dist() == da.Unreachable {
		return nil
	}
	fg, bg := u.ch.Forward(), u.ch.Backward()
	path := make([]da.Index, 0)
	for _, a := range q.ForwardPath() {
		path = u.Unpack(fg.ArcRef(a), path)
	}
	for _, a := range q.BackwardPath() {
		path = u.Unpack(bg.ArcRef(a), path)
	}
	return path
}

// PathArcs is Path resolved to arcs of the input graph.
func (u *PathUnpacker) PathArcs(q *QueryEngine) []da.Arc {
	ids := u.Path(q)
	if ids == nil {
		return nil
	}
	g := u.ch.Graph()
	arcs := make([]da.Arc, len(ids))
	for i, id := range ids {
		arcs[i] = g.Arc(id)
	}
	return arcs
}

type RouteAlgorithm struct {
	ch       ContractedGraph
	query    *QueryEngine
	unpacker *PathUnpacker
}

func NewRouteAlgorithm(ch ContractedGraph, m *metrics.Metrics) *RouteAlgorithm {
	rt := &RouteAlgorithm{
		ch:       ch,
		query:    NewQueryEngine(ch, WithQueryMetrics(m)),
		unpacker: NewPathUnpacker(ch),
	}
	return rt
}

// ShortestPathBiDijkstraCH returns the arcs and the cost of a shortest path from from to to.
// an unreachable target gives a nil path and da.Unreachable.
func (rt *RouteAlgorithm) ShortestPathBiDijkstraCH(from, to da.Index) ([]da.Arc, da.Weight, error) {
	dist, err := rt.query.Run(from, to)
	if err != nil {
		return nil, da.Unreachable, err
	}
	path := rt.unpacker.PathArcs(rt.query)
	if rt.query.metrics != nil && path != nil {
		rt.query.metrics.UnpackedPathArcs.Observe(float64(len(path)))
	}
	return path, dist, nil
}

// Hops is the number of original arcs on the path of the last query.
func (rt *RouteAlgorithm) Hops() int {
	return len(rt.unpacker.Path(rt.query))
}
