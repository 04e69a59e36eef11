package routingalgorithm

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/*
dari https://jlazarsfeld.github.io/ch.150.project/sections/8-contraction/
p=0, v=1, q=2, w=3, r=4, f=5

	 p
	  \
	   \
	    10
	     \
		  v -----3----- r
		 /            /
		6            5
	   /    		/
	  q ---5----- w ----15---- f

semua edge bidirectional
*/
func NewGraph() *da.Graph {
	g := da.NewGraph(6)
	addBoth := func(u, v da.Index, cost da.Weight) {
		g.AddArc(u, v, cost)
		g.AddArc(v, u, cost)
	}
	addBoth(0, 1, 10)
	addBoth(1, 4, 3)
	addBoth(1, 2, 6)
	addBoth(2, 3, 5)
	addBoth(3, 4, 5)
	addBoth(3, 5, 15)
	return g
}

func randomGraph(rnd *rand.Rand, n, m int, maxCost int) *da.Graph {
	g := da.NewGraph(n)
	for i := 0; i < m; i++ {
		u := da.Index(rnd.Intn(n))
		v := da.Index(rnd.Intn(n))
		g.AddArc(u, v, da.Weight(rnd.Intn(maxCost)))
	}
	return g
}

func build(t *testing.T, g *da.Graph, opts ...contractor.Option) *contractor.Hierarchy {
	h, err := contractor.Build(g, opts...)
	require.NoError(t, err)
	return h
}

// assertValidPath checks that path is a walk of original arcs from s to t costing dist.
func assertValidPath(t *testing.T, original *da.Graph, path []da.Arc, s, t2 da.Index, dist da.Weight) {
	cur := s
	var total da.Weight
	for _, arc := range path {
		assert.Equal(t, cur, arc.From)
		found := false
		for _, a := range original.OutArcs(arc.From) {
			if original.Head(a) == arc.To && original.Cost(a) == arc.Cost {
				found = true
				break
			}
		}
		assert.True(t, found, "arc %d -> %d (%d) is not in the input graph", arc.From, arc.To, arc.Cost)
		total += arc.Cost
		cur = arc.To
	}
	assert.Equal(t, t2, cur)
	assert.Equal(t, dist, total)
}

func TestShortestPathBidirectionalDijkstraCH(t *testing.T) {
	h := build(t, NewGraph())
	rt := NewRouteAlgorithm(h, nil)

	path, dist, err := rt.ShortestPathBiDijkstraCH(0, 5)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(33), dist)

	// shortest path nya:  P(0) -> V(1) -> R(4) -> W(3) -> F(5)
	expected := []da.Arc{
		da.NewArc(0, 1, 10),
		da.NewArc(1, 4, 3),
		da.NewArc(4, 3, 5),
		da.NewArc(3, 5, 15),
	}
	assert.Equal(t, expected, path)
	assert.Equal(t, 4, rt.Hops())
}

func TestQueryAllPairs(t *testing.T) {
	original := NewGraph()
	h := build(t, original.Clone())
	q := NewQueryEngine(h)
	unpacker := NewPathUnpacker(h)

	for s := da.Index(0); s < 6; s++ {
		want := search.ShortestDistances(original, s)
		for target := da.Index(0); target < 6; target++ {
			dist, err := q.Run(s, target)
			require.NoError(t, err)
			assert.Equal(t, want[target], dist, "query %d -> %d", s, target)
			assertValidPath(t, original, unpacker.PathArcs(q), s, target, dist)
		}
	}
}

func TestQueryDirectedCycle(t *testing.T) {
	// 0 -1-> 1 -2-> 2 -3-> 3 -4-> 4 -5-> 5 -6-> 0
	g := da.NewGraph(6)
	for i := da.Index(0); i < 6; i++ {
		g.AddArc(i, (i+1)%6, da.Weight(i+1))
	}
	h := build(t, g)
	q := NewQueryEngine(h)

	for s := da.Index(0); s < 6; s++ {
		var want da.Weight
		for k := da.Index(0); k < 6; k++ {
			target := (s + k) % 6
			dist, err := q.Run(s, target)
			require.NoError(t, err)
			assert.Equal(t, want, dist, "query %d -> %d", s, target)
			want += da.Weight(target + 1)
		}
	}

	_, err := q.Run(4, 1)
	require.NoError(t, err)
	expected := []da.Arc{
		da.NewArc(4, 5, 5),
		da.NewArc(5, 0, 6),
		da.NewArc(0, 1, 1),
	}
	assert.Equal(t, expected, NewPathUnpacker(h).PathArcs(q))
}

func TestQuerySameNode(t *testing.T) {
	h := build(t, NewGraph())
	q := NewQueryEngine(h)

	dist, err := q.Run(3, 3)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(0), dist)
	assert.Equal(t, da.Index(3), q.MeetingNode())
	assert.Empty(t, NewPathUnpacker(h).Path(q))
}

func TestQueryUnreachable(t *testing.T) {
	// two components {0, 1, 2} and {3, 4}
	g := da.NewGraph(5)
	g.AddArc(0, 1, 4)
	g.AddArc(1, 2, 4)
	g.AddArc(2, 0, 4)
	g.AddArc(3, 4, 1)
	g.AddArc(4, 3, 1)
	h := build(t, g)

	rt := NewRouteAlgorithm(h, nil)
	path, dist, err := rt.ShortestPathBiDijkstraCH(0, 4)
	require.NoError(t, err)
	assert.Equal(t, da.Unreachable, dist)
	assert.Nil(t, path)

	// one way arcs: 2 reaches 0 but not the other way around in one step
	path, dist, err = rt.ShortestPathBiDijkstraCH(2, 1)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(8), dist)
	assert.Equal(t, []da.Arc{da.NewArc(2, 0, 4), da.NewArc(0, 1, 4)}, path)
}

func TestQueryRandomGraphs(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, kind := range []contractor.PriorityKind{contractor.EdgeDifference, contractor.Experimental} {
		for i := 0; i < 4; i++ {
			original := randomGraph(rnd, 50, 200, 30)
			h := build(t, original.Clone(), contractor.WithPriority(kind))
			q := NewQueryEngine(h)
			unpacker := NewPathUnpacker(h)

			for j := 0; j < 10; j++ {
				s := da.Index(rnd.Intn(50))
				want := search.ShortestDistances(original, s)
				for target := da.Index(0); target < 50; target++ {
					dist, err := q.Run(s, target)
					require.NoError(t, err)
					require.Equal(t, want[target], dist, "query %d -> %d", s, target)
					if dist != da.Unreachable {
						assertValidPath(t, original, unpacker.PathArcs(q), s, target, dist)
					}
				}
			}
		}
	}
}

func TestQueryMatchesPlainBidirectionalDijkstra(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	original := randomGraph(rnd, 40, 160, 20)
	h := build(t, original.Clone())
	q := NewQueryEngine(h)

	for i := 0; i < 100; i++ {
		s, target := da.Index(rnd.Intn(40)), da.Index(rnd.Intn(40))
		want, arcs, err := ShortestPathBiDijkstra(original, s, target)
		require.NoError(t, err)

		got, err := q.Run(s, target)
		require.NoError(t, err)
		assert.Equal(t, want, got, "query %d -> %d", s, target)

		if want == da.Unreachable {
			assert.Nil(t, arcs)
			continue
		}
		path := make([]da.Arc, len(arcs))
		for k, a := range arcs {
			path[k] = original.Arc(a)
		}
		assertValidPath(t, original, path, s, target, want)
	}
}

func TestQueryUnitCostsMatchesBFS(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	original := randomGraph(rnd, 60, 180, 10).WithUnitCosts()
	h := build(t, original.Clone())
	q := NewQueryEngine(h)

	for s := da.Index(0); s < 60; s += 7 {
		hops := search.BFSHops(original, s)
		for target := da.Index(0); target < 60; target++ {
			dist, err := q.Run(s, target)
			require.NoError(t, err)
			if hops[target] < 0 {
				assert.Equal(t, da.Unreachable, dist)
			} else {
				assert.Equal(t, da.Weight(hops[target]), dist)
			}
		}
	}
}

func TestRunNewSourceAndTarget(t *testing.T) {
	original := NewGraph()
	h := build(t, original.Clone())
	q := NewQueryEngine(h)

	_, err := q.Run(0, 5)
	require.NoError(t, err)

	// keeps the backward search towards 5
	dist, err := q.RunNewSource(2)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(20), dist)

	// keeps the forward search from 2
	dist, err = q.RunNewTarget(4)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(9), dist)

	for s := da.Index(0); s < 6; s++ {
		want := search.ShortestDistances(original, s)
		dist, err := q.RunNewSource(s)
		require.NoError(t, err)
		assert.Equal(t, want[4], dist)
	}

	// only a target, nothing to run
	q.Reset()
	dist, err = q.RunNewTarget(1)
	require.NoError(t, err)
	assert.Equal(t, da.Unreachable, dist)

	dist, err = q.RunNewSource(0)
	require.NoError(t, err)
	assert.Equal(t, da.Weight(10), dist)
}

func TestQueryNodeOutOfRange(t *testing.T) {
	h := build(t, NewGraph())
	q := NewQueryEngine(h)

	_, err := q.Run(0, 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrNodeOutOfRange))
	assert.Equal(t, util.ErrBadInput, util.CodeOf(err))

	_, err = q.RunNewSource(-1)
	assert.True(t, errors.Is(err, util.ErrNodeOutOfRange))

	_, _, err = ShortestPathBiDijkstra(NewGraph(), 7, 0)
	assert.True(t, errors.Is(err, util.ErrNodeOutOfRange))
}

func TestQueryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	g := NewGraph()
	g.AddNode()
	h := build(t, g)
	rt := NewRouteAlgorithm(h, m)

	_, _, err := rt.ShortestPathBiDijkstraCH(0, 5)
	require.NoError(t, err)
	_, _, err = rt.ShortestPathBiDijkstraCH(0, 6)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues(metrics.ResultFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues(metrics.ResultUnreachable)))
	assert.Equal(t, uint64(2), histogramCount(t, m.QuerySettled))
	assert.Equal(t, uint64(1), histogramCount(t, m.UnpackedPathArcs))
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	var out dto.Metric
	require.NoError(t, h.Write(&out))
	return out.GetHistogram().GetSampleCount()
}
