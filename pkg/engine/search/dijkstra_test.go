package search

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

/*
0 -1-> 1 -1-> 2 -1-> 3 -1-> 4 -1-> 5 -1-> 6
0 ---------------20--------------------> 6
*/
func newChainGraph() *da.Graph {
	g := da.NewGraph(7)
	for i := 0; i < 6; i++ {
		g.AddArc(da.Index(i), da.Index(i+1), 1)
	}
	g.AddArc(0, 6, 20)
	return g
}

func TestDijkstraPlain(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, PlainPolicy{})
	d.AddSource(0, 0)

	v, ok := d.NextNode()
	assert.True(t, ok)
	assert.Equal(t, da.Index(0), v)

	d.Run()
	for i := 0; i < 7; i++ {
		assert.True(t, d.Processed(da.Index(i)))
		assert.Equal(t, da.Weight(i), d.CurrentDist(da.Index(i)))
	}
	assert.Equal(t, 7, d.SettledCount())

	_, ok = d.ProcessNextNode()
	assert.False(t, ok)
}

func TestDijkstraClearAndReuse(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, PlainPolicy{})
	d.AddSource(0, 0)
	d.RunBounded(2)
	assert.True(t, d.Processed(2))
	assert.False(t, d.Processed(3))
	assert.True(t, d.Reached(3))

	d.Clear()
	for i := 0; i < 7; i++ {
		assert.False(t, d.Reached(da.Index(i)))
		assert.Equal(t, da.Unreachable, d.Dist(da.Index(i)))
	}
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.SettledCount())

	d.AddSource(3, 0)
	d.Run()
	assert.Equal(t, da.Weight(3), d.Dist(6))
	assert.Equal(t, da.Unreachable, d.Dist(0))
}

func TestDijkstraAddSourceKeepsSmallerLabel(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, PlainPolicy{})
	d.AddSource(1, 5)
	d.AddSource(1, 7)
	assert.Equal(t, da.Weight(5), d.CurrentDist(1))
	d.AddSource(1, 2)
	assert.Equal(t, da.Weight(2), d.CurrentDist(1))
}

func TestDijkstraContractedNode(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, PlainPolicy{})
	d.AddContractedNode(3)
	assert.True(t, d.IsContracted(3))

	d.AddSource(0, 0)
	d.Run()
	assert.False(t, d.Reached(3))
	assert.Equal(t, da.Weight(20), d.Dist(6))

	d.Clear()
	d.RemoveContractedNode(3)
	d.AddSource(0, 0)
	d.Run()
	assert.Equal(t, da.Weight(6), d.Dist(6))
}

func TestDijkstraHopLimit(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, NewHopLimitPolicy(DefaultHopLimit))
	d.AddSource(0, 0)
	d.Run()

	assert.Equal(t, int32(5), d.Policy().Hops(5))
	// node 5 sits at the hop limit, so 6 is only reached over the direct arc
	assert.Equal(t, da.Weight(20), d.Dist(6))

	d.Clear()
	d.AddSource(1, 0)
	d.Run()
	assert.Equal(t, da.Weight(5), d.Dist(6))
}

func TestDijkstraPredecessors(t *testing.T) {
	g := newChainGraph()
	d := NewDijkstra(g, NewPredecessorPolicy())
	d.AddSource(0, 0)
	d.Run()

	pred := d.Policy()
	assert.Equal(t, da.INVALID_INDEX, pred.PredArc(0))

	path := make([]da.Index, 0)
	for v := da.Index(6); pred.PredArc(v) != da.INVALID_INDEX; v = g.Tail(pred.PredArc(v)) {
		path = append(path, pred.PredArc(v))
	}
	assert.Equal(t, []da.Index{5, 4, 3, 2, 1, 0}, path)

	d.Clear()
	assert.Equal(t, da.INVALID_INDEX, pred.PredArc(6))
}

func TestBFSHops(t *testing.T) {
	g := newChainGraph()
	hops := BFSHops(g, 0)
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5, 1}, hops)

	hops = BFSHops(g, 6)
	assert.Equal(t, int32(-1), hops[0])
	assert.Equal(t, int32(0), hops[6])
}

func TestShortestDistances(t *testing.T) {
	g := newChainGraph()
	dist := ShortestDistances(g, 2)
	assert.Equal(t, []da.Weight{da.Unreachable, da.Unreachable, 0, 1, 2, 3, 4}, dist)
}
