package search

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
)

// Graph is the read view a search needs. both da.Graph and da.StaticGraph satisfy it.
type Graph interface {
	NumNodes() int
	OutArcs(v da.Index) []da.Index
	Head(a da.Index) da.Index
	Cost(a da.Index) da.Weight
}

type nodeState uint8

const (
	unseen nodeState = iota
	labeled
	settled
)

/*
Dijkstra is a reusable label setting search over G.
scratch state is allocated once; Clear only resets the nodes touched since the previous Clear,
so a search that explores k nodes costs O(k log k) regardless of the graph size.
costs must be non-negative.
*/
type Dijkstra[G Graph, P Policy] struct {
	graph  G
	policy P

	heap     *da.MinHeap[da.Weight]
	dist     []da.Weight
	state    []nodeState
	excluded []bool
	touched  []da.Index
	settled  int
}

func NewDijkstra[G Graph, P Policy](graph G, policy P) *Dijkstra[G, P] {
	n := graph.NumNodes()
	policy.Grow(n)
	return &Dijkstra[G, P]{
		graph:    graph,
		policy:   policy,
		heap:     da.NewMinHeap[da.Weight](n),
		dist:     make([]da.Weight, n),
		state:    make([]nodeState, n),
		excluded: make([]bool, n),
		touched:  make([]da.Index, 0, 64),
	}
}

func (d *Dijkstra[G, P]) Policy() P {
	return d.policy
}

func (d *Dijkstra[G, P]) touch(v da.Index) {
	if d.state[v] == unseen {
		d.touched = append(d.touched, v)
	}
}

// AddSource labels v with dist unless it already has a label <= dist.
func (d *Dijkstra[G, P]) AddSource(v da.Index, dist da.Weight) {
	switch d.state[v] {
	case settled:
		return
	case labeled:
		if d.dist[v] <= dist {
			return
		}
		d.dist[v] = dist
		d.heap.DecreaseKey(da.PriorityQueueNode[da.Weight]{Rank: dist, Item: v})
	default:
		d.touch(v)
		d.state[v] = labeled
		d.dist[v] = dist
		d.heap.Insert(da.PriorityQueueNode[da.Weight]{Rank: dist, Item: v})
	}
	d.policy.Labeled(da.INVALID_INDEX, v, da.INVALID_INDEX)
}

// NextNode peeks the labeled node with the smallest tentative distance.
func (d *Dijkstra[G, P]) NextNode() (da.Index, bool) {
	min, err := d.heap.GetMin()
	if err != nil {
		return da.INVALID_INDEX, false
	}
	return min.Item, true
}

// NextDist is the tentative distance of NextNode, or INF_WEIGHT when the frontier is empty.
func (d *Dijkstra[G, P]) NextDist() da.Weight {
	min, err := d.heap.GetMin()
	if err != nil {
		return da.INF_WEIGHT
	}
	return min.Rank
}

func (d *Dijkstra[G, P]) Empty() bool {
	return d.heap.Size() == 0
}

// ProcessNextNode settles the frontier minimum and relaxes its out arcs.
func (d *Dijkstra[G, P]) ProcessNextNode() (da.Index, bool) {
	min, err := d.heap.ExtractMin()
	if err != nil {
		return da.INVALID_INDEX, false
	}
	u := min.Item
	d.state[u] = settled
	d.settled++

	if !d.policy.CanExpand(u) {
		return u, true
	}

	du := d.dist[u]
	for _, arc := range d.graph.OutArcs(u) {
		v := d.graph.Head(arc)
		if d.excluded[v] || d.state[v] == settled {
			continue
		}
		nd := du + d.graph.Cost(arc)
		if d.state[v] == labeled {
			if nd >= d.dist[v] {
				continue
			}
			d.dist[v] = nd
			d.heap.DecreaseKey(da.PriorityQueueNode[da.Weight]{Rank: nd, Item: v})
		} else {
			d.touch(v)
			d.state[v] = labeled
			d.dist[v] = nd
			d.heap.Insert(da.PriorityQueueNode[da.Weight]{Rank: nd, Item: v})
		}
		d.policy.Labeled(u, v, arc)
	}
	return u, true
}

// Run settles nodes until the frontier is empty.
func (d *Dijkstra[G, P]) Run() {
	for {
		if _, ok := d.ProcessNextNode(); !ok {
			return
		}
	}
}

// RunBounded settles nodes while their distance is at most bound.
func (d *Dijkstra[G, P]) RunBounded(bound da.Weight) {
	for !d.Empty() && d.NextDist() <= bound {
		d.ProcessNextNode()
	}
}

func (d *Dijkstra[G, P]) Processed(v da.Index) bool {
	return d.state[v] == settled
}

func (d *Dijkstra[G, P]) Reached(v da.Index) bool {
	return d.state[v] != unseen
}

// CurrentDist is the settled distance of v if processed, else its tentative distance.
// the value is meaningless when Reached(v) is false.
func (d *Dijkstra[G, P]) CurrentDist(v da.Index) da.Weight {
	return d.dist[v]
}

// Dist returns the distance of v, or Unreachable when v was never labeled.
func (d *Dijkstra[G, P]) Dist(v da.Index) da.Weight {
	if d.state[v] == unseen {
		return da.Unreachable
	}
	return d.dist[v]
}

func (d *Dijkstra[G, P]) SettledCount() int {
	return d.settled
}

func (d *Dijkstra[G, P]) Clear() {
	d.heap.Clear()
	for _, v := range d.touched {
		d.state[v] = unseen
		d.policy.Reset(v)
	}
	d.touched = d.touched[:0]
	d.settled = 0
}

// AddContractedNode excludes v from relaxation until RemoveContractedNode(v).
func (d *Dijkstra[G, P]) AddContractedNode(v da.Index) {
	d.excluded[v] = true
}

func (d *Dijkstra[G, P]) RemoveContractedNode(v da.Index) {
	d.excluded[v] = false
}

func (d *Dijkstra[G, P]) IsContracted(v da.Index) bool {
	return d.excluded[v]
}
