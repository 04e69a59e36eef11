package routingalgorithm

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

/*
ShortestPathBiDijkstra runs a plain bidirectional dijkstra on g, forward over out arcs from `from`
and backward over in arcs from `to`. it does not need a hierarchy and is used to verify query answers.
returns the distance and the arcs of g on the path, or da.Unreachable and nil.
*/
func ShortestPathBiDijkstra(g *da.Graph, from, to da.Index) (da.Weight, []da.Index, error) {
	if !g.ValidNode(from) || !g.ValidNode(to) {
		return da.Unreachable, nil, util.WrapErrorf(util.ErrNodeOutOfRange, util.ErrBadInput,
			"query %d -> %d, graph has %d nodes", from, to, g.NumNodes())
	}
	if from == to {
		return 0, []da.Index{}, nil
	}
	n := g.NumNodes()
	forwQ := da.NewMinHeap[da.Weight](n)
	backQ := da.NewMinHeap[da.Weight](n)

	df := map[da.Index]da.Weight{from: 0}
	db := map[da.Index]da.Weight{to: 0}
	cameFromf := map[da.Index]da.Index{from: da.INVALID_INDEX}
	cameFromb := map[da.Index]da.Index{to: da.INVALID_INDEX}

	forwQ.Insert(da.PriorityQueueNode[da.Weight]{Rank: 0, Item: from})
	backQ.Insert(da.PriorityQueueNode[da.Weight]{Rank: 0, Item: to})

	estimate := da.INF_WEIGHT
	bestCommonVertex := da.INVALID_INDEX

	frontFinished, backFinished := false, false
	frontier, otherFrontier := forwQ, backQ
	turnF := true
	for {
		if forwQ.Size() == 0 {
			frontFinished = true
		}
		if backQ.Size() == 0 {
			backFinished = true
		}
		if frontFinished && backFinished {
			break
		}

		smallest, err := frontier.GetMin()
		if err != nil || smallest.Rank >= estimate {
			// nothing left on this side can improve the best candidate path
			if turnF {
				frontFinished = true
			} else {
				backFinished = true
			}
		} else {
			node, _ := frontier.ExtractMin()
			if turnF {
				relax(g, node.Item, false, df, db, cameFromf, frontier, &estimate, &bestCommonVertex)
			} else {
				relax(g, node.Item, true, db, df, cameFromb, frontier, &estimate, &bestCommonVertex)
			}
		}

		otherFinished := backFinished
		if !turnF {
			otherFinished = frontFinished
		}
		if !otherFinished {
			frontier, otherFrontier = otherFrontier, frontier
			turnF = !turnF
		}
	}

	if bestCommonVertex == da.INVALID_INDEX {
		return da.Unreachable, nil, nil
	}
	return estimate, createPath(g, bestCommonVertex, cameFromf, cameFromb), nil
}

func relax(g *da.Graph, u da.Index, reverse bool, dist, otherDist map[da.Index]da.Weight,
	cameFrom map[da.Index]da.Index, frontier *da.MinHeap[da.Weight], estimate *da.Weight, best *da.Index) {
	arcs := g.OutArcs(u)
	if reverse {
		arcs = g.InArcs(u)
	}
	for _, a := range arcs {
		next := g.Head(a)
		if reverse {
			next = g.Tail(a)
		}
		newCost := dist[u] + g.Cost(a)
		old, ok := dist[next]
		if ok && newCost >= old {
			continue
		}
		dist[next] = newCost
		cameFrom[next] = a
		frontier.Update(da.PriorityQueueNode[da.Weight]{Rank: newCost, Item: next})

		if od, ok := otherDist[next]; ok && newCost+od < *estimate {
			*estimate = newCost + od
			*best = next
		}
	}
}

func createPath(g *da.Graph, mid da.Index, cameFromf, cameFromb map[da.Index]da.Index) []da.Index {
	path := make([]da.Index, 0)
	for v := mid; cameFromf[v] != da.INVALID_INDEX; v = g.Tail(cameFromf[v]) {
		path = append(path, cameFromf[v])
	}
	util.ReverseInPlace(path)
	for v := mid; cameFromb[v] != da.INVALID_INDEX; v = g.Head(cameFromb[v]) {
		path = append(path, cameFromb[v])
	}
	return path
}
