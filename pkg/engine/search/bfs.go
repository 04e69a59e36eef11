package search

import da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"

// BFSHops returns the number of arcs on a fewest-arc path from source to every node, -1 if unreachable.
func BFSHops[G Graph](g G, source da.Index) []int32 {
	hops := make([]int32, g.NumNodes())
	for i := range hops {
		hops[i] = -1
	}
	hops[source] = 0
	queue := make([]da.Index, 0, 64)
	queue = append(queue, source)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, arc := range g.OutArcs(u) {
			v := g.Head(arc)
			if hops[v] >= 0 {
				continue
			}
			hops[v] = hops[u] + 1
			queue = append(queue, v)
		}
	}
	return hops
}

// ShortestDistances runs a plain Dijkstra from source over the whole graph.
func ShortestDistances[G Graph](g G, source da.Index) []da.Weight {
	d := NewDijkstra[G, PlainPolicy](g, PlainPolicy{})
	d.AddSource(source, 0)
	d.Run()
	dist := make([]da.Weight, g.NumNodes())
	for v := range dist {
		dist[v] = d.Dist(da.Index(v))
	}
	return dist
}
