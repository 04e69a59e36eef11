package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

// StronglyConnectedComponents runs Kosaraju's algorithm on g. components come in topological
// order of the condensation graph, so no arc leads from a later component into an earlier one.
func StronglyConnectedComponents(g *da.Graph) [][]da.Index {
	n := g.NumNodes()
	components := make([][]da.Index, 0)

	order := make([]da.Index, 0, n)
	visited := make([]bool, n)

	for i := 0; i < n; i++ {
		if !visited[i] {
			dfs(g, da.Index(i), &order, visited, false)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)

	for _, v := range order {
		if !visited[v] {
			component := make([]da.Index, 0)
			dfs(g, v, &component, visited, true)
			components = append(components, component)
		}
	}
	return components
}

// ComponentIDs maps every node to the index of its strongly connected component.
func ComponentIDs(g *da.Graph) []int32 {
	ids := make([]int32, g.NumNodes())
	for i, component := range StronglyConnectedComponents(g) {
		for _, v := range component {
			ids[v] = int32(i)
		}
	}
	return ids
}

type dfsFrame struct {
	v    da.Index
	next int
}

// dfs appends every node reachable from root to output in postorder. it keeps its own stack so
// path length is not bounded by the goroutine stack.
func dfs(g *da.Graph, root da.Index, output *[]da.Index, visited []bool, reversed bool) {
	stack := []dfsFrame{{v: root}}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		arcs := g.OutArcs(top.v)
		if reversed {
			arcs = g.InArcs(top.v)
		}

		pushed := false
		for top.next < len(arcs) {
			a := arcs[top.next]
			top.next++
			to := g.Head(a)
			if reversed {
				to = g.Tail(a)
			}
			if !visited[to] {
				visited[to] = true
				stack = append(stack, dfsFrame{v: to})
				pushed = true
				break
			}
		}
		if !pushed {
			*output = append(*output, top.v)
			stack = stack[:len(stack)-1]
		}
	}
}
