package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"golang.org/x/exp/slices"
)

func sortedArcs(sg *da.StaticGraph) []da.Arc {
	arcs := make([]da.Arc, 0, sg.NumArcs())
	for a := 0; a < sg.NumArcs(); a++ {
		arcs = append(arcs, da.NewArc(sg.Tail(da.Index(a)), sg.Head(da.Index(a)), sg.Cost(da.Index(a))))
	}
	slices.SortFunc(arcs, func(x, y da.Arc) int {
		switch {
		case x.From != y.From:
			return int(x.From) - int(y.From)
		case x.To != y.To:
			return int(x.To) - int(y.To)
		case x.Cost < y.Cost:
			return -1
		case x.Cost > y.Cost:
			return 1
		}
		return 0
	})
	return arcs
}

// Equivalent reports whether a and b have the same forward and backward arcs with the same costs.
func Equivalent(a, b *Hierarchy) bool {
	if a.NumNodes() != b.NumNodes() {
		return false
	}
	return slices.Equal(sortedArcs(a.forward), sortedArcs(b.forward)) &&
		slices.Equal(sortedArcs(a.backward), sortedArcs(b.backward))
}
