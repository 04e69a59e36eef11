package contractor

import (
	"fmt"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
)

// Priority decides the contraction order.
type Priority interface {
	Init() error
	// NextNode returns the next node to contract, false once every node was handed out.
	NextNode() (da.Index, bool)
	// Finalize is called after v has been contracted.
	Finalize(v da.Index)
}

type PriorityKind string

const (
	EdgeDifference PriorityKind = "edge-difference"
	Experimental   PriorityKind = "experimental"
	Predetermined  PriorityKind = "predetermined"
)

func ParsePriorityKind(s string) (PriorityKind, error) {
	switch PriorityKind(s) {
	case EdgeDifference, Experimental, Predetermined:
		return PriorityKind(s), nil
	case "":
		return EdgeDifference, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

/*
Heuristics weights the terms of the node priority:

	EdgeDiff*edgeDifference + Deleted*deletedNeighbors + SearchSpace*searchSpace [+ Hub*hubRatio]

the defaults are the values from Geisberger et al. hub only applies to the experimental priority.
*/
type Heuristics struct {
	EdgeDiff    int64
	Deleted     int64
	SearchSpace int64
	Hub         int64
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		EdgeDiff:    190,
		Deleted:     120,
		SearchSpace: 1,
		Hub:         20,
	}
}
