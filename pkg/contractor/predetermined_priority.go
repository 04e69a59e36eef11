package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

// PredeterminedPriority replays a recorded contraction order.
type PredeterminedPriority struct {
	order    []da.Index
	numNodes int
	next     int
}

func NewPredeterminedPriority(order []da.Index, numNodes int) *PredeterminedPriority {
	return &PredeterminedPriority{
		order:    order,
		numNodes: numNodes,
	}
}

func (p *PredeterminedPriority) Init() error {
	if len(p.order) != p.numNodes {
		return util.WrapErrorf(util.ErrInvalidOrder, util.ErrBadInput,
			"order has %d nodes, graph has %d", len(p.order), p.numNodes)
	}
	if !util.IsPermutation(p.order, p.numNodes) {
		return util.WrapErrorf(util.ErrInvalidOrder, util.ErrBadInput, "order is not a permutation of the graph nodes")
	}
	p.next = 0
	return nil
}

func (p *PredeterminedPriority) NextNode() (da.Index, bool) {
	if p.next >= len(p.order) {
		return da.INVALID_INDEX, false
	}
	return p.order[p.next], true
}

func (p *PredeterminedPriority) Finalize(da.Index) {
	p.next++
}
