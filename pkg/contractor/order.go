package contractor

import (
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"golang.org/x/exp/slices"
)

// Order is the contraction order of a hierarchy. it is either OwnedOrder or BorrowedOrder.
type Order interface {
	Nodes() []da.Index
	isOrder()
}

// OwnedOrder was computed by the build that holds it.
type OwnedOrder struct {
	nodes []da.Index
}

func (o OwnedOrder) Nodes() []da.Index {
	return o.nodes
}

func (OwnedOrder) isOrder() {}

// BorrowedOrder was supplied by the caller through WithOrder and is only read.
type BorrowedOrder struct {
	nodes []da.Index
}

func (o BorrowedOrder) Nodes() []da.Index {
	return o.nodes
}

func (BorrowedOrder) isOrder() {}

// CloneOrder copies o so the caller may modify it freely.
func CloneOrder(o Order) []da.Index {
	if o == nil {
		return nil
	}
	return slices.Clone(o.Nodes())
}
