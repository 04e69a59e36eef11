package datastructure

import "math"

type Index int32

type Weight int64

const (
	INVALID_INDEX Index = -1

	// Unreachable is the distance reported when no path exists.
	Unreachable Weight = -1

	INF_WEIGHT Weight = math.MaxInt64 / 4
)

type Arc struct {
	From Index
	To   Index
	Cost Weight
}

func NewArc(from, to Index, cost Weight) Arc {
	return Arc{
		From: from,
		To:   to,
		Cost: cost,
	}
}
