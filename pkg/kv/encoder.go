package kv

import (
	"github.com/kelindar/binary"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
)

// orderRecord is what gets stored per graph: the order, the shape of the graph it was built on
// and the witness hop limit it was built with.
type orderRecord struct {
	NumNodes int32
	NumArcs  int32
	HopLimit int32
	Order    []int32
}

func newOrderRecord(o OrderEntry) orderRecord {
	rec := orderRecord{
		NumNodes: int32(o.NumNodes),
		NumArcs:  int32(o.NumArcs),
		HopLimit: o.HopLimit,
		Order:    make([]int32, len(o.Order)),
	}
	for i, v := range o.Order {
		rec.Order[i] = int32(v)
	}
	return rec
}

func (r orderRecord) entry(name string) OrderEntry {
	order := make([]da.Index, len(r.Order))
	for i, v := range r.Order {
		order[i] = da.Index(v)
	}
	return OrderEntry{
		Name:     name,
		NumNodes: int(r.NumNodes),
		NumArcs:  int(r.NumArcs),
		HopLimit: r.HopLimit,
		Order:    order,
	}
}

func encodeOrder(rec orderRecord) ([]byte, error) {
	bb, err := binary.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeOrder(bbCompressed []byte) (orderRecord, error) {
	var rec orderRecord
	bb, err := decompress(bbCompressed)
	if err != nil {
		return rec, err
	}
	err = binary.Unmarshal(bb, &rec)
	return rec, err
}
