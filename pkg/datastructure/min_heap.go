package datastructure

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrEmptyHeap = errors.New("heap is empty")
	ErrNotInHeap = errors.New("item not in heap")
)

type PriorityQueueNode[K constraints.Ordered] struct {
	Rank K
	Item Index
}

/*
MinHeap is an indexed binary min-heap over node ids in [0, capacity).
pos[item] is the slot of item in heap, or -1.
*/
type MinHeap[K constraints.Ordered] struct {
	heap []PriorityQueueNode[K]
	pos  []int32
}

func NewMinHeap[K constraints.Ordered](capacity int) *MinHeap[K] {
	pos := make([]int32, capacity)
	for i := range pos {
		pos[i] = -1
	}
	return &MinHeap[K]{
		heap: make([]PriorityQueueNode[K], 0),
		pos:  pos,
	}
}

func parent(i int) int {
	return (i - 1) / 2
}

func leftChild(i int) int {
	return 2*i + 1
}

func (h *MinHeap[K]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = int32(i)
	h.pos[h.heap[j].Item] = int32(j)
}

func (h *MinHeap[K]) heapifyUp(i int) {
	for i > 0 && h.heap[i].Rank < h.heap[parent(i)].Rank {
		h.swap(i, parent(i))
		i = parent(i)
	}
}

func (h *MinHeap[K]) heapifyDown(i int) {
	n := len(h.heap)
	for {
		smallest := i
		l := leftChild(i)
		r := l + 1
		if l < n && h.heap[l].Rank < h.heap[smallest].Rank {
			smallest = l
		}
		if r < n && h.heap[r].Rank < h.heap[smallest].Rank {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *MinHeap[K]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[K]) Contains(item Index) bool {
	return h.pos[item] >= 0
}

func (h *MinHeap[K]) Rank(item Index) (K, bool) {
	p := h.pos[item]
	if p < 0 {
		var zero K
		return zero, false
	}
	return h.heap[p].Rank, true
}

func (h *MinHeap[K]) Insert(node PriorityQueueNode[K]) {
	h.heap = append(h.heap, node)
	i := len(h.heap) - 1
	h.pos[node.Item] = int32(i)
	h.heapifyUp(i)
}

func (h *MinHeap[K]) GetMin() (PriorityQueueNode[K], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[K]{}, ErrEmptyHeap
	}
	return h.heap[0], nil
}

func (h *MinHeap[K]) ExtractMin() (PriorityQueueNode[K], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[K]{}, ErrEmptyHeap
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.pos[root.Item] = -1
	if last > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

func (h *MinHeap[K]) DecreaseKey(node PriorityQueueNode[K]) error {
	p := h.pos[node.Item]
	if p < 0 {
		return ErrNotInHeap
	}
	h.heap[p].Rank = node.Rank
	h.heapifyUp(int(p))
	return nil
}

// Update sets the rank of item, inserting it if absent. the rank may go up or down.
func (h *MinHeap[K]) Update(node PriorityQueueNode[K]) {
	p := h.pos[node.Item]
	if p < 0 {
		h.Insert(node)
		return
	}
	old := h.heap[p].Rank
	h.heap[p].Rank = node.Rank
	if node.Rank < old {
		h.heapifyUp(int(p))
	} else {
		h.heapifyDown(int(p))
	}
}

// Clear empties the heap in time proportional to its size.
func (h *MinHeap[K]) Clear() {
	for _, node := range h.heap {
		h.pos[node.Item] = -1
	}
	h.heap = h.heap[:0]
}
