package datastructure_test

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {
	return min + rand.Intn(max-min)
}

func TestMinHeapInsertExtractMin(t *testing.T) {
	n := 10000
	pq := datastructure.NewMinHeap[int64](n)

	for i := 0; i < n; i++ {
		pq.Insert(datastructure.PriorityQueueNode[int64]{Rank: int64(generateRandomInteger(0, 10000)), Item: datastructure.Index(i)})
	}
	assert.Equal(t, n, pq.Size())

	prevItem, err := pq.ExtractMin()
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		item, err := pq.ExtractMin()
		require.NoError(t, err)
		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}

	_, err = pq.ExtractMin()
	assert.ErrorIs(t, err, datastructure.ErrEmptyHeap)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	n := 1000
	pq := datastructure.NewMinHeap[int64](n)

	for i := 0; i < n; i++ {
		pq.Insert(datastructure.PriorityQueueNode[int64]{Rank: int64(generateRandomInteger(100, 10000)), Item: datastructure.Index(i)})
	}
	for i := 0; i < n; i += 100 {
		err := pq.DecreaseKey(datastructure.PriorityQueueNode[int64]{Rank: int64(i / 100), Item: datastructure.Index(i)})
		require.NoError(t, err)
	}

	for i := 0; i < n; i += 100 {
		item, err := pq.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, datastructure.Index(i), item.Item)
		assert.Equal(t, int64(i/100), item.Rank)
	}

	err := pq.DecreaseKey(datastructure.PriorityQueueNode[int64]{Rank: 0, Item: 0})
	assert.ErrorIs(t, err, datastructure.ErrNotInHeap)
}

func TestMinHeapUpdateAndClear(t *testing.T) {
	pq := datastructure.NewMinHeap[int64](4)
	pq.Update(datastructure.PriorityQueueNode[int64]{Rank: 5, Item: 0})
	pq.Update(datastructure.PriorityQueueNode[int64]{Rank: 7, Item: 1})
	pq.Update(datastructure.PriorityQueueNode[int64]{Rank: 9, Item: 2})

	// increase key of the current min
	pq.Update(datastructure.PriorityQueueNode[int64]{Rank: 8, Item: 0})
	min, err := pq.GetMin()
	require.NoError(t, err)
	assert.Equal(t, datastructure.Index(1), min.Item)

	rank, ok := pq.Rank(0)
	assert.True(t, ok)
	assert.Equal(t, int64(8), rank)

	pq.Clear()
	assert.Equal(t, 0, pq.Size())
	assert.False(t, pq.Contains(0))
	assert.False(t, pq.Contains(2))

	pq.Insert(datastructure.PriorityQueueNode[int64]{Rank: 1, Item: 3})
	assert.True(t, pq.Contains(3))
}
