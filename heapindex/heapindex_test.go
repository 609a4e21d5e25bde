package heapindex_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/heapindex"
)

func TestHeapSortsByKey(t *testing.T) {
	key := []int{5, 1, 4, 2, 3}
	h := heapindex.New(len(key), 4, func(a, b int) bool { return key[a] < key[b] })
	for i := range key {
		h.Push(i)
	}
	require.Equal(t, 5, h.Len())

	var order []int
	for h.Len() > 0 {
		id := h.Pop()
		order = append(order, key[id])
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestHeapFixAfterKeyChange(t *testing.T) {
	key := []int64{10, 20, 30}
	h := heapindex.New(3, 2, func(a, b int) bool { return key[a] < key[b] })
	h.Push(0)
	h.Push(1)
	h.Push(2)
	assert.Equal(t, 0, h.Peek())

	key[0] = 100
	h.Fix(0)
	assert.Equal(t, 1, h.Peek())
}

func TestHeapRemove(t *testing.T) {
	key := []int{1, 2, 3}
	h := heapindex.New(3, 2, func(a, b int) bool { return key[a] < key[b] })
	for i := range key {
		h.Push(i)
	}
	h.Remove(0)
	assert.False(t, h.Contains(0))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Peek())
}

func TestHeapIDs(t *testing.T) {
	key := []int{1, 2, 3}
	h := heapindex.New(3, 2, func(a, b int) bool { return key[a] < key[b] })
	for i := range key {
		h.Push(i)
	}
	assert.ElementsMatch(t, []int{0, 1, 2}, h.IDs())
}

func TestHeapRandomizedAgainstSort(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := 1 + r.Intn(50)
		key := make([]int, n)
		for i := range key {
			key[i] = r.Intn(1000)
		}
		h := heapindex.New(n, 4, func(a, b int) bool { return key[a] < key[b] })
		for i := 0; i < n; i++ {
			h.Push(i)
		}
		prev := -1
		for h.Len() > 0 {
			id := h.Pop()
			assert.GreaterOrEqual(t, key[id], prev)
			prev = key[id]
		}
	}
}
