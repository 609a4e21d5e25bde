package indexedset_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/setcoversolver/indexedset"
)

func TestSetAddRemoveContains(t *testing.T) {
	s := indexedset.New(5)
	assert.True(t, s.Add(2))
	assert.False(t, s.Add(2))
	assert.True(t, s.Contains(2))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Add(4))
	assert.True(t, s.Remove(2))
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Remove(2))
}

func TestSetElementsAndAbsent(t *testing.T) {
	s := indexedset.New(5)
	s.Add(0)
	s.Add(3)

	got := append([]int(nil), s.Elements()...)
	sort.Ints(got)
	assert.Equal(t, []int{0, 3}, got)

	var absent []int
	s.ForEachAbsent(func(id int) { absent = append(absent, id) })
	assert.Equal(t, []int{1, 2, 4}, absent)
}

func TestMap(t *testing.T) {
	m := indexedset.NewMap[int64](3)
	assert.True(t, m.AddWithValue(1, 42))
	assert.EqualValues(t, 42, m.Get(1))
	m.SetValue(1, 7)
	assert.EqualValues(t, 7, m.Get(1))
	assert.True(t, m.Contains(1))
}
