package solution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/solution"
)

// buildSample builds a small fixed instance: set0={0,1} cost1,
// set1={2,3} cost1, set2={0,1,2,3} cost3.
func buildSample(t *testing.T) *core.Instance {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(3))
	require.NoError(t, b.AddElements(4))
	require.NoError(t, b.SetCost(0, 1))
	require.NoError(t, b.SetCost(1, 1))
	require.NoError(t, b.SetCost(2, 3))
	for _, a := range [][2]int{{0, 0}, {0, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 1}, {2, 2}, {2, 3}} {
		require.NoError(t, b.AddArc(a[0], a[1]))
	}
	ins, err := b.Build()
	require.NoError(t, err)
	return ins
}

func TestAddRemoveIncrementalCost(t *testing.T) {
	ins := buildSample(t)
	s := solution.New(ins)
	assert.False(t, s.Feasible())

	s.Add(0)
	assert.EqualValues(t, 1, s.Cost())
	assert.False(t, s.Feasible())
	assert.EqualValues(t, 1, s.CoverCount(0))
	assert.EqualValues(t, 0, s.CoverCount(2))

	s.Add(1)
	assert.EqualValues(t, 2, s.Cost())
	assert.True(t, s.Feasible())

	s.Remove(0)
	assert.False(t, s.Feasible())
	assert.EqualValues(t, 1, s.Cost())
}

func TestOptimalPairBeatsSingleton(t *testing.T) {
	ins := buildSample(t)
	s := solution.New(ins)
	s.Add(2)
	assert.True(t, s.Feasible())
	assert.EqualValues(t, 3, s.Cost())

	s2 := solution.New(ins)
	s2.Add(0)
	s2.Add(1)
	assert.True(t, s2.Feasible())
	assert.EqualValues(t, 2, s2.Cost())
	assert.Less(t, s2.Cost(), s.Cost())
}

func TestDoubleAddPanics(t *testing.T) {
	ins := buildSample(t)
	s := solution.New(ins)
	s.Add(0)
	assert.Panics(t, func() { s.Add(0) })
}

func TestRemoveAbsentPanics(t *testing.T) {
	ins := buildSample(t)
	s := solution.New(ins)
	assert.Panics(t, func() { s.Remove(0) })
}

func TestCloneIndependence(t *testing.T) {
	ins := buildSample(t)
	s := solution.New(ins)
	s.Add(0)
	c := s.Clone()
	c.Add(1)
	assert.False(t, s.Contains(1))
	assert.True(t, c.Contains(1))
	assert.NotEqual(t, s.Cost(), c.Cost())
}

func TestComponentBookkeeping(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(2))
	require.NoError(t, b.AddElements(4))
	require.NoError(t, b.SetCost(0, 1))
	require.NoError(t, b.SetCost(1, 1))
	require.NoError(t, b.AddArc(0, 0))
	require.NoError(t, b.AddArc(0, 1))
	require.NoError(t, b.AddArc(1, 2))
	require.NoError(t, b.AddArc(1, 3))
	ins, err := b.Build()
	require.NoError(t, err)
	require.Len(t, ins.Components(), 2)

	s := solution.New(ins)
	s.Add(0)
	comp0 := ins.Set(0).Component
	assert.True(t, s.ComponentFeasible(comp0))
	comp1 := ins.Set(1).Component
	assert.False(t, s.ComponentFeasible(comp1))
}
