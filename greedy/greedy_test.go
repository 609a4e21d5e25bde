package greedy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/greedy"
)

// buildSample builds set0={0,1}, set1={2,3}, set2={0,1,2,3}, costs
// {1,1,3}: the unique optimum is {set0,set1} at cost 2.
func buildSample(t *testing.T) *core.Instance {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(3))
	require.NoError(t, b.AddElements(4))
	require.NoError(t, b.SetCost(0, 1))
	require.NoError(t, b.SetCost(1, 1))
	require.NoError(t, b.SetCost(2, 3))
	arcs := [][2]int{{0, 0}, {0, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 1}, {2, 2}, {2, 3}}
	for _, a := range arcs {
		require.NoError(t, b.AddArc(a[0], a[1]))
	}
	ins, err := b.Build()
	require.NoError(t, err)
	return ins
}

func TestForwardFeasible(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.Forward(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
}

func TestForwardFindsOptimalDirectly(t *testing.T) {
	// set0 and set1 both score 2 covered/cost against set2's 4/3, so
	// forward greedy never needs the expensive union set at all.
	ins := buildSample(t)
	sol, err := greedy.Forward(ins, nil)
	require.NoError(t, err)
	assert.False(t, sol.Contains(2))
	assert.EqualValues(t, 2, sol.Cost())
}

func TestLinFeasible(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.Lin(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
}

func TestReverseFeasibleAndMinimal(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.Reverse(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
	assert.EqualValues(t, 2, sol.Cost())
	assert.True(t, sol.Contains(0))
	assert.True(t, sol.Contains(1))
	assert.False(t, sol.Contains(2))
}

func TestDualFeasible(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.Dual(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
}

func TestGWMINFeasible(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.GWMIN(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
}

func TestOrReversePicksCheaper(t *testing.T) {
	ins := buildSample(t)
	sol, err := greedy.OrReverse(ins, nil)
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
	assert.EqualValues(t, 2, sol.Cost())
}

func TestAllVariantsReachSameOptimumOnTwoTriangles(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(6))
	require.NoError(t, b.AddElements(6))
	for i := 0; i < 6; i++ {
		require.NoError(t, b.SetCost(i, 1))
	}
	arcs := [][2]int{
		{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 0}, {2, 2},
		{3, 3}, {3, 4}, {4, 4}, {4, 5}, {5, 3}, {5, 5},
	}
	for _, a := range arcs {
		require.NoError(t, b.AddArc(a[0], a[1]))
	}
	ins, err := b.Build()
	require.NoError(t, err)
	require.Len(t, ins.Components(), 2)

	s1, err := greedy.Forward(ins, nil)
	require.NoError(t, err)
	assert.True(t, s1.Feasible())
	assert.EqualValues(t, 4, s1.Cost())

	s2, err := greedy.Reverse(ins, nil)
	require.NoError(t, err)
	assert.True(t, s2.Feasible())
	assert.EqualValues(t, 4, s2.Cost())

	s3, err := greedy.Dual(ins, nil)
	require.NoError(t, err)
	assert.True(t, s3.Feasible())
	assert.EqualValues(t, 4, s3.Cost())

	s4, err := greedy.GWMIN(ins, nil)
	require.NoError(t, err)
	assert.True(t, s4.Feasible())

	s5, err := greedy.Lin(ins, nil)
	require.NoError(t, err)
	assert.True(t, s5.Feasible())
}
