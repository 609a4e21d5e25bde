package greedy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/greedy"
)

func TestTrivialBoundTriangle(t *testing.T) {
	ins := buildTriangleForBounds(t)
	// Each set covers 2/3 of the universe at cost 1, so the trivial
	// bound accumulates one whole set (cost 1, 2 elements covered)
	// then a fractional remainder of ceil(1*1/2) = 1, for a total of 2
	// — matching the true optimum on this instance.
	assert.EqualValues(t, 2, greedy.TrivialBound(ins))
}

func TestTrivialBoundNeverExceedsAnyFeasibleCost(t *testing.T) {
	ins := buildSample(t)
	bound := greedy.TrivialBound(ins)
	sol, err := greedy.Forward(ins, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, bound, sol.Cost())
}

func TestCliqueCoverBoundTriangle(t *testing.T) {
	ins := buildTriangleForBounds(t)
	// Every element is covered by exactly 2 sets, so all three sets
	// form one clique in the 2-cover graph; the bound pays every
	// member but the costliest, i.e. 2 of the 3 unit costs.
	bound := greedy.CliqueCoverBound(ins, nil)
	assert.EqualValues(t, 2, bound)
}

func TestCliqueCoverBoundEmptyInstance(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(1))
	require.NoError(t, b.SetCost(0, 1))
	ins, err := b.Build()
	require.NoError(t, err)
	assert.EqualValues(t, 0, greedy.CliqueCoverBound(ins, nil))
}

func buildTriangleForBounds(t *testing.T) *core.Instance {
	t.Helper()
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(3))
	require.NoError(t, b.AddElements(3))
	require.NoError(t, b.SetCost(0, 1))
	require.NoError(t, b.SetCost(1, 1))
	require.NoError(t, b.SetCost(2, 1))
	arcs := [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 0}, {2, 2}}
	for _, a := range arcs {
		require.NoError(t, b.AddArc(a[0], a[1]))
	}
	ins, err := b.Build()
	require.NoError(t, err)
	return ins
}
