package algorithm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/algorithm"
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/formatter"
	"github.com/katalvlaran/setcoversolver/report"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/timer"
)

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

func baseParams() algorithm.Params {
	return algorithm.Params{
		Src:                          rng.New(1),
		Tmr:                          timer.New(),
		F:                            formatter.New(),
		MaximumIterations:            50,
		BestSolutionUpdateFrequency:  1,
	}
}

func TestRunUnknownAlgorithm(t *testing.T) {
	ins := buildSample(t)
	_, err := algorithm.Run(context.Background(), "not-a-thing", ins, baseParams())
	assert.ErrorIs(t, err, algorithm.ErrUnknownAlgorithm)
}

func TestEveryRegistryEntryProducesOutput(t *testing.T) {
	ins := buildSample(t)
	for name := range algorithm.Registry {
		p := baseParams()
		p.F = formatter.New()
		out, err := algorithm.Run(context.Background(), name, ins, p)
		require.NoError(t, err, name)
		require.NotNil(t, out, name)
		assert.Equal(t, name, out.Parameters.Algorithm, name)
	}
}

func TestGreedyReportsFeasibleSolution(t *testing.T) {
	ins := buildSample(t)
	out, err := algorithm.Run(context.Background(), "greedy", ins, baseParams())
	require.NoError(t, err)
	assert.True(t, out.Solution.Feasible)
	assert.EqualValues(t, 2, out.Solution.Cost)
}

func TestRowWeightingWithReductionLiftsBackToOriginalIDs(t *testing.T) {
	ins := buildSample(t)
	p := baseParams()
	p.Reduce = true
	out, err := algorithm.Run(context.Background(), "local-search-row-weighting-2", ins, p)
	require.NoError(t, err)
	assert.True(t, out.Solution.Feasible)
	assert.LessOrEqual(t, out.Solution.Cost, int64(3))
}

func TestTrivialBoundReportsNoSolution(t *testing.T) {
	ins := buildSample(t)
	out, err := algorithm.Run(context.Background(), "trivial-bound", ins, baseParams())
	require.NoError(t, err)
	assert.False(t, out.Solution.Feasible)
	assert.True(t, out.HasBound)
}

func TestMilpBackendsReportUnavailable(t *testing.T) {
	ins := buildSample(t)
	for _, name := range []string{"milp-cbc", "milp-gurobi", "milp-highs"} {
		out, err := algorithm.Run(context.Background(), name, ins, baseParams())
		require.NoError(t, err, name)
		assert.Equal(t, report.StatusUnavailable, out.Status, name)
	}
}
