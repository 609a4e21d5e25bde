package rowweighting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/greedy"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/rowweighting"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// buildSample builds set0={0,1}, set1={2,3}, set2={0,1,2,3}, costs
// {1,1,3}: the unique optimum is {set0,set1} at cost 2, already found
// directly by forward greedy.
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

// buildTwoTriangles builds two disjoint 3-set/3-element components,
// each a triangle of unit-cost sets covering two elements apiece, so
// the cheapest cover of each component is any two of its three sets
// at cost 2 (total optimum 4).
func buildTwoTriangles(t *testing.T) *core.Instance {
	t.Helper()
	b := core.NewBuilder(core.WithUnicost())
	require.NoError(t, b.AddSets(6))
	require.NoError(t, b.AddElements(6))
	arcs := [][2]int{
		{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}, {2, 0},
		{3, 3}, {3, 4}, {4, 4}, {4, 5}, {5, 5}, {5, 3},
	}
	for _, a := range arcs {
		require.NoError(t, b.AddArc(a[0], a[1]))
	}
	ins, err := b.Build()
	require.NoError(t, err)
	return ins
}

func TestRunFeasible(t *testing.T) {
	ins := buildSample(t)
	src := rng.New(1)
	tmr := timer.New()
	sol, stats, err := rowweighting.Run(ins, src, tmr, false, rowweighting.WithMaximumIterations(200))
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
	assert.False(t, stats.TimedOut)
}

func TestRunNeverWorsensCost(t *testing.T) {
	ins := buildSample(t)
	seed, err := greedy.Forward(ins, nil)
	require.NoError(t, err)

	src := rng.New(7)
	tmr := timer.New()
	sol, _, err := rowweighting.Run(ins, src, tmr, false, rowweighting.WithMaximumIterations(500))
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
	assert.LessOrEqual(t, sol.Cost(), seed.Cost())
}

func TestRunReachesGoalImmediatelyWhenSeedAlreadyMeetsIt(t *testing.T) {
	ins := buildSample(t)
	seed, err := greedy.Forward(ins, nil)
	require.NoError(t, err)

	src := rng.New(3)
	tmr := timer.New()
	_, stats, err := rowweighting.Run(ins, src, tmr, false, rowweighting.WithGoal(seed.Cost()))
	require.NoError(t, err)
	assert.True(t, stats.ReachedGoal)
	assert.EqualValues(t, 0, stats.Iterations)
}

func TestRunRespectsMaximumIterations(t *testing.T) {
	ins := buildTwoTriangles(t)
	src := rng.New(11)
	tmr := timer.New()
	_, stats, err := rowweighting.Run(ins, src, tmr, false, rowweighting.WithMaximumIterations(5))
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Iterations, int64(5))
}

func TestRunDeterministicGivenSameSeed(t *testing.T) {
	ins := buildTwoTriangles(t)

	run := func(seed int64) (int64, int64) {
		src := rng.New(seed)
		tmr := timer.New()
		sol, stats, err := rowweighting.Run(ins, src, tmr, false, rowweighting.WithMaximumIterations(300))
		require.NoError(t, err)
		return sol.Cost(), stats.Iterations
	}

	cost1, iters1 := run(42)
	cost2, iters2 := run(42)
	assert.Equal(t, cost1, cost2)
	assert.Equal(t, iters1, iters2)
}

func TestRunGlobalVariantFeasible(t *testing.T) {
	ins := buildTwoTriangles(t)
	src := rng.New(5)
	tmr := timer.New()
	sol, _, err := rowweighting.Run(ins, src, tmr, true, rowweighting.WithMaximumIterations(300))
	require.NoError(t, err)
	assert.True(t, sol.Feasible())
}

func TestRunOnImprovementCallbackSeesOnlyFeasibleSolutions(t *testing.T) {
	ins := buildTwoTriangles(t)
	src := rng.New(9)
	tmr := timer.New()
	var sawInfeasible bool
	_, _, err := rowweighting.Run(ins, src, tmr, false,
		rowweighting.WithMaximumIterations(300),
		rowweighting.WithOnImprovement(func(sol *solution.Solution) {
			if !sol.Feasible() {
				sawInfeasible = true
			}
		}),
	)
	require.NoError(t, err)
	assert.False(t, sawInfeasible)
}
