package report_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/formatter"
	"github.com/katalvlaran/setcoversolver/report"
	"github.com/katalvlaran/setcoversolver/solution"
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

func TestNewPopulatesSolutionAndGaps(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()
	sol := solution.New(ins)
	sol.Add(0)
	sol.Add(1)
	f.Record(sol)
	f.SetBound(2)

	out := report.New(report.Parameters{Algorithm: "greedy", Seed: 7}, f, 0.125, report.StatusOK)
	assert.True(t, out.Solution.Feasible)
	assert.EqualValues(t, 2, out.Solution.Cost)
	assert.True(t, out.HasBound)
	assert.EqualValues(t, 2, out.Bound)
	assert.EqualValues(t, 0, out.AbsoluteOptimalityGap)
	assert.InDelta(t, 0, out.RelativeOptimalityGap, 1e-9)
	assert.Len(t, out.IntermediaryOutputs, 2)
	assert.Equal(t, report.StatusOK, out.Status)
}

func TestNewLeavesSolutionInfeasibleWhenNothingRecorded(t *testing.T) {
	f := formatter.New()
	out := report.New(report.Parameters{Algorithm: "trivial-bound", Seed: 1}, f, 0.01, report.StatusOK)
	assert.False(t, out.Solution.Feasible)
	assert.False(t, out.HasBound)
	assert.Zero(t, out.AbsoluteOptimalityGap)
}

func TestWriteProducesValidJSON(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()
	sol := solution.New(ins)
	sol.Add(2)
	f.Record(sol)

	out := report.New(report.Parameters{Input: "x.txt", Algorithm: "greedy", Seed: 3}, f, 0.2, report.StatusOK)

	var buf []byte
	w := &sliceWriter{&buf}
	require.NoError(t, report.Write(w, out))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Contains(t, decoded, "Parameters")
	assert.Contains(t, decoded, "Solution")
	assert.Contains(t, decoded, "IntermediaryOutputs")
}

type sliceWriter struct {
	buf *[]byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
