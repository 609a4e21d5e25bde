package formatter_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/formatter"
	"github.com/katalvlaran/setcoversolver/solution"
)

// buildSample builds set0={0,1}, set1={2,3}, set2={0,1,2,3}, costs
// {1,1,3}.
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

func TestRecordRejectsInfeasible(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()
	sol := solution.New(ins)
	sol.Add(0) // leaves elements 2,3 uncovered

	assert.False(t, f.Record(sol))
	_, ok := f.BestCost()
	assert.False(t, ok)
}

func TestRecordAcceptsFirstFeasible(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()
	sol := solution.New(ins)
	sol.Add(2)

	assert.True(t, f.Record(sol))
	cost, ok := f.BestCost()
	require.True(t, ok)
	assert.EqualValues(t, 3, cost)
}

func TestRecordRejectsNonImprovement(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()

	cheap := solution.New(ins)
	cheap.Add(0)
	cheap.Add(1)
	assert.True(t, f.Record(cheap))

	expensive := solution.New(ins)
	expensive.Add(2)
	assert.False(t, f.Record(expensive))

	cost, _ := f.BestCost()
	assert.EqualValues(t, 2, cost)
}

func TestRecordNeverLetsBestCostIncrease(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()

	expensive := solution.New(ins)
	expensive.Add(2)
	f.Record(expensive)

	cheap := solution.New(ins)
	cheap.Add(0)
	cheap.Add(1)
	f.Record(cheap)

	worseAgain := solution.New(ins)
	worseAgain.Add(2)
	f.Record(worseAgain)

	cost, _ := f.BestCost()
	assert.EqualValues(t, 2, cost)
}

func TestSnapshotsRecordInOrder(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()

	s3 := solution.New(ins)
	s3.Add(2)
	f.Record(s3)

	s2 := solution.New(ins)
	s2.Add(0)
	s2.Add(1)
	f.Record(s2)

	snaps := f.Snapshots()
	require.Len(t, snaps, 2)
	assert.EqualValues(t, 3, snaps[0].Cost)
	assert.EqualValues(t, 2, snaps[1].Cost)
}

func TestOnImprovementFiresImmediatelyByDefault(t *testing.T) {
	ins := buildSample(t)
	var seen []int64
	f := formatter.New(formatter.WithOnImprovement(func(sol *solution.Solution) {
		seen = append(seen, sol.Cost())
	}))

	s2 := solution.New(ins)
	s2.Add(0)
	s2.Add(1)
	f.Record(s2)

	require.Len(t, seen, 1)
	assert.EqualValues(t, 2, seen[0])
}

func TestOnlyWriteAtEndDefersCallbackUntilFlush(t *testing.T) {
	ins := buildSample(t)
	var seen []int64
	f := formatter.New(
		formatter.WithOnlyWriteAtEnd(true),
		formatter.WithOnImprovement(func(sol *solution.Solution) {
			seen = append(seen, sol.Cost())
		}),
	)

	s2 := solution.New(ins)
	s2.Add(0)
	s2.Add(1)
	f.Record(s2)
	assert.Empty(t, seen)

	f.Flush()
	require.Len(t, seen, 1)
	assert.EqualValues(t, 2, seen[0])
}

func TestConcurrentRecordsStayConsistent(t *testing.T) {
	ins := buildSample(t)
	f := formatter.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := solution.New(ins)
			s.Add(0)
			s.Add(1)
			f.Record(s)
		}()
	}
	wg.Wait()

	cost, ok := f.BestCost()
	require.True(t, ok)
	assert.EqualValues(t, 2, cost)
}

func TestLogWriterReceivesImprovementEvents(t *testing.T) {
	ins := buildSample(t)
	var buf bytes.Buffer
	f := formatter.New(formatter.WithLogWriter(&buf), formatter.WithVerbosity(3))

	s2 := solution.New(ins)
	s2.Add(0)
	s2.Add(1)
	f.Record(s2)

	assert.Contains(t, buf.String(), "improved solution")
}
