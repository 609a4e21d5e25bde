package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/core"
)

// buildTriangle builds a small three-set, three-element scenario:
// A={0,1}, B={1,2}, C={0,2}, all cost 1.
func buildTriangle(t *testing.T) *core.Instance {
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

func TestBuilder_Triangle(t *testing.T) {
	ins := buildTriangle(t)
	assert.Equal(t, 3, ins.NumSets())
	assert.Equal(t, 3, ins.NumElements())
	assert.EqualValues(t, 6, ins.NumberOfArcs())
	assert.EqualValues(t, 3, ins.TotalCost())
	require.NoError(t, ins.Check())
	assert.Len(t, ins.Components(), 1)
}

func TestBuilder_BidirectionalIncidence(t *testing.T) {
	ins := buildTriangle(t)
	for _, s := range ins.Sets() {
		for _, e := range s.Elements {
			assert.Contains(t, ins.Element(e).Sets, s.ID)
		}
	}
	for _, e := range ins.Elements() {
		for _, s := range e.Sets {
			assert.Contains(t, ins.Set(s).Elements, e.ID)
		}
	}
}

func TestBuilder_UncoveredElementFails(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(1))
	require.NoError(t, b.AddElements(2))
	require.NoError(t, b.AddArc(0, 0))
	_, err := b.Build()
	require.ErrorIs(t, err, core.ErrUncoveredElement)
}

func TestBuilder_UnicostRejectsOtherCosts(t *testing.T) {
	b := core.NewBuilder(core.WithUnicost())
	require.NoError(t, b.AddSets(1))
	require.NoError(t, b.AddElements(1))
	require.NoError(t, b.AddArc(0, 0))
	err := b.SetCost(0, 2)
	require.ErrorIs(t, err, core.ErrNegativeCost)

	ins, err := b.Build()
	require.NoError(t, err)
	assert.True(t, ins.Unicost())
	assert.EqualValues(t, 1, ins.Set(0).Cost)
}

func TestBuilder_AlreadyBuilt(t *testing.T) {
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(1))
	require.NoError(t, b.AddElements(1))
	require.NoError(t, b.AddArc(0, 0))
	_, err := b.Build()
	require.NoError(t, err)
	require.ErrorIs(t, b.AddSets(1), core.ErrAlreadyBuilt)
}

func TestDisconnectedComponents(t *testing.T) {
	// Two disjoint edges: set0={0,1}, set1={2,3}.
	b := core.NewBuilder()
	require.NoError(t, b.AddSets(2))
	require.NoError(t, b.AddElements(4))
	require.NoError(t, b.AddArc(0, 0))
	require.NoError(t, b.AddArc(0, 1))
	require.NoError(t, b.AddArc(1, 2))
	require.NoError(t, b.AddArc(1, 3))
	ins, err := b.Build()
	require.NoError(t, err)
	require.Len(t, ins.Components(), 2)
	require.NoError(t, ins.Check())
}

func TestNeighbours(t *testing.T) {
	ins := buildTriangle(t)
	assert.ElementsMatch(t, []int{1, 2}, ins.SetNeighbours(0))
	assert.ElementsMatch(t, []int{0, 2}, ins.ElementNeighbours(1))
}

func TestPrecomputeNeighboursMatchesLazy(t *testing.T) {
	ins := buildTriangle(t)
	lazy := ins.SetNeighbours(0)

	ins2 := buildTriangle(t)
	require.NoError(t, ins2.PrecomputeNeighbours(context.Background(), 4))
	assert.ElementsMatch(t, lazy, ins2.SetNeighbours(0))
}
