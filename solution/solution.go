// Package solution implements a mutable, incrementally-scored
// Solution: an indexed set of chosen sets with O(|set|) add and
// remove, O(1) feasibility via a running uncovered-element counter,
// and per-component cost/coverage bookkeeping.
package solution

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/indexedset"
)

// Solution is a mutable assignment of chosen sets over a fixed Instance.
// Add and Remove are the only mutators; double-add and remove-of-absent
// are programming errors and panic, the same contract core.Instance
// uses for out-of-range direct indexing.
type Solution struct {
	instance *core.Instance

	chosen     *indexedset.Set
	coverCount []int32
	cost       int64
	uncovered  int32 // number of elements with coverCount == 0

	componentSelectedCost    []int64
	componentCoveredElements []int32
}

// New returns an empty Solution over ins.
func New(ins *core.Instance) *Solution {
	s := &Solution{
		instance:                 ins,
		chosen:                   indexedset.New(ins.NumSets()),
		coverCount:               make([]int32, ins.NumElements()),
		uncovered:                int32(ins.NumElements()),
		componentSelectedCost:    make([]int64, len(ins.Components())),
		componentCoveredElements: make([]int32, len(ins.Components())),
	}
	return s
}

// Instance returns the Solution's backing Instance.
func (s *Solution) Instance() *core.Instance { return s.instance }

// Contains reports whether setID is currently chosen.
func (s *Solution) Contains(setID int) bool { return s.chosen.Contains(setID) }

// Sets returns the chosen set IDs. The returned slice aliases internal
// storage and must not be mutated or retained across a following
// Add/Remove.
func (s *Solution) Sets() []int { return s.chosen.Elements() }

// Len returns the number of chosen sets.
func (s *Solution) Len() int { return s.chosen.Len() }

// Cost returns Σ_{s∈S} set(s).cost.
func (s *Solution) Cost() int64 { return s.cost }

// CoverCount returns the number of chosen sets covering elementID.
func (s *Solution) CoverCount(elementID int) int32 { return s.coverCount[elementID] }

// Feasible reports whether every element has CoverCount > 0. O(1).
func (s *Solution) Feasible() bool { return s.uncovered == 0 }

// UncoveredCount returns the number of elements with CoverCount == 0. O(1).
func (s *Solution) UncoveredCount() int32 { return s.uncovered }

// ComponentSelectedCost returns the sum of costs of chosen sets in
// component idx.
func (s *Solution) ComponentSelectedCost(idx int) int64 { return s.componentSelectedCost[idx] }

// ComponentCoveredElements returns the number of component idx's elements
// currently covered (CoverCount > 0).
func (s *Solution) ComponentCoveredElements(idx int) int32 { return s.componentCoveredElements[idx] }

// ComponentFeasible reports whether every element of component idx is
// covered.
func (s *Solution) ComponentFeasible(idx int) bool {
	return int(s.componentCoveredElements[idx]) == len(s.instance.Components()[idx].Elements)
}

// Add selects setID. Panics if setID is already chosen. O(|set.Elements|).
func (s *Solution) Add(setID int) {
	set := s.instance.Set(setID)
	if !s.chosen.Add(setID) {
		panic(fmt.Sprintf("solution: Add: set %d already in solution", setID))
	}
	s.cost += set.Cost
	if set.Component >= 0 {
		s.componentSelectedCost[set.Component] += set.Cost
	}
	for _, e := range set.Elements {
		s.coverCount[e]++
		if s.coverCount[e] == 1 {
			s.uncovered--
			comp := s.instance.Element(e).Component
			s.componentCoveredElements[comp]++
		}
	}
}

// Remove deselects setID. Panics if setID is not chosen. O(|set.Elements|).
func (s *Solution) Remove(setID int) {
	set := s.instance.Set(setID)
	if !s.chosen.Remove(setID) {
		panic(fmt.Sprintf("solution: Remove: set %d not in solution", setID))
	}
	s.cost -= set.Cost
	if set.Component >= 0 {
		s.componentSelectedCost[set.Component] -= set.Cost
	}
	for _, e := range set.Elements {
		s.coverCount[e]--
		if s.coverCount[e] == 0 {
			s.uncovered++
			comp := s.instance.Element(e).Component
			s.componentCoveredElements[comp]--
		}
	}
}

// Clone returns a deep copy sharing the same Instance.
func (s *Solution) Clone() *Solution {
	c := New(s.instance)
	for _, setID := range s.chosen.Elements() {
		c.Add(setID)
	}
	return c
}

// ToIDs returns a sorted copy of the chosen set IDs, suitable for
// publishing as a certificate or JSON report.
func (s *Solution) ToIDs() []int {
	ids := append([]int(nil), s.chosen.Elements()...)
	sort.Ints(ids)
	return ids
}
