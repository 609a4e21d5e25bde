package core

import (
	"fmt"
	"sort"
)

// Check recomputes degrees and bidirectional incidence to verify
// every Instance invariant. It is O(N + M + arcs) and is meant for
// debug runs and tests; production runs skip it.
func (ins *Instance) Check() error {
	for _, s := range ins.sets {
		if !sort.IntsAreSorted(s.Elements) {
			return fmt.Errorf("core: Check: set %d elements not sorted: %w", s.ID, ErrInvariantViolation)
		}
		for _, e := range s.Elements {
			if e < 0 || e >= len(ins.elements) {
				return fmt.Errorf("core: Check: set %d covers out-of-range element %d: %w", s.ID, e, ErrInvariantViolation)
			}
			if !containsSorted(ins.elements[e].Sets, s.ID) {
				return fmt.Errorf("core: Check: set %d covers element %d but element does not list set: %w", s.ID, e, ErrInvariantViolation)
			}
		}
	}

	for _, e := range ins.elements {
		if !sort.IntsAreSorted(e.Sets) {
			return fmt.Errorf("core: Check: element %d sets not sorted: %w", e.ID, ErrInvariantViolation)
		}
		if len(e.Sets) == 0 {
			return fmt.Errorf("core: Check: element %d: %w", e.ID, ErrUncoveredElement)
		}
		for _, s := range e.Sets {
			if s < 0 || s >= len(ins.sets) {
				return fmt.Errorf("core: Check: element %d covered by out-of-range set %d: %w", e.ID, s, ErrInvariantViolation)
			}
			if !containsSorted(ins.sets[s].Elements, e.ID) {
				return fmt.Errorf("core: Check: element %d covered by set %d but set does not list element: %w", e.ID, s, ErrInvariantViolation)
			}
		}
	}

	var arcs int64
	for _, s := range ins.sets {
		arcs += int64(len(s.Elements))
	}
	if arcs != ins.numberOfArcs {
		return fmt.Errorf("core: Check: number_of_arcs mismatch: stored %d, recomputed %d: %w", ins.numberOfArcs, arcs, ErrInvariantViolation)
	}
	var arcsFromElements int64
	for _, e := range ins.elements {
		arcsFromElements += int64(len(e.Sets))
	}
	if arcs != arcsFromElements {
		return fmt.Errorf("core: Check: arc count mismatch between sets (%d) and elements (%d): %w", arcs, arcsFromElements, ErrInvariantViolation)
	}

	var totalCost int64
	for _, s := range ins.sets {
		totalCost += s.Cost
	}
	if totalCost != ins.totalCost {
		return fmt.Errorf("core: Check: total_cost mismatch: stored %d, recomputed %d: %w", ins.totalCost, totalCost, ErrInvariantViolation)
	}

	return checkComponentsPartition(ins)
}

func checkComponentsPartition(ins *Instance) error {
	seenElem := make(map[int]int)
	seenSet := make(map[int]int)
	for _, c := range ins.components {
		for _, e := range c.Elements {
			if prev, ok := seenElem[e]; ok {
				return fmt.Errorf("core: Check: element %d in components %d and %d: %w", e, prev, c.Index, ErrInvariantViolation)
			}
			seenElem[e] = c.Index
		}
		for _, s := range c.Sets {
			if prev, ok := seenSet[s]; ok {
				return fmt.Errorf("core: Check: set %d in components %d and %d: %w", s, prev, c.Index, ErrInvariantViolation)
			}
			seenSet[s] = c.Index
		}
	}
	if len(seenElem) != len(ins.elements) {
		return fmt.Errorf("core: Check: components cover %d of %d elements: %w", len(seenElem), len(ins.elements), ErrInvariantViolation)
	}
	return nil
}

func containsSorted(xs []int, v int) bool {
	i := sort.SearchInts(xs, v)
	return i < len(xs) && xs[i] == v
}
