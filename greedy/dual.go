package greedy

import (
	"math"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// Dual walks elements in ID order; for each still-uncovered element it
// picks the non-selected covering set with the best covered/cost
// ratio and adds it. Unlike Forward, the candidate pool for each step
// is only the handful of sets touching that element, so no heap is
// needed.
func Dual(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	sol := solution.New(ins)
	for e := 0; e < ins.NumElements(); e++ {
		if sol.CoverCount(e) != 0 {
			continue
		}
		if tmr != nil && tmr.NeedsToEnd() {
			return sol, nil
		}

		best := -1
		var bestVal float64
		for _, setID := range ins.Element(e).Sets {
			if sol.Contains(setID) {
				continue
			}
			set := ins.Set(setID)
			var covered int
			for _, e2 := range set.Elements {
				if sol.CoverCount(e2) == 0 {
					covered++
				}
			}
			val := valuePerCost(covered, set.Cost)
			if best == -1 || val > bestVal {
				best = setID
				bestVal = val
			}
		}
		sol.Add(best)
	}
	removeRedundant(ins, sol)
	return sol, nil
}

func valuePerCost(covered int, cost int64) float64 {
	if cost == 0 {
		if covered > 0 {
			return math.MaxFloat64
		}
		return 0
	}
	return float64(covered) / float64(cost)
}
