package greedy

import (
	"sort"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// GWMIN starts from the all-sets solution and visits sets in
// descending order of cost/(|elements|+1), removing each one whose
// elements are all still covered by some other chosen set.
func GWMIN(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	sol := solution.New(ins)
	for id := 0; id < ins.NumSets(); id++ {
		sol.Add(id)
	}

	order := make([]int, ins.NumSets())
	for i := range order {
		order[i] = i
	}
	value := func(id int) float64 {
		set := ins.Set(id)
		return float64(set.Cost) / float64(len(set.Elements)+1)
	}
	sort.Slice(order, func(i, j int) bool {
		vi, vj := value(order[i]), value(order[j])
		if vi != vj {
			return vi > vj
		}
		return order[i] < order[j]
	})

	for _, setID := range order {
		if tmr != nil && tmr.NeedsToEnd() {
			return sol, nil
		}
		set := ins.Set(setID)
		removable := true
		for _, e := range set.Elements {
			if sol.CoverCount(e) == 1 {
				removable = false
				break
			}
		}
		if removable {
			sol.Remove(setID)
		}
	}
	return sol, nil
}
