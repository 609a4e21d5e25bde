package greedy

import (
	"math"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/heapindex"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// Reverse starts from the all-sets solution and repeatedly removes the
// set with the smallest redundancy score: the sum, over its elements,
// of 1/cover_count(e), divided by cost. A set covering any element
// exactly once scores +Inf and can never be removed; the pass stops
// once every remaining set is critical this way.
func Reverse(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	sol := solution.New(ins)
	for id := 0; id < ins.NumSets(); id++ {
		sol.Add(id)
	}

	score := func(id int) float64 { return reverseScore(sol, ins.Set(id)) }
	key := make([]float64, ins.NumSets())
	for i := range key {
		key[i] = score(i)
	}
	h := heapindex.New(ins.NumSets(), 4, func(a, b int) bool {
		if key[a] != key[b] {
			return key[a] < key[b]
		}
		return a < b
	})
	for i := 0; i < ins.NumSets(); i++ {
		h.Push(i)
	}

	for h.Len() > 0 {
		if tmr != nil && tmr.NeedsToEnd() {
			return sol, nil
		}
		id := h.Peek()
		cur := score(id)
		if cur > key[id]+tol {
			key[id] = cur
			h.Fix(id)
			continue
		}
		if math.IsInf(cur, 1) {
			break
		}
		sol.Remove(id)
		h.Pop()
	}
	return sol, nil
}

// reverseScore is +Inf if set is the sole cover of any of its
// elements, otherwise Σ 1/cover_count(e) over its elements, over cost.
// A free set is never worth removing first, so it also scores +Inf.
func reverseScore(sol *solution.Solution, set *core.Set) float64 {
	if set.Cost == 0 {
		return math.Inf(1)
	}
	var acc float64
	for _, e := range set.Elements {
		c := sol.CoverCount(e)
		if c <= 1 {
			return math.Inf(1)
		}
		acc += 1.0 / float64(c)
	}
	return acc / float64(set.Cost)
}
