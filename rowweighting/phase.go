package rowweighting

import (
	"math"

	"github.com/katalvlaran/setcoversolver/heapindex"
)

// runIteration advances component ci by one step: repair while it is
// feasible (drop the cheapest-to-remove chosen set), otherwise
// diversify (remove-then-add, falling back to swap once remove-then-add
// has run long without restoring feasibility).
func (r *runner) runIteration(ci int, iteration int64) {
	c := &r.comps[ci]

	if r.componentFeasible(ci) {
		c.iterations = 0
		if c.heap.Len() == 0 {
			r.dropOptimal(ci)
			return
		}
		r.removeSet(c.heap.Peek(), iteration)
		if c.heap.Len() == 0 {
			r.dropOptimal(ci)
		}
		return
	}

	c.iterations++
	if c.iterations < int64(100*len(c.sets)) {
		r.removeThenAdd(ci, iteration)
	} else {
		r.swap(ci, iteration)
		c.iterations = 0
	}
}

// removeThenAdd drops one of the component's cheapest chosen sets, then
// covers a random uncovered element with the best value-for-cost set
// available, steering away from immediately reversing either move.
func (r *runner) removeThenAdd(ci int, iteration int64) {
	c := &r.comps[ci]

	candidates := r.topK(c.heap, swapCandidates)
	s2 := r.pickCheapest(candidates, c.lastAdded)
	if s2 == -1 {
		return
	}
	r.removeSet(s2, iteration)

	e, ok := r.randomUncoveredElement(ci)
	if !ok {
		return
	}
	s1 := r.bestCoveringSet(e, c.lastRemoved)
	if s1 == -1 {
		return
	}
	r.addSet(s1, iteration)
}

// swap picks a random uncovered element, the best set covering it, and
// the cheapest chosen set to remove in exchange, then applies both
// moves together.
func (r *runner) swap(ci int, iteration int64) {
	c := &r.comps[ci]

	e, ok := r.randomUncoveredElement(ci)
	if !ok {
		return
	}
	s1 := r.bestCoveringSet(e, c.lastRemoved)
	if s1 == -1 {
		return
	}

	candidates := r.topK(c.heap, swapCandidates)
	s2 := r.pickCheapest(candidates, c.lastAdded)
	if s2 == -1 {
		return
	}

	r.removeSet(s2, iteration)
	r.addSet(s1, iteration)
}

// topK pops up to k entries off h and pushes them back, returning the
// IDs visited in pop order (cheapest first). Used to sample a heap's
// current front without disturbing it.
func (r *runner) topK(h *heapindex.Heap, k int) []int {
	popped := make([]int, 0, k)
	for i := 0; i < k && h.Len() > 0; i++ {
		popped = append(popped, h.Pop())
	}
	for _, id := range popped {
		h.Push(id)
	}
	return popped
}

// pickCheapest returns the lowest-score candidate, preferring to avoid
// tabu (the component's most recently added set, which should not be
// removed again on the very next move); tabu is ignored only when it is
// the sole candidate.
func (r *runner) pickCheapest(candidates []int, tabu int) int {
	best := -1
	for _, id := range candidates {
		if id == tabu {
			continue
		}
		if best == -1 || r.score[id] < r.score[best] {
			best = id
		}
	}
	if best != -1 {
		return best
	}
	for _, id := range candidates {
		if best == -1 || r.score[id] < r.score[best] {
			best = id
		}
	}
	return best
}

// bestCoveringSet returns the not-yet-chosen set covering e with the
// highest score-per-cost, preferring to avoid tabu (the set most
// recently removed from this component); tabu is ignored only when it
// is the sole candidate.
func (r *runner) bestCoveringSet(e int, tabu int) int {
	elem := r.ins.Element(e)

	best := -1
	bestRatio := math.Inf(-1)
	for _, s := range elem.Sets {
		if r.sol.Contains(s) || s == tabu {
			continue
		}
		if rat := scoreRatio(r.score[s], r.ins.Set(s).Cost); rat > bestRatio {
			bestRatio, best = rat, s
		}
	}
	if best != -1 {
		return best
	}
	for _, s := range elem.Sets {
		if r.sol.Contains(s) {
			continue
		}
		if rat := scoreRatio(r.score[s], r.ins.Set(s).Cost); rat > bestRatio {
			bestRatio, best = rat, s
		}
	}
	return best
}

// randomUncoveredElement draws a uniformly random currently-uncovered
// element of component ci, reporting false if none remain.
func (r *runner) randomUncoveredElement(ci int) (int, bool) {
	c := &r.comps[ci]
	pool := make([]int, 0, len(c.elements))
	for _, e := range c.elements {
		if r.sol.CoverCount(e) == 0 {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		return 0, false
	}
	return pool[r.src.Intn(len(pool))], true
}

// scoreRatio is the value-for-cost ordering used to choose among
// covering-set candidates: a free set that covers anything is
// infinitely attractive, a free set that covers nothing is worthless.
func scoreRatio(score int64, cost int64) float64 {
	if cost == 0 {
		if score > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return float64(score) / float64(cost)
}
