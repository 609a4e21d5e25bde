// Package greedy implements the constructive and destructive greedy
// heuristics used to seed local search, plus the two polynomial-time
// lower bounds used as dual certificates and early-stop criteria.
//
// Forward and Lin keep their candidate scores in a heapindex.Heap with
// lazy key refresh (Dual and GWMIN scan without a heap): a set's stored key is trusted until it reaches the
// top, at which point its score is recomputed against the current
// Solution; if the fresh score has not moved, the set is accepted,
// otherwise the key is corrected and the set sinks back to its true
// position. Because every score here can only move in one direction as
// the Solution grows (coverage lost, never gained), this settles in at
// most one extra comparison per pop.
package greedy

import (
	"math"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/heapindex"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// tol absorbs floating-point noise when comparing a freshly computed
// score against a heap's stored key.
const tol = 1e-9

// lazyHeap drives the common "push every candidate, lazily refresh on
// pop" loop shared by Forward and Lin.
type lazyHeap struct {
	key  []float64
	heap *heapindex.Heap
}

func newLazyHeap(n int, score func(id int) float64) *lazyHeap {
	lh := &lazyHeap{key: make([]float64, n)}
	for i := 0; i < n; i++ {
		lh.key[i] = score(i)
	}
	lh.heap = heapindex.New(n, 4, func(a, b int) bool {
		if lh.key[a] != lh.key[b] {
			return lh.key[a] < lh.key[b]
		}
		return a < b
	})
	for i := 0; i < n; i++ {
		lh.heap.Push(i)
	}
	return lh
}

// popBest drains the heap until the element on top is still valid
// against score, then removes and returns it.
func (lh *lazyHeap) popBest(score func(id int) float64) int {
	for {
		id := lh.heap.Peek()
		cur := score(id)
		if cur <= lh.key[id]+tol {
			lh.heap.Pop()
			return id
		}
		lh.key[id] = cur
		lh.heap.Fix(id)
	}
}

// Forward is the classic greedy constructor: repeatedly add the set
// maximising (uncovered elements covered)/cost.
func Forward(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	sol := solution.New(ins)
	score := func(id int) float64 { return forwardScore(ins, sol, id) }
	lh := newLazyHeap(ins.NumSets(), score)

	for !sol.Feasible() {
		if tmr != nil && tmr.NeedsToEnd() {
			return sol, nil
		}
		id := lh.popBest(score)
		sol.Add(id)
	}
	removeRedundant(ins, sol)
	return sol, nil
}

func forwardScore(ins *core.Instance, sol *solution.Solution, setID int) float64 {
	set := ins.Set(setID)
	var covered int
	for _, e := range set.Elements {
		if sol.CoverCount(e) == 0 {
			covered++
		}
	}
	return ratio(-float64(covered), set.Cost)
}

// Lin scores each candidate set by the sum, over its still-uncovered
// elements, of 1/|element.sets| — favouring sets that cover elements
// few other sets can reach — divided by cost.
func Lin(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	sol := solution.New(ins)
	score := func(id int) float64 { return linScore(ins, sol, id) }
	lh := newLazyHeap(ins.NumSets(), score)

	for !sol.Feasible() {
		if tmr != nil && tmr.NeedsToEnd() {
			return sol, nil
		}
		id := lh.popBest(score)
		sol.Add(id)
	}
	removeRedundant(ins, sol)
	return sol, nil
}

func linScore(ins *core.Instance, sol *solution.Solution, setID int) float64 {
	set := ins.Set(setID)
	var val float64
	for _, e := range set.Elements {
		if sol.CoverCount(e) == 0 {
			val += 1.0 / float64(len(ins.Element(e).Sets))
		}
	}
	return ratio(-val, set.Cost)
}

// ratio divides a non-positive numerator by cost, treating a free set
// that covers something as infinitely attractive and a free set that
// covers nothing as neutral.
func ratio(numerator float64, cost int64) float64 {
	if cost == 0 {
		if numerator < 0 {
			return math.Inf(-1)
		}
		return 0
	}
	return numerator / float64(cost)
}

// removeRedundant drops any chosen set none of whose elements is
// solely covered by it, restoring minimality after a constructive pass
// that can over-cover.
func removeRedundant(ins *core.Instance, sol *solution.Solution) {
	for _, setID := range append([]int(nil), sol.Sets()...) {
		set := ins.Set(setID)
		redundant := true
		for _, e := range set.Elements {
			if sol.CoverCount(e) == 1 {
				redundant = false
				break
			}
		}
		if redundant {
			sol.Remove(setID)
		}
	}
}
