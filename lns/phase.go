package lns

import "github.com/katalvlaran/setcoversolver/rng"

// runIteration destroys the cheapest-to-remove set, repairs feasibility
// by repeatedly adding the best-value set until every element is
// covered again, and drops any in-solution set the repair left fully
// redundant. Every move is appended to the change log so the caller can
// roll it back if it turns out not to improve on the accepted baseline.
//
// src is accepted for interface symmetry with row-weighting's
// randomized diversification; destroy and repair are themselves fully
// deterministic, always taking the top of whichever heap applies.
func (r *runner) runIteration(iteration int64, src *rng.Source) {
	_ = src

	victim := r.scoresIn.Peek()
	r.loggedRemove(victim, iteration)

	for !r.sol.Feasible() {
		if r.scoresOut.Len() == 0 {
			return
		}
		added := r.scoresOut.Peek()
		r.loggedAdd(added, iteration)
		r.dropRedundantNeighbours(added, iteration)
	}
}

// dropRedundantNeighbours removes any other in-solution, non-mandatory
// set that addedSetID's addition left with score 0 — no element it
// covers is solely covered by it any more, so it contributes nothing
// and can be dropped without reopening any element.
func (r *runner) dropRedundantNeighbours(addedSetID int, iteration int64) {
	set := r.ins.Set(addedSetID)

	seen := map[int]bool{}
	var candidates []int
	for _, e := range set.Elements {
		if r.sol.CoverCount(e) < 2 {
			continue
		}
		for _, ns := range r.ins.Element(e).Sets {
			if ns == addedSetID || seen[ns] || !r.sol.Contains(ns) {
				continue
			}
			seen[ns] = true
			candidates = append(candidates, ns)
		}
	}

	for _, ns := range candidates {
		if !r.sol.Contains(ns) || r.ins.Set(ns).Mandatory {
			continue
		}
		if r.score[ns] == 0 {
			r.loggedRemove(ns, iteration)
		}
	}
}

// acceptImprovement clears the change log once an iteration's result
// becomes the new accepted baseline.
func (r *runner) acceptImprovement() {
	r.log = r.log[:0]
}

// rollback undoes the change log in reverse order, restoring the
// accepted baseline. Run calls it once, after the search loop ends.
func (r *runner) rollback(iteration int64) {
	for i := len(r.log) - 1; i >= 0; i-- {
		entry := r.log[i]
		if entry.added {
			r.removeSet(entry.setID, iteration)
		} else {
			r.addSet(entry.setID, iteration)
		}
	}
	r.log = r.log[:0]
}
