package reduction

import "github.com/katalvlaran/setcoversolver/rng"

// applyDominatedByTwo implements rule 2: a cheap, randomised pass over
// size-2 witnesses rather than the full O(N·M) dominance scan of
// rule 7.
//
// Sets: for up to min(liveSets, liveElements) randomly sampled live
// sets of size exactly 2, {e1, e2}, if another live set of size > 2
// covers both e1 and e2 at cost <= the sampled set's cost, the sampled
// set is strictly dominated (the candidate covers everything it does,
// plus more, for no more money) and is removed; its out-lift joins
// mandatory.
//
// Elements: symmetrically, for up to the same number of randomly
// sampled live elements of degree exactly 2, {s1, s2}, if another live
// element is covered by both s1 and s2, its coverage is implied by
// whichever of s1/s2 ends up covering the sampled element, so it is
// removed outright (elements carry no cost or lift lists).
func (ri *ReductionInstance) applyDominatedByTwo(src *rng.Source) bool {
	changed := false
	trials := ri.liveSets
	if ri.liveElements < trials {
		trials = ri.liveElements
	}
	if trials <= 0 {
		return false
	}

	liveSetIDs := ri.collectLiveSetIDs()
	for t := 0; t < trials && len(liveSetIDs) > 0; t++ {
		sid := liveSetIDs[src.Intn(len(liveSetIDs))]
		if !ri.setIsLive(sid) || ri.sets[sid].live != 2 {
			continue
		}
		pair := ri.liveElementsOf(sid)
		if len(pair) != 2 {
			continue
		}
		e1, e2 := pair[0], pair[1]
		cost := ri.sets[sid].cost
		if ri.findSetCoveringBoth(e1, e2, sid, cost) {
			ri.addMandatory(ri.unreduction.out[sid])
			ri.removeSet(sid)
			changed = true
		}
	}

	liveElemIDs := ri.collectLiveElementIDs()
	for t := 0; t < trials && len(liveElemIDs) > 0; t++ {
		eid := liveElemIDs[src.Intn(len(liveElemIDs))]
		if !ri.elementIsLive(eid) || ri.elements[eid].live != 2 {
			continue
		}
		pair := ri.liveSetsOf(eid)
		if len(pair) != 2 {
			continue
		}
		s1, s2 := pair[0], pair[1]
		if dominated := ri.findElementCoveredByBoth(s1, s2, eid); dominated != -1 {
			ri.removeElement(dominated)
			changed = true
		}
	}
	return changed
}

// findSetCoveringBoth reports whether some live set other than exclude,
// with more than two elements, covers both e1 and e2 at cost <= maxCost.
func (ri *ReductionInstance) findSetCoveringBoth(e1, e2, exclude int, maxCost int64) bool {
	for _, cand := range ri.elements[e1].sets {
		if cand == exclude || !ri.setIsLive(cand) {
			continue
		}
		if ri.sets[cand].live <= 2 {
			continue
		}
		if ri.sets[cand].cost > maxCost {
			continue
		}
		if ri.setContainsLiveElement(cand, e2) {
			return true
		}
	}
	return false
}

// findElementCoveredByBoth returns a live element other than exclude
// that is covered by both s1 and s2, or -1.
func (ri *ReductionInstance) findElementCoveredByBoth(s1, s2, exclude int) int {
	for _, cand := range ri.sets[s1].elements {
		if cand == exclude || !ri.elementIsLive(cand) {
			continue
		}
		if ri.elementContainsLiveSet(cand, s2) {
			return cand
		}
	}
	return -1
}

// collectLiveSetIDs and collectLiveElementIDs materialise the current
// live ID lists for uniform sampling; rules 2 and 7 both need them and
// recompute rather than cache since IDs shift across compactions.
func (ri *ReductionInstance) collectLiveSetIDs() []int {
	ids := make([]int, 0, ri.liveSets)
	for i := 0; i < ri.numSets(); i++ {
		if ri.setIsLive(i) {
			ids = append(ids, i)
		}
	}
	return ids
}

func (ri *ReductionInstance) collectLiveElementIDs() []int {
	ids := make([]int, 0, ri.liveElements)
	for i := 0; i < ri.numElements(); i++ {
		if ri.elementIsLive(i) {
			ids = append(ids, i)
		}
	}
	return ids
}
