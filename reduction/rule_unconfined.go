package reduction

// applyUnconfinedSets implements rule 6: a set s is unconfined when
// the frontier-expansion test below succeeds, meaning some optimum is
// guaranteed to contain s. Confirmed-unconfined sets are fixed the
// same way a mandatory set is (rule 1): their in-lift joins mandatory
// and every element they cover is removed, since s's presence in the
// optimum is no longer in doubt.
//
// Expansion test: starting from the witness group N = {s}, repeatedly
// look at the
// elements N currently covers for one whose only outside (not-in-N)
// covering set is a single set s'; if such an element exists, absorb
// s' into N and recompute N's covered elements, then repeat. The
// expansion halts either because no element has a unique outside
// covering set — at which point every outside neighbour overlapping
// N's coverage needs strictly more than one set among N's complement
// to be handled, so s is confined and the rule does not fire — or
// because some element covered by N has *no* live covering set outside
// N at all, which is the confirmation: N (and so s) is forced into any
// feasible cover, and s itself is the representative fixed here.
func (ri *ReductionInstance) applyUnconfinedSets() bool {
	changed := false
	for sid := 0; sid < ri.numSets(); sid++ {
		if !ri.setIsLive(sid) {
			continue
		}
		if ri.setIsUnconfinedWitness(sid) {
			ri.fixMandatory(sid)
			changed = true
		}
	}
	return changed
}

// setIsUnconfinedWitness runs the expansion test for sid without
// mutating the instance; it is bounded by the live set count so a
// pathological cycle of absorptions cannot loop forever.
func (ri *ReductionInstance) setIsUnconfinedWitness(sid int) bool {
	inGroup := map[int]bool{sid: true}
	covered := map[int]bool{}
	for _, e := range ri.liveElementsOf(sid) {
		covered[e] = true
	}

	for iter := 0; iter < ri.numSets()+1; iter++ {
		progressed := false
		for e := range covered {
			outsideCount, onlyOutsider := 0, -1
			for _, s := range ri.elements[e].sets {
				if !ri.setIsLive(s) || inGroup[s] {
					continue
				}
				outsideCount++
				onlyOutsider = s
				if outsideCount > 1 {
					break
				}
			}
			if outsideCount == 0 {
				// e has no live covering set outside the group: the
				// group (and sid) is forced.
				return true
			}
			if outsideCount == 1 {
				inGroup[onlyOutsider] = true
				for _, e2 := range ri.liveElementsOf(onlyOutsider) {
					covered[e2] = true
				}
				progressed = true
				break
			}
		}
		if !progressed {
			return false
		}
	}
	return false
}
