package reduction

import "github.com/katalvlaran/setcoversolver/rng"

// applyDominatedSets implements the set half of rule 7:
// full-size dominance rather than rule 2's size-2 shortcut. A live set
// s is dominated when another live set t covers every element s covers
// at cost <= s's, with strict dominance in cost or in coverage size so
// equal sets are left to rule 5. Parameter-gated and sampled to at most
// 1% of live sets per round, since the O(|s|·degree) check per
// candidate is too costly to run exhaustively every round.
func (ri *ReductionInstance) applyDominatedSets(src *rng.Source) bool {
	live := ri.collectLiveSetIDs()
	budget := sampleBudget(len(live))
	if budget == 0 {
		return false
	}
	changed := false
	for t := 0; t < budget; t++ {
		sid := live[src.Intn(len(live))]
		if !ri.setIsLive(sid) || ri.sets[sid].live == 0 {
			continue
		}
		elems := ri.liveElementsOf(sid)
		if ri.findDominatingSet(sid, elems) {
			ri.addMandatory(ri.unreduction.out[sid])
			ri.removeSet(sid)
			changed = true
		}
	}
	return changed
}

// findDominatingSet looks for a live set other than exclude that
// covers every element in elems at cost <= exclude's, with strictly
// more coverage or strictly lower cost.
func (ri *ReductionInstance) findDominatingSet(exclude int, elems []int) bool {
	if len(elems) == 0 {
		return false
	}
	cost := ri.sets[exclude].cost
	size := len(elems)
	seedElem := elems[0]
	for _, cand := range ri.elements[seedElem].sets {
		if cand == exclude || !ri.setIsLive(cand) {
			continue
		}
		if ri.sets[cand].cost > cost {
			continue
		}
		if ri.sets[cand].live < size {
			continue
		}
		if ri.sets[cand].live == size && ri.sets[cand].cost == cost {
			continue // identical, rule 5's concern.
		}
		coversAll := true
		for _, e := range elems {
			if !ri.setContainsLiveElement(cand, e) {
				coversAll = false
				break
			}
		}
		if coversAll {
			return true
		}
	}
	return false
}

// applyDominatedElements is the element half of rule 7: a live element
// e is dominated by another live element e' when e' is covered by a
// subset of e's covering sets — whichever set ends up covering e' also
// covers e, so e's constraint is implied and can be dropped.
func (ri *ReductionInstance) applyDominatedElements(src *rng.Source) bool {
	live := ri.collectLiveElementIDs()
	budget := sampleBudget(len(live))
	if budget == 0 {
		return false
	}
	changed := false
	for t := 0; t < budget; t++ {
		eid := live[src.Intn(len(live))]
		if !ri.elementIsLive(eid) || ri.elements[eid].live == 0 {
			continue
		}
		sets := ri.liveSetsOf(eid)
		if ri.findDominatingElement(eid, sets) != -1 {
			ri.removeElement(eid)
			changed = true
		}
	}
	return changed
}

// findDominatingElement looks for a live element other than exclude
// whose live covering-set list is a (possibly improper, but then of
// strictly smaller degree) subset of sets, returning it or -1.
func (ri *ReductionInstance) findDominatingElement(exclude int, sets []int) int {
	if len(sets) == 0 {
		return -1
	}
	seedSet := sets[0]
	for _, cand := range ri.sets[seedSet].elements {
		if cand == exclude || !ri.elementIsLive(cand) {
			continue
		}
		if ri.elements[cand].live > len(sets) {
			continue
		}
		if ri.elements[cand].live == len(sets) {
			continue // identical, rule 5's concern.
		}
		subset := true
		for _, s := range ri.liveSetsOf(cand) {
			if !ri.elementContainsLiveSet(exclude, s) {
				subset = false
				break
			}
		}
		if subset {
			return cand
		}
	}
	return -1
}

// sampleBudget is rule 7's "samples at most 1% of
// sets/elements per round", floored at a small constant so tiny
// instances still get a chance to fire.
func sampleBudget(liveCount int) int {
	b := liveCount / 100
	if b < 4 {
		b = liveCount
		if b > 16 {
			b = 16
		}
	}
	return b
}
