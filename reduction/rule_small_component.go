package reduction

// applySmallComponents implements rule 8: for every connected
// component of the live working graph whose optimum can be certified
// cheaply, fix its chosen sets into mandatory and remove its
// elements, shrinking the instance the rest of the rules operate on.
//
// Certification succeeds one of two ways: either a single set or a
// pair of sets covers the component at a cost equal to its trivial
// bound, or a forward-greedy solve of the component alone matches the
// trivial bound (so greedy is provably optimal for that component).
// Larger components are left untouched — proving optimality cheaply
// for them in general needs the full algorithm suite, not the reducer.
func (ri *ReductionInstance) applySmallComponents() bool {
	changed := false
	for _, comp := range ri.liveComponents() {
		if len(comp.elements) == 0 {
			continue
		}
		chosen, ok := ri.certifyComponent(comp)
		if !ok {
			continue
		}
		for _, sid := range chosen {
			ri.addMandatory(ri.unreduction.in[sid])
		}
		for _, sid := range chosen {
			ri.removeSet(sid)
		}
		for _, eid := range comp.elements {
			if ri.elementIsLive(eid) {
				ri.removeElement(eid)
			}
		}
		changed = true
	}
	return changed
}

type liveComponent struct {
	sets     []int
	elements []int
}

// liveComponents flood-fills the current live incidence graph into its
// connected components, mirroring core.computeComponents but over the
// working (tombstoned) representation instead of a built core.Instance.
func (ri *ReductionInstance) liveComponents() []liveComponent {
	visitedSet := make([]bool, ri.numSets())
	visitedElem := make([]bool, ri.numElements())
	var comps []liveComponent

	for start := 0; start < ri.numSets(); start++ {
		if !ri.setIsLive(start) || visitedSet[start] {
			continue
		}
		var comp liveComponent
		stackSets := []int{start}
		visitedSet[start] = true
		for len(stackSets) > 0 {
			sid := stackSets[len(stackSets)-1]
			stackSets = stackSets[:len(stackSets)-1]
			comp.sets = append(comp.sets, sid)
			for _, eid := range ri.liveElementsOf(sid) {
				if visitedElem[eid] {
					continue
				}
				visitedElem[eid] = true
				comp.elements = append(comp.elements, eid)
				for _, other := range ri.liveSetsOf(eid) {
					if !visitedSet[other] {
						visitedSet[other] = true
						stackSets = append(stackSets, other)
					}
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// certifyComponent tries the cheap certificates of rule 8 and returns
// the witnessing set IDs on success. The trivial bound is a valid
// lower bound on the component's true optimum, so any found cover
// whose cost equals it is certified optimal; this keeps every
// certificate sound even when a cheaper cover happens to exist
// alongside the one a given sub-check constructs.
func (ri *ReductionInstance) certifyComponent(comp liveComponent) ([]int, bool) {
	bound := ri.componentTrivialBound(comp)
	if chosen, ok := ri.certifyTwoSetCover(comp, bound); ok {
		return chosen, true
	}
	return ri.certifyGreedyMatchesTrivialBound(comp, bound)
}

// certifyTwoSetCover succeeds when some single live set, or some pair
// of live sets jointly, covers every element of the component at a
// cost exactly matching bound — the trivial-bound-equals-2 case,
// generalised to also accept the one-set case (itself witnessed by a
// bound-matching single set) since both are cheap enough to brute
// force for a small component.
func (ri *ReductionInstance) certifyTwoSetCover(comp liveComponent, bound int64) ([]int, bool) {
	need := make(map[int]bool, len(comp.elements))
	for _, e := range comp.elements {
		need[e] = true
	}
	for _, s1 := range comp.sets {
		if ri.sets[s1].cost == bound && ri.pairCoversAll(s1, -1, need) {
			return []int{s1}, true
		}
	}
	if len(comp.sets) < 2 {
		return nil, false
	}
	for i := 0; i < len(comp.sets); i++ {
		for j := i + 1; j < len(comp.sets); j++ {
			s1, s2 := comp.sets[i], comp.sets[j]
			if ri.sets[s1].cost+ri.sets[s2].cost != bound {
				continue
			}
			if ri.pairCoversAll(s1, s2, need) {
				return []int{s1, s2}, true
			}
		}
	}
	return nil, false
}

// pairCoversAll reports whether s1 (and s2, when s2 >= 0) together
// cover every element of need.
func (ri *ReductionInstance) pairCoversAll(s1, s2 int, need map[int]bool) bool {
	covered := make(map[int]bool, len(need))
	for _, e := range ri.liveElementsOf(s1) {
		covered[e] = true
	}
	if s2 >= 0 {
		for _, e := range ri.liveElementsOf(s2) {
			covered[e] = true
		}
	}
	for e := range need {
		if !covered[e] {
			return false
		}
	}
	return true
}

// certifyGreedyMatchesTrivialBound runs a plain forward-greedy cover
// restricted to comp and accepts it when its cost equals the
// component's trivial bound — equality certifies optimality since the
// trivial bound never exceeds the true optimum.
func (ri *ReductionInstance) certifyGreedyMatchesTrivialBound(comp liveComponent, bound int64) ([]int, bool) {
	uncovered := make(map[int]bool, len(comp.elements))
	for _, e := range comp.elements {
		uncovered[e] = true
	}
	available := append([]int(nil), comp.sets...)
	var chosen []int
	var greedyCost int64
	for len(uncovered) > 0 {
		bestSet, bestGain := -1, 0
		for _, sid := range available {
			if !ri.setIsLive(sid) {
				continue
			}
			gain := 0
			for _, e := range ri.liveElementsOf(sid) {
				if uncovered[e] {
					gain++
				}
			}
			if gain > bestGain {
				bestGain, bestSet = gain, sid
			}
		}
		if bestSet == -1 {
			return nil, false
		}
		chosen = append(chosen, bestSet)
		greedyCost += ri.sets[bestSet].cost
		for _, e := range ri.liveElementsOf(bestSet) {
			delete(uncovered, e)
		}
	}

	if greedyCost != bound {
		return nil, false
	}
	return chosen, true
}

// componentTrivialBound is the trivial lower-bound computation
// restricted to a single component: sort sets by cost/|elements|,
// accumulate coverage, and let the last set needed contribute only
// its fractional remainder — summed here as a rounded-up integer cost
// since Instance costs are integral.
func (ri *ReductionInstance) componentTrivialBound(comp liveComponent) int64 {
	type scored struct {
		id   int
		rate float64
	}
	var sets []scored
	for _, sid := range comp.sets {
		if !ri.setIsLive(sid) || ri.sets[sid].live == 0 {
			continue
		}
		sets = append(sets, scored{sid, float64(ri.sets[sid].cost) / float64(ri.sets[sid].live)})
	}
	for i := 1; i < len(sets); i++ {
		for j := i; j > 0 && sets[j].rate < sets[j-1].rate; j-- {
			sets[j], sets[j-1] = sets[j-1], sets[j]
		}
	}

	remaining := len(comp.elements)
	var bound float64
	for _, s := range sets {
		if remaining <= 0 {
			break
		}
		n := ri.sets[s.id].live
		take := n
		if take > remaining {
			take = remaining
		}
		bound += s.rate * float64(take)
		remaining -= take
	}
	return int64(bound + 0.999999)
}
