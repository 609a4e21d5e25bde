package reduction

import "sort"

// twinCandidate is a live set with exactly three live neighbours, keyed
// by its sorted neighbour triple so identical triples sort adjacently.
type twinCandidate struct {
	setID       int
	neighbourID [3]int
}

// applyTwin implements rule 4: two distinct live sets with exactly the
// same three-set neighbourhood, all five sets (the pair plus the three
// shared neighbours) of equal cost, and no two of the three neighbours
// alone covering every element of either twin, fold into one aggregate
// the same way applySetFolding's triples do — one twin absorbs the
// union of the three neighbours' elements and their lift lists; the
// other twin and the three neighbours are removed.
func (ri *ReductionInstance) applyTwin() bool {
	var candidates []twinCandidate

	for sid := 0; sid < ri.numSets(); sid++ {
		if !ri.setIsLive(sid) {
			continue
		}
		neighbours := ri.setNeighbourIDs(sid, 3)
		if len(neighbours) != 3 {
			continue
		}
		n := [3]int{neighbours[0], neighbours[1], neighbours[2]}

		vElems := ri.liveElementsOf(sid)
		vSet := make(map[int]bool, len(vElems))
		for _, e := range vElems {
			vSet[e] = true
		}
		pairs := [3][2]int{{0, 1}, {0, 2}, {1, 2}}
		allPairsInsufficient := true
		for _, p := range pairs {
			a, b := ri.liveElementsOf(n[p[0]]), ri.liveElementsOf(n[p[1]])
			covered := make(map[int]bool, len(a)+len(b))
			for _, e := range a {
				if vSet[e] {
					covered[e] = true
				}
			}
			for _, e := range b {
				if vSet[e] {
					covered[e] = true
				}
			}
			if len(covered) == len(vElems) {
				allPairsInsufficient = false
				break
			}
		}
		if !allPairsInsufficient {
			continue
		}

		sortInt3(&n)
		candidates = append(candidates, twinCandidate{sid, n})
	}

	if len(candidates) < 2 {
		return false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return less3(candidates[i].neighbourID, candidates[j].neighbourID)
	})

	touched := make(map[int]bool)
	type pairing struct{ set1, set2 int; neigh [3]int }
	var pairings []pairing
	for i := 1; i < len(candidates); i++ {
		a, b := candidates[i], candidates[i-1]
		if a.neighbourID != b.neighbourID {
			continue
		}
		ids := []int{a.setID, b.setID, a.neighbourID[0], a.neighbourID[1], a.neighbourID[2]}
		skip := false
		for _, id := range ids {
			if touched[id] || !ri.setIsLive(id) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		cost := ri.sets[a.setID].cost
		ok := true
		for _, id := range ids[1:] {
			if ri.sets[id].cost != cost {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, id := range ids {
			touched[id] = true
		}
		pairings = append(pairings, pairing{a.setID, b.setID, a.neighbourID})
	}

	if len(pairings) == 0 {
		return false
	}

	for _, p := range pairings {
		union := make(map[int]bool)
		var newElems []int
		collect := func(sid int) {
			for _, e := range ri.liveElementsOf(sid) {
				if !union[e] {
					union[e] = true
					newElems = append(newElems, e)
				}
			}
		}
		collect(p.neigh[0])
		collect(p.neigh[1])
		collect(p.neigh[2])

		u := &ri.unreduction
		u.in[p.set1], u.out[p.set1] = u.out[p.set1], u.in[p.set1]
		u.in[p.set1] = append(u.in[p.set1], u.out[p.set2]...)
		u.out[p.set1] = append(u.out[p.set1], u.in[p.set2]...)
		for _, nb := range p.neigh {
			u.in[p.set1] = append(u.in[p.set1], u.in[nb]...)
			u.out[p.set1] = append(u.out[p.set1], u.out[nb]...)
		}

		ri.removeSet(p.set1)
		ri.sets[p.set1].removed = false
		ri.liveSets++
		ri.setNewElements(p.set1, newElems)

		ri.removeSet(p.set2)
		ri.removeSet(p.neigh[0])
		ri.removeSet(p.neigh[1])
		ri.removeSet(p.neigh[2])
	}
	return true
}

func sortInt3(a *[3]int) {
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
	if a[1] > a[2] {
		a[1], a[2] = a[2], a[1]
	}
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
}

func less3(a, b [3]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}
