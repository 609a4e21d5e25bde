package reduction

// applySetFolding implements rule 3: a live set v of size >= 2 whose
// only neighbours (sets sharing an element with v) are exactly two
// distinct sets v1, v2 of v's own cost folds into an aggregate when
// neither v1 nor v2 alone covers every element of v, but v1 and v2
// together do. v's own elements are removed (either choice below covers
// them), v absorbs the elements of v1 ∪ v2 outside v, v1 and v2 are
// removed, and v's lift lists are swapped and merged: choosing the
// aggregate in the reduced instance stands for "not v, but both v1 and
// v2"; not choosing it stands for "v alone".
func (ri *ReductionInstance) applySetFolding() bool {
	changed := false
	for {
		found := ri.foldOnePass()
		if !found {
			break
		}
		changed = true
	}
	return changed
}

func (ri *ReductionInstance) foldOnePass() bool {
	type triple struct{ v, n1, n2 int }
	var folds []triple
	touched := make(map[int]bool)

	for v := 0; v < ri.numSets(); v++ {
		if !ri.setIsLive(v) || ri.sets[v].live < 2 || touched[v] {
			continue
		}
		neighbours := ri.setNeighbourIDs(v, 2)
		if len(neighbours) != 2 {
			continue
		}
		n1, n2 := neighbours[0], neighbours[1]
		if touched[n1] || touched[n2] {
			continue
		}
		cost := ri.sets[v].cost
		if ri.sets[n1].cost != cost || ri.sets[n2].cost != cost {
			continue
		}

		vElems := ri.liveElementsOf(v)
		vSet := make(map[int]bool, len(vElems))
		for _, e := range vElems {
			vSet[e] = true
		}

		n1Elems := ri.liveElementsOf(n1)
		n1CoversOutside, n1CoveredCount := coverageAgainst(n1Elems, vSet)
		if !n1CoversOutside || n1CoveredCount == len(vElems) {
			continue
		}
		n2Elems := ri.liveElementsOf(n2)
		n2CoversOutside, n2CoveredCount := coverageAgainst(n2Elems, vSet)
		if !n2CoversOutside || n2CoveredCount == len(vElems) {
			continue
		}

		union := make(map[int]bool, len(n1Elems)+len(n2Elems))
		for _, e := range n1Elems {
			union[e] = true
		}
		for _, e := range n2Elems {
			union[e] = true
		}
		coveredOfV := 0
		for e := range vSet {
			if union[e] {
				coveredOfV++
			}
		}
		if coveredOfV != len(vElems) {
			continue
		}

		folds = append(folds, triple{v, n1, n2})
		touched[v], touched[n1], touched[n2] = true, true, true
	}

	if len(folds) == 0 {
		return false
	}

	for _, f := range folds {
		vElems := ri.liveElementsOf(f.v)
		newElems := make([]int, 0, ri.sets[f.n1].live+ri.sets[f.n2].live)
		seen := make(map[int]bool)
		for _, e := range vElems {
			seen[e] = true
		}
		for _, e := range ri.liveElementsOf(f.n1) {
			if !seen[e] {
				seen[e] = true
				newElems = append(newElems, e)
			}
		}
		for _, e := range ri.liveElementsOf(f.n2) {
			if !seen[e] {
				seen[e] = true
				newElems = append(newElems, e)
			}
		}

		u := &ri.unreduction
		u.in[f.v], u.out[f.v] = u.out[f.v], u.in[f.v]
		u.in[f.v] = append(u.in[f.v], u.in[f.n1]...)
		u.out[f.v] = append(u.out[f.v], u.out[f.n1]...)
		u.in[f.v] = append(u.in[f.v], u.in[f.n2]...)
		u.out[f.v] = append(u.out[f.v], u.out[f.n2]...)

		ri.removeSet(f.v) // drop v's old incidence bookkeeping...
		for _, e := range vElems {
			ri.removeElement(e)
		}
		ri.sets[f.v].removed = false
		ri.liveSets++ // ...then resurrect it as the aggregate set.
		ri.setNewElements(f.v, newElems)

		ri.removeSet(f.n1)
		ri.removeSet(f.n2)
	}
	return true
}

// coverageAgainst reports (coversSomethingOutside, coveredCountInside)
// for elems against the membership set target.
func coverageAgainst(elems []int, target map[int]bool) (outside bool, insideCount int) {
	for _, e := range elems {
		if target[e] {
			insideCount++
		} else {
			outside = true
		}
	}
	return outside, insideCount
}

// setNeighbourIDs returns the distinct live sets (other than sid) that
// share a live element with sid, short-circuiting once more than limit
// distinct neighbours are found (returning nil in that case — the
// caller only wants the "exactly N neighbours" case).
func (ri *ReductionInstance) setNeighbourIDs(sid, limit int) []int {
	seen := make(map[int]bool)
	var order []int
	for _, e := range ri.sets[sid].elements {
		if !ri.elementIsLive(e) {
			continue
		}
		for _, other := range ri.elements[e].sets {
			if other == sid || !ri.setIsLive(other) || seen[other] {
				continue
			}
			seen[other] = true
			order = append(order, other)
			if len(order) > limit {
				return nil
			}
		}
	}
	if len(order) > limit {
		return nil
	}
	return order
}
