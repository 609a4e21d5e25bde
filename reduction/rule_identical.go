package reduction

import (
	"sort"

	"github.com/katalvlaran/setcoversolver/rng"
)

// applyIdenticalSets implements the set half of rule 5: hash each live
// set's element list with a per-element random 64-bit tag (XOR is
// order-independent, so equal element lists always hash equal), group
// by (hash, size), and within each group drop exact duplicates —
// multiple sets covering exactly the same elements, at any cost —
// keeping the cheapest survivor; every dropped set's out-lift joins
// mandatory since it is now permanently excluded. Zero-element live
// sets (left over from some other rule's element removals) are pruned
// outright the same way.
func (ri *ReductionInstance) applyIdenticalSets(elementTags []uint64) bool {
	type entry struct {
		id   int
		hash uint64
	}
	var entries []entry
	for sid := 0; sid < ri.numSets(); sid++ {
		if !ri.setIsLive(sid) {
			continue
		}
		if ri.sets[sid].live == 0 {
			ri.addMandatory(ri.unreduction.out[sid])
			ri.removeSet(sid)
			continue
		}
		var h uint64
		for _, e := range ri.liveElementsOf(sid) {
			h ^= elementTags[e]
		}
		entries = append(entries, entry{sid, h})
	}
	if len(entries) < 2 {
		return false
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hash != entries[j].hash {
			return entries[i].hash < entries[j].hash
		}
		si, sj := ri.sets[entries[i].id].live, ri.sets[entries[j].id].live
		if si != sj {
			return si < sj
		}
		// Cheapest survives: process expensive duplicates first so a
		// later, cheaper identical set displaces it.
		return ri.sets[entries[i].id].cost > ri.sets[entries[j].id].cost
	})

	changed := false
	for i := range entries {
		sid := entries[i].id
		if !ri.setIsLive(sid) {
			continue
		}
		size := ri.sets[sid].live
		var kept []int
		for j := i - 1; j >= 0; j-- {
			if entries[j].hash != entries[i].hash {
				break
			}
			other := entries[j].id
			if !ri.setIsLive(other) || ri.sets[other].live != size {
				continue
			}
			kept = ri.liveElementsOf(other)
			if sameElementSet(ri.liveElementsOf(sid), kept) {
				// other sorts earlier, so it costs at least as much as sid.
				ri.addMandatory(ri.unreduction.out[other])
				ri.removeSet(other)
				changed = true
				break
			}
		}
	}
	return changed
}

// applyIdenticalElements implements the element half of rule 5: two
// live elements with exactly the same covering-set list are redundant
// constraints of one another (covering one automatically covers the
// other). One survives; no lift bookkeeping applies since elements
// carry no cost or in/out lists of their own.
func (ri *ReductionInstance) applyIdenticalElements(setTags []uint64) bool {
	type entry struct {
		id   int
		hash uint64
	}
	var entries []entry
	for eid := 0; eid < ri.numElements(); eid++ {
		if !ri.elementIsLive(eid) {
			continue
		}
		var h uint64
		for _, s := range ri.liveSetsOf(eid) {
			h ^= setTags[s]
		}
		entries = append(entries, entry{eid, h})
	}
	if len(entries) < 2 {
		return false
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hash != entries[j].hash {
			return entries[i].hash < entries[j].hash
		}
		return ri.elements[entries[i].id].live < ri.elements[entries[j].id].live
	})

	changed := false
	for i := range entries {
		eid := entries[i].id
		if !ri.elementIsLive(eid) {
			continue
		}
		degree := ri.elements[eid].live
		for j := i - 1; j >= 0; j-- {
			if entries[j].hash != entries[i].hash {
				break
			}
			other := entries[j].id
			if !ri.elementIsLive(other) || ri.elements[other].live != degree {
				continue
			}
			if sameElementSet(ri.liveSetsOf(eid), ri.liveSetsOf(other)) {
				ri.removeElement(eid)
				changed = true
				break
			}
		}
	}
	return changed
}

func sameElementSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]bool, len(b))
	for _, x := range b {
		set[x] = true
	}
	for _, x := range a {
		if !set[x] {
			return false
		}
	}
	return true
}

// randomTags draws one independent 64-bit tag per index from src,
// used to seed the set/element identity hashes of rule 5.
func randomTags(n int, src *rng.Source) []uint64 {
	tags := make([]uint64, n)
	for i := range tags {
		tags[i] = src.Uint64()
	}
	return tags
}
