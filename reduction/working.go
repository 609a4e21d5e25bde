// Package reduction implements a fixed-point reduction engine: a
// mutable, tombstone-flagged working copy of a core.Instance, a fixed
// suite of eight rewrite rules applied in order until none fires or
// the round cap is reached, and the UnreductionMap that lifts a
// Solution of the reduced Instance back onto the original one. The
// surrounding Go idiom — functional options, mutex-free single-
// threaded mutation — follows core and solution.
package reduction

import (
	"github.com/katalvlaran/setcoversolver/core"
)

// compactionThreshold is the live-occupancy fraction below which the
// working representation is renumbered into a dense range.
const compactionThreshold = 0.9

// workingSet is one set of the mutable working instance. Elements may
// contain tombstoned (removed) element IDs between compactions; callers
// filter on the element's removed flag when iterating (see
// liveElementsOf).
type workingSet struct {
	removed  bool
	cost     int64
	elements []int
	live     int // count of non-tombstoned entries in elements
}

// workingElement is the dual of workingSet.
type workingElement struct {
	removed bool
	sets    []int
	live    int
}

// ReductionInstance is the mutable working copy rules 1–8 rewrite in
// place. IDs are dense in [0, len(sets)) / [0, len(elements)) between
// compactions and are renumbered by compact(); the parallel in/out
// slices of UnreductionMap are reordered in lock-step so a working ID
// always indexes the same logical set's lift lists.
type ReductionInstance struct {
	sets     []workingSet
	elements []workingElement

	liveSets     int
	liveElements int

	unreduction UnreductionMap
}

// newReductionInstance copies ins into a fresh working representation.
// Every original set id starts as its own identity lift: in = {id},
// out = {} — selecting the reduced set contributes the original set;
// not selecting it contributes nothing, until some rule composes
// these lists further.
func newReductionInstance(ins *core.Instance) *ReductionInstance {
	n, m := ins.NumSets(), ins.NumElements()
	ri := &ReductionInstance{
		sets:         make([]workingSet, n),
		elements:     make([]workingElement, m),
		liveSets:     n,
		liveElements: m,
		unreduction: UnreductionMap{
			in:  make([][]int, n),
			out: make([][]int, n),
		},
	}
	for i := 0; i < n; i++ {
		s := ins.Set(i)
		elems := append([]int(nil), s.Elements...)
		ri.sets[i] = workingSet{cost: s.Cost, elements: elems, live: len(elems)}
		ri.unreduction.in[i] = []int{i}
	}
	for j := 0; j < m; j++ {
		e := ins.Element(j)
		arcs := append([]int(nil), e.Sets...)
		ri.elements[j] = workingElement{sets: arcs, live: len(arcs)}
	}
	return ri
}

// numSets and numElements return the current working dimension,
// including tombstoned entries (use liveSets/liveElements for live
// counts).
func (ri *ReductionInstance) numSets() int     { return len(ri.sets) }
func (ri *ReductionInstance) numElements() int { return len(ri.elements) }

func (ri *ReductionInstance) setIsLive(id int) bool     { return !ri.sets[id].removed }
func (ri *ReductionInstance) elementIsLive(id int) bool { return !ri.elements[id].removed }

// liveElementsOf returns a snapshot of id's currently live incident
// elements; used before removeSet tombstones them.
func (ri *ReductionInstance) liveElementsOf(id int) []int {
	s := &ri.sets[id]
	out := make([]int, 0, s.live)
	for _, e := range s.elements {
		if !ri.elements[e].removed {
			out = append(out, e)
		}
	}
	return out
}

// liveSetsOf is the dual of liveElementsOf.
func (ri *ReductionInstance) liveSetsOf(id int) []int {
	e := &ri.elements[id]
	out := make([]int, 0, e.live)
	for _, s := range e.sets {
		if !ri.sets[s].removed {
			out = append(out, s)
		}
	}
	return out
}

// setContainsLiveElement reports whether set sid's live incidence list
// contains element eid.
func (ri *ReductionInstance) setContainsLiveElement(sid, eid int) bool {
	for _, e := range ri.sets[sid].elements {
		if e == eid && !ri.elements[e].removed {
			return true
		}
	}
	return false
}

// elementContainsLiveSet is the dual check.
func (ri *ReductionInstance) elementContainsLiveSet(eid, sid int) bool {
	for _, s := range ri.elements[eid].sets {
		if s == sid && !ri.sets[s].removed {
			return true
		}
	}
	return false
}

// removeSet tombstones sid and decrements the live-incidence counters
// of every element it still covers. It does not remove those elements;
// callers that mean to satisfy them permanently call removeElement
// explicitly (mandatory fixing does; plain domination removal does not).
func (ri *ReductionInstance) removeSet(sid int) {
	s := &ri.sets[sid]
	if s.removed {
		return
	}
	s.removed = true
	ri.liveSets--
	for _, e := range s.elements {
		if !ri.elements[e].removed {
			ri.elements[e].live--
		}
	}
}

// removeElement tombstones eid and decrements the live-incidence
// counters of every set still covering it.
func (ri *ReductionInstance) removeElement(eid int) {
	e := &ri.elements[eid]
	if e.removed {
		return
	}
	e.removed = true
	ri.liveElements--
	for _, s := range e.sets {
		if !ri.sets[s].removed {
			ri.sets[s].live--
		}
	}
}

// setNewElements replaces sid's element list outright (used by fold
// and twin, whose aggregate set covers a freshly unioned element set),
// adding sid to the reverse incidence of every new element.
func (ri *ReductionInstance) setNewElements(sid int, elems []int) {
	s := &ri.sets[sid]
	s.elements = elems
	s.live = len(elems)
	for _, e := range elems {
		ri.elements[e].sets = append(ri.elements[e].sets, sid)
		ri.elements[e].live++
	}
}

// addMandatory appends original set IDs to the global mandatory list.
func (ri *ReductionInstance) addMandatory(ids []int) {
	ri.unreduction.mandatory = append(ri.unreduction.mandatory, ids...)
}

// liveFraction reports the fraction of non-tombstoned sets and
// elements, the trigger compact() is measured against.
func (ri *ReductionInstance) liveFraction() float64 {
	n, m := len(ri.sets), len(ri.elements)
	if n+m == 0 {
		return 1
	}
	return float64(ri.liveSets+ri.liveElements) / float64(n+m)
}

// compactIfNeeded rebuilds dense ID ranges once live occupancy drops
// below compactionThreshold, remapping every incidence list and
// reordering the UnreductionMap's in/out slices in lock-step.
func (ri *ReductionInstance) compactIfNeeded() {
	if ri.liveFraction() >= compactionThreshold {
		return
	}
	ri.compact()
}

// compact unconditionally performs the rebuild described above.
func (ri *ReductionInstance) compact() {
	oldToNewSet := make([]int, len(ri.sets))
	newSets := make([]workingSet, 0, ri.liveSets)
	newIn := make([][]int, 0, ri.liveSets)
	newOut := make([][]int, 0, ri.liveSets)
	for i := range ri.sets {
		if ri.sets[i].removed {
			oldToNewSet[i] = -1
			continue
		}
		oldToNewSet[i] = len(newSets)
		newSets = append(newSets, ri.sets[i])
		newIn = append(newIn, ri.unreduction.in[i])
		newOut = append(newOut, ri.unreduction.out[i])
	}

	oldToNewElem := make([]int, len(ri.elements))
	newElems := make([]workingElement, 0, ri.liveElements)
	for j := range ri.elements {
		if ri.elements[j].removed {
			oldToNewElem[j] = -1
			continue
		}
		oldToNewElem[j] = len(newElems)
		newElems = append(newElems, ri.elements[j])
	}

	for i := range newSets {
		filtered := newSets[i].elements[:0:0]
		for _, e := range newSets[i].elements {
			if ne := oldToNewElem[e]; ne >= 0 {
				filtered = append(filtered, ne)
			}
		}
		newSets[i].elements = filtered
		newSets[i].live = len(filtered)
	}
	for j := range newElems {
		filtered := newElems[j].sets[:0:0]
		for _, s := range newElems[j].sets {
			if ns := oldToNewSet[s]; ns >= 0 {
				filtered = append(filtered, ns)
			}
		}
		newElems[j].sets = filtered
		newElems[j].live = len(filtered)
	}

	ri.sets = newSets
	ri.elements = newElems
	ri.unreduction.in = newIn
	ri.unreduction.out = newOut
	ri.liveSets = len(newSets)
	ri.liveElements = len(newElems)
}

// toInstance materialises the live working sets/elements as a fresh
// core.Instance via core.Builder, after a final unconditional compact.
func (ri *ReductionInstance) toInstance() (*core.Instance, error) {
	ri.compact()

	b := core.NewBuilder()
	if err := b.AddSets(len(ri.sets)); err != nil {
		return nil, err
	}
	if err := b.AddElements(len(ri.elements)); err != nil {
		return nil, err
	}
	for i, s := range ri.sets {
		if err := b.SetCost(i, s.cost); err != nil {
			return nil, err
		}
	}
	for i, s := range ri.sets {
		for _, e := range s.elements {
			if err := b.AddArc(i, e); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}
