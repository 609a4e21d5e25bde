package reduction

import "github.com/katalvlaran/setcoversolver/timer"

// applyMandatorySets implements rule 1 as a single worklist loop:
// repeatedly (a) remove any live set that covers zero live elements,
// or covers exactly one live element that is also covered by another
// live set of no greater cost (a dominated single-element set), and
// (b) fix into mandatory any live set that is the unique remaining
// cover of some live element, then permanently remove every element
// it covers. Both halves can expose new candidates for the other, so
// the loop repeats to a fixpoint; removing elements in (b) may create
// new singleton sets for (a) to prune next pass.
func (ri *ReductionInstance) applyMandatorySets(tmr *timer.Timer) bool {
	changed := false
	for {
		progressed := false

		// (a) dominated singleton-coverage sets.
		for sid := 0; sid < ri.numSets(); sid++ {
			if tmr != nil && tmr.NeedsToEnd() {
				return changed
			}
			if !ri.setIsLive(sid) {
				continue
			}
			live := ri.liveElementsOf(sid)
			if len(live) == 0 {
				ri.addMandatory(ri.unreduction.out[sid])
				ri.removeSet(sid)
				changed, progressed = true, true
				continue
			}
			if len(live) != 1 {
				continue
			}
			e := live[0]
			cost := ri.sets[sid].cost
			dominated := false
			for _, other := range ri.elements[e].sets {
				if other == sid || !ri.setIsLive(other) {
					continue
				}
				if ri.sets[other].cost <= cost {
					dominated = true
					break
				}
			}
			if dominated {
				ri.addMandatory(ri.unreduction.out[sid])
				ri.removeSet(sid)
				changed, progressed = true, true
			}
		}

		// (b) unique remaining cover: fix into mandatory.
		fixedAny := false
		for eid := 0; eid < ri.numElements(); eid++ {
			if tmr != nil && tmr.NeedsToEnd() {
				return changed
			}
			if !ri.elementIsLive(eid) {
				continue
			}
			live := ri.liveSetsOf(eid)
			if len(live) != 1 {
				continue
			}
			sid := live[0]
			ri.fixMandatory(sid)
			changed, progressed, fixedAny = true, true, true
		}
		_ = fixedAny

		if !progressed {
			break
		}
	}
	return changed
}

// fixMandatory forces sid into every lifted solution: its in-list joins
// mandatory, then sid and every element it still covers are tombstoned
// (those elements are now permanently satisfied).
func (ri *ReductionInstance) fixMandatory(sid int) {
	if !ri.setIsLive(sid) {
		return
	}
	ri.addMandatory(ri.unreduction.in[sid])
	covered := ri.liveElementsOf(sid)
	ri.removeSet(sid)
	for _, e := range covered {
		ri.removeElement(e)
	}
}
