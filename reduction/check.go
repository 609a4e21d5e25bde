package reduction

import "fmt"

// check recomputes every bidirectional incidence and live-counter
// invariant of the working representation, mirroring core.Instance's
// own Check(). It is for debug builds and tests; production runs skip
// it, and Reduce itself never calls it.
func (ri *ReductionInstance) check() error {
	for sid, s := range ri.sets {
		if s.removed {
			continue
		}
		live := 0
		for _, eid := range s.elements {
			if ri.elements[eid].removed {
				continue
			}
			live++
			if !ri.elementContainsLiveSet(eid, sid) {
				return fmt.Errorf("reduction: set %d covers element %d but element has no back-reference", sid, eid)
			}
		}
		if live != s.live {
			return fmt.Errorf("reduction: set %d live counter %d does not match actual %d", sid, s.live, live)
		}
	}
	for eid, e := range ri.elements {
		if e.removed {
			continue
		}
		live := 0
		for _, sid := range e.sets {
			if ri.sets[sid].removed {
				continue
			}
			live++
			if !ri.setContainsLiveElement(sid, eid) {
				return fmt.Errorf("reduction: element %d covered by set %d but set has no forward reference", eid, sid)
			}
		}
		if live != e.live {
			return fmt.Errorf("reduction: element %d live counter %d does not match actual %d", eid, e.live, live)
		}
	}
	return nil
}
