package lns

import "math"

// scoreRatio is score(setID)/cost(setID), the value both heaps rank
// by: scoresIn wants this ascending (cheapest removal first), scoresOut
// wants it descending (best addition first). A free set that would
// lose or gain coverage is pinned to +Inf so it always sorts as the
// least attractive set to remove, or the most attractive to add; a
// free set contributing nothing is ranked 0, never preferred over a
// set that actually moves the score.
func (r *runner) scoreRatio(setID int) float64 {
	cost := r.ins.Set(setID).Cost
	sc := r.score[setID]
	if cost == 0 {
		if sc > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return float64(sc) / float64(cost)
}

func (r *runner) removalRatio(setID int) float64  { return r.scoreRatio(setID) }
func (r *runner) additionRatio(setID int) float64 { return r.scoreRatio(setID) }

// fixHeap restores heap order for setID in whichever heap currently
// holds it, a no-op if setID is not a member of either (e.g. mandatory).
func (r *runner) fixHeap(setID int) {
	if r.sol.Contains(setID) {
		r.scoresIn.Fix(setID)
	} else {
		r.scoresOut.Fix(setID)
	}
}

// removeSet deselects setID, updates the penalty and score of every
// affected neighbour, and moves setID from scoresIn to scoresOut.
func (r *runner) removeSet(setID int, iteration int64) {
	set := r.ins.Set(setID)

	r.sol.Remove(setID)
	r.scoresIn.Remove(setID)

	for _, e := range set.Elements {
		elem := r.ins.Element(e)
		switch r.sol.CoverCount(e) {
		case 0:
			r.penalty[e]++
			for _, ns := range elem.Sets {
				if ns == setID {
					continue
				}
				r.score[ns] += r.penalty[e]
				r.fixHeap(ns)
			}
		case 1:
			for _, ns := range elem.Sets {
				if r.sol.Contains(ns) {
					r.score[ns] += r.penalty[e]
					r.fixHeap(ns)
				}
			}
		}
	}

	r.score[setID] = r.computeScore(setID)
	r.timestamp[setID] = iteration
	r.lastRemoval[setID] = iteration
	r.scoresOut.Push(setID)
}

// addSet selects setID, updates the score of every affected neighbour,
// and moves setID from scoresOut to scoresIn (unless mandatory, which
// never enters either heap).
func (r *runner) addSet(setID int, iteration int64) {
	set := r.ins.Set(setID)

	r.sol.Add(setID)
	r.scoresOut.Remove(setID)

	for _, e := range set.Elements {
		elem := r.ins.Element(e)
		switch r.sol.CoverCount(e) {
		case 1:
			for _, ns := range elem.Sets {
				if ns == setID || r.sol.Contains(ns) {
					continue
				}
				r.score[ns] -= r.penalty[e]
				r.fixHeap(ns)
			}
		case 2:
			for _, ns := range elem.Sets {
				if ns == setID || !r.sol.Contains(ns) {
					continue
				}
				r.score[ns] -= r.penalty[e]
				r.fixHeap(ns)
			}
		}
	}

	r.score[setID] = r.computeScore(setID)
	r.timestamp[setID] = iteration
	r.lastAddition[setID] = iteration
	if !set.Mandatory {
		r.scoresIn.Push(setID)
	}
}

// loggedRemove/loggedAdd wrap removeSet/addSet with a change-log entry,
// used for moves runIteration must be able to undo on rollback.
func (r *runner) loggedRemove(setID int, iteration int64) {
	r.removeSet(setID, iteration)
	r.log = append(r.log, logEntry{added: false, setID: setID})
}

func (r *runner) loggedAdd(setID int, iteration int64) {
	r.addSet(setID, iteration)
	r.log = append(r.log, logEntry{added: true, setID: setID})
}
