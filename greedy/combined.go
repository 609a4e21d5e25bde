package greedy

import (
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// OrReverse runs both Forward and Reverse and keeps whichever reaches
// a feasible solution at lower cost, falling back to the other if one
// was cut short by the timer before becoming feasible.
func OrReverse(ins *core.Instance, tmr *timer.Timer) (*solution.Solution, error) {
	fwd, err := Forward(ins, tmr)
	if err != nil {
		return nil, err
	}
	if tmr != nil && tmr.NeedsToEnd() {
		return fwd, nil
	}

	rev, err := Reverse(ins, tmr)
	if err != nil {
		return nil, err
	}

	switch {
	case !rev.Feasible():
		return fwd, nil
	case !fwd.Feasible():
		return rev, nil
	case rev.Cost() < fwd.Cost():
		return rev, nil
	default:
		return fwd, nil
	}
}
