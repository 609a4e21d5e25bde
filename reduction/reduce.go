package reduction

import (
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/timer"
)

// Params configures which optional rules run and how many rounds the
// fixed point is given to settle, mirroring the functional-options
// pattern core.Builder and solution use throughout this module.
type Params struct {
	maximumNumberOfRounds int
	setFolding            bool
	twin                  bool
	unconfinedSets        bool
	dominatedSetsRemoval  bool
	dominatedElemsRemoval bool
}

// Option configures Params.
type Option func(*Params)

// defaultParams matches the default rule selection: the cheap rules
// (mandatory, dominated-by-2, folding, twin, identical) always run;
// the expensive, parameter-gated ones (unconfined, general dominated)
// default off, and the round cap defaults to 10.
func defaultParams() Params {
	return Params{
		maximumNumberOfRounds: 10,
		setFolding:            true,
		twin:                  true,
	}
}

// WithMaximumRounds overrides the round cap (defaults to 10, typically
// configured up to 999 for larger instances).
func WithMaximumRounds(n int) Option {
	return func(p *Params) {
		if n > 0 {
			p.maximumNumberOfRounds = n
		}
	}
}

// WithSetFolding toggles rule 3.
func WithSetFolding(on bool) Option { return func(p *Params) { p.setFolding = on } }

// WithTwin toggles rule 4.
func WithTwin(on bool) Option { return func(p *Params) { p.twin = on } }

// WithUnconfinedSets toggles rule 6.
func WithUnconfinedSets(on bool) Option { return func(p *Params) { p.unconfinedSets = on } }

// WithDominatedSetsRemoval toggles the set half of rule 7.
func WithDominatedSetsRemoval(on bool) Option {
	return func(p *Params) { p.dominatedSetsRemoval = on }
}

// WithDominatedElementsRemoval toggles the element half of rule 7.
func WithDominatedElementsRemoval(on bool) Option {
	return func(p *Params) { p.dominatedElemsRemoval = on }
}

// Stats reports how many rounds ran and whether the round cap (rather
// than a fixpoint or the timer) ended the loop, for the formatter's
// diagnostic log line.
type Stats struct {
	Rounds       int
	HitRoundCap  bool
	TimedOut     bool
	OriginalSets int
	ReducedSets  int
}

// Reduce runs the full rule suite to a fixed point (or the round cap,
// or the timer) starting from ins, and returns the reduced Instance
// alongside the UnreductionMap that lifts any Solution of it back
// onto ins.
func Reduce(ins *core.Instance, src *rng.Source, tmr *timer.Timer, opts ...Option) (*core.Instance, *UnreductionMap, Stats, error) {
	params := defaultParams()
	for _, opt := range opts {
		opt(&params)
	}

	ri := newReductionInstance(ins)
	stats := Stats{OriginalSets: ins.NumSets()}

	round := 0
	for ; round < params.maximumNumberOfRounds; round++ {
		if tmr != nil && tmr.NeedsToEnd() {
			stats.TimedOut = true
			break
		}

		found := false
		found = ri.applyMandatorySets(tmr) || found
		found = ri.applyDominatedByTwo(src) || found
		if tmr != nil && tmr.NeedsToEnd() {
			stats.TimedOut = true
			break
		}

		if params.setFolding {
			for ri.applySetFolding() {
				found = true
			}
		}
		if params.twin {
			found = ri.applyMandatorySets(tmr) || found
			found = ri.applyTwin() || found
		}

		elemTags := randomTags(ri.numElements(), src)
		setTags := randomTags(ri.numSets(), src)
		found = ri.applyIdenticalSets(elemTags) || found
		found = ri.applyIdenticalElements(setTags) || found

		if !found || round >= 4 {
			if params.unconfinedSets {
				found = ri.applyUnconfinedSets() || found
			}
			if params.dominatedSetsRemoval {
				found = ri.applyDominatedSets(src) || found
				if tmr != nil && tmr.NeedsToEnd() {
					stats.TimedOut = true
					break
				}
			}
			if params.dominatedElemsRemoval {
				found = ri.applyDominatedElements(src) || found
				if tmr != nil && tmr.NeedsToEnd() {
					stats.TimedOut = true
					break
				}
			}
		}

		ri.compactIfNeeded()

		if !found {
			break
		}
	}
	if round >= params.maximumNumberOfRounds {
		stats.Rounds = params.maximumNumberOfRounds
		stats.HitRoundCap = true
	} else {
		stats.Rounds = round + 1
	}

	if tmr == nil || !tmr.NeedsToEnd() {
		ri.applySmallComponents()
	}

	reduced, err := ri.toInstance()
	if err != nil {
		return nil, nil, stats, err
	}
	stats.ReducedSets = reduced.NumSets()

	um := ri.unreduction
	for _, sid := range um.mandatory {
		um.extraCost += ins.Set(sid).Cost
	}
	// A surviving set's out-list is paid unconditionally: if the
	// caller later leaves the set unselected, out's sets still cover
	// the elements it absorbed from a folded neighbour, so their cost
	// belongs in extra_cost rather than in the set's own reduced cost.
	for _, outIDs := range um.out {
		for _, sid := range outIDs {
			um.extraCost += ins.Set(sid).Cost
		}
	}

	return reduced, &um, stats, nil
}
