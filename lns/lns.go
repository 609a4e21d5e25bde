// Package lns implements large-neighbourhood search: destroy one
// chosen set per iteration, repair by re-adding the best-value sets
// until feasible again, and accept the result as the new baseline when
// it improves on the last accepted cost; moves made since the last
// accepted baseline are rolled back once, when the search stops.
//
// Unlike row-weighting's per-component scheduling, LNS runs over the
// whole instance as a single pool, ranked by two indexed heaps: which
// in-solution set is cheapest to remove, and which out-of-solution set
// is most valuable to add back.
package lns

import (
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/greedy"
	"github.com/katalvlaran/setcoversolver/heapindex"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// Params configures a Run.
type Params struct {
	maximumIterations               int64
	maximumIterationsWithoutImprove int64
	bestSolutionUpdateFrequency     int64
	hasGoal                         bool
	goal                            int64
	onImprovement                   func(*solution.Solution)
}

// Option configures Params.
type Option func(*Params)

func defaultParams() Params {
	return Params{
		maximumIterations:               1 << 40,
		maximumIterationsWithoutImprove: 1 << 40,
		bestSolutionUpdateFrequency:     1,
	}
}

// WithMaximumIterations caps the total number of destroy/repair rounds.
func WithMaximumIterations(n int64) Option {
	return func(p *Params) {
		if n > 0 {
			p.maximumIterations = n
		}
	}
}

// WithMaximumIterationsWithoutImprovement stops the search once this
// many iterations have passed since the accepted cost last dropped.
func WithMaximumIterationsWithoutImprovement(n int64) Option {
	return func(p *Params) {
		if n > 0 {
			p.maximumIterationsWithoutImprove = n
		}
	}
}

// WithBestSolutionUpdateFrequency throttles how often an improving
// solution is materialised and published to OnImprovement, in
// iterations.
func WithBestSolutionUpdateFrequency(n int64) Option {
	return func(p *Params) {
		if n > 0 {
			p.bestSolutionUpdateFrequency = n
		}
	}
}

// WithGoal stops the search as soon as the accepted cost reaches goal
// or below.
func WithGoal(goal int64) Option {
	return func(p *Params) { p.hasGoal = true; p.goal = goal }
}

// WithOnImprovement registers a callback invoked, at most once per
// bestSolutionUpdateFrequency iterations, with a snapshot of every
// newly improving feasible solution.
func WithOnImprovement(fn func(*solution.Solution)) Option {
	return func(p *Params) { p.onImprovement = fn }
}

// Stats summarises a completed run.
type Stats struct {
	Iterations  int64
	TimedOut    bool
	ReachedGoal bool
}

// Run seeds a solution with greedy.OrReverse, then performs
// large-neighbourhood search until the timer, iteration cap,
// no-improvement cap, or goal stops it. The working solution is free to
// wander through non-improving iterations in between; every strict
// improvement clears the pending change log and becomes the new
// baseline, and whatever is left of the log once the search stops is
// rolled back, so Run always returns a feasible solution no worse than
// the seed.
func Run(ins *core.Instance, src *rng.Source, tmr *timer.Timer, opts ...Option) (*solution.Solution, Stats, error) {
	params := defaultParams()
	for _, opt := range opts {
		opt(&params)
	}

	seed, err := greedy.OrReverse(ins, tmr)
	if err != nil {
		return nil, Stats{}, err
	}

	r := newRunner(ins, seed)
	best := seed.Clone()
	bestCost := seed.Cost()
	publish := func() {
		if params.onImprovement != nil {
			params.onImprovement(best.Clone())
		}
	}

	var stats Stats
	var iterSinceImprove int64
	for {
		if tmr != nil && tmr.NeedsToEnd() {
			stats.TimedOut = true
			break
		}
		if stats.Iterations >= params.maximumIterations {
			break
		}
		if iterSinceImprove >= params.maximumIterationsWithoutImprove {
			break
		}
		if params.hasGoal && bestCost <= params.goal {
			stats.ReachedGoal = true
			break
		}
		if r.scoresIn.Len() == 0 {
			break
		}

		r.runIteration(stats.Iterations, src)
		stats.Iterations++

		// The working solution is allowed to wander through worse,
		// even infeasible-between-moves states across iterations — it
		// is only ever reset back to the last improvement at the very
		// end (see the rollback below), never per-iteration. This is
		// what lets destroy/repair escape a local optimum instead of
		// hill-climbing straight back to it every time.
		if r.sol.Feasible() && r.sol.Cost() < bestCost {
			bestCost = r.sol.Cost()
			best = r.sol.Clone()
			r.acceptImprovement()
			iterSinceImprove = 0
			if stats.Iterations%params.bestSolutionUpdateFrequency == 0 {
				publish()
			}
		} else {
			iterSinceImprove++
		}
	}
	r.rollback(stats.Iterations)
	publish()

	return best, stats, nil
}

// runner holds every piece of mutable state a single Run needs.
type runner struct {
	ins *core.Instance
	sol *solution.Solution

	penalty []int64

	score        []int64
	timestamp    []int64
	lastAddition []int64
	lastRemoval  []int64

	scoresIn  *heapindex.Heap // in-solution sets, ranked cheapest-to-remove first
	scoresOut *heapindex.Heap // out-of-solution sets, ranked best-to-add first

	log []logEntry
}

type logEntry struct {
	added bool // true: this entry was an addSet; false: a removeSet
	setID int
}

func newRunner(ins *core.Instance, sol *solution.Solution) *runner {
	r := &runner{
		ins:          ins,
		sol:          sol,
		penalty:      make([]int64, ins.NumElements()),
		score:        make([]int64, ins.NumSets()),
		timestamp:    make([]int64, ins.NumSets()),
		lastAddition: make([]int64, ins.NumSets()),
		lastRemoval:  make([]int64, ins.NumSets()),
	}
	for i := range r.penalty {
		r.penalty[i] = 1
	}
	for i := range r.lastAddition {
		r.lastAddition[i] = -1
		r.lastRemoval[i] = -1
	}
	for i := range r.score {
		r.score[i] = r.computeScore(i)
	}

	n := ins.NumSets()
	r.scoresIn = heapindex.New(n, 2, func(a, b int) bool {
		ra, rb := r.removalRatio(a), r.removalRatio(b)
		if ra != rb {
			return ra < rb
		}
		if r.lastAddition[a] != r.lastAddition[b] {
			return r.lastAddition[a] < r.lastAddition[b]
		}
		return a < b
	})
	r.scoresOut = heapindex.New(n, 2, func(a, b int) bool {
		ra, rb := r.additionRatio(a), r.additionRatio(b)
		if ra != rb {
			return ra > rb
		}
		if r.lastRemoval[a] != r.lastRemoval[b] {
			return r.lastRemoval[a] < r.lastRemoval[b]
		}
		return a < b
	})
	for s := 0; s < n; s++ {
		if sol.Contains(s) {
			if !ins.Set(s).Mandatory {
				r.scoresIn.Push(s)
			}
		} else {
			r.scoresOut.Push(s)
		}
	}
	return r
}

// computeScore recomputes a set's score from the current solution and
// penalties from scratch; used only at setup and after a rollback.
func (r *runner) computeScore(setID int) int64 {
	set := r.ins.Set(setID)
	var s int64
	if r.sol.Contains(setID) {
		for _, e := range set.Elements {
			if r.sol.CoverCount(e) == 1 {
				s += r.penalty[e]
			}
		}
	} else {
		for _, e := range set.Elements {
			if r.sol.CoverCount(e) == 0 {
				s += r.penalty[e]
			}
		}
	}
	return s
}
