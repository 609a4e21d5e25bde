// Package rowweighting implements row-weighting local search: a
// penalty-driven descent that alternates a repair phase (drop the
// cheapest-to-remove chosen set) with a diversification phase
// (remove-then-add or swap) whenever repair leaves some element
// uncovered, partitioned into independent per-component schedules so
// one hard component cannot starve the others.
//
// Every chosen set's removal cost and every unchosen set's addition
// value is kept as a "score": the total penalty of the elements a
// move would uncover or cover. Penalties start proportional to
// 1/|element.sets| and grow each time an element is left uncovered,
// steering the search away from whatever made that element hard to
// keep covered — the technique this module is named for.
package rowweighting

import (
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/greedy"
	"github.com/katalvlaran/setcoversolver/heapindex"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// swapCandidates bounds how many of a component's cheapest in-solution
// sets are considered when looking for a removal partner, both in the
// remove-then-add step and the swap step.
const swapCandidates = 7

// penaltyCap triggers a halving of every element penalty once any of
// them would otherwise exceed it, keeping scores within int64 range
// over a long run.
const penaltyCap = int64(2e16)

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

// WithMaximumIterations caps the total number of iterations across all
// components.
func WithMaximumIterations(n int64) Option {
	return func(p *Params) {
		if n > 0 {
			p.maximumIterations = n
		}
	}
}

// WithMaximumIterationsWithoutImprovement stops the search once this
// many iterations have passed since the best-so-far cost last dropped.
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

// WithGoal stops the search as soon as the best-so-far cost reaches
// goal or below.
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

// Run seeds a solution with Forward greedy, then performs row-weighting
// local search until the timer, iteration cap, no-improvement cap, or
// goal stops it. It always returns the best feasible solution found;
// if the seed itself is already infeasible (should not happen on a
// valid Instance) it is returned as-is.
//
// global treats the whole instance as a single component — the
// "local-search-row-weighting-1" variant — by collapsing every
// component's round-robin window into one.
func Run(ins *core.Instance, src *rng.Source, tmr *timer.Timer, global bool, opts ...Option) (*solution.Solution, Stats, error) {
	params := defaultParams()
	for _, opt := range opts {
		opt(&params)
	}

	sol, err := greedy.Forward(ins, tmr)
	if err != nil {
		return nil, Stats{}, err
	}

	r := newRunner(ins, src, sol, global)
	best := sol.Clone()
	bestCost := sol.Cost()
	publish := func() {
		if params.onImprovement != nil {
			params.onImprovement(best.Clone())
		}
	}

	var stats Stats
	var iterSinceImprove int64
	for len(r.active) > 0 {
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

		comp := r.nextComponent(stats.Iterations)
		r.runIteration(comp, stats.Iterations)
		stats.Iterations++

		if sol.Feasible() && sol.Cost() < bestCost {
			bestCost = sol.Cost()
			best = sol.Clone()
			iterSinceImprove = 0
			if stats.Iterations%params.bestSolutionUpdateFrequency == 0 {
				publish()
			}
		} else {
			iterSinceImprove++
		}
	}
	if sol.Feasible() && sol.Cost() < bestCost {
		bestCost = sol.Cost()
		best = sol.Clone()
	}
	publish()

	return best, stats, nil
}

// runner holds every piece of mutable state a single Run needs.
type runner struct {
	ins *core.Instance
	src *rng.Source
	sol *solution.Solution

	penalty []int64

	score        []int64
	timestamp    []int64
	lastAddition []int64
	lastRemoval  []int64

	comps      []componentState
	active     []int // indices into comps not yet marked optimal
	global     bool
}

type componentState struct {
	elements    []int
	sets        []int
	heap        *heapindex.Heap // in-solution, non-mandatory members
	lastAdded   int
	lastRemoved int
	iterations  int64
	penaltySum  int64
	optimal     bool
}

func newRunner(ins *core.Instance, src *rng.Source, sol *solution.Solution, global bool) *runner {
	r := &runner{
		ins:          ins,
		src:          src,
		sol:          sol,
		penalty:      make([]int64, ins.NumElements()),
		score:        make([]int64, ins.NumSets()),
		timestamp:    make([]int64, ins.NumSets()),
		lastAddition: make([]int64, ins.NumSets()),
		lastRemoval:  make([]int64, ins.NumSets()),
		global:       global,
	}
	for i := range r.lastAddition {
		r.lastAddition[i] = -1
		r.lastRemoval[i] = -1
	}
	for e := 0; e < ins.NumElements(); e++ {
		r.penalty[e] = initialPenalty(len(ins.Element(e).Sets))
	}

	groups := ins.Components()
	if global {
		allElems := make([]int, 0, ins.NumElements())
		for e := 0; e < ins.NumElements(); e++ {
			allElems = append(allElems, e)
		}
		allSets := make([]int, 0, ins.NumSets())
		for s := 0; s < ins.NumSets(); s++ {
			allSets = append(allSets, s)
		}
		r.comps = []componentState{{elements: allElems, sets: allSets, lastAdded: -1, lastRemoved: -1}}
	} else {
		r.comps = make([]componentState, len(groups))
		for i, c := range groups {
			r.comps[i] = componentState{elements: c.Elements, sets: c.Sets, lastAdded: -1, lastRemoved: -1}
		}
	}

	for i := range r.score {
		r.score[i] = r.computeScore(i)
	}

	for ci := range r.comps {
		c := &r.comps[ci]
		n := ins.NumSets()
		c.heap = heapindex.New(n, 4, func(a, b int) bool {
			if r.score[a] != r.score[b] {
				return r.score[a] < r.score[b]
			}
			if r.timestamp[a] != r.timestamp[b] {
				return r.timestamp[a] < r.timestamp[b]
			}
			return a < b
		})
		for _, s := range c.sets {
			if sol.Contains(s) && !ins.Set(s).Mandatory {
				c.heap.Push(s)
			}
		}
		if c.heap.Len() == 0 {
			c.optimal = true
		} else {
			r.active = append(r.active, ci)
		}
	}
	return r
}

func initialPenalty(numCoveringSets int) int64 {
	if numCoveringSets <= 0 {
		return 1
	}
	p := int64(10000) / int64(numCoveringSets)
	if p < 1 {
		p = 1
	}
	return p
}

// computeScore recomputes a set's score from the current solution and
// penalties from scratch. It runs at setup, in rebuildScores, and for
// the set that addSet/removeSet flips; every other affected set's score
// is updated incrementally there.
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

// nextComponent implements the component round-robin: iteration k is
// assigned to the active component whose contiguous element-count
// window contains k mod (total active elements).
func (r *runner) nextComponent(k int64) int {
	var total int64
	for _, ci := range r.active {
		total += int64(len(r.comps[ci].elements))
	}
	if total == 0 {
		return r.active[0]
	}
	pos := k % total
	var cum int64
	for _, ci := range r.active {
		cum += int64(len(r.comps[ci].elements))
		if pos < cum {
			return ci
		}
	}
	return r.active[len(r.active)-1]
}

// componentFeasible reports whether every element of the component is
// covered. For the global variant this is sol.Feasible(); otherwise it
// defers to the Solution's own per-component bookkeeping.
func (r *runner) componentFeasible(ci int) bool {
	if r.global {
		return r.sol.Feasible()
	}
	return r.sol.ComponentFeasible(ci)
}

// setComponent returns the comps[] index owning setID: always 0 under
// the global variant, otherwise the Instance's own component index.
func (r *runner) setComponent(setID int) int {
	if r.global {
		return 0
	}
	return r.ins.Set(setID).Component
}

// dropOptimal removes ci from the active list once its heap has been
// drained to nothing (every surviving member is mandatory).
func (r *runner) dropOptimal(ci int) {
	r.comps[ci].optimal = true
	for i, v := range r.active {
		if v == ci {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}
