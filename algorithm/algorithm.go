// Package algorithm provides the registry dispatching the CLI's
// --algorithm flag onto a concrete run: every constructive heuristic,
// both local-search metaheuristics, the two polynomial bounds, and the
// three (stubbed) MILP back-ends, each wired to reduce the instance
// first when asked and lift the result back through
// reduction.UnreductionMap, then package it as a report.Output.
package algorithm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/formatter"
	"github.com/katalvlaran/setcoversolver/greedy"
	"github.com/katalvlaran/setcoversolver/lns"
	"github.com/katalvlaran/setcoversolver/milp"
	"github.com/katalvlaran/setcoversolver/reduction"
	"github.com/katalvlaran/setcoversolver/report"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/rowweighting"
	"github.com/katalvlaran/setcoversolver/solution"
	"github.com/katalvlaran/setcoversolver/timer"
)

// ErrUnknownAlgorithm is returned by Run (and Registry lookups) for an
// --algorithm value none of the thirteen entries recognise.
var ErrUnknownAlgorithm = errors.New("algorithm: unknown algorithm")

// Params carries everything a registry entry needs beyond the
// instance itself: the shared PRNG and timer, the reduction rule
// selection, local-search stopping conditions, and the formatter
// every entry reports improvements and bounds through.
type Params struct {
	Src *rng.Source
	Tmr *timer.Timer
	F   *formatter.Formatter

	Reduce           bool
	ReductionOptions []reduction.Option

	HasGoal                             bool
	Goal                                int64
	MaximumIterations                   int64
	MaximumIterationsWithoutImprovement int64
	BestSolutionUpdateFrequency         int64

	// CLIParams is echoed verbatim into the returned report.Output's
	// Parameters field; Algorithm is overwritten with the registry
	// key that was actually run.
	CLIParams report.Parameters
}

// Func is one registry entry: given a context (threaded through only
// for the MILP back-ends, which poll it directly), the original
// instance, and Params, it returns a complete report.Output.
type Func func(ctx context.Context, ins *core.Instance, p Params) (*report.Output, error)

// Registry maps every --algorithm value to its Func.
var Registry = map[string]Func{
	"greedy":                      wrapGreedy(greedy.Forward),
	"greedy-lin":                  wrapGreedy(greedy.Lin),
	"greedy-reverse":               wrapGreedy(greedy.Reverse),
	"greedy-dual":                  wrapGreedy(greedy.Dual),
	"greedy-or-greedy-reverse":     wrapGreedy(greedy.OrReverse),
	"milp-cbc":                    wrapMILP(milp.StubCBC),
	"milp-gurobi":                 wrapMILP(milp.StubGurobi),
	"milp-highs":                  wrapMILP(milp.StubHighs),
	"local-search-row-weighting-1": runRowWeighting(true),
	"local-search-row-weighting-2": runRowWeighting(false),
	"large-neighborhood-search":    runLNS,
	"trivial-bound":                runTrivialBound,
	"clique-cover-bound":           runCliqueCoverBound,
}

// Run looks up name in Registry and invokes it, or returns
// ErrUnknownAlgorithm.
func Run(ctx context.Context, name string, ins *core.Instance, p Params) (*report.Output, error) {
	fn, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	p.CLIParams.Algorithm = name
	return fn(ctx, ins, p)
}

func elapsedSeconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// maybeReduce reduces ins when p.Reduce is set, returning the instance
// to actually run on and a lift function that promotes a Solution of
// that instance back onto ins (the identity when no reduction ran).
func maybeReduce(ins *core.Instance, p Params) (*core.Instance, func(*solution.Solution) *solution.Solution, error) {
	if !p.Reduce {
		return ins, func(s *solution.Solution) *solution.Solution { return s }, nil
	}
	reduced, unmap, _, err := reduction.Reduce(ins, p.Src, p.Tmr, p.ReductionOptions...)
	if err != nil {
		return nil, nil, err
	}
	lift := func(s *solution.Solution) *solution.Solution {
		original := solution.New(ins)
		unmap.Lift(s, original)
		return original
	}
	return reduced, lift, nil
}

// wrapGreedy adapts any of greedy's single-shot constructors
// (Forward, Lin, Reverse, Dual, OrReverse — all share the
// (*core.Instance, *timer.Timer) (*solution.Solution, error) shape)
// into a registry Func: reduce, construct, lift, record, report.
func wrapGreedy(construct func(*core.Instance, *timer.Timer) (*solution.Solution, error)) Func {
	return func(_ context.Context, ins *core.Instance, p Params) (*report.Output, error) {
		start := time.Now()
		runOn, lift, err := maybeReduce(ins, p)
		if err != nil {
			return nil, err
		}

		sol, err := construct(runOn, p.Tmr)
		if err != nil {
			return nil, err
		}
		p.F.Record(lift(sol))
		p.F.SetBound(greedy.TrivialBound(ins))
		p.F.Flush()

		status := report.StatusOK
		if p.Tmr != nil && p.Tmr.Interrupted() {
			status = report.StatusInterrupted
		}
		out := report.New(p.CLIParams, p.F, elapsedSeconds(start), status)
		return &out, nil
	}
}

func runTrivialBound(_ context.Context, ins *core.Instance, p Params) (*report.Output, error) {
	start := time.Now()
	p.F.SetBound(greedy.TrivialBound(ins))
	p.F.Flush()
	out := report.New(p.CLIParams, p.F, elapsedSeconds(start), report.StatusOK)
	return &out, nil
}

func runCliqueCoverBound(_ context.Context, ins *core.Instance, p Params) (*report.Output, error) {
	start := time.Now()
	p.F.SetBound(greedy.CliqueCoverBound(ins, p.Tmr))
	p.F.Flush()
	status := report.StatusOK
	if p.Tmr != nil && p.Tmr.Interrupted() {
		status = report.StatusInterrupted
	}
	out := report.New(p.CLIParams, p.F, elapsedSeconds(start), status)
	return &out, nil
}

func runRowWeighting(global bool) Func {
	return func(_ context.Context, ins *core.Instance, p Params) (*report.Output, error) {
		start := time.Now()
		runOn, lift, err := maybeReduce(ins, p)
		if err != nil {
			return nil, err
		}

		opts := rowWeightingOptions(p, lift)
		_, stats, err := rowweighting.Run(runOn, p.Src, p.Tmr, global, opts...)
		if err != nil {
			return nil, err
		}
		p.F.SetBound(greedy.TrivialBound(ins))
		p.F.Flush()

		status := report.StatusOK
		switch {
		case stats.ReachedGoal:
			status = report.StatusGoalReached
		case p.Tmr != nil && p.Tmr.Interrupted():
			status = report.StatusInterrupted
		case stats.TimedOut:
			status = report.StatusTimedOut
		}
		out := report.New(p.CLIParams, p.F, elapsedSeconds(start), status)
		return &out, nil
	}
}

func rowWeightingOptions(p Params, lift func(*solution.Solution) *solution.Solution) []rowweighting.Option {
	var opts []rowweighting.Option
	if n := p.MaximumIterations; n > 0 {
		opts = append(opts, rowweighting.WithMaximumIterations(n))
	}
	if n := p.MaximumIterationsWithoutImprovement; n > 0 {
		opts = append(opts, rowweighting.WithMaximumIterationsWithoutImprovement(n))
	}
	if n := p.BestSolutionUpdateFrequency; n > 0 {
		opts = append(opts, rowweighting.WithBestSolutionUpdateFrequency(n))
	}
	if p.HasGoal {
		opts = append(opts, rowweighting.WithGoal(p.Goal))
	}
	opts = append(opts, rowweighting.WithOnImprovement(func(sol *solution.Solution) {
		p.F.Record(lift(sol))
	}))
	return opts
}

func runLNS(_ context.Context, ins *core.Instance, p Params) (*report.Output, error) {
	start := time.Now()
	runOn, lift, err := maybeReduce(ins, p)
	if err != nil {
		return nil, err
	}

	var opts []lns.Option
	if n := p.MaximumIterations; n > 0 {
		opts = append(opts, lns.WithMaximumIterations(n))
	}
	if n := p.MaximumIterationsWithoutImprovement; n > 0 {
		opts = append(opts, lns.WithMaximumIterationsWithoutImprovement(n))
	}
	if n := p.BestSolutionUpdateFrequency; n > 0 {
		opts = append(opts, lns.WithBestSolutionUpdateFrequency(n))
	}
	if p.HasGoal {
		opts = append(opts, lns.WithGoal(p.Goal))
	}
	opts = append(opts, lns.WithOnImprovement(func(sol *solution.Solution) {
		p.F.Record(lift(sol))
	}))

	_, stats, err := lns.Run(runOn, p.Src, p.Tmr, opts...)
	if err != nil {
		return nil, err
	}
	p.F.SetBound(greedy.TrivialBound(ins))
	p.F.Flush()

	status := report.StatusOK
	switch {
	case stats.ReachedGoal:
		status = report.StatusGoalReached
	case p.Tmr != nil && p.Tmr.Interrupted():
		status = report.StatusInterrupted
	case stats.TimedOut:
		status = report.StatusTimedOut
	}
	out := report.New(p.CLIParams, p.F, elapsedSeconds(start), status)
	return &out, nil
}

// wrapMILP adapts a milp.Backend into a registry Func. Reduction is
// intentionally skipped: an exact back-end solves the original
// instance directly, the same way the original solver handed
// untouched instances to its external MILP processes.
func wrapMILP(backend milp.Backend) Func {
	return func(ctx context.Context, ins *core.Instance, p Params) (*report.Output, error) {
		start := time.Now()
		bound, mstatus, err := backend.Solve(ctx, ins)
		if err != nil {
			return nil, err
		}
		if mstatus != milp.StatusUnavailable {
			p.F.SetBound(bound)
		}
		p.F.Flush()

		status := report.StatusOK
		if mstatus == milp.StatusUnavailable {
			status = report.StatusUnavailable
		}
		out := report.New(p.CLIParams, p.F, elapsedSeconds(start), status)
		return &out, nil
	}
}
