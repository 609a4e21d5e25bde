// Package formatter implements the algorithm-facing side of output
// handling: a thread-safe "best so far" tracker that every algorithm
// publishes improving solutions through, a running ledger of those
// improvements for reporting, and the structured, leveled logging
// every algorithm entry point emits progress through.
//
// A Formatter is safe for concurrent use: every exported method takes
// the same mutex, matching the "must be thread-safe w.r.t. the
// caller's output sinks" requirement on the new-solution callback.
package formatter

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/setcoversolver/solution"
)

// Snapshot is one entry of the improvement ledger: the best cost and
// best known bound at the moment it was taken, and how long the run
// had been going. Cost or Bound is -1 when nothing has been recorded
// for that field yet.
type Snapshot struct {
	Cost          int64
	Bound         int64
	ElapsedMillis int64
}

type config struct {
	writers        []io.Writer
	level          zerolog.Level
	onlyWriteAtEnd bool
	onImprovement  func(*solution.Solution)
}

// Option configures a Formatter.
type Option func(*config)

// WithLogWriter adds w as a destination for log events. Calling this
// more than once (e.g. once for --log's file and once for
// --log-to-stderr) fans every event out to all of them.
func WithLogWriter(w io.Writer) Option {
	return func(cfg *config) { cfg.writers = append(cfg.writers, w) }
}

// WithVerbosity maps the CLI's --verbosity-level (0 quietest upward)
// onto a zerolog level.
func WithVerbosity(v int) Option {
	return func(cfg *config) { cfg.level = verbosityLevel(v) }
}

func verbosityLevel(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.Disabled
	case v == 1:
		return zerolog.ErrorLevel
	case v == 2:
		return zerolog.WarnLevel
	case v == 3:
		return zerolog.InfoLevel
	case v == 4:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// WithOnlyWriteAtEnd defers the improvement callback until Flush,
// matching --only-write-at-the-end: intermediate improvements are
// still tracked and logged, just not pushed to the callback until the
// run concludes.
func WithOnlyWriteAtEnd(v bool) Option {
	return func(cfg *config) { cfg.onlyWriteAtEnd = v }
}

// WithOnImprovement registers the callback invoked with a snapshot of
// every newly improving feasible solution (immediately, unless
// WithOnlyWriteAtEnd is set).
func WithOnImprovement(fn func(*solution.Solution)) Option {
	return func(cfg *config) { cfg.onImprovement = fn }
}

// Formatter tracks the best feasible solution and best bound seen so
// far across a single algorithm run, logging every update and
// maintaining the IntermediaryOutputs ledger report.Output publishes.
type Formatter struct {
	mu sync.Mutex

	startedAt time.Time

	hasBest  bool
	bestCost int64
	best     *solution.Solution

	hasBound bool
	bound    int64

	snapshots []Snapshot

	onlyWriteAtEnd bool
	onImprovement  func(*solution.Solution)
	logger         zerolog.Logger
}

// New returns a Formatter whose clock starts now.
func New(opts ...Option) *Formatter {
	cfg := config{level: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(&cfg)
	}

	var w io.Writer
	switch len(cfg.writers) {
	case 0:
		w = io.Discard
	case 1:
		w = cfg.writers[0]
	default:
		w = zerolog.MultiLevelWriter(cfg.writers...)
	}
	logger := zerolog.New(w).Level(cfg.level).With().
		Timestamp().
		Str("component", "formatter").
		Logger()

	return &Formatter{
		startedAt:      time.Now(),
		onlyWriteAtEnd: cfg.onlyWriteAtEnd,
		onImprovement:  cfg.onImprovement,
		logger:         logger,
	}
}

// Record reports a candidate solution. It is a no-op (returning false)
// unless sol is feasible and strictly cheaper than the current best —
// the "Monotone best" property: BestCost never increases over the
// life of a Formatter. On a genuine improvement it clones sol into the
// best-so-far slot, appends a Snapshot, logs it, and — unless
// WithOnlyWriteAtEnd is set — invokes the improvement callback.
func (f *Formatter) Record(sol *solution.Solution) bool {
	if sol == nil || !sol.Feasible() {
		return false
	}

	f.mu.Lock()
	cost := sol.Cost()
	if f.hasBest && cost >= f.bestCost {
		f.mu.Unlock()
		return false
	}
	f.hasBest = true
	f.bestCost = cost
	f.best = sol.Clone()
	f.appendSnapshotLocked()
	f.logger.Info().Int64("cost", cost).Int("chosen_sets", sol.Len()).Msg("improved solution")
	cb := f.onImprovement
	deferred := f.onlyWriteAtEnd
	best := f.best
	f.mu.Unlock()

	if cb != nil && !deferred {
		cb(best.Clone())
	}
	return true
}

// SetBound records a lower bound, replacing any earlier one
// unconditionally. The algorithm wrappers call it once per run with
// their polynomial or MILP bound.
func (f *Formatter) SetBound(bound int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasBound = true
	f.bound = bound
	f.appendSnapshotLocked()
	f.logger.Info().Int64("bound", bound).Msg("bound updated")
}

// Flush invokes the improvement callback with the final best solution
// if WithOnlyWriteAtEnd deferred every earlier call; otherwise it is a
// no-op, since the callback already saw every improvement as it
// happened. Call once, after an algorithm run concludes.
func (f *Formatter) Flush() {
	f.mu.Lock()
	cb := f.onImprovement
	deferred := f.onlyWriteAtEnd
	best := f.best
	hasBest := f.hasBest
	f.mu.Unlock()

	if cb != nil && deferred && hasBest {
		cb(best.Clone())
	}
}

// BestCost returns the best cost recorded so far and whether any
// feasible solution has been recorded yet.
func (f *Formatter) BestCost() (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bestCost, f.hasBest
}

// Best returns a clone of the best solution recorded so far, or nil if
// none has been recorded yet.
func (f *Formatter) Best() *solution.Solution {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasBest {
		return nil
	}
	return f.best.Clone()
}

// Bound returns the best lower bound recorded so far and whether one
// has been recorded yet.
func (f *Formatter) Bound() (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bound, f.hasBound
}

// Snapshots returns a copy of the improvement ledger in recording
// order, suitable for report.Output.IntermediaryOutputs.
func (f *Formatter) Snapshots() []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Snapshot(nil), f.snapshots...)
}

// Logger returns the Formatter's structured logger, for algorithms
// that want to emit their own progress events (e.g. reduction round
// counts) tagged consistently alongside improvement/bound events.
func (f *Formatter) Logger() *zerolog.Logger { return &f.logger }

func (f *Formatter) appendSnapshotLocked() {
	snap := Snapshot{ElapsedMillis: time.Since(f.startedAt).Milliseconds()}
	if f.hasBest {
		snap.Cost = f.bestCost
	} else {
		snap.Cost = -1
	}
	if f.hasBound {
		snap.Bound = f.bound
	} else {
		snap.Bound = -1
	}
	f.snapshots = append(f.snapshots, snap)
}
