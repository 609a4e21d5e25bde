// Package report defines the JSON result schema every algorithm entry
// point produces: the echoed run configuration, the best solution
// found, the best known bound, the optimality gaps derived from the
// two, and the intermediate-output ledger a formatter.Formatter built
// up while the algorithm ran.
package report

import (
	"encoding/json"
	"io"

	"github.com/katalvlaran/setcoversolver/formatter"
)

// Parameters echoes the resolved run configuration, the CLI surface's
// flags as parsed rather than as typed on the command line.
type Parameters struct {
	Input              string `json:"input"`
	Format             string `json:"format,omitempty"`
	Unicost            bool   `json:"unicost,omitempty"`
	Output             string `json:"output,omitempty"`
	Certificate        string `json:"certificate,omitempty"`
	CertificateFormat  string `json:"certificate_format,omitempty"`
	InitialSolution    string `json:"initial_solution,omitempty"`
	Algorithm          string `json:"algorithm"`
	HasGoal            bool   `json:"has_goal,omitempty"`
	Goal               int64  `json:"goal,omitempty"`
	Seed               int64  `json:"seed"`
	TimeLimitSeconds   float64 `json:"time_limit_seconds,omitempty"`
	VerbosityLevel     int    `json:"verbosity_level,omitempty"`
	LogFile            string `json:"log,omitempty"`
	LogToStderr        bool   `json:"log_to_stderr,omitempty"`
	OnlyWriteAtEnd     bool   `json:"only_write_at_the_end,omitempty"`
	Reduce             bool   `json:"reduce,omitempty"`
	SetFolding         bool   `json:"set_folding,omitempty"`
	Twin               bool   `json:"twin,omitempty"`
	UnconfinedSets     bool   `json:"unconfined_sets,omitempty"`
	DominatedSets      bool   `json:"dominated_sets_removal,omitempty"`
	DominatedElements  bool   `json:"dominated_elements_removal,omitempty"`
	ReductionTimeLimit float64 `json:"reduction_time_limit_seconds,omitempty"`
	MaximumIterations  int64  `json:"maximum_number_of_iterations,omitempty"`
	MaximumIterationsWithoutImprovement int64 `json:"maximum_number_of_iterations_without_improvement,omitempty"`
}

// SolutionSummary is the "Solution" object nested in Output: just the
// final cost, since the chosen sets themselves live in the certificate
// file, not the JSON result.
type SolutionSummary struct {
	Cost     int64 `json:"Cost"`
	Feasible bool  `json:"Feasible"`
}

// Status summarises how a run concluded.
type Status string

const (
	StatusOK          Status = "ok"
	StatusTimedOut    Status = "timed_out"
	StatusInterrupted Status = "interrupted"
	StatusGoalReached Status = "goal_reached"
	StatusUnavailable Status = "unavailable"
)

// Output is the top-level JSON result object every algorithm produces.
type Output struct {
	Parameters Parameters `json:"Parameters"`
	Solution   SolutionSummary `json:"Solution"`

	HasBound              bool    `json:"-"`
	Bound                 int64   `json:"Bound,omitempty"`
	AbsoluteOptimalityGap int64   `json:"AbsoluteOptimalityGap,omitempty"`
	RelativeOptimalityGap float64 `json:"RelativeOptimalityGap,omitempty"`

	TimeSeconds float64 `json:"Time"`
	Status      Status  `json:"Status"`

	IntermediaryOutputs []formatter.Snapshot `json:"IntermediaryOutputs"`
}

// New assembles an Output from a run's Parameters, its formatter
// (for the best solution, best bound, and improvement ledger), elapsed
// wall-clock time, and a concluding Status. Optimality gaps are left
// zero unless both a feasible cost and a bound were recorded.
func New(params Parameters, f *formatter.Formatter, elapsed float64, status Status) Output {
	out := Output{
		Parameters:  params,
		TimeSeconds: elapsed,
		Status:      status,
	}

	if cost, ok := f.BestCost(); ok {
		out.Solution = SolutionSummary{Cost: cost, Feasible: true}
	}
	if bound, ok := f.Bound(); ok {
		out.HasBound = true
		out.Bound = bound
	}
	if out.Solution.Feasible && out.HasBound {
		out.AbsoluteOptimalityGap = out.Solution.Cost - out.Bound
		if out.Bound != 0 {
			out.RelativeOptimalityGap = float64(out.AbsoluteOptimalityGap) / float64(out.Bound)
		}
	}
	out.IntermediaryOutputs = f.Snapshots()

	return out
}

// Write marshals out as indented JSON to w.
func Write(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
