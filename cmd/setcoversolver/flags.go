package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/setcoversolver/algorithm"
	"github.com/katalvlaran/setcoversolver/report"
)

// cliFlags holds every command-line flag this binary accepts, after
// parsing and validation.
type cliFlags struct {
	input       string
	format      string
	unicost     bool
	output      string
	certificate string

	certificateFormat string
	initialSolution   string

	hasGoal bool
	goal    int64

	seed             int64
	timeLimitSeconds float64

	verbosityLevel int
	logPath        string
	logToStderr    bool
	onlyWriteAtEnd bool

	reduce                   bool
	setFolding               bool
	twin                     bool
	unconfinedSets           bool
	dominatedSetsRemoval     bool
	dominatedElementsRemoval bool
	reductionTimeLimit       float64

	maximumIterations                   int64
	maximumIterationsWithoutImprovement int64

	algorithm string
}

func (c cliFlags) toReportParameters() report.Parameters {
	return report.Parameters{
		Input:                               c.input,
		Format:                               c.format,
		Unicost:                              c.unicost,
		Output:                               c.output,
		Certificate:                         c.certificate,
		CertificateFormat:                   c.certificateFormat,
		InitialSolution:                     c.initialSolution,
		HasGoal:                             c.hasGoal,
		Goal:                                c.goal,
		Seed:                                c.seed,
		TimeLimitSeconds:                    c.timeLimitSeconds,
		VerbosityLevel:                      c.verbosityLevel,
		LogFile:                             c.logPath,
		LogToStderr:                         c.logToStderr,
		OnlyWriteAtEnd:                      c.onlyWriteAtEnd,
		Reduce:                              c.reduce,
		SetFolding:                          c.setFolding,
		Twin:                                c.twin,
		UnconfinedSets:                      c.unconfinedSets,
		DominatedSets:                       c.dominatedSetsRemoval,
		DominatedElements:                   c.dominatedElementsRemoval,
		ReductionTimeLimit:                  c.reductionTimeLimit,
		MaximumIterations:                   c.maximumIterations,
		MaximumIterationsWithoutImprovement: c.maximumIterationsWithoutImprovement,
	}
}

// parseFlags parses args (excluding the program name) into a cliFlags,
// returning an error for any failure a caller should treat as exit
// code 1: a pflag parse error, a missing required flag, or an
// unrecognised --algorithm value.
func parseFlags(args []string) (cliFlags, error) {
	fs := pflag.NewFlagSet("setcoversolver", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var c cliFlags
	fs.StringVarP(&c.input, "input", "i", "", "instance file to read (required)")
	fs.StringVarP(&c.format, "format", "f", "", "instance format (required)")
	fs.BoolVarP(&c.unicost, "unicost", "u", false, "force every set's cost to 1 after reading")
	fs.StringVarP(&c.output, "output", "o", "", "JSON result file (default: stdout)")
	fs.StringVarP(&c.certificate, "certificate", "c", "", "solution certificate output file")
	fs.StringVar(&c.certificateFormat, "certificate-format", "", "certificate format (default: --format)")
	fs.StringVar(&c.initialSolution, "initial-solution", "", "certificate file to warm-start from")

	var goal int64
	fs.Int64Var(&goal, "goal", 0, "stop once this cost is reached")

	fs.Int64VarP(&c.seed, "seed", "s", 0, "PRNG seed")
	fs.Float64VarP(&c.timeLimitSeconds, "time-limit", "t", 0, "time limit in seconds (0: unlimited)")
	fs.IntVarP(&c.verbosityLevel, "verbosity-level", "v", 0, "log verbosity, 0 (quietest) upward")
	fs.StringVarP(&c.logPath, "log", "l", "", "log file path")
	fs.BoolVar(&c.logToStderr, "log-to-stderr", false, "also log to stderr")
	fs.BoolVarP(&c.onlyWriteAtEnd, "only-write-at-the-end", "e", false, "defer improvement reporting until the run ends")

	fs.BoolVar(&c.reduce, "reduce", false, "run reduction before the chosen algorithm")
	fs.BoolVar(&c.setFolding, "set-folding", true, "enable the set-folding reduction rule")
	fs.BoolVar(&c.twin, "twin", true, "enable the twin reduction rule")
	fs.BoolVar(&c.unconfinedSets, "unconfined-sets", false, "enable the unconfined-sets reduction rule")
	fs.BoolVar(&c.dominatedSetsRemoval, "dominated-sets-removal", false, "enable dominated-set removal")
	fs.BoolVar(&c.dominatedElementsRemoval, "dominated-elements-removal", false, "enable dominated-element removal")
	fs.Float64Var(&c.reductionTimeLimit, "reduction-time-limit", 0, "reduction time limit in seconds (0: unlimited)")

	fs.Int64Var(&c.maximumIterations, "maximum-number-of-iterations", 0, "iteration cap for local search/LNS (0: unlimited)")
	fs.Int64Var(&c.maximumIterationsWithoutImprovement, "maximum-number-of-iterations-without-improvement", 0, "no-improvement cap (0: unlimited)")

	fs.StringVar(&c.algorithm, "algorithm", "", "algorithm to run (required)")

	fs.Usage = func() { fmt.Fprint(os.Stderr, usage(fs)) }

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	if fs.Changed("goal") {
		c.hasGoal = true
		c.goal = goal
	}

	if c.input == "" {
		return cliFlags{}, fmt.Errorf("--input is required")
	}
	if c.format == "" {
		return cliFlags{}, fmt.Errorf("--format is required")
	}
	if c.algorithm == "" {
		return cliFlags{}, fmt.Errorf("--algorithm is required")
	}
	if _, ok := algorithm.Registry[c.algorithm]; !ok {
		return cliFlags{}, fmt.Errorf("unknown --algorithm %q", c.algorithm)
	}

	return c, nil
}
