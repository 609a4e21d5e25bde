// Command setcoversolver is the CLI binary: it parses an instance
// file, runs one of the thirteen registered algorithms, and writes the
// JSON result, solution certificate, and log file the caller asked for.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/setcoversolver/algorithm"
	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/formatter"
	"github.com/katalvlaran/setcoversolver/ioformat"
	"github.com/katalvlaran/setcoversolver/reduction"
	"github.com/katalvlaran/setcoversolver/report"
	"github.com/katalvlaran/setcoversolver/rng"
	"github.com/katalvlaran/setcoversolver/timer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one CLI invocation and returns the process exit code,
// so tests can drive it without calling os.Exit directly.
func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setcoversolver:", err)
		return 1
	}

	inFile, err := os.Open(flags.input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setcoversolver:", err)
		return 1
	}
	defer inFile.Close()

	ins, err := ioformat.ReadInstance(inFile, flags.format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setcoversolver:", err)
		return 1
	}
	if flags.unicost {
		ins, err = forceUnicost(ins)
		if err != nil {
			fmt.Fprintln(os.Stderr, "setcoversolver:", err)
			return 1
		}
	}

	var writers []formatter.Option
	if flags.logPath != "" {
		logFile, err := os.Create(flags.logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "setcoversolver:", err)
			return 1
		}
		defer logFile.Close()
		writers = append(writers, formatter.WithLogWriter(logFile))
	}
	if flags.logToStderr {
		writers = append(writers, formatter.WithLogWriter(os.Stderr))
	}
	writers = append(writers, formatter.WithVerbosity(flags.verbosityLevel))
	writers = append(writers, formatter.WithOnlyWriteAtEnd(flags.onlyWriteAtEnd))
	f := formatter.New(writers...)

	tmr := timer.New()
	if flags.timeLimitSeconds > 0 {
		tmr = timer.NewWithLimit(time.Duration(flags.timeLimitSeconds * float64(time.Second)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			tmr.Interrupt()
			cancel()
		}
	}()

	params := algorithm.Params{
		Src:                                  rng.New(flags.seed),
		Tmr:                                  tmr,
		F:                                     f,
		Reduce:                               flags.reduce,
		ReductionOptions:                     reductionOptions(flags),
		HasGoal:                              flags.hasGoal,
		Goal:                                 flags.goal,
		MaximumIterations:                    flags.maximumIterations,
		MaximumIterationsWithoutImprovement:  flags.maximumIterationsWithoutImprovement,
		BestSolutionUpdateFrequency:          1,
		CLIParams:                            flags.toReportParameters(),
	}

	out, err := algorithm.Run(ctx, flags.algorithm, ins, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setcoversolver:", err)
		return 1
	}

	if err := writeOutputs(flags, f, *out); err != nil {
		fmt.Fprintln(os.Stderr, "setcoversolver:", err)
		return 1
	}
	return 0
}

// writeOutputs writes the JSON result (to --output or stdout) and the
// solution certificate (to --certificate, if given).
func writeOutputs(flags cliFlags, f *formatter.Formatter, out report.Output) error {
	var jsonW = os.Stdout
	if flags.output != "" {
		file, err := os.Create(flags.output)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := report.Write(file, out); err != nil {
			return err
		}
	} else {
		if err := report.Write(jsonW, out); err != nil {
			return err
		}
	}

	if flags.certificate == "" {
		return nil
	}
	best := f.Best()
	if best == nil {
		return nil
	}
	certFile, err := os.Create(flags.certificate)
	if err != nil {
		return err
	}
	defer certFile.Close()

	certFormat := flags.certificateFormat
	if certFormat == "" {
		certFormat = flags.format
	}
	return ioformat.WriteCertificate(certFile, best.ToIDs(), certFormat)
}

func forceUnicost(ins *core.Instance) (*core.Instance, error) {
	b := core.NewBuilder()
	if err := b.AddSets(ins.NumSets()); err != nil {
		return nil, err
	}
	if err := b.AddElements(ins.NumElements()); err != nil {
		return nil, err
	}
	for _, s := range ins.Sets() {
		if err := b.SetCost(s.ID, 1); err != nil {
			return nil, err
		}
		for _, e := range s.Elements {
			if err := b.AddArc(s.ID, e); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

func reductionOptions(flags cliFlags) []reduction.Option {
	return []reduction.Option{
		reduction.WithSetFolding(flags.setFolding),
		reduction.WithTwin(flags.twin),
		reduction.WithUnconfinedSets(flags.unconfinedSets),
		reduction.WithDominatedSetsRemoval(flags.dominatedSetsRemoval),
		reduction.WithDominatedElementsRemoval(flags.dominatedElementsRemoval),
	}
}

// sortedAlgorithmNames returns every registered --algorithm value in
// alphabetical order, for the usage message.
func sortedAlgorithmNames() []string {
	names := make([]string, 0, len(algorithm.Registry))
	for name := range algorithm.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func usage(fs *pflag.FlagSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: setcoversolver --input FILE --format FORMAT --algorithm ALGORITHM [flags]\n\n")
	fmt.Fprintf(&b, "Algorithms: %s\n\n", strings.Join(sortedAlgorithmNames(), ", "))
	b.WriteString(fs.FlagUsages())
	return b.String()
}
