package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/setcoversolver/core"
)

// writeBalas1980 emits ins in the OR-Library format parseBalas1980
// reads: "M N", N costs on one line, then one element line per
// element giving its covering-set count and 1-based set ids.
func writeBalas1980(w io.Writer, ins *core.Instance) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d\n", ins.NumElements(), ins.NumSets()); err != nil {
		return err
	}
	for i, s := range ins.Sets() {
		sep := " "
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(bw, "%s%d", sep, s.Cost); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}

	for _, e := range ins.Elements() {
		if _, err := fmt.Fprintf(bw, "%d", len(e.Sets)); err != nil {
			return err
		}
		for _, s := range e.Sets {
			if _, err := fmt.Fprintf(bw, " %d", s+1); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writePace2025 emits ins in the DIMACS-style hitting-set format
// parsePace2025 reads: a "p hs N M" problem line, then one hyperedge
// line per set listing its covering 1-based element ids.
func writePace2025(w io.Writer, ins *core.Instance) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "p hs %d %d\n", ins.NumElements(), ins.NumSets()); err != nil {
		return err
	}
	for _, s := range ins.Sets() {
		for i, e := range s.Elements {
			sep := " "
			if i == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(bw, "%s%d", sep, e+1); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
