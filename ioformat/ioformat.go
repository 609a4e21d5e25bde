// Package ioformat reads and writes set-cover instances and solution
// certificates in the handful of ASCII formats the academic benchmark
// suites use, plus one DIMACS-style hypergraph format. It is the only
// package that touches instance files directly: everything else
// operates on a built core.Instance or a solution.Solution.
package ioformat

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/setcoversolver/core"
)

// ErrUnknownFormat is returned by ReadInstance, WriteInstance,
// ReadCertificate, and WriteCertificate when given a format name none
// of them recognise.
var ErrUnknownFormat = errors.New("ioformat: unknown format")

// ErrUnsupportedWrite is returned by WriteInstance for a format this
// package can parse but not emit.
var ErrUnsupportedWrite = errors.New("ioformat: format does not support instance output")

// canonicalInstanceFormat resolves a format name (and its accepted
// aliases) to one of the six instance formats below, or "" if name
// isn't recognised.
func canonicalInstanceFormat(name string) string {
	switch name {
	case "gecco2020", "gecco":
		return "gecco2020"
	case "fulkerson1974", "sts":
		return "fulkerson1974"
	case "balas1980", "orlibrary":
		return "balas1980"
	case "balas1996":
		return "balas1996"
	case "faster1994", "faster", "wedelin1995", "wedelin":
		return "faster1994"
	case "pace2025", "pace2025_ds":
		return "pace2025"
	default:
		return ""
	}
}

// ReadInstance parses an instance in the named format from r. See the
// per-format parse functions in read.go for the exact grammar of each.
func ReadInstance(r io.Reader, format string) (*core.Instance, error) {
	switch canonicalInstanceFormat(format) {
	case "gecco2020":
		return parseGecco2020(r)
	case "fulkerson1974":
		return parseFulkerson1974(r)
	case "balas1980":
		return parseBalas1980(r)
	case "balas1996":
		return parseBalas1996(r)
	case "faster1994":
		return parseFaster1994(r)
	case "pace2025":
		return parsePace2025(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteInstance serialises ins in the named format to w. Only
// balas1980 and pace2025 support output; every other format returns
// ErrUnsupportedWrite, the same restriction the reference solver's own
// writer enforces.
func WriteInstance(w io.Writer, ins *core.Instance, format string) error {
	switch canonicalInstanceFormat(format) {
	case "balas1980":
		return writeBalas1980(w, ins)
	case "pace2025":
		return writePace2025(w, ins)
	case "":
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedWrite, format)
	}
}
