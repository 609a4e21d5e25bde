package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/setcoversolver/core"
)

// parseGecco2020 reads the unicost GECCO 2020 hypergraph format: header
// "M N" (M elements, N sets), then M element lines, each the element's
// own (unused) id followed by its covering-set count and that many
// 0-based set ids.
func parseGecco2020(r io.Reader) (*core.Instance, error) {
	t := newTokenizer(r)
	numElements, err := t.int()
	if err != nil {
		return nil, err
	}
	numSets, err := t.int()
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}
	for s := 0; s < numSets; s++ {
		if err := b.SetCost(s, 1); err != nil {
			return nil, err
		}
	}

	for e := 0; e < numElements; e++ {
		if _, err := t.int(); err != nil { // element id, unused: line position is authoritative
			return nil, err
		}
		k, err := t.int()
		if err != nil {
			return nil, err
		}
		for i := 0; i < k; i++ {
			s, err := t.int()
			if err != nil {
				return nil, err
			}
			if err := b.AddArc(s, e); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// parseFulkerson1974 reads the unicost Steiner-triple covering format:
// header "N M" (N sets, M elements), then M element lines of exactly
// three 1-based set ids each.
func parseFulkerson1974(r io.Reader) (*core.Instance, error) {
	t := newTokenizer(r)
	numSets, err := t.int()
	if err != nil {
		return nil, err
	}
	numElements, err := t.int()
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}
	for s := 0; s < numSets; s++ {
		if err := b.SetCost(s, 1); err != nil {
			return nil, err
		}
	}

	for e := 0; e < numElements; e++ {
		for i := 0; i < 3; i++ {
			s, err := t.int()
			if err != nil {
				return nil, err
			}
			if err := b.AddArc(s-1, e); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// parseBalas1980 reads the OR-Library set-covering format: header
// "M N" (M elements, N sets), N set costs, then M element lines, each
// a covering-set count followed by that many 1-based set ids.
func parseBalas1980(r io.Reader) (*core.Instance, error) {
	t := newTokenizer(r)
	numElements, err := t.int()
	if err != nil {
		return nil, err
	}
	numSets, err := t.int()
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}
	for s := 0; s < numSets; s++ {
		cost, err := t.int64()
		if err != nil {
			return nil, err
		}
		if err := b.SetCost(s, cost); err != nil {
			return nil, err
		}
	}

	for e := 0; e < numElements; e++ {
		k, err := t.int()
		if err != nil {
			return nil, err
		}
		for i := 0; i < k; i++ {
			s, err := t.int()
			if err != nil {
				return nil, err
			}
			if err := b.AddArc(s-1, e); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// parseBalas1996 reads the set-oriented sibling of balas1980: header
// "N M" (N sets, M elements), N set costs, then N set lines, each an
// element count followed by that many 1-based element ids.
func parseBalas1996(r io.Reader) (*core.Instance, error) {
	t := newTokenizer(r)
	numSets, err := t.int()
	if err != nil {
		return nil, err
	}
	numElements, err := t.int()
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}
	for s := 0; s < numSets; s++ {
		cost, err := t.int64()
		if err != nil {
			return nil, err
		}
		if err := b.SetCost(s, cost); err != nil {
			return nil, err
		}
	}

	for s := 0; s < numSets; s++ {
		m, err := t.int()
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			e, err := t.int()
			if err != nil {
				return nil, err
			}
			if err := b.AddArc(s, e-1); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// parseFaster1994 reads the weighted per-set format: header "M N"
// (M elements, N sets), then N set lines, each the set's own cost, an
// element count, and that many 1-based element ids.
func parseFaster1994(r io.Reader) (*core.Instance, error) {
	t := newTokenizer(r)
	numElements, err := t.int()
	if err != nil {
		return nil, err
	}
	numSets, err := t.int()
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}

	for s := 0; s < numSets; s++ {
		cost, err := t.int64()
		if err != nil {
			return nil, err
		}
		if err := b.SetCost(s, cost); err != nil {
			return nil, err
		}
		m, err := t.int()
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			e, err := t.int()
			if err != nil {
				return nil, err
			}
			if err := b.AddArc(s, e-1); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// parsePace2025 reads the DIMACS-style hitting-set/hypergraph format
// used by the PACE 2025 challenge: any number of comment lines
// starting with 'c', a problem line "p hs N M" (N elements, M
// hyperedges/sets), then M lines each a whitespace-separated list of
// 1-based element ids of variable length — so, unlike the other five
// formats, this one is parsed line-at-a-time rather than token-at-a-
// time, since nothing declares each hyperedge's length up front.
func parsePace2025(r io.Reader) (*core.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var numElements, numSets int
	haveProblemLine := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[0] != "p" || fields[1] != "hs" {
			return nil, fmt.Errorf("ioformat: pace2025: expected problem line \"p hs N M\", got %q", line)
		}
		var err error
		if numElements, err = strconv.Atoi(fields[2]); err != nil {
			return nil, err
		}
		if numSets, err = strconv.Atoi(fields[3]); err != nil {
			return nil, err
		}
		haveProblemLine = true
		break
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !haveProblemLine {
		return nil, fmt.Errorf("ioformat: pace2025: missing problem line")
	}

	b := core.NewBuilder()
	if err := b.AddElements(numElements); err != nil {
		return nil, err
	}
	if err := b.AddSets(numSets); err != nil {
		return nil, err
	}
	for s := 0; s < numSets; s++ {
		if err := b.SetCost(s, 1); err != nil {
			return nil, err
		}
	}

	setID := 0
	for setID < numSets && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		for _, f := range strings.Fields(line) {
			e, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("ioformat: pace2025: hyperedge %d: %w", setID, err)
			}
			if err := b.AddArc(setID, e-1); err != nil {
				return nil, err
			}
		}
		setID++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if setID != numSets {
		return nil, fmt.Errorf("ioformat: pace2025: expected %d hyperedge lines, got %d", numSets, setID)
	}
	return b.Build()
}
