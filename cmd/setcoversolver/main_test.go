package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/ioformat"
)

// sampleInstance is 4 elements {0,1,2,3}, 3 sets: set0={0,1},
// set1={2,3}, set2={0,1,2,3}, in gecco2020 format, which is read as
// unicost (every set costs 1).
const sampleInstance = "4 3\n" +
	"0 2 0 2\n" +
	"1 2 0 2\n" +
	"2 2 1 2\n" +
	"3 2 1 2\n"

func writeSampleInstance(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "instance.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleInstance), 0o644))
	return path
}

func TestRunMissingInput(t *testing.T) {
	code := run([]string{"--format", "gecco2020", "--algorithm", "greedy"})
	assert.Equal(t, 1, code)
}

func TestRunUnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleInstance(t, dir)
	code := run([]string{"--input", in, "--format", "gecco2020", "--algorithm", "not-a-thing"})
	assert.Equal(t, 1, code)
}

func TestRunMissingAlgorithm(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleInstance(t, dir)
	code := run([]string{"--input", in, "--format", "gecco2020"})
	assert.Equal(t, 1, code)
}

func TestRunEndToEndGreedy(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleInstance(t, dir)
	outPath := filepath.Join(dir, "out.json")
	certPath := filepath.Join(dir, "cert.txt")

	code := run([]string{
		"--input", in,
		"--format", "gecco2020",
		"--algorithm", "greedy",
		"--output", outPath,
		"--certificate", certPath,
	})
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded struct {
		Solution struct {
			Cost     int64
			Feasible bool
		}
		Status string
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Solution.Feasible)
	assert.EqualValues(t, 1, decoded.Solution.Cost)

	certFile, err := os.Open(certPath)
	require.NoError(t, err)
	defer certFile.Close()
	ids, err := ioformat.ReadCertificate(certFile, "gecco2020")
	require.NoError(t, err)
	assert.NotEmpty(t, ids)
}

func TestRunUnicostForcesCostOne(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleInstance(t, dir)
	outPath := filepath.Join(dir, "out.json")

	code := run([]string{
		"--input", in,
		"--format", "gecco2020",
		"--algorithm", "greedy",
		"--unicost",
		"--output", outPath,
	})
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded struct {
		Solution struct {
			Cost     int64
			Feasible bool
		}
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Solution.Feasible)
	// Under unicost every set costs 1, so greedy takes set2, which alone
	// covers all four elements, for a cost of 1.
	assert.EqualValues(t, 1, decoded.Solution.Cost)
}

func TestRunReduceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleInstance(t, dir)
	outPath := filepath.Join(dir, "out.json")

	code := run([]string{
		"--input", in,
		"--format", "gecco2020",
		"--algorithm", "local-search-row-weighting-2",
		"--reduce",
		"--maximum-number-of-iterations", "50",
		"--output", outPath,
	})
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded struct {
		Solution struct {
			Cost     int64
			Feasible bool
		}
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Solution.Feasible)
	assert.LessOrEqual(t, decoded.Solution.Cost, int64(3))
}
