package ioformat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setcoversolver/ioformat"
)

// Every fixture below encodes the same instance: 4 elements {0,1,2,3},
// 3 sets, set0={0,1} cost1, set1={2,3} cost1, set2={0,1,2,3} cost3.

func assertSample(t *testing.T, ins interface {
	NumElements() int
	NumSets() int
}) {
	t.Helper()
	assert.Equal(t, 4, ins.NumElements())
	assert.Equal(t, 3, ins.NumSets())
}

func TestParseGecco2020(t *testing.T) {
	src := "4 3\n" +
		"0 2 0 2\n" +
		"1 2 0 2\n" +
		"2 2 1 2\n" +
		"3 2 1 2\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "gecco2020")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.EqualValues(t, 1, ins.Set(0).Cost)
	assert.EqualValues(t, 1, ins.Set(2).Cost) // unicost
}

func TestParseFulkerson1974(t *testing.T) {
	// Every element is covered by all three (1-based) sets: a
	// degenerate but valid instance of this format's "exactly three
	// covering sets per element" shape.
	src := "3 4\n" +
		"1 2 3\n" +
		"1 2 3\n" +
		"1 2 3\n" +
		"1 2 3\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "sts")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.Equal(t, []int{0, 1, 2, 3}, ins.Set(0).Elements)
	assert.Equal(t, []int{0, 1, 2, 3}, ins.Set(2).Elements)
	assert.EqualValues(t, 1, ins.Set(1).Cost)
}

func TestParseBalas1980RoundTrip(t *testing.T) {
	src := "4 3\n" +
		"1 1 3\n" +
		"2 1 3\n" +
		"2 1 3\n" +
		"2 2 3\n" +
		"2 2 3\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "balas1980")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.EqualValues(t, 1, ins.Set(0).Cost)
	assert.EqualValues(t, 3, ins.Set(2).Cost)
	assert.Equal(t, []int{0, 1}, ins.Set(0).Elements)
	assert.Equal(t, []int{2, 3}, ins.Set(1).Elements)

	var buf strings.Builder
	require.NoError(t, ioformat.WriteInstance(&buf, ins, "orlibrary"))

	ins2, err := ioformat.ReadInstance(strings.NewReader(buf.String()), "balas1980")
	require.NoError(t, err)
	assertSample(t, ins2)
	assert.EqualValues(t, ins.Set(1).Cost, ins2.Set(1).Cost)
	assert.Equal(t, ins.Set(1).Elements, ins2.Set(1).Elements)
}

func TestParseBalas1996(t *testing.T) {
	src := "3 4\n" +
		"1 1 3\n" +
		"2 1 2\n" +
		"2 3 4\n" +
		"4 1 2 3 4\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "balas1996")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.Equal(t, []int{0, 1}, ins.Set(0).Elements)
	assert.Equal(t, []int{2, 3}, ins.Set(1).Elements)
	assert.Equal(t, []int{0, 1, 2, 3}, ins.Set(2).Elements)
}

func TestParseFaster1994(t *testing.T) {
	src := "4 3\n" +
		"1 2 1 2\n" +
		"1 2 3 4\n" +
		"3 4 1 2 3 4\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "wedelin1995")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.EqualValues(t, 3, ins.Set(2).Cost)
	assert.Equal(t, []int{0, 1, 2, 3}, ins.Set(2).Elements)
}

func TestParsePace2025RoundTrip(t *testing.T) {
	src := "c a comment line\n" +
		"p hs 4 3\n" +
		"1 2\n" +
		"3 4\n" +
		"1 2 3 4\n"
	ins, err := ioformat.ReadInstance(strings.NewReader(src), "pace2025_ds")
	require.NoError(t, err)
	assertSample(t, ins)
	assert.Equal(t, []int{0, 1}, ins.Set(0).Elements)

	var buf strings.Builder
	require.NoError(t, ioformat.WriteInstance(&buf, ins, "pace2025"))
	ins2, err := ioformat.ReadInstance(strings.NewReader(buf.String()), "pace2025")
	require.NoError(t, err)
	assertSample(t, ins2)
	assert.Equal(t, ins.Set(2).Elements, ins2.Set(2).Elements)
}

func TestWriteInstanceUnsupportedFormat(t *testing.T) {
	ins, err := ioformat.ReadInstance(strings.NewReader("4 3\n1 1 3\n2 1 3\n2 1 3\n2 2 3\n2 2 3\n"), "balas1980")
	require.NoError(t, err)

	var buf strings.Builder
	err = ioformat.WriteInstance(&buf, ins, "balas1996")
	assert.ErrorIs(t, err, ioformat.ErrUnsupportedWrite)
}

func TestReadInstanceUnknownFormat(t *testing.T) {
	_, err := ioformat.ReadInstance(strings.NewReader(""), "not-a-format")
	assert.ErrorIs(t, err, ioformat.ErrUnknownFormat)
}

func TestCertificateGecco2020RoundTrip(t *testing.T) {
	ids := []int{0, 2, 5}
	var buf strings.Builder
	require.NoError(t, ioformat.WriteCertificate(&buf, ids, "gecco2020"))
	assert.Equal(t, "3\n0 2 5\n", buf.String())

	got, err := ioformat.ReadCertificate(strings.NewReader(buf.String()), "gecco2020")
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

func TestCertificatePace2025RoundTrip(t *testing.T) {
	ids := []int{0, 2, 5}
	var buf strings.Builder
	require.NoError(t, ioformat.WriteCertificate(&buf, ids, "pace2025"))
	assert.Equal(t, "3\n1\n3\n6\n", buf.String())

	got, err := ioformat.ReadCertificate(strings.NewReader(buf.String()), "pace2025")
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}
