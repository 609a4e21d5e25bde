// Package rng wraps a single seeded PRNG per algorithm run: one 64-bit
// source per algorithm, with sub-seeds for parallel workers derived
// deterministically. This generalizes the common pattern of handing a
// fresh *rand.Rand to a one-shot constructor into a long-lived source
// that also mints reproducible child sources.
package rng

import "math/rand"

// Source is a seeded PRNG plus deterministic sub-seed derivation.
type Source struct {
	r    *rand.Rand
	seed int64
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Intn returns a pseudo-random int in [0, n).
func (s *Source) Intn(n int) int { return s.r.Intn(n) }

// Int63n returns a pseudo-random int64 in [0, n).
func (s *Source) Int63n(n int64) int64 { return s.r.Int63n(n) }

// Float64 returns a pseudo-random float64 in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Uint64 returns a pseudo-random uint64, used by the reduction engine's
// identical-set/element hashing (rule 5).
func (s *Source) Uint64() uint64 { return s.r.Uint64() }

// Shuffle permutes a slice of length n in place using swap(i, j).
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// Sub derives a new, deterministic child Source for worker index i: same
// seed and index always yield the same child, independent of call order,
// so sharded parallel work stays reproducible.
func (s *Source) Sub(i int) *Source {
	return New(splitmix64(s.seed, int64(i)))
}

// splitmix64 mixes a seed and an index into a new 64-bit seed. It is
// the standard SplitMix64 finalizer, chosen because it needs no
// external dependency and is a well-known, well-distributed
// deterministic mixer.
func splitmix64(seed, index int64) int64 {
	x := uint64(seed) + uint64(index)*0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return int64(x)
}
