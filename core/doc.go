// Package core defines the immutable Instance graph at the heart of the
// solver: elements, weighted sets, connected components, and the cached
// set/element adjacencies the metaheuristics need.
//
// An Instance is constructed once through a Builder and is safe for
// concurrent read access afterwards; the only mutable state is the lazily
// computed, memoised neighbour cache, which is guarded by its own mutex.
//
// Errors:
//
//	ErrOutOfRange        - a set or element ID fell outside its valid range.
//	ErrAlreadyBuilt       - a Builder method was called after Build().
//	ErrNegativeCost       - a negative or (in unicost mode) non-unit cost was supplied.
//	ErrUncoveredElement   - Build() found an element with no covering set.
//	ErrInvariantViolation - Check() found a broken bidirectional-incidence invariant.
package core
