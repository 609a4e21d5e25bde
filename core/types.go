package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core instance operations.
var (
	// ErrOutOfRange indicates a set or element ID outside [0, N) / [0, M).
	ErrOutOfRange = errors.New("core: id out of range")

	// ErrAlreadyBuilt indicates a Builder method was invoked after Build().
	ErrAlreadyBuilt = errors.New("core: builder already built")

	// ErrNegativeCost indicates a negative cost, or a non-unit cost under unicost mode.
	ErrNegativeCost = errors.New("core: invalid cost")

	// ErrUncoveredElement indicates Build() found an element with no covering set.
	ErrUncoveredElement = errors.New("core: element has no covering set")

	// ErrInvariantViolation indicates Check() found a broken incidence invariant.
	ErrInvariantViolation = errors.New("core: invariant violation")
)

// Set is a weighted member of the set-cover family.
//
// Elements is the sorted list of element IDs this set covers (Build does
// not deduplicate repeated arcs).
// Component is -1 for a set that covers no element (isolated, belongs to no
// component). Mandatory is informational only; the solver does not read it
// to decide feasibility.
type Set struct {
	ID        int
	Cost      int64
	Elements  []int
	Component int
	Mandatory bool
}

// Element is a member of the universe to be covered.
//
// Sets is the sorted list of set IDs covering this element, in the order
// the reduction engine and local search both rely on for deterministic
// iteration.
type Element struct {
	ID        int
	Sets      []int
	Component int
}

// Component is a connected component of the bipartite set/element
// incidence graph: two elements share a component iff some chain of sets
// joins them. Elements and Sets are both sorted ascending.
type Component struct {
	Index    int
	Elements []int
	Sets     []int
}

// Instance is the immutable problem graph produced by Builder.Build.
//
// Every structural field is set exactly once, during Build; the only state
// mutated afterwards is the neighbour cache, which is guarded by neighMu,
// a dedicated mutex, the same pattern a read-mostly adjacency cache
// typically uses.
type Instance struct {
	sets         []Set
	elements     []Element
	components   []Component
	numberOfArcs int64
	totalCost    int64
	unicost      bool

	neighMu              sync.Mutex
	setNeighbours        [][]int
	elementNeighbours    [][]int
	elementSetNeighbours [][]int
}

// NumSets returns N, the number of sets in the instance.
func (ins *Instance) NumSets() int { return len(ins.sets) }

// NumElements returns M, the size of the universe.
func (ins *Instance) NumElements() int { return len(ins.elements) }

// Set returns the set with the given ID. Panics if id is out of range, the
// same programming-error contract as indexing a slice directly.
func (ins *Instance) Set(id int) *Set { return &ins.sets[id] }

// Element returns the element with the given ID. Panics if id is out of range.
func (ins *Instance) Element(id int) *Element { return &ins.elements[id] }

// Sets returns every set in ID order. The returned slice aliases internal
// storage and must not be mutated.
func (ins *Instance) Sets() []Set { return ins.sets }

// Elements returns every element in ID order. The returned slice aliases
// internal storage and must not be mutated.
func (ins *Instance) Elements() []Element { return ins.elements }

// Components returns the connected components of the incidence graph, in
// discovery order.
func (ins *Instance) Components() []Component { return ins.components }

// NumberOfArcs returns the total number of set/element incidences.
func (ins *Instance) NumberOfArcs() int64 { return ins.numberOfArcs }

// TotalCost returns the sum of every set's cost.
func (ins *Instance) TotalCost() int64 { return ins.totalCost }

// Unicost reports whether the instance was built in unicost mode (every
// set has cost 1).
func (ins *Instance) Unicost() bool { return ins.unicost }
