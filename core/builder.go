package core

import (
	"fmt"
	"sort"
)

// BuilderOption configures a Builder before any sets or elements are added.
//
// As a rule, option constructors never panic and ignore nil inputs.
type BuilderOption func(cfg *builderConfig)

type builderConfig struct {
	unicost bool
}

// WithUnicost puts the Builder in unicost mode: every set defaults to
// cost 1, and SetCost rejects any other value.
func WithUnicost() BuilderOption {
	return func(cfg *builderConfig) { cfg.unicost = true }
}

// Builder assembles an Instance through a staged contract: AddSets,
// AddElements, SetCost, AddArc, then a terminal Build.
//
// A Builder is not safe for concurrent use; each goroutine building an
// instance should own its own Builder.
type Builder struct {
	cfg builderConfig

	nSets     int
	nElements int

	costs      []int64
	costIsSet  []bool
	setElems   [][]int
	elemSets   [][]int

	built bool
}

// NewBuilder returns an empty Builder configured by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	cfg := builderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{cfg: cfg}
}

// AddSets appends n new sets; they get the IDs [prevN, prevN+n).
// Under unicost mode the new sets default to cost 1.
func (b *Builder) AddSets(n int) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if n < 0 {
		return fmt.Errorf("core: AddSets(%d): %w", n, ErrOutOfRange)
	}
	start := b.nSets
	b.nSets += n
	b.costs = append(b.costs, make([]int64, n)...)
	b.costIsSet = append(b.costIsSet, make([]bool, n)...)
	b.setElems = append(b.setElems, make([][]int, n)...)
	if b.cfg.unicost {
		for i := start; i < b.nSets; i++ {
			b.costs[i] = 1
			b.costIsSet[i] = true
		}
	}
	return nil
}

// AddElements appends n new elements; they get the IDs
// [prevM, prevM+n).
func (b *Builder) AddElements(n int) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if n < 0 {
		return fmt.Errorf("core: AddElements(%d): %w", n, ErrOutOfRange)
	}
	b.nElements += n
	b.elemSets = append(b.elemSets, make([][]int, n)...)
	return nil
}

// SetCost assigns a set's cost. Under unicost mode, cost must equal 1.
func (b *Builder) SetCost(setID int, cost int64) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if setID < 0 || setID >= b.nSets {
		return fmt.Errorf("core: SetCost: set %d: %w", setID, ErrOutOfRange)
	}
	if cost < 0 {
		return fmt.Errorf("core: SetCost: set %d: cost %d: %w", setID, cost, ErrNegativeCost)
	}
	if b.cfg.unicost && cost != 1 {
		return fmt.Errorf("core: SetCost: set %d: unicost requires cost=1, got %d: %w", setID, cost, ErrNegativeCost)
	}
	b.costs[setID] = cost
	b.costIsSet[setID] = true
	return nil
}

// AddArc records that setID covers elementID. Callers must not add the
// same arc twice; duplicates break the bidirectional-incidence
// invariant and are a programming error, not validated here.
func (b *Builder) AddArc(setID, elementID int) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if setID < 0 || setID >= b.nSets {
		return fmt.Errorf("core: AddArc: set %d: %w", setID, ErrOutOfRange)
	}
	if elementID < 0 || elementID >= b.nElements {
		return fmt.Errorf("core: AddArc: element %d: %w", elementID, ErrOutOfRange)
	}
	b.setElems[setID] = append(b.setElems[setID], elementID)
	b.elemSets[elementID] = append(b.elemSets[elementID], setID)
	return nil
}

// Build finalizes the instance: sorts each set's and element's incidence
// list, computes number_of_arcs and total_cost, and partitions the
// incidence graph into connected components.
//
// Returns ErrUncoveredElement if any element has no covering set — a
// hard error in the builder, not the reducer.
func (b *Builder) Build() (*Instance, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	sets := make([]Set, b.nSets)
	var arcs int64
	for i := 0; i < b.nSets; i++ {
		elems := append([]int(nil), b.setElems[i]...)
		sort.Ints(elems)
		cost := b.costs[i]
		if !b.costIsSet[i] {
			cost = 1
		}
		sets[i] = Set{ID: i, Cost: cost, Elements: elems, Component: -1}
		arcs += int64(len(elems))
	}

	elements := make([]Element, b.nElements)
	for i := 0; i < b.nElements; i++ {
		ss := append([]int(nil), b.elemSets[i]...)
		sort.Ints(ss)
		if len(ss) == 0 {
			return nil, fmt.Errorf("core: Build: element %d: %w", i, ErrUncoveredElement)
		}
		elements[i] = Element{ID: i, Sets: ss, Component: -1}
	}

	var totalCost int64
	for _, s := range sets {
		totalCost += s.Cost
	}

	ins := &Instance{
		sets:         sets,
		elements:     elements,
		numberOfArcs: arcs,
		totalCost:    totalCost,
		unicost:      b.cfg.unicost,
	}
	ins.computeComponents()

	return ins, nil
}
