package reduction

import "github.com/katalvlaran/setcoversolver/solution"

// UnreductionMap is a pair of tagged lists rather than a graph: for
// every set of the final reduced instance, two append-only lists of
// original-instance set IDs — in (contributed when the reduced set is
// chosen) and out (contributed when it is not) — plus a global
// mandatory list and the extra cost every lift adds (see ExtraCost).
// All composition is list splice/append.
type UnreductionMap struct {
	in        [][]int
	out       [][]int
	mandatory []int
	extraCost int64
}

// ExtraCost returns the total cost baked into every lift: the cost of
// the sets fixed into mandatory, plus the cost of every surviving
// reduced set's out-list. cost(lift(S')) = cost(S') + ExtraCost() for
// any feasible S' of the reduced instance.
func (m *UnreductionMap) ExtraCost() int64 { return m.extraCost }

// Mandatory returns the original set IDs forced into every lifted
// solution. The returned slice aliases internal storage and must not be
// mutated.
func (m *UnreductionMap) Mandatory() []int { return m.mandatory }

// Lift rebuilds a Solution over the original Instance from a Solution
// reduced found on the reduced instance: mandatory sets are always
// added, then each reduced set id contributes its in-list if reduced
// selected it or its out-list otherwise. The result is feasible on
// original whenever reduced is feasible on the reduced instance.
func (m *UnreductionMap) Lift(reduced *solution.Solution, original *solution.Solution) {
	added := make(map[int]bool, len(m.mandatory)+reduced.Len())
	add := func(id int) {
		if added[id] {
			return
		}
		added[id] = true
		if !original.Contains(id) {
			original.Add(id)
		}
	}
	for _, id := range m.mandatory {
		add(id)
	}
	for rid := 0; rid < len(m.in); rid++ {
		if reduced.Contains(rid) {
			for _, id := range m.in[rid] {
				add(id)
			}
		} else {
			for _, id := range m.out[rid] {
				add(id)
			}
		}
	}
}
