package greedy

import (
	"sort"

	"github.com/katalvlaran/setcoversolver/core"
	"github.com/katalvlaran/setcoversolver/indexedset"
	"github.com/katalvlaran/setcoversolver/timer"
)

// TrivialBound sorts sets by cost/|elements| ascending and greedily
// accumulates whole sets until every element is covered; the last set
// needed contributes only the cost of the fractional remainder it
// would take to finish covering. The result is a valid lower bound on
// the optimum: no feasible solution can cover the universe more
// cheaply per element than the cheapest-per-element set does.
func TrivialBound(ins *core.Instance) int64 {
	n := ins.NumSets()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		si, sj := ins.Set(order[i]), ins.Set(order[j])
		li := si.Cost * int64(len(sj.Elements))
		lj := sj.Cost * int64(len(si.Elements))
		if li != lj {
			return li < lj
		}
		return order[i] < order[j]
	})

	var bound int64
	remaining := int64(ins.NumElements())
	for _, id := range order {
		if remaining <= 0 {
			break
		}
		set := ins.Set(id)
		size := int64(len(set.Elements))
		if size <= remaining {
			bound += set.Cost
			remaining -= size
		} else {
			bound += ceilDiv(set.Cost*remaining, size)
			remaining = 0
		}
	}
	return bound
}

func ceilDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return (a+b-1)/b
}

// CliqueCoverBound builds the "2-cover" graph — an edge between two
// sets for every element covered by exactly those two — and greedily
// partitions it into cliques: sets are visited in ascending order of
// 2-cover degree, and each joins the largest existing clique it is
// 2-cover-adjacent to every member of, or starts a new one. Within
// each clique, at most one member can be left out of any feasible
// solution (every edge forces one of its two endpoints), so the sum
// of every clique's members except its most expensive one is a valid
// lower bound.
func CliqueCoverBound(ins *core.Instance, tmr *timer.Timer) int64 {
	if ins.NumElements() == 0 {
		return 0
	}

	degree := make([]int, ins.NumSets())
	for e := 0; e < ins.NumElements(); e++ {
		elem := ins.Element(e)
		if len(elem.Sets) != 2 {
			continue
		}
		degree[elem.Sets[0]]++
		degree[elem.Sets[1]]++
	}

	var candidates []int
	for id, d := range degree {
		if d > 0 {
			candidates = append(candidates, id)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if degree[candidates[i]] != degree[candidates[j]] {
			return degree[candidates[i]] < degree[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	var cliques [][]int
	for _, setID := range candidates {
		if tmr != nil && tmr.NeedsToEnd() {
			break
		}
		neighbours := indexedset.New(ins.NumSets())
		for _, e := range ins.Set(setID).Elements {
			elem := ins.Element(e)
			if len(elem.Sets) != 2 {
				continue
			}
			if elem.Sets[0] == setID {
				neighbours.Add(elem.Sets[1])
			} else {
				neighbours.Add(elem.Sets[0])
			}
		}

		best := -1
		for ci, clique := range cliques {
			ok := true
			for _, member := range clique {
				if !neighbours.Contains(member) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if best == -1 || len(cliques[best]) < len(clique) {
				best = ci
			}
		}

		if best == -1 {
			cliques = append(cliques, []int{setID})
		} else {
			cliques[best] = append(cliques[best], setID)
		}
	}

	var bound int64
	for _, clique := range cliques {
		maxCost := int64(-1)
		for _, id := range clique {
			if c := ins.Set(id).Cost; c > maxCost {
				maxCost = c
			}
		}
		var sum int64
		skipped := false
		for _, id := range clique {
			c := ins.Set(id).Cost
			if !skipped && c == maxCost {
				skipped = true
				continue
			}
			sum += c
		}
		bound += sum
	}
	return bound
}
