package core

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SetNeighbours returns the IDs of sets sharing at least one element with
// set id, sorted ascending and excluding id itself. Computed lazily and
// memoised on first call, from any goroutine, under neighMu.
func (ins *Instance) SetNeighbours(id int) []int {
	ins.neighMu.Lock()
	defer ins.neighMu.Unlock()
	ins.ensureNeighboursLocked()
	return ins.setNeighbours[id]
}

// ElementNeighbours returns the IDs of elements sharing at least one set
// with element id, sorted ascending and excluding id itself.
func (ins *Instance) ElementNeighbours(id int) []int {
	ins.neighMu.Lock()
	defer ins.neighMu.Unlock()
	ins.ensureNeighboursLocked()
	return ins.elementNeighbours[id]
}

// ElementSetNeighbours returns the set neighbours of any set covering
// element id: the union, over every set s covering id, of SetNeighbours(s),
// excluding duplicates.
func (ins *Instance) ElementSetNeighbours(id int) []int {
	ins.neighMu.Lock()
	defer ins.neighMu.Unlock()
	ins.ensureNeighboursLocked()
	return ins.elementSetNeighbours[id]
}

// PrecomputeNeighbours eagerly computes and memoises all three neighbour
// caches, sharding the work across set-ID and element-ID ranges over
// workers goroutines (at least 1). Safe to call more than once; a second
// call is a no-op. Returns ctx.Err() if ctx is cancelled mid-computation.
func (ins *Instance) PrecomputeNeighbours(ctx context.Context, workers int) error {
	if workers < 1 {
		workers = 1
	}

	ins.neighMu.Lock()
	defer ins.neighMu.Unlock()
	if ins.setNeighbours != nil {
		return nil
	}

	n := len(ins.sets)
	setNeigh := make([][]int, n)
	if err := shardRange(ctx, n, workers, func(ctx context.Context, lo, hi int) error {
		for sid := lo; sid < hi; sid++ {
			if err := ctxDone(ctx); err != nil {
				return err
			}
			setNeigh[sid] = ins.computeSetNeighbours(sid)
		}
		return nil
	}); err != nil {
		return err
	}

	m := len(ins.elements)
	elemNeigh := make([][]int, m)
	if err := shardRange(ctx, m, workers, func(ctx context.Context, lo, hi int) error {
		for eid := lo; eid < hi; eid++ {
			if err := ctxDone(ctx); err != nil {
				return err
			}
			elemNeigh[eid] = ins.computeElementNeighbours(eid)
		}
		return nil
	}); err != nil {
		return err
	}

	elemSetNeigh := make([][]int, m)
	for eid := 0; eid < m; eid++ {
		elemSetNeigh[eid] = ins.unionSetNeighbours(eid, setNeigh)
	}

	ins.setNeighbours = setNeigh
	ins.elementNeighbours = elemNeigh
	ins.elementSetNeighbours = elemSetNeigh
	return nil
}

// ensureNeighboursLocked computes all three caches sequentially if absent.
// Callers must hold neighMu.
func (ins *Instance) ensureNeighboursLocked() {
	if ins.setNeighbours != nil {
		return
	}
	n, m := len(ins.sets), len(ins.elements)
	setNeigh := make([][]int, n)
	for sid := 0; sid < n; sid++ {
		setNeigh[sid] = ins.computeSetNeighbours(sid)
	}
	elemNeigh := make([][]int, m)
	for eid := 0; eid < m; eid++ {
		elemNeigh[eid] = ins.computeElementNeighbours(eid)
	}
	elemSetNeigh := make([][]int, m)
	for eid := 0; eid < m; eid++ {
		elemSetNeigh[eid] = ins.unionSetNeighbours(eid, setNeigh)
	}
	ins.setNeighbours = setNeigh
	ins.elementNeighbours = elemNeigh
	ins.elementSetNeighbours = elemSetNeigh
}

func (ins *Instance) computeSetNeighbours(sid int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, eid := range ins.sets[sid].Elements {
		for _, other := range ins.elements[eid].Sets {
			if other == sid {
				continue
			}
			if _, ok := seen[other]; ok {
				continue
			}
			seen[other] = struct{}{}
			out = append(out, other)
		}
	}
	sort.Ints(out)
	return out
}

func (ins *Instance) computeElementNeighbours(eid int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, sid := range ins.elements[eid].Sets {
		for _, other := range ins.sets[sid].Elements {
			if other == eid {
				continue
			}
			if _, ok := seen[other]; ok {
				continue
			}
			seen[other] = struct{}{}
			out = append(out, other)
		}
	}
	sort.Ints(out)
	return out
}

func (ins *Instance) unionSetNeighbours(eid int, setNeigh [][]int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, sid := range ins.elements[eid].Sets {
		for _, nid := range setNeigh[sid] {
			if nid == sid {
				continue
			}
			if _, ok := seen[nid]; ok {
				continue
			}
			seen[nid] = struct{}{}
			out = append(out, nid)
		}
	}
	sort.Ints(out)
	return out
}

// shardRange runs fn over workers goroutines, each covering a disjoint
// contiguous sub-range of [0, n); the goroutines write disjoint output
// slots and join before shardRange returns, so the result is safe to
// consume once shardRange completes.
func shardRange(ctx context.Context, n, workers int, fn func(ctx context.Context, lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	shard := (n + workers - 1) / workers
	if shard == 0 {
		shard = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += shard {
		lo := lo
		hi := lo + shard
		if hi > n {
			hi = n
		}
		g.Go(func() error { return fn(gctx, lo, hi) })
	}
	return g.Wait()
}

func ctxDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
