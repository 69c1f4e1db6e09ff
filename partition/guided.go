package partition

import "sync/atomic"

// Guided hands out chunks on demand, each a 1/workers share of what is left
// (never below MinChunk), so early chunks are large and late ones small.
type Guided struct {
	MinChunk int
}

func (g Guided) Name() string { return "guided" }

func (g Guided) Plan(n, workers int) Plan {
	minChunk := g.MinChunk
	if minChunk <= 0 {
		minChunk = 1
	}
	return &guidedPlan{n: int64(n), workers: int64(workers), minChunk: int64(minChunk)}
}

type guidedPlan struct {
	n, workers, minChunk int64
	next                 atomic.Int64
}

func (p *guidedPlan) Next(int) (Range, bool) {
	for {
		lo := p.next.Load()
		remaining := p.n - lo
		if remaining <= 0 {
			return Range{}, false
		}
		size := (remaining + p.workers - 1) / p.workers
		size = min(max(size, p.minChunk), remaining)
		if p.next.CompareAndSwap(lo, lo+size) {
			return Range{Lo: int(lo), Hi: int(lo + size)}, true
		}
	}
}
