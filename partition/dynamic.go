package partition

import "sync/atomic"

// Dynamic hands out Chunk consecutive indices to whichever worker asks next.
type Dynamic struct {
	Chunk int
}

func (d Dynamic) Name() string { return "dynamic" }

func (d Dynamic) Plan(n, workers int) Plan {
	chunk := d.Chunk
	if chunk <= 0 {
		chunk = 1
	}
	return &dynamicPlan{n: int64(n), chunk: int64(chunk)}
}

type dynamicPlan struct {
	n, chunk int64
	next     atomic.Int64
}

func (p *dynamicPlan) Next(int) (Range, bool) {
	hi := p.next.Add(p.chunk)
	lo := hi - p.chunk
	if lo >= p.n {
		return Range{}, false
	}
	return Range{Lo: int(lo), Hi: int(min(hi, p.n))}, true
}
