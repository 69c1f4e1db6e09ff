package partition

// Static gives each worker a single contiguous block, fixed before the pass starts.
type Static struct{}

func (Static) Name() string { return "static" }

func (Static) Plan(n, workers int) Plan {
	return &staticPlan{n: n, workers: workers, handed: make([]bool, workers)}
}

type staticPlan struct {
	n, workers int
	// handed[w] is only touched by worker w.
	handed []bool
}

func (p *staticPlan) Next(worker int) (Range, bool) {
	if p.handed[worker] {
		return Range{}, false
	}
	p.handed[worker] = true

	r := block(p.n, p.workers, worker)
	if r.Len() == 0 {
		return Range{}, false
	}
	return r, true
}
