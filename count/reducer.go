// Package count runs parallel membership counting passes over Mandelbrot regions.
package count

import (
	"context"
	"fmt"
	"runtime"
	"time"

	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/partition"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPoints bounds how many points a permuting policy may materialize.
const DefaultMaxPoints = 1 << 26

// Reducer counts members of a region with a fixed pool of workers, splitting the
// lattice with Policy and summing per-worker counts once all workers are done.
type Reducer struct {
	Policy partition.Policy
	// Workers is the pool size; <= 0 means runtime.GOMAXPROCS(0).
	Workers int
	// MaxPoints caps materialized lattices; 0 means DefaultMaxPoints, < 0 no cap.
	MaxPoints int
}

// WorkerStats describes what one worker did during a pass.
type WorkerStats struct {
	Ranges  int
	Points  int
	Members int
	Busy    time.Duration
}

// Pass is the outcome of counting one region.
type Pass struct {
	Region  mandel.Region
	Policy  string
	Count   int
	Elapsed time.Duration
	Workers []WorkerStats
}

// Imbalance is the busiest worker's time over the mean busy time: 1 is a perfect
// balance, larger values mean the pass waited on stragglers.
func (p Pass) Imbalance() float64 {
	var total, most time.Duration
	for _, w := range p.Workers {
		total += w.Busy
		most = max(most, w.Busy)
	}
	if total == 0 {
		return 1
	}
	return float64(most) * float64(len(p.Workers)) / float64(total)
}

func (rd Reducer) workers() int {
	if rd.Workers > 0 {
		return rd.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (rd Reducer) maxPoints() int {
	switch {
	case rd.MaxPoints == 0:
		return DefaultMaxPoints
	case rd.MaxPoints < 0:
		return 0
	}
	return rd.MaxPoints
}

// Check reports whether r can be counted by rd, without counting it.
func (rd Reducer) Check(r mandel.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	n, err := r.Size()
	if err != nil {
		return err
	}
	if _, ok := rd.Policy.(partition.Permuter); ok {
		if limit := rd.maxPoints(); limit > 0 && n > limit {
			return fmt.Errorf("%w: %s policy holds all %d points in memory, limit is %d",
				mandel.ErrResourceExhausted, rd.Policy.Name(), n, limit)
		}
	}
	return nil
}

// Count implements mandel.Counter.
func (rd Reducer) Count(ctx context.Context, r mandel.Region) (int, error) {
	p, err := rd.Pass(ctx, r)
	if err != nil {
		return 0, err
	}
	return p.Count, nil
}

// Pass counts r and reports per-worker statistics.
// The context is checked whenever a worker asks for its next range.
func (rd Reducer) Pass(ctx context.Context, r mandel.Region) (Pass, error) {
	if err := rd.Check(r); err != nil {
		return Pass{}, err
	}
	start := time.Now()

	lattice := mandel.NewLattice(r)
	at := lattice.At
	if p, ok := rd.Policy.(partition.Permuter); ok {
		points, err := lattice.Points(rd.maxPoints())
		if err != nil {
			return Pass{}, err
		}
		p.Permute(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
		at = func(k int) mandel.Point { return points[k] }
	}

	workers := rd.workers()
	plan := rd.Policy.Plan(lattice.Len(), workers)
	stats := make([]WorkerStats, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var s WorkerStats
			began := time.Now()
			defer func() {
				s.Busy = time.Since(began)
				stats[w] = s
			}()

			for rg, ok := plan.Next(w); ok; rg, ok = plan.Next(w) {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.Ranges++
				s.Points += rg.Len()
				for k := rg.Lo; k < rg.Hi; k++ {
					if mandel.IsMember(at(k).Complex(), r.MaxIter) {
						s.Members++
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Pass{}, fmt.Errorf("count %s: %w", r, err)
	}

	pass := Pass{
		Region:  r,
		Policy:  rd.Policy.Name(),
		Elapsed: time.Since(start),
		Workers: stats,
	}
	for _, s := range stats {
		pass.Count += s.Members
	}
	return pass, nil
}

var _ mandel.Counter = Reducer{}
