package count

import (
	"context"
	"fmt"
	"log"
	"time"

	mandel "github.com/victorskl/mandelcount"
)

// Checker is implemented by counters that can reject a region before any work starts,
// such as remote counters asking their server.
type Checker interface {
	Check(ctx context.Context, r mandel.Region) error
}

// Runner counts regions one after the other.
type Runner struct {
	Counter mandel.Counter
	// Log receives one line per region; nil disables it.
	Log *log.Logger
}

// Run checks every region first, then counts them in order, calling emit with each
// count before the next region starts. Nothing is emitted if any region is rejected.
func (rn Runner) Run(ctx context.Context, regions []mandel.Region, emit func(i, count int) error) error {
	for i, r := range regions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if err := rn.check(ctx, r); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
	}

	for i, r := range regions {
		n, err := rn.count(ctx, i, r)
		if err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
		if err := emit(i, n); err != nil {
			return err
		}
	}
	return nil
}

func (rn Runner) check(ctx context.Context, r mandel.Region) error {
	switch c := rn.Counter.(type) {
	case Reducer:
		return c.Check(r)
	case Checker:
		return c.Check(ctx, r)
	}
	return nil
}

func (rn Runner) count(ctx context.Context, i int, r mandel.Region) (int, error) {
	rd, ok := rn.Counter.(Reducer)
	if !ok {
		start := time.Now()
		n, err := rn.Counter.Count(ctx, r)
		if err == nil {
			rn.logf("region %d %s: count=%d elapsed=%s", i, r, n, time.Since(start))
		}
		return n, err
	}

	p, err := rd.Pass(ctx, r)
	if err != nil {
		return 0, err
	}
	rn.logf("region %d %s: count=%d policy=%s workers=%d elapsed=%s imbalance=%.2f",
		i, r, p.Count, p.Policy, len(p.Workers), p.Elapsed, p.Imbalance())
	return p.Count, nil
}

func (rn Runner) logf(format string, args ...any) {
	if rn.Log != nil {
		rn.Log.Printf(format, args...)
	}
}
