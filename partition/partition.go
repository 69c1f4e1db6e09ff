// Package partition assigns the flat index space [0, n) of a lattice to a fixed
// number of workers.
//
// A Policy is chosen once per process and produces one Plan per counting pass.
// Workers pull ranges from the plan until it reports it is exhausted; how many
// ranges a worker gets, and when, is what distinguishes the policies:
//
//   - Static hands every worker one contiguous block up front.
//   - Dynamic hands out small fixed-size chunks on demand.
//   - Guided hands out chunks on demand whose size shrinks as the space is consumed.
//   - Random is Static over a shuffled index order; the shuffle happens before
//     the pass through the Permuter interface.
//
// Whatever the policy, the ranges a plan hands out are pairwise disjoint and
// their union is exactly [0, n).
package partition

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrUnknownPolicy is returned by New for names other than those listed by Names.
var ErrUnknownPolicy = errors.New("unknown partition policy")

// Range is the half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

func (r Range) Len() int { return r.Hi - r.Lo }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi) }

// Policy creates plans.
type Policy interface {
	Name() string
	// Plan splits [0, n) among workers; workers must be at least 1.
	Plan(n, workers int) Plan
}

// Plan hands out ranges for one pass.
type Plan interface {
	// Next returns the next range for worker, 0 <= worker < workers.
	// A given worker index must only be used from one goroutine at a time;
	// different workers may call Next concurrently.
	Next(worker int) (Range, bool)
}

// Permuter is implemented by policies that reorder the index space before it is split.
// Permute calls swap for every exchange of a Fisher–Yates shuffle of n elements.
type Permuter interface {
	Permute(n int, swap func(i, j int))
}

// Options tune the policies built by New.
type Options struct {
	// Chunk is the Dynamic unit size; <= 0 means 1.
	Chunk int
	// MinChunk is the smallest Guided unit; <= 0 means 1.
	MinChunk int
	// Rand drives the Random shuffle; nil means a source seeded from the clock.
	Rand *rand.Rand
}

var constructors = map[string]func(o Options) Policy{
	"static":  func(Options) Policy { return Static{} },
	"dynamic": func(o Options) Policy { return Dynamic{Chunk: o.Chunk} },
	"guided":  func(o Options) Policy { return Guided{MinChunk: o.MinChunk} },
	"random":  func(o Options) Policy { return NewRandom(o.Rand) },
}

// New returns the policy registered under name.
func New(name string, o Options) (Policy, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownPolicy, name, Names())
	}
	return c(o), nil
}

// Names lists the policy names accepted by New.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// block returns the contiguous block owned by worker me when n indices are shared by
// workers: every worker gets n/workers, the last one also takes the remainder.
func block(n, workers, me int) Range {
	chunk := n / workers
	r := Range{Lo: me * chunk, Hi: (me + 1) * chunk}
	if me == workers-1 {
		r.Hi = n
	}
	return r
}
