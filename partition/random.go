package partition

import (
	"math/rand"
	"sync"
	"time"
)

// Random shuffles the index space, then splits the shuffled order into Static blocks.
// Spatially clustered expensive points end up spread over all blocks.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a Random policy drawing from rnd, or from a clock-seeded source if rnd is nil.
func NewRandom(rnd *rand.Rand) *Random {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Random{rnd: rnd}
}

// NewSeededRandom returns a Random policy whose shuffles are reproducible.
func NewSeededRandom(seed int64) *Random {
	return NewRandom(rand.New(rand.NewSource(seed)))
}

func (*Random) Name() string { return "random" }

func (*Random) Plan(n, workers int) Plan {
	return Static{}.Plan(n, workers)
}

// Permute shuffles n elements through swap. Calls are serialized, so one Random
// may serve concurrent passes; each shuffle advances the shared source.
func (p *Random) Permute(n int, swap func(i, j int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	Shuffle(n, p.rnd, swap)
}

// Shuffle is Fisher–Yates: walking down from the last element, each element is
// exchanged with a uniformly chosen one at or below it.
func Shuffle(n int, rnd *rand.Rand, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		swap(i, j)
	}
}
