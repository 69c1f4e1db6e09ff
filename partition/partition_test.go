package partition

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPolicies(t *testing.T) []Policy {
	t.Helper()
	var policies []Policy
	for _, name := range Names() {
		p, err := New(name, Options{Rand: rand.New(rand.NewSource(1))})
		require.NoError(t, err)
		policies = append(policies, p)
	}
	policies = append(policies, Dynamic{Chunk: 7}, Guided{MinChunk: 4})
	return policies
}

// drain runs every worker of plan in its own goroutine and returns the ranges each received.
func drain(plan Plan, workers int) [][]Range {
	got := make([][]Range, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for r, ok := plan.Next(w); ok; r, ok = plan.Next(w) {
				got[w] = append(got[w], r)
			}
		}(w)
	}
	wg.Wait()
	return got
}

func TestPlansCoverIndexSpaceOnce(t *testing.T) {
	for _, p := range allPolicies(t) {
		for _, workers := range []int{1, 2, 3, 8} {
			for _, n := range []int{0, 1, 2, 7, 25, 1000, 10201} {
				seen := make([]int, n)
				for _, ranges := range drain(p.Plan(n, workers), workers) {
					for _, r := range ranges {
						require.Positive(t, r.Len(), "%s: empty range %v", p.Name(), r)
						for k := r.Lo; k < r.Hi; k++ {
							seen[k]++
						}
					}
				}
				for k, c := range seen {
					require.Equal(t, 1, c, "%s workers=%d n=%d: index %d seen %d times", p.Name(), workers, n, k, c)
				}
			}
		}
	}
}

func TestStaticBlocks(t *testing.T) {
	got := drain(Static{}.Plan(10, 3), 3)
	assert.Equal(t, [][]Range{
		{{0, 3}},
		{{3, 6}},
		{{6, 10}}, // last worker absorbs the remainder
	}, got)

	// More workers than indices: only the last one has work.
	got = drain(Static{}.Plan(2, 3), 3)
	assert.Equal(t, [][]Range{nil, nil, {{0, 2}}}, got)
}

func TestDynamicChunks(t *testing.T) {
	plan := Dynamic{Chunk: 4}.Plan(10, 2)
	var ranges []Range
	for r, ok := plan.Next(0); ok; r, ok = plan.Next(1) {
		ranges = append(ranges, r)
	}
	assert.Equal(t, []Range{{0, 4}, {4, 8}, {8, 10}}, ranges)

	r, ok := Dynamic{}.Plan(3, 1).Next(0)
	require.True(t, ok)
	assert.Equal(t, 1, r.Len(), "default unit is one point")
}

func TestGuidedChunksShrink(t *testing.T) {
	plan := Guided{}.Plan(100, 4)
	var sizes []int
	for r, ok := plan.Next(0); ok; r, ok = plan.Next(0) {
		sizes = append(sizes, r.Len())
	}
	assert.Equal(t, 25, sizes[0])
	assert.Equal(t, 1, sizes[len(sizes)-1])
	assert.True(t, sort.SliceIsSorted(sizes, func(i, j int) bool { return sizes[i] > sizes[j] }), "sizes %v", sizes)

	plan = Guided{MinChunk: 10}.Plan(100, 4)
	for r, ok := plan.Next(0); ok; r, ok = plan.Next(0) {
		if r.Hi != 100 {
			assert.GreaterOrEqual(t, r.Len(), 10)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	const n = 1000
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(n, rand.New(rand.NewSource(42)), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	moved := 0
	for i, v := range perm {
		if i != v {
			moved++
		}
	}
	assert.Greater(t, moved, n/2)

	sorted := append([]int(nil), perm...)
	sort.Ints(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v)
	}
}

func TestRandomSeedReproducible(t *testing.T) {
	shuffled := func(p *Random) []int {
		s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		p.Permute(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return s
	}
	a, b := NewSeededRandom(7), NewSeededRandom(7)
	first := shuffled(a)
	assert.Equal(t, first, shuffled(b))
	assert.NotEqual(t, first, shuffled(a), "each shuffle advances the source")
}

func TestNewUnknownPolicy(t *testing.T) {
	_, err := New("round-robin", Options{})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Equal(t, []string{"dynamic", "guided", "random", "static"}, Names())
}
