package count

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/partition"
)

// recordingCounter remembers the order in which regions were counted.
type recordingCounter struct {
	mu   sync.Mutex
	seen []mandel.Region
}

func (c *recordingCounter) Count(_ context.Context, r mandel.Region) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, r)
	return r.Num, nil
}

func TestRunnerEmitsInOrder(t *testing.T) {
	var logBuf bytes.Buffer
	rn := Runner{
		Counter: Reducer{Policy: partition.NewSeededRandom(3), Workers: 4},
		Log:     log.New(&logBuf, "", 0),
	}

	var got []int
	err := rn.Run(context.Background(), testRegions, func(i, n int) error {
		require.Equal(t, len(got), i)
		got = append(got, n)
		return nil
	})
	require.NoError(t, err)

	want := make([]int, len(testRegions))
	for i, r := range testRegions {
		want[i] = sequential(r)
	}
	assert.Equal(t, want, got)
	assert.Contains(t, logBuf.String(), "policy=random")
}

func TestRunnerRejectsBeforeCounting(t *testing.T) {
	c := &recordingCounter{}
	regions := append([]mandel.Region(nil), testRegions...)
	regions[2].Num = -1

	emitted := 0
	err := Runner{Counter: c}.Run(context.Background(), regions, func(int, int) error {
		emitted++
		return nil
	})
	assert.ErrorIs(t, err, mandel.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "region 2")
	assert.Zero(t, emitted)
	assert.Empty(t, c.seen)
}

func TestRunnerRejectsOversizedForPolicy(t *testing.T) {
	regions := []mandel.Region{testRegions[0], {RealLower: -2, RealUpper: 1, ImgLower: -1, ImgUpper: 1, Num: 999, MaxIter: 10}}
	emitted := 0
	err := Runner{Counter: Reducer{Policy: partition.NewSeededRandom(1), MaxPoints: 1000}}.Run(
		context.Background(), regions, func(int, int) error {
			emitted++
			return nil
		})
	assert.ErrorIs(t, err, mandel.ErrResourceExhausted)
	assert.Zero(t, emitted)
}

func TestRunnerAnyCounter(t *testing.T) {
	c := &recordingCounter{}
	var got []int
	err := Runner{Counter: c}.Run(context.Background(), testRegions[:2], func(_, n int) error {
		got = append(got, n)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{testRegions[0].Num, testRegions[1].Num}, got)
	assert.Equal(t, testRegions[:2], c.seen)
}

func TestRunnerStopsOnEmitError(t *testing.T) {
	c := &recordingCounter{}
	stop := errors.New("stop")
	err := Runner{Counter: c}.Run(context.Background(), testRegions, func(int, int) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Len(t, c.seen, 1)
}

// checkingCounter rejects regions above a fixed size in Check, the way a remote
// counter relays its server's limits.
type checkingCounter struct {
	recordingCounter
	limit int
}

func (c *checkingCounter) Check(_ context.Context, r mandel.Region) error {
	if n, _ := r.Size(); n > c.limit {
		return mandel.ErrResourceExhausted
	}
	return nil
}

func TestRunnerUsesCheckerBeforeCounting(t *testing.T) {
	c := &checkingCounter{limit: 100}
	regions := []mandel.Region{testRegions[0], {RealLower: -2, RealUpper: 1, ImgLower: -1, ImgUpper: 1, Num: 10, MaxIter: 10}}

	emitted := 0
	err := Runner{Counter: c}.Run(context.Background(), regions, func(int, int) error {
		emitted++
		return nil
	})
	assert.ErrorIs(t, err, mandel.ErrResourceExhausted)
	assert.Contains(t, err.Error(), "region 1")
	assert.Zero(t, emitted)
	assert.Empty(t, c.seen)
}
