package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/partition"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTwoRegionsTwoLines(t *testing.T) {
	for _, policy := range partition.Names() {
		for _, workers := range []string{"1", "3", "8"} {
			t.Run(policy+"/"+workers, func(t *testing.T) {
				t.Setenv("MANDEL_POLICY", policy)
				t.Setenv("MANDEL_WORKERS", workers)
				t.Setenv("MANDEL_SEED", "11")

				out, err := execute(t,
					"-2.0", "1.0", "-1.0", "1.0", "4", "100",
					"-0.5", "1.0", "0.25", "1.0", "0", "100",
				)
				require.NoError(t, err)
				assert.Equal(t, "8\n1\n", out)
			})
		}
	}
}

func TestFlagsBetweenCoordinates(t *testing.T) {
	out, err := execute(t, "-2.0", "1.0", "-1.0", "--", "1.0", "4", "100")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestMalformedArgumentsPrintNothing(t *testing.T) {
	out, err := execute(t,
		"-2.0", "1.0", "-1.0", "1.0", "4", "100",
		"-2.0", "1.0", "-1.0", "1.0", "four", "100",
	)
	require.ErrorIs(t, err, mandel.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "region 1")
	assert.Contains(t, err.Error(), "num")
	assert.Empty(t, out)

	_, err = execute(t, "-2.0", "1.0", "-1.0")
	assert.ErrorIs(t, err, mandel.ErrInvalidArgument)
}

func TestUnknownPolicy(t *testing.T) {
	t.Setenv("MANDEL_POLICY", "fastest")
	_, err := execute(t, "-2.0", "1.0", "-1.0", "1.0", "4", "100")
	assert.ErrorIs(t, err, partition.ErrUnknownPolicy)
}

func TestResourceExhausted(t *testing.T) {
	t.Setenv("MANDEL_POLICY", "random")
	t.Setenv("MANDEL_MAX_POINTS", "100")
	out, err := execute(t,
		"-2.0", "1.0", "-1.0", "1.0", "4", "100",
		"-2.0", "1.0", "-1.0", "1.0", "10", "100",
	)
	assert.ErrorIs(t, err, mandel.ErrResourceExhausted)
	assert.Empty(t, out)
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "MANDEL_POLICY")
}

func TestLandmarks(t *testing.T) {
	out, err := execute(t, "landmarks")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(mandel.Landmarks))
	assert.True(t, strings.HasPrefix(lines[0], "dragon"), "sorted by name")

	for _, line := range lines {
		fields := strings.Fields(line)
		regions, err := mandel.ParseRegions(fields[1:])
		require.NoError(t, err, line)
		assert.Equal(t, mandel.Landmarks[fields[0]], regions[0])
	}
}
