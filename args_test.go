package mandel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegions(t *testing.T) {
	regions, err := ParseRegions([]string{
		"-2.0", "1.0", "-1.0", "1.0", "100", "10000",
		"-1", "1.0", "0.0", "1.0", "0x10", "010",
	})
	require.NoError(t, err)
	assert.Equal(t, []Region{
		{RealLower: -2, RealUpper: 1, ImgLower: -1, ImgUpper: 1, Num: 100, MaxIter: 10000},
		{RealLower: -1, RealUpper: 1, ImgLower: 0, ImgUpper: 1, Num: 16, MaxIter: 8},
	}, regions)
}

func TestParseRegionsArgCount(t *testing.T) {
	for _, args := range [][]string{nil, {"1", "2", "3", "4", "5"}, {"-2", "1", "-1", "1", "4", "100", "7"}} {
		_, err := ParseRegions(args)
		assert.ErrorIs(t, err, ErrInvalidArgument, "args=%v", args)
	}
}

func TestParseRegionsMalformedField(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		region int
		field  string
	}{
		{"float", []string{"-2", "one", "-1", "1", "4", "100"}, 0, "real_upper"},
		{"int", []string{"-2", "1", "-1", "1", "4.5", "100"}, 0, "num"},
		{"second region", []string{
			"-2", "1", "-1", "1", "4", "100",
			"-2", "1", "-1", "1", "4", "",
		}, 1, "maxiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegions(tt.args)
			require.ErrorIs(t, err, ErrInvalidArgument)

			var argErr *ArgError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.region, argErr.Region)
			assert.Equal(t, tt.field, argErr.Field)
		})
	}
}

func TestParseRegionsInvalidRegion(t *testing.T) {
	_, err := ParseRegions([]string{"1", "-2", "-1", "1", "4", "100"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "region 0")
}

func TestRegionArgsRoundTrip(t *testing.T) {
	r := Region{RealLower: -0.7435, RealUpper: -0.742, ImgLower: 0.131, ImgUpper: 0.1325, Num: 500, MaxIter: 5000}
	got, err := ParseRegions(r.Args())
	require.NoError(t, err)
	assert.Equal(t, []Region{r}, got)
}
