package mandel

import (
	"fmt"

	"github.com/spf13/cast"
)

// FieldsPerRegion is the number of positional values describing one region.
const FieldsPerRegion = 6

var fieldNames = [FieldsPerRegion]string{"real_lower", "real_upper", "img_lower", "img_upper", "num", "maxiter"}

// ParseRegions parses a flat list of 6×R values, each group being
// real_lower real_upper img_lower img_upper num maxiter.
// Integers accept decimal, 0x-prefixed hex and 0-prefixed octal.
// Every region is parsed and validated before any is returned, so a bad value
// anywhere rejects the whole list.
func ParseRegions(args []string) ([]Region, error) {
	if len(args) == 0 || len(args)%FieldsPerRegion != 0 {
		return nil, fmt.Errorf("%w: expected a positive multiple of %d values, got %d",
			ErrInvalidArgument, FieldsPerRegion, len(args))
	}

	regions := make([]Region, 0, len(args)/FieldsPerRegion)
	for i := 0; i < len(args); i += FieldsPerRegion {
		r, err := parseRegion(i/FieldsPerRegion, args[i:i+FieldsPerRegion])
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}

func parseRegion(idx int, fields []string) (Region, error) {
	var floats [4]float64
	for k := range floats {
		v, err := cast.ToFloat64E(fields[k])
		if err != nil {
			return Region{}, &ArgError{Region: idx, Field: fieldNames[k], Value: fields[k], Err: err}
		}
		floats[k] = v
	}

	var ints [2]int
	for k := range ints {
		v, err := cast.ToIntE(fields[4+k])
		if err != nil {
			return Region{}, &ArgError{Region: idx, Field: fieldNames[4+k], Value: fields[4+k], Err: err}
		}
		ints[k] = v
	}

	r := Region{
		RealLower: floats[0],
		RealUpper: floats[1],
		ImgLower:  floats[2],
		ImgUpper:  floats[3],
		Num:       ints[0],
		MaxIter:   ints[1],
	}
	if err := r.Validate(); err != nil {
		return Region{}, fmt.Errorf("region %d: %w", idx, err)
	}
	return r, nil
}

// Args formats r back into its six positional values.
func (r Region) Args() []string {
	return []string{
		cast.ToString(r.RealLower),
		cast.ToString(r.RealUpper),
		cast.ToString(r.ImgLower),
		cast.ToString(r.ImgUpper),
		cast.ToString(r.Num),
		cast.ToString(r.MaxIter),
	}
}
