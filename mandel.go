package mandel

import (
	"fmt"
	"math"
)

// Region is a rectangle of the complex plane sampled on a (Num+1)×(Num+1) lattice,
// together with the iteration budget used to decide membership.
type Region struct {
	RealLower float64 `json:"real_lower"`
	RealUpper float64 `json:"real_upper"`
	ImgLower  float64 `json:"img_lower"`
	ImgUpper  float64 `json:"img_upper"`
	Num       int     `json:"num"`
	MaxIter   int     `json:"maxiter"`
}

// Validate reports whether r can be counted.
// Failures wrap ErrInvalidArgument.
func (r Region) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"real_lower", r.RealLower},
		{"real_upper", r.RealUpper},
		{"img_lower", r.ImgLower},
		{"img_upper", r.ImgUpper},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidArgument, f.name)
		}
	}
	if !(r.RealLower < r.RealUpper) {
		return fmt.Errorf("%w: real_lower %g must be below real_upper %g", ErrInvalidArgument, r.RealLower, r.RealUpper)
	}
	if !(r.ImgLower < r.ImgUpper) {
		return fmt.Errorf("%w: img_lower %g must be below img_upper %g", ErrInvalidArgument, r.ImgLower, r.ImgUpper)
	}
	if r.Num < 0 {
		return fmt.Errorf("%w: num %d is negative", ErrInvalidArgument, r.Num)
	}
	if r.MaxIter < 1 {
		return fmt.Errorf("%w: maxiter %d must be positive", ErrInvalidArgument, r.MaxIter)
	}
	return nil
}

// Size returns the number of lattice points, (Num+1)².
func (r Region) Size() (int, error) {
	side := r.Num + 1
	if side <= 0 || side > math.MaxInt/side {
		return 0, fmt.Errorf("%w: lattice side %d overflows the index space", ErrResourceExhausted, side)
	}
	return side * side, nil
}

func (r Region) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g] num=%d maxiter=%d",
		r.RealLower, r.RealUpper, r.ImgLower, r.ImgUpper, r.Num, r.MaxIter)
}

// Classic regions / landmarks in the Mandelbrot set, sampled at a resolution that keeps
// a pass under a second on a laptop.
var (
	// The whole set
	FullSet = Region{
		RealLower: -2.0,
		RealUpper: 1.0,
		ImgLower:  -1.0,
		ImgUpper:  1.0,
		Num:       1000,
		MaxIter:   1000,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		RealLower: -0.8,
		RealUpper: -0.7,
		ImgLower:  0.05,
		ImgUpper:  0.15,
		Num:       500,
		MaxIter:   2000,
	}

	// Elephant Valley – large bulb with trunk-like tendrils, just east of the
	// main cardioid's cusp at 0.25
	ElephantValley = Region{
		RealLower: 0.25,
		RealUpper: 0.35,
		ImgLower:  -0.05,
		ImgUpper:  0.05,
		Num:       500,
		MaxIter:   2000,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		RealLower: -0.7435,
		RealUpper: -0.7420,
		ImgLower:  0.1310,
		ImgUpper:  0.1325,
		Num:       500,
		MaxIter:   5000,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		RealLower: -0.7480,
		RealUpper: -0.7450,
		ImgLower:  0.0950,
		ImgUpper:  0.0980,
		Num:       500,
		MaxIter:   3000,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		RealLower: -0.7400,
		RealUpper: -0.7350,
		ImgLower:  0.1800,
		ImgUpper:  0.1850,
		Num:       500,
		MaxIter:   3000,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		RealLower: -1.7390,
		RealUpper: -1.7375,
		ImgLower:  -0.0235,
		ImgUpper:  -0.0220,
		Num:       500,
		MaxIter:   5000,
	}
)

// Landmarks lists the named regions above.
var Landmarks = map[string]Region{
	"full":     FullSet,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}
