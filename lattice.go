package mandel

import "fmt"

// Point is one lattice sample.
type Point struct {
	Real, Img float64
}

// Complex returns p as Real + Img·i.
func (p Point) Complex() complex128 {
	return complex(p.Real, p.Img)
}

// Lattice enumerates the sample points of a Region in row-major order:
// the real index is the outer loop, the imaginary index the inner one.
type Lattice struct {
	region   Region
	side     int
	realStep float64
	imgStep  float64
}

// NewLattice returns the lattice of r. A region with Num == 0 has exactly one
// point, (RealLower, ImgLower).
func NewLattice(r Region) Lattice {
	l := Lattice{region: r, side: r.Num + 1}
	if r.Num > 0 {
		l.realStep = (r.RealUpper - r.RealLower) / float64(r.Num)
		l.imgStep = (r.ImgUpper - r.ImgLower) / float64(r.Num)
	}
	return l
}

func (l Lattice) Region() Region { return l.region }

// Len returns (Num+1)². Callers are expected to have checked Region.Size first.
func (l Lattice) Len() int {
	return l.side * l.side
}

// At returns the point with flat index k, 0 <= k < Len().
func (l Lattice) At(k int) Point {
	i, j := k/l.side, k%l.side
	return Point{
		Real: l.region.RealLower + float64(i)*l.realStep,
		Img:  l.region.ImgLower + float64(j)*l.imgStep,
	}
}

// Points materializes every point of the lattice. It fails with ErrResourceExhausted
// instead of allocating more than limit points; limit <= 0 means no limit.
func (l Lattice) Points(limit int) ([]Point, error) {
	n, err := l.region.Size()
	if err != nil {
		return nil, err
	}
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("%w: %d points exceed the limit of %d", ErrResourceExhausted, n, limit)
	}

	points := make([]Point, 0, n)
	for i := 0; i < l.side; i++ {
		re := l.region.RealLower + float64(i)*l.realStep
		for j := 0; j < l.side; j++ {
			points = append(points, Point{Real: re, Img: l.region.ImgLower + float64(j)*l.imgStep})
		}
	}
	return points, nil
}
