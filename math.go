package deorbit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// speedε is the speed under which the velocity direction is considered undefined.
	speedε = 1e-12
)

// norm returns the norm of a given vector.
func norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// norm2 returns the norm of the planar vector (x, y).
func norm2(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// dot performs the inner product via mat/BLAS.
func dot(a, b []float64) float64 {
	return mat.Dot(mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
}

// cross2 returns the z component of the cross product of two planar vectors.
func cross2(a, b []float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Polar returns the radius and the normalized polar angle of (x, y).
// The angle is in [0, 1) and increases counterclockwise from the positive x-axis.
// Undefined at the origin, where it panics.
func Polar(x, y float64) (r, a float64) {
	r = norm2(x, y)
	if r == 0 {
		panic("polar angle undefined at the origin")
	}
	// Clamp to protect acos from rounding errors.
	c := math.Max(-1, math.Min(1, x/r))
	if y >= 0 {
		a = math.Acos(c) / (2 * math.Pi)
	} else {
		a = 1 - math.Acos(c)/(2*math.Pi)
	}
	return
}

// Cartesian is the inverse of Polar.
func Cartesian(r, a float64) (x, y float64) {
	s, c := math.Sincos(2 * math.Pi * a)
	return r * c, r * s
}
