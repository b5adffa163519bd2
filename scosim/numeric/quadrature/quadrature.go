// Package quadrature wraps gonum's fixed-order quadrature with the
// breakpoint-walking piecewise integral from original_source's
// numerics/quadrature/piecewise.rs.
package quadrature

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Precision is the default absolute tolerance below which a single piece's
// integral is considered to have converged to zero.
const Precision = 1e-6

// convergenceThreshold is the number of consecutive sub-precision pieces
// integrated before piecewise integration gives up early, mirroring
// piecewise.rs's CONVERGENCE_THRESHOLD.
const convergenceThreshold = 10

// fixedPoints is the quadrature order used for each finite piece.
const fixedPoints = 32

// Integral computes a definite integral over a finite interval [a, b]
// using fixed-order Gauss-Legendre quadrature. Infinite bounds are not
// supported directly; callers route through PiecewiseIntegral, which
// only ever asks Integral for finite sub-intervals.
func Integral(a, b float64, f func(float64) float64) float64 {
	if a == b {
		return 0
	}
	if a > b {
		return -Integral(b, a, f)
	}
	return quad.Fixed(f, a, b, fixedPoints, nil, 0)
}

// Breakpoints is the minimal contract PiecewiseIntegral needs from
// scosim.Breakpoints, kept dependency-free so this package never imports
// the root scosim package.
type Breakpoints interface {
	Fixed() []float64
	Next(b float64) (prev, next *float64)
}

// PiecewiseIntegral computes the integral of f over [from, to] walking
// outward from a seed point through the breakpoint set in both
// directions, stopping either when the limit of integration is reached
// or when convergenceThreshold consecutive pieces integrate below
// Precision. Mirrors piecewise_integral in piecewise.rs exactly.
func PiecewiseIntegral(bp Breakpoints, from, to float64, f func(float64) float64) float64 {
	var init float64
	switch {
	case math.IsInf(from, 0) && math.IsInf(to, 0):
		init = 0
	case math.IsInf(from, 0):
		init = to
	case math.IsInf(to, 0):
		init = from
	default:
		init = (to-from)/2 + from
	}

	fixed := bp.Fixed()
	i := len(fixed)
	for idx, b := range fixed {
		if b > init {
			i = idx
			break
		}
	}
	prevI := i - 1
	if i > 0 && fixed[i-1] == init {
		prevI = i - 2
	}

	l := piecewiseIntegral(directionLeft, bp, fixed, init, from, f, prevI, 0)
	r := piecewiseIntegral(directionRight, bp, fixed, init, to, f, i, 0)
	return l + r
}

type direction int

const (
	directionLeft direction = iota
	directionRight
)

func piecewiseIntegral(
	dir direction,
	bp Breakpoints,
	fixed []float64,
	b, to float64,
	f func(float64) float64,
	i, n int,
) float64 {
	switch dir {
	case directionLeft:
		if b <= to {
			return 0
		}
	case directionRight:
		if b >= to {
			return 0
		}
	}

	nextI := i
	nextN := n

	var fixedB *float64
	if i >= 0 && i < len(fixed) {
		v := fixed[i]
		fixedB = &v
	}

	leftB, rightB := bp.Next(b)

	var nextB *float64
	switch {
	case fixedB == nil:
		if dir == directionLeft {
			nextB = leftB
		} else {
			nextB = rightB
		}
	default:
		if dir == directionLeft {
			if leftB == nil {
				nextI--
				nextB = fixedB
			} else if *fixedB < *leftB {
				nextB = leftB
			} else {
				nextI--
				nextB = fixedB
			}
		} else {
			if rightB == nil {
				nextI++
				nextB = fixedB
			} else if *fixedB > *rightB {
				nextB = rightB
			} else {
				nextI++
				nextB = fixedB
			}
		}
	}

	switch dir {
	case directionLeft:
		if nextB == nil || *nextB <= to {
			return Integral(to, b, f)
		}
	case directionRight:
		if nextB == nil || *nextB >= to {
			return Integral(b, to, f)
		}
	}

	var result float64
	if dir == directionLeft {
		result = Integral(*nextB, b, f)
	} else {
		result = Integral(b, *nextB, f)
	}

	if math.Abs(result) < Precision {
		nextN++
		if nextN >= convergenceThreshold {
			return result
		}
	} else {
		nextN = 0
	}

	return result + piecewiseIntegral(dir, bp, fixed, *nextB, to, f, nextI, nextN)
}
