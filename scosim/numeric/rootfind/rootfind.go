// Package rootfind implements the 1-D root finder collaborator named in
// spec.md §6: find_root(interval, f) -> root, with documented fallbacks
// for degenerate intervals and intervals where f does not change sign.
// gonum has no boxed 1-D root finder in the vendored version, so this is
// a plain bisection implementation with no gonum dependency, grounded in the contract spec.md §6 documents and in the call
// sites of original_source's probabilistic.rs/primal.rs/dual.rs.
package rootfind

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Tolerance is the default convergence tolerance and minimum bracket width.
const Tolerance = 1e-7

// MaxIterations bounds the bisection loop for degenerate or slowly
// converging brackets.
const MaxIterations = 200

// FindRoot searches (lo, hi) for a root of f using bisection. If the
// bracket is already narrower than Tolerance, an endpoint is returned
// directly. If f does not change sign across the bracket, the endpoint
// closer to zero is returned and a warning is logged (not an error),
// matching spec.md §6's documented behavior.
func FindRoot(lo, hi float64, f func(float64) float64) float64 {
	if hi-lo < Tolerance {
		return lo
	}

	flo, fhi := f(lo), f(hi)
	if sameSign(flo, fhi) {
		logrus.Warnf("find_root: f does not change sign on [%v, %v], returning closer endpoint", lo, hi)
		if math.Abs(flo) <= math.Abs(fhi) {
			return lo
		}
		return hi
	}

	for i := 0; i < MaxIterations && hi-lo > Tolerance; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 {
			return mid
		}
		if sameSign(flo, fmid) {
			lo, flo = mid, fmid
		} else {
			hi, fhi = mid, fmid
		}
	}
	return (lo + hi) / 2
}

func sameSign(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	return (a > 0) == (b > 0)
}
