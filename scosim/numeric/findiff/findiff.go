// Package findiff wraps gonum's finite-difference routines with the
// NaN-to-zero-with-warning and infinite-input passthrough behavior
// documented in original_source's numerics/finite_differences.rs.
package findiff

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
)

// Derivative returns the first-order derivative of f at x via central
// finite differences.
func Derivative(f func(float64) float64, x float64) float64 {
	if math.IsInf(f(x), 0) {
		return math.Inf(1)
	}
	result := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central})
	if math.IsNaN(result) {
		logrus.Warn("first-order finite difference returned NaN, assuming result 0")
		return 0
	}
	return result
}

// SecondDerivative returns the second-order derivative of f at x via
// central finite differences with a coarser step, matching the original
// implementation's widened tolerance for second-order estimates.
func SecondDerivative(f func(float64) float64, x float64) float64 {
	if math.IsInf(f(x), 0) {
		return math.Inf(1)
	}
	h := math.Pow(tolerance, 0.25)
	forward := fd.Derivative(f, x+h, &fd.Settings{Formula: fd.Central})
	backward := fd.Derivative(f, x-h, &fd.Settings{Formula: fd.Central})
	result := (forward - backward) / (2 * h)
	if math.IsNaN(result) {
		logrus.Warn("second-order finite difference returned NaN, assuming result 0")
		return 0
	}
	return result
}

// Gradient returns the vector gradient of f at xs via central differences.
func Gradient(f func([]float64) float64, xs []float64) []float64 {
	grad := fd.Gradient(nil, f, xs, &fd.Settings{Formula: fd.Central})
	for i, d := range grad {
		if math.IsNaN(d) {
			logrus.Warn("first-order finite difference returned NaN, assuming result 0")
			grad[i] = 0
		}
	}
	return grad
}

// tolerance matches the original's shared TOLERANCE constant used to size
// finite-difference steps.
const tolerance = 1e-7
