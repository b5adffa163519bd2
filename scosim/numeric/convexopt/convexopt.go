// Package convexopt wraps gonum's optimize.Minimize as the convex-program
// collaborator named in spec.md §6 / §4.3.4. gonum's optimizer has no
// native box-bound or constraint support, so box bounds are folded into
// a quadratic exterior penalty and inequality constraints into a hinge
// penalty. The interface is (objective, bounds, init, ineq) ->
// (argmin, min), modelled on original_source's
// numerics/convex_optimization.rs (find_minimizer /
// find_unbounded_minimizer / WrappedObjective); equality constraints
// are not accepted.
package convexopt

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
)

// Bound is an inclusive box constraint [Lo, Hi]. Either side may be
// infinite to express an unbounded dimension.
type Bound struct {
	Lo, Hi float64
}

// penaltyWeight scales the exterior penalty added for box/inequality
// constraint violations. Large enough to dominate well-scaled hitting
// costs without destabilizing the optimizer's line search.
const penaltyWeight = 1e8

// Result is the (argmin, min) pair returned by the black-box optimizer.
type Result struct {
	X   []float64
	Min float64
}

// Minimize finds a local minimum of objective subject to per-variable box
// bounds, an optional initial point, and a list of inequality constraints
// g_i(x) <= 0. When init is nil and bounds are finite, the upper bound is
// used as the starting guess (spec §4.3.4's documented edge rule: the
// most conservative region outside which hitting cost is typically +Inf).
func Minimize(objective func([]float64) float64, bounds []Bound, init []float64, ineq []func([]float64) float64) Result {
	n := len(bounds)
	if init == nil {
		init = make([]float64, n)
		for i, b := range bounds {
			switch {
			case !math.IsInf(b.Hi, 0):
				init[i] = b.Hi
			case !math.IsInf(b.Lo, 0):
				init[i] = b.Lo
			default:
				init[i] = 0
			}
		}
	}

	penalized := func(x []float64) float64 {
		cost := objective(x)
		for i, b := range bounds {
			if !math.IsInf(b.Lo, 0) && x[i] < b.Lo {
				cost += penaltyWeight * (b.Lo - x[i]) * (b.Lo - x[i])
			}
			if !math.IsInf(b.Hi, 0) && x[i] > b.Hi {
				cost += penaltyWeight * (x[i] - b.Hi) * (x[i] - b.Hi)
			}
		}
		for _, g := range ineq {
			if v := g(x); v > 0 {
				cost += penaltyWeight * v * v
			}
		}
		return cost
	}

	problem := optimize.Problem{Func: penalized}
	res, err := optimize.Minimize(problem, init, nil, &optimize.NelderMead{})
	if err != nil {
		logrus.Warnf("convex optimizer did not converge cleanly: %v", err)
	}
	if res == nil {
		return Result{X: init, Min: objective(clamp(init, bounds))}
	}

	x := clamp(res.X, bounds)
	return Result{X: x, Min: objective(x)}
}

// MinimizeUnbounded is Minimize without box bounds, used by the Bregman
// projection step of Online Balanced Descent (find_unbounded_minimizer).
func MinimizeUnbounded(objective func([]float64) float64, n int, ineq []func([]float64) float64) Result {
	bounds := make([]Bound, n)
	for i := range bounds {
		bounds[i] = Bound{Lo: math.Inf(-1), Hi: math.Inf(1)}
	}
	init := make([]float64, n)
	return Minimize(objective, bounds, init, ineq)
}

func clamp(x []float64, bounds []Bound) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if i >= len(bounds) {
			out[i] = v
			continue
		}
		b := bounds[i]
		if !math.IsInf(b.Lo, 0) && v < b.Lo {
			v = b.Lo
		}
		if !math.IsInf(b.Hi, 0) && v > b.Hi {
			v = b.Hi
		}
		out[i] = v
	}
	return out
}
