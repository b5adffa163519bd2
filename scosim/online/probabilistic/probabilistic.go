// Package probabilistic implements the Probabilistic Algorithm for
// 1-dimensional fractional SSCO instances: it tracks a probability
// density over possible configurations, updates it each step from the
// hitting cost's local curvature, and commits to the density's expected
// value when it lies in a root-found feasible interval, falling back to
// the hitting-cost minimizer otherwise. Assumes the hitting
// cost is either smooth or piecewise linear with breakpoints supplied
// through Options. Grounded on
// original_source/implementation/src/algorithms/online/uni_dimensional/probabilistic.rs.
package probabilistic

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/numeric/findiff"
	"github.com/jonhue/scosim/numeric/quadrature"
	"github.com/jonhue/scosim/numeric/rootfind"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// epsilon is the width of the initial density's uniform spike at 0.
const epsilon = 1e-5

// Density is a probability density function over the 1-D configuration
// space.
type Density func(x float64) float64

// Memory carries the density built up so far and the breakpoints at
// which it is non-smooth.
type Memory struct {
	P           Density
	Breakpoints scosim.Breakpoints
}

// DefaultMemory is a uniform spike of mass 1 on [0, epsilon].
func DefaultMemory() Memory {
	return Memory{
		P: func(x float64) float64 {
			if x >= 0 && x <= epsilon {
				return 1 / epsilon
			}
			return 0
		},
		Breakpoints: scosim.BreakpointsFrom([]float64{0, epsilon}),
	}
}

// Options supplies the breakpoints of a piecewise-linear hitting cost;
// leave empty for a smooth hitting cost.
type Options struct {
	Breakpoints scosim.Breakpoints
}

// Probabilistic is the Probabilistic Algorithm.
func Probabilistic(o problem.Online[float64, problem.SSCO[float64]], t int, _ scosim.Schedule[float64], prevM Memory, opts Options) (online.Step[float64, Memory], error) {
	if o.W != 0 {
		return online.Step[float64, Memory]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}
	if o.P.D != 1 {
		return online.Step[float64, Memory]{}, &errs.UnsupportedProblemDimension{D: o.P.D}
	}

	breakpoints := opts.Breakpoints.Add(prevM.Breakpoints.Fixed())
	prevP := prevM.P
	beta := o.P.Beta[0]
	m := o.P.M[0]

	hitAt := func(x float64) float64 {
		return o.P.HittingCost.CallCertain(t, scosim.SingleConfig(x))
	}

	xM := findMinimizerOfHittingCost(t, o.P)
	xR := findRightBound(hitAt, breakpoints, prevP, xM, m, beta)
	xL := findLeftBound(hitAt, breakpoints, prevP, xM, beta)

	p := func(x float64) float64 {
		if x < xL || x > xR {
			return 0
		}
		return prevP(x) + findiff.SecondDerivative(hitAt, x)/(2*beta)
	}

	newBreakpoints := prevM.Breakpoints
	for _, b := range []float64{xL, xR} {
		if !newBreakpoints.Contains(b) {
			newBreakpoints = newBreakpoints.Add([]float64{b})
		}
	}

	x := expectedValue(breakpoints, p, xL, xR)
	if x < xL || x > xR {
		x = xM
	}

	return online.Step[float64, Memory]{
		X: scosim.SingleConfig(x),
		M: &Memory{P: p, Breakpoints: newBreakpoints},
	}, nil
}

// findRightBound searches [x_m, m] for the point where the hitting
// cost's marginal slope is balanced by twice the switching cost times
// the previous density's right tail mass.
func findRightBound(hitAt func(float64) float64, bp scosim.Breakpoints, prevP Density, xM, m, beta float64) float64 {
	return rootfind.FindRoot(xM, m, func(x float64) float64 {
		return findiff.Derivative(hitAt, x) - 2*beta*quadrature.PiecewiseIntegral(bp, x, math.Inf(1), prevP)
	})
}

// findLeftBound searches [0, x_m] for the symmetric balance point on the
// left tail.
func findLeftBound(hitAt func(float64) float64, bp scosim.Breakpoints, prevP Density, xM, beta float64) float64 {
	return rootfind.FindRoot(0, xM, func(x float64) float64 {
		return 2*beta*quadrature.PiecewiseIntegral(bp, math.Inf(-1), x, prevP) - findiff.Derivative(hitAt, x)
	})
}

func expectedValue(bp scosim.Breakpoints, p Density, from, to float64) float64 {
	return quadrature.PiecewiseIntegral(bp, from, to, func(x float64) float64 { return x * p(x) })
}

func findMinimizerOfHittingCost(t int, p problem.SSCO[float64]) float64 {
	res := convexopt.Minimize(func(y []float64) float64 {
		return p.HitCost(t, scosim.NewConfig(y))
	}, []convexopt.Bound{{Lo: 0, Hi: p.M[0]}}, nil, nil)
	return res.X[0]
}
