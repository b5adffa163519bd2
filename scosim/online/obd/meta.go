// Package obd implements the Online Balanced Descent family: the meta
// Bregman-projection algorithm and its Primal/Dual/Greedy/Regularized
// specializations, all requiring a zero prediction window. Grounded on
// original_source/soco/src/algorithms/online/multi_dimensional/online_balanced_descent/{meta,primal,dual,greedy,regularized}.rs.
//
// The original generalizes over an arbitrary convex hitting cost and an
// arbitrary norm as switching cost. This repo's SSCO shape instead bakes
// in a weighted-Manhattan switching cost with an asymmetric "powering up
// costs, powering down is free" convention (SSCO.Movement's inverted
// flag) — the same specialization every other online algorithm in this
// package set already uses. OBD is adapted to that convention rather
// than reimplementing a fully generic norm abstraction: movement between
// two configurations uses o.P.Movement directly, and DOBD's dual norm is
// the closed-form dual of a non-negative-weighted L1 norm (weighted
// Chebyshev, max_k |v_k|/beta_k) rather than a numerically-derived dual
// of an arbitrary norm function.
package obd

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/numeric/findiff"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// DistanceGeneratingFn is the mirror map h driving the Bregman
// projection at the heart of every OBD variant: h must be m-strongly
// convex and M-Lipschitz smooth with respect to the switching-cost norm.
type DistanceGeneratingFn func(x []float64) float64

// maxLFactor bounds the root-finding bracket POBD/DOBD search over for
// the l-sublevel-set parameter, mirroring MAX_L_FACTOR.
const maxLFactor = 10.0

// MetaOptions configures the meta OBD algorithm: l selects the sublevel
// set of the hitting cost projected onto at each step.
type MetaOptions struct {
	L float64
	H DistanceGeneratingFn
}

// Meta is Online Balanced Descent: project the previous decision onto
// the l-sublevel set of the current hitting cost via Bregman projection
// under h. Requires a zero prediction window.
func Meta(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], _ struct{}, opts MetaOptions) (online.Step[float64, struct{}], error) {
	if o.W != 0 {
		return online.Step[float64, struct{}]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}
	prevX := xs.NowWithDefault(scosim.RepeatConfig(0.0, o.P.D))
	x := bregmanProjection(opts.H, opts.L, o.P, t, prevX)
	return online.Step[float64, struct{}]{X: x}, nil
}

// bregmanProjection finds the point minimizing the Bregman divergence to
// x subject to staying within the l-sublevel set of the hitting cost at
// time t.
func bregmanProjection(h DistanceGeneratingFn, l float64, p problem.SSCO[float64], t int, x scosim.Config[float64]) scosim.Config[float64] {
	xs := x.ToSlice()
	objective := func(y []float64) float64 {
		return bregmanDivergence(h, y, xs)
	}
	ineq := []func([]float64) float64{
		func(y []float64) float64 {
			return p.HitCost(t, scosim.NewConfig(y)) - l
		},
	}
	res := convexopt.MinimizeUnbounded(objective, x.D(), ineq)
	return scosim.NewConfig(res.X)
}

// bregmanDivergence is D_h(x, y) = h(x) - h(y) - <grad h(y), x - y>.
func bregmanDivergence(h DistanceGeneratingFn, x, y []float64) float64 {
	hx, hy := h(x), h(y)
	grad := findiff.Gradient(h, y)
	var dot float64
	for i := range grad {
		dot += grad[i] * (x[i] - y[i])
	}
	return hx - hy - dot
}

// findMinimizerOfHittingCost is v_t = argmin_x f_t(x), the unconstrained
// (within box bounds) minimizer every OBD variant re-centers on.
func findMinimizerOfHittingCost(t int, p problem.SSCO[float64]) scosim.Config[float64] {
	res := convexopt.Minimize(func(y []float64) float64 {
		return p.HitCost(t, scosim.NewConfig(y))
	}, boundsOf(p), nil, nil)
	return scosim.NewConfig(res.X)
}

func boundsOf(p problem.SSCO[float64]) []convexopt.Bound {
	bounds := make([]convexopt.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = convexopt.Bound{Lo: 0, Hi: p.M[k]}
	}
	return bounds
}

// dualNormWeightedL1 is the dual norm of a non-negative-weighted L1 norm
// with weights beta: the weighted Chebyshev norm max_k |v_k|/beta_k.
func dualNormWeightedL1(v, beta []float64) float64 {
	var max float64
	for k, x := range v {
		if a := absF(x) / beta[k]; a > max {
			max = a
		}
	}
	return max
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
