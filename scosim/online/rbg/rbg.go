// Package rbg implements Randomly Biased Greedy for 1-dimensional
// fractional SCO instances: sample a single bias r once at the start of
// the run, then at every step minimize the theta-weighted sum of the
// bias-adjusted switching cost and a recursively unrolled "cost of
// having gotten here" term w, which itself recurses all the way back to
// t=0. Grounded on
// original_source/soco/src/algorithms/online/uni_dimensional/randomly_biased_greedy.rs.
//
// w's recursion genuinely walks back through the whole history on every
// call, and every level is itself a nested convex optimization whose
// objective re-invokes w one level shallower at each candidate point --
// so a single step's cost grows with the number of elapsed time slots,
// matching the original (its own w has no pruning or memoization despite
// being named like a textbook dynamic-programming recurrence).
package rbg

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
	"github.com/jonhue/scosim/rng"
)

// defaultTheta is the norm-scaling factor RBG uses absent an explicit
// Options.Theta (theta must be >= 1).
const defaultTheta = 1.0

// Memory is the run's single sampled bias r, carried unchanged once set.
type Memory = float64

// Options configures Randomly Biased Greedy.
type Options struct {
	// Theta scales the switching-cost norm; zero means defaultTheta.
	Theta float64
	RNG   *rng.PartitionedRNG
}

// RBG is Randomly Biased Greedy.
func RBG(o problem.Online[float64, problem.SCO[float64]], t int, xs scosim.Schedule[float64], prevM Memory, opts Options) (online.Step[float64, Memory], error) {
	if o.W != 0 {
		return online.Step[float64, Memory]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}
	if o.P.D != 1 {
		return online.Step[float64, Memory]{}, &errs.UnsupportedProblemDimension{D: o.P.D}
	}

	theta := opts.Theta
	if theta == 0 {
		theta = defaultTheta
	}

	r := prevM
	if t == 1 {
		r = opts.RNG.ForSubsystem(rng.SubsystemRelaxation).Float64()*2 - 1
	}

	x := next(o.P, t, r, theta)
	m := r
	return online.Step[float64, Memory]{X: scosim.SingleConfig(x), M: &m}, nil
}

// next minimizes the cost of reaching time t-1 plus the bias-adjusted
// cost of moving from there to x, over the single feasible dimension.
func next(p problem.SCO[float64], t int, r, theta float64) float64 {
	objective := func(raw []float64) float64 {
		x := scosim.NewConfig(raw)
		return w(p, t-1, theta, x) + r*theta*p.Norm(x)
	}
	res := convexopt.Minimize(objective, boundsOf(p), nil, nil)
	return res.X[0]
}

// w is the theta-weighted cost of having reached configuration x by
// time t: at t=0 just the switching cost from the origin, otherwise the
// minimum over the previous configuration y of w(t-1) plus the hitting
// cost at y plus the switching cost from y to x.
func w(p problem.SCO[float64], t int, theta float64, x scosim.Config[float64]) float64 {
	if t == 0 {
		return theta * p.Norm(x)
	}

	objective := func(raw []float64) float64 {
		y := scosim.NewConfig(raw)
		return w(p, t-1, theta, y) + p.HitCost(t, y) + theta*p.Norm(x.Sub(y))
	}
	res := convexopt.Minimize(objective, boundsOf(p), nil, nil)
	return res.Min
}

func boundsOf(p problem.SCO[float64]) []convexopt.Bound {
	bounds := make([]convexopt.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = convexopt.Bound{Lo: p.Bounds[k].Lo, Hi: p.Bounds[k].Hi}
	}
	return bounds
}
