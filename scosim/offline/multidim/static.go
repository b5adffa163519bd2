package multidim

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/problem"
)

// StaticFractional computes the static fractional optimum: the single
// configuration x, held constant for the whole horizon, that minimizes
// the alpha-unfair objective (hitting cost plus movement scaled by
// alpha). Grounded on
// original_source/implementation/src/algorithms/offline/multi_dimensional/static_fractional.rs.
// Never supports the inverted cost variant, matching the original's
// UnsupportedInvertedCost assertion.
func StaticFractional(p problem.SSCO[float64], alpha float64) (scosim.Schedule[float64], error) {
	bounds := make([]convexopt.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = convexopt.Bound{Lo: 0, Hi: p.M[k]}
	}

	objective := func(raw []float64) float64 {
		x := scosim.NewConfig(raw)
		xs := scosim.RepeatSchedule(x, p.TEnd)
		hit, movement := problem.SumOverSchedule[float64](p, scosim.RepeatConfig(0.0, p.D), xs, false)
		// the first slot's movement is charged from the zero configuration;
		// the remaining t_end-1 transitions of a constant schedule cost
		// nothing, so movement is the cost of powering up to x once.
		return hit + alpha*movement
	}

	res := convexopt.Minimize(objective, bounds, nil, nil)
	x := scosim.NewConfig(res.X)
	return scosim.RepeatSchedule(x, p.TEnd), nil
}

// StaticIntegral computes the static integral optimum by exhaustively
// enumerating every configuration in the bounded integer lattice
// [0, M_1] x ... x [0, M_d] and picking the one with lowest constant-
// schedule objective. Genuinely exponential in d, with no pruning,
// matching the naive recursive enumeration of
// original_source/soco/src/algorithms/offline/multi_dimensional/static_integral.rs
// (whose own doc comment warns "do not use in practice" without
// implementing any cutoff). Never supports the inverted cost variant.
func StaticIntegral(p problem.SSCO[int64]) (scosim.Schedule[int64], error) {
	bounds := make([]int64, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = int64(p.M[k])
	}

	best := make([]int64, p.D)
	bestCost := math.Inf(1)
	cur := make([]int64, p.D)

	var recurse func(k int)
	recurse = func(k int) {
		if k == p.D {
			x := scosim.NewConfig(cur)
			xs := scosim.RepeatSchedule(x, p.TEnd)
			hit, movement := problem.SumOverSchedule[int64](p, scosim.RepeatConfig(int64(0), p.D), xs, false)
			cost := hit + movement
			if cost < bestCost {
				bestCost = cost
				copy(best, cur)
			}
			return
		}
		for j := int64(0); j <= bounds[k]; j++ {
			cur[k] = j
			recurse(k + 1)
		}
	}
	recurse(0)

	return scosim.RepeatSchedule(scosim.NewConfig(best), p.TEnd), nil
}
