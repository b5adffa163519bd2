// Package convexprog implements the general convex-program offline
// solver: for an arbitrary (non-simplified) SCO instance — any convex
// hitting cost, any norm as switching cost — it jointly optimizes the
// whole decision sequence x_1..x_TEnd in one convex program, rather than
// exploiting SSCO's weighted-Manhattan structure the way BRCP and the
// graph-search solvers do. Grounded on the `co` offline algorithm
// exercised by
// original_source/soco/tests/algorithms/offline/multi_dimensional/convex_optimization.rs
// (the source file itself was not present in the retrieved pack; this
// is reconstructed from the test's observed contract: jointly solve,
// then verify against the schedule's objective_function).
package convexprog

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/problem"
)

// Options mirrors the original's OfflineOptions: inverted selects the
// powering-down cost variant, alpha computes the alpha-unfair optimum.
type Options struct {
	Inverted bool
	Alpha    float64
}

// DefaultOptions is OfflineOptions::default(): non-inverted, alpha=1.
func DefaultOptions() Options { return Options{Alpha: 1} }

// Solve jointly minimizes hitting cost plus alpha-scaled movement cost
// over the full schedule x_1..x_TEnd, subject to p's per-dimension
// bounds at every time slot.
func Solve(p problem.SCO[float64], opts Options) (scosim.Schedule[float64], error) {
	if p.D <= 0 || p.TEnd <= 0 {
		return scosim.Schedule[float64]{}, &errs.Invalid{Msg: "d and t_end must be positive"}
	}

	n := p.TEnd
	bounds := make([]convexopt.Bound, 0, p.D*n)
	for t := 0; t < n; t++ {
		for k := 0; k < p.D; k++ {
			bounds = append(bounds, convexopt.Bound{Lo: p.Bounds[k].Lo, Hi: p.Bounds[k].Hi})
		}
	}

	x0 := scosim.RepeatConfig(0.0, p.D)
	objective := func(raw []float64) float64 {
		xs := scosim.FromRaw(p.D, n, raw)
		hit, movement := problem.SumOverSchedule[float64](p, x0, xs, opts.Inverted)
		return hit + opts.Alpha*movement
	}

	res := convexopt.Minimize(objective, bounds, nil, nil)
	return scosim.FromRaw(p.D, n, res.X), nil
}
