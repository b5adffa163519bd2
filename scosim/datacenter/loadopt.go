package datacenter

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/numeric/convexopt"
)

// Objective is the cost to minimize when assigning load fractions: given a
// time slot, configuration, load profile, and a candidate load-fraction
// assignment, the total cost of serving that assignment. Errors surface
// sub-model failures (e.g. load routed to an inactive server); a
// convex-optimization caller treats them as +Inf, per spec.md §7's
// propagation policy.
type Objective[T scosim.Number] func(t int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error)

// OptimizeLoadFractions solves the inner convex program of spec.md §4.2:
// (d-1)*e free variables z_{k,i} in [0,1], with the final dimension's
// shares determined implicitly so that fractions sum to lambda_i/||lambda||_1
// per job type, and one non-negativity constraint per job type (-z_{d,i} <=
// 0) enforced on that implicit dimension. Grounded on
// original_source/soco/src/model/data_center/loads.rs's apply_loads (read
// in full).
func OptimizeLoadFractions[T scosim.Number](
	d, e int, objective Objective[T], lambda scosim.LoadProfile, t int, x scosim.Config[T],
) float64 {
	solverD := (d-1)*e
	if solverD <= 0 {
		zs := scosim.NewLoadFractions(nil, d, e)
		cost, err := objective(t, x, lambda, zs)
		if err != nil {
			return posInf
		}
		return cost
	}

	bounds := make([]convexopt.Bound, solverD)
	for i := range bounds {
		bounds[i] = convexopt.Bound{Lo: 0, Hi: 1}
	}

	wrapped := func(zsRaw []float64) float64 {
		zs := scosim.NewLoadFractions(zsRaw, d, e)
		cost, err := objective(t, x, lambda, zs)
		if err != nil {
			return posInf
		}
		return cost
	}

	// Initial guess: distribute load mass uniformly across non-zero cells
	// of x so that cells with zero active servers start (and, absent a
	// better point found by the optimizer, remain) at zero load.
	nonZeroCells := 0
	vals := x.ToSlice()
	for _, v := range vals {
		if scosim.ToFloat64(v) > 0 {
			nonZeroCells++
		}
	}
	var init []float64
	if nonZeroCells == 0 {
		value := 1.0 / float64(solverD+e)
		init = make([]float64, solverD)
		for i := range init {
			init[i] = value
		}
	} else {
		value := 1.0 / float64(nonZeroCells*e)
		// vals excludes the implicit last dimension (d-1 cells, e
		// variables each).
		init = make([]float64, 0, solverD)
		for _, v := range vals[:len(vals)-1] {
			for i := 0; i < e; i++ {
				if scosim.ToFloat64(v) == 0 {
					init = append(init, 0)
				} else {
					init = append(init, value)
				}
			}
		}
	}

	ineq := make([]func([]float64) float64, e)
	for i := 0; i < e; i++ {
		i := i
		ineq[i] = func(zsRaw []float64) float64 {
			zs := scosim.NewLoadFractions(zsRaw, d, e)
			return -zs.Get(d-1, i, lambda)
		}
	}

	result := convexopt.Minimize(wrapped, bounds, init, ineq)
	return result.Min
}
