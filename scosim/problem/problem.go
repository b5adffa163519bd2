// Package problem implements the four Smoothed (Simplified) Convex
// Optimization problem shapes of spec.md §3/§4.1 and their conversions,
// grounded on original_source/implementation/src/problem.rs (hit_cost,
// movement, scalar_movement, sum_over_schedule) and
// original_source/implementation/src/verifiers.rs (verify()).
package problem

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/errs"
)

// pos is the positive part, used throughout switching-cost computations.
func pos(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// SCO is the general Smoothed Convex Optimization problem: a bounded
// rectangle in T^d, an arbitrary convex hitting cost, and an arbitrary
// norm as switching cost.
type SCO[T scosim.Number] struct {
	D           int
	TEnd        int
	Bounds      []scosim.Bound // length D, [L_k, U_k] per dimension
	HittingCost costfn.CostFn[T]
	Norm        func(diff scosim.Config[T]) float64
}

// HitCost evaluates the hitting cost at time t, +Inf outside bounds.
func (p SCO[T]) HitCost(t int, x scosim.Config[T]) float64 {
	return p.HittingCost.Call(t, x, p.Bounds)
}

// Movement is Norm(x - xPrev), or Norm(xPrev - x) for the inverted
// ("powering down") variant.
func (p SCO[T]) Movement(xPrev, x scosim.Config[T], inverted bool) float64 {
	if inverted {
		return p.Norm(xPrev.Sub(x))
	}
	return p.Norm(x.Sub(xPrev))
}

// Dim and Horizon satisfy the Problem interface shared across shapes.
func (p SCO[T]) Dim() int     { return p.D }
func (p SCO[T]) Horizon() int { return p.TEnd }

// WithHorizon returns a copy of p with TEnd set to tEnd, used by Online
// to grow the problem's horizon as the decision clock advances.
func (p SCO[T]) WithHorizon(tEnd int) SCO[T] {
	p.TEnd = tEnd
	return p
}

// Verify checks spec.md §8's universal invariants for SCO.
func (p SCO[T]) Verify() error {
	if p.D <= 0 {
		return &errs.Invalid{Msg: "d must be positive"}
	}
	if p.TEnd < 0 {
		return &errs.Invalid{Msg: "t_end must be non-negative"}
	}
	if len(p.Bounds) != p.D {
		return &errs.Invalid{Msg: "bounds length must equal d"}
	}
	for _, b := range p.Bounds {
		if b.Hi <= 0 {
			return &errs.Invalid{Msg: "bounds must be positive"}
		}
	}
	return nil
}

// SSCO is the Simplified SCO problem: decision space [0, M_k]^d with a
// weighted-Manhattan switching cost sum_k beta_k * pos(x_k - x'_k).
type SSCO[T scosim.Number] struct {
	D           int
	TEnd        int
	M           []float64 // per-dimension upper bound
	HittingCost costfn.CostFn[T]
	Beta        []float64 // per-dimension switching cost weight
}

// BoundsList returns the [0, M_k] box bounds used for hitting-cost
// evaluation.
func (p SSCO[T]) BoundsList() []scosim.Bound {
	bounds := make([]scosim.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = scosim.Bound{Lo: 0, Hi: p.M[k]}
	}
	return bounds
}

func (p SSCO[T]) HitCost(t int, x scosim.Config[T]) float64 {
	return p.HittingCost.Call(t, x, p.BoundsList())
}

// Movement computes the weighted-Manhattan switching cost. Non-inverted:
// sum_k beta_k * pos(x_k - x'_k) (charges "powering up"). Inverted:
// sum_k beta_k * pos(x'_k - x_k) (charges "powering down").
func (p SSCO[T]) Movement(xPrev, x scosim.Config[T], inverted bool) float64 {
	var sum float64
	for k := 1; k <= p.D; k++ {
		prev := scosim.ToFloat64(xPrev.Get(k))
		cur := scosim.ToFloat64(x.Get(k))
		if inverted {
			sum += p.Beta[k-1] * pos(prev-cur)
		} else {
			sum += p.Beta[k-1] * pos(cur-prev)
		}
	}
	return sum
}

func (p SSCO[T]) Dim() int     { return p.D }
func (p SSCO[T]) Horizon() int { return p.TEnd }

func (p SSCO[T]) WithHorizon(tEnd int) SSCO[T] {
	p.TEnd = tEnd
	return p
}

// ToSCO embeds SSCO into the general SCO shape: the weighted-Manhattan
// Movement above is exactly SCO.Movement with Norm(diff) = sum_k beta_k
// * pos(diff_k), since pos() already makes the asymmetric "powering up
// only" charge fall out of Movement's xPrev/x argument order in both
// directions. Grounded on the original's analogous into_sco conversion,
// used there to run Randomly Biased Greedy against an SSCO-shaped
// relaxation.
func (p SSCO[T]) ToSCO() SCO[T] {
	beta := p.Beta
	return SCO[T]{
		D:           p.D,
		TEnd:        p.TEnd,
		Bounds:      p.BoundsList(),
		HittingCost: p.HittingCost,
		Norm: func(diff scosim.Config[T]) float64 {
			var sum float64
			for k := 1; k <= p.D; k++ {
				sum += beta[k-1] * pos(scosim.ToFloat64(diff.Get(k)))
			}
			return sum
		},
	}
}

func (p SSCO[T]) Verify() error {
	if p.D <= 0 {
		return &errs.Invalid{Msg: "d must be positive"}
	}
	if p.TEnd < 0 {
		return &errs.Invalid{Msg: "t_end must be non-negative"}
	}
	if len(p.M) != p.D || len(p.Beta) != p.D {
		return &errs.Invalid{Msg: "bounds/switching-cost length must equal d"}
	}
	for k := 0; k < p.D; k++ {
		if p.M[k] <= 0 {
			return &errs.Invalid{Msg: "bounds must be positive"}
		}
		if p.Beta[k] <= 0 {
			return &errs.Invalid{Msg: "switching costs must be positive"}
		}
	}
	return nil
}

// SBLO is a Smoothed Balanced-Load Optimization problem: same decision
// space and switching cost as SSCO, but its per-slot hitting cost is
// derived from a per-dimension increasing convex function G applied to
// load/active-capacity ratio: f_t(x) = sum_k x_k * G_k(Load[t][k] / x_k)
// when x_k > 0, with the convention that a zero-capacity dimension with
// positive load is infeasible (load to inactive server, spec §7).
type SBLO[T scosim.Number] struct {
	D    int
	TEnd int
	M    []float64
	Beta []float64
	// Load holds, per time slot (1-indexed), the per-dimension load
	// assigned to that dimension. Populated either directly or by the
	// data-center model's inner load-fraction optimization.
	Load [][]float64
	G    []func(u float64) float64
}

func (p SBLO[T]) BoundsList() []scosim.Bound {
	bounds := make([]scosim.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = scosim.Bound{Lo: 0, Hi: p.M[k]}
	}
	return bounds
}

// HitCost evaluates the load-balancing hitting cost directly (not via a
// pre-built costfn.CostFn, since it depends on the per-slot load array
// which is supplied once at construction time, matching the data-center
// model's apply_loads_over_time contract).
func (p SBLO[T]) HitCost(t int, x scosim.Config[T]) float64 {
	if t < 1 || t > len(p.Load) {
		return math.Inf(1)
	}
	load := p.Load[t-1]
	var sum float64
	for k := 1; k <= p.D; k++ {
		xk := scosim.ToFloat64(x.Get(k))
		lk := load[k-1]
		if xk <= 0 {
			if lk > 0 {
				return math.Inf(1)
			}
			continue
		}
		sum += xk * p.G[k-1](lk/xk)
	}
	return sum
}

func (p SBLO[T]) Movement(xPrev, x scosim.Config[T], inverted bool) float64 {
	var sum float64
	for k := 1; k <= p.D; k++ {
		prev := scosim.ToFloat64(xPrev.Get(k))
		cur := scosim.ToFloat64(x.Get(k))
		if inverted {
			sum += p.Beta[k-1] * pos(prev-cur)
		} else {
			sum += p.Beta[k-1] * pos(cur-prev)
		}
	}
	return sum
}

func (p SBLO[T]) Dim() int     { return p.D }
func (p SBLO[T]) Horizon() int { return p.TEnd }

// WithHorizon returns a copy of p with TEnd set to tEnd; Load is left
// as is.
func (p SBLO[T]) WithHorizon(tEnd int) SBLO[T] {
	p.TEnd = tEnd
	return p
}

func (p SBLO[T]) Verify() error {
	if p.D <= 0 {
		return &errs.Invalid{Msg: "d must be positive"}
	}
	if p.TEnd < 0 {
		return &errs.Invalid{Msg: "t_end must be non-negative"}
	}
	if len(p.Load) < p.TEnd {
		return &errs.Invalid{Msg: "load length must be at least t_end"}
	}
	for _, load := range p.Load {
		for _, v := range load {
			if v < 0 {
				return &errs.Invalid{Msg: "loads must be non-negative"}
			}
		}
	}
	return nil
}

// ToSSCO embeds an SBLO instance into SSCO by materializing its hitting
// cost as a certain CostFn, matching spec.md §8's conversion-equivalence
// testable property.
func (p SBLO[T]) ToSSCO() SSCO[T] {
	self := p
	return SSCO[T]{
		D:    p.D,
		TEnd: p.TEnd,
		M:    p.M,
		Beta: p.Beta,
		HittingCost: costfn.Stretch(1, p.TEnd, costfn.Certain(func(t int, x scosim.Config[T]) float64 {
			return self.HitCost(t, x)
		})),
	}
}

// SLO is a Smoothed Load Optimization problem: SBLO with time-independent
// linear hitting costs sum_k C_k * x_k, and the additional monotonicity
// requirements checked by Verify: dimensions sorted so that hitting costs
// are strictly descending and switching costs strictly ascending, with no
// "inefficient" dimension dominated on both metrics by another.
type SLO[T scosim.Number] struct {
	D    int
	TEnd int
	M    []float64
	Beta []float64
	C    []float64 // per-dimension linear unit cost, strictly descending
	Load []float64 // per time slot, total demand (single job type)
}

func (p SLO[T]) BoundsList() []scosim.Bound {
	bounds := make([]scosim.Bound, p.D)
	for k := 0; k < p.D; k++ {
		bounds[k] = scosim.Bound{Lo: 0, Hi: p.M[k]}
	}
	return bounds
}

// HitCost is the linear cost sum_k C_k*x_k, or +Inf if total capacity at
// x falls short of the slot's demand (DemandExceedingSupply, spec §7).
func (p SLO[T]) HitCost(t int, x scosim.Config[T]) float64 {
	if t < 1 || t > len(p.Load) {
		return math.Inf(1)
	}
	var total, cost float64
	for k := 1; k <= p.D; k++ {
		xk := scosim.ToFloat64(x.Get(k))
		total += xk
		cost += p.C[k-1] * xk
	}
	if total < p.Load[t-1] {
		return math.Inf(1)
	}
	return cost
}

func (p SLO[T]) Movement(xPrev, x scosim.Config[T], inverted bool) float64 {
	var sum float64
	for k := 1; k <= p.D; k++ {
		prev := scosim.ToFloat64(xPrev.Get(k))
		cur := scosim.ToFloat64(x.Get(k))
		if inverted {
			sum += p.Beta[k-1] * pos(prev-cur)
		} else {
			sum += p.Beta[k-1] * pos(cur-prev)
		}
	}
	return sum
}

func (p SLO[T]) Dim() int     { return p.D }
func (p SLO[T]) Horizon() int { return p.TEnd }

func (p SLO[T]) WithHorizon(tEnd int) SLO[T] {
	p.TEnd = tEnd
	return p
}

// Verify additionally enforces SLO's monotonicity and efficiency
// conditions: hitting costs C strictly descending, switching costs Beta
// strictly ascending, and no dimension j dominated by dimension k in both
// metrics (C_k <= C_j and Beta_k <= Beta_j with at least one strict).
func (p SLO[T]) Verify() error {
	if p.D <= 0 {
		return &errs.Invalid{Msg: "d must be positive"}
	}
	if p.TEnd < 0 {
		return &errs.Invalid{Msg: "t_end must be non-negative"}
	}
	if len(p.Load) < p.TEnd {
		return &errs.Invalid{Msg: "load length must be at least t_end"}
	}
	for _, v := range p.Load {
		if v < 0 {
			return &errs.Invalid{Msg: "loads must be non-negative"}
		}
	}
	for k := 1; k < p.D; k++ {
		if !(p.C[k-1] > p.C[k]) {
			return &errs.Invalid{Msg: "hitting costs must be strictly descending"}
		}
		if !(p.Beta[k-1] < p.Beta[k]) {
			return &errs.Invalid{Msg: "switching costs must be strictly ascending"}
		}
	}
	for j := 0; j < p.D; j++ {
		for k := 0; k < p.D; k++ {
			if k == j {
				continue
			}
			if p.C[k] <= p.C[j] && p.Beta[k] <= p.Beta[j] && (p.C[k] < p.C[j] || p.Beta[k] < p.Beta[j]) {
				return &errs.Invalid{Msg: "inefficient dimension detected"}
			}
		}
	}
	return nil
}

// ToSBLO embeds SLO into SBLO using the convex function G_k(u) = C_k for
// u <= 1 (+Inf beyond), so that x_k * G_k(Load_k/x_k) = C_k * x_k
// whenever x_k covers its share Load_k. Demand is split evenly across
// dimensions, so for d = 1 the objectives agree everywhere (+Inf on both
// sides when demand exceeds supply); for d > 1 a dimension below its even
// share is +Inf here even where SLO's total capacity suffices.
func (p SLO[T]) ToSBLO() SBLO[T] {
	load := make([][]float64, p.TEnd)
	for t := 0; t < p.TEnd; t++ {
		load[t] = SplitEvenly(p.Load[t], p.D)
	}
	g := make([]func(float64) float64, p.D)
	for k := 0; k < p.D; k++ {
		c := p.C[k]
		// Utilization above 1 means capacity short of demand on this
		// dimension: mirrors SLO's DemandExceedingSupply infeasibility
		// exactly, rather than letting a merely-linear G understate it.
		g[k] = func(u float64) float64 {
			if u > 1 {
				return math.Inf(1)
			}
			return c
		}
	}
	return SBLO[T]{D: p.D, TEnd: p.TEnd, M: p.M, Beta: p.Beta, Load: load, G: g}
}

// ToSSCO composes ToSBLO().ToSSCO(), the full SLO -> SBLO -> SSCO chain
// named by spec.md's problem algebra.
func (p SLO[T]) ToSSCO() SSCO[T] {
	return p.ToSBLO().ToSSCO()
}

// SplitEvenly divides a scalar demand evenly across d dimensions, used to
// translate SLO's single-job-type demand into SBLO's per-dimension load
// vector for the purposes of the ToSBLO conversion above.
func SplitEvenly(total float64, d int) []float64 {
	out := make([]float64, d)
	for i := range out {
		out[i] = total / float64(d)
	}
	return out
}
