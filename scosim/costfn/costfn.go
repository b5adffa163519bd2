// Package costfn implements the cost-function algebra of spec.md §4.1:
// a polymorphic cost function abstraction supporting deferred, uncertain,
// and time-versioned evaluation. Grounded on original_source's problem.rs
// hit_cost implementations and on spec.md §9's design note to model
// certain/predictive evaluation as a tagged union with two entry points
// (Call vs CallPredictive) rather than always allocating a sample list.
package costfn

import (
	"math"

	"github.com/jonhue/scosim"
)

// SingleCostFn is a function (t, x) -> sample sequence, where a
// single-element sequence means certainty. It never itself performs
// bounds checking; that is CostFn's responsibility (SingleCostFn
// instances are pure evaluators).
type SingleCostFn[T scosim.Number] struct {
	predictive bool
	certainFn  func(t int, x scosim.Config[T]) float64
	predictFn  func(t int, x scosim.Config[T]) []float64
}

// Certain builds a SingleCostFn whose evaluation is deterministic.
func Certain[T scosim.Number](f func(t int, x scosim.Config[T]) float64) SingleCostFn[T] {
	return SingleCostFn[T]{certainFn: f}
}

// Predictive builds a SingleCostFn whose evaluation returns a sample
// sequence representing a forecast distribution.
func Predictive[T scosim.Number](f func(t int, x scosim.Config[T]) []float64) SingleCostFn[T] {
	return SingleCostFn[T]{predictive: true, predictFn: f}
}

// CallCertain evaluates the sample mean, unconditionally on bounds.
func (s SingleCostFn[T]) CallCertain(t int, x scosim.Config[T]) float64 {
	if s.predictive {
		samples := s.predictFn(t, x)
		return mean(samples)
	}
	return s.certainFn(t, x)
}

// CallPredictive evaluates the full sample sequence (a certain function
// yields a single-element sequence).
func (s SingleCostFn[T]) CallPredictive(t int, x scosim.Config[T]) []float64 {
	if s.predictive {
		return s.predictFn(t, x)
	}
	return []float64{s.certainFn(t, x)}
}

// CostFn is a time-versioned list of SingleCostFns representing the
// history of cost-function updates. A lookup at time tau uses the most
// recent SingleCostFn whose arrival time <= tau, so past slots always see
// the function in force when they arrived and future slots within the
// prediction window share the current one.
type CostFn[T scosim.Number] struct {
	tStart int
	fs     []SingleCostFn[T]
}

// New builds a CostFn starting at t_start with an initial history of
// functions (fs[0] applies to time t_start, fs[1] to t_start+1, ...).
func New[T scosim.Number](tStart int, fs ...SingleCostFn[T]) CostFn[T] {
	return CostFn[T]{tStart: tStart, fs: append([]SingleCostFn[T]{}, fs...)}
}

// Stretch builds a CostFn that replicates one function over [tStart, tEnd].
func Stretch[T scosim.Number](tStart, tEnd int, f SingleCostFn[T]) CostFn[T] {
	n := tEnd - tStart + 1
	fs := make([]SingleCostFn[T], n)
	for i := range fs {
		fs[i] = f
	}
	return New(tStart, fs...)
}

// Single stretches f over exactly one time slot t.
func Single[T scosim.Number](t int, f SingleCostFn[T]) CostFn[T] {
	return Stretch(t, t, f)
}

// Add appends a new SingleCostFn as the next arrival.
func (c *CostFn[T]) Add(f SingleCostFn[T]) {
	c.fs = append(c.fs, f)
}

// Now returns the index (1-based time slot) of the most recent arrival.
func (c CostFn[T]) Now() int {
	return c.tStart + len(c.fs) - 1
}

func (c CostFn[T]) at(tau int) SingleCostFn[T] {
	idx := tau
	if now := c.Now(); idx > now {
		idx = now
	}
	i := idx - c.tStart
	if i < 0 {
		i = 0
	}
	return c.fs[i]
}

// Call returns +Inf if x is outside bounds (per-dimension [lo_k, hi_k]),
// else the sample mean at time t.
func (c CostFn[T]) Call(t int, x scosim.Config[T], bounds []scosim.Bound) float64 {
	if !withinBounds(x, bounds) {
		return math.Inf(1)
	}
	return c.at(t).CallCertain(t, x)
}

// CallCertain evaluates without a bounds check (used internally by
// algorithms that have already validated membership, e.g. after a convex
// optimizer already respects box constraints).
func (c CostFn[T]) CallCertain(t int, x scosim.Config[T]) float64 {
	return c.at(t).CallCertain(t, x)
}

// CallPredictive returns the full sample sequence at time t, or a
// single +Inf sample if x is outside bounds.
func (c CostFn[T]) CallPredictive(t int, x scosim.Config[T], bounds []scosim.Bound) []float64 {
	if !withinBounds(x, bounds) {
		return []float64{math.Inf(1)}
	}
	return c.at(t).CallPredictive(t, x)
}

func withinBounds[T scosim.Number](x scosim.Config[T], bounds []scosim.Bound) bool {
	if bounds == nil {
		return true
	}
	for k := 1; k <= x.D(); k++ {
		v := scosim.ToFloat64(x.Get(k))
		b := bounds[k-1]
		if v < b.Lo || v > b.Hi {
			return false
		}
	}
	return true
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}
