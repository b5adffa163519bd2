// Package lcp implements Lazy Capacity Provisioning, the 1-dimensional
// online algorithm that tracks a lower and upper envelope of the offline
// optimum and projects the naive "stay where you are" decision into that
// envelope. Grounded on
// original_source/soco/src/algorithms/online/uni_dimensional/
// lazy_capacity_provisioning.rs, adapted onto the Bounded contract of
// original_source/implementation/src/algorithms/capacity_provisioning.rs.
package lcp

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/bounds"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// Bound is one remembered (previous, current) pair of lower/upper bounds.
type Bound[T scosim.Number] struct {
	Prev *T
	Cur  T
}

// Memory is the last lower and upper bound from some earlier reference
// time, used to pick a more informative initial condition than time 0.
type Memory[T scosim.Number] struct {
	Lower Bound[T]
	Upper Bound[T]
}

func isValidInitialTime[T scosim.Number](m Memory[T]) bool {
	return (m.Upper.Prev != nil && m.Upper.Cur < *m.Upper.Prev) ||
		(m.Lower.Prev != nil && m.Lower.Cur > *m.Lower.Prev)
}

// findInitialTime scans memory backwards for the most recent valid
// reference time, defaulting to (0, 0) — matching find_initial_time.
func findInitialTime[T scosim.Number](ms []Memory[T]) (tStart int, xStart T) {
	for t := len(ms); t >= 2; t-- {
		m := ms[t-1]
		if isValidInitialTime(m) {
			return t, *m.Upper.Prev
		}
	}
	var zero T
	return 0, zero
}

func newMemory[T scosim.Number](ms []Memory[T], l, u T) Memory[T] {
	var prevL, prevU *T
	if len(ms) > 0 {
		last := ms[len(ms)-1]
		lv, uv := last.Lower.Cur, last.Upper.Cur
		prevL, prevU = &lv, &uv
	}
	return Memory[T]{Lower: Bound[T]{Prev: prevL, Cur: l}, Upper: Bound[T]{Prev: prevU, Cur: u}}
}

func project[T scosim.Number](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fractional is the LCP online.Algorithm instance for a 1-dimensional
// fractional SSCO problem.
func Fractional(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], ms []Memory[float64], _ struct{}) (online.Step[float64, []Memory[float64]], error) {
	if o.P.D != 1 {
		return online.Step[float64, []Memory[float64]]{}, &errs.UnsupportedProblemDimension{D: o.P.D}
	}
	if t-1 != len(ms) {
		return online.Step[float64, []Memory[float64]]{}, &errs.OnlineOutOfDateMemory{PreviousTimeSlots: t - 1, MemoryEntries: len(ms)}
	}

	tStart, xStart := findInitialTime(ms)
	i := xs.NowWithDefault(scosim.SingleConfig(0.0)).Get(1)
	l, err := bounds.FindLowerBoundFractional(o.P, t, tStart, xStart)
	if err != nil {
		return online.Step[float64, []Memory[float64]]{}, err
	}
	u, err := bounds.FindUpperBoundFractional(o.P, t, tStart, xStart)
	if err != nil {
		return online.Step[float64, []Memory[float64]]{}, err
	}
	j := project(i, l, u)

	newMs := append(append([]Memory[float64]{}, ms...), newMemory(ms, l, u))
	return online.Step[float64, []Memory[float64]]{X: scosim.SingleConfig(j), M: &newMs}, nil
}

// Integral is the LCP online.Algorithm instance for a 1-dimensional
// integral SSCO problem, using the graph-search Bounded implementation.
func Integral(o problem.Online[int64, problem.SSCO[int64]], t int, xs scosim.Schedule[int64], ms []Memory[int64], _ struct{}) (online.Step[int64, []Memory[int64]], error) {
	if o.P.D != 1 {
		return online.Step[int64, []Memory[int64]]{}, &errs.UnsupportedProblemDimension{D: o.P.D}
	}
	if t-1 != len(ms) {
		return online.Step[int64, []Memory[int64]]{}, &errs.OnlineOutOfDateMemory{PreviousTimeSlots: t - 1, MemoryEntries: len(ms)}
	}

	tStart, xStart := findInitialTime(ms)
	i := xs.NowWithDefault(scosim.SingleConfig(int64(0))).Get(1)
	l, err := bounds.FindLowerBoundIntegral(o.P, t, tStart, xStart)
	if err != nil {
		return online.Step[int64, []Memory[int64]]{}, err
	}
	u, err := bounds.FindUpperBoundIntegral(o.P, t, tStart, xStart)
	if err != nil {
		return online.Step[int64, []Memory[int64]]{}, err
	}
	j := project(i, l, u)

	newMs := append(append([]Memory[int64]{}, ms...), newMemory(ms, l, u))
	return online.Step[int64, []Memory[int64]]{X: scosim.SingleConfig(j), M: &newMs}, nil
}
