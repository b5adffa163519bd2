// Package horizon implements Receding Horizon Control and Averaging
// Fixed Horizon Control: both re-solve a (w+1)-slot lookahead convex
// program at every step, RHC taking only the freshest such window's
// first decision, AFHC averaging w+1 overlapping windows anchored at
// different offsets around the current decision time. Grounded on
// original_source/soco/src/algorithms/online/multi_dimensional/horizon_control.rs.
//
// The original resets the wrapped problem to a local time origin before
// building each lookahead window (p.reset(t_start)), since its cost
// functions are indexed relative to whatever problem they're attached
// to. This repo's SSCO.HitCost already takes an absolute time slot, so
// no reset is needed: next builds the window directly against absolute
// time and reads the slot at the requested offset out of the solved
// schedule.
package horizon

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// RHC is Receding Horizon Control: solve a single (w+1)-slot lookahead
// window anchored at the current decision time t, and commit to its
// first slot.
func RHC(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], _ struct{}, _ struct{}) (online.Step[float64, struct{}], error) {
	x := next(o, t, t, xs)
	return online.Step[float64, struct{}]{X: x}, nil
}

// AFHC is Averaging Fixed Horizon Control: solve w+1 lookahead windows,
// the k-th anchored w+1-k slots before t (k = 1..w+1, so the k=w+1
// window starts at t, the pure future lookahead RHC would take, and the
// k=1 window starts w slots back and mostly re-derives already-decided
// slots), and average the decisions each
// window makes for slot t.
func AFHC(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], _ struct{}, _ struct{}) (online.Step[float64, struct{}], error) {
	w := o.W
	sum := scosim.RepeatConfig(0.0, o.P.D)
	for k := 1; k <= w+1; k++ {
		tStart := t + k - (w + 1)
		sum = sum.Add(next(o, t, tStart, xs))
	}
	return online.Step[float64, struct{}]{X: sum.Scale(1 / float64(w+1))}, nil
}

// next solves the (w+1)-slot joint convex program spanning absolute
// times [tStart, tStart+w], seeded by the committed decision at
// tStart-1 (or the zero configuration if that slot predates the
// schedule), and returns the decision at absolute time t, which must lie
// within that window.
func next(o problem.Online[float64, problem.SSCO[float64]], t, tStart int, xs scosim.Schedule[float64]) scosim.Config[float64] {
	d := o.P.D
	n := o.W + 1

	x0 := scosim.RepeatConfig(0.0, d)
	if prevT := tStart - 1; prevT >= 1 && prevT <= xs.Len() {
		x0 = xs.At(prevT)
	}

	bounds := make([]convexopt.Bound, 0, d*n)
	for i := 0; i < n; i++ {
		for k := 0; k < d; k++ {
			bounds = append(bounds, convexopt.Bound{Lo: 0, Hi: o.P.M[k]})
		}
	}

	objective := func(raw []float64) float64 {
		window := scosim.FromRaw(d, n, raw)
		prev := x0
		var total float64
		for i := 1; i <= n; i++ {
			absT := tStart + i - 1
			x := window.At(i)
			total += o.P.HitCost(absT, x) + o.P.Movement(prev, x, false)
			prev = x
		}
		return total
	}

	res := convexopt.Minimize(objective, bounds, nil, nil)
	window := scosim.FromRaw(d, n, res.X)
	return window.At(t - tStart + 1)
}
