// Package bounds implements the Bounded envelope subsystem shared by
// BRCP and Lazy Capacity Provisioning: for a 1-dimensional SSCO instance,
// the lowest (resp. highest) attainable value at a future time slot t
// under an alpha-unfair objective, computed by re-optimizing over the
// problem's own horizon. Grounded on
// original_source/implementation/src/algorithms/capacity_provisioning.rs.
//
// The original trait threads a separate prediction-window parameter w
// alongside the problem's own t_end (find_bound asserts t <= t_end + w).
// This module instead expects p.TEnd to already be widened to t_end + w
// by the caller (problem.Online's WithHorizon invariant), folding w away
// as a parameter — t is simply checked against p.TEnd directly.
package bounds

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/offline/unidim"
	"github.com/jonhue/scosim/problem"
)

// FindLowerBoundFractional is FindAlphaUnfairLowerBoundFractional with alpha=1.
func FindLowerBoundFractional(p problem.SSCO[float64], t, tStart int, xStart float64) (float64, error) {
	return FindAlphaUnfairLowerBoundFractional(p, 1, t, tStart, xStart)
}

// FindUpperBoundFractional is FindAlphaUnfairUpperBoundFractional with alpha=1.
func FindUpperBoundFractional(p problem.SSCO[float64], t, tStart int, xStart float64) (float64, error) {
	return FindAlphaUnfairUpperBoundFractional(p, 1, t, tStart, xStart)
}

func FindAlphaUnfairLowerBoundFractional(p problem.SSCO[float64], alpha float64, t, tStart int, xStart float64) (float64, error) {
	return findBoundFractional(p, alpha, false, t, tStart, xStart)
}

func FindAlphaUnfairUpperBoundFractional(p problem.SSCO[float64], alpha float64, t, tStart int, xStart float64) (float64, error) {
	return findBoundFractional(p, alpha, true, t, tStart, xStart)
}

// findBoundFractional re-optimizes the full schedule from tStart to
// p.TEnd starting at xStart, under the alpha-unfair objective (movement
// scaled by alpha instead of 1), and returns the optimal value at time t.
func findBoundFractional(p problem.SSCO[float64], alpha float64, inverted bool, t, tStart int, xStart float64) (float64, error) {
	if p.D != 1 {
		return 0, &errs.UnsupportedProblemDimension{D: p.D}
	}
	if t <= 0 {
		return 0, nil
	}

	n := p.TEnd - tStart
	bounds := make([]convexopt.Bound, n)
	for i := range bounds {
		bounds[i] = convexopt.Bound{Lo: 0, Hi: p.M[0]}
	}

	x0 := scosim.SingleConfig(xStart)
	objective := func(raw []float64) float64 {
		xs := scosim.FromRaw(1, n, raw)
		hit, movement := problem.SumOverSchedule[float64](p, x0, xs, inverted)
		return hit + alpha*movement
	}

	res := convexopt.Minimize(objective, bounds, nil, nil)
	xs := scosim.FromRaw(1, n, res.X)
	idx := t - tStart
	if idx < 1 || idx > xs.Len() {
		return 0, &errs.Invalid{Msg: "requested time slot outside optimization horizon"}
	}
	return xs.At(idx).Get(1), nil
}

// FindLowerBoundIntegral is FindAlphaUnfairLowerBoundIntegral with alpha=1.
func FindLowerBoundIntegral(p problem.SSCO[int64], t, tStart int, xStart int64) (int64, error) {
	return FindAlphaUnfairLowerBoundIntegral(p, 1, t, tStart, xStart)
}

// FindUpperBoundIntegral is FindAlphaUnfairUpperBoundIntegral with alpha=1.
func FindUpperBoundIntegral(p problem.SSCO[int64], t, tStart int, xStart int64) (int64, error) {
	return FindAlphaUnfairUpperBoundIntegral(p, 1, t, tStart, xStart)
}

func FindAlphaUnfairLowerBoundIntegral(p problem.SSCO[int64], alpha float64, t, tStart int, xStart int64) (int64, error) {
	return findBoundIntegral(p, alpha, false, t, tStart, xStart)
}

func FindAlphaUnfairUpperBoundIntegral(p problem.SSCO[int64], alpha float64, t, tStart int, xStart int64) (int64, error) {
	return findBoundIntegral(p, alpha, true, t, tStart, xStart)
}

func findBoundIntegral(p problem.SSCO[int64], alpha float64, inverted bool, t, tStart int, xStart int64) (int64, error) {
	if p.D != 1 {
		return 0, &errs.UnsupportedProblemDimension{D: p.D}
	}
	if t <= 0 {
		return 0, nil
	}

	path, err := unidim.OptimalGraphSearch(p, unidim.Options{XStart: xStart}, inverted, alpha)
	if err != nil {
		return 0, err
	}
	idx := t - tStart
	if idx < 1 || idx > path.Xs.Len() {
		return 0, &errs.Invalid{Msg: "requested time slot outside optimization horizon"}
	}
	return path.Xs.At(idx).Get(1), nil
}
