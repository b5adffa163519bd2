package unidim

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/bounds"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/problem"
)

// WithBounds is a fractional schedule together with the lower/upper
// envelope computed for each time slot, mirroring
// capacity_provisioning::WithBounds.
type WithBounds struct {
	Xs     scosim.Schedule[float64]
	Bounds []BoundsMemory
}

// BoundsMemory records the lower and upper bound used to project a
// single time slot's decision.
type BoundsMemory struct {
	Lower, Upper float64
}

// BRCP (Backward-Recurrent Capacity Provisioning) builds a fractional
// schedule back-to-front: at each time slot t (from p.TEnd down to 1) it
// computes the lower and upper envelope of the optimal value at t (via
// bounds.FindAlphaUnfairLowerBoundFractional and
// bounds.FindAlphaUnfairUpperBoundFractional, re-optimizing over [0, p.TEnd] under the alpha-unfair
// objective) and projects the running estimate into that range.
// BRCP never supports the inverted ("powering down") cost variant.
func BRCP(p problem.SSCO[float64], alpha float64) (WithBounds, error) {
	if p.D != 1 {
		return WithBounds{}, &errs.UnsupportedProblemDimension{D: p.D}
	}

	xs := scosim.EmptySchedule[float64]()
	boundsOut := make([]BoundsMemory, p.TEnd)

	x := 0.0
	for t := p.TEnd; t >= 1; t-- {
		lower, err := bounds.FindAlphaUnfairLowerBoundFractional(p, alpha, t, 0, 0)
		if err != nil {
			return WithBounds{}, err
		}
		upper, err := bounds.FindAlphaUnfairUpperBoundFractional(p, alpha, t, 0, 0)
		if err != nil {
			return WithBounds{}, err
		}
		x = project(x, lower, upper)
		xs.Shift(scosim.SingleConfig(x))
		boundsOut[t-1] = BoundsMemory{Lower: lower, Upper: upper}
	}

	return WithBounds{Xs: xs, Bounds: boundsOut}, nil
}

// project clamps x into [lo, hi].
func project(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
