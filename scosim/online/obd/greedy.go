package obd

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// GreedyOptions configures Greedy OBD: m is the strong-convexity
// constant of the hitting cost, mu controls how aggressively to step
// toward the hitting-cost minimizer, gamma is the Primal OBD balance
// parameter fed into the inner POBD step.
type GreedyOptions struct {
	M     float64
	Mu    float64
	Gamma float64
	H     DistanceGeneratingFn
}

// Greedy is Greedy Online Balanced Descent: takes one Primal OBD step
// (with beta=gamma), then convex-combines it with the hitting-cost
// minimizer v, weighted by mu*sqrt(m) (fully greedy once that exceeds 1).
func Greedy(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], m struct{}, opts GreedyOptions) (online.Step[float64, struct{}], error) {
	if o.W != 0 {
		return online.Step[float64, struct{}]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}

	v := findMinimizerOfHittingCost(t, o.P)
	step, err := Primal(o, t, xs, m, PrimalOptions{Beta: opts.Gamma, H: opts.H})
	if err != nil {
		return online.Step[float64, struct{}]{}, err
	}
	y := step.X

	factor := opts.Mu * math.Sqrt(opts.M)
	var x scosim.Config[float64]
	if factor >= 1 {
		x = v
	} else {
		x = v.Scale(factor).Add(y.Scale(1 - factor))
	}
	return online.Step[float64, struct{}]{X: x}, nil
}
