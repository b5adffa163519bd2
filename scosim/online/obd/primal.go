package obd

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/rootfind"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// PrimalOptions configures Primal OBD: beta bounds the ratio of movement
// cost to hitting cost the algorithm is willing to incur.
type PrimalOptions struct {
	Beta float64
	H    DistanceGeneratingFn
}

// Primal is Primal Online Balanced Descent: if moving straight to the
// hitting-cost minimizer v already costs at most beta times v's hitting
// cost, take that move directly; otherwise search for the sublevel l at
// which Meta's projected move would cost exactly beta*l, and take that
// projection instead.
func Primal(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], m struct{}, opts PrimalOptions) (online.Step[float64, struct{}], error) {
	if o.W != 0 {
		return online.Step[float64, struct{}]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}

	prevX := xs.NowWithDefault(scosim.RepeatConfig(0.0, o.P.D))
	v := findMinimizerOfHittingCost(t, o.P)
	dist := o.P.Movement(prevX, v, false)
	minimalHittingCost := o.P.HitCost(t, v)

	if dist <= opts.Beta*minimalHittingCost {
		return online.Step[float64, struct{}]{X: v}, nil
	}

	a := minimalHittingCost
	b := maxLFactor * minimalHittingCost
	l := rootfind.FindRoot(a, b, func(l float64) float64 {
		step, _ := Meta(o, t, xs, m, MetaOptions{L: l, H: opts.H})
		return o.P.Movement(prevX, step.X, false) - opts.Beta*l
	})

	return Meta(o, t, xs, m, MetaOptions{L: l, H: opts.H})
}
