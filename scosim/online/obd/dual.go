package obd

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/findiff"
	"github.com/jonhue/scosim/numeric/rootfind"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// DualOptions configures Dual OBD: eta is the target ratio, in dual-norm
// terms, between the local movement and the local hitting-cost gradient.
type DualOptions struct {
	Eta float64
	H   DistanceGeneratingFn
}

// Dual is Dual Online Balanced Descent: searches for the sublevel l at
// which Meta's projected move balances dual-norm movement against
// dual-norm hitting-cost sensitivity at rate eta.
func Dual(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], m struct{}, opts DualOptions) (online.Step[float64, struct{}], error) {
	if o.W != 0 {
		return online.Step[float64, struct{}]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}

	prevX := xs.NowWithDefault(scosim.RepeatConfig(0.0, o.P.D))
	v := findMinimizerOfHittingCost(t, o.P)
	minimalHittingCost := o.P.HitCost(t, v)

	a := minimalHittingCost
	b := maxLFactor * minimalHittingCost
	hitAt := func(y []float64) float64 { return o.P.HitCost(t, scosim.NewConfig(y)) }

	l := rootfind.FindRoot(a, b, func(l float64) float64 {
		step, _ := Meta(o, t, xs, m, MetaOptions{L: l, H: opts.H})
		x := step.X.ToSlice()

		gradH := findiff.Gradient(opts.H, x)
		gradHPrev := findiff.Gradient(opts.H, prevX.ToSlice())
		diff := make([]float64, len(gradH))
		for i := range diff {
			diff[i] = gradH[i] - gradHPrev[i]
		}
		distance := dualNormWeightedL1(diff, o.P.Beta)

		gradF := findiff.Gradient(hitAt, x)
		hittingCost := dualNormWeightedL1(gradF, o.P.Beta)

		return distance/hittingCost - opts.Eta
	})

	return Meta(o, t, xs, m, MetaOptions{L: l, H: opts.H})
}
