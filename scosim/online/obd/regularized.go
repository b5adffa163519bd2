package obd

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/numeric/convexopt"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

// RegularizedOptions configures Regularized OBD: m is the hitting cost's
// strong-convexity constant, alpha/beta are the convexity/smoothness
// constants of the Bregman-convergence potential function used to derive
// the two regularizer weights in closed form.
type RegularizedOptions struct {
	M, Alpha, Beta float64
}

// Regularized is Regularized Online Balanced Descent: directly minimizes
// hitting cost plus two movement-cost regularizers — one pulling toward
// the previous decision, one toward the current hitting-cost minimizer —
// with weights derived in closed form from m, alpha, beta.
func Regularized(o problem.Online[float64, problem.SSCO[float64]], t int, xs scosim.Schedule[float64], _ struct{}, opts RegularizedOptions) (online.Step[float64, struct{}], error) {
	if o.W != 0 {
		return online.Step[float64, struct{}]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}

	lambda1, lambda2 := buildParameters(opts.M, opts.Alpha, opts.Beta)
	prevX := xs.NowWithDefault(scosim.RepeatConfig(0.0, o.P.D))
	v := findMinimizerOfHittingCost(t, o.P)

	objective := func(raw []float64) float64 {
		x := scosim.NewConfig(raw)
		return o.P.HitCost(t, x) + lambda1*o.P.Movement(prevX, x, false) + lambda2*o.P.Movement(v, x, false)
	}
	res := convexopt.Minimize(objective, boundsOf(o.P), nil, nil)
	return online.Step[float64, struct{}]{X: scosim.NewConfig(res.X)}, nil
}

// buildParameters solves for (lambda_1, lambda_2): the weight of
// movement cost toward the previous decision and the weight of the
// regularizer toward the hitting-cost minimizer, matching
// regularized.rs's build_parameters exactly.
func buildParameters(m, alpha, beta float64) (float64, float64) {
	fLambda2 := func(lambda1 float64) float64 {
		return (lambda1*m/2*(1+math.Sqrt(1+4*beta*beta/(alpha*m))) - m) / beta
	}

	lambda2 := 0.0
	lambda1 := 2 / (1 + math.Sqrt(1+4*beta*beta/(alpha*m)))
	if math.Abs(fLambda2(lambda1)-lambda2) < 1e-9 {
		return lambda1, lambda2
	}

	lambda1 = 1
	lambda2 = fLambda2(lambda1)
	return lambda1, lambda2
}
