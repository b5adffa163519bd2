// Package randomized implements Randomized Integral Relaxation: round a
// fractional relaxation algorithm's output to an adjacent integer,
// flipping a coin weighted so the integral decision's distribution
// matches the fractional one in expectation and never jumps by more
// than one server per step. Grounded on
// original_source/implementation/src/algorithms/online/uni_dimensional/randomized.rs.
//
// The original is generic over which fractional algorithm supplies the
// relaxation (Probabilistic or Randomly Biased Greedy) via a trait. This
// port specializes to Probabilistic, the relaxation this repo's CLI
// actually exercises; RBG is exposed separately as its own fractional
// algorithm (see scosim/online/rbg) rather than as a second relaxation
// source here.
package randomized

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/online/probabilistic"
	"github.com/jonhue/scosim/problem"
	"github.com/jonhue/scosim/rng"
)

// Memory carries the fractional relaxation's own running state (its
// current config and its internal density memory).
type Memory struct {
	Y           scosim.Config[float64]
	RelaxationM *probabilistic.Memory
}

// DefaultMemory starts the relaxation at y=0 with no density history.
func DefaultMemory() Memory {
	return Memory{Y: scosim.SingleConfig(0.0)}
}

// Options supplies the fractional relaxation problem (the same instance
// as the integral one, but built over float64) and the RNG used for the
// rounding coin flip.
type Options struct {
	Relaxation problem.SSCO[float64]
	RNG        *rng.PartitionedRNG
}

// Randomized is Randomized Integral Relaxation.
func Randomized(o problem.Online[int64, problem.SSCO[int64]], t int, xs scosim.Schedule[int64], prevM Memory, opts Options) (online.Step[int64, Memory], error) {
	if o.W != 0 {
		return online.Step[int64, Memory]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}
	if o.P.D != 1 {
		return online.Step[int64, Memory]{}, &errs.UnsupportedProblemDimension{D: o.P.D}
	}

	relaxationO := problem.Online[float64, problem.SSCO[float64]]{
		P: opts.Relaxation.WithHorizon(o.P.Horizon()),
		W: o.W,
	}
	relaxationStep, err := probabilistic.Probabilistic(
		relaxationO, t, toFloatSchedule(xs), relaxationMemory(prevM.RelaxationM),
		probabilistic.Options{Breakpoints: scosim.GridBreakpoints(1)},
	)
	if err != nil {
		return online.Step[int64, Memory]{}, err
	}
	y := relaxationStep.X

	prevX := xs.NowWithDefault(scosim.SingleConfig(int64(0))).Get(1)
	prevY := prevM.Y.Get(1)
	x := round(prevX, prevY, y.Get(1), opts.RNG)

	return online.Step[int64, Memory]{
		X: scosim.SingleConfig(x),
		M: &Memory{Y: y, RelaxationM: relaxationStep.M},
	}, nil
}

func relaxationMemory(m *probabilistic.Memory) probabilistic.Memory {
	if m == nil {
		return probabilistic.DefaultMemory()
	}
	return *m
}

func toFloatSchedule(xs scosim.Schedule[int64]) scosim.Schedule[float64] {
	out := scosim.EmptySchedule[float64]()
	for _, x := range xs.ToSlice() {
		out.Push(scosim.ToFloatConfig(x))
	}
	return out
}

// round projects the previous fractional decision onto [floor(y),
// ceil(y)], then flips a coin weighted so that, in expectation over
// many steps, the fraction of rounds landing on each of floor(y) and
// ceil(y) matches y's position between them -- and never changes
// decision unless y's own integer neighbors have shifted.
func round(prevX int64, prevY, y float64, r *rng.PartitionedRNG) int64 {
	lo, hi := math.Floor(y), math.Ceil(y)
	coin := r.ForSubsystem(rng.SubsystemRelaxation).Float64()

	if prevY <= y {
		if prevX == int64(hi) {
			return prevX
		}
		prevYProj := project(prevY, lo, hi)
		p := (y - prevYProj) / (1 - frac(prevYProj))
		if coin <= p {
			return int64(hi)
		}
		return int64(lo)
	}

	if prevX == int64(lo) {
		return prevX
	}
	prevYProj := project(prevY, lo, hi)
	p := (prevYProj - y) / frac(prevYProj)
	if coin <= p {
		return int64(lo)
	}
	return int64(hi)
}

func project(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}
