package problem

import "github.com/jonhue/scosim"

// Problem is the common contract shared by SCO, SSCO, SBLO, and SLO,
// letting online/offline algorithms that only need dimension, horizon,
// hitting cost, and movement stay generic over the concrete shape.
type Problem[T scosim.Number] interface {
	Dim() int
	Horizon() int
	HitCost(t int, x scosim.Config[T]) float64
	Movement(xPrev, x scosim.Config[T], inverted bool) float64
}

// WithHorizon is implemented by every concrete shape, returning a copy
// with TEnd replaced by tEnd. Self-referential so Online[T, P] can grow
// P's horizon without knowing P's concrete shape.
type WithHorizon[P any] interface {
	WithHorizon(tEnd int) P
}

// Online wraps a problem shape P with a prediction window w. The
// decision time t itself is never stored here — callers derive it from
// the committed schedule's length (t = xs.Len() + 1), exactly as
// OnlineAlgorithm::next does in the original. What Online tracks is how
// far ahead of the current decision the wrapped problem's horizon
// (P.Horizon()) currently reaches; IncTEnd grows that horizon by one
// slot as new cost-function/load data arrives.
type Online[T scosim.Number, P interface {
	Problem[T]
	WithHorizon[P]
}] struct {
	P P
	W int
}

// NewOnline constructs an Online wrapper with the problem's horizon
// initialized to the prediction window w (the portion of the problem
// known before any decision has been made).
func NewOnline[T scosim.Number, P interface {
	Problem[T]
	WithHorizon[P]
}](p P, w int) Online[T, P] {
	return Online[T, P]{P: p.WithHorizon(w), W: w}
}

// TEnd returns the furthest time slot whose hitting cost and load the
// algorithm may currently see — the wrapped problem's own horizon.
func (o Online[T, P]) TEnd() int { return o.P.Horizon() }

// IncTEnd widens the wrapped problem's horizon by one slot.
func (o Online[T, P]) IncTEnd() Online[T, P] {
	o.P = o.P.WithHorizon(o.P.Horizon() + 1)
	return o
}

// ScalarMovement is the per-dimension weighted switching cost term
// beta * pos(cur - prev) (or pos(prev - cur) for the inverted/"powering
// down" variant), the building block SSCO/SBLO/SLO.Movement sums over
// dimensions.
func ScalarMovement(prev, cur, beta float64, inverted bool) float64 {
	if inverted {
		return beta * pos(prev-cur)
	}
	return beta * pos(cur-prev)
}

// SumOverSchedule accumulates total hitting cost and total movement for a
// schedule of decisions xs, relative to an initial configuration x0 at
// time 0, mirroring original_source's sum_over_schedule: hit cost is
// evaluated at each of xs's own time slots (1-indexed), movement between
// consecutive entries (and between x0 and xs's first entry).
func SumOverSchedule[T scosim.Number, P Problem[T]](p P, x0 scosim.Config[T], xs scosim.Schedule[T], inverted bool) (hit, movement float64) {
	prev := x0
	for t := 1; t <= xs.Len(); t++ {
		x := xs.At(t)
		hit += p.HitCost(t, x)
		movement += p.Movement(prev, x, inverted)
		prev = x
	}
	return hit, movement
}

// Objective is hit cost plus movement cost over the full schedule,
// matching spec.md §3's objective(P, x_0, x_{1:t_end}) definition.
func Objective[T scosim.Number, P Problem[T]](p P, x0 scosim.Config[T], xs scosim.Schedule[T], inverted bool) float64 {
	hit, movement := SumOverSchedule(p, x0, xs, inverted)
	return hit + movement
}
