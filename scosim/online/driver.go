// Package online defines the streaming-driver contract shared by every
// online algorithm: the Step/Algorithm shapes and the Stream/StreamFrom/
// OfflineStream helpers that repeatedly invoke an algorithm, extending a
// schedule and memory trace one time slot at a time. Grounded on
// original_source/implementation/src/algorithms/online/mod.rs and
// original_source/soco/src/algorithms/online/streaming.rs.
package online

import (
	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/problem"
)

// ConstrainedProblem is the subset of problem.Problem/WithHorizon that
// Online[T, P] requires of its wrapped shape.
type ConstrainedProblem[T scosim.Number, P any] interface {
	problem.Problem[T]
	problem.WithHorizon[P]
}

// Step is the solution fragment an algorithm contributes at one time
// slot: the chosen configuration, and optionally a new memory entry (nil
// means "nothing new to remember this round").
type Step[T scosim.Number, M any] struct {
	X scosim.Config[T]
	M *M
}

// Algorithm is the shape every online algorithm implements: given the
// (already t_end-widened) online problem, the current decision time t,
// the schedule committed so far, the latest memory (or its zero value if
// none yet), and algorithm-specific options, produce the next Step.
type Algorithm[T scosim.Number, P ConstrainedProblem[T, P], M any, O any] func(o problem.Online[T, P], t int, xs scosim.Schedule[T], prevM M, opts O) (Step[T, M], error)

// Next executes one iteration of alg, deriving t from xs and substituting
// defaultM for a missing previous memory.
func Next[T scosim.Number, P ConstrainedProblem[T, P], M any, O any](
	alg Algorithm[T, P, M, O], o problem.Online[T, P], xs scosim.Schedule[T], prevM *M, defaultM M, opts O,
) (Step[T, M], error) {
	t := xs.Len() + 1
	m := defaultM
	if prevM != nil {
		m = *prevM
	}
	return alg(o, t, xs, m, opts)
}

// StreamFrom repeatedly invokes alg, extending xs and ms in place, until
// cont returns false. cont receives the (possibly horizon-widened) online
// problem and the schedule built so far, and is responsible for widening
// o's horizon between iterations if the algorithm needs a growing
// prediction window.
func StreamFrom[T scosim.Number, P ConstrainedProblem[T, P], M any, O any](
	alg Algorithm[T, P, M, O], o *problem.Online[T, P], defaultM M, opts O,
	xs *scosim.Schedule[T], ms *[]M,
	cont func(o *problem.Online[T, P], xs *scosim.Schedule[T]) bool,
) error {
	if xs.Len() != len(*ms) {
		return &errs.OnlineOutOfDateMemory{PreviousTimeSlots: xs.Len(), MemoryEntries: len(*ms)}
	}

	for {
		var prevM *M
		if len(*ms) > 0 {
			m := (*ms)[len(*ms)-1]
			prevM = &m
		}
		step, err := Next(alg, *o, *xs, prevM, defaultM, opts)
		if err != nil {
			return err
		}
		xs.Push(step.X)
		if step.M != nil {
			*ms = append(*ms, *step.M)
		}
		if !cont(o, xs) {
			break
		}
	}
	return nil
}

// Stream is StreamFrom starting from an empty schedule and memory trace.
func Stream[T scosim.Number, P ConstrainedProblem[T, P], M any, O any](
	alg Algorithm[T, P, M, O], o *problem.Online[T, P], defaultM M, opts O,
	cont func(o *problem.Online[T, P], xs *scosim.Schedule[T]) bool,
) (scosim.Schedule[T], []M, error) {
	xs := scosim.EmptySchedule[T]()
	ms := []M{}
	err := StreamFrom(alg, o, defaultM, opts, &xs, &ms, cont)
	return xs, ms, err
}

// OfflineStream streams alg against a constant, already-fully-known cost
// function defined over [1, tEnd], simulating the usual online invariant
// that the horizon visible while deciding slot t is t + w: before each
// decision the wrapped problem's horizon is widened (capped at tEnd) to
// stay w ahead of the next slot, and the stream stops once every slot
// through tEnd has been decided.
func OfflineStream[T scosim.Number, P ConstrainedProblem[T, P], M any, O any](
	alg Algorithm[T, P, M, O], o *problem.Online[T, P], defaultM M, opts O, tEnd int,
) (scosim.Schedule[T], []M, error) {
	widen := func(o *problem.Online[T, P], nextT int) {
		want := nextT + o.W
		if want > tEnd {
			want = tEnd
		}
		for o.TEnd() < want {
			*o = o.IncTEnd()
		}
	}
	widen(o, 1)
	return Stream(alg, o, defaultM, opts, func(o *problem.Online[T, P], xs *scosim.Schedule[T]) bool {
		if xs.Len() >= tEnd {
			return false
		}
		widen(o, xs.Len()+1)
		return true
	})
}
