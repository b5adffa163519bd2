package scosim

// Schedule is an ordered sequence of configurations, one per time slot
// starting at 1. Ported from original_source's schedule.rs, referenced
// throughout problem.rs, verifiers.rs and streaming.rs.
type Schedule[T Number] struct {
	xs []Config[T]
}

// EmptySchedule returns a schedule with no entries.
func EmptySchedule[T Number]() Schedule[T] {
	return Schedule[T]{}
}

// RepeatSchedule returns a schedule of length n with every entry equal to x.
func RepeatSchedule[T Number](x Config[T], n int) Schedule[T] {
	xs := make([]Config[T], n)
	for i := range xs {
		xs[i] = x
	}
	return Schedule[T]{xs: xs}
}

// Push appends a configuration as the next time slot. Always copies into
// fresh backing storage (rather than relying on append's capacity reuse)
// since callers such as the graph-search solvers fork many schedules
// from a shared prefix and must not have one fork's push alias another's.
func (s *Schedule[T]) Push(x Config[T]) {
	xs := make([]Config[T], len(s.xs)+1)
	copy(xs, s.xs)
	xs[len(s.xs)] = x
	s.xs = xs
}

// Shift prepends a configuration, shifting every later slot by one.
func (s *Schedule[T]) Shift(x Config[T]) {
	s.xs = append([]Config[T]{x}, s.xs...)
}

// Now returns the last configuration; panics on an empty schedule.
func (s Schedule[T]) Now() Config[T] {
	return s.xs[len(s.xs)-1]
}

// NowWithDefault returns the last configuration, or def if the schedule is empty.
func (s Schedule[T]) NowWithDefault(def Config[T]) Config[T] {
	if len(s.xs) == 0 {
		return def
	}
	return s.Now()
}

// At returns the configuration at 1-indexed time slot t.
func (s Schedule[T]) At(t int) Config[T] {
	return s.xs[t-1]
}

// Len returns the number of time slots recorded.
func (s Schedule[T]) Len() int { return len(s.xs) }

// TEnd is an alias for Len matching the Rust API's t_end() accessor on schedules.
func (s Schedule[T]) TEnd() int { return s.Len() }

// ToSlice returns a defensive copy of the recorded configurations.
func (s Schedule[T]) ToSlice() []Config[T] {
	cp := make([]Config[T], len(s.xs))
	copy(cp, s.xs)
	return cp
}

// Raw encodes the schedule as a flat d*(w+1) float vector, the canonical
// encoding the convex optimizer works on for planning-window problems
// (decoded by FromRaw in bounds, offline/convexprog and online/horizon).
func (s Schedule[T]) Raw() []float64 {
	if len(s.xs) == 0 {
		return nil
	}
	d := s.xs[0].D()
	out := make([]float64, 0, d*len(s.xs))
	for _, x := range s.xs {
		out = append(out, ToFloatConfig(x).ToSlice()...)
	}
	return out
}

// FromRaw reconstructs a fractional schedule of n slots, each of dimension d,
// from a flat raw vector as produced by Raw().
func FromRaw(d, n int, raw []float64) Schedule[float64] {
	xs := make([]Config[float64], n)
	for t := 0; t < n; t++ {
		xs[t] = NewConfig(raw[t*d : (t+1)*d])
	}
	return Schedule[float64]{xs: xs}
}

// ToIntegral rounds a fractional schedule to the nearest integral one
// (used by conversions at offline/online boundaries that need a concrete
// integral schedule from a fractional algorithm's output).
func (s Schedule[T]) ToIntegral() Schedule[int64] {
	xs := make([]Config[int64], len(s.xs))
	for i, x := range s.xs {
		vals := make([]int64, x.D())
		for k := 1; k <= x.D(); k++ {
			vals[k-1] = int64(ToFloat64(x.Get(k)) + 0.5)
		}
		xs[i] = NewConfig(vals)
	}
	return Schedule[int64]{xs: xs}
}
