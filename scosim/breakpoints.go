package scosim

import (
	"math"
	"sort"
)

// Breakpoints is a sorted finite set of non-continuous or non-smooth
// points of a function, plus an optional function b -> (prev, next) that
// lazily generates additional breakpoints to either side of any given
// point. Used to drive piecewise integration of densities that may be
// non-smooth on a grid. Ported from original_source's breakpoints.rs.
type Breakpoints struct {
	bs   []float64
	next func(b float64) (prev, next *float64)
}

// EmptyBreakpoints returns a breakpoint set with no fixed points and no
// dynamic generator.
func EmptyBreakpoints() Breakpoints {
	return Breakpoints{}
}

// BreakpointsFrom builds a breakpoint set from a finite slice of points.
func BreakpointsFrom(bs []float64) Breakpoints {
	return EmptyBreakpoints().Add(bs)
}

// GridBreakpoints returns breakpoints on a grid with mesh width d: from
// any point b, the previous grid line is ceil(b)-d and the next is
// floor(b)+d.
func GridBreakpoints(d float64) Breakpoints {
	return Breakpoints{
		next: func(b float64) (*float64, *float64) {
			prev := math.Ceil(b) - d
			next := math.Floor(b) + d
			return &prev, &next
		},
	}
}

// Add returns a new Breakpoints with bs merged in, skipping duplicates
// already present (the caller must ensure bs itself has no duplicates).
func (bp Breakpoints) Add(bs []float64) Breakpoints {
	existing := make(map[float64]struct{}, len(bp.bs))
	for _, b := range bp.bs {
		existing[b] = struct{}{}
	}
	merged := append([]float64{}, bp.bs...)
	for _, b := range bs {
		if _, ok := existing[b]; !ok {
			merged = append(merged, b)
		}
	}
	sort.Float64s(merged)
	return Breakpoints{bs: merged, next: bp.next}
}

// Contains reports whether v is already a fixed breakpoint.
func (bp Breakpoints) Contains(v float64) bool {
	for _, b := range bp.bs {
		if b == v {
			return true
		}
	}
	return false
}

// Fixed returns the sorted slice of fixed breakpoints.
func (bp Breakpoints) Fixed() []float64 { return bp.bs }

// Next returns the dynamically generated neighbors of b, if a generator
// was configured.
func (bp Breakpoints) Next(b float64) (prev, next *float64) {
	if bp.next == nil {
		return nil, nil
	}
	return bp.next(b)
}
