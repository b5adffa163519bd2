// Package budgeting implements Lazy Budgeting for Smoothed Load
// Optimization (and its randomized variant): each unit of capacity
// ("lane") keeps whichever dimension it is currently assigned to until
// either a strictly more efficient assignment exists or its committed
// time horizon expires, bounding the number of migrations any lane
// makes over the run. Grounded on
// original_source/soco/src/algorithms/online/multi_dimensional/lazy_budgeting/smoothed_load_optimization.rs.
package budgeting

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/offline/multidim"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
	"github.com/jonhue/scosim/rng"
)

// Memory is the lane distribution carried between rounds: for each lane,
// which dimension currently holds it (0 = idle) and the time slot its
// commitment expires.
type Memory struct {
	Lanes    []int
	Horizons []int
	Gamma    float64
}

// Options configures Lazy Budgeting.
type Options struct {
	// Randomized selects Randomized Lazy Budgeting, which inflates every
	// commitment horizon by the run's sampled Gamma instead of using 1.
	Randomized bool
}

// SampleGamma draws the per-run gamma Randomized Lazy Budgeting inflates
// commitment horizons by; sample once per run, before the first step.
func SampleGamma(r *rng.PartitionedRNG) float64 {
	u := r.ForSubsystem(rng.SubsystemBudgeting).Float64()
	return math.Log(u*(math.E-1) + 1)
}

// DefaultMemory builds the initial all-lanes-idle memory for p, with
// gamma sampled once up front.
func DefaultMemory(p problem.SLO[int64], r *rng.PartitionedRNG) Memory {
	return Memory{Lanes: make([]int, bound(p)), Horizons: make([]int, bound(p)), Gamma: SampleGamma(r)}
}

func bound(p problem.SLO[int64]) int {
	var b int
	for _, m := range p.M {
		b += int(m)
	}
	return b
}

// LB is Lazy Budgeting for Smoothed Load Optimization.
func LB(o problem.Online[int64, problem.SLO[int64]], t int, xs scosim.Schedule[int64], prevM Memory, opts Options) (online.Step[int64, Memory], error) {
	if o.W != 0 {
		return online.Step[int64, Memory]{}, &errs.UnsupportedPredictionWindow{W: o.W}
	}

	n := len(prevM.Lanes)
	optimalLanes, err := findOptimalLanes(o.P, n)
	if err != nil {
		return online.Step[int64, Memory]{}, err
	}

	lanes := make([]int, n)
	horizons := make([]int, n)
	for j := 0; j < n; j++ {
		if prevM.Lanes[j] < optimalLanes[j] || t >= prevM.Horizons[j] {
			lanes[j] = optimalLanes[j]
			horizons[j] = t + nextTimeHorizon(o.P, optimalLanes[j], prevM.Gamma, opts.Randomized)
		} else {
			lanes[j] = prevM.Lanes[j]
			horizons[j] = maxInt(prevM.Horizons[j], t+nextTimeHorizon(o.P, prevM.Lanes[j], prevM.Gamma, opts.Randomized))
		}
	}

	m := Memory{Lanes: lanes, Horizons: horizons, Gamma: prevM.Gamma}
	return online.Step[int64, Memory]{X: collectConfig(o.P.D, lanes), M: &m}, nil
}

// nextTimeHorizon is the number of additional time slots a lane newly
// (re-)assigned to dimension k commits to stay there: its switching-to-
// hitting cost ratio, scaled by gamma under the randomized variant.
func nextTimeHorizon(p problem.SLO[int64], k int, gamma float64, randomized bool) int {
	if k == 0 {
		return 0
	}
	factor := 1.0
	if randomized {
		factor = gamma
	}
	return int(math.Floor(factor * p.Beta[k-1] / p.C[k-1]))
}

func collectConfig(d int, lanes []int) scosim.Config[int64] {
	counts := make([]int64, d)
	for _, lane := range lanes {
		if lane > 0 {
			counts[lane-1]++
		}
	}
	return scosim.NewConfig(counts)
}

// findOptimalLanes derives the target lane assignment from the most
// efficient feasible integral configuration at the current horizon's
// end, found via the SSCO-shaped multi-dimensional graph search.
func findOptimalLanes(p problem.SLO[int64], n int) ([]int, error) {
	path, err := multidim.OptimalGraphSearch(p.ToSSCO(), false)
	if err != nil {
		return nil, err
	}
	return buildLanes(path.Xs.Now(), p.D, n), nil
}

// buildLanes assigns lane j (0-indexed) to the highest-numbered
// dimension whose suffix of x (summed from that dimension through the
// last) still covers position j — matching build_lanes exactly. Since
// SLO requires hitting cost strictly descending and switching cost
// strictly ascending across dimensions, this keeps the cheapest-to-hold
// dimensions occupying the lowest lane numbers.
func buildLanes(x scosim.Config[int64], d, n int) []int {
	lanes := make([]int, n)
	total := activeLanes(x, 1, d)
	for j := 0; j < n; j++ {
		if int64(j) < total {
			for k := 1; k <= d; k++ {
				if activeLanes(x, k, d) >= int64(j+1) {
					lanes[j] = k
				}
			}
		}
	}
	return lanes
}

func activeLanes(x scosim.Config[int64], from, to int) int64 {
	var sum int64
	for k := from; k <= to; k++ {
		sum += x.Get(k)
	}
	return sum
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
