// Package unidim implements the 1-dimensional offline solvers of spec.md
// §6: the graph-search optimal algorithm and Backward-Recurrent Capacity
// Provisioning (BRCP). Grounded on
// original_source/implementation/src/algorithms/offline/uni_dimensional/
// optimal_graph_search.rs and .../capacity_provisioning.rs.
package unidim

import (
	"math"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/problem"
)

// Options carries the initial condition for OptimalGraphSearch.
type Options struct {
	XStart int64
}

// Path is an optimal schedule together with its total cost, mirroring
// graph_search::Path.
type Path struct {
	Xs   scosim.Schedule[int64]
	Cost float64
}

// vertice identifies a (time, value) node in the time-expanded DAG.
type vertice struct {
	t, j int64
}

// isPowOf2 reports whether n is a (non-negative) power of two.
func isPowOf2(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// MakePow2 rewrites a problem instance whose capacity bound is not a
// power of two into one that is, extending the hitting cost linearly
// beyond the original bound (with an epsilon tie-break so the optimizer
// never prefers overshooting), so OptimalGraphSearch's doubling search
// can be applied unconditionally.
func MakePow2(p problem.SSCO[int64]) problem.SSCO[int64] {
	prevM := p.M[0]
	m := math.Pow(2, math.Ceil(math.Log2(prevM)))
	hitting := p.HittingCost
	extended := costfn.Stretch(1, p.TEnd, costfn.Certain(func(t int, x scosim.Config[int64]) float64 {
		if float64(x.Get(1)) <= prevM {
			return hitting.CallCertain(t, x)
		}
		base := hitting.CallCertain(t, scosim.SingleConfig(int64(prevM)))
		return float64(x.Get(1)) * (base + (math.Nextafter(1, 2) - 1))
	}))
	return problem.SSCO[int64]{D: 1, TEnd: p.TEnd, M: []float64{m}, HittingCost: extended, Beta: p.Beta}
}

// OptimalGraphSearch solves a 1-dimensional integral SSCO instance
// exactly via the doubling-refinement time-expanded graph search: an
// initial coarse row selection ({0, m/4, m/2, 3m/4, m}) is refined
// log2(m)-2 times, each round narrowing the candidate rows around the
// previous round's optimal path within a shrinking radius 2^k.
func OptimalGraphSearch(p problem.SSCO[int64], opts Options, inverted bool, alpha float64) (Path, error) {
	if p.D != 1 {
		return Path{}, &errs.UnsupportedProblemDimension{D: p.D}
	}
	if !isPowOf2(int64(p.M[0])) {
		p = MakePow2(p)
	}

	m := int64(p.M[0])
	var kInit int64
	if m > 2 {
		kInit = int64(math.Log2(float64(m))) - 2
	}

	path := findSchedule(p, selectInitialRows(m), alpha, inverted, opts.XStart)
	for k := kInit - 1; k >= 0; k-- {
		path = findSchedule(p, selectNextRows(m, path.Xs, k), alpha, inverted, opts.XStart)
	}
	return path, nil
}

func selectInitialRows(m int64) func(t int) []int64 {
	return func(t int) []int64 {
		rows := make([]int64, 5)
		for e := int64(0); e <= 4; e++ {
			rows[e] = e * m / 4
		}
		return rows
	}
}

func selectNextRows(m int64, xs scosim.Schedule[int64], k int64) func(t int) []int64 {
	return func(t int) []int64 {
		center := xs.At(t).Get(1)
		var rows []int64
		step := int64(math.Pow(2, float64(k)))
		for e := int64(-2); e <= 2; e++ {
			j := center + e*step
			if j >= 0 && j <= m {
				rows = append(rows, j)
			}
		}
		return rows
	}
}

func findSchedule(p problem.SSCO[int64], selectRows func(t int) []int64, alpha float64, inverted bool, xStart int64) Path {
	type pathEntry struct {
		xs   scosim.Schedule[int64]
		cost float64
	}
	paths := make(map[vertice]pathEntry)
	paths[vertice{0, xStart}] = pathEntry{xs: scosim.EmptySchedule[int64](), cost: 0}

	prevRows := []int64{xStart}
	for t := 1; t <= p.TEnd; t++ {
		rows := selectRows(t)
		for _, j := range rows {
			bestSource := prevRows[0]
			bestCost := math.Inf(1)
			for _, source := range prevRows {
				prevCost := paths[vertice{int64(t - 1), source}].cost
				cost := buildCost(p, t, source, j, alpha, inverted)
				newCost := prevCost + cost
				if newCost < bestCost {
					bestSource = source
					bestCost = newCost
				}
			}
			prevEntry := paths[vertice{int64(t - 1), bestSource}]
			newXs := prevEntry.xs
			newXs.Push(scosim.SingleConfig(j))
			paths[vertice{int64(t), j}] = pathEntry{xs: newXs, cost: bestCost}
		}
		prevRows = rows
	}

	best := Path{Xs: scosim.EmptySchedule[int64](), Cost: math.Inf(1)}
	for _, i := range prevRows {
		entry := paths[vertice{int64(p.TEnd), i}]
		if entry.cost < best.Cost {
			best = Path{Xs: entry.xs, Cost: entry.cost}
		}
	}
	return best
}

func buildCost(p problem.SSCO[int64], t int, i, j int64, alpha float64, inverted bool) float64 {
	hitting := p.HitCost(t, scosim.SingleConfig(j))
	movement := p.Movement(scosim.SingleConfig(i), scosim.SingleConfig(j), inverted)
	return hitting + alpha*movement
}
