// Package multidim implements the d-dimensional offline solvers of
// spec.md §4.3.2/§4.3.3: an exact two-phase (powering-up/powering-down)
// time-expanded graph search, a gamma-discretized approximation of the
// same search, and the static-optimum fractional/integral solvers.
// Grounded on
// original_source/soco/src/algorithms/offline/multi_dimensional/{graph_search,approx_graph_search}.rs.
package multidim

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/problem"
)

// Path is an optimal schedule together with its total cost, mirroring
// graph_search::Path (and unidim.Path for the 1-dimensional case).
type Path struct {
	Xs   scosim.Schedule[int64]
	Cost float64
}

// vertice identifies a node in the time-expanded graph: time t, the
// per-dimension capacity vector, and whether this node belongs to the
// powering-up or powering-down phase of time slot t.
type vertice struct {
	t          int
	config     []int64
	poweringUp bool
}

func (v vertice) key() string {
	return fmt.Sprintf("%d|%v|%t", v.t, v.config, v.poweringUp)
}

func (v vertice) equal(o vertice) bool { return v.key() == o.key() }

func cloneInts(xs []int64) []int64 {
	out := make([]int64, len(xs))
	copy(out, xs)
	return out
}

// OptimalGraphSearch solves a d-dimensional integral SSCO instance
// exactly. Each dimension's candidate values are every integer in
// [0, M_k], which is exponential in d for anything beyond small
// instances — ApproxGraphSearch trades exactness for a far smaller
// candidate set when d or M_k is large.
func OptimalGraphSearch(p problem.SSCO[int64], inverted bool) (Path, error) {
	dimValues := make([][]int64, p.D)
	for k := 0; k < p.D; k++ {
		dimValues[k] = fullRange(int64(p.M[k]))
	}
	return graphSearch(p, dimValues, inverted)
}

// ApproxGraphSearch restricts each dimension's candidate values to a
// gamma-geometric subset ({0, floor(gamma), ceil(gamma), floor(gamma^2),
// ceil(gamma^2), ...} up to M_k, plus M_k itself), shrinking the
// candidate set to O(log_gamma(M_k)) values per dimension. gamma must be
// > 1; 1.1 matches the original's benchmark default.
func ApproxGraphSearch(p problem.SSCO[int64], inverted bool, gamma float64) (Path, error) {
	if gamma <= 1 {
		return Path{}, &errs.Invalid{Msg: "gamma must be > 1"}
	}
	dimValues := make([][]int64, p.D)
	for k := 0; k < p.D; k++ {
		dimValues[k] = buildValues(int64(p.M[k]), gamma)
	}
	return graphSearch(p, dimValues, inverted)
}

func fullRange(m int64) []int64 {
	vs := make([]int64, m+1)
	for i := range vs {
		vs[i] = int64(i)
	}
	return vs
}

// buildValues is approx_graph_search.rs's build_values: the geometric
// sequence of powers of gamma, rounded both down and up, deduplicated
// and sorted, plus the endpoints 0 and m.
func buildValues(m int64, gamma float64) []int64 {
	set := map[int64]struct{}{0: {}, m: {}}
	for x := gamma; ; x *= gamma {
		lo, hi := int64(math.Floor(x)), int64(math.Ceil(x))
		if lo > m {
			break
		}
		set[lo] = struct{}{}
		if hi <= m {
			set[hi] = struct{}{}
		}
	}
	out := make([]int64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type pathEntry struct {
	xs   scosim.Schedule[int64]
	cost float64
}

// graphSearch builds the time-expanded graph's optimal path from the
// all-zero configuration at t=1 back to the all-zero configuration at
// t=TEnd+1, one layer-to-layer subpath at a time, matching graph_search's
// initial/intermediate/final time-step structure exactly.
func graphSearch(p problem.SSCO[int64], dimValues [][]int64, inverted bool) (Path, error) {
	if p.D != len(dimValues) {
		return Path{}, &errs.Invalid{Msg: "dimension mismatch between problem and candidate values"}
	}

	configs := cartesian(dimValues)
	zero := make([]int64, p.D)

	paths := make(map[string]pathEntry)
	initial := vertice{t: 1, config: zero, poweringUp: true}
	final := vertice{t: p.TEnd + 1, config: cloneInts(zero), poweringUp: true}
	paths[initial.key()] = pathEntry{xs: scosim.EmptySchedule[int64](), cost: 0}

	from := []vertice{initial}
	for _, cfg := range configs {
		to := vertice{t: 2, config: cloneInts(cfg), poweringUp: true}
		if err := findShortestSubpath(p, dimValues, inverted, paths, from, to); err != nil {
			return Path{}, err
		}
	}

	for t := 2; t < p.TEnd; t++ {
		layer := layerVertices(configs, t)
		for _, cfg := range configs {
			to := vertice{t: t + 1, config: cloneInts(cfg), poweringUp: true}
			if err := findShortestSubpath(p, dimValues, inverted, paths, layer, to); err != nil {
				return Path{}, err
			}
		}
	}

	if p.TEnd > 1 {
		layer := layerVertices(configs, p.TEnd)
		if err := findShortestSubpath(p, dimValues, inverted, paths, layer, final); err != nil {
			return Path{}, err
		}
	}

	entry, ok := paths[final.key()]
	if !ok {
		return Path{}, &errs.Invalid{Msg: "graph search: final vertex unreachable"}
	}
	return Path{Xs: entry.xs, Cost: entry.cost}, nil
}

// findShortestSubpath runs A* from every candidate source to the single
// target to, picks whichever source+path minimizes total cost so far,
// and records the configuration chosen at this time step: the config of
// the first powering-down vertex on the winning path.
func findShortestSubpath(p problem.SSCO[int64], dimValues [][]int64, inverted bool, paths map[string]pathEntry, from []vertice, to vertice) error {
	var pickedSource vertice
	pickedCost := math.Inf(1)
	var pickedPath []vertice
	found := false

	for _, source := range from {
		vs, cost, ok := astar(source, to, p, dimValues, inverted)
		if !ok {
			continue
		}
		prevEntry, exists := paths[source.key()]
		if !exists {
			return &errs.Invalid{Msg: "graph search: missing cached subpath"}
		}
		newCost := prevEntry.cost + cost
		if newCost < pickedCost {
			pickedSource, pickedCost, pickedPath, found = source, newCost, vs, true
		}
	}
	if !found {
		return &errs.Invalid{Msg: "graph search: no subpath found between layers"}
	}

	var x []int64
	for _, v := range pickedPath {
		if !v.poweringUp {
			x = v.config
			break
		}
	}
	if x == nil {
		return &errs.Invalid{Msg: "graph search: subpath never reaches powering-down phase"}
	}

	prevEntry := paths[pickedSource.key()]
	newXs := prevEntry.xs
	newXs.Push(scosim.NewConfig(x))
	paths[to.key()] = pathEntry{xs: newXs, cost: pickedCost}
	return nil
}

// heuristic under-approximates the cost from v to a powering-up goal:
// only one vertex is allowed in the goal's own layer, a powering-down
// vertex can never reach a goal requiring a larger config in any
// dimension, and otherwise the cost is the switching cost of powering up
// every dimension to match the goal.
func heuristic(v, to vertice, p problem.SSCO[int64], inverted bool) float64 {
	if v.t == to.t && !v.equal(to) {
		return math.Inf(1)
	}
	if !v.poweringUp {
		for k := 0; k < p.D; k++ {
			if v.config[k] < to.config[k] {
				return math.Inf(1)
			}
		}
	}
	var cost float64
	for k := 0; k < p.D; k++ {
		cost += problem.ScalarMovement(float64(v.config[k]), float64(to.config[k]), p.Beta[k], inverted)
	}
	return cost
}

type succEdge struct {
	to   vertice
	cost float64
}

// successors enumerates the outgoing edges of v: from a powering-up
// vertex, one hitting-cost edge into the powering-down phase at the same
// (t, config) plus one power-up edge per dimension that still has room to
// grow; from a powering-down vertex, one free power-down edge per
// dimension that still has room to shrink, plus one free edge advancing
// to the next time slot's powering-up phase.
func successors(v vertice, p problem.SSCO[int64], dimValues [][]int64, inverted bool) []succEdge {
	var out []succEdge
	if v.poweringUp {
		out = append(out, succEdge{
			to:   vertice{t: v.t, config: cloneInts(v.config), poweringUp: false},
			cost: p.HitCost(v.t, scosim.NewConfig(v.config)),
		})
		for k := 0; k < p.D; k++ {
			vs := dimValues[k]
			i := indexOf(vs, v.config[k])
			if i >= 0 && i < len(vs)-1 {
				cfg := cloneInts(v.config)
				cfg[k] = vs[i+1]
				out = append(out, succEdge{
					to:   vertice{t: v.t, config: cfg, poweringUp: true},
					cost: problem.ScalarMovement(float64(v.config[k]), float64(vs[i+1]), p.Beta[k], inverted),
				})
			}
		}
	} else {
		for k := 0; k < p.D; k++ {
			vs := dimValues[k]
			i := indexOf(vs, v.config[k])
			if i > 0 {
				cfg := cloneInts(v.config)
				cfg[k] = vs[i-1]
				out = append(out, succEdge{to: vertice{t: v.t, config: cfg, poweringUp: false}, cost: 0})
			}
		}
		if v.t <= p.TEnd {
			out = append(out, succEdge{to: vertice{t: v.t + 1, config: cloneInts(v.config), poweringUp: true}, cost: 0})
		}
	}
	return out
}

func indexOf(vs []int64, v int64) int {
	for i, x := range vs {
		if x == v {
			return i
		}
	}
	return -1
}

func cartesian(dimValues [][]int64) [][]int64 {
	if len(dimValues) == 0 {
		return [][]int64{{}}
	}
	rest := cartesian(dimValues[1:])
	out := make([][]int64, 0, len(dimValues[0])*len(rest))
	for _, v := range dimValues[0] {
		for _, r := range rest {
			cfg := make([]int64, 0, len(r)+1)
			cfg = append(cfg, v)
			cfg = append(cfg, r...)
			out = append(out, cfg)
		}
	}
	return out
}

func layerVertices(configs [][]int64, t int) []vertice {
	out := make([]vertice, len(configs))
	for i, cfg := range configs {
		out[i] = vertice{t: t, config: cloneInts(cfg), poweringUp: true}
	}
	return out
}

// astar searches from start to goal via A*, using heuristic as the
// admissible lower bound. Returns the vertex path (inclusive of both
// ends) and its total edge cost.
func astar(start, goal vertice, p problem.SSCO[int64], dimValues [][]int64, inverted bool) ([]vertice, float64, bool) {
	gScore := map[string]float64{start.key(): 0}
	cameFrom := map[string]vertice{}
	visited := map[string]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{v: start, g: 0, f: heuristic(start, goal, p, inverted)})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if item.v.equal(goal) {
			return reconstruct(cameFrom, item.v, start), item.g, true
		}
		key := item.v.key()
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, edge := range successors(item.v, p, dimValues, inverted) {
			tentative := item.g + edge.cost
			ekey := edge.to.key()
			if existing, ok := gScore[ekey]; ok && tentative >= existing {
				continue
			}
			h := heuristic(edge.to, goal, p, inverted)
			if math.IsInf(h, 1) {
				continue
			}
			gScore[ekey] = tentative
			cameFrom[ekey] = item.v
			heap.Push(pq, &pqItem{v: edge.to, g: tentative, f: tentative + h})
		}
	}
	return nil, 0, false
}

func reconstruct(cameFrom map[string]vertice, goal, start vertice) []vertice {
	path := []vertice{goal}
	cur := goal
	for !cur.equal(start) {
		prev, ok := cameFrom[cur.key()]
		if !ok {
			break
		}
		path = append([]vertice{prev}, path...)
		cur = prev
	}
	return path
}

// pqItem/priorityQueue implement container/heap.Interface for A*'s open
// set, the same min-heap-over-a-slice idiom used throughout this
// codebase's event-driven scheduling (e.g. the teacher's cluster event
// queue).
type pqItem struct {
	v     vertice
	g, f  float64
	index int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
