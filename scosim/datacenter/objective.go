package datacenter

import (
	"math"
	"math/rand"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/errs"
	"github.com/jonhue/scosim/problem"
)

// totalSubJobs sums processing time * load across every (source, job type)
// load entry, for a server of the given type.
func (m Model) totalSubJobs(serverType ServerType, loads scosim.LoadProfile) float64 {
	var sum float64
	for i := 0; i < loads.E(); i++ {
		_, jobIdx := parse(len(m.JobTypes), i)
		sum += m.JobTypes[jobIdx].ProcessingTimeOn(serverType) * loads.Get(i)
	}
	return sum
}

// safeBalancing guards every per-cell computation that divides by the
// number of active servers (or jobs): zero servers and zero assigned load
// trivially cost nothing, zero servers with positive load is infeasible,
// and otherwise f is evaluated.
func safeBalancing(x, assigned float64, cell int, f func() (float64, error)) (float64, error) {
	if x == 0 {
		if assigned > 0 {
			return 0, &errs.LoadToInactiveServer{Cell: cell}
		}
		return 0, nil
	}
	return f()
}

// energyConsumptionAt sums power draw across every server type at location
// j, given configuration x and the load fractions assigned to it.
func energyConsumptionAt[T scosim.Number](m Model, j int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
	var sum float64
	for k := 0; k < len(m.ServerTypes); k++ {
		cell := encode(len(m.ServerTypes), j, k)
		serverType := m.ServerTypes[k]
		totalLoad := m.totalSubJobs(serverType, zs.SelectLoads(lambda, cell))
		xk := scosim.ToFloat64(x.Get(cell + 1))
		contrib, err := safeBalancing(xk, totalLoad, cell, func() (float64, error) {
			s := totalLoad / (xk * m.Delta)
			return xk * m.EnergyConsumption.Consumption(m.Delta, serverType, s), nil
		})
		if err != nil {
			return 0, err
		}
		sum += contrib
	}
	return sum, nil
}

// energyCostAt is energy_cost(t, j, x, lambda, zs): the priced cost of the
// power drawn at location j.
func energyCostAt[T scosim.Number](m Model, t, j int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
	p, err := energyConsumptionAt(m, j, x, lambda, zs)
	if err != nil {
		return 0, err
	}
	return m.EnergyCost.Cost(t, m.Locations[j], p), nil
}

// revenueLossFor is the revenue loss incurred by one (source, job type)
// pair on one server, given the number of jobs it handles and their mean
// duration.
func revenueLossFor(m Model, t int, location Location, serverType ServerType, source Source, jobType JobType, numberOfJobs, meanJobDuration float64) (float64, error) {
	avgDelay, err := AverageDelay(m.Delta, numberOfJobs, meanJobDuration)
	if err != nil {
		return 0, err
	}
	delay := avgDelay + source.RoutingDelayTo(t, location) + jobType.ProcessingTimeOn(serverType)
	return m.RevenueLoss.Loss(t, jobType, delay), nil
}

// overallRevenueLoss sums revenue loss across every source and job type for
// one (location, server type) cell.
func overallRevenueLoss(m Model, t int, location Location, serverType ServerType, x float64, loads scosim.LoadProfile) (float64, error) {
	totalLoad := m.totalSubJobs(serverType, loads)
	numberOfJobs := loads.Total()
	var meanJobDuration float64
	if numberOfJobs > 0 {
		meanJobDuration = totalLoad / numberOfJobs
	}
	return safeBalancing(x, numberOfJobs, -1, func() (float64, error) {
		var sum float64
		for s := 0; s < len(m.Sources); s++ {
			for i := 0; i < len(m.JobTypes); i++ {
				rl, err := revenueLossFor(m, t, location, serverType, m.Sources[s], m.JobTypes[i], numberOfJobs/x, meanJobDuration)
				if err != nil {
					return 0, err
				}
				sum += rl * loads.Get(encode(len(m.JobTypes), s, i))
			}
		}
		return sum, nil
	})
}

// ObjectiveFn computes, for a fixed (t, x, lambda, zs), the sum over
// locations of energy cost plus overall revenue loss: the cost that
// OptimizeLoadFractions minimizes over zs to produce the data-center
// model's hitting cost. Referred to as f in the paper.
func ObjectiveFn[T scosim.Number](m Model, t int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
	var total float64
	for j := range m.Locations {
		ec, err := energyCostAt(m, t, j, x, lambda, zs)
		if err != nil {
			return 0, err
		}
		var rl float64
		for k := range m.ServerTypes {
			cell := encode(len(m.ServerTypes), j, k)
			loads := zs.SelectLoads(lambda, cell)
			contrib, err := overallRevenueLoss(m, t, m.Locations[j], m.ServerTypes[k], scosim.ToFloat64(x.Get(cell+1)), loads)
			if err != nil {
				return 0, err
			}
			rl += contrib
		}
		total += ec + rl
	}
	return total, nil
}

// ApplyLoadsOverTime builds a CostFn of configurations by optimally
// distributing a known load profile at each time slot (spec.md §4.2's
// inner optimization). t_start is the time of the first load profile.
func ApplyLoadsOverTime[T scosim.Number](m Model, loads []scosim.LoadProfile, tStart int) costfn.CostFn[T] {
	fs := make([]costfn.SingleCostFn[T], len(loads))
	for idx := range loads {
		lambda := loads[idx]
		fs[idx] = costfn.Certain(func(t int, x scosim.Config[T]) float64 {
			return OptimizeLoadFractions[T](m.D(), m.E(), func(t int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
				return ObjectiveFn(m, t, x, lambda, zs)
			}, lambda, t, x)
		})
	}
	return costfn.New[T](tStart, fs...)
}

// ApplyPredictedLoads builds a CostFn of configurations from a predicted
// (uncertain) load profile at each time slot: every evaluation samples the
// forecast and optimally distributes each sample, matching
// PredictedLoadProfile.SampleLoadProfiles.
func ApplyPredictedLoads[T scosim.Number](m Model, predicted []scosim.PredictedLoadProfile, tStart int, rng *rand.Rand) costfn.SingleCostFn[T] {
	return costfn.Predictive(func(t int, x scosim.Config[T]) []float64 {
		idx := t - tStart
		if idx < 0 {
			idx = 0
		}
		if idx >= len(predicted) {
			idx = len(predicted) - 1
		}
		samples := predicted[idx].SampleLoadProfiles(rng)
		out := make([]float64, len(samples))
		for i, lambda := range samples {
			out[i] = OptimizeLoadFractions[T](m.D(), m.E(), func(t int, x scosim.Config[T], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
				return ObjectiveFn(m, t, x, lambda, zs)
			}, lambda, t, x)
		}
		return out
	})
}

// ToSSCO builds the general multi-location, multi-job-type SSCO problem
// instance: hitting cost is the full data-center objective, evaluated via
// the inner load-fraction optimization at every call.
func ToSSCO[T scosim.Number](m Model, loads []scosim.LoadProfile) problem.SSCO[T] {
	return problem.SSCO[T]{
		D:           m.D(),
		TEnd:        len(loads),
		M:           m.Bounds(),
		Beta:        m.SwitchingCosts(),
		HittingCost: ApplyLoadsOverTime[T](m, loads, 1),
	}
}

// requireHomogeneous guards the SBLO/SLO conversions, which (like their
// original source counterparts) only support a single location, source,
// and job type.
func (m Model) requireHomogeneous() error {
	if len(m.Locations) != 1 || len(m.Sources) != 1 || len(m.JobTypes) != 1 {
		return &errs.Invalid{Msg: "SBLO/SLO conversion requires a single location, source, and job type"}
	}
	return nil
}

// ToSBLO embeds the homogeneous data-center model into SBLO: each server
// type's utilization-to-cost curve G_k is the (time-stationary, evaluated
// at t=1) composition of energy consumption and energy cost, and per-slot
// demand is split evenly across server types. Requires a single location,
// source, and job type; time-varying electricity pricing is not
// representable in SBLO's time-independent G (see DESIGN.md).
func ToSBLO[T scosim.Number](m Model, loads []scosim.LoadProfile) (problem.SBLO[T], error) {
	if err := m.requireHomogeneous(); err != nil {
		return problem.SBLO[T]{}, err
	}
	location := m.Locations[0]
	tEnd := len(loads)

	g := make([]func(float64) float64, len(m.ServerTypes))
	for k, st := range m.ServerTypes {
		st := st
		g[k] = func(s float64) float64 {
			p := st.limitUtilization(s, func() float64 { return m.EnergyConsumption.Consumption(m.Delta, st, s) })
			if math.IsInf(p, 1) {
				return posInf
			}
			return m.EnergyCost.Cost(1, location, p)
		}
	}

	load := make([][]float64, tEnd)
	for i, lambda := range loads {
		load[i] = problem.SplitEvenly(lambda.Total(), len(m.ServerTypes))
	}

	return problem.SBLO[T]{
		D: len(m.ServerTypes), TEnd: tEnd, M: m.Bounds(), Beta: m.SwitchingCosts(),
		Load: load, G: g,
	}, nil
}

// ToSLO embeds the homogeneous data-center model into SLO, matching
// original_source/implementation/src/model/data_center/model.rs's
// SmoothedLoadOptimization conversion: each server type's linear unit cost
// C_k assumes full utilization and averages energy cost over the time
// horizon (full cost averaging is the deliberate SLO simplification — see
// spec.md §4.2). Requires a single location, source, and job type, and
// that server types are supplied in the C-descending / Beta-ascending
// order SLO.Verify demands.
func ToSLO[T scosim.Number](m Model, loads []scosim.LoadProfile) (problem.SLO[T], error) {
	if err := m.requireHomogeneous(); err != nil {
		return problem.SLO[T]{}, err
	}
	location := m.Locations[0]
	tEnd := len(loads)

	c := make([]float64, len(m.ServerTypes))
	for k, st := range m.ServerTypes {
		p := m.EnergyConsumption.Consumption(m.Delta, st, 1)
		if tEnd > 0 {
			var sum float64
			for t := 1; t <= tEnd; t++ {
				sum += m.EnergyCost.Cost(t, location, p)
			}
			c[k] = sum / float64(tEnd)
		} else {
			c[k] = m.EnergyCost.Cost(1, location, p)
		}
	}

	load := make([]float64, tEnd)
	for i, lambda := range loads {
		load[i] = lambda.Total()
	}

	return problem.SLO[T]{
		D: len(m.ServerTypes), TEnd: tEnd, M: m.Bounds(), Beta: m.SwitchingCosts(),
		C: c, Load: load,
	}, nil
}
