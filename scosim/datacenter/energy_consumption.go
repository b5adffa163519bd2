package datacenter

import "math"

// posInf is the failure value returned by any sub-model whose guard
// condition is violated, matching spec.md §7's "numeric failures inside
// evaluators return +Inf" propagation policy.
var posInf = math.Inf(1)

// EnergyConsumptionKind selects the per-server-type power-draw formula of
// spec.md §4.2.
type EnergyConsumptionKind int

const (
	// Linear interpolates power draw linearly between idle and peak power
	// as a function of utilization s: phi(s) = phi_min + (phi_max-phi_min)*s.
	Linear EnergyConsumptionKind = iota
	// SimplifiedLinear uses phi(s) = phi_max*(1+s)/2, the common
	// approximation that assumes idle power is half of peak power.
	SimplifiedLinear
	// NonLinear models diminishing-efficiency power draw:
	// phi(s) = s^alpha/beta + phi_min, alpha > 1, beta > 0.
	NonLinear
)

// EnergyConsumption holds the per-server-type parameters of one kind of
// power-draw model. Grounded on
// original_source/implementation/src/model/data_center/models/energy_consumption.rs
// (read in full).
type EnergyConsumption struct {
	Kind           EnergyConsumptionKind
	PhiMin, PhiMax float64 // idle / peak power draw
	Alpha, Beta    float64 // only used by NonLinear
}

// EnergyConsumptionModel maps each server type (by key) to its power-draw
// parameters.
type EnergyConsumptionModel struct {
	models map[string]EnergyConsumption
}

// NewEnergyConsumptionModel builds a model from a per-server-type parameter
// map.
func NewEnergyConsumptionModel(models map[string]EnergyConsumption) EnergyConsumptionModel {
	return EnergyConsumptionModel{models: models}
}

// Consumption computes power draw phi(delta, server_type, s) for a server
// of the given type operating at utilization s during a slot of length
// delta, guarded by the server type's max_utilization.
func (m EnergyConsumptionModel) Consumption(delta float64, st ServerType, s float64) float64 {
	return st.limitUtilization(s, func() float64 {
		p := m.models[st.Key]
		switch p.Kind {
		case SimplifiedLinear:
			return delta * p.PhiMax * (1 + s) / 2
		case NonLinear:
			return delta * (math.Pow(s, p.Alpha)/p.Beta + p.PhiMin)
		default: // Linear
			return delta * ((p.PhiMax-p.PhiMin)*s + p.PhiMin)
		}
	})
}
