package datacenter

// SwitchingCost is the per-server-type switching-wear parameters of
// spec.md §4.2: beta_k = energy_cost*(epsilon + delta*phi_max) + tau + rho.
type SwitchingCost struct {
	EnergyCost float64 // average cost per unit of energy
	PhiMin     float64 // power consumed when idling
	PhiMax     float64 // power consumed at full load
	Epsilon    float64 // additional energy consumed toggling a server on/off
	Delta      float64 // time slots required to migrate connections/data
	Tau        float64 // wear-and-tear cost of toggling a server
	Rho        float64 // perceived risk of toggling a server
}

// SwitchingCost computes beta_k, grounded on
// original_source/implementation/src/model/data_center/models/switching_cost.rs
// (read in full).
func (s SwitchingCost) SwitchingCost() float64 {
	return s.EnergyCost*(s.Epsilon+s.Delta*s.PhiMax) + s.Tau + s.Rho
}

// NormalizedSwitchingCost measures, for a time slot of length slotLength,
// the minimum duration a server must stay asleep to outweigh the cost of
// toggling it: referred to as xi in the paper.
func (s SwitchingCost) NormalizedSwitchingCost(slotLength float64) float64 {
	return s.SwitchingCost() / (s.EnergyCost * slotLength * s.PhiMin)
}

// FromNormalized builds a SwitchingCost whose normalized switching cost
// matches the given target, by solving for Rho with every other wear term
// zeroed out.
func FromNormalized(slotLength, normalizedSwitchingCost, energyCost, phiMin float64) SwitchingCost {
	return SwitchingCost{
		EnergyCost: energyCost,
		PhiMin:     phiMin,
		Rho:        normalizedSwitchingCost * energyCost * slotLength * phiMin,
	}
}

// SwitchingCostModel maps each server type (by key) to its switching-cost
// parameters.
type SwitchingCostModel struct {
	models map[string]SwitchingCost
}

// NewSwitchingCostModel builds a model from a per-server-type parameter map.
func NewSwitchingCostModel(models map[string]SwitchingCost) SwitchingCostModel {
	return SwitchingCostModel{models: models}
}

// SwitchingCosts returns beta_k for every server type in order.
func (m SwitchingCostModel) SwitchingCosts(serverTypes []ServerType) []float64 {
	out := make([]float64, len(serverTypes))
	for i, st := range serverTypes {
		out[i] = m.models[st.Key].SwitchingCost()
	}
	return out
}

// NormalizedSwitchingCosts returns xi_k for every server type in order.
func (m SwitchingCostModel) NormalizedSwitchingCosts(slotLength float64, serverTypes []ServerType) []float64 {
	out := make([]float64, len(serverTypes))
	for i, st := range serverTypes {
		out[i] = m.models[st.Key].NormalizedSwitchingCost(slotLength)
	}
	return out
}
