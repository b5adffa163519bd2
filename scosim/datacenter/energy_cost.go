package datacenter

import (
	"math"
	"sort"
)

// pos is the positive part, used throughout the data-center cost sub-models.
func pos(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// EnergySource is one electricity source available under a Quotas cost
// model: a time-varying marginal cost and profit rate, and a fixed supply
// limit. Grounded on
// original_source/soco/src/model/data_center/models/energy_cost.rs (read
// in full).
type EnergySource struct {
	Cost   func(t int) float64 // marginal cost per unit of energy
	Profit func(t int) float64 // credited profit rate per unit of unused supply
	Limit  float64             // maximum energy this source can supply per slot
}

// EnergyCostKind selects the pricing model of spec.md §4.2.
type EnergyCostKind int

const (
	// LinearCost prices every unit of energy at a single time-varying rate.
	LinearCost EnergyCostKind = iota
	// QuotasCost draws from a list of sources in increasing order of
	// marginal-cost-plus-profit, charging each up to its limit and
	// crediting unused supply at its profit rate.
	QuotasCost
)

// EnergyCostModel is either a single linear rate or a quota-ordered list of
// sources.
type EnergyCostModel struct {
	Kind    EnergyCostKind
	Linear  func(t int) float64
	Sources []EnergySource
}

// NewLinearEnergyCostModel builds a model that prices every unit of energy
// at cost(t).
func NewLinearEnergyCostModel(cost func(t int) float64) EnergyCostModel {
	return EnergyCostModel{Kind: LinearCost, Linear: cost}
}

// NewQuotasEnergyCostModel builds a model that draws from sources in
// increasing marginal-cost-plus-profit order.
func NewQuotasEnergyCostModel(sources []EnergySource) EnergyCostModel {
	return EnergyCostModel{Kind: QuotasCost, Sources: sources}
}

// Cost computes the total energy cost of drawing power p during slot t at
// the given location. The Quotas branch sorts sources by cost(t)+profit(t)
// ascending and consumes them in order: each source is charged
// cost(t) * min(delta, limit) for the energy it actually supplies (delta,
// the portion of cumulative demand still unmet when this source is
// reached), and credited profit(t) * pos(limit - delta) for supply it
// leaves unused. The literal original expression adds a marginal rate
// directly to an absolute quantity (source.cost(t) + min(delta, limit)),
// which is dimensionally inconsistent; this port multiplies instead,
// matching every other rate-times-quantity term in the same formula (see
// DESIGN.md).
func (m EnergyCostModel) Cost(t int, _ Location, p float64) float64 {
	if m.Kind == LinearCost {
		return m.Linear(t) * p
	}

	sources := make([]EnergySource, len(m.Sources))
	copy(sources, m.Sources)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Cost(t)+sources[i].Profit(t) < sources[j].Cost(t)+sources[j].Profit(t)
	})

	var result, cumLimit float64
	for _, src := range sources {
		delta := pos(p - cumLimit)
		consumed := math.Min(delta, src.Limit)
		result += src.Cost(t)*consumed - src.Profit(t)*pos(src.Limit-delta)
		cumLimit += src.Limit
	}
	return result
}
