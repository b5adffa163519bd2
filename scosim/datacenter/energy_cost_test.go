package datacenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyCost_Linear(t *testing.T) {
	model := NewLinearEnergyCostModel(func(t int) float64 { return 3 })
	loc := Location{Key: "x"}
	assert.Equal(t, 3.0*10, model.Cost(1, loc, 10))
}

func TestEnergyCost_Quotas_WithinSingleSourceLimit(t *testing.T) {
	model := NewQuotasEnergyCostModel([]EnergySource{
		{Cost: func(int) float64 { return 2 }, Profit: func(int) float64 { return 0 }, Limit: 100},
	})
	loc := Location{Key: "x"}

	// Demand 10 entirely within the source's limit: cost is rate*consumed,
	// and the unused 90 units are credited at profit rate 0.
	assert.Equal(t, 2.0*10, model.Cost(1, loc, 10))
}

func TestEnergyCost_Quotas_OrdersByCostPlusProfitAndSpillsOver(t *testing.T) {
	cheap := EnergySource{Cost: func(int) float64 { return 1 }, Profit: func(int) float64 { return 0 }, Limit: 5}
	expensive := EnergySource{Cost: func(int) float64 { return 5 }, Profit: func(int) float64 { return 0 }, Limit: 100}
	model := NewQuotasEnergyCostModel([]EnergySource{expensive, cheap})
	loc := Location{Key: "x"}

	// Demand 10: first 5 units from the cheap source (cost 1 each), the
	// remaining 5 from the expensive source (cost 5 each).
	got := model.Cost(1, loc, 10)
	assert.Equal(t, 1.0*5+5.0*5, got)
}

func TestEnergyCost_Quotas_CreditsUnusedSupplyAtProfitRate(t *testing.T) {
	model := NewQuotasEnergyCostModel([]EnergySource{
		{Cost: func(int) float64 { return 2 }, Profit: func(int) float64 { return 1 }, Limit: 10},
	})
	loc := Location{Key: "x"}

	// Demand 4 out of a 10-unit source: 4 units charged at cost 2, the
	// unused 6 units credited at profit rate 1.
	got := model.Cost(1, loc, 4)
	assert.Equal(t, 2.0*4-1.0*6, got)
}
