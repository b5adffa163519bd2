package datacenter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyConsumption_Linear(t *testing.T) {
	model := NewEnergyConsumptionModel(map[string]EnergyConsumption{
		"a": {Kind: Linear, PhiMin: 10, PhiMax: 100},
	})
	st := NewServerType("a")

	assert.Equal(t, 2*10.0, model.Consumption(2, st, 0))
	assert.Equal(t, 2*100.0, model.Consumption(2, st, 1))
	assert.Equal(t, 2*55.0, model.Consumption(2, st, 0.5))
}

func TestEnergyConsumption_SimplifiedLinear(t *testing.T) {
	model := NewEnergyConsumptionModel(map[string]EnergyConsumption{
		"a": {Kind: SimplifiedLinear, PhiMax: 100},
	})
	st := NewServerType("a")

	assert.Equal(t, 1*50.0, model.Consumption(1, st, 0))
	assert.Equal(t, 1*100.0, model.Consumption(1, st, 1))
}

func TestEnergyConsumption_NonLinear(t *testing.T) {
	model := NewEnergyConsumptionModel(map[string]EnergyConsumption{
		"a": {Kind: NonLinear, PhiMin: 5, Alpha: 2, Beta: 2},
	})
	st := ServerType{Key: "a", MaxUtilization: 2}

	got := model.Consumption(1, st, 2)
	assert.InDelta(t, 2*2.0/2+5, got, 1e-9)
}

func TestEnergyConsumption_MaxUtilizationGuard(t *testing.T) {
	model := NewEnergyConsumptionModel(map[string]EnergyConsumption{
		"a": {Kind: Linear, PhiMin: 0, PhiMax: 10},
	})
	st := ServerType{Key: "a", MaxUtilization: 0.8}

	assert.True(t, math.IsInf(model.Consumption(1, st, 0.9), 1))
	assert.False(t, math.IsInf(model.Consumption(1, st, 0.8), 1))
}
