package datacenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchingCost_ComposesEnergyWearAndRisk(t *testing.T) {
	sc := SwitchingCost{EnergyCost: 2, PhiMax: 10, Epsilon: 1, Delta: 2, Tau: 3, Rho: 4}
	// beta = energy_cost*(epsilon + delta*phi_max) + tau + rho
	//      = 2*(1 + 2*10) + 3 + 4 = 2*21 + 7 = 49
	assert.Equal(t, 49.0, sc.SwitchingCost())
}

func TestSwitchingCost_FromNormalizedRoundTrips(t *testing.T) {
	sc := FromNormalized(1, 0.5, 2, 10)
	assert.InDelta(t, 0.5, sc.NormalizedSwitchingCost(1), 1e-9)
}

func TestSwitchingCostModel_PerServerType(t *testing.T) {
	model := NewSwitchingCostModel(map[string]SwitchingCost{
		"small": {EnergyCost: 1, PhiMax: 1, Epsilon: 0, Delta: 0, Tau: 0, Rho: 1},
		"large": {EnergyCost: 1, PhiMax: 1, Epsilon: 0, Delta: 0, Tau: 0, Rho: 5},
	})
	sts := []ServerType{NewServerType("small"), NewServerType("large")}
	got := model.SwitchingCosts(sts)
	assert.Equal(t, []float64{1, 5}, got)
}
