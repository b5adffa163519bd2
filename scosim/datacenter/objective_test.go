package datacenter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim"
)

func homogeneousModel() Model {
	return Single(
		1,
		map[string]int{DefaultKey: 4},
		[]ServerType{NewServerType(DefaultKey)},
		ConstJobType(DefaultKey, 0.1),
		NewEnergyConsumptionModel(map[string]EnergyConsumption{DefaultKey: {Kind: Linear, PhiMin: 1, PhiMax: 10}}),
		NewLinearEnergyCostModel(func(int) float64 { return 1 }),
		NewRevenueLossModel(map[string]MinimalDetectableDelay{DefaultKey: {Gamma: 1, Delta: 0}}),
		NewSwitchingCostModel(map[string]SwitchingCost{DefaultKey: {EnergyCost: 1, PhiMax: 10, Epsilon: 1, Tau: 0, Rho: 0}}),
	)
}

func TestObjectiveFn_FiniteForActiveServer(t *testing.T) {
	m := homogeneousModel()
	x := scosim.NewConfig([]float64{2})
	lambda := scosim.SingleLoadProfile(1)
	zs := scosim.NewLoadFractions(nil, 1, 1)

	cost, err := ObjectiveFn(m, 1, x, lambda, zs)
	assert.NoError(t, err)
	assert.False(t, math.IsInf(cost, 0))
	assert.Greater(t, cost, 0.0)
}

func TestObjectiveFn_LoadToInactiveServerFails(t *testing.T) {
	m := homogeneousModel()
	x := scosim.NewConfig([]float64{0})
	lambda := scosim.SingleLoadProfile(1)
	zs := scosim.NewLoadFractions(nil, 1, 1)

	_, err := ObjectiveFn(m, 1, x, lambda, zs)
	assert.Error(t, err)
}

func TestOptimizeLoadFractions_MinimizesHitCost(t *testing.T) {
	m := homogeneousModel()
	x := scosim.NewConfig([]float64{2})
	lambda := scosim.SingleLoadProfile(1)

	cost := OptimizeLoadFractions[float64](m.D(), m.E(), func(t int, x scosim.Config[float64], lambda scosim.LoadProfile, zs scosim.LoadFractions) (float64, error) {
		return ObjectiveFn(m, t, x, lambda, zs)
	}, lambda, 1, x)

	assert.False(t, math.IsInf(cost, 0))
}

func TestToSSCO_ProducesVerifiableProblem(t *testing.T) {
	m := homogeneousModel()
	loads := []scosim.LoadProfile{scosim.SingleLoadProfile(1), scosim.SingleLoadProfile(2)}

	p := ToSSCO[float64](m, loads)
	assert.NoError(t, p.Verify())
	assert.Equal(t, 1, p.D)
	assert.Equal(t, 2, p.TEnd)
	assert.Equal(t, []float64{4}, p.M)
}

func TestToSBLO_RequiresHomogeneousModel(t *testing.T) {
	m := Network(1, []Location{{Key: "a"}, {Key: "b"}}, []ServerType{NewServerType(DefaultKey)},
		[]Source{ConstSource(DefaultKey, 0)}, []JobType{ConstJobType(DefaultKey, 0.1)},
		NewEnergyConsumptionModel(nil), NewLinearEnergyCostModel(func(int) float64 { return 1 }),
		NewRevenueLossModel(nil), NewSwitchingCostModel(nil))

	_, err := ToSBLO[float64](m, nil)
	assert.Error(t, err)
}
