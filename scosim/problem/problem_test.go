package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
)

func newSSCO() SSCO[float64] {
	hitting := costfn.Stretch(1, 3, costfn.Certain(func(t int, x scosim.Config[float64]) float64 {
		return x.Get(1) * x.Get(1)
	}))
	return SSCO[float64]{D: 1, TEnd: 3, M: []float64{10}, HittingCost: hitting, Beta: []float64{2}}
}

func TestSSCO_HitCost(t *testing.T) {
	p := newSSCO()
	assert.Equal(t, 9.0, p.HitCost(1, scosim.SingleConfig(3.0)))
}

func TestSSCO_HitCost_OutOfBounds(t *testing.T) {
	p := newSSCO()
	assert.True(t, math.IsInf(p.HitCost(1, scosim.SingleConfig(11.0)), 1))
}

func TestSSCO_Movement_PowersUpChargedNotDown(t *testing.T) {
	p := newSSCO()
	up := p.Movement(scosim.SingleConfig(2.0), scosim.SingleConfig(5.0), false)
	down := p.Movement(scosim.SingleConfig(5.0), scosim.SingleConfig(2.0), false)
	assert.Equal(t, 6.0, up) // beta * (5-2)
	assert.Equal(t, 0.0, down)
}

func TestSSCO_Movement_Inverted(t *testing.T) {
	p := newSSCO()
	up := p.Movement(scosim.SingleConfig(2.0), scosim.SingleConfig(5.0), true)
	down := p.Movement(scosim.SingleConfig(5.0), scosim.SingleConfig(2.0), true)
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 6.0, down)
}

func TestSSCO_Verify_RejectsNonPositiveBound(t *testing.T) {
	p := newSSCO()
	p.M = []float64{0}
	assert.Error(t, p.Verify())
}

func TestSSCO_Verify_RejectsDimensionMismatch(t *testing.T) {
	p := newSSCO()
	p.Beta = []float64{1, 2}
	assert.Error(t, p.Verify())
}

func TestSLO_Verify_RequiresDescendingHittingCosts(t *testing.T) {
	p := SLO[float64]{
		D: 2, TEnd: 1,
		M: []float64{10, 10}, Beta: []float64{1, 2},
		C: []float64{1, 2}, // ascending: invalid
		Load: []float64{5},
	}
	assert.Error(t, p.Verify())
}

func TestSLO_Verify_RejectsInefficientDimension(t *testing.T) {
	p := SLO[float64]{
		D: 2, TEnd: 1,
		M: []float64{10, 10}, Beta: []float64{2, 1},
		C:    []float64{5, 1}, // descending, fine
		Load: []float64{5},
	}
	// dimension 2 is dominated: cheaper to switch AND cheaper to run -> inefficient
	assert.Error(t, p.Verify())
}

func TestSLO_Verify_AcceptsEfficientFrontier(t *testing.T) {
	p := SLO[float64]{
		D: 2, TEnd: 1,
		M: []float64{10, 10}, Beta: []float64{1, 3},
		C:    []float64{5, 1},
		Load: []float64{5},
	}
	assert.NoError(t, p.Verify())
}

func TestSLO_HitCost_DemandExceedingSupplyIsInfinite(t *testing.T) {
	p := SLO[float64]{
		D: 1, TEnd: 1,
		M: []float64{10}, Beta: []float64{1},
		C: []float64{2}, Load: []float64{5},
	}
	assert.True(t, math.IsInf(p.HitCost(1, scosim.SingleConfig(3.0)), 1))
	assert.Equal(t, 10.0, p.HitCost(1, scosim.SingleConfig(5.0)))
}

func TestSLO_ToSSCO_ObjectiveEquivalenceWhenFeasible(t *testing.T) {
	slo := SLO[float64]{
		D: 1, TEnd: 1,
		M: []float64{10}, Beta: []float64{1},
		C: []float64{2}, Load: []float64{5},
	}
	ssco := slo.ToSSCO()
	x := scosim.SingleConfig(5.0)
	assert.Equal(t, slo.HitCost(1, x), ssco.HitCost(1, x))
}

func TestSLO_ToSSCO_BothInfiniteWhenInfeasible(t *testing.T) {
	slo := SLO[float64]{
		D: 1, TEnd: 1,
		M: []float64{10}, Beta: []float64{1},
		C: []float64{2}, Load: []float64{5},
	}
	ssco := slo.ToSSCO()
	x := scosim.SingleConfig(3.0)
	sloCost := slo.HitCost(1, x)
	sscoCost := ssco.HitCost(1, x)
	assert.True(t, math.IsInf(sloCost, 1))
	assert.True(t, math.IsInf(sscoCost, 1))
}

func TestSBLO_HitCost_ZeroCapacityWithLoadIsInfinite(t *testing.T) {
	p := SBLO[float64]{
		D: 1, TEnd: 1,
		M: []float64{10}, Beta: []float64{1},
		Load: [][]float64{{5}},
		G:    []func(float64) float64{func(u float64) float64 { return u }},
	}
	assert.True(t, math.IsInf(p.HitCost(1, scosim.SingleConfig(0.0)), 1))
}

func TestSBLO_HitCost_ZeroCapacityNoLoadIsZero(t *testing.T) {
	p := SBLO[float64]{
		D: 1, TEnd: 1,
		M: []float64{10}, Beta: []float64{1},
		Load: [][]float64{{0}},
		G:    []func(float64) float64{func(u float64) float64 { return u }},
	}
	assert.Equal(t, 0.0, p.HitCost(1, scosim.SingleConfig(0.0)))
}

func TestOnline_IncTEndWidensWrappedProblemHorizon(t *testing.T) {
	p := newSSCO()
	o := NewOnline[float64](p, 2)
	assert.Equal(t, 2, o.TEnd())
	o = o.IncTEnd()
	assert.Equal(t, 3, o.TEnd())
	assert.Equal(t, 3, o.P.TEnd)
}

func TestSumOverSchedule_AccumulatesHitAndMovement(t *testing.T) {
	p := newSSCO()
	xs := scosim.EmptySchedule[float64]()
	xs.Push(scosim.SingleConfig(2.0))
	xs.Push(scosim.SingleConfig(5.0))
	hit, movement := SumOverSchedule[float64](p, scosim.SingleConfig(0.0), xs, false)
	assert.Equal(t, 4.0+25.0, hit)
	assert.Equal(t, 2.0*2+2.0*3, movement) // beta*(2-0) + beta*(5-2)
}
