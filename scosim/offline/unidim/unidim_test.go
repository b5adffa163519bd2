package unidim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/problem"
)

func stepUpProblem(tEnd int, target int64) problem.SSCO[int64] {
	hitting := costfn.Stretch(1, tEnd, costfn.Certain(func(t int, x scosim.Config[int64]) float64 {
		diff := x.Get(1) - target
		if diff < 0 {
			diff = -diff
		}
		return float64(diff)
	}))
	return problem.SSCO[int64]{D: 1, TEnd: tEnd, M: []float64{8}, HittingCost: hitting, Beta: []float64{1}}
}

func TestOptimalGraphSearch_ConvergesOnConstantTarget(t *testing.T) {
	p := stepUpProblem(3, 4)
	path, err := OptimalGraphSearch(p, Options{XStart: 0}, false, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, path.Xs.Len())
	assert.Equal(t, int64(4), path.Xs.At(3).Get(1))
}

func TestOptimalGraphSearch_RejectsMultiDimensional(t *testing.T) {
	p := stepUpProblem(3, 4)
	p.D = 2
	_, err := OptimalGraphSearch(p, Options{XStart: 0}, false, 1)
	assert.Error(t, err)
}

func TestMakePow2_ExtendsNonPowerOfTwoBound(t *testing.T) {
	p := stepUpProblem(2, 3)
	p.M = []float64{6}
	extended := MakePow2(p)
	assert.Equal(t, 8.0, extended.M[0])
}

func TestBRCP_ProjectsWithinEnvelope(t *testing.T) {
	hitting := costfn.Stretch(1, 3, costfn.Certain(func(t int, x scosim.Config[float64]) float64 {
		diff := x.Get(1) - 5.0
		if diff < 0 {
			diff = -diff
		}
		return diff
	}))
	p := problem.SSCO[float64]{D: 1, TEnd: 3, M: []float64{10}, HittingCost: hitting, Beta: []float64{1}}
	result, err := BRCP(p, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Xs.Len())
	for slot := 1; slot <= 3; slot++ {
		x := result.Xs.At(slot).Get(1)
		assert.GreaterOrEqual(t, x, result.Bounds[slot-1].Lower)
		assert.LessOrEqual(t, x, result.Bounds[slot-1].Upper)
	}
}
