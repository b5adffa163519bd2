package lcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/online"
	"github.com/jonhue/scosim/problem"
)

func constantTargetProblem(tEnd int, target float64) problem.SSCO[float64] {
	hitting := costfn.Stretch(1, tEnd, costfn.Certain(func(t int, x scosim.Config[float64]) float64 {
		diff := x.Get(1) - target
		if diff < 0 {
			diff = -diff
		}
		return diff * diff
	}))
	return problem.SSCO[float64]{D: 1, TEnd: tEnd, M: []float64{10}, HittingCost: hitting, Beta: []float64{1}}
}

func TestLCP_Fractional_StaysWithinCapacity(t *testing.T) {
	p := constantTargetProblem(3, 7)
	o := problem.NewOnline[float64](p, 0)

	xs, _, err := online.OfflineStream[float64, problem.SSCO[float64], []Memory[float64], struct{}](
		online.Algorithm[float64, problem.SSCO[float64], []Memory[float64], struct{}](Fractional),
		&o, nil, struct{}{}, 3,
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, xs.Len())
	for slot := 1; slot <= 3; slot++ {
		x := xs.At(slot).Get(1)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 10.0)
	}
}

func TestFindInitialTime_DefaultsToOrigin(t *testing.T) {
	tStart, xStart := findInitialTime([]Memory[float64]{})
	assert.Equal(t, 0, tStart)
	assert.Equal(t, 0.0, xStart)
}
