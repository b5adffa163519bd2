package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim"
	"github.com/jonhue/scosim/costfn"
	"github.com/jonhue/scosim/problem"
)

func TestFindBoundFractional_LowerNeverExceedsUpper(t *testing.T) {
	hitting := costfn.Stretch(1, 3, costfn.Certain(func(t int, x scosim.Config[float64]) float64 {
		diff := x.Get(1) - 5.0
		if diff < 0 {
			diff = -diff
		}
		return diff
	}))
	p := problem.SSCO[float64]{D: 1, TEnd: 3, M: []float64{10}, HittingCost: hitting, Beta: []float64{1}}

	lower, err := FindLowerBoundFractional(p, 2, 0, 0)
	assert.NoError(t, err)
	upper, err := FindUpperBoundFractional(p, 2, 0, 0)
	assert.NoError(t, err)
	assert.LessOrEqual(t, lower, upper)
}

func TestFindBoundFractional_RejectsMultiDimensional(t *testing.T) {
	p := problem.SSCO[float64]{D: 2, TEnd: 3, M: []float64{10, 10}, Beta: []float64{1, 1}}
	_, err := FindLowerBoundFractional(p, 2, 0, 0)
	assert.Error(t, err)
}

func TestFindBoundFractional_ZeroAtNonPositiveTime(t *testing.T) {
	p := problem.SSCO[float64]{D: 1, TEnd: 3, M: []float64{10}, Beta: []float64{1}}
	v, err := FindLowerBoundFractional(p, 0, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v)
}
