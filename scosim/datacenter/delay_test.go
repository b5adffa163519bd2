package datacenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonhue/scosim/errs"
)

func TestAverageDelay_IncreasesWithUtilization(t *testing.T) {
	low, err := AverageDelay(10, 1, 2)
	assert.NoError(t, err)
	high, err := AverageDelay(10, 4, 2)
	assert.NoError(t, err)
	assert.Greater(t, high, low)
}

func TestAverageDelay_ZeroWhenNoJobs(t *testing.T) {
	d, err := AverageDelay(10, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestAverageDelay_InfiniteWhenUtilizationAtOrAboveOne(t *testing.T) {
	_, err := AverageDelay(10, 5, 2)
	assert.Error(t, err)
	var infErr *errs.InfiniteDelay
	assert.ErrorAs(t, err, &infErr)
}
