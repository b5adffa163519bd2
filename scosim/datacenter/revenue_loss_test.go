package datacenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevenueLoss_ZeroBelowMinimalDetectableDelay(t *testing.T) {
	model := NewRevenueLossModel(map[string]MinimalDetectableDelay{
		"web": {Gamma: 2, Delta: 1},
	})
	jt := JobType{Key: "web"}
	assert.Equal(t, 0.0, model.Loss(1, jt, 0.5))
}

func TestRevenueLoss_LinearAboveMinimalDetectableDelay(t *testing.T) {
	model := NewRevenueLossModel(map[string]MinimalDetectableDelay{
		"web": {Gamma: 2, Delta: 1},
	})
	jt := JobType{Key: "web"}
	assert.Equal(t, 2.0*1.5, model.Loss(1, jt, 2.5))
}
