package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFillsMissingFields(t *testing.T) {
	policy := CountdownPolicy{AlertThreshold: time.Minute}.Normalize()
	defaults := DefaultCountdownPolicy()

	assert.Equal(t, time.Minute, policy.AlertThreshold)
	assert.Equal(t, defaults.LongLoopThreshold, policy.LongLoopThreshold)
	assert.Equal(t, defaults.LongTotalThreshold, policy.LongTotalThreshold)
	assert.Equal(t, defaults.StartCueWindow, policy.StartCueWindow)
	assert.Equal(t, defaults.RestoreDelay, policy.RestoreDelay)
	assert.Equal(t, defaults.AddTimeStep, policy.AddTimeStep)
	assert.Equal(t, defaults.TickInterval, policy.TickInterval)
}

func TestDefaultPolicyInSeconds(t *testing.T) {
	policy := DefaultCountdownPolicy()
	assert.Equal(t, 300, Seconds(policy.AlertThreshold))
	assert.Equal(t, 600, Seconds(policy.LongLoopThreshold))
	assert.Equal(t, 1200, Seconds(policy.LongTotalThreshold))
	assert.Equal(t, 900, Seconds(policy.StartCueWindow))
	assert.Equal(t, 300, Seconds(policy.AddTimeStep))
}
