package model

import "time"

// CountdownPolicy holds the thresholds that drive the countdown state machine.
type CountdownPolicy struct {
	// AlertThreshold is the remaining time at which alert mode begins.
	AlertThreshold time.Duration
	// LongLoopThreshold starts the loop sound early for long countdowns.
	LongLoopThreshold time.Duration
	// LongTotalThreshold is the total duration above which LongLoopThreshold applies.
	LongTotalThreshold time.Duration
	// StartCueWindow starts the loop sound on Start when remaining is inside it.
	StartCueWindow time.Duration
	// RestoreDelay separates expiry from the deferred theme restoration.
	RestoreDelay time.Duration
	// AddTimeStep is added by each AddTime call.
	AddTimeStep time.Duration
	// TickInterval is the wall-clock period of one tick.
	TickInterval time.Duration
}

// DefaultCountdownPolicy returns the stock thresholds.
func DefaultCountdownPolicy() CountdownPolicy {
	return CountdownPolicy{
		AlertThreshold:     5 * time.Minute,
		LongLoopThreshold:  10 * time.Minute,
		LongTotalThreshold: 20 * time.Minute,
		StartCueWindow:     15 * time.Minute,
		RestoreDelay:       3 * time.Second,
		AddTimeStep:        5 * time.Minute,
		TickInterval:       time.Second,
	}
}

// Normalize replaces non-positive fields with their defaults.
func (policy CountdownPolicy) Normalize() CountdownPolicy {
	defaults := DefaultCountdownPolicy()
	if policy.AlertThreshold <= 0 {
		policy.AlertThreshold = defaults.AlertThreshold
	}
	if policy.LongLoopThreshold <= 0 {
		policy.LongLoopThreshold = defaults.LongLoopThreshold
	}
	if policy.LongTotalThreshold <= 0 {
		policy.LongTotalThreshold = defaults.LongTotalThreshold
	}
	if policy.StartCueWindow <= 0 {
		policy.StartCueWindow = defaults.StartCueWindow
	}
	if policy.RestoreDelay <= 0 {
		policy.RestoreDelay = defaults.RestoreDelay
	}
	if policy.AddTimeStep <= 0 {
		policy.AddTimeStep = defaults.AddTimeStep
	}
	if policy.TickInterval <= 0 {
		policy.TickInterval = defaults.TickInterval
	}
	return policy
}

// Seconds converts a policy duration to whole countdown seconds.
func Seconds(value time.Duration) int {
	return int(value / time.Second)
}
