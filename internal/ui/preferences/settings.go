package preferences

import (
	"time"

	"stagetimer/internal/core/model"
)

// Settings defines application preferences that survive restarts.
type Settings struct {
	TimerName string
	Muted     bool

	AlertThreshold     time.Duration
	LongLoopThreshold  time.Duration
	LongTotalThreshold time.Duration
	StartCueWindow     time.Duration
	RestoreDelay       time.Duration
	AddTimeStep        time.Duration
}

// DefaultTimerName is shown until the user renames the timer.
const DefaultTimerName = "pupus"

// DefaultSettings returns default settings for StageTimer.
func DefaultSettings() Settings {
	policy := model.DefaultCountdownPolicy()
	return Settings{
		TimerName:          DefaultTimerName,
		Muted:              false,
		AlertThreshold:     policy.AlertThreshold,
		LongLoopThreshold:  policy.LongLoopThreshold,
		LongTotalThreshold: policy.LongTotalThreshold,
		StartCueWindow:     policy.StartCueWindow,
		RestoreDelay:       policy.RestoreDelay,
		AddTimeStep:        policy.AddTimeStep,
	}
}

// CountdownPolicy converts settings to the state machine policy.
func (settings Settings) CountdownPolicy() model.CountdownPolicy {
	return model.CountdownPolicy{
		AlertThreshold:     settings.AlertThreshold,
		LongLoopThreshold:  settings.LongLoopThreshold,
		LongTotalThreshold: settings.LongTotalThreshold,
		StartCueWindow:     settings.StartCueWindow,
		RestoreDelay:       settings.RestoreDelay,
		AddTimeStep:        settings.AddTimeStep,
		TickInterval:       time.Second,
	}.Normalize()
}
