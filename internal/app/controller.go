package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stagetimer/internal/core/countdown"
	"stagetimer/internal/core/settings"
	"stagetimer/internal/core/theme"
	"stagetimer/internal/history"
	"stagetimer/internal/logutil"
	"stagetimer/internal/ui/preferences"
)

// History records countdown runs. Failures are logged and never reach the
// timer.
type History interface {
	Begin(total time.Duration) (string, error)
	Extend(runID string, total time.Duration) error
	Finish(runID string) error
	Abandon(runID string) error
	Summary(day time.Time) (history.Summary, error)
}

// PreferenceStore persists application preferences.
type PreferenceStore interface {
	Save(settings preferences.Settings) error
}

// Controller is the single entry point the UI talks to.
type Controller struct {
	machine    *countdown.Machine
	themes     *settings.Store
	prefsStore PreferenceStore
	history    History

	mu        sync.Mutex
	prefs     preferences.Settings
	runID     string
	runTotal  time.Duration
	listeners []func(countdown.Event)
}

// New wires a controller. prefsStore and hist may be nil.
func New(machine *countdown.Machine, themes *settings.Store, prefsStore PreferenceStore, hist History, prefs preferences.Settings) *Controller {
	controller := &Controller{
		machine:    machine,
		themes:     themes,
		prefsStore: prefsStore,
		history:    hist,
		prefs:      prefs,
	}
	if prefs.Muted {
		machine.SetMuted(true)
	}
	return controller
}

// Run forwards machine events to history and listeners until ctx is done or
// the machine stops.
func (controller *Controller) Run(ctx context.Context) {
	events := controller.machine.Subscribe(16)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			controller.handle(event)
		}
	}
}

// OnEvent registers a listener for machine events. Listeners run on the
// controller goroutine.
func (controller *Controller) OnEvent(listener func(countdown.Event)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.listeners = append(controller.listeners, listener)
}

// OnThemeChange registers a theme observer.
func (controller *Controller) OnThemeChange(observer func(theme.Settings)) {
	controller.themes.OnChange(observer)
}

// Status returns the current countdown state.
func (controller *Controller) Status() countdown.Status {
	return controller.machine.Status()
}

// Theme returns the current theme.
func (controller *Controller) Theme() theme.Settings {
	return controller.themes.Current()
}

// Preferences returns the current preferences.
func (controller *Controller) Preferences() preferences.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.prefs
}

// StartPause toggles between running and paused.
func (controller *Controller) StartPause() {
	controller.machine.Toggle()
}

// Reset stops the countdown and clears it.
func (controller *Controller) Reset() {
	controller.machine.Reset()
}

// AddTime adds one step to the countdown.
func (controller *Controller) AddTime() {
	controller.machine.AddTime()
}

// SetMuted gates both sounds and remembers the choice.
func (controller *Controller) SetMuted(muted bool) {
	controller.machine.SetMuted(muted)
	controller.updatePreferences(func(prefs *preferences.Settings) {
		prefs.Muted = muted
	})
}

// ToggleMute flips the mute state.
func (controller *Controller) ToggleMute() {
	controller.SetMuted(!controller.machine.Status().Muted)
}

// SelectPreset replaces the whole theme with the named preset.
func (controller *Controller) SelectPreset(name string) error {
	preset, ok := theme.PresetByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	if !controller.machine.UnlessAlert(func() { controller.themes.Set(preset) }) {
		return ErrAlertLocked
	}
	return nil
}

// UpdateTheme merges patch into the current theme.
func (controller *Controller) UpdateTheme(patch theme.Patch) error {
	if !controller.machine.UnlessAlert(func() { controller.themes.Update(patch) }) {
		return ErrAlertLocked
	}
	return nil
}

// SetTimerName renames the timer. Blank names fall back to the default.
func (controller *Controller) SetTimerName(name string) {
	if strings.TrimSpace(name) == "" {
		name = preferences.DefaultTimerName
	}
	controller.updatePreferences(func(prefs *preferences.Settings) {
		prefs.TimerName = name
	})
}

// UpdatePreferences replaces the countdown policy and persists it.
func (controller *Controller) UpdatePreferences(updated preferences.Settings) {
	controller.machine.UpdatePolicy(updated.CountdownPolicy())
	controller.updatePreferences(func(prefs *preferences.Settings) {
		muted := prefs.Muted
		*prefs = updated
		prefs.Muted = muted
	})
}

// Summary describes today's finished countdowns.
func (controller *Controller) Summary(now time.Time) string {
	if controller.history == nil {
		return ""
	}
	summary, err := controller.history.Summary(now)
	if err != nil {
		logutil.LogError("history: summary", err)
		return ""
	}
	return summary.Describe(now)
}

// Shutdown stops the machine and abandons an open run.
func (controller *Controller) Shutdown() {
	controller.machine.Stop()

	controller.mu.Lock()
	runID := controller.runID
	controller.runID = ""
	controller.mu.Unlock()

	if runID != "" && controller.history != nil {
		logutil.LogError("history: abandon", controller.history.Abandon(runID))
	}
}

func (controller *Controller) updatePreferences(change func(*preferences.Settings)) {
	controller.mu.Lock()
	change(&controller.prefs)
	prefs := controller.prefs
	controller.mu.Unlock()

	if controller.prefsStore != nil {
		logutil.LogError("preferences: save", controller.prefsStore.Save(prefs))
	}
}

func (controller *Controller) handle(event countdown.Event) {
	controller.record(event)

	controller.mu.Lock()
	listeners := append(([]func(countdown.Event))(nil), controller.listeners...)
	controller.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// record maps machine events onto history runs. A run opens on the first
// start and closes on expiry or reset.
func (controller *Controller) record(event countdown.Event) {
	if controller.history == nil {
		return
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch {
	case event.Type == countdown.EventExpired:
		if controller.runID != "" {
			logutil.LogError("history: finish", controller.history.Finish(controller.runID))
			controller.runID = ""
		}
	case event.Type == countdown.EventStateChange && event.State.Running():
		if controller.runID == "" {
			runID, err := controller.history.Begin(event.Total)
			if err != nil {
				logutil.LogError("history: begin", err)
				return
			}
			controller.runID = runID
			controller.runTotal = event.Total
		}
	case event.Type == countdown.EventStateChange && event.State == countdown.StateIdle:
		if controller.runID != "" {
			logutil.LogError("history: abandon", controller.history.Abandon(controller.runID))
			controller.runID = ""
		}
	case event.Type == countdown.EventTick:
		if controller.runID != "" && event.Total != controller.runTotal {
			logutil.LogError("history: extend", controller.history.Extend(controller.runID, event.Total))
			controller.runTotal = event.Total
		}
	}
}
