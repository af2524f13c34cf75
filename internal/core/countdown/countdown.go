package countdown

import (
	"sync"
	"time"

	"stagetimer/internal/core/model"
	"stagetimer/internal/core/theme"
)

// ThemeHolder owns the current theme. The machine snapshots, overrides and
// restores it around alert mode.
type ThemeHolder interface {
	Current() theme.Settings
	Set(settings theme.Settings)
}

// Sounds plays the countdown cues. Implementations swallow playback errors.
type Sounds interface {
	StartLoop()
	StopLoop()
	PlayStop()
	SetMuted(muted bool)
}

// Machine is the countdown state machine.
type Machine struct {
	// transition serializes state changes together with their side effects.
	transition sync.Mutex
	mu         sync.Mutex

	policy model.CountdownPolicy
	theme  ThemeHolder
	sounds Sounds
	clock  Clock

	remaining int
	total     int
	running   bool
	alertMode bool
	expired   bool
	muted     bool

	// snapshot is the theme captured at the most recent alert entry. It is
	// replaced only by the next entry and applied on every reset.
	snapshot *theme.Settings

	restoreTimer Timer
	restoreSeq   uint64

	ticker  Ticker
	stopCh  chan struct{}
	tickSeq uint64

	events []chan Event
	closed bool
}

type effect func()

// New creates an idle Machine.
func New(policy model.CountdownPolicy, holder ThemeHolder, sounds Sounds) *Machine {
	return &Machine{
		policy: policy.Normalize(),
		theme:  holder,
		sounds: sounds,
		clock:  RealClock(),
	}
}

// SetClock injects the scheduling clock. Call before Start.
func (machine *Machine) SetClock(clock Clock) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.clock = clock
}

// UpdatePolicy replaces the thresholds. A running ticker keeps its interval
// until the next Start. Alert mode ends if remaining is now above the alert
// threshold.
func (machine *Machine) UpdatePolicy(policy model.CountdownPolicy) {
	machine.apply(func() []effect {
		machine.policy = policy.Normalize()
		if !machine.aboveAlertLocked() {
			return nil
		}
		effects := machine.leaveAlertLocked()
		return append(effects, machine.emitFn(EventStateChange))
	})
}

// Subscribe registers a new observer channel.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	if machine.closed {
		close(ch)
	} else {
		machine.events = append(machine.events, ch)
	}
	machine.mu.Unlock()
	return ch
}

// Status returns a copy of the current state.
func (machine *Machine) Status() Status {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.statusLocked()
}

// AlertMode reports whether the alert override is active. Callers check it
// before allowing manual theme changes.
func (machine *Machine) AlertMode() bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.alertMode
}

// UnlessAlert runs fn unless alert mode is active and reports whether it ran.
// fn is serialized with transitions, so an alert override cannot land
// between the check and the change.
func (machine *Machine) UnlessAlert(fn func()) bool {
	machine.transition.Lock()
	defer machine.transition.Unlock()

	if machine.AlertMode() {
		return false
	}
	fn()
	return true
}

// Start begins ticking. It is a no-op when nothing is left to count down.
func (machine *Machine) Start() {
	machine.apply(machine.startLocked)
}

// Pause stops ticking and silences the loop, keeping the remaining time.
func (machine *Machine) Pause() {
	machine.apply(machine.pauseLocked)
}

// Toggle pauses a running countdown and starts a stopped one.
func (machine *Machine) Toggle() {
	machine.apply(func() []effect {
		if machine.running {
			return machine.pauseLocked()
		}
		return machine.startLocked()
	})
}

// Reset returns to idle from any state and restores the theme captured at the
// most recent alert entry, if any.
func (machine *Machine) Reset() {
	machine.apply(func() []effect {
		machine.cancelRestoreLocked()
		machine.stopTickerLocked()
		machine.remaining = 0
		machine.total = 0
		machine.running = false

		machine.alertMode = false
		effects := []effect{machine.sounds.StopLoop}
		effects = append(effects, machine.restoreSnapshotLocked()...)
		return append(effects, machine.emitFn(EventStateChange))
	})
}

// AddTime extends the countdown by one step without changing the run state.
// Adding to an empty countdown starts a new total.
func (machine *Machine) AddTime() {
	machine.apply(func() []effect {
		if machine.remaining == 0 {
			machine.total = 0
		}
		step := model.Seconds(machine.policy.AddTimeStep)
		machine.remaining += step
		machine.total += step

		var effects []effect
		if machine.expired {
			machine.cancelRestoreLocked()
			effects = append(effects, machine.emitFn(EventStateChange))
		}
		if machine.aboveAlertLocked() {
			effects = append(effects, machine.leaveAlertLocked()...)
		}
		return append(effects, machine.emitFn(EventTick))
	})
}

// Tick advances the countdown by one second. It does nothing unless running.
func (machine *Machine) Tick() {
	machine.apply(machine.tickLocked)
}

// SetMuted gates both sounds without touching the timer.
func (machine *Machine) SetMuted(muted bool) {
	machine.apply(func() []effect {
		machine.muted = muted
		return []effect{
			func() { machine.sounds.SetMuted(muted) },
			machine.emitFn(EventMuted),
		}
	})
}

// Stop tears the machine down: ticker and pending restore are cancelled and
// observers are closed.
func (machine *Machine) Stop() {
	machine.transition.Lock()
	defer machine.transition.Unlock()

	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.closed = true
	machine.stopTickerLocked()
	machine.cancelRestoreLocked()
	machine.running = false
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	machine.sounds.StopLoop()
	for _, ch := range events {
		close(ch)
	}
}

func (machine *Machine) apply(step func() []effect) {
	machine.transition.Lock()
	defer machine.transition.Unlock()

	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	effects := step()
	machine.mu.Unlock()

	for _, run := range effects {
		run()
	}
}

func (machine *Machine) startLocked() []effect {
	if machine.running || machine.remaining <= 0 {
		return nil
	}
	machine.cancelRestoreLocked()
	machine.running = true

	var effects []effect
	if machine.remaining <= model.Seconds(machine.policy.AlertThreshold) && !machine.alertMode {
		effects = append(effects, machine.enterAlertLocked()...)
	}
	if machine.remaining <= model.Seconds(machine.policy.StartCueWindow) {
		effects = append(effects, machine.sounds.StartLoop)
	}
	machine.startTickerLocked()
	return append(effects, machine.emitFn(EventStateChange))
}

func (machine *Machine) pauseLocked() []effect {
	if !machine.running {
		return nil
	}
	machine.running = false
	machine.stopTickerLocked()
	return []effect{machine.sounds.StopLoop, machine.emitFn(EventStateChange)}
}

func (machine *Machine) tickLocked() []effect {
	if !machine.running {
		return nil
	}
	previous := machine.remaining
	alertAt := model.Seconds(machine.policy.AlertThreshold)

	var effects []effect
	if previous == alertAt && !machine.alertMode {
		effects = append(effects, machine.enterAlertLocked()...)
	}
	if previous == alertAt || machine.longCueLocked(previous) {
		effects = append(effects, machine.sounds.StartLoop)
	}
	if previous > 0 {
		machine.remaining = previous - 1
	}
	if machine.remaining == 0 {
		return append(effects, machine.expireLocked()...)
	}
	return append(effects, machine.emitFn(EventTick))
}

func (machine *Machine) longCueLocked(previous int) bool {
	return previous == model.Seconds(machine.policy.LongLoopThreshold) &&
		machine.total > model.Seconds(machine.policy.LongTotalThreshold)
}

func (machine *Machine) enterAlertLocked() []effect {
	current := machine.theme.Current()
	machine.snapshot = &current
	machine.alertMode = true
	override := current.Apply(theme.AlertPatch())
	return []effect{
		func() { machine.theme.Set(override) },
		machine.emitFn(EventAlert),
	}
}

func (machine *Machine) leaveAlertLocked() []effect {
	machine.alertMode = false
	return machine.restoreSnapshotLocked()
}

// restoreSnapshotLocked keeps the snapshot for later resets.
func (machine *Machine) restoreSnapshotLocked() []effect {
	if machine.snapshot == nil {
		return nil
	}
	saved := *machine.snapshot
	return []effect{func() { machine.theme.Set(saved) }}
}

func (machine *Machine) aboveAlertLocked() bool {
	return machine.alertMode && machine.remaining > model.Seconds(machine.policy.AlertThreshold)
}

func (machine *Machine) expireLocked() []effect {
	machine.running = false
	machine.expired = true
	machine.stopTickerLocked()

	machine.restoreSeq++
	seq := machine.restoreSeq
	machine.restoreTimer = machine.clock.AfterFunc(machine.policy.RestoreDelay, func() {
		machine.apply(func() []effect {
			return machine.restoreLocked(seq)
		})
	})

	return []effect{
		machine.sounds.StopLoop,
		machine.sounds.PlayStop,
		machine.emitFn(EventExpired),
	}
}

func (machine *Machine) restoreLocked(seq uint64) []effect {
	if seq != machine.restoreSeq || !machine.expired {
		return nil
	}
	machine.expired = false
	machine.restoreTimer = nil

	effects := machine.leaveAlertLocked()
	return append(effects, machine.sounds.PlayStop, machine.emitFn(EventRestored))
}

func (machine *Machine) cancelRestoreLocked() {
	if machine.restoreTimer != nil {
		machine.restoreTimer.Stop()
		machine.restoreTimer = nil
	}
	machine.restoreSeq++
	machine.expired = false
}

func (machine *Machine) startTickerLocked() {
	machine.stopTickerLocked()
	machine.tickSeq++
	ticker := machine.clock.NewTicker(machine.policy.TickInterval)
	stopCh := make(chan struct{})
	machine.ticker = ticker
	machine.stopCh = stopCh
	go machine.run(ticker, stopCh, machine.tickSeq)
}

func (machine *Machine) stopTickerLocked() {
	if machine.ticker == nil {
		return
	}
	machine.ticker.Stop()
	close(machine.stopCh)
	machine.ticker = nil
	machine.stopCh = nil
}

func (machine *Machine) run(ticker Ticker, stopCh <-chan struct{}, seq uint64) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			machine.apply(func() []effect {
				// A tick buffered before a pause must not leak into the next run.
				if seq != machine.tickSeq {
					return nil
				}
				return machine.tickLocked()
			})
		}
	}
}

func (machine *Machine) statusLocked() Status {
	return Status{
		State:     machine.stateLocked(),
		Remaining: time.Duration(machine.remaining) * time.Second,
		Total:     time.Duration(machine.total) * time.Second,
		AlertMode: machine.alertMode,
		Muted:     machine.muted,
	}
}

func (machine *Machine) stateLocked() State {
	switch {
	case machine.expired:
		return StateExpired
	case machine.running && machine.alertMode:
		return StateAlertRunning
	case machine.running:
		return StateRunning
	case machine.remaining > 0:
		return StatePaused
	default:
		return StateIdle
	}
}

// emitFn captures the status now and delivers it once the effects run.
func (machine *Machine) emitFn(eventType EventType) effect {
	event := Event{
		Type:   eventType,
		Status: machine.statusLocked(),
		At:     machine.clock.Now(),
	}
	return func() {
		machine.emit(event)
	}
}

func (machine *Machine) emit(event Event) {
	machine.mu.Lock()
	events := append([]chan Event(nil), machine.events...)
	machine.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
