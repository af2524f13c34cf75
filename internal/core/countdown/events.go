package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle         State = "idle"
	StateRunning      State = "running"
	StatePaused       State = "paused"
	StateAlertRunning State = "alert_running"
	StateExpired      State = "expired"
)

// Running reports whether the countdown is ticking in this state.
func (state State) Running() bool {
	return state == StateRunning || state == StateAlertRunning
}

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventAlert       EventType = "alert"
	EventExpired     EventType = "expired"
	EventRestored    EventType = "restored"
	EventMuted       EventType = "muted"
)

// Status is a point-in-time copy of the machine.
type Status struct {
	State     State
	Remaining time.Duration
	Total     time.Duration
	AlertMode bool
	Muted     bool
}

// Event represents a countdown update for observers.
type Event struct {
	Type EventType
	Status
	At time.Time
}
