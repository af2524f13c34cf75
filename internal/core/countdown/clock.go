package countdown

import "time"

// Clock abstracts the scheduling primitives used by the machine.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
	AfterFunc(delay time.Duration, fn func()) Timer
}

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer is a cancellable one-shot callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

type realTicker struct {
	ticker *time.Ticker
}

// RealClock returns a Clock backed by package time.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) NewTicker(interval time.Duration) Ticker {
	return realTicker{ticker: time.NewTicker(interval)}
}

func (realClock) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

func (ticker realTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker realTicker) Stop() {
	ticker.ticker.Stop()
}
