package history

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Outcome is how a countdown run ended.
type Outcome string

const (
	OutcomeRunning   Outcome = "running"
	OutcomeFinished  Outcome = "finished"
	OutcomeAbandoned Outcome = "abandoned"
)

// Run is a single countdown from its first start to expiry or reset.
type Run struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
	Total     time.Duration
	Outcome   Outcome
}

// Summary aggregates the runs started on one day.
type Summary struct {
	Finished     int
	Abandoned    int
	Focus        time.Duration
	LastFinished time.Time
}

// Describe renders the summary for the tray status line.
func (summary Summary) Describe(now time.Time) string {
	if summary.Finished == 0 {
		return "No finished countdowns today"
	}
	return fmt.Sprintf("%s finished today · last %s",
		english.Plural(summary.Finished, "countdown", ""),
		humanize.RelTime(summary.LastFinished, now, "ago", "from now"),
	)
}
