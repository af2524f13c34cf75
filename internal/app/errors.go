package app

import "errors"

var (
	// ErrAlertLocked is returned when a manual theme change is attempted while
	// the alert override is active.
	ErrAlertLocked = errors.New("theme is locked while the alert is active")

	// ErrUnknownPreset is returned for a preset name outside the catalog.
	ErrUnknownPreset = errors.New("unknown preset")
)
