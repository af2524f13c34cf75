package animation

import "time"

// DefaultConfig returns the alert pulse timings.
func DefaultConfig() Config {
	return Config{
		FrameHold: Range{
			Min: 450 * time.Millisecond,
			Max: 650 * time.Millisecond,
		},
		FlashOn: Range{
			Min: 400 * time.Millisecond,
			Max: 400 * time.Millisecond,
		},
		FlashOff: Range{
			Min: 250 * time.Millisecond,
			Max: 250 * time.Millisecond,
		},
		DoubleFlashChance: 0.12,
		DoubleFlashGap: Range{
			Min: 50 * time.Millisecond,
			Max: 100 * time.Millisecond,
		},
	}
}
