package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		value time.Duration
		want  string
	}{
		{value: 0, want: "00:00"},
		{value: -time.Second, want: "00:00"},
		{value: 59 * time.Second, want: "00:59"},
		{value: 5 * time.Minute, want: "05:00"},
		{value: 299 * time.Second, want: "04:59"},
		{value: 100*time.Minute + 1500*time.Millisecond, want: "100:01"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.value))
		})
	}
}
