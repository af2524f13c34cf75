package audio

import (
	"sync"
	"testing"

	"stagetimer/internal/core/countdown"
	"stagetimer/resources"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ countdown.Sounds = (*Player)(nil)
	_ countdown.Sounds = Silent{}
)

type fakeOutput struct {
	mu     sync.Mutex
	played []beep.Streamer
}

func (out *fakeOutput) Play(streamers ...beep.Streamer) {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.played = append(out.played, streamers...)
}

func (out *fakeOutput) Lock()   {}
func (out *fakeOutput) Unlock() {}

func (out *fakeOutput) count() int {
	out.mu.Lock()
	defer out.mu.Unlock()
	return len(out.played)
}

func newTestPlayer(t *testing.T) (*Player, *fakeOutput) {
	t.Helper()
	loopData, err := resources.Sound(resources.TimerSound)
	require.NoError(t, err)
	stopData, err := resources.Sound(resources.StopSound)
	require.NoError(t, err)

	loop, err := decode(loopData, 0)
	require.NoError(t, err)
	stop, err := decode(stopData, loop.Format().SampleRate)
	require.NoError(t, err)
	require.Positive(t, loop.Len())
	require.Positive(t, stop.Len())

	out := &fakeOutput{}
	return newPlayer(out, loop, stop), out
}

// drain pulls samples and reports whether the streamer produced any sound.
func drain(streamer beep.Streamer) (int, bool) {
	samples := make([][2]float64, 512)
	n, ok := streamer.Stream(samples)
	return n, ok
}

func TestStartLoopIsIdempotent(t *testing.T) {
	player, out := newTestPlayer(t)

	player.StartLoop()
	player.StartLoop()

	assert.Equal(t, 1, out.count())
	assert.True(t, player.Playing())
}

func TestStopLoopEndsStreamAndAllowsRestart(t *testing.T) {
	player, out := newTestPlayer(t)

	player.StartLoop()
	first := out.played[0]
	player.StopLoop()
	assert.False(t, player.Playing())

	_, ok := drain(first)
	assert.False(t, ok, "stopped loop should drain")

	player.StartLoop()
	assert.Equal(t, 2, out.count())
	player.StopLoop()
	player.StopLoop()
}

func TestLoopKeepsStreaming(t *testing.T) {
	player, out := newTestPlayer(t)
	player.StartLoop()

	streamer := out.played[0]
	samples := make([][2]float64, player.loop.Len()+10)
	n, ok := streamer.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, len(samples), n, "loop wraps past the end of the clip")
}

func TestMuteSilencesLoopAndStop(t *testing.T) {
	player, out := newTestPlayer(t)

	player.StartLoop()
	player.SetMuted(true)
	assert.True(t, player.active.volume.Silent)

	player.PlayStop()
	assert.Equal(t, 1, out.count(), "muted stop cue is skipped")

	player.SetMuted(false)
	assert.False(t, player.active.volume.Silent)
	player.PlayStop()
	assert.Equal(t, 2, out.count())
}

func TestMutedLoopStartsSilent(t *testing.T) {
	player, _ := newTestPlayer(t)
	player.SetMuted(true)
	player.StartLoop()
	assert.True(t, player.active.volume.Silent)
}

func TestSilentIsHarmless(t *testing.T) {
	var sounds countdown.Sounds = Silent{}
	sounds.StartLoop()
	sounds.SetMuted(true)
	sounds.PlayStop()
	sounds.StopLoop()
}
