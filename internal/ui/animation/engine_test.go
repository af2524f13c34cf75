package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	step := Range{Min: 2 * time.Millisecond, Max: 2 * time.Millisecond}
	return Config{
		FrameHold:         step,
		FlashOn:           step,
		FlashOff:          step,
		DoubleFlashChance: 0.5,
		DoubleFlashGap:    step,
	}
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []fyne.Resource
}

func (recorder *frameRecorder) record(resource fyne.Resource) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, resource)
}

func (recorder *frameRecorder) snapshot() []fyne.Resource {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]fyne.Resource(nil), recorder.frames...)
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	spread := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 50; i++ {
		value := spread.Random(rng)
		assert.GreaterOrEqual(t, value, time.Second)
		assert.Less(t, value, 2*time.Second)
	}
}

func TestPulseAlternatesFrames(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.record)
	first := fyne.NewStaticResource("a.png", []byte{1})
	second := fyne.NewStaticResource("b.png", []byte{2})

	engine.StartPulse(context.Background(), []fyne.Resource{first, second})
	defer engine.Stop()

	require.Eventually(t, func() bool {
		return len(recorder.snapshot()) >= 4
	}, time.Second, 5*time.Millisecond)

	frames := recorder.snapshot()
	assert.Equal(t, first, frames[0])
	assert.Equal(t, second, frames[1])
	assert.Equal(t, first, frames[2])
}

func TestStopHaltsPulse(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.record)
	engine.StartPulse(context.Background(), []fyne.Resource{fyne.NewStaticResource("a.png", nil)})
	require.True(t, engine.Active())

	engine.Stop()
	assert.False(t, engine.Active())
	time.Sleep(10 * time.Millisecond)
	settled := len(recorder.snapshot())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, len(recorder.snapshot()))
}

func TestPulseWithoutFramesStops(t *testing.T) {
	engine := New(fastConfig(), func(fyne.Resource) {})
	engine.StartPulse(context.Background(), []fyne.Resource{fyne.NewStaticResource("a.png", nil)})
	engine.StartPulse(context.Background(), nil)
	assert.False(t, engine.Active())
}

func TestFlashRestoresVisibility(t *testing.T) {
	engine := New(fastConfig(), func(fyne.Resource) {})

	var (
		mu      sync.Mutex
		states  []bool
		visible = true
	)
	ctx, cancel := context.WithCancel(context.Background())
	engine.StartFlash(ctx, func(value bool) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, value)
		visible = value
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) >= 4
	}, time.Second, 5*time.Millisecond)
	cancel()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return visible
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, states, false)
}
