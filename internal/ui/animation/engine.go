package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FrameHold Range

	FlashOn           Range
	FlashOff          Range
	DoubleFlashChance float64
	DoubleFlashGap    Range
}

// Engine runs one background animation at a time for the main window.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(fyne.Resource)
	cancel      context.CancelFunc
	rng         *rand.Rand
	rngMu       sync.Mutex
}

// New creates a new animation engine.
func New(config Config, updateFrame func(fyne.Resource)) *Engine {
	return &Engine{
		config:      config,
		updateFrame: updateFrame,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartPulse cycles frames until ctx is cancelled or another animation
// starts. The first frame is shown immediately.
func (engine *Engine) StartPulse(ctx context.Context, frames []fyne.Resource) {
	if len(frames) == 0 {
		engine.Stop()
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		for index := 0; ; index = (index + 1) % len(frames) {
			engine.updateFrame(frames[index])
			if !sleepWithContext(runCtx, engine.random(engine.config.FrameHold)) {
				return
			}
		}
	})
}

// StartFlash toggles visibility through setVisible, occasionally with a quick
// double flash. Visibility is restored when the animation ends.
func (engine *Engine) StartFlash(ctx context.Context, setVisible func(bool)) {
	engine.start(ctx, func(runCtx context.Context) {
		defer setVisible(true)
		for {
			setVisible(true)
			if !sleepWithContext(runCtx, engine.random(engine.config.FlashOn)) {
				return
			}
			setVisible(false)
			if !sleepWithContext(runCtx, engine.random(engine.config.FlashOff)) {
				return
			}

			if engine.chance() <= engine.config.DoubleFlashChance {
				setVisible(true)
				if !sleepWithContext(runCtx, engine.random(engine.config.DoubleFlashGap)) {
					return
				}
				setVisible(false)
				if !sleepWithContext(runCtx, engine.random(engine.config.FlashOff)) {
					return
				}
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Active reports whether an animation is running.
func (engine *Engine) Active() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) random(value Range) time.Duration {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return value.Random(engine.rng)
}

func (engine *Engine) chance() float64 {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return engine.rng.Float64()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
