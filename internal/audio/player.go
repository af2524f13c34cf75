package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"stagetimer/internal/logutil"
	"stagetimer/resources"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const resampleQuality = 4

// output is the mixer the player feeds. The speaker package satisfies it.
type output interface {
	Play(streamers ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Play(streamers ...beep.Streamer) { speaker.Play(streamers...) }
func (speakerOutput) Lock()                           { speaker.Lock() }
func (speakerOutput) Unlock()                         { speaker.Unlock() }

// Player plays the countdown cues through beep.
type Player struct {
	mu     sync.Mutex
	out    output
	loop   *beep.Buffer
	stop   *beep.Buffer
	muted  bool
	active *loopVoice
}

type loopVoice struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// NewPlayer decodes the bundled sounds and opens the speaker.
func NewPlayer() (*Player, error) {
	loopData, err := resources.Sound(resources.TimerSound)
	if err != nil {
		return nil, err
	}
	stopData, err := resources.Sound(resources.StopSound)
	if err != nil {
		return nil, err
	}

	loop, err := decode(loopData, 0)
	if err != nil {
		return nil, fmt.Errorf("decode loop sound: %w", err)
	}
	stop, err := decode(stopData, loop.Format().SampleRate)
	if err != nil {
		return nil, fmt.Errorf("decode stop sound: %w", err)
	}

	sampleRate := loop.Format().SampleRate
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newPlayer(speakerOutput{}, loop, stop), nil
}

func newPlayer(out output, loop, stop *beep.Buffer) *Player {
	return &Player{out: out, loop: loop, stop: stop}
}

// decode buffers a WAV clip, resampling to rate when rate is non-zero.
func decode(data []byte, rate beep.SampleRate) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if rate != 0 && rate != format.SampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return buffer, nil
}

// StartLoop starts the repeating cue. A loop that is already playing keeps
// playing.
func (player *Player) StartLoop() {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.active != nil {
		return
	}
	looped, err := beep.Loop2(player.loop.Streamer(0, player.loop.Len()))
	if err != nil {
		logutil.LogError("audio: start loop", err)
		return
	}
	volume := &effects.Volume{Streamer: looped, Base: 2, Silent: player.muted}
	voice := &loopVoice{ctrl: &beep.Ctrl{Streamer: volume}, volume: volume}
	player.active = voice
	player.out.Play(voice.ctrl)
}

// StopLoop halts the repeating cue. The next StartLoop begins from the top.
func (player *Player) StopLoop() {
	player.mu.Lock()
	voice := player.active
	player.active = nil
	player.mu.Unlock()

	if voice == nil {
		return
	}
	player.out.Lock()
	voice.ctrl.Streamer = nil
	player.out.Unlock()
}

// PlayStop plays the one-shot stop cue.
func (player *Player) PlayStop() {
	player.mu.Lock()
	muted := player.muted
	player.mu.Unlock()

	if muted {
		return
	}
	player.out.Play(player.stop.Streamer(0, player.stop.Len()))
}

// SetMuted silences both cues. A playing loop keeps its position.
func (player *Player) SetMuted(muted bool) {
	player.mu.Lock()
	player.muted = muted
	voice := player.active
	player.mu.Unlock()

	if voice == nil {
		return
	}
	player.out.Lock()
	voice.volume.Silent = muted
	player.out.Unlock()
}

// Playing reports whether the loop is active.
func (player *Player) Playing() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.active != nil
}

// Silent discards every cue. It stands in when no audio device is available.
type Silent struct{}

func (Silent) StartLoop()    {}
func (Silent) StopLoop()     {}
func (Silent) PlayStop()     {}
func (Silent) SetMuted(bool) {}
