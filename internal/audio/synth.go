package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

const (
	clickAttack = 3 * time.Millisecond
	// Second partial an octave up, mixed in quietly for a brighter click
	overtoneLevel = 0.25
)

// oscillator generates a sine tone of fixed length.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over the attack and linearly out for the rest.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
}

func newEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer:      s,
		attackSamples: min(rate.N(attack), total),
		totalSamples:  total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if release := e.totalSamples - e.attackSamples; release > 0 {
			vol = float64(e.totalSamples-e.position) / float64(release)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewClick builds one click: a short sine blip with its octave, shaped by an
// envelope and scaled to the configured volume.
func NewClick(cfg config.SoundConfig, rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newOscillator(cfg.Frequency, cfg.Duration, rate), cfg.Duration, clickAttack, rate)
	over := newEnvelope(newOscillator(cfg.Frequency*2, cfg.Duration, rate), cfg.Duration, clickAttack, rate)

	mixed := beep.Mix(
		newVolume(fund, 1-overtoneLevel),
		newVolume(over, overtoneLevel),
	)
	return newVolume(mixed, cfg.Volume)
}
