// Package audio synthesizes and plays the click sound.
// Clicks are fire-and-forget: each one is a fresh streamer added to a shared
// mixer, so rapid clicks overlap instead of cutting each other off.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

const sampleRate = beep.SampleRate(48000)

// Clicker plays click sounds through the system speaker.
type Clicker struct {
	mu          sync.Mutex
	cfg         config.SoundConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewClicker creates a clicker. It is silent until Init succeeds.
func NewClicker(cfg config.SoundConfig) *Clicker {
	return &Clicker{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. On failure the clicker stays silent and the error
// is returned for logging.
func (c *Clicker) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play starts one click without waiting for it to finish.
func (c *Clicker) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	click := NewClick(c.cfg, sampleRate)
	speaker.Lock()
	c.mixer.Add(click)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
