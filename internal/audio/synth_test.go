package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := newOscillator(440, 100*time.Millisecond, rate)

	samples := drain(t, osc)
	if len(samples) != rate.N(100*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(100*time.Millisecond), len(samples))
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("Sample %d invalid: %v", i, s)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := newEnvelope(constant{}, 100*time.Millisecond, 10*time.Millisecond, rate)

	samples := drain(t, env)
	if len(samples) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(samples))
	}

	if samples[0][0] != 0 {
		t.Errorf("Envelope should start silent, got %f", samples[0][0])
	}
	if samples[10][0] != 1 {
		t.Errorf("Envelope should peak after the attack, got %f", samples[10][0])
	}
	for i := 11; i < len(samples); i++ {
		if samples[i][0] > samples[i-1][0] {
			t.Fatalf("Release should not rise: sample %d = %f after %f", i, samples[i][0], samples[i-1][0])
		}
	}
	if last := samples[len(samples)-1][0]; last > 0.02 {
		t.Errorf("Envelope should end near silence, got %f", last)
	}
}

func TestNewClick(t *testing.T) {
	cfg := config.SoundConfig{Enabled: true, Volume: 0.5, Frequency: 880, Duration: 60 * time.Millisecond}
	rate := beep.SampleRate(48000)

	samples := drain(t, NewClick(cfg, rate))
	if len(samples) != rate.N(cfg.Duration) {
		t.Errorf("Expected %d samples, got %d", rate.N(cfg.Duration), len(samples))
	}

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 {
		t.Error("Click should not be silent")
	}
	if peak > cfg.Volume+1e-9 {
		t.Errorf("Peak %f exceeds volume %f", peak, cfg.Volume)
	}
}

func TestNewClickZeroVolumeSilent(t *testing.T) {
	cfg := config.SoundConfig{Volume: 0, Frequency: 880, Duration: 20 * time.Millisecond}

	for i, s := range drain(t, NewClick(cfg, beep.SampleRate(8000))) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Sample %d not silent: %v", i, s)
		}
	}
}

func TestClickerSilentBeforeInit(t *testing.T) {
	c := NewClicker(config.DefaultReflexConfig().Sound)

	// Must not block or panic without a speaker
	c.Play()
	c.Close()
}

// constant is an endless full-scale stream.
type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }
