package reflex

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d      time.Duration
		format config.TimeFormat
		want   string
	}{
		{0, config.TimeFormatSeconds, "0.000"},
		{1234 * time.Millisecond, config.TimeFormatSeconds, "1.234"},
		{15 * time.Second, config.TimeFormatSeconds, "15.000"},
		{75*time.Second + 5*time.Millisecond, config.TimeFormatSeconds, "75.005"},
		{-time.Second, config.TimeFormatSeconds, "0.000"},
		{999 * time.Microsecond, config.TimeFormatSeconds, "0.000"},
		{0, config.TimeFormatClock, "0:00.00"},
		{12345 * time.Millisecond, config.TimeFormatClock, "0:12.34"},
		{75*time.Second + 500*time.Millisecond, config.TimeFormatClock, "1:15.50"},
		{2 * time.Second, "", "2.000"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d, tt.format); got != tt.want {
			t.Errorf("FormatDuration(%v, %q) = %q, expected %q", tt.d, tt.format, got, tt.want)
		}
	}
}

func TestFormatBestTime(t *testing.T) {
	if got := FormatBestTime(Records{}, config.TimeFormatSeconds); got != "N/A" {
		t.Errorf("no best time: got %q, expected N/A", got)
	}

	r := Records{BestScore: 50, BestTime: 18250 * time.Millisecond, HasBestTime: true}
	if got := FormatBestTime(r, config.TimeFormatSeconds); got != "18.250" {
		t.Errorf("got %q, expected 18.250", got)
	}
}
