package reflex

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

// FormatDuration renders a round time.
//
//	seconds: 12.345  (seconds.milliseconds)
//	clock:   0:12.34 (minutes:seconds.hundredths)
func FormatDuration(d time.Duration, format config.TimeFormat) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()

	if format == config.TimeFormatClock {
		return fmt.Sprintf("%d:%02d.%02d", ms/60000, (ms/1000)%60, (ms%1000)/10)
	}
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

// FormatBestTime renders the best time or N/A when no round qualified yet.
func FormatBestTime(r Records, format config.TimeFormat) string {
	if !r.HasBestTime {
		return "N/A"
	}
	return FormatDuration(r.BestTime, format)
}
