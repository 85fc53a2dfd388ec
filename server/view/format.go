package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lockstats/pkg/table"
	"lockstats/pkg/timefmt"
)

// formatTimestamp returns the raw epoch for exports and a local date for display.
func formatTimestamp(epoch int64, loc *time.Location, mode table.Mode) any {
	if mode == table.Export {
		return epoch
	}
	return timefmt.UserDate(epoch, loc)
}

// formatAverage returns the average hold time. Exports get the number;
// display gets a short elapsed phrase when one fits.
func formatAverage(average float64, units timefmt.Units, mode table.Mode) any {
	if mode == table.Export {
		return average
	}
	if average > 0 {
		return formatElapsedPhrase(timefmt.FormatElapsed(average, units), average)
	}
	return average
}

// formatElapsedPhrase rewrites a "<magnitude> <unit>" phrase with four
// significant digits. Any other phrase yields fallback.
// TODO: phrases with two units ("1 min 30 secs") could be folded into the
// larger unit instead of falling back to raw seconds.
func formatElapsedPhrase(phrase string, fallback float64) any {
	fields := strings.Fields(phrase)
	if len(fields) != 2 {
		return fallback
	}
	magnitude, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fallback
	}
	return fmt.Sprintf("%#.4g %s", magnitude, fields[1])
}
