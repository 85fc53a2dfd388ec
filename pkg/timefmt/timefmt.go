// Package timefmt renders lock timestamps and elapsed durations for people.
package timefmt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minSecs  = 60
	hourSecs = 60 * minSecs
	daySecs  = 24 * hourSecs
	yearSecs = 365 * daySecs
)

// Units holds the words used in an elapsed-time phrase.
type Units struct {
	Year, Years string
	Day, Days   string
	Hour, Hours string
	Min, Mins   string
	Sec, Secs   string
	Now         string
}

// EnglishUnits is the fallback vocabulary.
var EnglishUnits = Units{
	Year: "year", Years: "years",
	Day: "day", Days: "days",
	Hour: "hour", Hours: "hours",
	Min: "min", Mins: "mins",
	Sec: "sec", Secs: "secs",
	Now: "now",
}

// FormatElapsed describes a number of seconds using the two largest
// non-zero units, e.g. "5 secs", "1 min 30 secs" or "2 days 3 hours".
// Seconds are rounded to hundredths. The sign is ignored and anything that
// rounds to zero reads as units.Now.
func FormatElapsed(totalSecs float64, units Units) string {
	totalSecs = hundredths(math.Abs(totalSecs))

	years := math.Floor(totalSecs / yearSecs)
	remainder := totalSecs - years*yearSecs
	days := math.Floor(remainder / daySecs)
	remainder -= days * daySecs
	hours := math.Floor(remainder / hourSecs)
	remainder -= hours * hourSecs
	mins := math.Floor(remainder / minSecs)
	secs := hundredths(remainder - mins*minSecs)

	switch {
	case years > 0:
		return join(amount(years, units.Year, units.Years), amount(days, units.Day, units.Days))
	case days > 0:
		return join(amount(days, units.Day, units.Days), amount(hours, units.Hour, units.Hours))
	case hours > 0:
		return join(amount(hours, units.Hour, units.Hours), amount(mins, units.Min, units.Mins))
	case mins > 0:
		return join(amount(mins, units.Min, units.Mins), amount(secs, units.Sec, units.Secs))
	case secs > 0:
		return amount(secs, units.Sec, units.Secs)
	}
	return units.Now
}

// UserDate formats an epoch timestamp as "YYYY-MM-DD HH:MM:SS" in loc.
// A nil loc means the server's local zone.
func UserDate(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(time.DateTime)
}

func hundredths(n float64) float64 {
	return math.Round(n*100) / 100
}

func amount(n float64, one, many string) string {
	if n == 0 {
		return ""
	}
	unit := many
	if n == 1 {
		unit = one
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + " " + unit
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
