package entity

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the platform's textual date-time format, e.g.
// "05-Jan-2025 14:30:00".
const TimestampLayout = "02-Jan-2006 15:04:05"

// DateLayout is the date-only variant used by date fields.
const DateLayout = "02-Jan-2006"

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp reads a platform timestamp in loc. Date-only values are
// accepted and resolve to midnight.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(TimestampLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Instant is one point in time rendered both ways the meeting API expects.
// Both values come from the same time.Time and always agree.
type Instant struct {
	Formatted string `json:"formatted"`
	Millis    int64  `json:"millis"`
}

// NewInstant truncates t to whole seconds so the formatted value and the
// epoch value describe the exact same instant.
func NewInstant(t time.Time) Instant {
	t = t.Truncate(time.Second)
	return Instant{
		Formatted: FormatTimestamp(t),
		Millis:    t.UnixMilli(),
	}
}

// CombineDateClock merges a "2006-01-02" date and a "15:04" clock in loc.
func CombineDateClock(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	c, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}
