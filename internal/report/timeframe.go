package report

import (
	"fmt"
	"time"
)

// Timeframe is a named report window the query builder turns into a
// concrete [start, end] pair.
type Timeframe int

const (
	ThisWeek Timeframe = iota
	LastWeek
	Past7Days
	ThisMonth
	LastMonth
	Past30Days
	Past180Days
	Past365Days
	AllTime
)

var timeframeNames = map[Timeframe]string{
	ThisWeek:    "this-week",
	LastWeek:    "last-week",
	Past7Days:   "past-7-days",
	ThisMonth:   "this-month",
	LastMonth:   "last-month",
	Past30Days:  "past-30-days",
	Past180Days: "past-180-days",
	Past365Days: "past-365-days",
	AllTime:     "all-time",
}

func (tf Timeframe) String() string {
	if name, ok := timeframeNames[tf]; ok {
		return name
	}
	return "unknown"
}

// ParseTimeframe maps a CLI flag value back to a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	for tf, name := range timeframeNames {
		if name == s {
			return tf, nil
		}
	}
	return ThisWeek, fmt.Errorf("unknown timeframe %q", s)
}

// Range resolves the timeframe against now. The returned start is never
// after the returned end.
func (tf Timeframe) Range(now time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	switch tf {
	case ThisWeek:
		return StartOfWeek(now, weekStart), now
	case LastWeek:
		thisWeek := StartOfWeek(now, weekStart)
		return thisWeek.AddDate(0, 0, -7), EndOfDay(thisWeek.AddDate(0, 0, -1))
	case Past7Days:
		return StartOfDay(now.AddDate(0, 0, -6)), now
	case ThisMonth:
		year, month, _ := now.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), now
	case LastMonth:
		year, month, _ := now.Date()
		first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0), EndOfDay(first.AddDate(0, 0, -1))
	case Past30Days:
		return StartOfDay(now.AddDate(0, 0, -29)), now
	case Past180Days:
		return StartOfDay(now.AddDate(0, 0, -179)), now
	case Past365Days:
		return StartOfDay(now.AddDate(0, 0, -364)), now
	case AllTime:
		return time.Unix(0, 0), now
	default:
		return StartOfWeek(now, weekStart), now
	}
}

// CustomRange builds an explicit user-supplied range. The end is pushed to
// end-of-day, the start is clamped to the epoch and never allowed past the
// end.
func CustomRange(start, end time.Time) (time.Time, time.Time) {
	end = EndOfDay(end)
	start = StartOfDay(start)
	epoch := time.Unix(0, 0)
	if start.Before(epoch) {
		start = epoch
	}
	if start.After(end) {
		start = StartOfDay(end)
	}
	return start, end
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}

// StartOfWeek truncates t to midnight of the configured first weekday.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
