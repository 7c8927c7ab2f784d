package services

import (
	"strings"
	"time"
)

const calendarDateLayout = "2006-01-02"

// CalendarDay maps an instant to the civil date it falls on in location. The
// result is that date at 00:00 UTC, the representation used for every
// calendar date in habitflow.
func CalendarDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return asCalendarDate(value.In(location))
}

func asCalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseCalendarDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(calendarDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func FormatCalendarDate(value time.Time) string {
	return value.Format(calendarDateLayout)
}

// DateRange is a half-open range of calendar dates: Start is included, End is
// not.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range covering from..to, both inclusive.
func NewDateRange(from time.Time, to time.Time) (DateRange, error) {
	start := asCalendarDate(from)
	last := asCalendarDate(to)
	if last.Before(start) {
		return DateRange{}, invalid("to", "gtefield")
	}
	return DateRange{Start: start, End: last.AddDate(0, 0, 1)}, nil
}

func DayRange(day time.Time) DateRange {
	start := asCalendarDate(day)
	return DateRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// LastNDays is the n-day window ending on today, inclusive.
func LastNDays(today time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end := asCalendarDate(today).AddDate(0, 0, 1)
	return DateRange{Start: end.AddDate(0, 0, -n), End: end}
}

func (window DateRange) Days() int {
	if !window.End.After(window.Start) {
		return 0
	}
	return int(window.End.Sub(window.Start).Hours()/24 + 0.5)
}

func (window DateRange) Contains(day time.Time) bool {
	day = asCalendarDate(day)
	return !day.Before(window.Start) && day.Before(window.End)
}

func (window DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, window.Days())
	for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}
	return dates
}

// Instants converts the range to [local midnight of Start, local midnight of
// End) in location, for filtering timestamped records such as mood entries.
func (window DateRange) Instants(location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	return localMidnight(window.Start, location), localMidnight(window.End, location)
}

func localMidnight(day time.Time, location *time.Location) time.Time {
	year, month, dayOfMonth := day.Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, location)
}
