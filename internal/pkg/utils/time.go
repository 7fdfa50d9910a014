package utils

import (
	"time"

	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
)

const ClockLayout = "15:04"

// ParseDateTime parses an RFC 3339 instant and moves it into loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err, value)
	}
	return parsed.In(loc), nil
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(constvars.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err, value)
	}
	return parsed, nil
}

// ParseClockOnDate combines a calendar date with an HH:MM clock value.
func ParseClockOnDate(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err, clock)
	}
	return AtClock(date, parsed.Hour(), parsed.Minute()), nil
}

func AtClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// DateOf truncates t to midnight of its calendar day in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(constvars.DateLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ClockMinutes is the number of minutes since local midnight.
func ClockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DaysBetween counts calendar days in [from, to], both inclusive.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}
