package service

import (
	"fmt"
	"time"

	"github.com/bibbank/vaddi/internal/domain/valueobject"
)

// DayCountConvention selects how a date range is turned into years, months and
// days.
type DayCountConvention string

const (
	// DayCountCalendarMonths subtracts calendar fields and borrows the real
	// length of the month before the end month when the day difference is
	// negative. Jan 31 to Feb 1 is one day; Feb 28 to Mar 1 2020 is two.
	DayCountCalendarMonths DayCountConvention = "calendar"
	// DayCountThirty360 counts every month as 30 days and clamps the 31st to
	// the 30th before subtracting.
	DayCountThirty360 DayCountConvention = "30/360"
)

// ParseDayCountConvention validates a configured convention name.
func ParseDayCountConvention(s string) (DayCountConvention, error) {
	switch DayCountConvention(s) {
	case DayCountCalendarMonths, DayCountThirty360:
		return DayCountConvention(s), nil
	default:
		return "", fmt.Errorf("unknown day count convention %q", s)
	}
}

// DurationResolver converts a DurationSpec into a Duration. It holds no
// mutable state and is safe for concurrent use.
type DurationResolver struct {
	convention DayCountConvention
}

// NewDurationResolver creates a DurationResolver. An empty convention selects
// DayCountCalendarMonths.
func NewDurationResolver(convention DayCountConvention) *DurationResolver {
	if convention == "" {
		convention = DayCountCalendarMonths
	}
	return &DurationResolver{convention: convention}
}

// Convention returns the day count convention in use.
func (r *DurationResolver) Convention() DayCountConvention {
	return r.convention
}

// Resolve returns the duration described by spec. Periods pass through
// unchanged. Date ranges that are empty or inverted, and specs carrying
// neither form, resolve to the zero duration.
func (r *DurationResolver) Resolve(spec valueobject.DurationSpec) valueobject.Duration {
	if period, ok := spec.Period(); ok {
		return period
	}

	dates, ok := spec.DateRange()
	if !ok {
		return valueobject.ZeroDuration
	}
	if dates.IsInverted() || dates.IsEmpty() {
		return valueobject.ZeroDuration
	}

	if r.convention == DayCountThirty360 {
		return thirty360Between(dates.Start(), dates.End())
	}
	return calendarBetween(dates.Start(), dates.End())
}

func calendarBetween(start, end time.Time) valueobject.Duration {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day()

	if days < 0 {
		months--
		// Day 0 of the end month is the last day of the month before it.
		days += time.Date(end.Year(), end.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if months < 0 {
		years--
		months += 12
	}

	return valueobject.NewDuration(years, months, days)
}

func thirty360Between(start, end time.Time) valueobject.Duration {
	// Any anchor at or before the start year works; it only keeps day counts
	// small and non-negative.
	ref := start.Year() - 2
	total := thirty360DayCount(end, ref) - thirty360DayCount(start, ref)

	return valueobject.NewDuration(
		total/360,
		(total%360)/30,
		(total%360)%30,
	)
}

func thirty360DayCount(d time.Time, refYear int) int {
	day := d.Day()
	if day > 30 {
		day = 30
	}
	return (d.Year()-refYear)*360 + (int(d.Month())-1)*30 + day
}
