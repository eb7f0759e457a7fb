package valueobject

import (
	"fmt"
	"time"
)

// DurationKind discriminates between the two ways a loan duration can be given.
type DurationKind string

const (
	DurationKindDates  DurationKind = "dates"
	DurationKindPeriod DurationKind = "period"
)

// ParseDurationKind validates a raw discriminator string.
func ParseDurationKind(s string) (DurationKind, error) {
	switch DurationKind(s) {
	case DurationKindDates, DurationKindPeriod:
		return DurationKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown duration type %q", ErrInvalidDurationSpec, s)
	}
}

// DateRange is a pair of calendar dates. Time-of-day and location are
// discarded on construction so that equal calendar days compare equal.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange. An inverted range is accepted; it resolves
// to a zero duration.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{start: civilDate(start), end: civilDate(end)}
}

// Start returns the start date at midnight UTC.
func (r DateRange) Start() time.Time { return r.start }

// End returns the end date at midnight UTC.
func (r DateRange) End() time.Time { return r.end }

// IsInverted reports whether the start date falls after the end date.
func (r DateRange) IsInverted() bool { return r.start.After(r.end) }

// IsEmpty reports whether start and end are the same calendar day.
func (r DateRange) IsEmpty() bool { return r.start.Equal(r.end) }

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationSpec is a tagged choice between a DateRange and an explicit period.
// The zero value carries no duration at all and resolves to ZeroDuration.
type DurationSpec struct {
	kind      DurationKind
	dateRange DateRange
	period    Duration
}

// NewDateRangeSpec creates a spec backed by a date pair.
func NewDateRangeSpec(start, end time.Time) DurationSpec {
	return DurationSpec{kind: DurationKindDates, dateRange: NewDateRange(start, end)}
}

// NewPeriodSpec creates a spec backed by an explicit period.
func NewPeriodSpec(period Duration) DurationSpec {
	return DurationSpec{kind: DurationKindPeriod, period: period}
}

// Kind returns the active discriminator, or "" for an empty spec.
func (s DurationSpec) Kind() DurationKind { return s.kind }

// DateRange returns the date pair and whether the spec is date based.
func (s DurationSpec) DateRange() (DateRange, bool) {
	return s.dateRange, s.kind == DurationKindDates
}

// Period returns the explicit period and whether the spec is period based.
func (s DurationSpec) Period() (Duration, bool) {
	return s.period, s.kind == DurationKindPeriod
}
