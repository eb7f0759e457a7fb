package valueobject

import "errors"

var (
	// ErrInvalidDurationSpec is returned when a duration kind is neither
	// "dates" nor "period".
	ErrInvalidDurationSpec = errors.New("invalid duration specification")
	// ErrInvalidCompoundFrequency is returned for a zero, negative, or missing
	// compounding frequency.
	ErrInvalidCompoundFrequency = errors.New("invalid compound frequency")
	ErrInvalidRateType          = errors.New("invalid rate type")
	ErrInvalidInterestType      = errors.New("invalid interest type")
)
