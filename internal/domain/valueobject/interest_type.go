package valueobject

import "fmt"

// InterestType selects the interest model.
type InterestType string

const (
	InterestSimple   InterestType = "simple"
	InterestCompound InterestType = "compound"
)

// ParseInterestType validates a raw interest type string.
func ParseInterestType(s string) (InterestType, error) {
	switch InterestType(s) {
	case InterestSimple, InterestCompound:
		return InterestType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInterestType, s)
	}
}

func (t InterestType) String() string { return string(t) }

// InterestMode is the interest model together with its compounding frequency.
// The frequency is ignored for simple interest.
type InterestMode struct {
	interestType InterestType
	frequency    CompoundFrequency
}

// SimpleMode selects simple interest.
func SimpleMode() InterestMode {
	return InterestMode{interestType: InterestSimple}
}

// CompoundMode selects discrete compounding at the given frequency.
func CompoundMode(frequency CompoundFrequency) InterestMode {
	return InterestMode{interestType: InterestCompound, frequency: frequency}
}

// Type returns the interest model.
func (m InterestMode) Type() InterestType { return m.interestType }

// Frequency returns the compounding frequency. It is the zero value for simple
// interest.
func (m InterestMode) Frequency() CompoundFrequency { return m.frequency }

// IsCompound reports whether the mode compounds.
func (m InterestMode) IsCompound() bool { return m.interestType == InterestCompound }
