package valueobject

import "fmt"

// CompoundFrequencyKind names how often interest is folded into principal.
type CompoundFrequencyKind string

const (
	CompoundAnnually     CompoundFrequencyKind = "annually"
	CompoundSemiAnnually CompoundFrequencyKind = "semiannually"
	CompoundCustom       CompoundFrequencyKind = "custom"
)

// CompoundFrequency is the number of months between compounding events.
type CompoundFrequency struct {
	kind   CompoundFrequencyKind
	months int
}

// Annually compounds every 12 months.
func Annually() CompoundFrequency {
	return CompoundFrequency{kind: CompoundAnnually, months: 12}
}

// SemiAnnually compounds every 6 months.
func SemiAnnually() CompoundFrequency {
	return CompoundFrequency{kind: CompoundSemiAnnually, months: 6}
}

// CustomFrequency compounds every n months. n must be positive.
func CustomFrequency(months int) (CompoundFrequency, error) {
	if months <= 0 {
		return CompoundFrequency{}, fmt.Errorf("%w: custom frequency must be positive, got %d", ErrInvalidCompoundFrequency, months)
	}
	return CompoundFrequency{kind: CompoundCustom, months: months}, nil
}

// ParseCompoundFrequency builds a frequency from its wire form. customMonths is
// only consulted for the custom kind.
func ParseCompoundFrequency(kind string, customMonths int) (CompoundFrequency, error) {
	switch CompoundFrequencyKind(kind) {
	case CompoundAnnually:
		return Annually(), nil
	case CompoundSemiAnnually:
		return SemiAnnually(), nil
	case CompoundCustom:
		return CustomFrequency(customMonths)
	default:
		return CompoundFrequency{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidCompoundFrequency, kind)
	}
}

// Kind returns the frequency name.
func (f CompoundFrequency) Kind() CompoundFrequencyKind { return f.kind }

// Months returns the compounding period length in months. The zero value
// reports 0, which the interest engine rejects.
func (f CompoundFrequency) Months() int { return f.months }

// IsValid reports whether the period is positive.
func (f CompoundFrequency) IsValid() bool { return f.months > 0 }

func (f CompoundFrequency) String() string {
	if f.kind == CompoundCustom {
		return fmt.Sprintf("every %d months", f.months)
	}
	return string(f.kind)
}
