package epoch

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EpochUnit is the resolution an epoch numeral is assumed to be written in.
type EpochUnit int

const (
	UnitSeconds EpochUnit = iota
	UnitMilliseconds
	UnitMicroseconds
	UnitNanoseconds
)

func (u EpochUnit) String() string {
	switch u {
	case UnitMilliseconds:
		return "milliseconds"
	case UnitMicroseconds:
		return "microseconds"
	case UnitNanoseconds:
		return "nanoseconds"
	default:
		return "seconds"
	}
}

// exponent is the power of ten separating the unit from seconds.
func (u EpochUnit) exponent() int32 {
	return int32(u) * 3
}

// ClassifyEpoch infers the unit from the number of characters alone:
// up to 11 digits are seconds, 12-14 milliseconds, 15-17 microseconds and
// anything longer nanoseconds. Values far from the present era are
// misclassified; that is accepted.
func ClassifyEpoch(digits string) EpochUnit {
	switch n := len(digits); {
	case n <= 11:
		return UnitSeconds
	case n <= 14:
		return UnitMilliseconds
	case n <= 17:
		return UnitMicroseconds
	default:
		return UnitNanoseconds
	}
}

// InterpretEpoch converts a decimal digit string to seconds since the epoch.
// The division by the unit happens on an exact decimal so no rounding occurs
// before the final conversion to float64.
func InterpretEpoch(digits string) (float64, EpochUnit, error) {
	if !isDigits(digits) {
		return 0, UnitSeconds, newResolveError(CodeInvalidNumeral, digits, errors.New("not a decimal numeral"))
	}
	value, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, UnitSeconds, newResolveError(CodeInvalidNumeral, digits, err)
	}

	unit := ClassifyEpoch(digits)
	seconds, _ := value.Shift(-unit.exponent()).Float64()
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return 0, unit, newResolveError(CodeNumericOverflow, digits, errors.Errorf("%s %s overflows float64", digits, unit))
	}
	return seconds, unit, nil
}

// isDigits reports whether s is non-empty and made of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
