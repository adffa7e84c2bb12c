package epoch

import (
	"errors"
	"fmt"
)

// ErrorCode identifies which stage of resolution rejected a query.
type ErrorCode string

const (
	// CodeInvalidNumeral indicates the epoch interpreter received something that is not a decimal numeral.
	CodeInvalidNumeral ErrorCode = "INVALID_NUMERAL"
	// CodeNumericOverflow indicates the numeral cannot be represented as seconds since the epoch.
	CodeNumericOverflow ErrorCode = "NUMERIC_OVERFLOW"
	// CodeUnrecognizedDateFormat indicates no calendar template matched.
	CodeUnrecognizedDateFormat ErrorCode = "UNRECOGNIZED_DATE_FORMAT"
	// CodeEmptyResult indicates resolution produced no usable timestamp.
	CodeEmptyResult ErrorCode = "EMPTY_RESULT"
)

// ResolveError is the single failure type returned by the resolver.
// Callers rendering results should treat every ResolveError the same way;
// the code is kept for logs and tests.
type ResolveError struct {
	Code  ErrorCode
	Input string
	Cause error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] cannot resolve %q: %v", e.Code, e.Input, e.Cause)
	}
	return fmt.Sprintf("[%s] cannot resolve %q", e.Code, e.Input)
}

// Unwrap returns the underlying cause.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

func newResolveError(code ErrorCode, input string, cause error) *ResolveError {
	return &ResolveError{Code: code, Input: input, Cause: cause}
}

// CodeOf returns the error code carried by err, or "" when err is not a ResolveError.
func CodeOf(err error) ErrorCode {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCode reports whether err is a ResolveError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
