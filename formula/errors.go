package formula

import (
	"errors"
	"fmt"
)

// DateParseError reports a date phrase the DateParser could not interpret.
type DateParseError struct {
	// Input is the phrase as given by the caller.
	Input string

	// Err is the parser's own error, if it gave one.
	Err error
}

func (e *DateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not parse date %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("could not parse date %q", e.Input)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// IsDateParseError reports whether err is or wraps a *DateParseError.
func IsDateParseError(err error) bool {
	var pe *DateParseError
	return errors.As(err, &pe)
}
