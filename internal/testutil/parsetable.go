package testutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPhrase is returned by ParseTable for phrases it does not hold.
var ErrUnknownPhrase = errors.New("unknown date phrase")

// ParseTable is a date parser backed by a fixed phrase → instant table.
//
// It satisfies formula.DateParser without touching a real parser or the
// wall clock, so tests see the same instants on every run.
type ParseTable map[string]time.Time

// ParseDate returns the instant recorded for s.
func (pt ParseTable) ParseDate(s string) (time.Time, error) {
	t, ok := pt[s]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPhrase, s)
	}
	return t, nil
}
