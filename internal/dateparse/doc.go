// Package dateparse resolves human-readable date phrases to instants.
//
// It adapts github.com/markusmobius/go-dateparser to the single-method
// DateParser contract used by the formula package:
//
//	p := dateparse.New()
//	t, err := p.ParseDate("2023-06-15 14:30")
//
// Relative phrases ("today", "3 days ago", "next friday") are resolved
// against a clock. The clock defaults to time.Now and can be fixed for
// deterministic tests:
//
//	p := dateparse.New(dateparse.WithClock(func() time.Time {
//	    return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
//	}))
//
// Thread-safety: a Parser holds no mutable state and is safe for
// concurrent use as long as its clock is.
package dateparse
