package dateparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// ErrEmptyPhrase is returned for a phrase that is empty after trimming.
var ErrEmptyPhrase = errors.New("empty date phrase")

// Parser parses free-form date phrases.
type Parser struct {
	now      func() time.Time
	location *time.Location
	formats  []string
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the reference time for relative phrases.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// WithLocation converts parsed instants to loc, so the wall clock
// rendered in formulas is loc's.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) { p.location = loc }
}

// WithFormats makes the parser try explicit layouts (in go-dateparser's
// strftime-style syntax, e.g. "%d/%m/%Y") before free-form detection.
func WithFormats(formats ...string) Option {
	return func(p *Parser) { p.formats = append(p.formats, formats...) }
}

// New creates a Parser. Without options it resolves relative phrases
// against time.Now in the local timezone.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseDate returns the instant described by s.
func (p *Parser) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyPhrase
	}

	cfg := &dps.Configuration{CurrentTime: p.now()}
	dt, err := dps.Parse(cfg, s, p.formats...)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("parse %q: no date found", s)
	}
	if p.location != nil {
		return dt.Time.In(p.location), nil
	}
	return dt.Time, nil
}
