package formula

import (
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/airformula/internal/dateparse"
)

// instantLayout is the layout of the literal passed to DATETIME_PARSE.
const instantLayout = "2006-01-02 15:04:05"

// DateParser resolves a human-readable date phrase ("today",
// "2023-06-15", "3 days ago") to an instant.
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

// DateParserFunc adapts a function to DateParser.
type DateParserFunc func(s string) (time.Time, error)

func (f DateParserFunc) ParseDate(s string) (time.Time, error) {
	return f(s)
}

// Instant renders t as the literal DATETIME_PARSE expects, using the wall
// clock of t's own location. Microseconds are appended only when present.
//
// The UTC offset is not rendered: 2023-06-15T14:30:00+02:00 becomes
// 2023-06-15 14:30:00 and the platform reads it in its own zone. Convert
// with t.In first to compare in another zone.
func Instant(t time.Time) string {
	s := t.Format(instantLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// When is the reference instant of an absolute date comparison: either a
// concrete time or a phrase left for the DateParser.
type When struct {
	t      time.Time
	phrase string
	parse  bool
}

// At refers to t itself.
func At(t time.Time) When {
	return When{t: t}
}

// Phrase refers to whatever instant the DateParser makes of s.
func Phrase(s string) When {
	return When{phrase: s, parse: true}
}

// resolve parses the phrase with p, or with the default parser when p is
// nil (zero DateField and DateComparison values).
func (w When) resolve(p DateParser) (time.Time, error) {
	if !w.parse {
		return w.t, nil
	}
	if p == nil {
		p = dateparse.New()
	}
	t, err := p.ParseDate(w.phrase)
	if err != nil {
		return time.Time{}, &DateParseError{Input: w.phrase, Err: err}
	}
	if t.IsZero() {
		return time.Time{}, &DateParseError{Input: w.phrase}
	}
	return t, nil
}

// Unit is a DATETIME_DIFF unit.
type Unit string

const (
	Milliseconds Unit = "milliseconds"
	Seconds      Unit = "seconds"
	Minutes      Unit = "minutes"
	Hours        Unit = "hours"
	Days         Unit = "days"
	Weeks        Unit = "weeks"
	Months       Unit = "months"
	Quarters     Unit = "quarters"
	Years        Unit = "years"
)

// Units lists every DATETIME_DIFF unit.
var Units = []Unit{Milliseconds, Seconds, Minutes, Hours, Days, Weeks, Months, Quarters, Years}

// ParseUnit returns the unit spelled s.
func ParseUnit(s string) (Unit, error) {
	for _, u := range Units {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown date unit %q", s)
}

// DateOption configures a DateField.
type DateOption func(*DateField)

// WithParser sets the parser used for Phrase values.
func WithParser(p DateParser) DateOption {
	return func(f *DateField) { f.parser = p }
}

// DateField is a date or date-time column.
//
// The accessor names read as the caller means them, but the rendered
// comparison puts the reference instant on the left: IsBefore(x) renders
// DATETIME_PARSE('x')>DATETIME_PARSE({name}).
type DateField struct {
	column
	parser DateParser
}

// NewDateField returns a date field named name. Phrases are parsed with
// the go-dateparser adapter unless WithParser is given.
func NewDateField(name string, opts ...DateOption) DateField {
	f := DateField{column: column{name: name}}
	for _, opt := range opts {
		opt(&f)
	}
	if f.parser == nil {
		f.parser = dateparse.New()
	}
	return f
}

func (DateField) Kind() Kind { return KindDate }

// Compare returns the comparison of the field under op.
func (f DateField) Compare(op Operator) DateComparison {
	return DateComparison{name: f.name, op: op, parser: f.parser}
}

func (f DateField) IsOn() DateComparison { return f.Compare(OpEq) }
func (f DateField) IsOnOrAfter() DateComparison { return f.Compare(OpGte) }
func (f DateField) IsOnOrBefore() DateComparison { return f.Compare(OpLte) }
func (f DateField) IsAfter() DateComparison { return f.Compare(OpLt) }
func (f DateField) IsBefore() DateComparison { return f.Compare(OpGt) }
func (f DateField) IsNotOn() DateComparison { return f.Compare(OpNe) }

func (f DateField) IsOnDate(w When) (string, error) { return f.IsOn().OnDate(w) }
func (f DateField) IsOnOrAfterDate(w When) (string, error) { return f.IsOnOrAfter().OnDate(w) }
func (f DateField) IsOnOrBeforeDate(w When) (string, error) { return f.IsOnOrBefore().OnDate(w) }
func (f DateField) IsAfterDate(w When) (string, error) { return f.IsAfter().OnDate(w) }
func (f DateField) IsBeforeDate(w When) (string, error) { return f.IsBefore().OnDate(w) }
func (f DateField) IsNotOnDate(w When) (string, error) { return f.IsNotOn().OnDate(w) }

// DateComparison is a date field bound to a comparison operator, waiting
// for the value to compare against.
type DateComparison struct {
	name   string
	op     Operator
	parser DateParser
}

// Name returns the name of the compared field.
func (c DateComparison) Name() string { return c.name }

// Operator returns the comparison operator.
func (c DateComparison) Operator() Operator { return c.op }

// OnDate compares the field against an absolute instant:
//
//	DATETIME_PARSE('2023-06-15 14:30:00')=DATETIME_PARSE({Created})
//
// A phrase the parser rejects yields a *DateParseError.
func (c DateComparison) OnDate(w When) (string, error) {
	t, err := w.resolve(c.parser)
	if err != nil {
		return "", err
	}
	return "DATETIME_PARSE('" + Instant(t) + "')" + string(c.op) + "DATETIME_PARSE(" + Ref(c.name) + ")", nil
}

// Ago compares the time elapsed since the field's value, in unit, with n:
//
//	DATETIME_DIFF(NOW(), {LastSeen}, 'seconds')>=30
func (c DateComparison) Ago(unit Unit, n int) string {
	return "DATETIME_DIFF(NOW(), " + Ref(c.name) + ", '" + string(unit) + "')" + string(c.op) + strconv.Itoa(n)
}

func (c DateComparison) MillisecondsAgo(n int) string { return c.Ago(Milliseconds, n) }
func (c DateComparison) SecondsAgo(n int) string { return c.Ago(Seconds, n) }
func (c DateComparison) MinutesAgo(n int) string { return c.Ago(Minutes, n) }
func (c DateComparison) HoursAgo(n int) string { return c.Ago(Hours, n) }
func (c DateComparison) DaysAgo(n int) string { return c.Ago(Days, n) }
func (c DateComparison) WeeksAgo(n int) string { return c.Ago(Weeks, n) }
func (c DateComparison) MonthsAgo(n int) string { return c.Ago(Months, n) }
func (c DateComparison) QuartersAgo(n int) string { return c.Ago(Quarters, n) }
func (c DateComparison) YearsAgo(n int) string { return c.Ago(Years, n) }
