package formula

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airformula/internal/testutil"
)

var phrases = testutil.ParseTable{
	"2023-06-15": time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
	"today":      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	"2024-02-29": time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
}

func TestDateField_AccessorOperators(t *testing.T) {
	f := NewDateField("TestDate", WithParser(phrases))

	tests := []struct {
		name string
		cmp  DateComparison
		want Operator
	}{
		{"IsOn", f.IsOn(), OpEq},
		{"IsOnOrAfter", f.IsOnOrAfter(), OpGte},
		{"IsOnOrBefore", f.IsOnOrBefore(), OpLte},
		{"IsAfter", f.IsAfter(), OpLt},
		{"IsBefore", f.IsBefore(), OpGt},
		{"IsNotOn", f.IsNotOn(), OpNe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "TestDate", tt.cmp.Name())
			assert.Equal(t, tt.want, tt.cmp.Operator())
		})
	}
}

func TestDateField_OnTime(t *testing.T) {
	tests := []struct {
		name   string
		render func(DateField, When) (string, error)
		field  string
		at     time.Time
		want   string
	}{
		{
			"IsOn", DateField.IsOnDate, "Created",
			time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC),
			"DATETIME_PARSE('2023-06-15 14:30:00')=DATETIME_PARSE({Created})",
		},
		{
			"IsBefore", DateField.IsBeforeDate, "Deadline",
			time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			"DATETIME_PARSE('2023-12-31 23:59:59')>DATETIME_PARSE({Deadline})",
		},
		{
			"IsOnOrBefore", DateField.IsOnOrBeforeDate, "EventDate",
			time.Date(2023, 7, 4, 12, 0, 0, 0, time.UTC),
			"DATETIME_PARSE('2023-07-04 12:00:00')<=DATETIME_PARSE({EventDate})",
		},
		{
			"IsNotOn", DateField.IsNotOnDate, "ExcludeDate",
			time.Date(2023, 11, 25, 0, 0, 0, 0, time.UTC),
			"DATETIME_PARSE('2023-11-25 00:00:00')!=DATETIME_PARSE({ExcludeDate})",
		},
		{
			"IsAfter", DateField.IsAfterDate, "StartDate",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			"DATETIME_PARSE('2023-01-01 00:00:00')<DATETIME_PARSE({StartDate})",
		},
		{
			"IsOnOrAfter", DateField.IsOnOrAfterDate, "LaunchDate",
			time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
			"DATETIME_PARSE('2023-03-15 00:00:00')>=DATETIME_PARSE({LaunchDate})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.render(NewDateField(tt.field, WithParser(phrases)), At(tt.at))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateField_ShortcutMatchesComparison(t *testing.T) {
	f := NewDateField("Modified", WithParser(phrases))

	direct, err := f.IsOnDate(Phrase("2023-06-15"))
	require.NoError(t, err)
	viaComparison, err := f.IsOn().OnDate(Phrase("2023-06-15"))
	require.NoError(t, err)

	assert.Equal(t, viaComparison, direct)
	assert.Equal(t, "DATETIME_PARSE('2023-06-15 00:00:00')=DATETIME_PARSE({Modified})", direct)
}

func TestDateComparison_Phrase(t *testing.T) {
	f := NewDateField("LeapDate", WithParser(phrases))

	got, err := f.IsOn().OnDate(Phrase("2024-02-29"))
	require.NoError(t, err)
	assert.Equal(t, "DATETIME_PARSE('2024-02-29 00:00:00')=DATETIME_PARSE({LeapDate})", got)

	got, err = f.IsOnOrAfter().OnDate(Phrase("today"))
	require.NoError(t, err)
	assert.Equal(t, "DATETIME_PARSE('2024-03-10 00:00:00')>=DATETIME_PARSE({LeapDate})", got)
}

func TestDateComparison_InvalidPhrase(t *testing.T) {
	f := NewDateField("TestDate", WithParser(phrases))

	shortcuts := map[string]func(When) (string, error){
		"IsOnDate":         f.IsOnDate,
		"IsBeforeDate":     f.IsBeforeDate,
		"IsAfterDate":      f.IsAfterDate,
		"IsOnOrBeforeDate": f.IsOnOrBeforeDate,
		"IsOnOrAfterDate":  f.IsOnOrAfterDate,
		"IsNotOnDate":      f.IsNotOnDate,
	}

	for name, render := range shortcuts {
		t.Run(name, func(t *testing.T) {
			got, err := render(Phrase("not-a-date"))
			require.Error(t, err)
			assert.Empty(t, got, "no partial formula on failure")
			assert.True(t, IsDateParseError(err))

			var pe *DateParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "not-a-date", pe.Input)
			assert.ErrorIs(t, err, testutil.ErrUnknownPhrase)
		})
	}
}

func TestDateComparison_ZeroTimeIsParseError(t *testing.T) {
	zero := DateParserFunc(func(string) (time.Time, error) { return time.Time{}, nil })
	f := NewDateField("D", WithParser(zero))

	_, err := f.IsOn().OnDate(Phrase("whenever"))
	require.Error(t, err)
	assert.True(t, IsDateParseError(err))
	assert.Equal(t, `could not parse date "whenever"`, err.Error())
}

func TestDateComparison_AtSkipsParser(t *testing.T) {
	calls := 0
	counting := DateParserFunc(func(string) (time.Time, error) {
		calls++
		return time.Time{}, errors.New("unexpected")
	})
	f := NewDateField("D", WithParser(counting))

	_, err := f.IsOn().OnDate(At(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	f.IsOn().DaysAgo(3)
	assert.Zero(t, calls)
}

func TestDateComparison_Ago(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"milliseconds", NewDateField("LastSeen").IsOnOrAfter().MillisecondsAgo(5000), "DATETIME_DIFF(NOW(), {LastSeen}, 'milliseconds')>=5000"},
		{"seconds", NewDateField("LastSeen").IsOnOrAfter().SecondsAgo(30), "DATETIME_DIFF(NOW(), {LastSeen}, 'seconds')>=30"},
		{"minutes", NewDateField("LastActive").IsBefore().MinutesAgo(15), "DATETIME_DIFF(NOW(), {LastActive}, 'minutes')>15"},
		{"hours", NewDateField("CreatedAt").IsAfter().HoursAgo(24), "DATETIME_DIFF(NOW(), {CreatedAt}, 'hours')<24"},
		{"days", NewDateField("PostDate").IsOn().DaysAgo(7), "DATETIME_DIFF(NOW(), {PostDate}, 'days')=7"},
		{"weeks", NewDateField("EventDate").IsNotOn().WeeksAgo(2), "DATETIME_DIFF(NOW(), {EventDate}, 'weeks')!=2"},
		{"months", NewDateField("BirthDate").IsOnOrAfter().MonthsAgo(12), "DATETIME_DIFF(NOW(), {BirthDate}, 'months')>=12"},
		{"quarters", NewDateField("ReportDate").IsOnOrBefore().QuartersAgo(4), "DATETIME_DIFF(NOW(), {ReportDate}, 'quarters')<=4"},
		{"years", NewDateField("StartDate").IsBefore().YearsAgo(5), "DATETIME_DIFF(NOW(), {StartDate}, 'years')>5"},
		{"negative", NewDateField("End Date").IsOnOrAfter().DaysAgo(-30), "DATETIME_DIFF(NOW(), {End Date}, 'days')>=-30"},
		{"zero", NewDateField("Now").IsOn().SecondsAgo(0), "DATETIME_DIFF(NOW(), {Now}, 'seconds')=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestDateComparison_AgoEveryUnit(t *testing.T) {
	c := NewDateField("T").IsOn()

	for _, u := range Units {
		t.Run(string(u), func(t *testing.T) {
			assert.Equal(t, "DATETIME_DIFF(NOW(), {T}, '"+string(u)+"')=1", c.Ago(u, 1))

			parsed, err := ParseUnit(string(u))
			require.NoError(t, err)
			assert.Equal(t, u, parsed)
		})
	}

	_, err := ParseUnit("fortnights")
	assert.Error(t, err)
}

func TestInstant(t *testing.T) {
	assert.Equal(t, "2023-06-15 14:30:00", Instant(time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2023-06-15 14:30:00.123456", Instant(time.Date(2023, 6, 15, 14, 30, 0, 123456789, time.UTC)))
	assert.Equal(t, "2023-06-15 14:30:00", Instant(time.Date(2023, 6, 15, 14, 30, 0, 999, time.UTC)),
		"sub-microsecond precision is dropped")

	// Wall clock of the value's own location, no offset.
	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "2023-06-15 23:30:00", Instant(time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC).In(tokyo)))
}

func TestInstant_DropsOffset(t *testing.T) {
	plusTwo := time.FixedZone("", 2*60*60)
	assert.Equal(t, "2023-06-15 14:30:00", Instant(time.Date(2023, 6, 15, 14, 30, 0, 0, plusTwo)))
}

func TestDateField_ZeroValueUsesDefaultParser(t *testing.T) {
	var f DateField

	got, err := f.IsOn().OnDate(Phrase("2023-06-15 14:30:00"))
	require.NoError(t, err)
	assert.Equal(t, "DATETIME_PARSE('2023-06-15 14:30:00')=DATETIME_PARSE({})", got)

	var cmp DateComparison
	_, err = cmp.OnDate(Phrase("qwxz blorp"))
	require.Error(t, err)
	assert.True(t, IsDateParseError(err))
}

func TestDateField_Kind(t *testing.T) {
	f := NewDateField("TestDate")

	assert.Equal(t, KindDate, f.Kind())
	assert.Equal(t, "{TestDate}=BLANK()", f.IsEmpty())
	assert.Equal(t, "{TestDate}", f.IsNotEmpty())
}
