package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/airformula/formula"
	"github.com/roach88/airformula/internal/dateparse"
)

// DateOptions holds flags for the date command.
type DateOptions struct {
	*RootOptions
	Now         string   // reference time for relative phrases
	Location    string   // IANA zone results are converted to
	DateFormats []string // explicit layouts tried before free-form parsing
}

// DateResult is the JSON payload of the date command.
type DateResult struct {
	Phrase  string `json:"phrase"`
	Time    string `json:"time"`    // RFC 3339
	Literal string `json:"literal"` // DATETIME_PARSE('...')
}

// NewDateCommand creates the date command.
func NewDateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "date <phrase>",
		Short: "Show how a date phrase resolves",
		Long: `Parse a date phrase with the parser that date comparisons use and print
the DATETIME_PARSE literal it renders to.

Example:
  airformula date 2023-06-15
  airformula date --now 2024-01-31T12:00:00Z "3 days ago"
  airformula date --date-format "%d/%m/%Y" 03/04/2023`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Now, "now", "", "reference time for relative phrases (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA time zone for the result (default: as parsed)")
	cmd.Flags().StringArrayVar(&opts.DateFormats, "date-format", nil, `layout tried before free-form parsing, e.g. "%d/%m/%Y" (repeatable)`)

	return cmd
}

func runDate(opts *DateOptions, phrase string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	parserOpts, err := parserOptions(opts.Now, opts.Location, opts.DateFormats)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), err)
	}

	logger.Debug("parsing date phrase", "phrase", phrase, "now", opts.Now, "location", opts.Location)
	t, err := dateparse.New(parserOpts...).ParseDate(phrase)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeDateParse, err.Error(), err)
	}

	literal := "DATETIME_PARSE('" + formula.Instant(t) + "')"
	result := DateResult{
		Phrase:  phrase,
		Time:    t.Format(time.RFC3339Nano),
		Literal: literal,
	}
	return formatter.Success(result, formatter.Styles.Formula(literal))
}

// parserOptions turns the --now, --location and --date-format flags into
// parser options.
func parserOptions(now, location string, formats []string) ([]dateparse.Option, error) {
	var opts []dateparse.Option

	if now != "" {
		ref, err := parseNow(now)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dateparse.WithClock(func() time.Time { return ref }))
	}

	if location != "" {
		loc, err := time.LoadLocation(location)
		if err != nil {
			return nil, fmt.Errorf("invalid --location %q: %w", location, err)
		}
		opts = append(opts, dateparse.WithLocation(loc))
	}

	if len(formats) > 0 {
		opts = append(opts, dateparse.WithFormats(formats...))
	}

	return opts, nil
}

func parseNow(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}
