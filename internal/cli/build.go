package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/airformula/formula"
	"github.com/roach88/airformula/internal/dateparse"
	"github.com/roach88/airformula/internal/recipe"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output      string // output file path
	Now         string // reference time for relative date phrases
	Location    string
	DateFormats []string
}

// BuildResult is the JSON payload of the build command.
type BuildResult struct {
	Recipe   string           `json:"recipe"`
	Formulas []recipe.Formula `json:"formulas"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <recipe-file>",
		Short: "Compile a recipe to formulas",
		Long: `Compile a recipe document to Airtable formula text.

The recipe format is picked from the file extension: .yaml, .yml, .json,
.toml or .cue. Each named formula is printed as "name: formula".

Example:
  airformula build recipes/catalog.yaml
  airformula build --format json --output formulas.txt recipes/catalog.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "also write formulas to this file")
	cmd.Flags().StringVar(&opts.Now, "now", "", "reference time for relative date phrases (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA time zone for parsed dates")
	cmd.Flags().StringArrayVar(&opts.DateFormats, "date-format", nil, `layout tried before free-form date parsing, e.g. "%d/%m/%Y" (repeatable)`)

	return cmd
}

func runBuild(opts *BuildOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	parserOpts, err := parserOptions(opts.Now, opts.Location, opts.DateFormats)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), err)
	}

	logger.Debug("loading recipe", "path", path)
	doc, err := recipe.Load(path)
	if err != nil {
		var loadErr *recipe.LoadError
		if errors.As(err, &loadErr) {
			return formatter.fail(ExitCommandError, loadErr.Code, loadErrorMessage(loadErr), err)
		}
		return formatter.fail(ExitCommandError, ErrCodeGeneric, err.Error(), err)
	}
	logger.Debug("recipe loaded", "fields", len(doc.Fields), "formulas", len(doc.Formulas))

	compiler := recipe.NewCompiler(
		recipe.WithParser(dateparse.New(parserOpts...)),
		recipe.WithLogger(logger),
	)
	formulas, err := compiler.Compile(doc)
	if err != nil {
		code := ErrCodeCompile
		if formula.IsDateParseError(err) {
			code = ErrCodeDateParse
		}
		return formatter.fail(ExitFailure, code, err.Error(), err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(plainListing(formulas)), 0o644); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), err)
		}
		formatter.VerboseLog("Wrote %d formula(s) to %s", len(formulas), opts.Output)
	}

	return formatter.Success(BuildResult{Recipe: path, Formulas: formulas}, styledListing(formatter, formulas))
}

// loadErrorMessage prefixes the message with the CUE position, if any.
func loadErrorMessage(e *recipe.LoadError) string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// plainListing renders one "name: formula" line per formula.
func plainListing(formulas []recipe.Formula) string {
	var b strings.Builder
	for _, f := range formulas {
		fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Text)
	}
	return b.String()
}

func styledListing(formatter *OutputFormatter, formulas []recipe.Formula) string {
	if len(formulas) == 0 {
		return formatter.Styles.Dim("(no formulas)")
	}

	lines := make([]string, 0, len(formulas))
	for _, f := range formulas {
		if formatter.Verbose && f.Description != "" {
			lines = append(lines, formatter.Styles.Dim("# "+f.Description))
		}
		lines = append(lines, formatter.Styles.Name(f.Name+":")+" "+formatter.Styles.Formula(f.Text))
	}
	return strings.Join(lines, "\n")
}
