package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/airformula/formula"
	"github.com/roach88/airformula/internal/recipe"
)

// ExampleFormula builds the formula the example command prints: warn scouts
// about lab 063 jobs whose map is flagged hard to see.
func ExampleFormula() recipe.Formula {
	labCode := formula.NewTextField("Lab Code")
	jobFlags := formula.NewTextField("Job Flags")

	text := formula.If(formula.And(
		labCode.Equals("063"),
		jobFlags.Contains("Map Hard to See", formula.NoTrim()),
	)).
		Then("Warning: Hard to See - Scout!", formula.AsString()).
		Else("")

	return recipe.Formula{
		Name:        "warning",
		Description: "Warn scouts about lab 063 jobs whose map is hard to see",
		Text:        text,
	}
}

// NewExampleCommand creates the example command.
func NewExampleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example formula",
		Long: `Print a formula built with the Go API:

  IF(AND({Lab Code}="063",FIND(LOWER("Map Hard to See"), LOWER({Job Flags}))>0), "Warning: Hard to See - Scout!", )`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			f := ExampleFormula()
			formatter.VerboseLog("%s: %s", f.Name, f.Description)
			return formatter.Success(f, formatter.Styles.Formula(f.Text))
		},
	}
}
