package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders text output with lipgloss. A nil *Styles renders text
// unchanged.
type Styles struct {
	name    lipgloss.Style
	formula lipgloss.Style
	dim     lipgloss.Style
	err     lipgloss.Style
}

// NewStyles returns styles bound to w's color profile, so writers that are
// not color terminals get plain text. It returns nil when noColor is set.
func NewStyles(w io.Writer, noColor bool) *Styles {
	if noColor {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	return &Styles{
		name: r.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
		formula: r.NewStyle().
			Foreground(lipgloss.Color("15")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("8")),
		err: r.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
	}
}

// Name styles formula and command names.
func (s *Styles) Name(text string) string {
	if s == nil {
		return text
	}
	return s.name.Render(text)
}

// Formula styles rendered formula text.
func (s *Styles) Formula(text string) string {
	if s == nil {
		return text
	}
	return s.formula.Render(text)
}

// Dim styles descriptions and secondary information.
func (s *Styles) Dim(text string) string {
	if s == nil {
		return text
	}
	return s.dim.Render(text)
}

func (s *Styles) Error(text string) string {
	if s == nil {
		return text
	}
	return s.err.Render(text)
}
