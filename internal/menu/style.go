package menu

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	err    lipgloss.Style
	alert  lipgloss.Style
	ok     lipgloss.Style
	header lipgloss.Style
}

// newStyles binds styles to out so colour is dropped when out is not a
// terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		err:    r.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		alert:  r.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		header: r.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
	}
}
