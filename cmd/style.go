package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	dir   lipgloss.Style
	label lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
}

// newStyles adapts to w: plain text unless w is a color terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		dir:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: r.NewStyle().Foreground(lipgloss.Color("#626262")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
