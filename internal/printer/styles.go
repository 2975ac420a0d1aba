// Package printer renders conversion results as styled terminal text.
package printer

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the text styles used by the printers.
// Styles are bound to a renderer for the destination writer, so color is only emitted to terminals.
type styles struct {
	title   lipgloss.Style
	result  lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		result:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		heading: r.NewStyle().Bold(true).Underline(true),
	}
}
