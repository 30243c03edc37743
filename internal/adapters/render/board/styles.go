package board

import (
	"github.com/bnema/roundctl/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	roundID   lipgloss.Style
	countdown lipgloss.Style
	urgent    lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	column    lipgloss.Style
	cell      lipgloss.Style
	help      lipgloss.Style
	warning   lipgloss.Style
	colors    map[domain.Color]lipgloss.Style
}

func newStyles() styles {
	red := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	green := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		roundID:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		countdown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		urgent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		column:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		cell:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		colors: map[domain.Color]lipgloss.Style{
			domain.ColorRed:         red,
			domain.ColorGreen:       green,
			domain.ColorRedViolet:   red.Underline(true),
			domain.ColorGreenViolet: green.Underline(true),
		},
	}
}

func (s styles) outcome(color domain.Color) lipgloss.Style {
	style, ok := s.colors[color]
	if !ok {
		return s.cell
	}
	return style
}

// violet marks the secondary color of the dual-colored digits 0 and 5.
var violet = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("129"))
