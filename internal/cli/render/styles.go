// Package render рисует представления дашборда в терминале.
package render

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#FFD208")
	muted       = lipgloss.Color("#8A8F98")
	success     = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#E53935")
	info        = lipgloss.Color("#2196F3")
)

// Styles — набор стилей, которыми рисуются все представления.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Pending lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

// DefaultStyles — стили CLI по умолчанию.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Success: lipgloss.NewStyle().Foreground(success),
		Error:   lipgloss.NewStyle().Foreground(destructive),
		Pending: lipgloss.NewStyle().Foreground(info),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}
