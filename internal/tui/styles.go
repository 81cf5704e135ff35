package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the panel view.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Selector lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	CardName lipgloss.Style
	Badge    lipgloss.Style
	Private  lipgloss.Style
	Meta     lipgloss.Style
	URL      lipgloss.Style
	Empty    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Selector: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		CardName: lipgloss.NewStyle().Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("28")).
			Padding(0, 1),
		Private: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("130")).
			Padding(0, 1),
		Meta:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		URL:   lipgloss.NewStyle().Faint(true).Underline(true),
		Empty: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Help:  lipgloss.NewStyle().Faint(true),
	}
}
