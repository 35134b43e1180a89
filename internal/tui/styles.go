package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	statusStyles = map[string]lipgloss.Style{
		"completed":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cancelled":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"in_progress": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)
