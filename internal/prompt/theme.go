package prompt

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used to render prompts. Colors are ANSI 256 codes.
type Theme struct {
	Label    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style
	Answer   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme is the built-in prompt theme.
var DefaultTheme = Theme{
	Label:    lipgloss.NewStyle().Bold(true),
	Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Answer:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}
