package cli

import "github.com/charmbracelet/lipgloss"

// Shared styles for command output. Kept minimal so output degrades
// gracefully on dumb terminals.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)
