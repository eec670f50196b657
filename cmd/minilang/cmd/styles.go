package cmd

import "github.com/charmbracelet/lipgloss"

var (
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
)
