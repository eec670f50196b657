// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     explorer
// Description: Styles for the Explorer TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package explorer

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as other TUI components for consistency
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorBgPanel    = lipgloss.Color("#1E293B") // Slate 800
	ColorBgSelected = lipgloss.Color("#3B0764") // Purple 950

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Tab styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgSelected).
			Bold(true).
			Padding(0, 2)
)

// Content styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	ErrorLineStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	TraceStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	SyntaxErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	SemanticErrorStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Background(ColorBgPanel).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
