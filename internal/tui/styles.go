package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1)
	SelectedStyle    = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	UnselectedStyle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	DescriptionStyle = lipgloss.NewStyle().Foreground(ColorMuted).MarginLeft(4)
	HelpStyle        = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
)

const (
	SymbolSelected   = "●"
	SymbolUnselected = "○"
)
