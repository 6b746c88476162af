// Package tui provides an interactive terminal editor for the motionscan configuration file.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#0B7285", Dark: "#3BC9DB"}
	successColor = lipgloss.AdaptiveColor{Light: "#2B8A3E", Dark: "#69DB7C"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#FF8787"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#5C5F66"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#E67700", Dark: "#FFC078"}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtitleStyle renders the config file path under the title
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// EditedStyle marks categories with unsaved changes
	EditedStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	// BoxStyle frames the YAML preview and the quit prompt
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// GetTheme returns the huh theme for forms
func GetTheme() *huh.Theme {
	return huh.ThemeCharm()
}

// GetAccessibleTheme returns a plain theme for screen readers
func GetAccessibleTheme() *huh.Theme {
	return huh.ThemeBase()
}
