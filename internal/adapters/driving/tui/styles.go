package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across views.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Dim      lipgloss.Style
	Chunk    lipgloss.Style
	OK       lipgloss.Style
	Fail     lipgloss.Style
	Warn     lipgloss.Style
	Help     lipgloss.Style
	ErrText  lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Normal:   lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Chunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		OK:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		ErrText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
