package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Prompt      lipgloss.Style
	Query       lipgloss.Style
	Cursor      lipgloss.Style
	Dim         lipgloss.Style
	Name        lipgloss.Style
	LineNumber  lipgloss.Style
	Match       lipgloss.Style
	SelectionBg lipgloss.Style
	MatchLineBg lipgloss.Style
	Gutter      lipgloss.Style
	Summary     lipgloss.Style
	Scan        lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Query:       lipgloss.NewStyle().Bold(true),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Name:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		MatchLineBg: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Gutter:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Summary:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scan:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
	}
}

// NewPlainStyles returns styles that render text unchanged
func NewPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title: plain, Prompt: plain, Query: plain, Cursor: plain, Dim: plain,
		Name: plain, LineNumber: plain, Match: plain, SelectionBg: plain,
		MatchLineBg: plain, Gutter: plain, Summary: plain, Scan: plain,
		StatusError: plain, Help: plain,
	}
}
