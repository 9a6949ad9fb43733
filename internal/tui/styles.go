// Package tui is the terminal front end: a bubbletea program that renders the
// page controllers and routes between them.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/view"
)

var (
	colorPrimary     = lipgloss.Color("#2196F3")
	colorMuted       = lipgloss.Color("#6b7280")
	colorBorder      = lipgloss.Color("#2a3850")
	colorSuccess     = lipgloss.Color("#8BC34A")
	colorDestructive = lipgloss.Color("#e53935")
	colorWarning     = lipgloss.Color("#FFC107")
)

// Styles groups every lipgloss style used by the pages.
type Styles struct {
	Header       lipgloss.Style
	Title        lipgloss.Style
	Muted        lipgloss.Style
	Bold         lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Card         lipgloss.Style
	Modal        lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	StatChip     lipgloss.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorPrimary).Padding(0, 1),
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Bold:         lipgloss.NewStyle().Bold(true),
		Error:        lipgloss.NewStyle().Foreground(colorDestructive),
		Help:         lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Label:        lipgloss.NewStyle().Width(14).Foreground(colorMuted),
		FocusedLabel: lipgloss.NewStyle().Width(14).Bold(true).Foreground(colorPrimary),
		Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Modal:        lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorDestructive).Padding(1, 2),
		ToastSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#101F38")).Background(colorSuccess).Padding(0, 1),
		ToastError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(colorDestructive).Padding(0, 1),
		StatChip:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorBorder).Padding(0, 1),
	}
}

// Toast renders a notification, or "" when there is none.
func (s Styles) Toast(t *view.Toast) string {
	if t == nil {
		return ""
	}
	if t.Kind == view.ToastError {
		return s.ToastError.Render(t.Message)
	}
	return s.ToastSuccess.Render(t.Message)
}

// Status renders a status badge.
func (s Styles) Status(st project.Status) string {
	style := lipgloss.NewStyle()
	switch st {
	case project.StatusCompleted:
		style = style.Foreground(colorSuccess)
	case project.StatusOnHold:
		style = style.Foreground(colorWarning)
	case project.StatusInProgress:
		style = style.Foreground(colorPrimary)
	}
	return style.Render(string(st))
}
