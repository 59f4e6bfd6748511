package tui

import (
	"github.com/charmbracelet/lipgloss"

	"CovidDash/internal/domain"
)

var (
	infoColor    = lipgloss.Color("#2196F3")
	warnColor    = lipgloss.Color("#FFC107")
	successColor = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#e53935")
	mutedColor   = lipgloss.Color("#6b7280")
	chartColor   = lipgloss.Color("#4db6ac")
)

type styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Muted    lipgloss.Style
	Chart    lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Status   map[domain.Severity]lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(successColor),
		Section:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		Muted:    lipgloss.NewStyle().Foreground(mutedColor),
		Chart:    lipgloss.NewStyle().Foreground(chartColor),
		Focused:  lipgloss.NewStyle().Foreground(infoColor).Bold(true),
		Disabled: lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true),
		Status: map[domain.Severity]lipgloss.Style{
			domain.SeverityInfo:    lipgloss.NewStyle().Foreground(infoColor),
			domain.SeverityWarn:    lipgloss.NewStyle().Foreground(warnColor),
			domain.SeveritySuccess: lipgloss.NewStyle().Foreground(successColor),
			domain.SeverityError:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		},
	}
}

func (s styles) status(sev domain.Severity) lipgloss.Style {
	if st, ok := s.Status[sev]; ok {
		return st
	}
	return s.Status[domain.SeverityInfo]
}
