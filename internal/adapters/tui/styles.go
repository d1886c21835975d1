package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/grove/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	nodeStyle = lipgloss.NewStyle().
			Foreground(style.Ink)

	groupStyle = lipgloss.NewStyle().
			Foreground(style.Blue)

	statusStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate)
)
