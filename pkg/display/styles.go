package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Shared pterm styles for terminal rendering
var (
	TitleStyle   = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	KeepStyle    = pterm.NewStyle(pterm.FgGreen)
	RemoveStyle  = pterm.NewStyle(pterm.FgRed)
	MutedStyle   = pterm.NewStyle(pterm.FgGray)
	SuccessStyle = pterm.NewStyle(pterm.FgGreen)
	FailureStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
)

// ErrorStyle renders fatal errors in the CLI entry point.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true)
