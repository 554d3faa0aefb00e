package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for the CLI output.
var (
	// Question and answer styles.
	questionPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")) // blue
	answerPrefixStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	answerBlockStyle    = lipgloss.NewStyle().PaddingLeft(1)

	// Reasoning chain styles.
	phaseStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	thinkingTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray

	// Tool styles.
	toolNameStyle   = lipgloss.NewStyle().Bold(true)
	toolResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // dim gray
	toolErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red

	// Warning style.
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
)

// Tree-drawing character for tool result lines.
const treeCorner = "└ "
