package alerts

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/ultrasearch/internal/cmd/emoji"
)

// Level is the severity of an alert.
type Level int

const (
	LevelWarning Level = iota
	LevelSuccess
)

// Icon returns the symbol printed in front of the message.
func (l Level) Icon() string {
	if l == LevelSuccess {
		return emoji.Success
	}
	return emoji.Warning
}

// Style returns the terminal style for the level.
func (l Level) Style() lipgloss.Style {
	if l == LevelSuccess {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
}
