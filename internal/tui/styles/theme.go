package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serial-sender/internal/tui/colors"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay1)

	LineStyle = lipgloss.NewStyle().
			Foreground(colors.Text)

	SendingLabelStyle = lipgloss.NewStyle().
				Foreground(colors.Blue)

	StatusWaitingStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	StatusSendingStyle = lipgloss.NewStyle().
				Foreground(colors.Blue).
				Bold(true)

	StatusCompleteStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	StatusFailedStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface1).
			Padding(0, 1)
)

type StatusType int

const (
	StatusWaiting StatusType = iota
	StatusSending
	StatusComplete
	StatusFailed
)

func (s StatusType) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting for device"
	case StatusSending:
		return "Sending"
	case StatusComplete:
		return "Complete"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func GetStatusStyle(status StatusType) lipgloss.Style {
	switch status {
	case StatusWaiting:
		return StatusWaitingStyle
	case StatusSending:
		return StatusSendingStyle
	case StatusComplete:
		return StatusCompleteStyle
	default:
		return StatusFailedStyle
	}
}
