// Package tui renders transmission progress as a Bubble Tea program.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serial-sender/internal/console"
	"github.com/allbin/serial-sender/internal/tui/styles"
)

const (
	maxRecentLines   = 8
	minProgressWidth = 10
	maxProgressWidth = 60
)

// ErrInterrupted is returned by Run when the user quits the view before the
// run has finished
var ErrInterrupted = errors.New("interrupted")

// StartMsg is sent once the input file has been read
type StartMsg struct {
	Total int
}

// SendingMsg is sent after each line has been written to the port
type SendingMsg struct {
	Line string
}

// CompleteMsg is sent after the last line
type CompleteMsg struct{}

// FailedMsg carries the error that ended the run
type FailedMsg struct {
	Err error
}

// DoneMsg tells the program the run has returned and the view can close
type DoneMsg struct{}

// Model is the progress view for a single run
type Model struct {
	port     string
	file     string
	status   styles.StatusType
	total    int
	sent     int
	recent   []string
	err      error
	progress progress.Model

	interrupted bool
}

// NewModel returns a model in the waiting state
func NewModel(port, file string) Model {
	return Model{
		port:     port,
		file:     file,
		status:   styles.StatusWaiting,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			m.status = styles.StatusFailed
			m.err = ErrInterrupted
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = max(min(msg.Width-12, maxProgressWidth), minProgressWidth)
	case StartMsg:
		m.status = styles.StatusSending
		m.total = msg.Total
	case SendingMsg:
		m.sent++
		m.recent = append(m.recent, msg.Line)
		if len(m.recent) > maxRecentLines {
			m.recent = m.recent[len(m.recent)-maxRecentLines:]
		}
	case CompleteMsg:
		m.status = styles.StatusComplete
	case FailedMsg:
		m.status = styles.StatusFailed
		m.err = msg.Err
	case DoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

// Percent is the fraction of lines sent so far
func (m Model) Percent() float64 {
	if m.total == 0 {
		if m.status == styles.StatusComplete {
			return 1
		}
		return 0
	}
	return float64(m.sent) / float64(m.total)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("serial-sender"))
	b.WriteString(" ")
	b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("%s → %s", m.file, m.port)))
	b.WriteString("\n\n")

	b.WriteString(styles.GetStatusStyle(m.status).Render(m.status.String()))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.Percent()))
	b.WriteString(fmt.Sprintf(" %d/%d", m.sent, m.total))
	b.WriteString("\n")

	if len(m.recent) > 0 {
		lines := make([]string, len(m.recent))
		for i, line := range m.recent {
			lines[i] = styles.SendingLabelStyle.Render("Sending:") + " " + styles.LineStyle.Render(line)
		}
		b.WriteString(styles.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(styles.StatusFailedStyle.Render(console.FailureGlyph))
		b.WriteString(" ")
		b.WriteString(console.FailureMessage(m.err))
		b.WriteString("\n")
	}

	return b.String()
}
