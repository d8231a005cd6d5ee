package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allbin/serial-sender/internal/transmit"
	"github.com/allbin/serial-sender/internal/tui/styles"
)

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModelProgress(t *testing.T) {
	m := NewModel("/dev/ttyUSB0", "weather_data.csv")
	assert.Equal(t, styles.StatusWaiting, m.status)
	assert.Contains(t, m.View(), "Waiting for device")

	m = update(t, m, StartMsg{Total: 2}, SendingMsg{Line: "21.5,60"})
	assert.Equal(t, styles.StatusSending, m.status)
	assert.InDelta(t, 0.5, m.Percent(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "Sending: 21.5,60")
	assert.Contains(t, view, "weather_data.csv → /dev/ttyUSB0")

	m = update(t, m, SendingMsg{Line: "30.0,invalid"}, CompleteMsg{})
	assert.Equal(t, styles.StatusComplete, m.status)
	assert.InDelta(t, 1.0, m.Percent(), 1e-9)
	assert.Contains(t, m.View(), "2/2")
}

func TestModelKeepsRecentLines(t *testing.T) {
	m := update(t, NewModel("COM3", "data.csv"), StartMsg{Total: 20})
	for i := 0; i < 20; i++ {
		m = update(t, m, SendingMsg{Line: string(rune('a' + i))})
	}

	assert.Len(t, m.recent, maxRecentLines)
	assert.Equal(t, "t", m.recent[len(m.recent)-1])
	assert.Equal(t, 20, m.sent)
}

func TestModelEmptyFileCompletes(t *testing.T) {
	m := update(t, NewModel("COM3", "data.csv"), StartMsg{Total: 0}, CompleteMsg{})
	assert.InDelta(t, 1.0, m.Percent(), 1e-9)
}

func TestModelFailure(t *testing.T) {
	err := &transmit.Error{Kind: transmit.KindFileNotFound, Target: "weather_data.csv", Err: errors.New("no such file")}
	m := update(t, NewModel("COM3", "weather_data.csv"), FailedMsg{Err: err})

	assert.Equal(t, styles.StatusFailed, m.status)
	assert.Contains(t, m.View(), "× File not found: weather_data.csv")
}

func TestModelQuitsWhenDone(t *testing.T) {
	_, cmd := NewModel("COM3", "data.csv").Update(DoneMsg{})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModelWindowResize(t *testing.T) {
	m := update(t, NewModel("COM3", "data.csv"), tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, maxProgressWidth, m.progress.Width)

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 40})
	assert.Equal(t, 38, m.progress.Width)
}

func TestReporterForwardsEvents(t *testing.T) {
	var msgs []tea.Msg
	r := &Reporter{send: func(msg tea.Msg) { msgs = append(msgs, msg) }}

	failure := errors.New("boom")
	r.Start(3)
	r.Sending("x")
	r.Complete()
	r.Failed(failure)

	assert.Equal(t, []tea.Msg{
		StartMsg{Total: 3},
		SendingMsg{Line: "x"},
		CompleteMsg{},
		FailedMsg{Err: failure},
	}, msgs)
}

func TestModelTinyWindow(t *testing.T) {
	m := update(t, NewModel("COM3", "data.csv"), tea.WindowSizeMsg{Width: 4, Height: 2})
	assert.Equal(t, minProgressWidth, m.progress.Width)
	assert.NotEmpty(t, m.View())
}

func TestModelCtrlCInterrupts(t *testing.T) {
	m := update(t, NewModel("COM3", "data.csv"), StartMsg{Total: 4})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	m = next.(Model)
	assert.True(t, m.interrupted)
	assert.Equal(t, styles.StatusFailed, m.status)
	assert.Contains(t, m.View(), "interrupted")
}

func TestModelIgnoresOtherKeys(t *testing.T) {
	_, cmd := NewModel("COM3", "data.csv").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
}

func headless(input io.Reader) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(input), tea.WithOutput(io.Discard)}
}

func TestRunReturnsRunError(t *testing.T) {
	failure := &transmit.Error{Kind: transmit.KindConnection, Target: "COM3", Err: errors.New("access denied")}

	err := Run("COM3", "data.csv", func(r transmit.Reporter) error {
		r.Start(1)
		r.Failed(failure)
		return failure
	}, headless(nil)...)

	assert.ErrorIs(t, err, transmit.ErrConnection)
	assert.NotErrorIs(t, err, ErrInterrupted)
}

func TestRunSuccess(t *testing.T) {
	var sent []string
	err := Run("COM3", "data.csv", func(r transmit.Reporter) error {
		r.Start(2)
		for _, line := range []string{"a", "b"} {
			r.Sending(line)
			sent = append(sent, line)
		}
		r.Complete()
		return nil
	}, headless(nil)...)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sent)
}

func TestRunInterruptedByCtrlC(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	err := Run("COM3", "data.csv", func(r transmit.Reporter) error {
		r.Start(10)
		<-release
		return nil
	}, headless(strings.NewReader("\x03"))...)

	assert.ErrorIs(t, err, ErrInterrupted)
}
