package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allbin/serial-sender/internal/transmit"
)

// Reporter forwards run events to a running program
type Reporter struct {
	send func(tea.Msg)
}

var _ transmit.Reporter = (*Reporter)(nil)

func NewReporter(p *tea.Program) *Reporter {
	return &Reporter{send: p.Send}
}

func (r *Reporter) Start(total int)     { r.send(StartMsg{Total: total}) }
func (r *Reporter) Sending(line string) { r.send(SendingMsg{Line: line}) }
func (r *Reporter) Complete()           { r.send(CompleteMsg{}) }
func (r *Reporter) Failed(err error)    { r.send(FailedMsg{Err: err}) }

// Run shows the progress view while run executes. run gets a Reporter
// bound to the view; the view closes once run returns. Quitting the view
// early returns ErrInterrupted without waiting for run.
func Run(port, file string, run func(transmit.Reporter) error, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(port, file), opts...)

	done := make(chan error, 1)
	go func() {
		err := run(NewReporter(p))
		p.Send(DoneMsg{})
		done <- err
	}()

	final, viewErr := p.Run()
	if m, ok := final.(Model); ok && m.interrupted {
		// run still owns the port; it is released when the process exits
		return errors.Join(ErrInterrupted, viewErr)
	}
	return errors.Join(<-done, viewErr)
}
