// Package console prints transmission progress for a plain terminal.
package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serial-sender/internal/transmit"
)

// FailureGlyph prefixes the single line printed when a run fails
const FailureGlyph = "×"

// Reporter writes progress to out and the failure line to errOut
type Reporter struct {
	out    io.Writer
	errOut io.Writer

	markerStyle  lipgloss.Style
	sendingStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

var _ transmit.Reporter = (*Reporter)(nil)

// New returns a Reporter. Styles are rendered for each writer separately,
// so a redirected stream gets plain text.
func New(out, errOut io.Writer) *Reporter {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &Reporter{
		out:    out,
		errOut: errOut,
		markerStyle: outRenderer.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true),
		sendingStyle: outRenderer.NewStyle().
			Foreground(lipgloss.Color("99")),
		errorStyle: errRenderer.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

func (r *Reporter) Start(int) {
	fmt.Fprintln(r.out, r.markerStyle.Render("Start"))
}

func (r *Reporter) Sending(line string) {
	fmt.Fprintf(r.out, "%s %s\n", r.sendingStyle.Render("Sending:"), line)
}

func (r *Reporter) Complete() {
	fmt.Fprintln(r.out, r.markerStyle.Render("Complete"))
}

func (r *Reporter) Failed(err error) {
	fmt.Fprintf(r.errOut, "%s %s\n", r.errorStyle.Render(FailureGlyph), FailureMessage(err))
}

// FailureMessage names the failure kind followed by its detail, e.g.
// "File not found: weather_data.csv"
func FailureMessage(err error) string {
	var txErr *transmit.Error
	if errors.As(err, &txErr) {
		return fmt.Sprintf("%s: %s", txErr.Kind, txErr.Detail())
	}
	return fmt.Sprintf("Error: %v", err)
}
