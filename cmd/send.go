/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	serial "github.com/allbin/serial-sender"
	"github.com/allbin/serial-sender/internal/console"
	"github.com/allbin/serial-sender/internal/logging"
	"github.com/allbin/serial-sender/internal/transmit"
	"github.com/allbin/serial-sender/internal/tui"
)

func runSend(cmd *cobra.Command, args []string) {
	s, err := loadSettings(cmd.Flags(), args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exit(1)
		return
	}

	// The failure line has already been printed by the reporter
	if err := send(s, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		printPortHint(cmd.ErrOrStderr(), err)
		exit(1)
	}
}

// send runs one transmission with the console or TUI reporter
func send(s settings, out, errOut io.Writer) error {
	if s.TUI {
		// Log records would tear the view, the failure is shown in it instead
		return tui.Run(s.Transmit.Port, s.Transmit.File, func(r transmit.Reporter) error {
			return transmitWith(s.Transmit, logging.Discard(), r)
		})
	}

	logger := logging.New(s.LogLevel, errOut).With("component", "transmit")
	return transmitWith(s.Transmit, logger, console.New(out, errOut))
}

func transmitWith(cfg transmit.Config, logger *slog.Logger, r transmit.Reporter, opts ...transmit.Option) error {
	opts = append([]transmit.Option{
		transmit.WithLogger(logger),
		transmit.WithReporter(r),
	}, opts...)

	tx, err := transmit.New(cfg, opts...)
	if err != nil {
		return err
	}
	return tx.Run()
}

// printPortHint lists the ports that do exist when the configured one does not
func printPortHint(w io.Writer, err error) {
	if !errors.Is(err, serial.ErrDeviceNotFound) {
		return
	}

	ports, listErr := serial.ListPorts()
	if listErr != nil || len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return
	}
	fmt.Fprintf(w, "Available ports: %s\n", strings.Join(ports, ", "))
}
