/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd sends the configured file when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "serial-sender [file]",
	Short: "Send the lines of a CSV file to a serial device",
	Long: `Send the lines of a CSV file to a device on a serial port, one line at a time.

The port is opened, the device is given time to reset, then every non-blank
line of the file is written followed by a newline, with a short pause after
each line so the device can keep up. Nothing is read back from the device.

Settings come from flags, SERIAL_SENDER_* environment variables or a config
file (./serial-sender.yaml by default), in that order of precedence.

Example usage:
  serial-sender
  serial-sender readings.csv --port /dev/ttyACM0 --baud 115200
  SERIAL_SENDER_LINE_DELAY=1s serial-sender --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSend,
}

// exit ends the process; replaced in tests
var exit = os.Exit

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exit(1)
	}
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addSendFlags(rootCmd.Flags())
}
