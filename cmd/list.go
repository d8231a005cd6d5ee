/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serial "github.com/allbin/serial-sender"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List the serial ports a device could be attached to.

On Linux this scans /dev for USB serial adapters (ttyUSB*), USB CDC/ACM
devices (ttyACM*), standard ports (ttyS*) and ARM board UARTs. On other
platforms the operating system's port list is used (COM ports on Windows).

Use the printed path with --port.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error listing ports: %v\n", err)
			exit(1)
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		renderPorts(cmd.OutOrStdout(), ports, tableFormat)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

func renderPorts(w io.Writer, ports []string, tableFormat bool) {
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return
	}

	if !tableFormat {
		for _, port := range ports {
			fmt.Fprintln(w, port)
		}
		return
	}

	renderTable(w, ports)
}

// renderTable renders the port list as a static table
func renderTable(w io.Writer, ports []string) {
	const (
		portWidth = 20
		descWidth = 30
	)

	renderer := lipgloss.NewRenderer(w)
	headerStyle := renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240"))
	cellStyle := renderer.NewStyle().
		PaddingRight(2)

	fmt.Fprintf(w, "Found %d serial port(s):\n\n", len(ports))
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %-*s", portWidth, "Port", descWidth, "Description")))

	for _, port := range ports {
		description := "Unknown"
		if info, err := serial.GetPortInfo(port); err == nil {
			description = info.Description
		}
		fmt.Fprintln(w, cellStyle.Render(fmt.Sprintf("%-*s %-*s", portWidth, port, descWidth, description)))
	}
}
