//go:build !linux

package serial

import (
	"slices"

	bugst "go.bug.st/serial"
)

// ListPorts returns the serial ports reported by the operating system, sorted
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, err
	}
	slices.Sort(ports)
	return ports, nil
}

// GetPortInfo returns information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	ports, err := ListPorts()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(ports, portPath) {
		return nil, ErrDeviceNotFound
	}
	return newPortInfo(portPath), nil
}
