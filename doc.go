// Package serial provides the serial port layer used by serial-sender.
//
// On Linux the port is driven directly through termios (golang.org/x/sys/unix)
// in raw mode, so bytes reach the wire exactly as written. Other platforms,
// including Windows COM ports, go through go.bug.st/serial with the same
// Port interface and error classification.
//
// # Basic Usage
//
// Open a serial port with default configuration (9600 8N1, 1s read timeout):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("21.5,60\n"))
//
// # Configuration Options
//
//	port, err := serial.Open("/dev/ttyACM0",
//	    serial.WithBaudRate(115200),
//	    serial.WithParity(serial.ParityEven),
//	    serial.WithReadTimeout(500*time.Millisecond),
//	)
//
// # Port Discovery
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s\n", info.Path, info.Description)
//	}
//
// # Error Handling
//
// Open classifies failures so callers can react with errors.Is:
//
//	if errors.Is(err, serial.ErrDeviceNotFound) {
//	    // suggest serial.ListPorts()
//	}
//
// ErrPermissionDenied and ErrDeviceInUse cover the other common causes;
// ErrPortClosed is returned by any call after Close.
package serial
