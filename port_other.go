//go:build !linux

package serial

import (
	"errors"
	"fmt"
	"sync"

	bugst "go.bug.st/serial"
)

// port adapts a go.bug.st/serial port to the Port interface on platforms
// without the termios backend (Windows COM ports, macOS, BSD)
type port struct {
	mu     sync.Mutex
	p      bugst.Port
	device string
	config Config
	closed bool
}

var _ Port = (*port)(nil)

func isSupportedBaudRate(rate int) bool {
	return rate > 0
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	config, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	mode := &bugst.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
		Parity:   bugstParity(config.Parity),
		StopBits: bugst.OneStopBit,
	}
	if config.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}

	p, err := bugst.Open(device, mode)
	if err != nil {
		return nil, classifyOpenError(device, err)
	}

	if err := p.SetReadTimeout(config.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", device, err)
	}

	return &port{p: p, device: device, config: config}, nil
}

func bugstParity(parity Parity) bugst.Parity {
	switch parity {
	case ParityOdd:
		return bugst.OddParity
	case ParityEven:
		return bugst.EvenParity
	default:
		return bugst.NoParity
	}
}

// classifyOpenError maps go.bug.st/serial error codes to the package sentinels
func classifyOpenError(device string, err error) error {
	var portErr *bugst.PortError
	if !errors.As(err, &portErr) {
		return fmt.Errorf("failed to open %s: %w", device, err)
	}

	switch portErr.Code() {
	case bugst.PortNotFound:
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, device)
	case bugst.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, device)
	case bugst.PortBusy:
		return fmt.Errorf("%w: %s", ErrDeviceInUse, device)
	case bugst.InvalidSpeed:
		return ErrInvalidBaudRate
	case bugst.InvalidDataBits, bugst.InvalidParity, bugst.InvalidStopBits:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	default:
		return fmt.Errorf("failed to open %s: %w", device, err)
	}
}

// Config returns the settings the port was opened with
func (p *port) Config() Config {
	return p.config
}

// Close closes the serial port
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true
	return p.p.Close()
}

// Read reads data from the serial port, returning 0 bytes after the read timeout
func (p *port) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	return p.p.Read(buf)
}

// Write writes all of data to the serial port
func (p *port) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	written := 0
	for written < len(data) {
		n, err := p.p.Write(data[written:])
		if err != nil {
			return written, fmt.Errorf("write to %s: %w", p.device, err)
		}
		written += n
	}
	return written, nil
}

// Drain waits until all output written to the port has been transmitted
func (p *port) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	return p.p.Drain()
}
