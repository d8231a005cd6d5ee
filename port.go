package serial

// Port represents an open serial port
type Port interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	// Drain blocks until everything written has left the output queue
	Drain() error
	Close() error
	Config() Config
}
