// Package transmit sends the lines of a text file to a serial device, one
// line at a time with a fixed pause between lines.
package transmit

//go:generate mockgen -destination=mocks/conn.go -package=mocks . Conn
//go:generate mockgen -destination=mocks/reporter.go -package=mocks . Reporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	serial "github.com/allbin/serial-sender"
	"github.com/allbin/serial-sender/internal/logging"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Defaults match the weather station sketch the tool was written for
const (
	DefaultBaudRate    = 9600
	DefaultFile        = "weather_data.csv"
	DefaultReadTimeout = time.Second
	DefaultSettleDelay = 2 * time.Second
	DefaultLineDelay   = 500 * time.Millisecond
	DefaultEncoding    = "utf-8"
)

// lineTerminator is appended to every transmitted line
const lineTerminator = "\n"

// Conn is the write side of an open serial connection
type Conn interface {
	io.Writer
	io.Closer
}

type drainer interface {
	Drain() error
}

// Config is the fixed configuration of a run
type Config struct {
	Port        string
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      serial.Parity
	ReadTimeout time.Duration

	File        string
	SettleDelay time.Duration // pause after opening, while the device resets
	LineDelay   time.Duration // pause after each transmitted line
	Encoding    string        // WHATWG encoding label
}

// DefaultPort is the usual first USB serial adapter for the platform
func DefaultPort() string {
	if runtime.GOOS == "windows" {
		return "COM3"
	}
	return "/dev/ttyUSB0"
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	serialDefaults := serial.DefaultConfig()
	return Config{
		Port:        DefaultPort(),
		BaudRate:    DefaultBaudRate,
		DataBits:    serialDefaults.DataBits,
		StopBits:    serialDefaults.StopBits,
		Parity:      serialDefaults.Parity,
		ReadTimeout: DefaultReadTimeout,
		File:        DefaultFile,
		SettleDelay: DefaultSettleDelay,
		LineDelay:   DefaultLineDelay,
		Encoding:    DefaultEncoding,
	}
}

// Dialer opens the connection described by cfg
type Dialer func(cfg Config) (Conn, error)

// SerialDialer opens cfg.Port with the serial package
func SerialDialer(cfg Config) (Conn, error) {
	port, err := serial.Open(cfg.Port,
		serial.WithBaudRate(cfg.BaudRate),
		serial.WithDataBits(cfg.DataBits),
		serial.WithStopBits(cfg.StopBits),
		serial.WithParity(cfg.Parity),
		serial.WithReadTimeout(cfg.ReadTimeout),
	)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Transmitter runs the open, settle, read, send sequence
type Transmitter struct {
	cfg      Config
	dial     Dialer
	reporter Reporter
	logger   *slog.Logger
	sleep    func(time.Duration)
	encoder  *encoding.Encoder // nil writes lines as they are in the file
}

// Option configures a Transmitter
type Option func(*Transmitter)

// WithDialer replaces the serial port dialer
func WithDialer(dial Dialer) Option {
	return func(t *Transmitter) {
		t.dial = dial
	}
}

// WithReporter sets where progress goes
func WithReporter(r Reporter) Option {
	return func(t *Transmitter) {
		t.reporter = r
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transmitter) {
		t.logger = logger
	}
}

// WithSleep replaces time.Sleep for the settle and line delays
func WithSleep(sleep func(time.Duration)) Option {
	return func(t *Transmitter) {
		t.sleep = sleep
	}
}

// New validates cfg and returns a Transmitter ready to Run
func New(cfg Config, opts ...Option) (*Transmitter, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("%w: empty port", serial.ErrInvalidConfig)
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("%w: empty input file", serial.ErrInvalidConfig)
	}
	if cfg.SettleDelay < 0 || cfg.LineDelay < 0 {
		return nil, fmt.Errorf("%w: negative delay", serial.ErrInvalidConfig)
	}

	label := cfg.Encoding
	if label == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", serial.ErrInvalidConfig, label)
	}
	var encoder *encoding.Encoder
	if name, _ := htmlindex.Name(enc); name != "utf-8" {
		encoder = encoding.ReplaceUnsupported(enc.NewEncoder())
	}

	t := &Transmitter{
		cfg:      cfg,
		dial:     SerialDialer,
		reporter: discardReporter{},
		logger:   logging.Discard(),
		sleep:    time.Sleep,
		encoder:  encoder,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Run transmits the configured file once. The connection is closed before
// Run returns, whatever the outcome. Every failure is an *Error; a line
// that cannot be encoded counts as a port failure.
func (t *Transmitter) Run() (err error) {
	defer func() {
		if err != nil {
			t.logger.Debug("transmission failed", "error", err)
			t.reporter.Failed(err)
		}
	}()

	t.logger.Debug("opening serial port", "port", t.cfg.Port, "baud", t.cfg.BaudRate)
	conn, err := t.dial(t.cfg)
	if err != nil {
		return newError(KindConnection, t.cfg.Port, err)
	}
	defer t.release(conn)

	t.logger.Debug("waiting for device to settle", "delay", t.cfg.SettleDelay)
	t.sleep(t.cfg.SettleDelay)

	lines, err := readLines(t.cfg.File)
	if err != nil {
		t.logger.Debug("reading input failed", "file", t.cfg.File, "error", err)
		return newError(KindFileNotFound, t.cfg.File, err)
	}

	return t.send(conn, lines)
}

func (t *Transmitter) send(conn Conn, lines []string) error {
	t.reporter.Start(countPayloads(lines))

	sent := 0
	for i, line := range lines {
		payload := strings.TrimSpace(line)
		if payload == "" {
			continue
		}

		frame, err := t.frame(i+1, payload)
		if err != nil {
			return newError(KindConnection, t.cfg.Port, err)
		}
		if _, err := conn.Write(frame); err != nil {
			return newError(KindConnection, t.cfg.Port, err)
		}
		sent++
		t.reporter.Sending(payload)
		t.sleep(t.cfg.LineDelay)
	}

	t.logger.Debug("transmission complete", "sent", sent, "lines", len(lines))
	t.reporter.Complete()
	return nil
}

// frame is the bytes written for one line: payload and terminator in the
// wire encoding
func (t *Transmitter) frame(n int, payload string) ([]byte, error) {
	raw := []byte(payload + lineTerminator)
	if t.encoder == nil {
		return raw, nil
	}

	if !utf8.ValidString(payload) {
		t.logger.Warn("line is not valid UTF-8, invalid bytes replaced", "line", n, "encoding", t.cfg.Encoding)
	}
	frame, err := t.encoder.Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("encode line %d: %w", n, err)
	}
	return frame, nil
}

func (t *Transmitter) release(conn Conn) {
	if d, ok := conn.(drainer); ok {
		if err := d.Drain(); err != nil {
			t.logger.Warn("draining serial port failed", "port", t.cfg.Port, "error", err)
		}
	}
	if err := conn.Close(); err != nil {
		t.logger.Warn("closing serial port failed", "port", t.cfg.Port, "error", err)
		return
	}
	t.logger.Debug("serial port closed", "port", t.cfg.Port)
}

// readLines loads the whole file as lines, terminators included
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return slices.Collect(strings.Lines(string(data))), nil
}

// countPayloads counts the lines that are not blank after trimming
func countPayloads(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
