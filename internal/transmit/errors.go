package transmit

import (
	"errors"
	"fmt"
)

// Kind classifies a failed run
type Kind int

const (
	// KindConnection means the serial port could not be opened or written
	KindConnection Kind = iota + 1
	// KindFileNotFound means the input file could not be read
	KindFileNotFound
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "Serial port error"
	case KindFileNotFound:
		return "File not found"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind
var (
	ErrConnection   = errors.New("serial port error")
	ErrFileNotFound = errors.New("file not found")
)

// Error is the failure returned by Run. Every failure Run reports carries
// one of the kinds above; callers switch on Kind or use errors.Is.
type Error struct {
	Kind   Kind
	Target string // port identifier or file path
	Err    error
}

func newError(kind Kind, target string, err error) *Error {
	return &Error{Kind: kind, Target: target, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Detail())
}

// Detail is the human readable part after the kind: the attempted path
// for a missing file, the underlying cause for a port failure.
func (e *Error) Detail() string {
	if e.Kind == KindFileNotFound {
		return e.Target
	}
	if e.Err == nil {
		return e.Target
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	if e.Kind == KindFileNotFound {
		return ErrFileNotFound
	}
	return ErrConnection
}
