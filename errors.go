package shadercross

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes compile errors.
type ErrorKind uint8

const (
	// KindUnsupportedStage indicates a stage outside the mapping tables.
	KindUnsupportedStage ErrorKind = iota

	// KindUnsupportedConversion indicates a conversion outside the mapping tables.
	KindUnsupportedConversion

	// KindInvalidInput indicates a malformed Input.
	KindInvalidInput

	// KindFrontend indicates the frontend toolchain could not run.
	KindFrontend

	// KindBackend indicates the cross-compiler failed.
	KindBackend

	// KindInternal indicates a panic or a broken invariant.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedStage:
		return "UnsupportedStage"
	case KindUnsupportedConversion:
		return "UnsupportedConversion"
	case KindInvalidInput:
		return "InvalidInput"
	case KindFrontend:
		return "Frontend"
	case KindBackend:
		return "Backend"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Sentinels matched with errors.Is.
var (
	ErrUnsupportedStage      = errors.New("unsupported shader stage")
	ErrUnsupportedConversion = errors.New("unsupported conversion type")
	ErrInvalidInput          = errors.New("invalid input")
)

// Error is a fatal compile error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("shadercross %s: %s", e.Kind, e.Message)
	case e.Message == "":
		return fmt.Sprintf("shadercross %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("shadercross %s: %v: %s", e.Kind, e.Err, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }
