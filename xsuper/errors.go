package xsuper

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandIO indicates a subprocess could not be started or its output could not be read.
	ErrCommandIO = errors.New("getting the command output failed")

	// ErrOutputDecode indicates a subprocess emitted output that is not valid UTF-8.
	ErrOutputDecode = errors.New("parsing the command output as UTF-8 failed")

	// ErrExecutableNotFound indicates a program could not be resolved on the search path.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrUnsupportedOS indicates no package manager backend matches the host.
	ErrUnsupportedOS = errors.New("your operating system is unsupported")

	// ErrElevationFailed indicates no privilege elevation handler could be resolved.
	ErrElevationFailed = errors.New("no privilege elevation handler found")

	// ErrUnrecognizedElevationHandler indicates an override did not name a known handler.
	ErrUnrecognizedElevationHandler = errors.New("unrecognized elevation handler name")

	// ErrSelectionAborted indicates the user left the selector without choosing.
	ErrSelectionAborted = errors.New("selection aborted")
)

// Error wraps an error with the operation and subject that failed.
type Error struct {
	Op   string // Operation that failed
	Name string // Program, package or handler name if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns nil when err is nil, otherwise an *Error carrying op and name.
func Wrap(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Name: name, Err: err}
}
