package inlinemod

import "fmt"

// Kind discriminates the two failure classes of an inline operation.
type Kind int

const (
	// KindIO marks a file that could not be read: missing, unreadable, or
	// permission-denied.
	KindIO Kind = iota

	// KindParse marks a file whose text could not be parsed. The underlying
	// cause is an hcl.Diagnostics value carrying source ranges.
	KindParse
)

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the failure of an inline operation. It always carries the
// offending path and the underlying cause, which stays reachable through
// errors.Is and errors.As.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindParse:
		return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
	}
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func ioError(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

func parseError(path string, err error) *Error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}
