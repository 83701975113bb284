package mkjson

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors every failed build unwraps to. Compare with errors.Is.
var (
	// ErrAllocation signals that the output buffer could not grow, which
	// in practice means the MaxBytes limit was reached.
	ErrAllocation = errors.New("allocation failure")

	// ErrMalformedInput signals a descriptor list or Value tree that does
	// not describe a JSON document.
	ErrMalformedInput = errors.New("malformed input")

	// ErrTooDeep is a ErrMalformedInput raised when containers nest
	// deeper than the configured MaxDepth.
	ErrTooDeep = errors.WithMessage(ErrMalformedInput, "nesting too deep")
)

// BuildError captures information on errors when building a document.
type BuildError struct {
	// Err is ErrAllocation, ErrMalformedInput or ErrTooDeep.
	Err error
	// Path is the dotted path of object keys and array indices leading to
	// the offending entry. Empty for the top level. Keys are not escaped,
	// so a key holding a dot reads like two path elements.
	Path string
	Msg  string
}

func newBuildError(err error, path []string, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Err:  err,
		Path: joinPath(path),
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *BuildError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("mkjson: %s: %s", e.Err, e.Msg)
	}
	return fmt.Sprintf("mkjson: %s: %s (at %s)", e.Err, e.Msg, e.Path)
}

// Unwrap returns the sentinel error.
func (e *BuildError) Unwrap() error { return e.Err }

// Cause implements the causer interface of github.com/pkg/errors.
func (e *BuildError) Cause() error { return e.Err }

// helper functions

func joinPath(path []string) string {
	n := 0
	for _, p := range path {
		n += len(p) + 1
	}
	b := make([]byte, 0, n)
	for i, p := range path {
		if i > 0 {
			b = append(b, '.')
		}
		b = append(b, p...)
	}
	return string(b)
}
