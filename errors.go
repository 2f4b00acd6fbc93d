package wtinylfu

import "github.com/pkg/errors"

// DomainError reports an invalid argument to a constructor or a
// capacity-changing operation. The cache is left in its prior valid
// state whenever a DomainError is returned.
type DomainError struct {
	cause error
	value int
}

func (e *DomainError) Error() string {
	return e.cause.Error()
}

// Unwrap lets callers use errors.Is/errors.As against the wrapped
// cause.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Value returns the rejected capacity value, or 0 when the error
// reports a key type with no default hasher.
func (e *DomainError) Value() int {
	return e.value
}

func newDomainError(value int, msg string) *DomainError {
	return &DomainError{cause: errors.Errorf("%s: %d", msg, value), value: value}
}

// LoaderError wraps, unchanged, whatever error GetOrLoad's loader
// function returned. The cache is not mutated when this error is
// returned.
type LoaderError struct {
	cause error
}

func (e *LoaderError) Error() string {
	return errors.Wrap(e.cause, "wtinylfu: loader failed").Error()
}

// Unwrap exposes the original loader error.
func (e *LoaderError) Unwrap() error {
	return e.cause
}

func newLoaderError(cause error) *LoaderError {
	return &LoaderError{cause: cause}
}
