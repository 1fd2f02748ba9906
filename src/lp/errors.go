package lp

import (
	"github.com/pkg/errors"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrIO             = errors.New("i/o failure")
)

const (
	ExitOK        = 0
	ExitMalformed = 1
	ExitIO        = 2
	ExitUsage     = 3
)

// Malformedf wraps ErrMalformedInput with a formatted context message.
func Malformedf(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}

// IOf wraps err as an i/o failure. A nil err yields nil.
func IOf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ioError{err}, format, args...)
}

type ioError struct {
	cause error
}

func (e ioError) Error() string { return e.cause.Error() }

func (e ioError) Unwrap() error { return e.cause }

func (e ioError) Is(target error) bool { return target == ErrIO }

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrMalformedInput):
		return ExitMalformed
	case errors.Is(err, ErrIO):
		return ExitIO
	default:
		return ExitUsage
	}
}
