// Package errors provides constant error values that can carry a cause.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins an error message and its cause.
const Separator = " -- "

// Error is a string based error type so packages can declare const errors.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this Error or an Error wrapped from it.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return s.Error() == target.Error() || strings.HasPrefix(target.Error(), s.Error()+Separator)
}

// Wrap attaches err as the cause of this Error.
func (s Error) Wrap(err error) error {
	return wrappedError{cause: err, msg: string(s)}
}

// Wrapf attaches a formatted cause to this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{cause: fmt.Errorf(format, args...), msg: string(s)}
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", w.msg, Separator, w.cause)
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}
