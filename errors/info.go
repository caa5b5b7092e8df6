package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is returned by Info when there is no error.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the message that can be presented to a client.
// Any error that does not provide a code is categorized as an internal error
// with code 1 and, unless running in debug mode, its message is replaced
// with a generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	if code := errCode(err); code != internalCode {
		if debug {
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

type coder interface {
	Code() uint32
}

// errCode returns the code of the first coded error found while unwrapping
// given error.
func errCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Redact replaces all errors that do not initialize with a bequest error with
// a generic internal error instance. Panics are always redacted.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if errCode(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
