package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is given or all errors are nil, nil is returned. A single non
// nil error is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		// Flatten so that the result is never deeper than a single
		// level. This keeps the code of the first error reachable.
		if u, ok := err.(multiErr); ok {
			res = append(res, u...)
			continue
		}
		res = append(res, err)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors. Use Append to create it.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(errs), strings.Join(points, "\n\t"))
}

// Unpack implements the unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// Code returns the code of the first error, consistent with the fail fast
// approach.
func (errs multiErr) Code() uint32 {
	if len(errs) == 0 {
		return SuccessCode
	}
	return errCode(errs[0])
}

// unpacker is implemented by errors that group several errors together.
type unpacker interface {
	Unpack() []error
}
