package sigs

import "github.com/iov-one/bequest/errors"

var (
	ErrInvalidSequence = errors.Register(1200, "invalid sequence number")
)
