package will

import "github.com/iov-one/bequest/errors"

// Error codes
// x/will reserves 1100 ~ 1109.
var (
	ErrInvalidShareSum = errors.Register(1100, "invalid share table")
	ErrTooEarly        = errors.Register(1101, "will not expired yet")
	ErrEmptyRegistry   = errors.Register(1102, "no beneficiaries")
	ErrAlreadyClaimed  = errors.Register(1103, "will already claimed")
	ErrTransferFailed  = errors.Register(1104, "transfer failed")
)
