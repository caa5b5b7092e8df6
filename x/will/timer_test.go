package will

import (
	"math"
	"testing"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
)

func TestExpiryTimer(t *testing.T) {
	const start bequest.UnixTime = 1000

	timer, err := NewExpiryTimer(start, 50)
	assert.Nil(t, err)
	assert.Equal(t, bequest.UnixTime(1050), timer.Deadline)
	assert.Equal(t, false, timer.HasElapsed(1049))
	assert.Equal(t, true, timer.HasElapsed(1050))
	assert.Equal(t, true, timer.HasElapsed(2000))

	// Deadline is computed from the time of the change, not the creation.
	assert.Nil(t, timer.Extend(1005, 10))
	assert.Equal(t, bequest.UnixTime(1015), timer.Deadline)
	assert.Equal(t, int64(10), timer.Duration)
	assert.Equal(t, true, timer.HasElapsed(1015))

	// Failing changes leave the timer untouched.
	assert.IsErr(t, errors.ErrInput, timer.Extend(1005, 0))
	assert.IsErr(t, errors.ErrInput, timer.Extend(1005, -5))
	assert.IsErr(t, errors.ErrOverflow, timer.Extend(1005, math.MaxInt64))
	assert.Equal(t, bequest.UnixTime(1015), timer.Deadline)
	assert.Nil(t, timer.Validate())

	_, err = NewExpiryTimer(start, 0)
	assert.IsErr(t, errors.ErrInput, err)
}
