package x

import (
	"math"

	"github.com/iov-one/custody/errors"
)

// AddUint64 returns a + b or ErrOverflow if the result does not fit.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// SubUint64 returns a - b or ErrUnderflow if b is greater than a.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrUnderflow, "%d - %d", a, b)
	}
	return a - b, nil
}

// MulUint64 returns a * b or ErrOverflow if the result does not fit.
func MulUint64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return a * b, nil
}
