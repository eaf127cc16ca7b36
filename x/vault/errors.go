package vault

import "github.com/iov-one/custody/errors"

// x/vault reserves error codes 1200 ~ 1209.
var (
	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// balance recorded for the depositor.
	ErrInsufficientFunds = errors.Register(1200, "insufficient funds")

	// ErrTransfer is returned when the custody funds cannot be moved.
	ErrTransfer = errors.Register(1201, "transfer failure")
)
