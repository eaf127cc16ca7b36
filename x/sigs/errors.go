package sigs

import "github.com/iov-one/custody/errors"

// ErrInvalidSequence is returned when a signature declares a sequence that
// does not match the signer's account. x/sigs reserves codes 20 ~ 29.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
