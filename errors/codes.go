package errors

import (
	"fmt"
)

// Root errors shared by all extensions. Codes below 100 are reserved for
// this package.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrModel        = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")
	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman    = Register(7, "coding error")
	ErrEmpty    = Register(9, "value is empty")
	ErrState    = Register(10, "invalid state")
	ErrType     = Register(11, "invalid type")
	ErrAmount   = Register(12, "invalid amount")
	ErrInput    = Register(13, "invalid input")
	ErrDatabase = Register(14, "database")
	ErrMetadata = Register(15, "invalid metadata")
	// ErrOverflow and ErrUnderflow report checked arithmetic leaving the
	// range of the value type.
	ErrOverflow  = Register(16, "an operation cannot be completed due to value overflow")
	ErrUnderflow = Register(17, "an operation cannot be completed due to value underflow")

	// ErrPanic wraps recovered panics. Its details are never sent to
	// clients.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 belongs to
// errors without a code of their own.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error. Extensions call it from package level
// variable declarations. Reusing a code panics.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered for %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Errors created at runtime wrap one of them, which
// determines the ABCI code the client receives.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Is reports whether err is e or wraps it. A nil e matches only a nil err.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				if e.Is(inner) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}
