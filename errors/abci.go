package errors

import "fmt"

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode uint32 = 0

	// Errors without a registered code are reported under this code with
	// a fixed message so that no internal detail leaks to clients.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response carrying err.
//
// Outside of debug mode only errors with a registered code keep their
// message. Everything else, including recovered panics, is reported as
// an internal error. Debug mode always returns the full error with its
// stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, ErrPanic.Is(err):
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the first error in the cause chain that
// declares one.
func abciCode(err error) uint32 {
	for !isNilErr(err) {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
