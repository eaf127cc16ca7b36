package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"registered error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  "unauthorized",
		},
		"wrapped error": {
			err:      Wrap(Wrap(ErrDuplicate, "vault"), "initialize"),
			wantCode: ErrDuplicate.code,
			wantLog:  "initialize: vault: duplicate",
		},
		"nil is empty message": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib error",
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "secret"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"multi error uses the first code": {
			err:      Append(ErrAmount, ErrEmpty),
			wantCode: ErrAmount.code,
			wantLog:  "2 errors occurred:\n\t* invalid amount\n\t* value is empty\n",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}
