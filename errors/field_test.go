package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	var (
		emptyOwnerErr  = Field("Owner", ErrEmpty, "required")
		amountErr      = Field("Amount", ErrAmount, "must be positive")
		depositUpdated = Field("Deposit", Append(emptyOwnerErr, amountErr), "invalid deposit")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   emptyOwnerErr,
			Field: "Owner",
			Want:  []error{emptyOwnerErr},
		},
		"errors tree is inspected": {
			Err:   depositUpdated,
			Field: "Amount",
			Want:  []error{amountErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "Owner",
			Want:  nil,
		},
		"no match": {
			Err:   emptyOwnerErr,
			Field: "Amount",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("want %v, got %v", tc.Want, got)
			}
		})
	}
}

func TestFieldNilIsNil(t *testing.T) {
	if err := Field("Owner", nil, "never"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}
