// Package assert provides test helpers used across all custody packages.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/custody/errors"
)

// Nil fails the test if given value is not nil. Typed nil pointers, maps
// and slices are nil as well.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if both values are not deeply equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is want or is of its kind. Both values
// can be nil.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails the test unless err holds exactly one error for given
// field and that error is of the wanted kind. A nil want requires that there
// is no error for the field.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)

	switch {
	case want == nil && len(errs) == 0:
	case want == nil:
		logAll(t, errs)
		t.Fatalf("want no %q field error, got %d", field, len(errs))
	case len(errs) == 0:
		t.Fatalf("no %q field error found", field)
	case len(errs) > 1:
		logAll(t, errs)
		t.Fatalf("want one %q field error, got %d", field, len(errs))
	case !want.Is(errs[0]):
		t.Fatalf("unexpected %q field error: %q", field, errs[0])
	}
}

func logAll(t testing.TB, errs []error) {
	t.Helper()
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}
