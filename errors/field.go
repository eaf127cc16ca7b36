package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name, and an optional formatted description, to
// err. It returns nil for a nil err so that validation code can call it
// unconditionally.
//
// Field names follow the Go struct field names, for example Owner or
// Amount. Nested fields are joined with a dot, as in Metadata.Schema.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: fieldName, desc: description, parent: err}
}

// AppendField adds the field error of fieldErrOrNil to errorsOrNil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (err *fieldError) Error() string {
	msg := fmt.Sprintf("field %q", err.field)
	if err.desc != "" {
		msg += ": " + err.desc
	}
	return msg + ": " + err.parent.Error()
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field returns the name of the invalid field.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns all errors created for given field name. Errors
// clubbed with Append are searched as well as wrapped ones. The search
// does not descend into a matching field error.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(interface{ Field() string }); ok && f.Field() == fieldName {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				found = append(found, FieldErrors(e, fieldName)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
