package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Wrap adds description to err. A stack trace is attached by the innermost
// Wrap only. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic stored in err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg    string
	parent error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.parent.Error()
}

func (w *wrapped) Cause() error {
	return w.parent
}

// Format appends the stack trace for %+v.
func (w *wrapped) Format(s fmt.State, verb rune) {
	st := stackTrace(w)
	if verb != 'v' || !s.Flag('+') || st == nil {
		fmt.Fprint(s, w.Error())
		return
	}
	fmt.Fprintf(s, "%s\n%+v", w.Error(), st)
}

type causer interface {
	Cause() error
}

// stackTrace returns the first stack trace found in the cause chain.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// isNilErr also treats typed nil pointers as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
