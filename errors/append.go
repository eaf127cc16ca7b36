package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are given or all are nil, nil is returned. A single non nil
// error is returned unchanged.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			res = append(res, m.errs...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return &multiErr{errs: res}
	}
}

// multiErr is a collection of errors. The ABCI code is the one of the first
// error, consistent with a fail fast approach.
type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m.errs), strings.Join(points, "\n\t"))
}

// ABCICode implements coder.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}

// Unpack implements unpacker.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// unpacker is implemented by errors that contain more than one error.
type unpacker interface {
	Unpack() []error
}
