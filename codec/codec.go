package codec

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Marshaller is anything that can serialize itself.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Marshal encodes a wire struct.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal decodes raw into a wire struct. Unknown fields are dropped.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", m, err)
	}
	return nil
}

// Nested serializes a nested model for a bytes field. A nil model returns
// nil and the field is omitted. Any other model returns a non nil slice,
// even when it encodes to nothing.
func Nested(m Marshaller) ([]byte, error) {
	if isNil(m) {
		return nil, nil
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

func isNil(m Marshaller) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
