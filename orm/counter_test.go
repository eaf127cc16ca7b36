package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// Counter is a minimal model used to test buckets.
type Counter struct {
	Count int64
}

var _ Model = (*Counter)(nil)

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.Marshal(&counterWire{Count: c.Count})
}

func (c *Counter) Unmarshal(raw []byte) error {
	var w counterWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	c.Count = w.Count
	return nil
}

type counterWire struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3"`
}

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

// Other is a model type no bucket in the tests is declared for.
type Other struct {
	Counter
}
