package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// Metadata is carried by every message and stored model. It declares the
// schema version the payload was serialized with.
type Metadata struct {
	Schema uint32
}

// Validate returns an error if the metadata does not declare a schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "invalid schema version")
	}
	return nil
}

// Marshal serializes the metadata.
func (m *Metadata) Marshal() ([]byte, error) {
	return codec.Marshal(&metadataWire{Schema: m.Schema})
}

// Unmarshal deserializes the metadata.
func (m *Metadata) Unmarshal(raw []byte) error {
	var w metadataWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	m.Schema = w.Schema
	return nil
}

type metadataWire struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3"`
}

func (m *metadataWire) Reset()         { *m = metadataWire{} }
func (m *metadataWire) String() string { return proto.CompactTextString(m) }
func (*metadataWire) ProtoMessage()    {}
