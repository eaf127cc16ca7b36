/*
Package codec serializes messages, transactions and models with the
protobuf wire format.

Every serializable type has a wire struct declared next to it. The wire
struct carries protobuf struct tags and implements proto.Message, so
github.com/gogo/protobuf encodes it through reflection without generated
code:

	type depositWire struct {
		Metadata []byte `protobuf:"bytes,1,opt,name=metadata"`
		Amount   uint64 `protobuf:"varint,3,opt,name=amount,proto3"`
	}

	func (m *depositWire) Reset()         { *m = depositWire{} }
	func (m *depositWire) String() string { return proto.CompactTextString(m) }
	func (*depositWire) ProtoMessage()    {}

Wire structs must not have a Marshal method, or gogo calls it instead of
encoding the fields. Nested models are kept as bytes fields and encoded
with Nested. Those fields use proto2 tags, so an empty nested model stays
distinguishable from a missing one.
*/
package codec
