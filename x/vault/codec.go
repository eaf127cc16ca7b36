package vault

import "github.com/gogo/protobuf/proto"

// ledgerMsgWire is shared by all ledger messages: metadata, an address and
// an optional amount.
type ledgerMsgWire struct {
	Metadata []byte `protobuf:"bytes,1,opt,name=metadata"`
	Address  []byte `protobuf:"bytes,2,opt,name=address,proto3"`
	Amount   uint64 `protobuf:"varint,3,opt,name=amount,proto3"`
}

func (m *ledgerMsgWire) Reset()         { *m = ledgerMsgWire{} }
func (m *ledgerMsgWire) String() string { return proto.CompactTextString(m) }
func (*ledgerMsgWire) ProtoMessage()    {}

type updateConfigurationMsgWire struct {
	Metadata []byte   `protobuf:"bytes,1,opt,name=metadata"`
	Patch    []byte   `protobuf:"bytes,2,opt,name=patch"`
	Clear    []string `protobuf:"bytes,3,rep,name=clear"`
}

func (m *updateConfigurationMsgWire) Reset()         { *m = updateConfigurationMsgWire{} }
func (m *updateConfigurationMsgWire) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgWire) ProtoMessage()    {}

type configurationWire struct {
	Owner       []byte `protobuf:"bytes,1,opt,name=owner,proto3"`
	RentPerByte uint64 `protobuf:"varint,2,opt,name=rent_per_byte,proto3"`
	Collector   []byte `protobuf:"bytes,3,opt,name=collector,proto3"`
}

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}
