package cash

import "github.com/gogo/protobuf/proto"

type walletWire struct {
	Metadata []byte `protobuf:"bytes,1,opt,name=metadata"`
	Balance  uint64 `protobuf:"varint,2,opt,name=balance,proto3"`
}

func (m *walletWire) Reset()         { *m = walletWire{} }
func (m *walletWire) String() string { return proto.CompactTextString(m) }
func (*walletWire) ProtoMessage()    {}

type sendMsgWire struct {
	Metadata    []byte `protobuf:"bytes,1,opt,name=metadata"`
	Source      []byte `protobuf:"bytes,2,opt,name=source,proto3"`
	Destination []byte `protobuf:"bytes,3,opt,name=destination,proto3"`
	Amount      uint64 `protobuf:"varint,4,opt,name=amount,proto3"`
	Memo        string `protobuf:"bytes,5,opt,name=memo,proto3"`
}

func (m *sendMsgWire) Reset()         { *m = sendMsgWire{} }
func (m *sendMsgWire) String() string { return proto.CompactTextString(m) }
func (*sendMsgWire) ProtoMessage()    {}
