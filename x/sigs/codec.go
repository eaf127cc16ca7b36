package sigs

import "github.com/gogo/protobuf/proto"

type stdSignatureWire struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3"`
	Pubkey    []byte `protobuf:"bytes,2,opt,name=pubkey"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature"`
}

func (m *stdSignatureWire) Reset()         { *m = stdSignatureWire{} }
func (m *stdSignatureWire) String() string { return proto.CompactTextString(m) }
func (*stdSignatureWire) ProtoMessage()    {}

type userDataWire struct {
	Metadata []byte `protobuf:"bytes,1,opt,name=metadata"`
	Pubkey   []byte `protobuf:"bytes,2,opt,name=pubkey"`
	Sequence int64  `protobuf:"varint,3,opt,name=sequence,proto3"`
}

func (m *userDataWire) Reset()         { *m = userDataWire{} }
func (m *userDataWire) String() string { return proto.CompactTextString(m) }
func (*userDataWire) ProtoMessage()    {}
