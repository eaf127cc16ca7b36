package custodyd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/vault"
)

// txWire is the serialized Tx. A transaction carries exactly one message,
// stored under the field of its type.
type txWire struct {
	Signatures [][]byte `protobuf:"bytes,1,rep,name=signatures"`

	SendMsg                []byte `protobuf:"bytes,51,opt,name=send_msg"`
	InitializeVaultMsg     []byte `protobuf:"bytes,60,opt,name=initialize_vault_msg"`
	InitializeDepositMsg   []byte `protobuf:"bytes,61,opt,name=initialize_deposit_msg"`
	DepositMsg             []byte `protobuf:"bytes,62,opt,name=deposit_msg"`
	WithdrawMsg            []byte `protobuf:"bytes,63,opt,name=withdraw_msg"`
	UpdateConfigurationMsg []byte `protobuf:"bytes,64,opt,name=update_configuration_msg"`
}

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}

// msgFields maps a message path to its slot in txWire and to a
// constructor of an empty message.
var msgFields = []struct {
	path string
	slot func(*txWire) *[]byte
	new  func() custody.Msg
}{
	{(&cash.SendMsg{}).Path(), func(w *txWire) *[]byte { return &w.SendMsg }, func() custody.Msg { return &cash.SendMsg{} }},
	{(&vault.InitializeVaultMsg{}).Path(), func(w *txWire) *[]byte { return &w.InitializeVaultMsg }, func() custody.Msg { return &vault.InitializeVaultMsg{} }},
	{(&vault.InitializeDepositMsg{}).Path(), func(w *txWire) *[]byte { return &w.InitializeDepositMsg }, func() custody.Msg { return &vault.InitializeDepositMsg{} }},
	{(&vault.DepositMsg{}).Path(), func(w *txWire) *[]byte { return &w.DepositMsg }, func() custody.Msg { return &vault.DepositMsg{} }},
	{(&vault.WithdrawMsg{}).Path(), func(w *txWire) *[]byte { return &w.WithdrawMsg }, func() custody.Msg { return &vault.WithdrawMsg{} }},
	{(&vault.UpdateConfigurationMsg{}).Path(), func(w *txWire) *[]byte { return &w.UpdateConfigurationMsg }, func() custody.Msg { return &vault.UpdateConfigurationMsg{} }},
}

// Tx is the transaction format of the custody ledger.
type Tx struct {
	Msg        custody.Msg
	Signatures []*sigs.StdSignature
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	var w txWire
	for i, sig := range tx.Signatures {
		raw, err := sig.Marshal()
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		w.Signatures = append(w.Signatures, raw)
	}
	if tx.Msg != nil {
		slot, err := msgSlot(&w, tx.Msg)
		if err != nil {
			return nil, err
		}
		raw, err := codec.Nested(tx.Msg)
		if err != nil {
			return nil, errors.Wrap(err, "message")
		}
		*slot = raw
	}
	return codec.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var w txWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	for _, b := range w.Signatures {
		var sig sigs.StdSignature
		if err := sig.Unmarshal(b); err != nil {
			return errors.Wrap(err, "signature")
		}
		tx.Signatures = append(tx.Signatures, &sig)
	}
	for _, m := range msgFields {
		b := *m.slot(&w)
		if b == nil {
			continue
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrMsg, "more than one message")
		}
		msg := m.new()
		if err := msg.Unmarshal(b); err != nil {
			return errors.Wrap(err, "message")
		}
		tx.Msg = msg
	}
	return nil
}

func msgSlot(w *txWire, msg custody.Msg) (*[]byte, error) {
	for _, m := range msgFields {
		if m.path == msg.Path() {
			return m.slot(w), nil
		}
	}
	return nil, errors.Wrapf(errors.ErrMsg, "unsupported message %T", msg)
}
