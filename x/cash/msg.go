package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

var _ custody.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg requests moving funds from the source wallet to the destination.
// Source defaults to the main signer.
type SendMsg struct {
	Metadata    *custody.Metadata
	Source      custody.Address
	Destination custody.Address
	Amount      uint64
	Memo        string
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Source) != 0 {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	meta, err := codec.Nested(m.Metadata)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(&sendMsgWire{
		Metadata:    meta,
		Source:      m.Source,
		Destination: m.Destination,
		Amount:      m.Amount,
		Memo:        m.Memo,
	})
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	var w sendMsgWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	*m = SendMsg{
		Source:      w.Source,
		Destination: w.Destination,
		Amount:      w.Amount,
		Memo:        w.Memo,
	}
	if w.Metadata != nil {
		m.Metadata = &custody.Metadata{}
		return m.Metadata.Unmarshal(w.Metadata)
	}
	return nil
}
