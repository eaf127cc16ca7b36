package custodytest

import "github.com/iov-one/custody"

// Tx carries a single message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg custody.Msg
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	msg := &Msg{}
	if err := msg.Unmarshal(raw); err != nil {
		return err
	}
	tx.Msg = msg
	return nil
}

// Msg is routed to RoutePath and serializes to Serialized. Err, when set,
// is returned by Validate, Marshal and Unmarshal.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
