package custody

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// Msg is a request for a state transition. It carries no authentication,
// that is the job of the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "vault/deposit". Only [0-9A-Za-z_\-/] are allowed.
	Path() string

	// Validate checks everything that can be checked without reading
	// the state.
	Validate() error
}

type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is implemented by pointers to serializable types.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is the envelope sent by clients. Applications define their own Tx
// type carrying whatever the decorators of their stack need, such as
// signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message of tx or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg stores the message of tx in dest and validates it. dest must be
// a pointer to either the message type or a pointer to it:
//
//	var msg *DepositMsg
//	if err := custody.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination %T is not a pointer", dest)
	}
	target = target.Elem()

	val := reflect.ValueOf(msg)
	switch {
	case val.Type().AssignableTo(target.Type()):
		target.Set(val)
	case val.Kind() == reflect.Ptr && val.Elem().Type().AssignableTo(target.Type()):
		target.Set(val.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, dest)
	}
	return errors.Wrap(msg.Validate(), "invalid message")
}
