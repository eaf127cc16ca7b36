package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes adds the cash/send route to r.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery exposes wallets under "/wallets".
func RegisterQuery(qr custody.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler moves coins between two wallets. The source wallet owner
// must sign the transaction.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

func (h SendHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.authorize(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, from, err := h.authorize(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, from, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// authorize loads the message and resolves the paying wallet.
func (h SendHandler) authorize(ctx custody.Context, tx custody.Tx) (*SendMsg, custody.Address, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	from := x.AnySigner(ctx, h.auth, msg.Source)
	switch {
	case from == nil:
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	case !h.auth.HasAddress(ctx, from):
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", from)
	}
	return &msg, from, nil
}
