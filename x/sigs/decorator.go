/*
Package sigs verifies the ed25519 signatures of a transaction and keeps a
sequence per signer that protects against replays.
*/
package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// Gas charged in CheckTx for every verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer bucket under "/auth".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("auth", qr)
}

type ctxKey int

const signersKey ctxKey = 0

// Authenticate reads the signers stored in the context by Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	conds, _ := ctx.Value(signersKey).([]custody.Condition)
	return conds
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// Decorator verifies the signatures of every SignedTx and makes the signers
// available to Authenticate. Transactions that cannot carry signatures are
// passed on without signers.
type Decorator struct{}

var _ custody.Decorator = Decorator{}

// NewDecorator returns a decorator rejecting signed transactions without
// any signature.
func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (custody.Context, []custody.Condition, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil, nil
	}
	signers, err := VerifyTxSignatures(db, signed, custody.GetChainID(ctx))
	if err != nil {
		return nil, nil, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey, signers), signers, nil
}
