package x

import (
	"github.com/iov-one/custody"
)

// Authenticator reports which conditions signed the transaction that is
// being processed. Handlers receive it in their constructor so that the
// source of authentication is not fixed to signatures.
type Authenticator interface {
	GetConditions(custody.Context) []custody.Condition
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var all []custody.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated condition or nil.
func MainSigner(ctx custody.Context, auth Authenticator) custody.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// AnySigner returns addr, or the address of the main signer when addr is
// empty. It returns nil when neither is available.
func AnySigner(ctx custody.Context, auth Authenticator, addr custody.Address) custody.Address {
	if len(addr) > 0 {
		return addr
	}
	return MainSigner(ctx, auth).Address()
}
