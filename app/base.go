/*
Package app contains the ABCI application of the custody ledger: the
committed store, query routing, message routing and decorator chaining.
*/
package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. Transactions are decoded with
// decoder and processed by handler, storage and queries are provided by
// the embedded StoreApp.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
	// debug exposes full error details in responses.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder custody.TxDecoder, handler custody.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return custody.CheckTxError(err, b.debug)
	}
	ctx := b.txContext(tx, "check_tx")
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return custody.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return custody.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext(tx, "deliver_tx")
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return custody.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) txContext(tx custody.Tx, call string) custody.Context {
	return custody.WithLogInfo(b.BlockContext(), "call", call, "path", custody.GetPath(tx))
}

// decode turns a decoder panic into an error. Transaction bytes come from
// the network and must never crash the node.
func (b BaseApp) decode(raw []byte) (tx custody.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
