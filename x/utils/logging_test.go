package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := custody.WithLogger(context.Background(), logger)
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/withdraw"}}
	db := store.MemStore()

	_, err := NewLogging().Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: errors.ErrAmount})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "deliver failed")
	assert.Contains(t, buf.String(), "path=vault/withdraw")

	buf.Reset()
	h := &custodytest.Handler{DeliverResult: custody.DeliverResult{Log: "ok"}}
	res, err := NewLogging().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Log)
	assert.Contains(t, buf.String(), "delivered")

	buf.Reset()
	filtered := custody.WithLogger(context.Background(), log.NewFilter(logger, log.AllowInfo()))
	_, err = NewLogging().Check(filtered, db, tx, &custodytest.Handler{})
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "successful check is logged at debug level")
}
