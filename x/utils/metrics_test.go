package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var custodyErr = errors.ErrUnauthorized.New("no")

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/withdraw"}}

	_, _ = m.Check(ctx, db, tx, &custodytest.Handler{})
	_, _ = m.Deliver(ctx, db, tx, &custodytest.Handler{})
	_, _ = m.Deliver(ctx, db, tx, &custodytest.Handler{})
	_, _ = m.Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: custodyErr})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("check", "vault/withdraw", "0")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "vault/withdraw", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "vault/withdraw", "2")))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 2)
}
