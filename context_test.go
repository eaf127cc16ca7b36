package custody_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	_, ok := custody.GetHeight(bg)
	assert.Equal(t, false, ok)

	ctx := custody.WithHeight(bg, 17)
	height, ok := custody.GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(17), height)
	assert.Panics(t, func() { custody.WithHeight(ctx, 18) })

	ctx = custody.WithHeader(ctx, abci.Header{ChainID: "my-chain", Height: 17})
	header, ok := custody.GetHeader(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, "my-chain", header.ChainID)
	assert.Panics(t, func() { custody.WithHeader(ctx, abci.Header{}) })

	assert.Panics(t, func() { custody.GetChainID(ctx) })
	assert.Panics(t, func() { custody.WithChainID(ctx, "no") })
	ctx = custody.WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", custody.GetChainID(ctx))
	assert.Panics(t, func() { custody.WithChainID(ctx, "other-chain") })
}

func TestContextBlockTime(t *testing.T) {
	bg := context.Background()
	if _, err := custody.BlockTime(bg); err == nil {
		t.Fatal("block time must not be available")
	}
	if _, err := custody.BlockTime(custody.WithBlockTime(bg, time.Time{})); err == nil {
		t.Fatal("zero block time must be rejected")
	}
	now := time.Now()
	got, err := custody.BlockTime(custody.WithBlockTime(bg, now))
	assert.Nil(t, err)
	if !got.Equal(now) {
		t.Fatalf("want %s, got %s", now, got)
	}
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, custody.DefaultLogger, custody.GetLogger(bg))

	logger := log.NewNopLogger()
	ctx := custody.WithLogger(bg, logger)
	assert.Equal(t, logger, custody.GetLogger(ctx))

	ctx = custody.WithLogInfo(ctx, "height", 5)
	if custody.GetLogger(ctx) == nil {
		t.Fatal("logger must be set")
	}
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                          false,
		"short":                     false,
		"custody-test":              true,
		"with_underscore":           true,
		"invalid chain":             false,
		"waytoolongchainidentifier": false,
	}
	for chainID, want := range cases {
		if got := custody.IsValidChainID(chainID); got != want {
			t.Errorf("%q: want %v, got %v", chainID, want, got)
		}
	}
}
