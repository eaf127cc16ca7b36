package utils

import (
	"time"

	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log line per processed transaction. Failures are
// logged as errors, successful DeliverTx at info and successful CheckTx at
// debug level.
type Logging struct{}

var _ custody.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("check failed", "err", err)
	default:
		logger.Debug("checked", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("deliver failed", "err", err)
	default:
		logger.Info("delivered", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx custody.Context, tx custody.Tx, start time.Time) log.Logger {
	return custody.GetLogger(ctx).With(
		"path", custody.GetPath(tx),
		"duration_us", time.Since(start).Nanoseconds()/1e3,
	)
}
