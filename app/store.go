package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the storage side of abci.Application: genesis,
// queries, block boundaries and commits. BaseApp embeds it and adds
// transaction processing.
//
// Failures in steps that carry no user input (loading, InitChain, Commit)
// leave the node in an unknown state and panic.
type StoreApp struct {
	name   string
	logger log.Logger
	layers *layers

	initializer custody.Initializer
	queries     custody.QueryRouter

	// chainID is empty until InitChain ran once.
	chainID string
	// appCtx lives as long as the process, blockCtx is rebuilt in
	// every BeginBlock.
	appCtx   custody.Context
	blockCtx custody.Context
}

// NewStoreApp loads the latest state of kv. It panics if the state cannot
// be read.
func NewStoreApp(name string, kv custody.CommitKVStore, queries custody.QueryRouter, ctx custody.Context) *StoreApp {
	l, err := openLayers(kv)
	if err != nil {
		panic(err)
	}
	chainID, err := loadChainID(l.deliver)
	if err != nil {
		panic(err)
	}
	last, err := l.latest()
	if err != nil {
		panic(err)
	}

	s := &StoreApp{
		name:    name,
		layers:  l,
		queries: queries,
		chainID: chainID,
		appCtx:  ctx,
	}
	s.WithLogger(log.NewNopLogger())
	if chainID != "" {
		s.appCtx = custody.WithChainID(s.appCtx, chainID)
	}
	s.blockCtx = custody.WithHeight(s.appCtx, last.Version)
	return s
}

// GetChainID returns the chain id recorded at genesis or an empty string.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer used by InitChain.
func (s *StoreApp) WithInit(init custody.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the application and of every context
// derived from it.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = custody.WithLogger(s.appCtx, logger)
	if s.blockCtx != nil {
		s.blockCtx = custody.WithLogger(s.blockCtx, logger)
	}
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() custody.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() custody.CacheableKVStore {
	return s.layers.deliver
}

func (s *StoreApp) CheckStore() custody.CacheableKVStore {
	return s.layers.check
}

// parseAppState loads the genesis state. It runs once per chain.
func (s *StoreApp) parseAppState(data []byte, chainID string, init custody.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis, run init first")
	}
	var opts custody.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appCtx = custody.WithChainID(s.appCtx, chainID)
	s.blockCtx = custody.WithChainID(s.blockCtx, chainID)

	if init == nil {
		return nil
	}
	return init.FromGenesis(opts, s.DeliverStore())
}

// Info returns the name, version and last committed block.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.layers.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          custody.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads the last committed state. The path selects a query handler
// and may end with "?prefix" to request a prefix scan. Height is ignored.
// Key and Value of the response are serialized ResultSets of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}
	last, err := s.layers.latest()
	if err != nil {
		return queryError(err)
	}

	db := s.layers.committed.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: last.Version, Key: keys, Value: values}
}

// splitPath separates the handler path from the modifier after "?".
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: msg}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.layers.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock rebuilds the block context from the header.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := custody.WithHeader(s.appCtx, req.Header)
	ctx = custody.WithHeight(ctx, req.Header.GetHeight())
	s.blockCtx = custody.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
