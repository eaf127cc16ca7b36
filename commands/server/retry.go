package server

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	iavlstore "github.com/iov-one/custody/store/iavl"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

// InlineAppGenerator builds the application on top of a given store.
type InlineAppGenerator func(custody.CommitKVStore, log.Logger, bool) abci.Application

type retryArgs struct {
	dbPath, blockPath string
	debug, untilError bool
	maxTries          int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput,
			"usage: retry <abci.db> <block.json> [-debug] [-error] [-max=N]")
	}
	res := retryArgs{dbPath: args[0], blockPath: args[1]}
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	fs.BoolVar(&res.debug, flagDebug, false, "call stack returned on error")
	fs.BoolVar(&res.untilError, "error", false, "replay until the app hash differs")
	fs.IntVar(&res.maxTries, "max", 10, "replay limit when -error is set")
	if err := fs.Parse(args[2:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// RetryCmd rolls the application state back by one block and delivers the
// block read from a getblock dump again, printing the resulting app hash.
// The state height must equal the block height. With -error the block is
// replayed until the hash differs, at most -max times, which helps to find
// non deterministic handlers.
func RetryCmd(makeApp InlineAppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseRetryArgs(args)
	if err != nil {
		return err
	}
	block, err := readBlock(opts.blockPath)
	if err != nil {
		return err
	}
	tree, err := openTree(opts.dbPath)
	if err != nil {
		return err
	}
	if h := tree.Version(); h != block.Height {
		return errors.Wrapf(errors.ErrState, "state at height %d, block at %d", h, block.Height)
	}
	fmt.Printf("height %d, hash %X\n", block.Height, tree.Hash())

	for try := 1; ; try++ {
		want := tree.Hash()
		if _, err := tree.LoadVersionForOverwriting(block.Height - 1); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
		app := makeApp(iavlstore.NewCommitStoreFromTree(tree), logger, opts.debug)
		got := replay(app, block)
		fmt.Printf("try %d: hash %X\n", try, got)
		if !bytes.Equal(want, got) || !opts.untilError || try >= opts.maxTries {
			return nil
		}
	}
}

func readBlock(path string) (*types.Block, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var block *types.Block
	if err := cdc.UnmarshalJSON(raw, &block); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "block: %s", err)
	}
	return block, nil
}

func openTree(dir string) (*iavl.MutableTree, error) {
	db, err := openDb(dir)
	if err != nil {
		return nil, err
	}
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	ver, err := tree.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if ver == 0 {
		return nil, errors.Wrap(errors.ErrState, "empty iavl tree")
	}
	return tree, nil
}

// replay runs a full block on app and returns the new app hash.
func replay(app abci.Application, block *types.Block) []byte {
	app.BeginBlock(abci.RequestBeginBlock{
		Hash:   block.Hash(),
		Header: types.TM2PB.Header(&block.Header),
	})
	for i, tx := range block.Txs {
		res := app.DeliverTx(tx)
		fmt.Printf("  tx %d: code %d %s\n", i, res.Code, res.Log)
	}
	app.EndBlock(abci.RequestEndBlock{Height: block.Height})
	return app.Commit().Data
}
