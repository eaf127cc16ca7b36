package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Genesis holds the part of a tendermint genesis file read by the
// application. Other fields are ignored.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

func readGenesis(path string) (Genesis, error) {
	var gen Genesis
	fd, err := os.Open(path)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := json.NewDecoder(fd).Decode(&gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "genesis %s: %s", path, err)
	}
	return gen, nil
}

// LoadGenesis initializes the chain ID and the application state from a
// genesis file. Tools running without tendermint use it in place of
// InitChain.
func (s *StoreApp) LoadGenesis(path string, init custody.Initializer) error {
	gen, err := readGenesis(path)
	if err != nil {
		return err
	}
	return s.parseAppState(gen.AppState, gen.ChainID, init)
}
