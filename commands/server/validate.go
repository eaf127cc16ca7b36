package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// ValidateGenesis runs ini over the app state of each genesis file, using a
// fresh in-memory store per file. The first failure is returned.
func ValidateGenesis(ini custody.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: validate <genesis file>...")
	}
	for _, p := range paths {
		state, err := readAppState(p)
		if err == nil {
			err = errors.Wrap(ini.FromGenesis(state, store.MemStore()), "initialize")
		}
		if err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

func readAppState(path string) (custody.Options, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var gen struct {
		AppState custody.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return gen.AppState, nil
}
