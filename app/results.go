package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// ResultSet is one side of a query response: either all keys or all
// values, in the same order. It is encoded as a repeated bytes field 1.
type ResultSet struct {
	Results [][]byte
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal(&resultSetWire{Results: r.Results})
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	var w resultSetWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	r.Results = w.Results
	return nil
}

type resultSetWire struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results"`
}

func (m *resultSetWire) Reset()         { *m = resultSetWire{} }
func (m *resultSetWire) String() string { return proto.CompactTextString(m) }
func (*resultSetWire) ProtoMessage()    {}

func ResultsFromKeys(models []custody.Model) *ResultSet {
	return project(models, func(m custody.Model) []byte { return m.Key })
}

func ResultsFromValues(models []custody.Model) *ResultSet {
	return project(models, func(m custody.Model) []byte { return m.Value })
}

func project(models []custody.Model, fn func(custody.Model) []byte) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = fn(m)
	}
	return res
}

// JoinResults pairs keys and values of a query response back into models.
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys, %d values", len(keys.Results), len(values.Results))
	}
	models := make([]custody.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = custody.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of an encoded ResultSet into
// dest. An empty set leaves dest untouched.
func UnmarshalOneResult(raw []byte, dest custody.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dest.Unmarshal(set.Results[0])
}
