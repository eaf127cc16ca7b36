package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key holding the path of the delivered message, so
// clients can subscribe to for example "action='vault/deposit'".
const ActionKey = "action"

// Tag values used by KeyTagger for written and deleted keys.
var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// ActionTagger tags every successful DeliverTx with the message path.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}

// KeyTagger tags every successful DeliverTx with the store keys it wrote
// or deleted.
type KeyTagger struct{}

var _ custody.Decorator = KeyTagger{}

func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

func (KeyTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (KeyTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	rec := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, rec, tx)
	if err != nil {
		return nil, err
	}
	if r, ok := rec.(store.Recorder); ok {
		res.Tags = append(res.Tags, changesToTags(r.KVPairs())...)
	}
	return res, nil
}

// changesToTags returns one tag per changed key, sorted by key.
func changesToTags(changes map[string][]byte) common.KVPairs {
	if len(changes) == 0 {
		return nil
	}
	tags := make(common.KVPairs, 0, len(changes))
	for key, value := range changes {
		kind := recordSet
		if value == nil {
			kind = recordDelete
		}
		tags = append(tags, common.KVPair{Key: []byte(key), Value: kind})
	}
	tags.Sort()
	return tags
}
