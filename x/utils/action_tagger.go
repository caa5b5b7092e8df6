package utils

import (
	"strconv"

	"github.com/iov-one/bequest"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys appended by the ActionTagger.
const (
	ActionKey = "action"
	HeightKey = "height"
)

// ActionTagger appends the message path of a delivered call to its tags,
// followed by the height of the call when the context carries one. Tags are
// added only to successful results.
type ActionTagger struct{}

var _ bequest.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (*bequest.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (*bequest.DeliverResult, error) {
	// A malformed transaction is rejected before reaching the handler.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	if height, ok := bequest.GetHeight(ctx); ok {
		res.Tags = append(res.Tags, common.KVPair{
			Key:   []byte(HeightKey),
			Value: []byte(strconv.FormatInt(height, 10)),
		})
	}
	return res, nil
}
