package utils

import (
	"github.com/iov-one/nftescrow"
)

// ActionTagger will inspect the message being executed and
// add a tag `action = msg.Path()`. This should be applied as
// a decorator so clients have a standard way to search / subscribe
// to eg. escrow settlement.
//
// Handlers may set their own action tag. In that case the tag is not
// duplicated.
type ActionTagger struct{}

var _ nftescrow.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Checker) (*nftescrow.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Deliverer) (*nftescrow.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for _, t := range res.Tags {
		if string(t.Key) == ActionKey {
			return res, nil
		}
	}
	res.Tags = append(res.Tags, nftescrow.Tag(ActionKey, msg.Path()))
	return res, nil
}
