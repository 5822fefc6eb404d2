package cash

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins moves the given amount from src to dest.
	// If src doesn't exist, or doesn't have sufficient
	// coins, it fails.
	MoveCoins(store nftescrow.KVStore, src, dest nftescrow.Address, amount coin.Coin) error
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired
type Controller interface {
	CoinMover

	// Balance returns all coins held by given address. ErrNotFound is
	// returned for an address that never held any coins.
	Balance(store nftescrow.KVStore, src nftescrow.Address) (coin.Coins, error)

	// IssueCoins adds given amount to the destination wallet. Amount
	// may be negative as long as the balance stays non negative.
	IssueCoins(store nftescrow.KVStore, dest nftescrow.Address, amount coin.Coin) error
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of all coins in the wallet.
func (c BaseController) Balance(store nftescrow.KVStore, src nftescrow.Address) (coin.Coins, error) {
	var w Set
	if err := c.bucket.One(store, src, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store nftescrow.KVStore, src, dest nftescrow.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", amount)
	}

	var sender Set
	switch err := c.bucket.One(store, src, &sender); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	default:
		return errors.Wrap(err, "sender")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance of %s", src)
	}

	remaining, err := sender.Coins.Clone().Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "subtract")
	}
	sender.Coins = remaining
	if err := c.bucket.Put(store, src, &sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return c.IssueCoins(store, dest, amount)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) IssueCoins(store nftescrow.KVStore, dest nftescrow.Address, amount coin.Coin) error {
	w, err := c.getOrCreate(store, dest)
	if err != nil {
		return err
	}
	total, err := w.Coins.Clone().Add(amount)
	if err != nil {
		return errors.Wrap(err, "add")
	}
	w.Coins = total
	if err := c.bucket.Put(store, dest, w); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) getOrCreate(store nftescrow.KVStore, addr nftescrow.Address) (*Set, error) {
	var w Set
	switch err := c.bucket.One(store, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &nftescrow.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "wallet")
	}
}
