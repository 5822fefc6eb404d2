package escrow

import (
	"strconv"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
	"github.com/iov-one/nftescrow/migration"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/x"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createEscrowCost int64 = 300
	cancelEscrowCost int64 = 0
	sendFundsCost    int64 = 0
	updateConfigCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Payments are forwarded to sellers using given coin mover.
func RegisterRoutes(r nftescrow.Registry, auth x.Authenticator, bank cash.CoinMover) {
	r = migration.SchemaMigratingRegistry(packageName, r)
	bucket := NewBucket()
	transferer := NftTransferer{}

	r.Handle(pathReceiveNftMsg, ReceiveNftHandler{auth: auth, bucket: bucket, creators: NewCreatorBucket()})
	r.Handle(pathCancelEscrowMsg, CancelEscrowHandler{auth: auth, bucket: bucket, transferer: transferer})
	r.Handle(pathSendFundsMsg, SendFundsHandler{auth: auth, bucket: bucket, transferer: transferer, bank: bank})
	r.Handle(pathUpdateOwnerMsg, UpdateOwnerHandler{auth: auth})
	r.Handle(pathSetEnabledMsg, SetEnabledHandler{auth: auth})
}

// ReceiveNftHandler creates an escrow for a deposited asset.
type ReceiveNftHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	creators orm.ModelBucket
}

var _ nftescrow.Handler = ReceiveNftHandler{}

func (h ReceiveNftHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores a new escrow under the next free identifier and records
// it in the seller's list. The identifier is returned as the result data.
func (h ReceiveNftHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	conf, msg, create, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := nftescrow.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	id := conf.EscrowID
	if id == ^uint64(0) {
		return nil, errors.Wrap(errors.ErrOverflow, "escrow identifier")
	}
	escrow := &Escrow{
		Metadata:   &nftescrow.Metadata{Schema: 1},
		TokenID:    msg.TokenID,
		Collection: create.Collection,
		Price:      create.Price,
		Amount:     0,
		Seller:     msg.Sender,
		Buyer:      create.Buyer,
		CreatedAt:  now,
	}
	key := orm.EncodeSequence(id)
	if err := h.bucket.Put(db, key, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if err := appendCreator(db, h.creators, escrow.Seller, id); err != nil {
		return nil, errors.Wrap(err, "cannot index escrow")
	}

	conf.EscrowID = id + 1
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save configuration")
	}

	transitions.WithLabelValues(transitionCreated).Inc()
	nftescrow.GetLogger(ctx).Info("escrow created",
		"escrow_id", id, "token_id", escrow.TokenID, "seller", escrow.Seller, "buyer", escrow.Buyer)

	return &nftescrow.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			nftescrow.Tag("action", "execute_create_escrow"),
			nftescrow.Tag("escrow_id", formatID(id)),
			nftescrow.Tag("token_id", escrow.TokenID),
			nftescrow.Tag("price", strconv.FormatInt(escrow.Price, 10)),
			nftescrow.Tag("buyer", escrow.Buyer.String()),
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ReceiveNftHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*Configuration, *ReceiveNftMsg, *CreateEscrow, error) {
	conf, err := loadEnabled(db)
	if err != nil {
		return nil, nil, nil, err
	}
	var msg ReceiveNftMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	directive, err := ParseDirective(msg.Payload)
	if err != nil {
		return nil, nil, nil, err
	}
	create := directive.CreateEscrow

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if !signer.Address().Equals(create.Collection) {
		return nil, nil, nil, errors.Wrapf(ErrInvalidAssetSource, "notification from %s", signer.Address())
	}
	return conf, &msg, create, nil
}

// CancelEscrowHandler returns the asset of an unpaid escrow to the seller.
type CancelEscrowHandler struct {
	auth       x.Authenticator
	bucket     orm.ModelBucket
	transferer AssetTransferer
}

var _ nftescrow.Handler = CancelEscrowHandler{}

func (h CancelEscrowHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: cancelEscrowCost}, nil
}

// Deliver marks the escrow canceled and returns the instruction to transfer
// the asset back to the seller.
func (h CancelEscrowHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := nftescrow.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	transfer, err := h.transferer.Transfer(escrow.Collection, escrow.TokenID, escrow.Seller)
	if err != nil {
		return nil, err
	}
	data, err := transfer.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal transfer")
	}

	escrow.CanceledAt = now
	if err := h.bucket.Put(db, orm.EncodeSequence(msg.EscrowID), escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	transitions.WithLabelValues(transitionCanceled).Inc()
	nftescrow.GetLogger(ctx).Info("escrow canceled", "escrow_id", msg.EscrowID, "seller", escrow.Seller)

	tags := []common.KVPair{
		nftescrow.Tag("action", "execute_cancel_escrow"),
		nftescrow.Tag("escrow_id", formatID(msg.EscrowID)),
	}
	return &nftescrow.DeliverResult{
		Data: data,
		Tags: append(tags, transferTags(transfer)...),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelEscrowHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*CancelEscrowMsg, *Escrow, error) {
	if _, err := loadEnabled(db); err != nil {
		return nil, nil, err
	}
	var msg CancelEscrowMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var escrow Escrow
	if err := h.bucket.One(db, orm.EncodeSequence(msg.EscrowID), &escrow); err != nil {
		return nil, nil, errors.Wrapf(err, "escrow %d", msg.EscrowID)
	}
	if err := x.RequireMainSigner(ctx, h.auth, escrow.Seller); err != nil {
		return nil, nil, errors.Wrap(err, "not seller")
	}
	if escrow.Amount != 0 {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "funds present")
	}
	switch {
	case escrow.IsCanceled():
		return nil, nil, errors.Wrap(errors.ErrInvalidState, "already canceled")
	case escrow.IsSettled():
		return nil, nil, errors.Wrap(errors.ErrInvalidState, "escrow settled")
	}
	return &msg, &escrow, nil
}

// SendFundsHandler settles an escrow when the buyer pays the price.
type SendFundsHandler struct {
	auth       x.Authenticator
	bucket     orm.ModelBucket
	transferer AssetTransferer
	bank       cash.CoinMover
}

var _ nftescrow.Handler = SendFundsHandler{}

func (h SendFundsHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: sendFundsCost}, nil
}

// Deliver forwards the payment to the seller, marks the escrow settled and
// returns the instruction to transfer the asset to the buyer.
func (h SendFundsHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	conf, msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := nftescrow.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	payer := escrow.Buyer
	amount := msg.Funds.AmountOf(conf.Denom)
	if amount > 0 {
		payment := coin.NewCoin(amount, conf.Denom)
		if err := h.bank.MoveCoins(db, payer, escrow.Seller, payment); err != nil {
			return nil, errors.Wrap(err, "cannot pay seller")
		}
	}

	transfer, err := h.transferer.Transfer(escrow.Collection, escrow.TokenID, payer)
	if err != nil {
		return nil, err
	}
	data, err := transfer.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal transfer")
	}

	escrow.Amount = amount
	escrow.SettledAt = now
	if err := h.bucket.Put(db, orm.EncodeSequence(msg.EscrowID), escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	transitions.WithLabelValues(transitionSettled).Inc()
	nftescrow.GetLogger(ctx).Info("escrow settled",
		"escrow_id", msg.EscrowID, "amount", amount, "buyer", payer, "seller", escrow.Seller)

	tags := []common.KVPair{
		nftescrow.Tag("action", "execute_send_funds"),
		nftescrow.Tag("escrow_id", formatID(msg.EscrowID)),
		nftescrow.Tag("token_id", escrow.TokenID),
		nftescrow.Tag("buyer", payer.String()),
	}
	return &nftescrow.DeliverResult{
		Data: data,
		Tags: append(tags, transferTags(transfer)...),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SendFundsHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*Configuration, *SendFundsMsg, *Escrow, error) {
	conf, err := loadEnabled(db)
	if err != nil {
		return nil, nil, nil, err
	}
	var msg SendFundsMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	var escrow Escrow
	if err := h.bucket.One(db, orm.EncodeSequence(msg.EscrowID), &escrow); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "escrow %d", msg.EscrowID)
	}
	if err := x.RequireMainSigner(ctx, h.auth, escrow.Buyer); err != nil {
		return nil, nil, nil, errors.Wrap(err, "not buyer")
	}
	switch {
	case escrow.IsCanceled():
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidState, "escrow canceled")
	case escrow.IsSettled():
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidState, "escrow settled")
	}
	if paid := msg.Funds.AmountOf(conf.Denom); paid < escrow.Price {
		return nil, nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "paid %d %s, price is %d", paid, conf.Denom, escrow.Price)
	}
	return conf, &msg, &escrow, nil
}

// UpdateOwnerHandler hands the configuration over to a new owner.
type UpdateOwnerHandler struct {
	auth x.Authenticator
}

var _ nftescrow.Handler = UpdateOwnerHandler{}

func (h UpdateOwnerHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: updateConfigCost}, nil
}

func (h UpdateOwnerHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	conf, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Owner = msg.Owner
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save configuration")
	}
	nftescrow.GetLogger(ctx).Info("escrow owner updated", "owner", msg.Owner)
	return &nftescrow.DeliverResult{
		Tags: []common.KVPair{
			nftescrow.Tag("action", "execute_update_owner"),
			nftescrow.Tag("owner", msg.Owner.String()),
		},
	}, nil
}

func (h UpdateOwnerHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*Configuration, *UpdateOwnerMsg, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	var msg UpdateOwnerMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := gconf.RequireOwner(ctx, h.auth, conf); err != nil {
		return nil, nil, err
	}
	return conf, &msg, nil
}

// SetEnabledHandler switches the module on and off. It is not gated by the
// enabled flag itself.
type SetEnabledHandler struct {
	auth x.Authenticator
}

var _ nftescrow.Handler = SetEnabledHandler{}

func (h SetEnabledHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: updateConfigCost}, nil
}

func (h SetEnabledHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	conf, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Enabled = msg.Enabled
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save configuration")
	}
	nftescrow.GetLogger(ctx).Info("escrow switched", "enabled", msg.Enabled)
	return &nftescrow.DeliverResult{
		Tags: []common.KVPair{
			nftescrow.Tag("action", "execute_set_enabled"),
			nftescrow.Tag("enabled", strconv.FormatBool(msg.Enabled)),
		},
	}, nil
}

func (h SetEnabledHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*Configuration, *SetEnabledMsg, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	var msg SetEnabledMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := gconf.RequireOwner(ctx, h.auth, conf); err != nil {
		return nil, nil, err
	}
	return conf, &msg, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
