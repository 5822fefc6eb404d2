package app

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete ABCI application. StoreApp provides state, block
// and query handling; BaseApp decodes transactions and runs them through
// the decorator stack and router.
type BaseApp struct {
	*StoreApp
	decoder nftescrow.TxDecoder
	handler nftescrow.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application running every transaction through
// handler. With debug set, internal error messages are not redacted.
func NewBaseApp(store *StoreApp, decoder nftescrow.TxDecoder, handler nftescrow.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return nftescrow.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return nftescrow.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return nftescrow.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return nftescrow.CheckOrError(res, err, b.debug)
}

// txContext returns the block context with a logger describing the call,
// for example call=deliver_tx path=escrow/send_funds.
func (b BaseApp) txContext(call string, tx nftescrow.Tx) nftescrow.Context {
	return nftescrow.WithLogInfo(b.BlockContext(), "call", call, "path", nftescrow.GetPath(tx))
}

// decode turns a decoder panic on malformed bytes into ErrPanic.
func (b BaseApp) decode(txBytes []byte) (tx nftescrow.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
