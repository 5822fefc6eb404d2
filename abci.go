package nftescrow

import (
	"github.com/iov-one/nftescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is what a handler returns for a successfully delivered
// message. Failures are always reported as errors, never as a result.
type DeliverResult struct {
	// Data is returned to the client, for example the created escrow ID.
	Data []byte
	Log  string
	// Tags are indexed by tendermint, so that clients can search for
	// transactions touching an escrow.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is what a handler returns for a message that passed the
// mempool check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum work the message may perform.
	GasAllocated int64
	GasPayment   int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// Tag builds a single key value pair that tendermint indexes.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// DeliverOrError builds the DeliverTx response from the handler output.
// Outside of debug mode internal errors are redacted.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response from the handler output.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciError("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciError("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciError(stage string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + stage + " tx: " + log
}

// ParseDeliverOrError turns a DeliverTx response received by a client back
// into a result or, for a failed transaction, into an error carrying the
// original ABCI code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}
