/*
Package client talks to an escrow node over the tendermint RPC. It submits
signed transactions and reads the escrow state through ABCI queries.
*/
package client

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/crypto"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/sigs"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Client is a tendermint client wrapped to provide
// simple access to the escrow data structures.
type Client struct {
	conn    rpcclient.ABCIClient
	chainID string
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn rpcclient.ABCIClient, chainID string) *Client {
	return &Client{conn: conn, chainID: chainID}
}

// NewHTTPClient connects to the RPC endpoint of a node, for example
// "http://localhost:26657".
func NewHTTPClient(remote, chainID string) *Client {
	return NewClient(rpcclient.NewHTTP(remote, "/websocket"), chainID)
}

// Height returns the height of the last block committed by the application.
func (c *Client) Height() (int64, error) {
	info, err := c.conn.ABCIInfo()
	if err != nil {
		return 0, errors.Wrapf(errors.ErrNetwork, "info: %s", err)
	}
	return info.Response.LastBlockHeight, nil
}

// SubmitTx will submit the tx to the mempool and then return with success or error.
// A transaction rejected by CheckTx is not included in a block.
func (c *Client) SubmitTx(tx nftescrow.Tx) (TransactionID, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	res, err := c.conn.BroadcastTxSync(tmtypes.Tx(bz))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err)
	}
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// CommitTx submits the tx and waits until it is included in a block. A
// failed delivery is returned in the Err field of the result.
func (c *Client) CommitTx(tx nftescrow.Tx) (*CommitResult, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	res, err := c.conn.BroadcastTxCommit(tmtypes.Tx(bz))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "commit tx: %s", err)
	}
	if res.CheckTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	result, err := nftescrow.ParseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}

// Query returns the models found under given path. Use an "?prefix" suffix
// for prefix queries.
func (c *Client) Query(path string, data []byte) ([]nftescrow.Model, error) {
	res, err := c.conn.ABCIQueryWithOptions(path, data, rpcclient.ABCIQueryOptions{})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err)
	}
	resp := res.Response
	if resp.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single model found under given path into dest. It
// returns ErrNotFound if nothing is stored there.
func (c *Client) queryOne(path string, data []byte, dest nftescrow.Persistent) error {
	models, err := c.Query(path, data)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, data)
	}
	return dest.Unmarshal(models[0].Value)
}

// GetEscrow returns the escrow with given identifier.
func (c *Client) GetEscrow(id uint64) (*escrow.Escrow, error) {
	var e escrow.Escrow
	if err := c.queryOne("/escrows", orm.EncodeSequence(id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EscrowsByCreator returns the identifiers of all escrows created by given
// seller, oldest first.
func (c *Client) EscrowsByCreator(seller nftescrow.Address) ([]uint64, error) {
	var creator escrow.Creator
	switch err := c.queryOne("/escrows/creator", seller, &creator); {
	case err == nil:
		return creator.EscrowIDs, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Configuration returns the escrow module configuration.
func (c *Client) Configuration() (*escrow.Configuration, error) {
	var conf escrow.Configuration
	models, err := c.Query("/gconf", []byte("escrow"))
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "escrow configuration")
	}
	if err := gconf.Load(modelStore(models), "escrow", &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Balance returns all coins held by given address.
func (c *Client) Balance(addr nftescrow.Address) (coin.Coins, error) {
	var set cash.Set
	if err := c.queryOne("/wallets", addr, &set); err != nil {
		return nil, err
	}
	return set.Coins, nil
}

// NextSequence returns the sequence that the next signature created with
// given key must use.
func (c *Client) NextSequence(pubkey *crypto.PublicKey) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne("/auth", pubkey.Address(), &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// SignTx appends a signature of given key, using the next sequence known
// to the node.
func (c *Client) SignTx(tx SignableTx, signer crypto.Signer) error {
	seq, err := c.NextSequence(signer.PublicKey())
	if err != nil {
		return errors.Wrap(err, "sequence")
	}
	sig, err := sigs.SignTx(signer, tx, c.chainID, seq)
	if err != nil {
		return err
	}
	tx.AddSignature(sig)
	return nil
}

// SignableTx is a transaction that can collect signatures.
type SignableTx interface {
	sigs.SignedTx
	AddSignature(*sigs.StdSignature)
}

// modelStore exposes query results as a read only store.
type modelStore []nftescrow.Model

func (m modelStore) Get(key []byte) []byte {
	for _, model := range m {
		if string(model.Key) == string(key) {
			return model.Value
		}
	}
	return nil
}
