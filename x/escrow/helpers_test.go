package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/x/cash"
)

const testDenom = "IOV"

var blockTime = time.Date(2019, time.March, 14, 10, 0, 0, 0, time.UTC)

// registry collects handlers registered by RegisterRoutes.
type registry map[string]nftescrow.Handler

func (r registry) Handle(path string, h nftescrow.Handler) {
	r[path] = h
}

// fixture is an initialized escrow module with funded participants.
type fixture struct {
	db         nftescrow.CacheableKVStore
	bank       cash.Controller
	owner      nftescrow.Condition
	collection nftescrow.Condition
	seller     nftescrow.Condition
	buyer      nftescrow.Condition
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	return newFixtureOn(t, store.MemStore())
}

// newFixtureOn initializes the escrow module on top of given store.
func newFixtureOn(t testing.TB, db nftescrow.CacheableKVStore) *fixture {
	t.Helper()
	f := &fixture{
		db:         db,
		bank:       cash.NewController(cash.NewBucket()),
		owner:      weavetest.NewCondition(),
		collection: weavetest.NewCondition(),
		seller:     weavetest.NewCondition(),
		buyer:      weavetest.NewCondition(),
	}
	if err := InitConfiguration(f.db, f.owner.Address(), testDenom); err != nil {
		t.Fatalf("cannot initialize configuration: %+v", err)
	}
	if err := f.bank.IssueCoins(f.db, f.buyer.Address(), coin.NewCoin(10000, testDenom)); err != nil {
		t.Fatalf("cannot fund buyer: %+v", err)
	}
	if err := f.bank.IssueCoins(f.db, f.buyer.Address(), coin.NewCoin(10000, "ETH")); err != nil {
		t.Fatalf("cannot fund buyer: %+v", err)
	}
	return f
}

// handler returns the handler registered for given message, authenticated
// as signed by signer.
func (f *fixture) handler(t testing.TB, signer nftescrow.Condition, msg nftescrow.Msg) nftescrow.Handler {
	t.Helper()
	r := make(registry)
	RegisterRoutes(r, &weavetest.Auth{Signer: signer}, f.bank)
	h, ok := r[msg.Path()]
	if !ok {
		t.Fatalf("no handler for %q", msg.Path())
	}
	return h
}

func (f *fixture) deliver(t testing.TB, signer nftescrow.Condition, msg nftescrow.Msg) (*nftescrow.DeliverResult, error) {
	t.Helper()
	h := f.handler(t, signer, msg)
	return h.Deliver(blockContext(), f.db, &weavetest.Tx{Msg: msg})
}

func (f *fixture) check(t testing.TB, signer nftescrow.Condition, msg nftescrow.Msg) (*nftescrow.CheckResult, error) {
	t.Helper()
	h := f.handler(t, signer, msg)
	return h.Check(context.Background(), f.db, &weavetest.Tx{Msg: msg})
}

// createEscrow deposits a fresh token and returns the escrow identifier.
func (f *fixture) createEscrow(t testing.TB, price int64) uint64 {
	t.Helper()
	res, err := f.deliver(t, f.collection, f.receiveMsg(t, price))
	if err != nil {
		t.Fatalf("cannot create escrow: %+v", err)
	}
	id, err := orm.DecodeSequence(res.Data)
	if err != nil {
		t.Fatalf("invalid escrow id: %+v", err)
	}
	return id
}

func (f *fixture) receiveMsg(t testing.TB, price int64) *ReceiveNftMsg {
	t.Helper()
	return &ReceiveNftMsg{
		Metadata: &nftescrow.Metadata{Schema: 1},
		Sender:   f.seller.Address(),
		TokenID:  "token-1",
		Payload:  directivePayload(t, f.collection.Address(), price, f.buyer.Address()),
	}
}

func (f *fixture) setEnabled(t testing.TB, enabled bool) {
	t.Helper()
	conf, err := LoadConfiguration(f.db)
	if err != nil {
		t.Fatalf("cannot load configuration: %+v", err)
	}
	conf.Enabled = enabled
	if err := SaveConfiguration(f.db, conf); err != nil {
		t.Fatalf("cannot save configuration: %+v", err)
	}
}

func (f *fixture) balance(t testing.TB, addr nftescrow.Address, denom string) int64 {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	if err != nil {
		return 0
	}
	return coins.AmountOf(denom)
}

func directivePayload(t testing.TB, collection nftescrow.Address, price int64, buyer nftescrow.Address) []byte {
	t.Helper()
	d := Directive{
		CreateEscrow: &CreateEscrow{Collection: collection, Price: price, Buyer: buyer},
	}
	raw, err := d.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal directive: %+v", err)
	}
	return raw
}

func blockContext() nftescrow.Context {
	return nftescrow.WithBlockTime(context.Background(), blockTime)
}

func funds(amounts ...coin.Coin) coin.Coins {
	cs := make(coin.Coins, 0, len(amounts))
	for i := range amounts {
		cs = append(cs, &amounts[i])
	}
	return cs
}
