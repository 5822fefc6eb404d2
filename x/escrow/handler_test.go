package escrow

import (
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/migration"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
	"github.com/iov-one/nftescrow/x/utils"
)

func TestReceiveNft(t *testing.T) {
	cases := map[string]struct {
		disabled bool
		signer   func(*fixture) nftescrow.Condition
		msg      func(*testing.T, *fixture) *ReceiveNftMsg
		wantErr  *errors.Error
	}{
		"escrow created": {
			signer: func(f *fixture) nftescrow.Condition { return f.collection },
			msg:    func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, 1000) },
		},
		"zero price": {
			signer: func(f *fixture) nftescrow.Condition { return f.collection },
			msg:    func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, 0) },
		},
		"module disabled": {
			disabled: true,
			signer:   func(f *fixture) nftescrow.Condition { return f.collection },
			msg:      func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, 1000) },
			wantErr:  ErrDisabled,
		},
		"disabled is checked before the payload": {
			disabled: true,
			signer:   func(f *fixture) nftescrow.Condition { return f.collection },
			msg: func(t *testing.T, f *fixture) *ReceiveNftMsg {
				m := f.receiveMsg(t, 1000)
				m.Payload = []byte(`{"unknown": {}}`)
				return m
			},
			wantErr: ErrDisabled,
		},
		"missing token id": {
			signer: func(f *fixture) nftescrow.Condition { return f.collection },
			msg: func(t *testing.T, f *fixture) *ReceiveNftMsg {
				m := f.receiveMsg(t, 1000)
				m.TokenID = ""
				return m
			},
			wantErr: errors.ErrEmpty,
		},
		"unknown instruction": {
			signer: func(f *fixture) nftescrow.Condition { return f.collection },
			msg: func(t *testing.T, f *fixture) *ReceiveNftMsg {
				m := f.receiveMsg(t, 1000)
				m.Payload = []byte(`{"start_auction": {"price": 1}}`)
				return m
			},
			wantErr: ErrMalformedDirective,
		},
		"payload is not json": {
			signer: func(f *fixture) nftescrow.Condition { return f.collection },
			msg: func(t *testing.T, f *fixture) *ReceiveNftMsg {
				m := f.receiveMsg(t, 1000)
				m.Payload = []byte("create escrow please")
				return m
			},
			wantErr: ErrMalformedDirective,
		},
		"negative price": {
			signer:  func(f *fixture) nftescrow.Condition { return f.collection },
			msg:     func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, -1) },
			wantErr: ErrMalformedDirective,
		},
		"notification not from the collection": {
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			msg:     func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, 1000) },
			wantErr: ErrInvalidAssetSource,
		},
		"unsigned notification": {
			signer:  func(f *fixture) nftescrow.Condition { return nil },
			msg:     func(t *testing.T, f *fixture) *ReceiveNftMsg { return f.receiveMsg(t, 1000) },
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.disabled {
				f.setEnabled(t, false)
			}
			msg := tc.msg(t, f)
			signer := tc.signer(f)

			if _, err := f.check(t, signer, msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := f.deliver(t, signer, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			conf, err := LoadConfiguration(f.db)
			assert.Nil(t, err)

			if tc.wantErr != nil {
				assert.Equal(t, uint64(0), conf.EscrowID)
				if _, err := GetEscrow(f.db, 0); !errors.ErrNotFound.Is(err) {
					t.Fatalf("escrow must not exist: %+v", err)
				}
				return
			}

			assert.Equal(t, orm.EncodeSequence(0), res.Data)
			assert.Equal(t, uint64(1), conf.EscrowID)

			escrow, err := GetEscrow(f.db, 0)
			assert.Nil(t, err)
			directive, err := ParseDirective(msg.Payload)
			assert.Nil(t, err)
			want := &Escrow{
				Metadata:   &nftescrow.Metadata{Schema: 1},
				TokenID:    msg.TokenID,
				Collection: f.collection.Address(),
				Price:      directive.CreateEscrow.Price,
				Amount:     0,
				Seller:     f.seller.Address(),
				Buyer:      f.buyer.Address(),
				CreatedAt:  nftescrow.AsUnixTime(blockTime),
			}
			assert.Equal(t, want, escrow)

			ids, err := EscrowsByCreator(f.db, f.seller.Address())
			assert.Nil(t, err)
			assert.Equal(t, []uint64{0}, ids)

			assert.Equal(t, []string{
				"action=execute_create_escrow",
				"escrow_id=0",
				"token_id=token-1",
			}, tagStrings(res)[:3])
		})
	}
}

func TestSequentialEscrowIDs(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, uint64(0), f.createEscrow(t, 1000))
	assert.Equal(t, uint64(1), f.createEscrow(t, 2000))

	other := weavetest.NewCondition()
	msg := f.receiveMsg(t, 3000)
	msg.Sender = other.Address()
	res, err := f.deliver(t, f.collection, msg)
	assert.Nil(t, err)
	assert.Equal(t, orm.EncodeSequence(2), res.Data)

	ids, err := EscrowsByCreator(f.db, f.seller.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{0, 1}, ids)

	ids, err = EscrowsByCreator(f.db, other.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{2}, ids)

	ids, err = EscrowsByCreator(f.db, f.buyer.Address())
	assert.Nil(t, err)
	assert.Equal(t, 0, len(ids))

	conf, err := LoadConfiguration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), conf.EscrowID)
}

func TestCancelEscrow(t *testing.T) {
	cases := map[string]struct {
		// prepare runs after escrow 0 was created.
		prepare   func(*testing.T, *fixture)
		zeroPrice bool
		signer    func(*fixture) nftescrow.Condition
		id        uint64
		wantErr   *errors.Error
	}{
		"seller cancels": {
			signer: func(f *fixture) nftescrow.Condition { return f.seller },
		},
		"module disabled": {
			prepare: func(t *testing.T, f *fixture) { f.setEnabled(t, false) },
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			wantErr: ErrDisabled,
		},
		"unknown escrow": {
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			id:      42,
			wantErr: errors.ErrNotFound,
		},
		"buyer cannot cancel": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			wantErr: errors.ErrUnauthorized,
		},
		"collection cannot cancel": {
			signer:  func(f *fixture) nftescrow.Condition { return f.collection },
			wantErr: errors.ErrUnauthorized,
		},
		"already canceled": {
			prepare: func(t *testing.T, f *fixture) {
				_, err := f.deliver(t, f.seller, &CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}})
				assert.Nil(t, err)
			},
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			wantErr: errors.ErrInvalidState,
		},
		"already settled": {
			prepare: func(t *testing.T, f *fixture) {
				_, err := f.deliver(t, f.buyer, &SendFundsMsg{
					Metadata: &nftescrow.Metadata{Schema: 1},
					Funds:    funds(coin.NewCoin(1000, testDenom)),
				})
				assert.Nil(t, err)
			},
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			wantErr: errors.ErrUnauthorized,
		},
		"settled for free": {
			zeroPrice: true,
			prepare: func(t *testing.T, f *fixture) {
				_, err := f.deliver(t, f.buyer, &SendFundsMsg{Metadata: &nftescrow.Metadata{Schema: 1}})
				assert.Nil(t, err)
			},
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			price := int64(1000)
			if tc.zeroPrice {
				price = 0
			}
			f.createEscrow(t, price)
			if tc.prepare != nil {
				tc.prepare(t, f)
			}
			before, err := GetEscrow(f.db, 0)
			assert.Nil(t, err)

			msg := &CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}, EscrowID: tc.id}
			signer := tc.signer(f)
			if _, err := f.check(t, signer, msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := f.deliver(t, signer, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			after, err := GetEscrow(f.db, 0)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, before, after)
				return
			}

			assert.Equal(t, nftescrow.AsUnixTime(blockTime), after.CanceledAt)
			assert.Equal(t, int64(0), after.Amount)

			transfer, err := ParseTransfer(res.Data)
			assert.Nil(t, err)
			assert.Equal(t, f.collection.Address(), transfer.Collection)
			assert.Equal(t, "token-1", transfer.TokenID)
			assert.Equal(t, f.seller.Address(), transfer.Recipient)

			assert.Equal(t, []string{
				"action=execute_cancel_escrow",
				"escrow_id=0",
				"transfer.collection=" + f.collection.Address().String(),
				"transfer.recipient=" + f.seller.Address().String(),
			}, tagStrings(res))

			// The creator index survives cancellation.
			ids, err := EscrowsByCreator(f.db, f.seller.Address())
			assert.Nil(t, err)
			assert.Equal(t, []uint64{0}, ids)
		})
	}
}

func TestSendFunds(t *testing.T) {
	cases := map[string]struct {
		prepare     func(*testing.T, *fixture)
		signer      func(*fixture) nftescrow.Condition
		id          uint64
		funds       coin.Coins
		wantErr     *errors.Error
		wantPayment int64
	}{
		"exact price": {
			signer:      func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:       funds(coin.NewCoin(1000, testDenom)),
			wantPayment: 1000,
		},
		"overpayment is kept by the seller": {
			signer:      func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:       funds(coin.NewCoin(1500, testDenom)),
			wantPayment: 1500,
		},
		"other denominations are ignored": {
			signer:      func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:       funds(coin.NewCoin(7, "ETH"), coin.NewCoin(1000, testDenom)),
			wantPayment: 1000,
		},
		"half of the price": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(500, testDenom)),
			wantErr: errors.ErrInsufficientAmount,
		},
		"one unit below the price": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(999, testDenom)),
			wantErr: errors.ErrInsufficientAmount,
		},
		"wrong denomination": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(5000, "ETH")),
			wantErr: errors.ErrInsufficientAmount,
		},
		"no funds": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			wantErr: errors.ErrInsufficientAmount,
		},
		"module disabled": {
			prepare: func(t *testing.T, f *fixture) { f.setEnabled(t, false) },
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(1000, testDenom)),
			wantErr: ErrDisabled,
		},
		"unknown escrow": {
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			id:      7,
			funds:   funds(coin.NewCoin(1000, testDenom)),
			wantErr: errors.ErrNotFound,
		},
		"not the buyer": {
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			funds:   funds(coin.NewCoin(1000, testDenom)),
			wantErr: errors.ErrUnauthorized,
		},
		"canceled escrow": {
			prepare: func(t *testing.T, f *fixture) {
				_, err := f.deliver(t, f.seller, &CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}})
				assert.Nil(t, err)
			},
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(1000, testDenom)),
			wantErr: errors.ErrInvalidState,
		},
		"settled escrow": {
			prepare: func(t *testing.T, f *fixture) {
				_, err := f.deliver(t, f.buyer, &SendFundsMsg{
					Metadata: &nftescrow.Metadata{Schema: 1},
					Funds:    funds(coin.NewCoin(1000, testDenom)),
				})
				assert.Nil(t, err)
			},
			signer:  func(f *fixture) nftescrow.Condition { return f.buyer },
			funds:   funds(coin.NewCoin(1000, testDenom)),
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.createEscrow(t, 1000)
			if tc.prepare != nil {
				tc.prepare(t, f)
			}
			before, err := GetEscrow(f.db, 0)
			assert.Nil(t, err)
			buyerBefore := f.balance(t, f.buyer.Address(), testDenom)
			sellerBefore := f.balance(t, f.seller.Address(), testDenom)

			msg := &SendFundsMsg{
				Metadata: &nftescrow.Metadata{Schema: 1},
				EscrowID: tc.id,
				Funds:    tc.funds,
			}
			signer := tc.signer(f)
			if _, err := f.check(t, signer, msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := f.deliver(t, signer, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			after, err := GetEscrow(f.db, 0)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, before, after)
				assert.Equal(t, buyerBefore, f.balance(t, f.buyer.Address(), testDenom))
				assert.Equal(t, sellerBefore, f.balance(t, f.seller.Address(), testDenom))
				return
			}

			assert.Equal(t, tc.wantPayment, after.Amount)
			assert.Equal(t, nftescrow.AsUnixTime(blockTime), after.SettledAt)
			assert.Equal(t, buyerBefore-tc.wantPayment, f.balance(t, f.buyer.Address(), testDenom))
			assert.Equal(t, sellerBefore+tc.wantPayment, f.balance(t, f.seller.Address(), testDenom))
			assert.Equal(t, int64(10000), f.balance(t, f.buyer.Address(), "ETH"))

			transfer, err := ParseTransfer(res.Data)
			assert.Nil(t, err)
			assert.Equal(t, f.collection.Address(), transfer.Collection)
			assert.Equal(t, "token-1", transfer.TokenID)
			assert.Equal(t, f.buyer.Address(), transfer.Recipient)

			assert.Equal(t, []string{
				"action=execute_send_funds",
				"escrow_id=0",
				"token_id=token-1",
				"buyer=" + f.buyer.Address().String(),
			}, tagStrings(res)[:4])
		})
	}
}

func TestSendFundsZeroPrice(t *testing.T) {
	f := newFixture(t)
	f.createEscrow(t, 0)

	msg := &SendFundsMsg{Metadata: &nftescrow.Metadata{Schema: 1}}
	_, err := f.deliver(t, f.buyer, msg)
	assert.Nil(t, err)

	escrow, err := GetEscrow(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), escrow.Amount)
	assert.Equal(t, true, escrow.IsSettled())
	assert.Equal(t, int64(10000), f.balance(t, f.buyer.Address(), testDenom))
}

func TestSendFundsRollback(t *testing.T) {
	f := newFixture(t)
	// The buyer attaches more than their wallet holds, so the payment fails
	// after the escrow checks passed.
	f.createEscrow(t, 1000)
	msg := &SendFundsMsg{
		Metadata: &nftescrow.Metadata{Schema: 1},
		Funds:    funds(coin.NewCoin(50000, testDenom)),
	}

	h := weavetest.Decorate(f.handler(t, f.buyer, msg), utils.NewSavepoint().OnDeliver())
	_, err := h.Deliver(blockContext(), f.db, &weavetest.Tx{Msg: msg})
	if !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	escrow, err := GetEscrow(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, false, escrow.IsSettled())
	assert.Equal(t, int64(0), escrow.Amount)
	assert.Equal(t, int64(10000), f.balance(t, f.buyer.Address(), testDenom))
	assert.Equal(t, int64(0), f.balance(t, f.seller.Address(), testDenom))
}

func TestSettlementScenario(t *testing.T) {
	f := newFixture(t)
	id := f.createEscrow(t, 1000)
	assert.Equal(t, uint64(0), id)

	underpaid := &SendFundsMsg{
		Metadata: &nftescrow.Metadata{Schema: 1},
		EscrowID: id,
		Funds:    funds(coin.NewCoin(500, testDenom)),
	}
	if _, err := f.deliver(t, f.buyer, underpaid); !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	paid := &SendFundsMsg{
		Metadata: &nftescrow.Metadata{Schema: 1},
		EscrowID: id,
		Funds:    funds(coin.NewCoin(1000, testDenom)),
	}
	res, err := f.deliver(t, f.buyer, paid)
	assert.Nil(t, err)
	transfer, err := ParseTransfer(res.Data)
	assert.Nil(t, err)
	assert.Equal(t, f.buyer.Address(), transfer.Recipient)

	// A settled escrow holds funds and cannot be canceled.
	cancel := &CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}, EscrowID: id}
	if _, err := f.deliver(t, f.seller, cancel); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestUninitializedModule(t *testing.T) {
	f := newFixture(t)
	f.db.Delete([]byte("_c:escrow"))

	msgs := []nftescrow.Msg{
		f.receiveMsg(t, 1000),
		&CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}},
		&SendFundsMsg{Metadata: &nftescrow.Metadata{Schema: 1}},
		&UpdateOwnerMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Owner: f.seller.Address()},
		&SetEnabledMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Enabled: true},
	}
	for _, msg := range msgs {
		if _, err := f.deliver(t, f.owner, msg); !errors.ErrNotFound.Is(err) {
			t.Fatalf("%s: unexpected error: %+v", msg.Path(), err)
		}
	}
}

func TestUpdateOwner(t *testing.T) {
	cases := map[string]struct {
		signer  func(*fixture) nftescrow.Condition
		owner   func(*fixture) nftescrow.Address
		wantErr *errors.Error
	}{
		"owner hands over": {
			signer: func(f *fixture) nftescrow.Condition { return f.owner },
			owner:  func(f *fixture) nftescrow.Address { return f.seller.Address() },
		},
		"not signed by the owner": {
			signer:  func(f *fixture) nftescrow.Condition { return f.seller },
			owner:   func(f *fixture) nftescrow.Address { return f.seller.Address() },
			wantErr: errors.ErrUnauthorized,
		},
		"invalid new owner": {
			signer:  func(f *fixture) nftescrow.Condition { return f.owner },
			owner:   func(f *fixture) nftescrow.Address { return nil },
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			// Administration is not gated by the enabled flag.
			f.setEnabled(t, false)

			msg := &UpdateOwnerMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Owner: tc.owner(f)}
			if _, err := f.check(t, tc.signer(f), msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := f.deliver(t, tc.signer(f), msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			conf, err := LoadConfiguration(f.db)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, f.owner.Address(), conf.Owner)
			} else {
				assert.Equal(t, tc.owner(f), conf.Owner)
			}
		})
	}
}

func TestSetEnabled(t *testing.T) {
	f := newFixture(t)
	off := &SetEnabledMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Enabled: false}
	on := &SetEnabledMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Enabled: true}

	if _, err := f.deliver(t, f.seller, off); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	_, err := f.deliver(t, f.owner, off)
	assert.Nil(t, err)
	if _, err := f.deliver(t, f.collection, f.receiveMsg(t, 1000)); !ErrDisabled.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	_, err = f.deliver(t, f.owner, on)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), f.createEscrow(t, 1000))
}

func TestCheckDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	_, err := f.check(t, f.collection, f.receiveMsg(t, 1000))
	assert.Nil(t, err)

	conf, err := LoadConfiguration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), conf.EscrowID)
	if _, err := GetEscrow(f.db, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func tagStrings(res *nftescrow.DeliverResult) []string {
	out := make([]string, len(res.Tags))
	for i, t := range res.Tags {
		out[i] = string(t.Key) + "=" + string(t.Value)
	}
	return out
}

func TestMessageSchemaVersion(t *testing.T) {
	f := newFixture(t)

	newer := f.receiveMsg(t, 1000)
	newer.Metadata.Schema = 2
	if _, err := f.deliver(t, f.collection, newer); !errors.ErrSchema.Is(err) {
		t.Fatalf("a message newer than the package schema must be refused: %+v", err)
	}

	// A message without a schema is taken as the current version.
	unset := f.receiveMsg(t, 1000)
	unset.Metadata.Schema = 0
	_, err := f.deliver(t, f.collection, unset)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), unset.Metadata.Schema)

	// Version 2 has no registered migrations, so nothing can be upgraded
	// to it.
	_, err = migration.NewSchemaBucket().Create(f.db, &migration.Schema{
		Metadata: &nftescrow.Metadata{Schema: 1},
		Pkg:      packageName,
		Version:  2,
	})
	assert.Nil(t, err)
	if _, err := f.deliver(t, f.collection, f.receiveMsg(t, 1000)); !errors.ErrSchema.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := GetEscrow(f.db, 0); !errors.ErrSchema.Is(err) {
		t.Fatalf("stored escrow cannot be migrated: %+v", err)
	}
}
