package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestHandler(t *testing.T) {
	cases := map[string]struct {
		handler        Handler
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"escrow created": {
			handler: Handler{
				CheckResult:   nftescrow.CheckResult{GasAllocated: 100},
				DeliverResult: nftescrow.DeliverResult{Data: []byte{0, 0, 0, 0, 0, 0, 0, 1}},
			},
		},
		"buyer did not pay enough": {
			handler: Handler{
				CheckErr:   errors.ErrInsufficientAmount,
				DeliverErr: errors.ErrInsufficientAmount,
			},
			wantCheckErr:   errors.ErrInsufficientAmount,
			wantDeliverErr: errors.ErrInsufficientAmount,
		},
		"escrow gone by delivery": {
			handler:        Handler{DeliverErr: errors.ErrNotFound},
			wantDeliverErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := tc.handler
			for i := 1; i <= 2; i++ {
				cres, err := h.Check(nil, nil, nil)
				if !tc.wantCheckErr.Is(err) {
					t.Fatalf("unexpected check error: %v", err)
				}
				if err == nil {
					assert.Equal(t, tc.handler.CheckResult, *cres)
				}
				dres, err := h.Deliver(nil, nil, nil)
				if !tc.wantDeliverErr.Is(err) {
					t.Fatalf("unexpected deliver error: %v", err)
				}
				if err == nil {
					assert.Equal(t, tc.handler.DeliverResult, *dres)
				}
				// Failed calls are counted as well.
				assert.Equal(t, i, h.CheckCallCount())
				assert.Equal(t, i, h.DeliverCallCount())
				assert.Equal(t, 2*i, h.CallCount())
			}
		})
	}
}

func TestWriteHandler(t *testing.T) {
	db := store.MemStore()
	h := WriteHandler{Key: []byte("esc:1"), Value: []byte("escrow"), Err: errors.ErrHuman}

	if _, err := h.Deliver(context.Background(), db, nil); !errors.ErrHuman.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	// The write happens before the failure. Discarding it is the caller's job.
	assert.Equal(t, []byte("escrow"), db.Get([]byte("esc:1")))
}

func TestPanicHandler(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	_, _ = PanicHandler{Msg: "boom"}.Check(context.Background(), nil, nil)
}
