package escrow

import (
	"testing"

	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestParseDirective(t *testing.T) {
	collection := weavetest.NewCondition().Address()
	buyer := weavetest.NewCondition().Address()
	valid := `{"create_escrow": {"collection": "` + collection.String() + `", "price": 1000, "buyer": "` + buyer.String() + `"}}`

	cases := map[string]struct {
		payload string
		want    *CreateEscrow
		wantErr *errors.Error
	}{
		"valid directive": {
			payload: valid,
			want:    &CreateEscrow{Collection: collection, Price: 1000, Buyer: buyer},
		},
		"trailing whitespace": {
			payload: valid + "\n",
			want:    &CreateEscrow{Collection: collection, Price: 1000, Buyer: buyer},
		},
		"trailing data": {
			payload: valid + `{}`,
			wantErr: ErrMalformedDirective,
		},
		"unknown instruction": {
			payload: `{"buy_now": {}}`,
			wantErr: ErrMalformedDirective,
		},
		"no instruction": {
			payload: `{}`,
			wantErr: ErrMalformedDirective,
		},
		"unknown field": {
			payload: `{"create_escrow": {"collection": "` + collection.String() + `", "price": 1, "buyer": "` + buyer.String() + `", "fee": 3}}`,
			wantErr: ErrMalformedDirective,
		},
		"missing buyer": {
			payload: `{"create_escrow": {"collection": "` + collection.String() + `", "price": 1}}`,
			wantErr: ErrMalformedDirective,
		},
		"price as string": {
			payload: `{"create_escrow": {"collection": "` + collection.String() + `", "price": "1", "buyer": "` + buyer.String() + `"}}`,
			wantErr: ErrMalformedDirective,
		},
		"invalid address": {
			payload: `{"create_escrow": {"collection": "zz", "price": 1, "buyer": "` + buyer.String() + `"}}`,
			wantErr: ErrMalformedDirective,
		},
		"not json": {
			payload: `create_escrow`,
			wantErr: ErrMalformedDirective,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			d, err := ParseDirective([]byte(tc.payload))
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.want, d.CreateEscrow)
		})
	}
}

func TestDirectiveMarshal(t *testing.T) {
	d := Directive{CreateEscrow: &CreateEscrow{
		Collection: weavetest.NewCondition().Address(),
		Price:      77,
		Buyer:      weavetest.NewCondition().Address(),
	}}
	raw, err := d.Marshal()
	assert.Nil(t, err)
	got, err := ParseDirective(raw)
	assert.Nil(t, err)
	assert.Equal(t, &d, got)
}
