package nftescrow

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nftescrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantExt string
		wantTyp string
		wantErr *errors.Error
	}{
		"valid": {
			cond:    NewCondition("sigs", "ed25519", []byte{0xAB, 0x10}),
			wantExt: "sigs",
			wantTyp: "ed25519",
		},
		"data with newline": {
			cond:    NewCondition("escrow", "seq", []byte{0x0a, 0x20}),
			wantExt: "escrow",
			wantTyp: "seq",
		},
		"missing data": {
			cond:    Condition("sigs/ed25519/"),
			wantErr: errors.ErrInvalidInput,
		},
		"too short extension": {
			cond:    NewCondition("s", "ed25519", []byte{1}),
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, _, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantTyp, typ)
			if tc.wantErr == nil {
				assert.NoError(t, tc.cond.Validate())
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte("some public key"))
	addr := cond.Address()
	require.NoError(t, addr.Validate())

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	b32, err := addr.Bech32("iov")
	require.NoError(t, err)

	cases := map[string]struct {
		raw     string
		want    Address
		wantErr *errors.Error
	}{
		"hex": {
			raw:  string(raw),
			want: addr,
		},
		"explicit hex": {
			raw:  `"hex:` + addr.String() + `"`,
			want: addr,
		},
		"condition": {
			raw:  `"cond:` + cond.String() + `"`,
			want: addr,
		},
		"bech32": {
			raw:  `"bech32:` + b32 + `"`,
			want: addr,
		},
		"empty": {
			raw:  `""`,
			want: nil,
		},
		"too short": {
			raw:     `"ABCD"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			raw:     `"base64:ABCD"`,
			wantErr: errors.ErrInvalidType,
		},
		"not a string": {
			raw:     `42`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(Address(nil).Validate()))
	assert.True(t, errors.ErrInvalidInput.Is(Address([]byte{1, 2}).Validate()))
	assert.NoError(t, NewAddress([]byte("foo")).Validate())
	assert.Nil(t, NewAddress(nil))
	assert.Equal(t, "(nil)", Address(nil).String())
}
