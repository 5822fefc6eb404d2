package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCombineCoins(cs ...Coin) Coins {
	s, err := CombineCoins(cs...)
	if err != nil {
		panic(err)
	}
	return s
}

func TestMakeCoins(t *testing.T) {
	cases := map[string]struct {
		inputs   []Coin
		isEmpty  bool
		isNonNeg bool
		has      []Coin
		dontHave []Coin
		isErr    bool
	}{
		"empty": {
			isEmpty:  true,
			isNonNeg: true,
			dontHave: []Coin{NewCoin(1, "FOO")},
		},
		"ignore 0": {
			inputs:   []Coin{NewCoin(0, "FOO")},
			isEmpty:  true,
			isNonNeg: true,
			has:      []Coin{NewCoin(0, "FOO")},
		},
		"simple": {
			inputs:   []Coin{NewCoin(40, "FUD")},
			isNonNeg: true,
			has:      []Coin{NewCoin(10, "FUD"), NewCoin(40, "FUD")},
			dontHave: []Coin{NewCoin(41, "FUD"), NewCoin(40, "FUN")},
		},
		"out of order, with negative": {
			inputs:   []Coin{NewCoin(-20, "FIN"), NewCoin(40, "BON")},
			has:      []Coin{NewCoin(40, "BON"), NewCoin(-30, "FIN")},
			dontHave: []Coin{NewCoin(41, "BON"), NewCoin(-10, "FIN")},
		},
		"combine and remove": {
			inputs:   []Coin{NewCoin(-123, "BOO"), NewCoin(123, "BOO")},
			isEmpty:  true,
			isNonNeg: true,
			dontHave: []Coin{NewCoin(1, "BOO")},
		},
		"invalid denomination": {
			inputs: []Coin{NewCoin(1, "AL2")},
			isErr:  true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s, err := CombineCoins(tc.inputs...)
			if tc.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, s.Validate())
			assert.Equal(t, tc.isEmpty, s.IsEmpty())
			assert.Equal(t, tc.isNonNeg, s.IsNonNegative())
			for _, h := range tc.has {
				assert.True(t, s.Contains(h), "%s", h)
			}
			for _, d := range tc.dontHave {
				assert.False(t, s.Contains(d), "%s", d)
			}
		})
	}
}

func TestCoinsAmountOf(t *testing.T) {
	cases := map[string]struct {
		funds Coins
		denom string
		want  int64
	}{
		"nil funds": {
			funds: nil,
			denom: "IOV",
			want:  0,
		},
		"denomination absent": {
			funds: Coins{NewCoinp(1000, "ETH")},
			denom: "IOV",
			want:  0,
		},
		"single coin": {
			funds: Coins{NewCoinp(1000, "IOV")},
			denom: "IOV",
			want:  1000,
		},
		"mixed set": {
			funds: Coins{NewCoinp(7, "ETH"), NewCoinp(999, "IOV")},
			denom: "IOV",
			want:  999,
		},
		"not normalized duplicates are summed": {
			funds: Coins{NewCoinp(400, "IOV"), nil, NewCoinp(600, "IOV")},
			denom: "IOV",
			want:  1000,
		},
		"sum above the limit is capped": {
			funds: Coins{
				NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"),
				NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"),
				NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV"),
				NewCoinp(MaxInt, "IOV"),
			},
			denom: "IOV",
			want:  MaxInt,
		},
		"sum below the limit is capped": {
			funds: Coins{NewCoinp(MinInt, "IOV"), NewCoinp(-5, "IOV")},
			denom: "IOV",
			want:  MinInt,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.funds.AmountOf(tc.denom))
		})
	}
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr bool
	}{
		"empty set": {
			coins: nil,
		},
		"sorted set": {
			coins: Coins{NewCoinp(1, "ETH"), NewCoinp(2, "IOV")},
		},
		"not sorted": {
			coins:   Coins{NewCoinp(2, "IOV"), NewCoinp(1, "ETH")},
			wantErr: true,
		},
		"duplicated denomination": {
			coins:   Coins{NewCoinp(MaxInt, "IOV"), NewCoinp(MaxInt, "IOV")},
			wantErr: true,
		},
		"zero coin": {
			coins:   Coins{NewCoinp(0, "IOV")},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCoinsCombine(t *testing.T) {
	a := mustCombineCoins(NewCoin(5, "ETH"), NewCoin(10, "IOV"))
	b := mustCombineCoins(NewCoin(-10, "IOV"), NewCoin(3, "BTC"))

	got, err := a.Combine(b)
	require.NoError(t, err)
	want := mustCombineCoins(NewCoin(3, "BTC"), NewCoin(5, "ETH"))
	assert.True(t, want.Equals(got), "%v", got)

	// Combine must not modify the source.
	assert.Equal(t, int64(10), a.AmountOf("IOV"))

	left, err := a.Subtract(NewCoin(5, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), left.AmountOf("ETH"))
}

func TestNormalizeCoins(t *testing.T) {
	cases := map[string]struct {
		coins Coins
		want  Coins
	}{
		"nil": {},
		"zero coins removed": {
			coins: Coins{NewCoinp(0, "IOV")},
		},
		"sorted and merged": {
			coins: Coins{NewCoinp(2, "IOV"), NewCoinp(1, "ETH"), NewCoinp(3, "IOV")},
			want:  Coins{NewCoinp(1, "ETH"), NewCoinp(5, "IOV")},
		},
		"already normalized": {
			coins: Coins{NewCoinp(1, "ETH"), NewCoinp(5, "IOV")},
			want:  Coins{NewCoinp(1, "ETH"), NewCoinp(5, "IOV")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := NormalizeCoins(tc.coins)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
