package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// IsDenom is the RegExp to ensure valid denominations
var IsDenom = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt is the largest amount we accept
	MaxInt int64 = 999999999999999999 // 10^18-1
	// MinInt is the lowest amount we accept
	MinInt = -MaxInt
)

// Coin is an amount of a single fungible denomination. Amounts are integers
// of the smallest unit.
type Coin struct {
	Denom  string `json:"denom"`
	Amount int64  `json:"amount"`
}

var _ nftescrow.Persistent = (*Coin)(nil)

// NewCoin creates a new coin object
func NewCoin(amount int64, denom string) Coin {
	return Coin{
		Amount: amount,
		Denom:  denom,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, denom string) *Coin {
	c := NewCoin(amount, denom)
	return &c
}

// ID returns a coin denomination name.
func (c Coin) ID() string {
	return c.Denom
}

// Add combines two coins.
// Returns error if they are of different
// denominations, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// A coin without value and denomination has no influence on the
	// addition result.
	if c.Denom == "" && c.IsZero() {
		return o, nil
	}
	if o.Denom == "" && o.IsZero() {
		return c, nil
	}

	if !c.SameType(o) {
		err := errors.Wrapf(errors.ErrInvalidAmount, "adding %s to %s", c.Denom, o.Denom)
		return Coin{}, err
	}

	sum := c.Amount + o.Amount
	if sum < MinInt || sum > MaxInt {
		return Coin{}, errors.ErrOverflow
	}
	c.Amount = sum
	return c, nil
}

// Negative returns the opposite coins value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Denom:  c.Denom,
		Amount: -1 * c.Amount,
	}
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare will check values of two coins, without
// inspecting the denomination. It is up to the caller
// to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Denom == o.Denom && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same denomination
func (c Coin) SameType(o Coin) bool {
	return c.Denom == o.Denom
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Denom:  c.Denom,
		Amount: c.Amount,
	}
}

// Validate ensures that the coin is in the valid range
// and valid denomination. It accepts negative values,
// so you may want to make other checks in your business
// logic
func (c Coin) Validate() error {
	var err error
	if !IsDenom(c.Denom) {
		err = errors.AppendField(err, "Denom", errors.Wrapf(errors.ErrInvalidInput, "invalid denomination: %q", c.Denom))
	}
	if c.Amount < MinInt || c.Amount > MaxInt {
		err = errors.AppendField(err, "Amount", errors.ErrOverflow)
	}
	return err
}

// Marshal implements nftescrow.Persistent.
func (c *Coin) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(c)
}

// Unmarshal implements nftescrow.Persistent.
func (c *Coin) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, c)
}

// UnmarshalJSON accepts both the human readable "<amount> <denom>" string
// and the structured form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, we can no longer use
	// Coin type for this.
	var coin struct {
		Denom  string
		Amount int64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	c.Denom = coin.Denom
	c.Amount = coin.Amount
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back using ParseHumanFormat.
func (c Coin) String() string {
	if c.Denom == "" {
		return strconv.FormatInt(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Denom)
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?\d+)\s*([A-Z]{3,4})$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> <denom>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid amount: %s", err)
	}
	return Coin{Denom: m[2], Amount: amount}, nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
