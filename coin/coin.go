/*
Package coin implements integer coin arithmetic. A coin is an amount of the
smallest indivisible unit of a currency identified by its ticker. Division
always rounds down and reports the leftover so that no value is ever created.
*/
package coin

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bequest/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin can hold any amount of a given currency.
type Coin struct {
	// Ticker is the currency code, for example IOV or ETH.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Amount is the number of the smallest units of the currency.
	Amount int64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

var _ proto.Message = (*Coin)(nil)

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Divide splits the value of a coin into given amount of pieces and returns a
// single piece. Any leftover that cannot be divided is returned as well.
// For example dividing 5000 into 3 pieces results in a piece of 1666 and a
// leftover of 2.
//   5000 = 1666 x 3 + 2
func (c Coin) Divide(pieces int64) (Coin, Coin, error) {
	// This is an invalid use of the method.
	if pieces <= 0 {
		zero := Coin{Ticker: c.Ticker}
		return zero, zero, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}
	one := Coin{Ticker: c.Ticker, Amount: c.Amount / pieces}
	rest := Coin{Ticker: c.Ticker, Amount: c.Amount % pieces}
	return one, rest, nil
}

// PercentOf returns floor(amount * percent / 100). The computation never
// multiplies the full amount so it cannot overflow.
func (c Coin) PercentOf(percent int64) (Coin, error) {
	if percent < 0 || percent > 100 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "percent %d out of range", percent)
	}
	if c.Amount < 0 {
		return Coin{}, errors.Wrap(errors.ErrAmount, "negative amount")
	}
	amount := c.Amount/100*percent + (c.Amount%100)*percent/100
	return Coin{Ticker: c.Ticker, Amount: amount}, nil
}

// Multiply returns the result of a coin value multiplication. This method can
// fail if the result would overflow maximum coin value.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Amount == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	res := c.Amount * times
	if res/times != c.Amount {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "multiply")
	}
	return Coin{Ticker: c.Ticker, Amount: res}, nil
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}

	if !c.SameType(o) {
		err := errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
		return Coin{}, err
	}

	if (o.Amount > 0 && c.Amount > math.MaxInt64-o.Amount) ||
		(o.Amount < 0 && c.Amount < math.MinInt64-o.Amount) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "adding %s to %s", o, c)
	}
	c.Amount += o.Amount
	return c, nil
}

// Negative returns the opposite coins value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -1 * c.Amount,
	}
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	if amount.Amount == math.MinInt64 {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "subtract")
	}
	return c.Add(amount.Negative())
}

// Compare will check values of two coins, without
// inspecting the currency code. It is up to the caller
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
	return c.Ticker == o.Ticker && c.Amount == o.Amount
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

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures that the coin has a valid currency code. It accepts
// negative values, so you may want to make other checks in your business
// logic
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// UnmarshalJSON accepts both the human readable "<amount> <ticker>" string
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

	// Fallback into the default unmarhaling. Because UnmarshalJSON method
	// is provided, we can no longer use Coin type for this.
	var coin struct {
		Ticker string
		Amount int64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back by ParseHumanFormat.
func (c Coin) String() string {
	s := strconv.FormatInt(c.Amount, 10)
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	var c Coin
	results := humanCoinFormatRx.FindStringSubmatch(h)
	if len(results) != 4 {
		return c, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}

	amount, err := strconv.ParseInt(results[2], 10, 64)
	if err != nil {
		return c, errors.Wrapf(errors.ErrInput, "invalid amount: %s", err)
	}
	if results[1] == "-" {
		amount = -amount
	}
	return Coin{Ticker: results[3], Amount: amount}, nil
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)\s*([A-Z]{3,4})$`)

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

// Type is part of the pflag.Value interface.
func (c *Coin) Type() string {
	return "coin"
}
