package domain

import (
	"fmt"

	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

// Amount is a balance in the smallest unit of a currency (10^-24 of a whole token).
type Amount = uint128.Uint128

// Fixed supply figures. uint128 values cannot be constants.
var (
	// OneToken is one whole token (or native coin) in the smallest unit
	OneToken = uint128.From64(1_000_000_000_000).Mul64(1_000_000_000_000)

	// TotalSupply is the full secondary token supply
	TotalSupply = Tokens(777_777_777)

	// LPSupply is the part of the supply minted to the liquidity account
	LPSupply = Tokens(327_736_777)

	// RewardPoolSupply is the part of the supply minted to the reserve for box rewards
	RewardPoolSupply = TotalSupply.Sub(LPSupply)

	// DefaultBoxPrice is 0.075 native coin
	DefaultBoxPrice = OneToken.Mul64(75).Div64(1000)
)

// ZeroAmount returns the zero amount.
func ZeroAmount() Amount {
	return uint128.Zero
}

// OneUnit returns the smallest positive amount.
func OneUnit() Amount {
	return uint128.From64(1)
}

// Tokens returns n whole tokens in the smallest unit.
func Tokens(n uint64) Amount {
	return OneToken.Mul64(n)
}

// ParseAmount parses a decimal string in the smallest unit.
func ParseAmount(s string) (Amount, error) {
	if !isDigits(s) {
		return uint128.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	a, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return a, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// SafeAdd adds two amounts, returning ErrAmountOverflow instead of panicking.
func SafeAdd(a, b Amount) (Amount, error) {
	if b.Cmp(uint128.Max.Sub(a)) > 0 {
		return uint128.Zero, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, a, b)
	}
	return a.Add(b), nil
}

// SafeSub subtracts b from a, returning ErrInsufficientBalance when b > a.
func SafeSub(a, b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return uint128.Zero, fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, a, b)
	}
	return a.Sub(b), nil
}

// ToWholeTokens converts an amount in the smallest unit into whole tokens.
// The result is for display and metrics only.
func ToWholeTokens(a Amount) decimal.Decimal {
	d, err := decimal.NewFromString(a.String())
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-TokenDecimals)
}

// FormatTokens renders an amount as whole tokens, e.g. "0.075".
func FormatTokens(a Amount) string {
	return ToWholeTokens(a).String()
}
