package domain

import (
	"errors"
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyConstants(t *testing.T) {
	assert.Equal(t, "1000000000000000000000000", OneToken.String())
	assert.Equal(t, "75000000000000000000000", DefaultBoxPrice.String())
	assert.Equal(t, Tokens(450_041_000), RewardPoolSupply)
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1000")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1000), a)

	for _, bad := range []string{"", "-1", "1.5", "abc", "340282366920938463463374607431768211456"} {
		_, err := ParseAmount(bad)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "input %q", bad)
	}
}

func TestSafeAdd(t *testing.T) {
	sum, err := SafeAdd(Tokens(1), Tokens(2))
	require.NoError(t, err)
	assert.Equal(t, Tokens(3), sum)

	_, err = SafeAdd(uint128.Max, uint128.From64(1))
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestSafeSub(t *testing.T) {
	diff, err := SafeSub(Tokens(3), Tokens(1))
	require.NoError(t, err)
	assert.Equal(t, Tokens(2), diff)

	_, err = SafeSub(Tokens(1), Tokens(3))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "0.075", FormatTokens(DefaultBoxPrice))
	assert.Equal(t, "1000", FormatTokens(Tokens(1000)))
	assert.Equal(t, "0", FormatTokens(ZeroAmount()))
}
