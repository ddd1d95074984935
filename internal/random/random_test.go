package random

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_InRange(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		max  uint32
		want uint32
	}{
		{"zero byte", 0, 900, 0},
		{"max byte premium range", 255, 900, 897},
		{"max byte common range", 255, 9000, 8965},
		{"mid byte", 128, 255, 128},
		{"max zero", 200, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := Seed{tt.b}
			assert.Equal(t, tt.want, seed.InRange(0, tt.max))
		})
	}
}

func TestSeed_InRangeNeverExceedsMax(t *testing.T) {
	for b := 0; b < 256; b++ {
		seed := Seed{byte(b)}
		for _, max := range []uint32{0, 1, 7, 900, 9000, 49999} {
			assert.LessOrEqual(t, seed.InRange(0, max), max)
		}
	}
}

func TestSeed_DrawByteOffsets(t *testing.T) {
	seed := Seed{10, 20, 30}
	assert.Equal(t, byte(10), seed.DrawByte(OffsetTokenAmount))
	assert.Equal(t, byte(20), seed.DrawByte(OffsetTier))
	assert.Equal(t, byte(10), seed.DrawByte(3))
	assert.Equal(t, byte(0), Seed(nil).DrawByte(1))
}

func TestFixedSource(t *testing.T) {
	src := NewFixedSource(7, 9)
	seed, err := src.Seed(context.Background(), "alice.near")
	require.NoError(t, err)
	assert.Len(t, seed, SeedLength)
	assert.Equal(t, byte(7), seed.DrawByte(0))
	assert.Equal(t, byte(9), seed.DrawByte(1))

	seed[0] = 99
	again, _ := src.Seed(context.Background(), "alice.near")
	assert.Equal(t, byte(7), again.DrawByte(0))
}

func TestKeccakSource_DistinctSeeds(t *testing.T) {
	src := NewKeccakSource("salt")
	a, err := src.Seed(context.Background(), "alice.near")
	require.NoError(t, err)
	b, err := src.Seed(context.Background(), "alice.near")
	require.NoError(t, err)

	assert.Len(t, a, SeedLength)
	assert.NotEqual(t, a, b)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(SourceKeccak, "x")
	require.NoError(t, err)
	assert.IsType(t, &KeccakSource{}, src)

	src, err = NewSource("", "")
	require.NoError(t, err)
	assert.IsType(t, &CryptoSource{}, src)

	_, err = NewSource("dice", "")
	assert.Error(t, err)
}
