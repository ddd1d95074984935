package random

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/sha3"
)

// SeedLength is the number of random bytes available to a single call.
const SeedLength = 32

// Fixed draw offsets. The two draws of one open read different bytes of the same seed.
const (
	OffsetTokenAmount = 0
	OffsetTier        = 1
)

// Seed is the random byte sequence of one call. It is stable for the whole call.
type Seed []byte

// DrawByte returns the byte at offset. Offsets wrap around the seed length.
func (s Seed) DrawByte(offset int) byte {
	if len(s) == 0 {
		return 0
	}
	return s[offset%len(s)]
}

// InRange maps the byte at offset onto [0, max] as floor(byte * (max+1) / 256).
func (s Seed) InRange(offset int, max uint32) uint32 {
	return uint32(uint64(s.DrawByte(offset)) * (uint64(max) + 1) / 256)
}

// Source produces one Seed per call.
type Source interface {
	Seed(ctx context.Context, account string) (Seed, error)
}

// CryptoSource reads seeds from crypto/rand.
type CryptoSource struct {
	reader io.Reader
}

// NewCryptoSource creates a source backed by the OS CSPRNG.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{reader: crand.Reader}
}

// Seed returns SeedLength fresh random bytes.
func (c *CryptoSource) Seed(_ context.Context, _ string) (Seed, error) {
	buf := make([]byte, SeedLength)
	if _, err := io.ReadFull(c.reader, buf); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadEntropy, err)
	}
	return Seed(buf), nil
}

// KeccakSource derives seeds as keccak256(salt || account || unix nanos || counter),
// mirroring how chain runtimes mix call context into a per-call seed.
type KeccakSource struct {
	salt    []byte
	counter atomic.Uint64
	now     func() time.Time
}

// NewKeccakSource creates a keccak-derived source. The salt should be secret.
func NewKeccakSource(salt string) *KeccakSource {
	return &KeccakSource{salt: []byte(salt), now: time.Now}
}

// Seed hashes the call context into a 32 byte seed.
func (k *KeccakSource) Seed(_ context.Context, account string) (Seed, error) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(k.now().UnixNano()))
	binary.BigEndian.PutUint64(buf[8:], k.counter.Add(1))

	h := sha3.NewLegacyKeccak256()
	h.Write(k.salt)
	h.Write([]byte(account))
	h.Write(buf[:])
	return Seed(h.Sum(nil)), nil
}

// FixedSource always returns the same seed. Used by tests and replay tooling.
type FixedSource struct {
	seed Seed
}

// NewFixedSource creates a source that returns a copy of b padded to SeedLength.
func NewFixedSource(b ...byte) *FixedSource {
	seed := make(Seed, SeedLength)
	copy(seed, b)
	return &FixedSource{seed: seed}
}

// Seed returns the fixed seed.
func (f *FixedSource) Seed(_ context.Context, _ string) (Seed, error) {
	out := make(Seed, len(f.seed))
	copy(out, f.seed)
	return out, nil
}

// NewSource picks a source by name ("crypto" or "keccak").
func NewSource(kind, salt string) (Source, error) {
	switch kind {
	case SourceCrypto, "":
		return NewCryptoSource(), nil
	case SourceKeccak:
		return NewKeccakSource(salt), nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownSource, kind)
	}
}
