package storage

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/scale-codec/errors"
)

// Hasher is a storage key hashing algorithm, in metadata order.
type Hasher uint8

const (
	Blake2_128 Hasher = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

var hasherNames = [...]string{
	Blake2_128:       "Blake2_128",
	Blake2_256:       "Blake2_256",
	Blake2_128Concat: "Blake2_128Concat",
	Twox128:          "Twox128",
	Twox256:          "Twox256",
	Twox64Concat:     "Twox64Concat",
	Identity:         "Identity",
}

func (h Hasher) String() string {
	if int(h) < len(hasherNames) {
		return hasherNames[h]
	}
	return "unknown"
}

// ParseHasher returns the hasher with the metadata name s.
func ParseHasher(s string) (Hasher, error) {
	for i, n := range hasherNames {
		if n == s {
			return Hasher(i), nil
		}
	}
	return 0, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
		Value(s).
		Detail("unknown storage hasher %q", s).
		Build()
}

// Concat reports whether the hash is followed by the raw key, which makes
// the key recoverable from storage.
func (h Hasher) Concat() bool {
	return h == Blake2_128Concat || h == Twox64Concat || h == Identity
}

// Hash applies h to data.
func (h Hasher) Hash(data []byte) []byte {
	switch h {
	case Blake2_128:
		return blake2b128(data)
	case Blake2_256:
		sum := blake2b.Sum256(data)
		return sum[:]
	case Blake2_128Concat:
		return append(blake2b128(data), data...)
	case Twox128:
		return Twox(data, 16)
	case Twox256:
		return Twox(data, 32)
	case Twox64Concat:
		return append(Twox(data, 8), data...)
	}
	return append([]byte{}, data...)
}

// Twox returns size bytes of chained xxhash64: one 8 byte little-endian
// word per seed 0, 1, 2...
func Twox(data []byte, size int) []byte {
	out := make([]byte, 0, size)
	for seed := uint64(0); len(out) < size; seed++ {
		d := xxhash.NewWithSeed(seed)
		_, _ = d.Write(data)
		out = binary.LittleEndian.AppendUint64(out, d.Sum64())
	}
	return out[:size]
}

func blake2b128(data []byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return h.Sum(nil)
}
