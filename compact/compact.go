package compact

import (
	"encoding/binary"
	"math"

	"github.com/holiman/uint256"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/errors"
)

// Mode boundaries. Values below each bound use the corresponding mode.
const (
	SingleByteMax = 1<<6 - 1
	TwoByteMax    = 1<<14 - 1
	FourByteMax   = 1<<30 - 1
)

// MaxBodyLen is the largest big-integer body accepted on decode (u256).
const MaxBodyLen = 32

const (
	modeSingle = 0b00
	modeTwo    = 0b01
	modeFour   = 0b10
	modeBig    = 0b11
)

// Encode writes v in its shortest compact form.
func Encode(w *buffer.Writer, v uint64) {
	switch {
	case v <= SingleByteMax:
		w.Byte(byte(v<<2) | modeSingle)
	case v <= TwoByteMax:
		w.WriteU16(uint16(v<<2) | modeTwo)
	case v <= FourByteMax:
		w.WriteU32(uint32(v<<2) | modeFour)
	default:
		var body [8]byte
		binary.LittleEndian.PutUint64(body[:], v)
		n := 8
		for n > 4 && body[n-1] == 0 {
			n--
		}
		w.Byte(byte(n-4)<<2 | modeBig)
		w.Write(body[:n])
	}
}

// EncodeUint256 writes v in its shortest compact form.
func EncodeUint256(w *buffer.Writer, v *uint256.Int) {
	if v.IsUint64() {
		Encode(w, v.Uint64())
		return
	}
	be := v.Bytes32()
	n := (v.BitLen() + 7) / 8
	body := make([]byte, n)
	for i := 0; i < n; i++ {
		body[i] = be[31-i]
	}
	w.Byte(byte(n-4)<<2 | modeBig)
	w.Write(body)
}

// Bytes returns the compact encoding of v.
func Bytes(v uint64) []byte {
	w := buffer.NewWriter()
	Encode(w, v)
	return w.Bytes()
}

// Size returns the encoded length of v.
func Size(v uint64) int {
	switch {
	case v <= SingleByteMax:
		return 1
	case v <= TwoByteMax:
		return 2
	case v <= FourByteMax:
		return 4
	}
	n := 8
	for n > 4 && v>>(8*(n-1)) == 0 {
		n--
	}
	return 1 + n
}

// Decode reads a compact integer of arbitrary width up to u256.
func Decode(b *buffer.Buffer) (*uint256.Int, error) {
	first, err := b.ReadByte()
	if err != nil {
		return nil, truncated(err)
	}

	switch first & 0b11 {
	case modeSingle:
		return uint256.NewInt(uint64(first >> 2)), nil
	case modeTwo:
		rest, err := b.Take(1)
		if err != nil {
			return nil, truncated(err)
		}
		v := uint16(first) | uint16(rest[0])<<8
		return uint256.NewInt(uint64(v >> 2)), nil
	case modeFour:
		rest, err := b.Take(3)
		if err != nil {
			return nil, truncated(err)
		}
		v := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
		return uint256.NewInt(uint64(v >> 2)), nil
	default:
		n := int(first>>2) + 4
		if n > MaxBodyLen {
			return nil, errors.InvalidData(errors.PhaseDecode, nil, "compact integer body exceeds 32 bytes")
		}
		body, err := b.Take(n)
		if err != nil {
			return nil, truncated(err)
		}
		be := make([]byte, n)
		for i := 0; i < n; i++ {
			be[n-1-i] = body[i]
		}
		return new(uint256.Int).SetBytes(be), nil
	}
}

// DecodeU64 reads a compact integer that must fit in 64 bits.
func DecodeU64(b *buffer.Buffer) (uint64, error) {
	v, err := Decode(b)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, errors.Overflow(errors.PhaseDecode, nil, v.Dec(), "u64")
	}
	return v.Uint64(), nil
}

// DecodeU32 reads a compact integer that must fit in 32 bits.
func DecodeU32(b *buffer.Buffer) (uint32, error) {
	v, err := DecodeU64(b)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, errors.Overflow(errors.PhaseDecode, nil, v, "u32")
	}
	return uint32(v), nil
}

// DecodeLen reads a Compact<u32> length prefix and checks it against
// the bytes left in b, assuming each item occupies at least minItemSize bytes.
func DecodeLen(b *buffer.Buffer, minItemSize int) (int, error) {
	n, err := DecodeU32(b)
	if err != nil {
		return 0, err
	}
	if minItemSize > 0 && uint64(n)*uint64(minItemSize) > uint64(b.Remaining()) {
		return 0, errors.New(errors.PhaseDecode, errors.KindBufferUnderflow).
			Detail("length prefix %d exceeds remaining %d bytes", n, b.Remaining()).
			Value(n).
			Build()
	}
	return int(n), nil
}

func truncated(cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Detail("truncated compact integer").
		Cause(cause).
		Build()
}
