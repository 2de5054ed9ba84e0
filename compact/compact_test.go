package compact_test

import (
	"bytes"
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/ChainSafe/gossamer/pkg/scale"
	"github.com/holiman/uint256"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
)

func TestCompactBoundaries(t *testing.T) {
	tests := []struct {
		encoded []byte
		value   uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x04}, 1},
		{[]byte{0xfc}, 63},
		{[]byte{0x01, 0x01}, 64},
		{[]byte{0xfd, 0xff}, 16383},
		{[]byte{0x02, 0x00, 0x01, 0x00}, 16384},
		{[]byte{0xfe, 0xff, 0xff, 0xff}, 1<<30 - 1},
		{[]byte{0x03, 0x00, 0x00, 0x00, 0x40}, 1 << 30},
		{[]byte{0x02, 0x09, 0x3d, 0x00}, 1000000},
		{[]byte{0x13, 0x00, 0x80, 0xcd, 0x10, 0x3d, 0x71, 0xbc, 0x22}, 2503000000000000000},
		{[]byte{0x13, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 1<<64 - 1},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := compact.Bytes(tt.value)
			if !bytes.Equal(got, tt.encoded) {
				t.Errorf("encode %d: got %x, want %x", tt.value, got, tt.encoded)
			}
			if compact.Size(tt.value) != len(tt.encoded) {
				t.Errorf("Size(%d) = %d, want %d", tt.value, compact.Size(tt.value), len(tt.encoded))
			}

			b := buffer.New(tt.encoded)
			v, err := compact.DecodeU64(b)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if v != tt.value {
				t.Errorf("decode: got %d, want %d", v, tt.value)
			}
			if b.Remaining() != 0 {
				t.Errorf("decode left %d bytes", b.Remaining())
			}
		})
	}
}

func TestCompactUint256(t *testing.T) {
	max128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	max256 := new(uint256.Int).SetAllOne()

	for _, v := range []*uint256.Int{uint256.NewInt(0), uint256.NewInt(1 << 40), max128, max256} {
		w := buffer.NewWriter()
		compact.EncodeUint256(w, v)

		got, err := compact.Decode(buffer.New(w.Bytes()))
		if err != nil {
			t.Fatalf("decode %s: %v", v.Dec(), err)
		}
		if !got.Eq(v) {
			t.Errorf("round trip: got %s, want %s", got.Dec(), v.Dec())
		}
	}

	w := buffer.NewWriter()
	compact.EncodeUint256(w, max128)
	if w.Len() != 17 || w.Bytes()[0] != (12<<2|0b11) {
		t.Errorf("u128 max encoding: %x", w.Bytes())
	}
}

func TestCompactTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x01}, {0x02, 0x00}, {0x03, 0x00, 0x00}} {
		_, err := compact.Decode(buffer.New(data))
		if !stderrors.Is(err, errors.ErrInvalidData) {
			t.Errorf("decode %x: err = %v, want invalid_data", data, err)
		}
		if !stderrors.Is(err, errors.ErrBufferUnderflow) {
			t.Errorf("decode %x: err should wrap underflow", data)
		}
	}
}

func TestCompactBodyTooLarge(t *testing.T) {
	data := append([]byte{0xff}, make([]byte, 67)...)
	if _, err := compact.Decode(buffer.New(data)); !stderrors.Is(err, errors.ErrInvalidData) {
		t.Errorf("err = %v", err)
	}
}

func TestDecodeU32Overflow(t *testing.T) {
	data := compact.Bytes(1 << 33)
	if _, err := compact.DecodeU32(buffer.New(data)); err == nil {
		t.Error("expected overflow error")
	}
}

func TestDecodeLenExceedsRemaining(t *testing.T) {
	data := append(compact.Bytes(100), 1, 2, 3)
	if _, err := compact.DecodeLen(buffer.New(data), 1); !stderrors.Is(err, errors.ErrBufferUnderflow) {
		t.Errorf("err = %v", err)
	}
	n, err := compact.DecodeLen(buffer.New(data), 0)
	if err != nil || n != 100 {
		t.Errorf("DecodeLen without item size = %d, %v", n, err)
	}
}

// Cross-checks the encoder against an independent SCALE implementation.
func TestCompactMatchesGossamer(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 255, 16383, 16384, 1<<30 - 1, 1 << 30, 1 << 32, 1<<48 + 7, 1<<64 - 1}
	for _, v := range values {
		want, err := scale.Marshal(new(big.Int).SetUint64(v))
		if err != nil {
			t.Fatalf("gossamer marshal %d: %v", v, err)
		}
		if got := compact.Bytes(v); !bytes.Equal(got, want) {
			t.Errorf("%d: got %x, gossamer %x", v, got, want)
		}
	}
}
