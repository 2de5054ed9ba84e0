package codec

import (
	"math/big"
	"strings"

	"github.com/wippyai/scale-codec/internal/coerce"
)

// bitInput normalises the accepted bit sequence inputs. Lists keep their
// length; 0b literals and integers use their minimal bit length.
func bitInput(value any) (BitVec, error) {
	switch v := value.(type) {
	case BitVec:
		return v, nil
	case []bool:
		return BitVec(v), nil
	case []any:
		bits := make(BitVec, len(v))
		for i, item := range v {
			b, ok := item.(bool)
			if !ok {
				return nil, shapeError("bit " + coerce.TypeName(item) + " is not a bool")
			}
			bits[i] = b
		}
		return bits, nil
	case string:
		if !strings.HasPrefix(v, "0b") {
			break
		}
		digits := strings.ReplaceAll(v[2:], "_", "")
		if digits == "" {
			return BitVec{}, nil
		}
		n, ok := new(big.Int).SetString(digits, 2)
		if !ok {
			return nil, shapeError("invalid binary literal " + v)
		}
		return bitsOf(n), nil
	}

	n, ok := coerce.ToBig(value)
	if !ok || n.Sign() < 0 {
		return nil, shapeError("bit sequence input must be a bool list, 0b literal or unsigned integer")
	}
	return bitsOf(n), nil
}

func bitsOf(n *big.Int) BitVec {
	size := n.BitLen()
	bits := make(BitVec, size)
	for i := range bits {
		bits[i] = n.Bit(size-1-i) == 1
	}
	return bits
}

// packBits stores the last list element in the lowest bit of the first byte.
func packBits(bits BitVec) []byte {
	n := len(bits)
	out := make([]byte, (n+7)/8)
	for i, bit := range bits {
		if bit {
			pos := n - 1 - i
			out[pos/8] |= 1 << (pos % 8)
		}
	}
	return out
}

// unpackBits reverses packBits. Pad bits past n are ignored.
func unpackBits(data []byte, n int) BitVec {
	bits := make(BitVec, n)
	for i := range bits {
		pos := n - 1 - i
		bits[i] = data[pos/8]>>(pos%8)&1 == 1
	}
	return bits
}
