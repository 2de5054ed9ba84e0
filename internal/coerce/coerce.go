package coerce

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
)

// ToUint64 handles every Go integer kind, integral floats, decimal or 0x
// strings and big integers that fit in 64 bits.
func ToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		// 2^64 is exactly representable; anything at or above it overflows
		if v >= 0 && v < math.MaxUint64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < math.MaxUint64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	default:
		if b, ok := ToBig(value); ok && b.Sign() >= 0 && b.IsUint64() {
			return b.Uint64(), true
		}
	}
	return 0, false
}

// ToInt64 is the signed counterpart of ToUint64.
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	default:
		if b, ok := ToBig(value); ok && b.IsInt64() {
			return b.Int64(), true
		}
	}
	return 0, false
}

// ToBig converts any accepted integer input to a new *big.Int.
func ToBig(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case big.Int:
		return new(big.Int).Set(&v), true
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return v.ToBig(), true
	case uint256.Int:
		return v.ToBig(), true
	case string:
		return parseInt(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return nil, false
		}
		b, _ := new(big.Float).SetFloat64(v).Int(nil)
		return b, true
	case float32:
		return ToBig(float64(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

// ToUint256 converts an accepted non-negative integer input of at most 256 bits.
func ToUint256(value any) (*uint256.Int, bool) {
	switch v := value.(type) {
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return new(uint256.Int).Set(v), true
	case uint256.Int:
		return new(uint256.Int).Set(&v), true
	}
	if u, ok := ToUint64(value); ok {
		return uint256.NewInt(u), true
	}
	b, ok := ToBig(value)
	if !ok || b.Sign() < 0 {
		return nil, false
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, false
	}
	return u, true
}

// FitsUnsigned reports whether b is representable in bits unsigned bits.
func FitsUnsigned(b *big.Int, bits int) bool {
	return b.Sign() >= 0 && b.BitLen() <= bits
}

// FitsSigned reports whether b is representable in bits two's complement bits.
func FitsSigned(b *big.Int, bits int) bool {
	if b.Sign() >= 0 {
		return b.BitLen() < bits
	}
	// -2^(bits-1) is the only negative value whose magnitude needs bits bits
	m := new(big.Int).Neg(b)
	m.Sub(m, big.NewInt(1))
	return m.BitLen() < bits
}

// parseInt accepts decimal, 0x-prefixed hex and "_" digit separators.
func parseInt(s string) (*big.Int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return nil, false
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	if neg {
		b.Neg(b)
	}
	return b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
