// Package codec encodes and decodes SCALE values against type definitions.
//
// The engine dispatches on types.Kind and accepts a small, fixed set of Go
// input shapes per kind. Decoding always produces the canonical shape:
//
//	Kind            Decoded as
//	──────────────────────────────────────────
//	bool            bool
//	u8..u64         uint8..uint64
//	u128/u256       *uint256.Int
//	i8..i64         int8..int64
//	i128/i256       *big.Int
//	f32/f64         float32/float64 (bit exact)
//	char            rune
//	str             string
//	Compact<T>      shape of T
//	[u8; N], Vec<u8> []byte (or an address string for account types)
//	array, vec      []any
//	tuple           []any
//	struct          map[string]any
//	union           Variant
//	map             []MapEntry (encounter order)
//	BitVec          BitVec
//	Option<T>       nil or shape of T
//
// Top-level Decode is strict: input left over after the value is an
// ErrRemainingBytes error. DecodePartial returns the remainder instead.
//
//	td := types.Array(types.Primitive(types.KindU32), 3)
//	data, _ := codec.Encode(td, []any{1, 2, 3})
//	v, _ := codec.Decode(td, data) // []any{uint32(1), uint32(2), uint32(3)}
//
// A Codec configured WithAddressFormatter renders account ids as textual
// addresses and accepts them back on encode.
package codec
