// Package compact implements the SCALE Compact<T> variable-length unsigned
// integer encoding.
//
// The two low bits of the first byte select the mode:
//
//	0b00  single byte     v < 2^6   (v<<2)
//	0b01  two bytes LE    v < 2^14  (v<<2)|1
//	0b10  four bytes LE   v < 2^30  (v<<2)|2
//	0b11  big integer     upper six bits = body length - 4, then LE body
//
// Encode always picks the shortest mode. Decode accepts bodies up to 32
// bytes (u256); a truncated read is invalid_data wrapping the underflow.
package compact
