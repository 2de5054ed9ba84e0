// Package buffer provides the byte cursor consumed by every decode operation
// and the append-only writer used by encode.
//
// A Buffer never grows and never rewinds on failure: Take(n) either returns
// exactly n bytes or a buffer_underflow error with the offset unchanged.
// FromHex accepts the canonical "0x" text form; New wraps raw bytes. Both
// construct equivalent buffers.
package buffer
