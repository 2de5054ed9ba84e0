package buffer

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/scale-codec/errors"
)

// Buffer is a read cursor over an immutable byte sequence.
// The offset only moves forward and never exceeds the data length.
type Buffer struct {
	data   []byte
	offset int
}

// New creates a Buffer over data. The slice is not copied.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// FromHex creates a Buffer from a "0x"-prefixed hex string.
func FromHex(s string) (*Buffer, error) {
	data, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// DecodeHex parses the canonical "0x" text form.
func DecodeHex(s string) ([]byte, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.ParseFailed("hex string", err)
	}
	return data, nil
}

// EncodeHex returns the canonical "0x" text form of data.
func EncodeHex(data []byte) string {
	return hexutil.Encode(data)
}

// Take returns the next n bytes and advances the offset.
// The offset is left untouched on underflow.
func (b *Buffer) Take(n int) ([]byte, error) {
	if n < 0 || n > len(b.data)-b.offset {
		return nil, errors.BufferUnderflow(nil, n, b.Remaining())
	}
	out := b.data[b.offset : b.offset+n]
	b.offset += n
	return out, nil
}

// ReadByte reads a single byte and advances the offset.
func (b *Buffer) ReadByte() (byte, error) {
	if b.offset >= len(b.data) {
		return 0, errors.BufferUnderflow(nil, 1, 0)
	}
	c := b.data[b.offset]
	b.offset++
	return c, nil
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.offset
}

// Offset returns the current read position.
func (b *Buffer) Offset() int {
	return b.offset
}

// Len returns the total length of the underlying data.
func (b *Buffer) Len() int {
	return len(b.data)
}

// PeekAll returns the unread bytes without consuming them.
func (b *Buffer) PeekAll() []byte {
	return b.data[b.offset:]
}

// Data returns the whole underlying byte sequence.
func (b *Buffer) Data() []byte {
	return b.data
}

// Consumed returns the bytes read so far.
func (b *Buffer) Consumed() []byte {
	return b.data[:b.offset]
}

// Reset rewinds the cursor to the start.
func (b *Buffer) Reset() {
	b.offset = 0
}

// String returns the hex form of the whole buffer.
func (b *Buffer) String() string {
	return EncodeHex(b.data)
}
