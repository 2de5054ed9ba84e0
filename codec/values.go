package codec

import (
	"strings"
)

// Variant is the decoded form of a union value. Value is nil for variants
// without payload.
type Variant struct {
	Value any
	Name  string
	Index uint8
}

// MapEntry is one key/value pair of a decoded map. Maps decode to
// []MapEntry so encounter order survives a round trip.
type MapEntry struct {
	Key   any
	Value any
}

// BitVec is a decoded bit sequence, most significant bit first.
type BitVec []bool

// String renders the bits as a 0b literal.
func (v BitVec) String() string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteString("0b")
	for _, bit := range v {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// AddressFormatter converts account public keys to and from their textual
// address form.
type AddressFormatter interface {
	FormatAddress(pub []byte) (string, error)
	ParseAddress(s string) ([]byte, error)
}
