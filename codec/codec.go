package codec

import (
	"strings"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/types"
)

// DefaultMaxDepth bounds type nesting during a single encode or decode.
const DefaultMaxDepth = 256

// DefaultAccountTypes are the type names whose [u8; N] values go through the
// address formatter.
var DefaultAccountTypes = []string{"AccountId", "AccountId32", "AccountId20"}

// Codec encodes and decodes values against type definitions.
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	addresses    AddressFormatter
	accountTypes map[string]struct{}
	maxDepth     int
}

type Option func(*Codec)

// WithAddressFormatter enables textual addresses for account-shaped values.
func WithAddressFormatter(f AddressFormatter) Option {
	return func(c *Codec) {
		c.addresses = f
	}
}

// WithAccountTypes replaces the set of account type names.
func WithAccountTypes(names ...string) Option {
	return func(c *Codec) {
		c.accountTypes = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.accountTypes[n] = struct{}{}
		}
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{maxDepth: DefaultMaxDepth}
	WithAccountTypes(DefaultAccountTypes...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddressFormatter returns the configured formatter, or nil.
func (c *Codec) AddressFormatter() AddressFormatter {
	return c.addresses
}

// Encode returns the wire form of value.
func (c *Codec) Encode(td *types.TypeDef, value any) ([]byte, error) {
	w := buffer.NewWriter()
	if err := c.EncodeTo(w, td, value); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeTo appends the wire form of value to w. On error w may hold a
// partial encoding and should be discarded.
func (c *Codec) EncodeTo(w *buffer.Writer, td *types.TypeDef, value any) error {
	e := encoder{c: c, w: w}
	return e.encode(td, value, nil, 0)
}

// Decode decodes data as td and fails if any input is left over.
func (c *Codec) Decode(td *types.TypeDef, data []byte) (any, error) {
	b := buffer.New(data)
	v, err := c.DecodeFrom(b, td)
	if err != nil {
		return nil, err
	}
	if b.Remaining() > 0 {
		return nil, errors.RemainingBytes(b.Remaining(), b.PeekAll())
	}
	return v, nil
}

// DecodePartial decodes a prefix of data as td and returns the unread rest.
func (c *Codec) DecodePartial(td *types.TypeDef, data []byte) (any, []byte, error) {
	b := buffer.New(data)
	v, err := c.DecodeFrom(b, td)
	if err != nil {
		return nil, nil, err
	}
	return v, b.PeekAll(), nil
}

// DecodeFrom decodes one value of type td from b, leaving b positioned after it.
func (c *Codec) DecodeFrom(b *buffer.Buffer, td *types.TypeDef) (any, error) {
	d := decoder{c: c, b: b}
	return d.decode(td, nil, 0)
}

// isAccount reports whether td is a byte array named as an account type.
// Path-qualified names match on their last segment.
func (c *Codec) isAccount(td *types.TypeDef) bool {
	if td.Kind != types.KindArray || !td.IsByteSequence() || td.Name == "" {
		return false
	}
	name := td.Name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	_, ok := c.accountTypes[name]
	return ok
}

var std = New()

// Encode encodes with a codec that has no address formatter.
func Encode(td *types.TypeDef, value any) ([]byte, error) {
	return std.Encode(td, value)
}

func EncodeTo(w *buffer.Writer, td *types.TypeDef, value any) error {
	return std.EncodeTo(w, td, value)
}

func Decode(td *types.TypeDef, data []byte) (any, error) {
	return std.Decode(td, data)
}

func DecodePartial(td *types.TypeDef, data []byte) (any, []byte, error) {
	return std.DecodePartial(td, data)
}

func DecodeFrom(b *buffer.Buffer, td *types.TypeDef) (any, error) {
	return std.DecodeFrom(b, td)
}

func childPath(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}

func depthExceeded(phase errors.Phase, path []string, limit int) error {
	return errors.New(phase, errors.KindInvalidData).
		Path(path...).
		Detail("type nesting exceeds %d levels", limit).
		Build()
}
