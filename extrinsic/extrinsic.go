package extrinsic

import (
	"github.com/holiman/uint256"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/internal/coerce"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/types"
)

// DefaultVersion is the extrinsic format version used when neither the
// extrinsic nor the runtime names one.
const DefaultVersion = 4

const (
	signedBit   = 0x80
	versionMask = 0x7f
)

// Runtime supplies the types an extrinsic is built from. Decoded metadata
// implements it.
type Runtime interface {
	CallTypeDef() (*types.TypeDef, error)
	SignerTypeDefs() (address, signature *types.TypeDef, err error)
	ExtrinsicVersion() uint8
}

// Call names a runtime call by pallet and function.
type Call struct {
	Args     map[string]any
	Module   string
	Function string
}

// Variant returns the union form the call type encodes from.
func (c Call) Variant() codec.Variant {
	args := c.Args
	if args == nil {
		args = map[string]any{}
	}
	return codec.Variant{
		Name:  c.Module,
		Value: codec.Variant{Name: c.Function, Value: args},
	}
}

// CallOf splits a decoded call value into pallet, function and arguments.
func CallOf(v any) (Call, bool) {
	outer, ok := v.(codec.Variant)
	if !ok {
		return Call{}, false
	}
	inner, ok := outer.Value.(codec.Variant)
	if !ok {
		return Call{}, false
	}
	args, _ := inner.Value.(map[string]any)
	return Call{Module: outer.Name, Function: inner.Name, Args: args}, true
}

// Signature is the signing material of a signed extrinsic.
type Signature struct {
	Address   any
	Signature any
	Tip       *uint256.Int
	Era       Era
	Nonce     uint64
}

// Extrinsic is a call with optional signing material. Call holds a
// codec.Variant tree, a Call, or any input the call type accepts.
type Extrinsic struct {
	Signature *Signature
	Call      any
	Version   uint8
}

func (x *Extrinsic) IsSigned() bool {
	return x.Signature != nil
}

// Codec encodes and decodes length-prefixed extrinsics for one runtime.
type Codec struct {
	runtime Runtime
	codec   *codec.Codec
}

// New creates an extrinsic codec. A nil c uses a codec without an address
// formatter.
func New(rt Runtime, c *codec.Codec) *Codec {
	if c == nil {
		c = codec.New()
	}
	return &Codec{runtime: rt, codec: c}
}

// Encode returns the Compact length prefixed wire form of x.
func (c *Codec) Encode(x *Extrinsic) ([]byte, error) {
	w := buffer.NewWriter()
	if err := c.EncodeTo(w, x); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (c *Codec) EncodeTo(w *buffer.Writer, x *Extrinsic) error {
	body := buffer.NewWriter()
	if err := c.encodeBody(body, x); err != nil {
		return err
	}
	compact.Encode(w, uint64(body.Len()))
	w.Write(body.Bytes())
	return nil
}

func (c *Codec) version(x *Extrinsic) uint8 {
	if x.Version != 0 {
		return x.Version & versionMask
	}
	if v := c.runtime.ExtrinsicVersion(); v != 0 {
		return v
	}
	return DefaultVersion
}

func (c *Codec) encodeBody(w *buffer.Writer, x *Extrinsic) error {
	if x == nil {
		return errors.InvalidData(errors.PhaseEncode, []string{"extrinsic"}, "nil extrinsic")
	}
	version := c.version(x)
	if x.IsSigned() {
		version |= signedBit
	}
	w.Byte(version)

	if sig := x.Signature; sig != nil {
		addressTD, signatureTD, err := c.runtime.SignerTypeDefs()
		if err != nil {
			return err
		}
		if err := c.codec.EncodeTo(w, addressTD, sig.Address); err != nil {
			return err
		}
		if err := c.codec.EncodeTo(w, signatureTD, sig.Signature); err != nil {
			return err
		}
		if err := sig.Era.validate(); err != nil {
			return err
		}
		w.Write(sig.Era.Encode())
		compact.Encode(w, sig.Nonce)
		if sig.Tip == nil {
			compact.Encode(w, 0)
		} else {
			compact.EncodeUint256(w, sig.Tip)
		}
	}

	callTD, err := c.runtime.CallTypeDef()
	if err != nil {
		return err
	}
	return c.codec.EncodeTo(w, callTD, callInput(x.Call))
}

// Decode decodes one length-prefixed extrinsic and rejects trailing input.
func (c *Codec) Decode(data []byte) (*Extrinsic, error) {
	b := buffer.New(data)
	x, err := c.DecodeFrom(b)
	if err != nil {
		return nil, err
	}
	if b.Remaining() > 0 {
		return nil, errors.RemainingBytes(b.Remaining(), b.PeekAll())
	}
	return x, nil
}

// DecodeFrom decodes one length-prefixed extrinsic from b.
func (c *Codec) DecodeFrom(b *buffer.Buffer) (*Extrinsic, error) {
	n, err := compact.DecodeLen(b, 1)
	if err != nil {
		return nil, err
	}
	raw, err := b.Take(n)
	if err != nil {
		return nil, err
	}
	body := buffer.New(raw)

	head, err := body.ReadByte()
	if err != nil {
		return nil, err
	}
	x := &Extrinsic{Version: head & versionMask}

	if head&signedBit != 0 {
		sig, err := c.decodeSignature(body)
		if err != nil {
			return nil, err
		}
		x.Signature = sig
	}

	callTD, err := c.runtime.CallTypeDef()
	if err != nil {
		return nil, err
	}
	if x.Call, err = c.codec.DecodeFrom(body, callTD); err != nil {
		return nil, err
	}
	if body.Remaining() > 0 {
		return nil, errors.RemainingBytes(body.Remaining(), body.PeekAll())
	}
	return x, nil
}

func (c *Codec) decodeSignature(b *buffer.Buffer) (*Signature, error) {
	addressTD, signatureTD, err := c.runtime.SignerTypeDefs()
	if err != nil {
		return nil, err
	}
	sig := &Signature{}
	if sig.Address, err = c.codec.DecodeFrom(b, addressTD); err != nil {
		return nil, err
	}
	if sig.Signature, err = c.codec.DecodeFrom(b, signatureTD); err != nil {
		return nil, err
	}
	if sig.Era, err = DecodeEra(b); err != nil {
		return nil, err
	}
	if sig.Nonce, err = compact.DecodeU64(b); err != nil {
		return nil, err
	}
	if sig.Tip, err = compact.Decode(b); err != nil {
		return nil, err
	}
	return sig, nil
}

// TypeDef exposes the extrinsic as a custom type so it can nest inside
// other definitions. Encode accepts an Extrinsic, *Extrinsic or a map with
// call and optional signing fields; decode yields *Extrinsic.
func (c *Codec) TypeDef() *types.TypeDef {
	return types.NewCustom("Extrinsic", typeCodec{c})
}

// Register adds Era and Extrinsic to reg.
func (c *Codec) Register(reg *registry.Registry) error {
	if err := RegisterTypes(reg); err != nil {
		return err
	}
	td := c.TypeDef()
	if err := reg.RegisterType("Extrinsic", td); err != nil {
		return err
	}
	return reg.RegisterAlias("UncheckedExtrinsic", "Extrinsic")
}

// RegisterTypes adds the runtime independent extrinsic types to reg.
func RegisterTypes(reg *registry.Registry) error {
	if err := reg.RegisterType("Era", EraTypeDef()); err != nil {
		return err
	}
	return reg.RegisterAlias("ExtrinsicEra", "Era")
}

type typeCodec struct {
	c *Codec
}

func (t typeCodec) Encode(w *buffer.Writer, value any) error {
	x, err := extrinsicInput(value)
	if err != nil {
		return err
	}
	return t.c.EncodeTo(w, x)
}

func (t typeCodec) Decode(b *buffer.Buffer) (any, error) {
	return t.c.DecodeFrom(b)
}

func callInput(v any) any {
	switch call := v.(type) {
	case Call:
		return call.Variant()
	case *Call:
		return call.Variant()
	case map[string]any:
		if module, ok := call["call_module"].(string); ok {
			fn, _ := call["call_function"].(string)
			args, _ := call["call_args"].(map[string]any)
			return Call{Module: module, Function: fn, Args: args}.Variant()
		}
	}
	return v
}

func extrinsicInput(value any) (*Extrinsic, error) {
	switch v := value.(type) {
	case *Extrinsic:
		return v, nil
	case Extrinsic:
		return &v, nil
	case map[string]any:
		return extrinsicMap(v)
	}
	return nil, errors.TypeMismatch(errors.PhaseEncode, nil, coerce.TypeName(value), "Extrinsic")
}

// extrinsicMap reads the loose map form: call plus optional address (or
// account_id), signature, signature_version, era, nonce and tip.
func extrinsicMap(m map[string]any) (*Extrinsic, error) {
	call, ok := m["call"]
	if !ok {
		call = m
	}
	x := &Extrinsic{Call: call}
	if v, ok := coerce.ToUint64(m["version"]); ok {
		x.Version = uint8(v)
	}

	address, ok := m["address"]
	if !ok {
		address, ok = m["account_id"]
	}
	if !ok {
		return x, nil
	}

	sig := &Signature{Address: address, Signature: m["signature"]}
	if ver, ok := coerce.ToUint64(m["signature_version"]); ok {
		sig.Signature = codec.Variant{Index: uint8(ver), Value: m["signature"]}
	}
	era, err := eraInput(m["era"])
	if err != nil {
		return nil, err
	}
	sig.Era = era
	if n, ok := m["nonce"]; ok {
		if sig.Nonce, ok = coerce.ToUint64(n); !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, []string{"nonce"}, coerce.TypeName(n), "Compact<u64>")
		}
	}
	if t, ok := m["tip"]; ok {
		if sig.Tip, ok = coerce.ToUint256(t); !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, []string{"tip"}, coerce.TypeName(t), "Compact<u128>")
		}
	}
	x.Signature = sig
	return x, nil
}
