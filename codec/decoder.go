package codec

import (
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/holiman/uint256"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/types"
)

type decoder struct {
	c *Codec
	b *buffer.Buffer
}

func (d *decoder) decode(td *types.TypeDef, path []string, depth int) (any, error) {
	if td == nil {
		return nil, errors.InvalidData(errors.PhaseDecode, path, "nil type definition")
	}
	if depth > d.c.maxDepth {
		return nil, depthExceeded(errors.PhaseDecode, path, d.c.maxDepth)
	}

	switch td.Kind {
	case types.KindBool:
		v, err := d.b.ReadByte()
		if err != nil {
			return nil, atPath(err, path)
		}
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			ScaleType("bool").
			Value(v).
			Detail("bool byte must be 0 or 1, got 0x%02x", v).
			Build()

	case types.KindU8, types.KindU16, types.KindU32, types.KindU64,
		types.KindI8, types.KindI16, types.KindI32, types.KindI64:
		raw, err := d.b.Take(td.Kind.Width())
		if err != nil {
			return nil, atPath(err, path)
		}
		return fixedInt(td.Kind, readUint(raw)), nil

	case types.KindU128, types.KindU256:
		raw, err := d.b.Take(td.Kind.Width())
		if err != nil {
			return nil, atPath(err, path)
		}
		return new(uint256.Int).SetBytes(reversed(raw)), nil

	case types.KindI128, types.KindI256:
		raw, err := d.b.Take(td.Kind.Width())
		if err != nil {
			return nil, atPath(err, path)
		}
		v := new(big.Int).SetBytes(reversed(raw))
		bits := uint(len(raw) * 8)
		if v.Bit(int(bits)-1) == 1 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), bits))
		}
		return v, nil

	case types.KindF32:
		raw, err := d.b.Take(4)
		if err != nil {
			return nil, atPath(err, path)
		}
		return math.Float32frombits(uint32(readUint(raw))), nil

	case types.KindF64:
		raw, err := d.b.Take(8)
		if err != nil {
			return nil, atPath(err, path)
		}
		return math.Float64frombits(readUint(raw)), nil

	case types.KindChar:
		raw, err := d.b.Take(4)
		if err != nil {
			return nil, atPath(err, path)
		}
		r := rune(uint32(readUint(raw)))
		if !utf8.ValidRune(r) {
			return nil, errors.InvalidData(errors.PhaseDecode, path, "invalid unicode scalar value 0x"+strconv.FormatUint(readUint(raw), 16))
		}
		return r, nil

	case types.KindStr:
		n, err := compact.DecodeLen(d.b, 1)
		if err != nil {
			return nil, atPath(err, path)
		}
		raw, err := d.b.Take(n)
		if err != nil {
			return nil, atPath(err, path)
		}
		if !utf8.Valid(raw) {
			return nil, errors.InvalidData(errors.PhaseDecode, path, "string is not valid UTF-8")
		}
		return string(raw), nil

	case types.KindNull:
		return nil, nil

	case types.KindCompact:
		return d.decodeCompact(td, path)

	case types.KindArray, types.KindSequence:
		if td.IsByteSequence() {
			return d.decodeBytes(td, path)
		}
		return d.decodeList(td, path, depth)

	case types.KindTuple:
		out := make([]any, len(td.Elems))
		for i, elem := range td.Elems {
			v, err := d.decode(elem, childPath(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case types.KindStruct:
		out := make(map[string]any, len(td.Fields))
		for _, f := range td.Fields {
			v, err := d.decode(f.Type, childPath(path, f.Name), depth+1)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil

	case types.KindUnion:
		return d.decodeUnion(td, path, depth)

	case types.KindMap:
		return d.decodeMap(td, path, depth)

	case types.KindBitSequence:
		n, err := compact.DecodeU32(d.b)
		if err != nil {
			return nil, atPath(err, path)
		}
		raw, err := d.b.Take(int((uint64(n) + 7) / 8))
		if err != nil {
			return nil, atPath(err, path)
		}
		return unpackBits(raw, int(n)), nil

	case types.KindOption:
		return d.decodeOption(td, path, depth)

	case types.KindCustom:
		if td.Custom == nil {
			return nil, errors.InvalidData(errors.PhaseDecode, path, "custom type "+td.Name+" has no codec")
		}
		v, err := td.Custom.Decode(d.b)
		if err != nil {
			return nil, atPath(err, path)
		}
		return v, nil

	case types.KindPending:
		return nil, errors.InvalidData(errors.PhaseDecode, path, "unresolved type "+td.Name)
	}

	return nil, errors.Unsupported(errors.PhaseDecode, "type kind "+td.Kind.String())
}

func readUint(raw []byte) uint64 {
	var v uint64
	for i, c := range raw {
		v |= uint64(c) << (8 * i)
	}
	return v
}

func reversed(raw []byte) []byte {
	out := make([]byte, len(raw))
	for i, c := range raw {
		out[len(raw)-1-i] = c
	}
	return out
}

// fixedInt narrows a little-endian word to the Go type of k.
func fixedInt(k types.Kind, v uint64) any {
	switch k {
	case types.KindU8:
		return uint8(v)
	case types.KindU16:
		return uint16(v)
	case types.KindU32:
		return uint32(v)
	case types.KindI8:
		return int8(v)
	case types.KindI16:
		return int16(v)
	case types.KindI32:
		return int32(v)
	case types.KindI64:
		return int64(v)
	}
	return v
}

// compactShape converts a decoded compact value to the shape of its target kind.
func compactShape(k types.Kind, v *uint256.Int) any {
	if k == types.KindU128 || k == types.KindU256 {
		return v
	}
	return fixedInt(k, v.Uint64())
}

func (d *decoder) decodeCompact(td *types.TypeDef, path []string) (any, error) {
	inner, wrappers := compactTarget(td.Elem)
	var value any
	if inner.Kind != types.KindNull {
		if !inner.Kind.IsInteger() || inner.Kind.IsSigned() {
			return nil, errors.InvalidData(errors.PhaseDecode, path, "compact of non-integer type "+inner.String())
		}
		v, err := compact.Decode(d.b)
		if err != nil {
			return nil, atPath(err, path)
		}
		if v.BitLen() > inner.Kind.Width()*8 {
			return nil, errors.Overflow(errors.PhaseDecode, path, v.Dec(), inner.Kind.String())
		}
		value = compactShape(inner.Kind, v)
	}

	for i := len(wrappers) - 1; i >= 0; i-- {
		if w := wrappers[i]; w.Kind == types.KindStruct {
			value = map[string]any{w.Fields[0].Name: value}
		} else {
			value = []any{value}
		}
	}
	return value, nil
}

func (d *decoder) decodeBytes(td *types.TypeDef, path []string) (any, error) {
	n := td.Len
	if td.Kind == types.KindSequence {
		var err error
		if n, err = compact.DecodeLen(d.b, 1); err != nil {
			return nil, atPath(err, path)
		}
	}
	raw, err := d.b.Take(n)
	if err != nil {
		return nil, atPath(err, path)
	}
	out := make([]byte, n)
	copy(out, raw)

	if d.c.addresses != nil && d.c.isAccount(td) {
		s, err := d.c.addresses.FormatAddress(out)
		if err != nil {
			return nil, errors.New(errors.PhaseAddress, errors.KindInvalidData).
				Path(path...).
				Detail("format address").
				Cause(err).
				Build()
		}
		return s, nil
	}
	return out, nil
}

// maxZeroSizedItems caps lists whose elements take no input bytes, since
// the input cannot bound their length.
const maxZeroSizedItems = 1 << 16

// minSizeCap keeps size sums well inside int on every platform.
const minSizeCap = 1 << 30

const maxSizeDepth = 32

// minSize is a lower bound on the encoded size of td, used to reject
// lengths that cannot fit in the input. It is zero only for types that
// encode to no bytes at all.
func minSize(td *types.TypeDef) int {
	return minSizeAt(td, 0)
}

func minSizeAt(td *types.TypeDef, depth int) int {
	if td == nil || depth > maxSizeDepth {
		return 0
	}
	if w := td.Kind.Width(); w > 0 {
		return w
	}
	switch td.Kind {
	case types.KindNull, types.KindPending, types.KindCustom:
		return 0
	case types.KindCompact:
		if inner, _ := compactTarget(td.Elem); inner.Kind == types.KindNull {
			return 0
		}
		return 1
	case types.KindArray:
		if td.Len <= 0 {
			return 0
		}
		elem := minSizeAt(td.Elem, depth+1)
		if elem > 0 && td.Len > minSizeCap/elem {
			return minSizeCap
		}
		return td.Len * elem
	case types.KindTuple:
		total := 0
		for _, e := range td.Elems {
			total = min(total+minSizeAt(e, depth+1), minSizeCap)
		}
		return total
	case types.KindStruct:
		total := 0
		for _, f := range td.Fields {
			total = min(total+minSizeAt(f.Type, depth+1), minSizeCap)
		}
		return total
	}
	return 1
}

func (d *decoder) decodeList(td *types.TypeDef, path []string, depth int) (any, error) {
	elemSize := minSize(td.Elem)
	n := td.Len
	if td.Kind == types.KindSequence {
		var err error
		if n, err = compact.DecodeLen(d.b, elemSize); err != nil {
			return nil, atPath(err, path)
		}
	} else if n < 0 || (elemSize > 0 && n > d.b.Remaining()/elemSize) {
		return nil, errors.New(errors.PhaseDecode, errors.KindBufferUnderflow).
			Path(path...).
			ScaleType(td.String()).
			Detail("array of %d items needs at least %d bytes per item, %d remaining", n, elemSize, d.b.Remaining()).
			Build()
	}
	if elemSize == 0 && n > maxZeroSizedItems {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			ScaleType(td.String()).
			Value(n).
			Detail("%d zero sized items exceeds the limit of %d", n, maxZeroSizedItems).
			Build()
	}
	out := make([]any, n)
	for i := range out {
		v, err := d.decode(td.Elem, childPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *decoder) decodeUnion(td *types.TypeDef, path []string, depth int) (any, error) {
	idx, err := d.b.ReadByte()
	if err != nil {
		return nil, atPath(err, path)
	}
	variant, ok := td.VariantByIndex(idx)
	if !ok {
		return nil, errors.InvalidDiscriminant(errors.PhaseDecode, path, idx, len(td.Variants))
	}
	out := Variant{Name: variant.Name, Index: variant.Index}
	if variant.Type != nil {
		v, err := d.decode(variant.Type, childPath(path, variant.Name), depth+1)
		if err != nil {
			return nil, err
		}
		out.Value = v
	}
	return out, nil
}

func (d *decoder) decodeMap(td *types.TypeDef, path []string, depth int) (any, error) {
	entrySize := min(minSize(td.Key)+minSize(td.Value), minSizeCap)
	n, err := compact.DecodeLen(d.b, entrySize)
	if err != nil {
		return nil, atPath(err, path)
	}
	if entrySize == 0 && n > maxZeroSizedItems {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			ScaleType(td.String()).
			Value(n).
			Detail("%d zero sized entries exceeds the limit of %d", n, maxZeroSizedItems).
			Build()
	}
	out := make([]MapEntry, n)
	for i := range out {
		p := childPath(path, "["+strconv.Itoa(i)+"]")
		k, err := d.decode(td.Key, childPath(p, "key"), depth+1)
		if err != nil {
			return nil, err
		}
		v, err := d.decode(td.Value, childPath(p, "value"), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = MapEntry{Key: k, Value: v}
	}
	return out, nil
}

func (d *decoder) decodeOption(td *types.TypeDef, path []string, depth int) (any, error) {
	flag, err := d.b.ReadByte()
	if err != nil {
		return nil, atPath(err, path)
	}
	switch flag {
	case 0:
		return nil, nil
	case 1:
		return d.decode(td.Elem, path, depth+1)
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(path...).
		ScaleType(td.String()).
		Value(flag).
		Detail("invalid option flag 0x%02x", flag).
		Build()
}

// atPath attaches path to structured errors raised below the engine.
func atPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 && len(path) > 0 {
		c := *e
		c.Path = append([]string{}, path...)
		return &c
	}
	return err
}
