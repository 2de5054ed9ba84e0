package codec

import (
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/internal/coerce"
	"github.com/wippyai/scale-codec/compact"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/types"
)

var typeName = coerce.TypeName

type encoder struct {
	c *Codec
	w *buffer.Writer
}

func (e *encoder) encode(td *types.TypeDef, value any, path []string, depth int) error {
	if td == nil {
		return errors.InvalidData(errors.PhaseEncode, path, "nil type definition")
	}
	if depth > e.c.maxDepth {
		return depthExceeded(errors.PhaseEncode, path, e.c.maxDepth)
	}

	switch td.Kind {
	case types.KindBool:
		v, ok := value.(bool)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "bool")
		}
		if v {
			e.w.Byte(1)
		} else {
			e.w.Byte(0)
		}
		return nil

	case types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		v, err := unsignedValue(value, td.Kind, path)
		if err != nil {
			return err
		}
		e.writeUint(v, td.Kind.Width())
		return nil

	case types.KindI8, types.KindI16, types.KindI32, types.KindI64:
		v, err := signedValue(value, td.Kind, path)
		if err != nil {
			return err
		}
		e.writeUint(uint64(v), td.Kind.Width())
		return nil

	case types.KindU128, types.KindU256:
		return e.encodeWideUnsigned(td.Kind, value, path)

	case types.KindI128, types.KindI256:
		return e.encodeWideSigned(td.Kind, value, path)

	case types.KindF32:
		f, ok := floatValue(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f32")
		}
		var f32 float32
		if v, isF32 := value.(float32); isF32 {
			f32 = v
		} else {
			f32 = float32(f)
		}
		e.w.WriteU32(math.Float32bits(f32))
		return nil

	case types.KindF64:
		f, ok := floatValue(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f64")
		}
		e.w.WriteU64(math.Float64bits(f))
		return nil

	case types.KindChar:
		return e.encodeChar(value, path)

	case types.KindStr:
		return e.encodeString(value, path)

	case types.KindNull:
		if value != nil {
			if rv := reflect.ValueOf(value); !(rv.Kind() == reflect.Struct && rv.NumField() == 0) {
				return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "()")
			}
		}
		return nil

	case types.KindCompact:
		return e.encodeCompact(td, value, path)

	case types.KindArray, types.KindSequence:
		if td.IsByteSequence() {
			return e.encodeBytes(td, value, path)
		}
		return e.encodeList(td, value, path, depth)

	case types.KindTuple:
		return e.encodeTuple(td, value, path, depth)

	case types.KindStruct:
		return e.encodeStruct(td, value, path, depth)

	case types.KindUnion:
		return e.encodeUnion(td, value, path, depth)

	case types.KindMap:
		return e.encodeMap(td, value, path, depth)

	case types.KindBitSequence:
		return e.encodeBits(value, path)

	case types.KindOption:
		return e.encodeOption(td, value, path, depth)

	case types.KindCustom:
		if td.Custom == nil {
			return errors.InvalidData(errors.PhaseEncode, path, "custom type "+td.Name+" has no codec")
		}
		return td.Custom.Encode(e.w, value)

	case types.KindPending:
		return errors.InvalidData(errors.PhaseEncode, path, "unresolved type "+td.Name)
	}

	return errors.Unsupported(errors.PhaseEncode, "type kind "+td.Kind.String())
}

func (e *encoder) writeUint(v uint64, width int) {
	for i := 0; i < width; i++ {
		e.w.Byte(byte(v >> (8 * i)))
	}
}

// writeLE writes the low width bytes of a big-endian 32-byte word in
// little-endian order.
func (e *encoder) writeLE(word [32]byte, width int) {
	for i := 0; i < width; i++ {
		e.w.Byte(word[31-i])
	}
}

func unsignedValue(value any, k types.Kind, path []string) (uint64, error) {
	v, ok := coerce.ToUint64(value)
	if !ok {
		if _, isNum := coerce.ToBig(value); isNum {
			return 0, errors.Overflow(errors.PhaseEncode, path, value, k.String())
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), k.String())
	}
	bits := k.Width() * 8
	if bits < 64 && v >= 1<<bits {
		return 0, errors.Overflow(errors.PhaseEncode, path, value, k.String())
	}
	return v, nil
}

func signedValue(value any, k types.Kind, path []string) (int64, error) {
	v, ok := coerce.ToInt64(value)
	if !ok {
		if _, isNum := coerce.ToBig(value); isNum {
			return 0, errors.Overflow(errors.PhaseEncode, path, value, k.String())
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), k.String())
	}
	bits := k.Width() * 8
	if bits < 64 {
		lo, hi := -int64(1)<<(bits-1), int64(1)<<(bits-1)-1
		if v < lo || v > hi {
			return 0, errors.Overflow(errors.PhaseEncode, path, value, k.String())
		}
	}
	return v, nil
}

func (e *encoder) encodeWideUnsigned(k types.Kind, value any, path []string) error {
	v, ok := coerce.ToUint256(value)
	if !ok {
		if _, isNum := coerce.ToBig(value); isNum {
			return errors.Overflow(errors.PhaseEncode, path, value, k.String())
		}
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), k.String())
	}
	width := k.Width()
	if v.BitLen() > width*8 {
		return errors.Overflow(errors.PhaseEncode, path, value, k.String())
	}
	e.writeLE(v.Bytes32(), width)
	return nil
}

func (e *encoder) encodeWideSigned(k types.Kind, value any, path []string) error {
	v, ok := coerce.ToBig(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), k.String())
	}
	width := k.Width()
	if !coerce.FitsSigned(v, width*8) {
		return errors.Overflow(errors.PhaseEncode, path, value, k.String())
	}
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), uint(width*8)))
	}
	var word [32]byte
	v.FillBytes(word[:])
	e.writeLE(word, width)
	return nil
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if i, ok := coerce.ToInt64(value); ok {
		if _, isStr := value.(string); !isStr {
			return float64(i), true
		}
	}
	return 0, false
}

func (e *encoder) encodeChar(value any, path []string) error {
	var r rune
	switch v := value.(type) {
	case rune:
		r = v
	case string:
		if utf8.RuneCountInString(v) != 1 {
			return errors.EncodeConstraint(path, "char needs exactly one rune, got %q", v)
		}
		r, _ = utf8.DecodeRuneInString(v)
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "char")
	}
	if !utf8.ValidRune(r) {
		return errors.EncodeConstraint(path, "invalid unicode scalar value 0x%X", r)
	}
	e.w.WriteU32(uint32(r))
	return nil
}

func (e *encoder) encodeString(value any, path []string) error {
	var s []byte
	switch v := value.(type) {
	case string:
		s = []byte(v)
	case []byte:
		s = v
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "str")
	}
	compact.Encode(e.w, uint64(len(s)))
	e.w.Write(s)
	return nil
}

// compactTarget unwraps single-field structs and single-element tuples down
// to the integer a Compact actually carries.
func compactTarget(td *types.TypeDef) (*types.TypeDef, []*types.TypeDef) {
	var wrappers []*types.TypeDef
	for {
		switch {
		case td.Kind == types.KindStruct && len(td.Fields) == 1:
			wrappers = append(wrappers, td)
			td = td.Fields[0].Type
		case td.Kind == types.KindTuple && len(td.Elems) == 1:
			wrappers = append(wrappers, td)
			td = td.Elems[0]
		default:
			return td, wrappers
		}
	}
}

func (e *encoder) encodeCompact(td *types.TypeDef, value any, path []string) error {
	inner, wrappers := compactTarget(td.Elem)
	for _, wt := range wrappers {
		value = unwrapSingle(wt, value)
	}

	if inner.Kind == types.KindNull {
		return nil
	}
	if !inner.Kind.IsInteger() || inner.Kind.IsSigned() {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
	}

	v, ok := coerce.ToUint256(value)
	if !ok {
		if _, isNum := coerce.ToBig(value); isNum {
			return errors.Overflow(errors.PhaseEncode, path, value, td.String())
		}
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
	}
	if v.BitLen() > inner.Kind.Width()*8 {
		return errors.Overflow(errors.PhaseEncode, path, value, td.String())
	}
	compact.EncodeUint256(e.w, v)
	return nil
}

// unwrapSingle extracts the only element of a single-field struct or tuple
// input. Bare values pass through.
func unwrapSingle(td *types.TypeDef, value any) any {
	switch v := value.(type) {
	case map[string]any:
		if td.Kind == types.KindStruct && len(v) == 1 {
			if inner, ok := v[td.Fields[0].Name]; ok {
				return inner
			}
		}
	case []any:
		if len(v) == 1 {
			return v[0]
		}
	}
	return value
}

// byteInput normalises the accepted byte-string shapes.
func (e *encoder) byteInput(td *types.TypeDef, value any, path []string) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			b, err := buffer.DecodeHex(v)
			if err != nil {
				return nil, errors.New(errors.PhaseEncode, errors.KindEncodeConstraint).
					Path(path...).
					Detail("invalid hex string").
					Cause(err).
					Build()
			}
			return b, nil
		}
		if e.c.isAccount(td) && e.c.addresses != nil {
			b, err := e.c.addresses.ParseAddress(v)
			if err != nil {
				return nil, errors.New(errors.PhaseAddress, errors.KindEncodeConstraint).
					Path(path...).
					Value(v).
					Detail("invalid address").
					Cause(err).
					Build()
			}
			return b, nil
		}
		if td.Kind == types.KindSequence {
			return []byte(v), nil
		}
		return nil, errors.TypeMismatch(errors.PhaseEncode, path, "string", td.String())
	case []any:
		out := make([]byte, len(v))
		for i, item := range v {
			b, err := unsignedValue(item, types.KindU8, childPath(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = byte(b)
		}
		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	}
	return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
}

func (e *encoder) encodeBytes(td *types.TypeDef, value any, path []string) error {
	b, err := e.byteInput(td, value, path)
	if err != nil {
		return err
	}
	if td.Kind == types.KindArray {
		if len(b) != td.Len {
			return errors.EncodeConstraint(path, "%s needs %d bytes, got %d", td.String(), td.Len, len(b))
		}
		e.w.Write(b)
		return nil
	}
	compact.Encode(e.w, uint64(len(b)))
	e.w.Write(b)
	return nil
}

// sliceItems returns the elements of any slice or array input.
func sliceItems(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func (e *encoder) encodeList(td *types.TypeDef, value any, path []string, depth int) error {
	items, ok := sliceItems(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
	}
	if td.Kind == types.KindArray {
		if len(items) != td.Len {
			return errors.EncodeConstraint(path, "%s needs %d items, got %d", td.String(), td.Len, len(items))
		}
	} else {
		compact.Encode(e.w, uint64(len(items)))
	}
	for i, item := range items {
		if err := e.encode(td.Elem, item, childPath(path, "["+strconv.Itoa(i)+"]"), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeTuple(td *types.TypeDef, value any, path []string, depth int) error {
	items, ok := sliceItems(value)
	if !ok || (len(td.Elems) == 1 && len(items) != 1) {
		if len(td.Elems) != 1 {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
		}
		items = []any{value}
	}
	if len(items) != len(td.Elems) {
		return errors.EncodeConstraint(path, "%s needs %d items, got %d", td.String(), len(td.Elems), len(items))
	}
	for i, elem := range td.Elems {
		if err := e.encode(elem, items[i], childPath(path, strconv.Itoa(i)), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeStruct(td *types.TypeDef, value any, path []string, depth int) error {
	fields, err := structInput(value)
	if err != nil {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			GoType(typeName(value)).
			ScaleType(td.String()).
			Cause(err).
			Build()
	}

	if fields == nil {
		items, ok := sliceItems(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
		}
		if len(items) != len(td.Fields) {
			return errors.EncodeConstraint(path, "%s needs %d fields, got %d", td.String(), len(td.Fields), len(items))
		}
		for i, f := range td.Fields {
			if err := e.encode(f.Type, items[i], childPath(path, f.Name), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, f := range td.Fields {
		v, ok := fields[f.Name]
		if !ok {
			if f.Type.Kind != types.KindOption && f.Type.Kind != types.KindNull {
				return errors.FieldMissing(errors.PhaseEncode, path, f.Name)
			}
		}
		if err := e.encode(f.Type, v, childPath(path, f.Name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// structInput returns named fields from a map or Go struct, or nil for
// positional inputs.
func structInput(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return nil, nil
	}
	if value == nil {
		return nil, nil
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	switch rv.Kind() {
	case reflect.Struct:
		m, err := From(value)
		if err != nil {
			return nil, err
		}
		fields, _ := m.(map[string]any)
		return fields, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return fields, nil
	}
	return nil, nil
}

func (e *encoder) encodeUnion(td *types.TypeDef, value any, path []string, depth int) error {
	var (
		variant *types.Variant
		payload any
		found   bool
	)

	switch v := value.(type) {
	case Variant:
		variant, found = lookupVariant(td, v.Name, v.Index)
		payload = v.Value
	case *Variant:
		if v != nil {
			variant, found = lookupVariant(td, v.Name, v.Index)
			payload = v.Value
		}
	case string:
		variant, found = td.VariantByName(v)
		if !found {
			variant, found = e.accountVariant(td, v)
			payload = v
		}
	case map[string]any:
		if len(v) != 1 {
			return errors.EncodeConstraint(path, "union input map must have exactly one key, got %d", len(v))
		}
		for name, p := range v {
			variant, found = td.VariantByName(name)
			payload = p
			if !found {
				return errors.InvalidData(errors.PhaseEncode, path, "unknown variant "+name+" of "+td.String())
			}
		}
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), td.String())
	}

	if !found {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			ScaleType(td.String()).
			Value(value).
			Detail("no matching variant").
			Build()
	}

	e.w.Byte(variant.Index)
	if variant.Type == nil {
		return nil
	}
	return e.encode(variant.Type, payload, childPath(path, variant.Name), depth+1)
}

func lookupVariant(td *types.TypeDef, name string, index uint8) (*types.Variant, bool) {
	if name != "" {
		return td.VariantByName(name)
	}
	return td.VariantByIndex(index)
}

// accountVariant finds the variant a bare address or hex string selects,
// such as MultiAddress::Id.
func (e *encoder) accountVariant(td *types.TypeDef, s string) (*types.Variant, bool) {
	if e.c.addresses == nil && !strings.HasPrefix(s, "0x") {
		return nil, false
	}
	for i := range td.Variants {
		if t := td.Variants[i].Type; t != nil && e.c.isAccount(t) {
			return &td.Variants[i], true
		}
	}
	return nil, false
}

func (e *encoder) encodeMap(td *types.TypeDef, value any, path []string, depth int) error {
	entries, err := mapEntries(value)
	if err != nil {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			GoType(typeName(value)).
			ScaleType(td.String()).
			Detail("%s", err).
			Build()
	}
	compact.Encode(e.w, uint64(len(entries)))
	for i, entry := range entries {
		p := childPath(path, "["+strconv.Itoa(i)+"]")
		if err := e.encode(td.Key, entry.Key, childPath(p, "key"), depth+1); err != nil {
			return err
		}
		if err := e.encode(td.Value, entry.Value, childPath(p, "value"), depth+1); err != nil {
			return err
		}
	}
	return nil
}

type shapeError string

func (s shapeError) Error() string { return string(s) }

func mapEntries(value any) ([]MapEntry, error) {
	switch v := value.(type) {
	case []MapEntry:
		return v, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]MapEntry, len(keys))
		for i, k := range keys {
			entries[i] = MapEntry{Key: k, Value: v[k]}
		}
		return entries, nil
	}

	items, ok := sliceItems(value)
	if !ok {
		return nil, shapeError("map input must be []MapEntry, a list of pairs or map[string]any")
	}
	entries := make([]MapEntry, len(items))
	for i, item := range items {
		pair, ok := sliceItems(item)
		if !ok || len(pair) != 2 {
			return nil, shapeError("map entry " + strconv.Itoa(i) + " is not a key/value pair")
		}
		entries[i] = MapEntry{Key: pair[0], Value: pair[1]}
	}
	return entries, nil
}

func (e *encoder) encodeOption(td *types.TypeDef, value any, path []string, depth int) error {
	if value == nil {
		e.w.Byte(0)
		return nil
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		e.w.Byte(0)
		return nil
	}
	e.w.Byte(1)
	return e.encode(td.Elem, value, path, depth+1)
}

func (e *encoder) encodeBits(value any, path []string) error {
	bits, err := bitInput(value)
	if err != nil {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			GoType(typeName(value)).
			ScaleType("BitVec").
			Cause(err).
			Build()
	}
	compact.Encode(e.w, uint64(len(bits)))
	e.w.Write(packBits(bits))
	return nil
}
