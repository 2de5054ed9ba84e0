package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/errors"
)

// TypeDef describes how a value is laid out on the wire.
// Only the fields relevant to Kind are set.
type TypeDef struct {
	Custom   Custom
	Elem     *TypeDef // Compact, Array, Sequence, Option
	Key      *TypeDef // Map
	Value    *TypeDef // Map
	Name     string
	Elems    []*TypeDef // Tuple
	Fields   []Field    // Struct
	Variants []Variant  // Union
	Len      int        // Array
	Kind     Kind
}

type Field struct {
	Type     *TypeDef
	Name     string
	TypeName string
}

// Variant is a union case. Type is nil for variants without payload.
type Variant struct {
	Type  *TypeDef
	Name  string
	Index uint8
}

// Custom lets a kind outside the closed set (era, extrinsic) plug its own
// wire format into the engine.
type Custom interface {
	Encode(w *buffer.Writer, value any) error
	Decode(b *buffer.Buffer) (any, error)
}

var primitives = func() map[Kind]*TypeDef {
	m := make(map[Kind]*TypeDef)
	for k := KindBool; k <= KindNull; k++ {
		m[k] = &TypeDef{Kind: k}
	}
	return m
}()

// Primitive returns the shared definition for a scalar kind.
func Primitive(k Kind) *TypeDef {
	if td, ok := primitives[k]; ok {
		return td
	}
	return &TypeDef{Kind: k}
}

func Null() *TypeDef { return primitives[KindNull] }

func Compact(inner *TypeDef) *TypeDef {
	return &TypeDef{Kind: KindCompact, Elem: inner}
}

func Array(elem *TypeDef, n int) *TypeDef {
	return &TypeDef{Kind: KindArray, Elem: elem, Len: n}
}

func Sequence(elem *TypeDef) *TypeDef {
	return &TypeDef{Kind: KindSequence, Elem: elem}
}

// Bytes is Vec<u8>.
func Bytes() *TypeDef {
	return Sequence(Primitive(KindU8))
}

func Tuple(elems ...*TypeDef) *TypeDef {
	if len(elems) == 0 {
		return Null()
	}
	return &TypeDef{Kind: KindTuple, Elems: elems}
}

func Struct(fields ...Field) *TypeDef {
	return &TypeDef{Kind: KindStruct, Fields: fields}
}

// Union builds a tagged union. When every variant leaves Index at zero the
// variants are indexed by position; otherwise the given indices are kept.
// It panics on duplicate indices; use NewUnion for untrusted variant lists.
func Union(variants ...Variant) *TypeDef {
	if len(variants) > 1 && !hasIndices(variants) {
		positioned := make([]Variant, len(variants))
		for i, v := range variants {
			v.Index = uint8(i)
			positioned[i] = v
		}
		variants = positioned
	}
	td, err := NewUnion(variants...)
	if err != nil {
		panic(err)
	}
	return td
}

// NewUnion builds a tagged union from variants carrying their own
// discriminants. Duplicate indices and more than 256 variants are rejected.
func NewUnion(variants ...Variant) (*TypeDef, error) {
	if len(variants) > 256 {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
			Detail("union has %d variants, at most 256 fit a one byte index", len(variants)).
			Build()
	}
	var seen [256]bool
	for _, v := range variants {
		if seen[v.Index] {
			return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
				Path(v.Name).
				Value(v.Index).
				Detail("duplicate variant index %d", v.Index).
				Build()
		}
		seen[v.Index] = true
	}
	return &TypeDef{Kind: KindUnion, Variants: variants}, nil
}

func hasIndices(variants []Variant) bool {
	for _, v := range variants {
		if v.Index != 0 {
			return true
		}
	}
	return false
}

// Enum builds a payload-less union from names, indexed by position.
func Enum(names ...string) *TypeDef {
	vs := make([]Variant, len(names))
	for i, n := range names {
		vs[i] = Variant{Name: n, Index: uint8(i)}
	}
	return Union(vs...)
}

func Map(key, value *TypeDef) *TypeDef {
	return &TypeDef{Kind: KindMap, Key: key, Value: value}
}

func BitSequence() *TypeDef {
	return &TypeDef{Kind: KindBitSequence}
}

func Option(inner *TypeDef) *TypeDef {
	return &TypeDef{Kind: KindOption, Elem: inner}
}

func NewCustom(name string, c Custom) *TypeDef {
	return &TypeDef{Kind: KindCustom, Name: name, Custom: c}
}

// Placeholder allocates an unresolved slot for forward and cyclic references.
// It must be completed with Fill before use.
func Placeholder(name string) *TypeDef {
	return &TypeDef{Kind: KindPending, Name: name}
}

// Fill completes a placeholder in place so existing references observe the
// resolved shape. The placeholder keeps its own name when src is anonymous.
func (td *TypeDef) Fill(src *TypeDef) {
	name := td.Name
	*td = *src
	if td.Name == "" {
		td.Name = name
	}
}

// Named returns a shallow copy carrying name.
func (td *TypeDef) Named(name string) *TypeDef {
	c := *td
	c.Name = name
	return &c
}

func (td *TypeDef) IsPending() bool {
	return td.Kind == KindPending
}

// IsByteSequence reports whether td is Vec<u8> or [u8; N].
func (td *TypeDef) IsByteSequence() bool {
	return (td.Kind == KindSequence || td.Kind == KindArray) &&
		td.Elem != nil && td.Elem.Kind == KindU8
}

// VariantByIndex finds a union case by discriminant.
func (td *TypeDef) VariantByIndex(idx uint8) (*Variant, bool) {
	for i := range td.Variants {
		if td.Variants[i].Index == idx {
			return &td.Variants[i], true
		}
	}
	return nil, false
}

// VariantByName finds a union case by name.
func (td *TypeDef) VariantByName(name string) (*Variant, bool) {
	for i := range td.Variants {
		if td.Variants[i].Name == name {
			return &td.Variants[i], true
		}
	}
	return nil, false
}

// FieldByName finds a struct field by name.
func (td *TypeDef) FieldByName(name string) (*Field, bool) {
	for i := range td.Fields {
		if td.Fields[i].Name == name {
			return &td.Fields[i], true
		}
	}
	return nil, false
}

// String renders td as a type expression. Named composites print their name
// so cyclic definitions terminate.
func (td *TypeDef) String() string {
	var b strings.Builder
	td.write(&b, 0)
	return b.String()
}

const maxRenderDepth = 32

func (td *TypeDef) write(b *strings.Builder, depth int) {
	if td == nil {
		b.WriteString("<nil>")
		return
	}
	if td.Kind.IsPrimitive() || td.Kind == KindNull {
		b.WriteString(td.Kind.String())
		return
	}
	if (td.Name != "" && depth > 0) || depth > maxRenderDepth {
		if td.Name == "" {
			b.WriteString("...")
		} else {
			b.WriteString(td.Name)
		}
		return
	}

	switch td.Kind {
	case KindCompact:
		b.WriteString("Compact<")
		td.Elem.write(b, depth+1)
		b.WriteByte('>')
	case KindArray:
		b.WriteByte('[')
		td.Elem.write(b, depth+1)
		b.WriteString("; ")
		b.WriteString(strconv.Itoa(td.Len))
		b.WriteByte(']')
	case KindSequence:
		b.WriteString("Vec<")
		td.Elem.write(b, depth+1)
		b.WriteByte('>')
	case KindOption:
		b.WriteString("Option<")
		td.Elem.write(b, depth+1)
		b.WriteByte('>')
	case KindMap:
		b.WriteString("BTreeMap<")
		td.Key.write(b, depth+1)
		b.WriteString(", ")
		td.Value.write(b, depth+1)
		b.WriteByte('>')
	case KindBitSequence:
		b.WriteString("BitVec")
	case KindTuple:
		b.WriteByte('(')
		for i, e := range td.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b, depth+1)
		}
		b.WriteByte(')')
	case KindStruct:
		if td.Name != "" {
			b.WriteString(td.Name)
			b.WriteByte(' ')
		}
		b.WriteByte('{')
		for i, f := range td.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			f.Type.write(b, depth+1)
		}
		b.WriteByte('}')
	case KindUnion:
		if td.Name != "" {
			b.WriteString(td.Name)
			b.WriteByte(' ')
		}
		b.WriteString("enum {")
		for i, v := range td.Variants {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Name)
			if v.Type != nil {
				b.WriteByte('(')
				v.Type.write(b, depth+1)
				b.WriteByte(')')
			}
		}
		b.WriteByte('}')
	case KindCustom, KindPending:
		if td.Name != "" {
			b.WriteString(td.Name)
		} else {
			b.WriteString(td.Kind.String())
		}
	default:
		b.WriteString(td.Kind.String())
	}
}
