package testmeta

import (
	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/types"
)

// Registry accumulates a v14 portable type registry.
type Registry struct {
	types []any
}

// Param is a generic parameter of a portable type.
type Param struct {
	Type *uint32
	Name string
}

func P(name string, id uint32) Param {
	return Param{Name: name, Type: &id}
}

// Add registers a type under id. path may be nil.
func (r *Registry) Add(id uint32, path []string, def map[string]any, params ...Param) {
	ps := make([]any, len(params))
	for i, p := range params {
		var ty any
		if p.Type != nil {
			ty = *p.Type
		}
		ps[i] = map[string]any{"name": p.Name, "type": ty}
	}
	r.types = append(r.types, map[string]any{
		"id": id,
		"type": map[string]any{
			"path":   strs(path),
			"params": ps,
			"def":    def,
			"docs":   []any{},
		},
	})
}

func strs(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Field is a composite or variant field; an empty name makes it unnamed.
func Field(name string, id uint32, typeName string) map[string]any {
	return map[string]any{
		"name":      optional(name),
		"type":      id,
		"type_name": optional(typeName),
		"docs":      []any{},
	}
}

func Case(name string, index uint8, fields ...map[string]any) map[string]any {
	return map[string]any{
		"name":   name,
		"fields": maps(fields),
		"index":  index,
		"docs":   []any{},
	}
}

func maps(list []map[string]any) []any {
	out := make([]any, len(list))
	for i, m := range list {
		out[i] = m
	}
	return out
}

func ids(list []uint32) []any {
	out := make([]any, len(list))
	for i, id := range list {
		out[i] = id
	}
	return out
}

func Primitive(name string) map[string]any {
	return map[string]any{"Primitive": name}
}

func Composite(fields ...map[string]any) map[string]any {
	return map[string]any{"Composite": map[string]any{"fields": maps(fields)}}
}

func Variant(cases ...map[string]any) map[string]any {
	return map[string]any{"Variant": map[string]any{"variants": maps(cases)}}
}

func Sequence(id uint32) map[string]any {
	return map[string]any{"Sequence": map[string]any{"type": id}}
}

func Array(n, id uint32) map[string]any {
	return map[string]any{"Array": map[string]any{"len": n, "type": id}}
}

func Tuple(elems ...uint32) map[string]any {
	return map[string]any{"Tuple": ids(elems)}
}

func Compact(id uint32) map[string]any {
	return map[string]any{"Compact": map[string]any{"type": id}}
}

func BitSequence(store, order uint32) map[string]any {
	return map[string]any{"BitSequence": map[string]any{"bit_store_type": store, "bit_order_type": order}}
}

// Pallet describes a v14 pallet. Nil type ids leave the item out.
type Pallet struct {
	Calls     *uint32
	Event     *uint32
	Error     *uint32
	Name      string
	Prefix    string
	Storage   []map[string]any
	Constants []map[string]any
	Index     uint8
}

func ID(id uint32) *uint32 {
	return &id
}

func Plain(name string, id uint32) map[string]any {
	return storageEntry(name, map[string]any{"Plain": id})
}

func Map(name string, hashers []string, key, value uint32) map[string]any {
	return storageEntry(name, map[string]any{"Map": map[string]any{
		"hashers": strs(hashers),
		"key":     key,
		"value":   value,
	}})
}

func storageEntry(name string, ty map[string]any) map[string]any {
	return map[string]any{
		"name":     name,
		"modifier": "Default",
		"type":     ty,
		"default":  []byte{},
		"docs":     []any{},
	}
}

func Constant(name string, id uint32, value string) map[string]any {
	return map[string]any{"name": name, "type": id, "value": value, "docs": []any{}}
}

func typeRef(id *uint32) any {
	if id == nil {
		return nil
	}
	return map[string]any{"type": *id}
}

func (p Pallet) value() map[string]any {
	var st any
	if p.Storage != nil {
		st = map[string]any{"prefix": p.Prefix, "entries": maps(p.Storage)}
	}
	return map[string]any{
		"name":      p.Name,
		"storage":   st,
		"calls":     typeRef(p.Calls),
		"event":     typeRef(p.Event),
		"constants": maps(p.Constants),
		"error":     typeRef(p.Error),
		"index":     p.Index,
	}
}

// SignedExtension is one entry of the v14 extrinsic metadata.
type SignedExtension struct {
	Identifier       string
	Type             uint32
	AdditionalSigned uint32
}

// V14 encodes a complete metadata blob.
func V14(r *Registry, pallets []Pallet, xtType uint32, xtVersion uint8, exts []SignedExtension, runtimeType uint32) ([]byte, error) {
	ps := make([]any, len(pallets))
	for i, p := range pallets {
		ps[i] = p.value()
	}
	se := make([]any, len(exts))
	for i, e := range exts {
		se[i] = map[string]any{"identifier": e.Identifier, "type": e.Type, "additional_signed": e.AdditionalSigned}
	}
	body := map[string]any{
		"types":   r.types,
		"pallets": ps,
		"extrinsic": map[string]any{
			"type":              xtType,
			"version":           xtVersion,
			"signed_extensions": se,
		},
		"type": runtimeType,
	}
	return blob(14, metadata.V14Schema(), body)
}

func blob(version byte, schema *types.TypeDef, body map[string]any) ([]byte, error) {
	w := buffer.NewWriter()
	w.WriteU32(metadata.Magic)
	w.Byte(version)
	if err := codec.EncodeTo(w, schema, body); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
