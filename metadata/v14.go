package metadata

import (
	"strconv"
	"strings"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/metadata/internal/arena"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/storage"
	"github.com/wippyai/scale-codec/types"
)

func decodeV14(b *buffer.Buffer, rv *registry.Resolver) (*Metadata, error) {
	var raw rawV14
	if err := decodeBody(b, v14Schema, &raw); err != nil {
		return nil, err
	}

	p := &portable{arena: arena.New(), infos: make(map[uint32]*TypeInfo, len(raw.Types))}
	for i := range raw.Types {
		pt := &raw.Types[i]
		if err := p.arena.Reserve(pt.ID); err != nil {
			return nil, err
		}
		p.infos[pt.ID] = &pt.Type
	}
	if err := p.arena.Fill(p.build); err != nil {
		return nil, err
	}

	m := &Metadata{
		resolver:    rv,
		arena:       p.arena,
		Types:       raw.Types,
		RuntimeType: raw.Type,
		Version:     14,
		Extrinsic: ExtrinsicInfo{
			Type:    raw.Extrinsic.Type,
			Version: raw.Extrinsic.Version,
		},
	}
	for _, se := range raw.Extrinsic.SignedExtensions {
		ty, err := p.arena.Ref(se.Type)
		if err != nil {
			return nil, err
		}
		extra, err := p.arena.Ref(se.AdditionalSigned)
		if err != nil {
			return nil, err
		}
		m.Extrinsic.SignedExtensions = append(m.Extrinsic.SignedExtensions, SignedExtension{
			Identifier:       se.Identifier,
			Type:             ty,
			AdditionalSigned: extra,
		})
	}
	if info, ok := p.infos[raw.Extrinsic.Type]; ok {
		for _, param := range info.Params {
			if param.Type == nil {
				continue
			}
			td, err := p.arena.Ref(*param.Type)
			if err != nil {
				return nil, err
			}
			switch param.Name {
			case "Address":
				m.address = td
			case "Signature":
				m.signature = td
			}
		}
	}

	for i := range raw.Pallets {
		pallet, err := p.pallet(&raw.Pallets[i])
		if err != nil {
			return nil, err
		}
		m.Pallets = append(m.Pallets, pallet)
	}
	return m, nil
}

// portable converts the v14 type registry into definitions.
type portable struct {
	arena *arena.Arena
	infos map[uint32]*TypeInfo
}

func (p *portable) info(id uint32) (*TypeInfo, error) {
	info, ok := p.infos[id]
	if !ok {
		_, err := p.arena.Ref(id)
		return nil, err
	}
	return info, nil
}

func (p *portable) build(id uint32) (*types.TypeDef, error) {
	info, err := p.info(id)
	if err != nil {
		return nil, err
	}
	name := joinPath(info.Path)

	switch info.Def.Name {
	case "Composite":
		var c rawComposite
		if err := codec.As(info.Def.Value, &c); err != nil {
			return nil, err
		}
		return p.composite(info, name, c.Fields)

	case "Variant":
		var v rawVariantDef
		if err := codec.As(info.Def.Value, &v); err != nil {
			return nil, err
		}
		return p.variant(info, name, v.Variants)

	case "Sequence":
		var s rawTypeRef
		if err := codec.As(info.Def.Value, &s); err != nil {
			return nil, err
		}
		elem, err := p.arena.Ref(s.Type)
		if err != nil {
			return nil, err
		}
		return types.Sequence(elem), nil

	case "Array":
		var a rawArray
		if err := codec.As(info.Def.Value, &a); err != nil {
			return nil, err
		}
		elem, err := p.arena.Ref(a.Type)
		if err != nil {
			return nil, err
		}
		return types.Array(elem, int(a.Len)), nil

	case "Tuple":
		var ids []uint32
		if err := codec.As(info.Def.Value, &ids); err != nil {
			return nil, err
		}
		elems, err := p.refs(ids)
		if err != nil {
			return nil, err
		}
		return types.Tuple(elems...), nil

	case "Primitive":
		prim, ok := info.Def.Value.(codec.Variant)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseMetadata, []string{"types", strconv.Itoa(int(id))}, "malformed primitive")
		}
		k, ok := types.PrimitiveByName(strings.ToLower(prim.Name))
		if !ok {
			return nil, errors.Unsupported(errors.PhaseMetadata, "primitive "+prim.Name)
		}
		return types.Primitive(k), nil

	case "Compact":
		var c rawTypeRef
		if err := codec.As(info.Def.Value, &c); err != nil {
			return nil, err
		}
		inner, err := p.arena.Ref(c.Type)
		if err != nil {
			return nil, err
		}
		return types.Compact(inner), nil

	case "BitSequence":
		return types.BitSequence(), nil
	}
	return nil, errors.Unsupported(errors.PhaseMetadata, "type definition "+info.Def.Name)
}

func (p *portable) refs(ids []uint32) ([]*types.TypeDef, error) {
	out := make([]*types.TypeDef, len(ids))
	for i, id := range ids {
		td, err := p.arena.Ref(id)
		if err != nil {
			return nil, err
		}
		out[i] = td
	}
	return out, nil
}

func (p *portable) composite(info *TypeInfo, name string, fields []rawField) (*types.TypeDef, error) {
	if len(fields) == 0 {
		return types.Null(), nil
	}
	if lastSegment(info.Path) == "BTreeMap" && len(fields) == 1 {
		if key, value, ok := p.mapParts(fields[0].Type); ok {
			return types.Map(key, value), nil
		}
	}
	if len(fields) == 1 && fields[0].Name == nil {
		inner, err := p.arena.Resolved(fields[0].Type)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return inner, nil
		}
		return inner.Named(name), nil
	}
	return p.fields(fields, name)
}

// fields builds a struct when every field is named and a tuple otherwise.
func (p *portable) fields(fields []rawField, name string) (*types.TypeDef, error) {
	named := fields[0].Name != nil
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		td, err := p.arena.Ref(f.Type)
		if err != nil {
			return nil, err
		}
		out[i] = types.Field{Type: td}
		if f.Name != nil {
			out[i].Name = *f.Name
		} else {
			named = false
		}
		if f.TypeName != nil {
			out[i].TypeName = *f.TypeName
		}
	}
	if !named {
		elems := make([]*types.TypeDef, len(out))
		for i := range out {
			elems[i] = out[i].Type
		}
		return types.Tuple(elems...).Named(name), nil
	}
	return types.Struct(out...).Named(name), nil
}

// mapParts recognises the Vec<(K, V)> carried by a BTreeMap.
func (p *portable) mapParts(id uint32) (key, value *types.TypeDef, ok bool) {
	seq, err := p.info(id)
	if err != nil || seq.Def.Name != "Sequence" {
		return nil, nil, false
	}
	var s rawTypeRef
	if codec.As(seq.Def.Value, &s) != nil {
		return nil, nil, false
	}
	tuple, err := p.info(s.Type)
	if err != nil || tuple.Def.Name != "Tuple" {
		return nil, nil, false
	}
	var ids []uint32
	if codec.As(tuple.Def.Value, &ids) != nil || len(ids) != 2 {
		return nil, nil, false
	}
	elems, err := p.refs(ids)
	if err != nil {
		return nil, nil, false
	}
	return elems[0], elems[1], true
}

func (p *portable) variant(info *TypeInfo, name string, variants []rawVariant) (*types.TypeDef, error) {
	if isOption(info, variants) {
		inner, err := p.arena.Ref(variants[1].Fields[0].Type)
		if err != nil {
			return nil, err
		}
		return types.Option(inner), nil
	}

	out := make([]types.Variant, len(variants))
	for i, v := range variants {
		out[i] = types.Variant{Name: v.Name, Index: v.Index}
		switch {
		case len(v.Fields) == 0:
		case len(v.Fields) == 1 && v.Fields[0].Name == nil:
			td, err := p.arena.Ref(v.Fields[0].Type)
			if err != nil {
				return nil, err
			}
			out[i].Type = td
		default:
			td, err := p.fields(v.Fields, "")
			if err != nil {
				return nil, err
			}
			out[i].Type = td
		}
	}
	td, err := types.NewUnion(out...)
	if err != nil {
		return nil, err
	}
	return td.Named(name), nil
}

func isOption(info *TypeInfo, variants []rawVariant) bool {
	return len(info.Path) == 1 && info.Path[0] == "Option" &&
		len(variants) == 2 &&
		variants[0].Name == "None" && variants[0].Index == 0 && len(variants[0].Fields) == 0 &&
		variants[1].Name == "Some" && variants[1].Index == 1 && len(variants[1].Fields) == 1
}

func (p *portable) pallet(raw *rawPallet) (*Pallet, error) {
	pallet := &Pallet{Name: raw.Name, Index: raw.Index}

	if raw.Calls != nil {
		td, err := p.arena.Ref(raw.Calls.Type)
		if err != nil {
			return nil, err
		}
		pallet.callType = td
		variants, err := p.variantsOf(raw.Calls.Type)
		if err != nil {
			return nil, err
		}
		for _, v := range variants {
			args, err := p.args(v.Fields)
			if err != nil {
				return nil, err
			}
			pallet.Calls = append(pallet.Calls, &Function{Name: v.Name, Index: v.Index, Args: args, Docs: v.Docs})
		}
	}

	if raw.Event != nil {
		td, err := p.arena.Ref(raw.Event.Type)
		if err != nil {
			return nil, err
		}
		pallet.eventType = td
		variants, err := p.variantsOf(raw.Event.Type)
		if err != nil {
			return nil, err
		}
		for _, v := range variants {
			args, err := p.args(v.Fields)
			if err != nil {
				return nil, err
			}
			pallet.Events = append(pallet.Events, &Event{Name: v.Name, Index: v.Index, Args: args, Docs: v.Docs})
		}
	}

	if raw.Error != nil {
		variants, err := p.variantsOf(raw.Error.Type)
		if err != nil {
			return nil, err
		}
		for _, v := range variants {
			pallet.Errors = append(pallet.Errors, &ErrorInfo{Name: v.Name, Index: v.Index, Docs: v.Docs})
		}
	}

	for _, c := range raw.Constants {
		td, err := p.arena.Ref(c.Type)
		if err != nil {
			return nil, err
		}
		pallet.Constants = append(pallet.Constants, &Constant{
			Type:     td,
			Name:     c.Name,
			TypeName: p.typeName(c.Type),
			Value:    c.Value,
			Docs:     c.Docs,
		})
	}

	if raw.Storage != nil {
		pallet.StoragePrefix = raw.Storage.Prefix
		for _, e := range raw.Storage.Entries {
			entry, err := p.storageEntry(raw.Storage.Prefix, e)
			if err != nil {
				return nil, err
			}
			pallet.Storage = append(pallet.Storage, entry)
		}
	}
	return pallet, nil
}

func (p *portable) variantsOf(id uint32) ([]rawVariant, error) {
	info, err := p.info(id)
	if err != nil {
		return nil, err
	}
	if info.Def.Name != "Variant" {
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(id).
			Detail("type %d is a %s, expected a variant", id, info.Def.Name).
			Build()
	}
	var v rawVariantDef
	if err := codec.As(info.Def.Value, &v); err != nil {
		return nil, err
	}
	return v.Variants, nil
}

func (p *portable) args(fields []rawField) ([]Arg, error) {
	args := make([]Arg, len(fields))
	for i, f := range fields {
		td, err := p.arena.Ref(f.Type)
		if err != nil {
			return nil, err
		}
		args[i] = Arg{Type: td}
		if f.Name != nil {
			args[i].Name = *f.Name
		}
		if f.TypeName != nil {
			args[i].TypeName = *f.TypeName
		} else {
			args[i].TypeName = p.typeName(f.Type)
		}
	}
	return args, nil
}

func (p *portable) storageEntry(prefix string, e rawStorageEntry) (*StorageEntry, error) {
	entry := &StorageEntry{
		Name:     e.Name,
		Prefix:   prefix,
		Modifier: e.Modifier,
		Default:  e.Default,
		Docs:     e.Docs,
	}
	switch e.Type.Name {
	case "Plain":
		var id uint32
		if err := codec.As(e.Type.Value, &id); err != nil {
			return nil, err
		}
		td, err := p.arena.Ref(id)
		if err != nil {
			return nil, err
		}
		entry.Value, entry.ValueName = td, p.typeName(id)

	case "Map":
		var m rawStorageMap
		if err := codec.As(e.Type.Value, &m); err != nil {
			return nil, err
		}
		value, err := p.arena.Ref(m.Value)
		if err != nil {
			return nil, err
		}
		entry.Value, entry.ValueName = value, p.typeName(m.Value)
		if entry.Hashers, err = parseHashers(m.Hashers); err != nil {
			return nil, err
		}

		keyIDs := []uint32{m.Key}
		if len(m.Hashers) > 1 {
			info, err := p.info(m.Key)
			if err != nil {
				return nil, err
			}
			if info.Def.Name == "Tuple" {
				if err := codec.As(info.Def.Value, &keyIDs); err != nil {
					return nil, err
				}
			}
			if len(keyIDs) != len(m.Hashers) {
				return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
					ScaleType(prefix+"."+e.Name).
					Detail("%d hashers for %d keys", len(m.Hashers), len(keyIDs)).
					Build()
			}
		}
		if entry.Keys, err = p.refs(keyIDs); err != nil {
			return nil, err
		}
		for _, id := range keyIDs {
			entry.KeyNames = append(entry.KeyNames, p.typeName(id))
		}

	default:
		return nil, errors.Unsupported(errors.PhaseMetadata, "storage entry type "+e.Type.Name)
	}
	return entry, nil
}

func parseHashers(names []string) ([]storage.Hasher, error) {
	out := make([]storage.Hasher, len(names))
	for i, n := range names {
		h, err := storage.ParseHasher(n)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// typeName renders a portable id for display: its path when it has one,
// otherwise its structure.
func (p *portable) typeName(id uint32) string {
	if info, ok := p.infos[id]; ok && len(info.Path) > 0 {
		return joinPath(info.Path)
	}
	if td, err := p.arena.Ref(id); err == nil {
		return td.String()
	}
	return "scale_info::" + itoa32(id)
}

func joinPath(path []string) string {
	return strings.Join(path, "::")
}

func lastSegment(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func itoa(v uint8) string {
	return strconv.Itoa(int(v))
}

func itoa32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
