package metadata

import (
	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/types"
)

// decodeV13 builds legacy metadata. Argument types are type names resolved
// against a copy of rv's registry in which Call refers to this runtime's
// call union, so calls nested in arguments (Box<Call>, Vec<Call>) work.
// Call argument types must resolve; other items keep their type name when
// the registry does not know it.
func decodeV13(b *buffer.Buffer, rv *registry.Resolver) (*Metadata, error) {
	var raw rawV13
	if err := decodeBody(b, v13Schema, &raw); err != nil {
		return nil, err
	}

	reg := rv.Registry().Clone()
	callPH := types.Placeholder("Call")
	if err := reg.RegisterType("Call", callPH); err != nil {
		return nil, err
	}
	legacy := reg.Unversioned()
	if v, ok := rv.Version(); ok {
		legacy = reg.Resolver(v)
	}

	m := &Metadata{
		resolver: legacy,
		callPH:   callPH,
		Version:  13,
		Extrinsic: ExtrinsicInfo{
			Version: raw.Extrinsic.Version,
		},
	}
	for _, id := range raw.Extrinsic.SignedExtensions {
		m.Extrinsic.SignedExtensions = append(m.Extrinsic.SignedExtensions, SignedExtension{Identifier: id})
	}

	var calls []types.Variant
	for i := range raw.Modules {
		mod := &raw.Modules[i]
		pallet, err := legacyPallet(legacy, mod)
		if err != nil {
			return nil, err
		}
		m.Pallets = append(m.Pallets, pallet)
		if pallet.callType != nil {
			calls = append(calls, types.Variant{Name: pallet.Name, Index: pallet.Index, Type: pallet.callType})
		}
	}
	callType, err := types.NewUnion(calls...)
	if err != nil {
		return nil, err
	}
	callPH.Fill(callType)
	return m, nil
}

func legacyPallet(rv *registry.Resolver, mod *rawModuleV13) (*Pallet, error) {
	pallet := &Pallet{Name: mod.Name, Index: mod.Index}

	if mod.Calls != nil {
		variants := make([]types.Variant, len(*mod.Calls))
		for i, fn := range *mod.Calls {
			f := &Function{Name: fn.Name, Index: uint8(i), Docs: fn.Docs}
			fields := make([]types.Field, len(fn.Args))
			for j, a := range fn.Args {
				td, err := rv.Resolve(a.Type)
				if err != nil {
					return nil, errors.New(errors.PhaseMetadata, errors.KindUnknownType).
						Path(mod.Name, fn.Name, a.Name).
						ScaleType(a.Type).
						Detail("resolve call argument").
						Cause(err).
						Build()
				}
				f.Args = append(f.Args, Arg{Type: td, Name: a.Name, TypeName: a.Type})
				fields[j] = types.Field{Type: td, Name: a.Name, TypeName: a.Type}
			}
			variants[i] = types.Variant{Name: fn.Name, Index: uint8(i)}
			if len(fields) > 0 {
				variants[i].Type = types.Struct(fields...)
			}
			pallet.Calls = append(pallet.Calls, f)
		}
		callType, err := types.NewUnion(variants...)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseMetadata, errors.KindInvalidData, err, "calls of "+mod.Name)
		}
		pallet.callType = callType
	}

	if mod.Events != nil {
		pallet.Events = []*Event{}
		for i, ev := range *mod.Events {
			e := &Event{Name: ev.Name, Index: uint8(i), Docs: ev.Docs}
			for _, name := range ev.Args {
				e.Args = append(e.Args, Arg{Type: bestEffort(rv, name), TypeName: name})
			}
			pallet.Events = append(pallet.Events, e)
		}
	}

	for i, e := range mod.Errors {
		pallet.Errors = append(pallet.Errors, &ErrorInfo{Name: e.Name, Index: uint8(i), Docs: e.Docs})
	}

	for _, c := range mod.Constants {
		pallet.Constants = append(pallet.Constants, &Constant{
			Type:     bestEffort(rv, c.Type),
			Name:     c.Name,
			TypeName: c.Type,
			Value:    c.Value,
			Docs:     c.Docs,
		})
	}

	if mod.Storage != nil {
		pallet.StoragePrefix = mod.Storage.Prefix
		for _, e := range mod.Storage.Entries {
			entry, err := legacyStorageEntry(rv, mod.Storage.Prefix, e)
			if err != nil {
				return nil, err
			}
			pallet.Storage = append(pallet.Storage, entry)
		}
	}
	return pallet, nil
}

func legacyStorageEntry(rv *registry.Resolver, prefix string, e rawStorageEntryV13) (*StorageEntry, error) {
	entry := &StorageEntry{
		Name:     e.Name,
		Prefix:   prefix,
		Modifier: e.Modifier,
		Default:  e.Default,
		Docs:     e.Docs,
	}

	var hashers []string
	switch e.Type.Name {
	case "Plain":
		name, ok := e.Type.Value.(string)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseMetadata, []string{prefix, e.Name}, "malformed plain storage type")
		}
		entry.ValueName = name

	case "Map":
		var m rawMapV13
		if err := codec.As(e.Type.Value, &m); err != nil {
			return nil, err
		}
		hashers = []string{m.Hasher}
		entry.KeyNames = []string{m.Key}
		entry.ValueName = m.Value

	case "DoubleMap":
		var m rawDoubleMapV13
		if err := codec.As(e.Type.Value, &m); err != nil {
			return nil, err
		}
		hashers = []string{m.Hasher, m.Key2Hasher}
		entry.KeyNames = []string{m.Key1, m.Key2}
		entry.ValueName = m.Value

	case "NMap":
		var m rawNMapV13
		if err := codec.As(e.Type.Value, &m); err != nil {
			return nil, err
		}
		if len(m.Keys) != len(m.Hashers) {
			return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
				ScaleType(prefix+"."+e.Name).
				Detail("%d hashers for %d keys", len(m.Hashers), len(m.Keys)).
				Build()
		}
		hashers = m.Hashers
		entry.KeyNames = m.Keys
		entry.ValueName = m.Value

	default:
		return nil, errors.Unsupported(errors.PhaseMetadata, "storage entry type "+e.Type.Name)
	}

	var err error
	if entry.Hashers, err = parseHashers(hashers); err != nil {
		return nil, err
	}
	entry.Value = bestEffort(rv, entry.ValueName)
	for _, k := range entry.KeyNames {
		entry.Keys = append(entry.Keys, bestEffort(rv, k))
	}
	return entry, nil
}

// bestEffort resolves a legacy type name, returning nil when the registry
// does not know it.
func bestEffort(rv *registry.Resolver, name string) *types.TypeDef {
	td, err := rv.Resolve(name)
	if err != nil {
		Logger().Debug("unresolved legacy type", zap.String("type", name), zap.Error(err))
		return nil
	}
	return td
}
