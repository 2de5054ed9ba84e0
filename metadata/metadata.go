package metadata

import (
	"encoding/binary"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/extrinsic"
	"github.com/wippyai/scale-codec/metadata/internal/arena"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/storage"
	"github.com/wippyai/scale-codec/types"
)

// Metadata is a decoded runtime metadata blob. The zero value is not
// usable; obtain one from Decode.
type Metadata struct {
	resolver *registry.Resolver
	arena    *arena.Arena
	callPH   *types.TypeDef

	callOnce  sync.Once
	callDef   *types.TypeDef
	callErr   error
	eventOnce sync.Once
	eventDef  *types.TypeDef
	eventErr  error
	xtOnce    sync.Once
	xtDef     *types.TypeDef

	address   *types.TypeDef
	signature *types.TypeDef

	Extrinsic ExtrinsicInfo
	Pallets   []*Pallet
	// Types is the portable registry of v14 metadata, empty for v13.
	Types       []PortableType
	RuntimeType uint32
	Version     uint8
}

// ExtrinsicInfo describes the extrinsic format the runtime accepts.
type ExtrinsicInfo struct {
	SignedExtensions []SignedExtension
	Type             uint32
	Version          uint8
}

type SignedExtension struct {
	Type             *types.TypeDef
	AdditionalSigned *types.TypeDef
	Identifier       string
}

type Pallet struct {
	Calls         []*Function
	Events        []*Event
	Errors        []*ErrorInfo
	Constants     []*Constant
	Storage       []*StorageEntry
	Name          string
	StoragePrefix string
	Index         uint8

	callType  *types.TypeDef
	eventType *types.TypeDef
}

// Function is a dispatchable call of a pallet.
type Function struct {
	Name  string
	Args  []Arg
	Docs  []string
	Index uint8
}

type Arg struct {
	Type     *types.TypeDef
	Name     string
	TypeName string
}

type Event struct {
	Name  string
	Args  []Arg
	Docs  []string
	Index uint8
}

type ErrorInfo struct {
	Name  string
	Docs  []string
	Index uint8
}

// Constant is a pallet constant. Type is nil for legacy metadata whose
// type name the registry could not resolve.
type Constant struct {
	Type     *types.TypeDef
	Name     string
	TypeName string
	Value    []byte
	Docs     []string
}

// StorageEntry describes one storage item. Keys holds one definition per
// hasher; it is empty for plain values.
type StorageEntry struct {
	Value     *types.TypeDef
	Name      string
	Prefix    string
	Modifier  string
	ValueName string
	Keys      []*types.TypeDef
	KeyNames  []string
	Hashers   []storage.Hasher
	Default   []byte
	Docs      []string
}

// Decode parses a metadata blob: the "meta" magic, a version byte and the
// versioned body. Versions 14 and 13 are supported. rv resolves the legacy
// type names of v13 metadata and the signer types when v14 metadata does
// not name them; a nil rv uses the default registry.
func Decode(data []byte, rv *registry.Resolver) (*Metadata, error) {
	if rv == nil {
		rv = registry.Default().Unversioned()
	}
	b := buffer.New(data)
	head, err := b.Take(5)
	if err != nil {
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Detail("metadata blob is %d bytes", len(data)).
			Cause(err).
			Build()
	}
	if magic := binary.LittleEndian.Uint32(head); magic != Magic {
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(magic).
			Detail("bad metadata magic 0x%08x", magic).
			Build()
	}

	version := head[4]
	var m *Metadata
	switch version {
	case 14:
		m, err = decodeV14(b, rv)
	case 13:
		m, err = decodeV13(b, rv)
	default:
		return nil, errors.Unsupported(errors.PhaseMetadata, "metadata version "+itoa(version))
	}
	if err != nil {
		return nil, err
	}
	if b.Remaining() > 0 {
		return nil, errors.RemainingBytes(b.Remaining(), b.PeekAll())
	}

	Logger().Debug("decoded metadata",
		zap.Uint8("version", version),
		zap.Int("pallets", len(m.Pallets)),
		zap.Int("types", len(m.Types)))
	return m, nil
}

// DecodeHex is Decode for a 0x-prefixed hex string.
func DecodeHex(s string, rv *registry.Resolver) (*Metadata, error) {
	data, err := buffer.DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return Decode(data, rv)
}

func decodeBody(b *buffer.Buffer, schema *types.TypeDef, out any) error {
	v, err := codec.DecodeFrom(b, schema)
	if err != nil {
		return errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			ScaleType(schema.Name).
			Detail("decode metadata body").
			Cause(err).
			Build()
	}
	return codec.As(v, out)
}

func (m *Metadata) ready() error {
	if m == nil || m.resolver == nil {
		return errors.NotInitialized(errors.PhaseMetadata, "metadata")
	}
	return nil
}

// Pallet finds a pallet by name.
func (m *Metadata) Pallet(name string) (*Pallet, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	for _, p := range m.Pallets {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
		Value(name).
		Detail("unknown pallet %q", name).
		Build()
}

// PalletByIndex finds a pallet by its call index.
func (m *Metadata) PalletByIndex(index uint8) (*Pallet, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	for _, p := range m.Pallets {
		if p.Index == index {
			return p, nil
		}
	}
	return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
		Value(index).
		Detail("no pallet with index %d", index).
		Build()
}

// Call finds a function of the pallet by name.
func (p *Pallet) Call(name string) (*Function, bool) {
	for _, f := range p.Calls {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func (p *Pallet) Constant(name string) (*Constant, bool) {
	for _, c := range p.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (p *Pallet) StorageEntry(name string) (*StorageEntry, bool) {
	for _, s := range p.Storage {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// CallIndex returns the pallet and call indices of pallet.call.
func (m *Metadata) CallIndex(pallet, call string) (uint8, uint8, error) {
	p, err := m.Pallet(pallet)
	if err != nil {
		return 0, 0, err
	}
	f, ok := p.Call(call)
	if !ok {
		return 0, 0, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(call).
			Detail("pallet %s has no call %q", pallet, call).
			Build()
	}
	return p.Index, f.Index, nil
}

// Constant decodes the value of a pallet constant.
func (m *Metadata) Constant(pallet, name string) (any, error) {
	c, err := m.constant(pallet, name)
	if err != nil {
		return nil, err
	}
	td := c.Type
	if td == nil {
		if td, err = m.resolver.Resolve(c.TypeName); err != nil {
			return nil, err
		}
	}
	return codec.Decode(td, c.Value)
}

func (m *Metadata) constant(pallet, name string) (*Constant, error) {
	p, err := m.Pallet(pallet)
	if err != nil {
		return nil, err
	}
	c, ok := p.Constant(name)
	if !ok {
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(name).
			Detail("pallet %s has no constant %q", pallet, name).
			Build()
	}
	return c, nil
}

// StorageEntry finds a storage item.
func (m *Metadata) StorageEntry(pallet, name string) (*StorageEntry, error) {
	p, err := m.Pallet(pallet)
	if err != nil {
		return nil, err
	}
	s, ok := p.StorageEntry(name)
	if !ok {
		return nil, errors.New(errors.PhaseMetadata, errors.KindInvalidData).
			Value(name).
			Detail("pallet %s has no storage item %q", pallet, name).
			Build()
	}
	return s, nil
}

// Key builds the storage key of the entry. Each key value is encoded with
// its key type and hashed with the matching hasher; fewer keys than hashers
// yields a prefix for iteration.
func (s *StorageEntry) Key(c *codec.Codec, keys ...any) ([]byte, error) {
	if len(keys) > len(s.Keys) {
		return nil, errors.EncodeConstraint([]string{s.Name},
			"storage item takes %d keys, got %d", len(s.Keys), len(keys))
	}
	if c == nil {
		c = codec.New()
	}
	encoded := make([][]byte, len(keys))
	for i, k := range keys {
		td := s.Keys[i]
		if td == nil {
			return nil, errors.UnknownType(s.KeyNames[i])
		}
		data, err := c.Encode(td, k)
		if err != nil {
			return nil, err
		}
		encoded[i] = data
	}
	return storage.Key(s.Prefix, s.Name, s.Hashers, encoded...)
}

// CallTypeDef returns the union of all pallet calls, keyed by pallet name
// and index.
func (m *Metadata) CallTypeDef() (*types.TypeDef, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	m.callOnce.Do(func() {
		m.callDef, m.callErr = m.buildCallDef()
	})
	return m.callDef, m.callErr
}

func (m *Metadata) buildCallDef() (*types.TypeDef, error) {
	if m.callPH != nil {
		return m.callPH, nil
	}
	var variants []types.Variant
	for _, p := range m.Pallets {
		if p.callType != nil {
			variants = append(variants, types.Variant{Name: p.Name, Index: p.Index, Type: p.callType})
		}
	}
	td, err := types.NewUnion(variants...)
	if err != nil {
		return nil, err
	}
	return td.Named("Call"), nil
}

// EventTypeDef returns the union of all pallet events.
func (m *Metadata) EventTypeDef() (*types.TypeDef, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	m.eventOnce.Do(func() {
		m.eventDef, m.eventErr = m.buildEventDef()
	})
	return m.eventDef, m.eventErr
}

func (m *Metadata) buildEventDef() (*types.TypeDef, error) {
	var variants []types.Variant
	for _, p := range m.Pallets {
		td := p.eventType
		if td == nil && p.Events != nil {
			events := make([]types.Variant, len(p.Events))
			for i, e := range p.Events {
				elems := make([]*types.TypeDef, len(e.Args))
				for j, a := range e.Args {
					if a.Type == nil {
						return nil, errors.UnknownType(a.TypeName)
					}
					elems[j] = a.Type
				}
				events[i] = types.Variant{Name: e.Name, Index: e.Index}
				if len(elems) == 1 {
					events[i].Type = elems[0]
				} else if len(elems) > 1 {
					events[i].Type = types.Tuple(elems...)
				}
			}
			var err error
			if td, err = types.NewUnion(events...); err != nil {
				return nil, err
			}
		}
		if td != nil {
			variants = append(variants, types.Variant{Name: p.Name, Index: p.Index, Type: td})
		}
	}
	td, err := types.NewUnion(variants...)
	if err != nil {
		return nil, err
	}
	return td.Named("Event"), nil
}

// SignerTypeDefs returns the address and signature types of signed
// extrinsics.
func (m *Metadata) SignerTypeDefs() (address, signature *types.TypeDef, err error) {
	if err := m.ready(); err != nil {
		return nil, nil, err
	}
	address, signature = m.address, m.signature
	if address == nil {
		if address, err = m.resolver.Resolve("Address"); err != nil {
			return nil, nil, err
		}
	}
	if signature == nil {
		if signature, err = m.resolver.Resolve("ExtrinsicSignature"); err != nil {
			return nil, nil, err
		}
	}
	return address, signature, nil
}

func (m *Metadata) ExtrinsicVersion() uint8 {
	return m.Extrinsic.Version
}

// ExtrinsicTypeDef returns a definition that encodes and decodes complete
// extrinsics of this runtime.
func (m *Metadata) ExtrinsicTypeDef() (*types.TypeDef, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	m.xtOnce.Do(func() {
		m.xtDef = extrinsic.New(m, nil).TypeDef()
	})
	return m.xtDef, nil
}

// Lookup returns the definition of a portable type id.
func (m *Metadata) Lookup(id uint32) (*types.TypeDef, bool) {
	if m.arena == nil {
		return nil, false
	}
	td, err := m.arena.Ref(id)
	return td, err == nil
}

// RegisterTypes makes the runtime's types available by name in reg:
// every portable id as "scale_info::<id>", each path that names exactly
// one type, and Call, Event, Extrinsic and Era.
func (m *Metadata) RegisterTypes(reg *registry.Registry) error {
	if err := m.ready(); err != nil {
		return err
	}
	if m.arena != nil {
		paths := make(map[string][]uint32)
		for _, pt := range m.Types {
			td, _ := m.arena.Ref(pt.ID)
			if err := reg.RegisterType("scale_info::"+itoa32(pt.ID), td); err != nil {
				return err
			}
			if len(pt.Type.Path) > 0 {
				name := joinPath(pt.Type.Path)
				paths[name] = append(paths[name], pt.ID)
			}
		}
		for name, ids := range paths {
			if len(ids) != 1 {
				continue
			}
			td, _ := m.arena.Ref(ids[0])
			if err := reg.RegisterType(name, td); err != nil {
				return err
			}
		}
	}

	call, err := m.CallTypeDef()
	if err != nil {
		return err
	}
	if err := reg.RegisterType("Call", call); err != nil {
		return err
	}
	if event, err := m.EventTypeDef(); err == nil {
		if err := reg.RegisterType("Event", event); err != nil {
			return err
		}
	}
	return extrinsic.New(m, nil).Register(reg)
}

var _ extrinsic.Runtime = (*Metadata)(nil)
