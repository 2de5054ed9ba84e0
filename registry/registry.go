package registry

import (
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry/internal/parse"
	"github.com/wippyai/scale-codec/types"
)

// Def is an unresolved registry entry. Exactly one form is set.
type Def struct {
	// Type is a ready definition, returned as is.
	Type *types.TypeDef
	// Alias redirects to another type expression. The alias resolves to the
	// identical definition as its target.
	Alias string
	// NewType gives the layout of another expression a distinct name, as
	// AccountId does for [u8; 32].
	NewType string
	Struct  []Field
	Enum    []Variant
}

// Field is a named struct member given as a type expression.
type Field struct {
	Name string
	Type string
}

// Variant is an enum case indexed by position. An empty Type, "Null" or
// "()" means no payload.
type Variant struct {
	Name string
	Type string
}

func (d Def) forms() int {
	n := 0
	if d.Type != nil {
		n++
	}
	if d.Alias != "" {
		n++
	}
	if d.NewType != "" {
		n++
	}
	if d.Struct != nil {
		n++
	}
	if d.Enum != nil {
		n++
	}
	return n
}

type override struct {
	to   *uint32
	def  Def
	seq  uint64
	from uint32
}

func (o *override) contains(version uint32) bool {
	return o.from <= version && (o.to == nil || version <= *o.to)
}

func (o *override) span() uint64 {
	if o.to == nil {
		return math.MaxUint64
	}
	return uint64(*o.to) - uint64(o.from)
}

// Registry maps type names to definitions, optionally overridden for ranges
// of runtime spec versions. It is safe for concurrent use; registration
// takes a write lock and invalidates resolver caches.
type Registry struct {
	defs      map[string]Def
	overrides map[string][]override
	resolvers map[uint32]*Resolver
	base      *Resolver
	mu        sync.RWMutex
	rmu       sync.Mutex
	gen       uint64
	seq       uint64
}

func New() *Registry {
	return &Registry{
		defs:      make(map[string]Def),
		overrides: make(map[string][]override),
		resolvers: make(map[uint32]*Resolver),
	}
}

// Register adds or replaces the unversioned definition of name.
func (r *Registry) Register(name string, def Def) error {
	key, err := checkEntry(name, def)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.defs[key] = def
	r.gen++
	r.mu.Unlock()

	Logger().Debug("registered type", zap.String("name", key))
	return nil
}

func (r *Registry) RegisterType(name string, td *types.TypeDef) error {
	return r.Register(name, Def{Type: td})
}

func (r *Registry) RegisterAlias(name, target string) error {
	return r.Register(name, Def{Alias: target})
}

func (r *Registry) RegisterStruct(name string, fields ...Field) error {
	if fields == nil {
		fields = []Field{}
	}
	return r.Register(name, Def{Struct: fields})
}

func (r *Registry) RegisterEnum(name string, variants ...Variant) error {
	if variants == nil {
		variants = []Variant{}
	}
	return r.Register(name, Def{Enum: variants})
}

// RegisterVersioned adds an override of name for spec versions in
// [from, to]. A nil to leaves the range open ended. When ranges overlap the
// narrowest one wins, and among equal spans the latest registration.
func (r *Registry) RegisterVersioned(name string, def Def, from uint32, to *uint32) error {
	key, err := checkEntry(name, def)
	if err != nil {
		return err
	}
	if to != nil && *to < from {
		return errors.New(errors.PhaseRegister, errors.KindInvalidData).
			ScaleType(key).
			Detail("version range [%d, %d] is empty", from, *to).
			Build()
	}

	r.mu.Lock()
	r.seq++
	r.overrides[key] = append(r.overrides[key], override{def: def, from: from, to: to, seq: r.seq})
	r.gen++
	r.mu.Unlock()

	Logger().Debug("registered versioned type",
		zap.String("name", key),
		zap.Uint32("from", from),
		zap.Any("to", to))
	return nil
}

func checkEntry(name string, def Def) (string, error) {
	key := canonicalName(name)
	if key == "" {
		return "", errors.New(errors.PhaseRegister, errors.KindInvalidData).
			Detail("empty type name").
			Build()
	}
	if n := def.forms(); n != 1 {
		return "", errors.New(errors.PhaseRegister, errors.KindInvalidData).
			ScaleType(key).
			Detail("definition must have exactly one form, has %d", n).
			Build()
	}
	return key, nil
}

// canonicalName normalises a registered name so lookups match however the
// name was spelled.
func canonicalName(name string) string {
	n := parse.Normalize(name)
	if e, err := parse.Parse(n); err == nil {
		return e.String()
	}
	return n
}

// Clone returns an independent registry with the same definitions.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := New()
	for k, v := range r.defs {
		c.defs[k] = v
	}
	for k, v := range r.overrides {
		c.overrides[k] = append([]override(nil), v...)
	}
	c.seq = r.seq
	return c
}

// Has reports whether name has an unversioned or versioned definition.
func (r *Registry) Has(name string) bool {
	key := canonicalName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[key]
	return ok || len(r.overrides[key]) > 0
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.defs)+len(r.overrides))
	for n := range r.defs {
		names = append(names, n)
	}
	for n := range r.overrides {
		if _, ok := r.defs[n]; !ok {
			names = append(names, n)
		}
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string, version uint32, versioned bool) (Def, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if versioned {
		var best *override
		list := r.overrides[name]
		for i := range list {
			o := &list[i]
			if !o.contains(version) {
				continue
			}
			if best == nil || o.span() < best.span() || (o.span() == best.span() && o.seq > best.seq) {
				best = o
			}
		}
		if best != nil {
			return best.def, true
		}
	}
	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Resolver returns the shared resolver bound to a spec version.
func (r *Registry) Resolver(version uint32) *Resolver {
	r.rmu.Lock()
	defer r.rmu.Unlock()
	if rv, ok := r.resolvers[version]; ok {
		return rv
	}
	rv := newResolver(r, version, true)
	r.resolvers[version] = rv
	return rv
}

// Unversioned returns the shared resolver that ignores versioned overrides.
func (r *Registry) Unversioned() *Resolver {
	r.rmu.Lock()
	defer r.rmu.Unlock()
	if r.base == nil {
		r.base = newResolver(r, 0, false)
	}
	return r.base
}

// Resolve resolves expr for a spec version.
func (r *Registry) Resolve(expr string, version uint32) (*types.TypeDef, error) {
	return r.Resolver(version).Resolve(expr)
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns a process-wide registry loaded with the embedded default
// preset. Prefer explicit registries; this exists for tools and examples.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		if err := defaultRegistry.LoadNamedPreset("default"); err != nil {
			panic("registry: embedded default preset: " + err.Error())
		}
	})
	return defaultRegistry
}
