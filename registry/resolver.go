package registry

import (
	"strings"
	"sync"

	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/registry/internal/parse"
	"github.com/wippyai/scale-codec/types"
)

// Resolver resolves type expressions against a registry for one spec
// version. Results are cached until the registry changes, so repeated
// resolutions return identical definitions.
type Resolver struct {
	reg       *Registry
	cache     map[string]*types.TypeDef
	added     []string // cache keys stored by the current Resolve call
	mu        sync.Mutex
	gen       uint64
	version   uint32
	versioned bool
}

func newResolver(reg *Registry, version uint32, versioned bool) *Resolver {
	return &Resolver{
		reg:       reg,
		version:   version,
		versioned: versioned,
		cache:     make(map[string]*types.TypeDef),
		gen:       reg.generation(),
	}
}

// Version returns the spec version and whether overrides apply.
func (rv *Resolver) Version() (uint32, bool) {
	return rv.version, rv.versioned
}

func (rv *Resolver) Registry() *Registry {
	return rv.reg
}

// Resolve returns the definition of a type expression such as "u32",
// "Compact<Balance>", "(u8, Vec<u8>)" or "[u8; 32]".
func (rv *Resolver) Resolve(expr string) (*types.TypeDef, error) {
	rv.mu.Lock()
	defer rv.mu.Unlock()

	if g := rv.reg.generation(); g != rv.gen {
		rv.cache = make(map[string]*types.TypeDef)
		rv.gen = g
	}
	rv.added = rv.added[:0]
	return rv.resolveString(expr, nil)
}

func (rv *Resolver) store(key string, td *types.TypeDef) {
	rv.cache[key] = td
	rv.added = append(rv.added, key)
}

// rollback drops cache entries stored since mark, so nothing keeps
// pointing at a placeholder whose resolution failed.
func (rv *Resolver) rollback(mark int) {
	for _, key := range rv.added[mark:] {
		delete(rv.cache, key)
	}
	rv.added = rv.added[:mark]
}

// MustResolve is Resolve for expressions known to be valid.
func (rv *Resolver) MustResolve(expr string) *types.TypeDef {
	td, err := rv.Resolve(expr)
	if err != nil {
		panic(err)
	}
	return td
}

func (rv *Resolver) resolveString(expr string, chain []string) (*types.TypeDef, error) {
	e, err := parse.Parse(parse.Normalize(expr))
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
			ScaleType(expr).
			Detail("malformed type expression").
			Cause(err).
			Build()
	}
	return rv.resolveExpr(e, chain)
}

func (rv *Resolver) resolveExpr(e *parse.Expr, chain []string) (*types.TypeDef, error) {
	key := e.String()
	if td, ok := rv.cache[key]; ok {
		return td, nil
	}
	td, err := rv.build(e, chain)
	if err != nil {
		return nil, err
	}
	rv.store(key, td)
	return td, nil
}

func (rv *Resolver) resolveAll(list []*parse.Expr, chain []string) ([]*types.TypeDef, error) {
	out := make([]*types.TypeDef, len(list))
	for i, a := range list {
		td, err := rv.resolveExpr(a, chain)
		if err != nil {
			return nil, err
		}
		out[i] = td
	}
	return out, nil
}

func (rv *Resolver) build(e *parse.Expr, chain []string) (*types.TypeDef, error) {
	switch e.Kind {
	case parse.Tuple:
		elems, err := rv.resolveAll(e.Args, chain)
		if err != nil {
			return nil, err
		}
		return types.Tuple(elems...), nil
	case parse.Array:
		elem, err := rv.resolveExpr(e.Elem, chain)
		if err != nil {
			return nil, err
		}
		return types.Array(elem, e.Len), nil
	}

	key := e.String()
	if def, ok := rv.reg.lookup(key, rv.version, rv.versioned); ok {
		return rv.buildDef(key, def, chain)
	}
	if len(e.Args) > 0 {
		if td, ok, err := rv.generic(e, chain); ok {
			return td, err
		}
	}
	if def, ok := rv.reg.lookup(e.Name, rv.version, rv.versioned); ok {
		return rv.buildDef(e.Name, def, chain)
	}
	if len(e.Args) == 0 {
		if td, ok := builtin(e.Name); ok {
			return td, nil
		}
	}
	// Path-qualified names fall back to their last segment.
	if i := strings.LastIndex(e.Name, "::"); i >= 0 {
		short := &parse.Expr{Kind: parse.Named, Name: e.Name[i+2:], Args: e.Args}
		return rv.resolveExpr(short, chain)
	}
	return nil, errors.UnknownType(key)
}

func builtin(name string) (*types.TypeDef, bool) {
	if k, ok := types.PrimitiveByName(name); ok {
		return types.Primitive(k), true
	}
	switch name {
	case "String", "Text":
		return types.Primitive(types.KindStr), true
	case "Bytes":
		return types.Bytes(), true
	case "BitVec":
		return types.BitSequence(), true
	case "Null":
		return types.Null(), true
	}
	return nil, false
}

// generic resolves the built-in generic names. ok is false when e.Name is
// not one of them.
func (rv *Resolver) generic(e *parse.Expr, chain []string) (*types.TypeDef, bool, error) {
	var want int
	switch e.Name {
	case "Compact", "Vec", "VecDeque", "BTreeSet", "BoundedVec", "WeakBoundedVec", "BoundedBTreeSet",
		"Option", "Box", "Cow":
		want = 1
	case "BTreeMap", "HashMap", "BoundedBTreeMap", "Result":
		want = 2
	case "BitVec":
		return types.BitSequence(), true, nil
	case "PhantomData":
		return types.Null(), true, nil
	default:
		return nil, false, nil
	}

	// bounded collections carry a trailing bound parameter
	if len(e.Args) < want || (len(e.Args) > want && !strings.HasPrefix(e.Name, "Bounded") && e.Name != "WeakBoundedVec") {
		return nil, true, errors.New(errors.PhaseResolve, errors.KindInvalidData).
			ScaleType(e.String()).
			Detail("%s takes %d type arguments, got %d", e.Name, want, len(e.Args)).
			Build()
	}
	args, err := rv.resolveAll(e.Args[:want], chain)
	if err != nil {
		return nil, true, err
	}

	switch e.Name {
	case "Compact":
		return types.Compact(args[0]), true, nil
	case "Option":
		return types.Option(args[0]), true, nil
	case "Box", "Cow":
		return args[0], true, nil
	case "BTreeMap", "HashMap", "BoundedBTreeMap":
		return types.Map(args[0], args[1]), true, nil
	case "Result":
		return types.Union(
			types.Variant{Name: "Ok", Index: 0, Type: payload(args[0])},
			types.Variant{Name: "Err", Index: 1, Type: payload(args[1])},
		), true, nil
	}
	return types.Sequence(args[0]), true, nil
}

// payload maps the unit type to "no payload".
func payload(td *types.TypeDef) *types.TypeDef {
	if td.Kind == types.KindNull {
		return nil
	}
	return td
}

func (rv *Resolver) buildDef(name string, def Def, chain []string) (*types.TypeDef, error) {
	for _, n := range chain {
		if n == name {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnknownType).
				ScaleType(name).
				Detail("alias cycle %s -> %s", strings.Join(chain, " -> "), name).
				Build()
		}
	}
	chain = append(chain[:len(chain):len(chain)], name)

	switch {
	case def.Type != nil:
		return def.Type, nil

	case def.Alias != "":
		return rv.resolveString(def.Alias, chain)

	case def.NewType != "":
		inner, err := rv.resolveString(def.NewType, chain)
		if err != nil {
			return nil, err
		}
		return inner.Named(name), nil

	case def.Struct != nil:
		mark := len(rv.added)
		p := types.Placeholder(name)
		rv.store(name, p)
		fields := make([]types.Field, len(def.Struct))
		for i, f := range def.Struct {
			td, err := rv.resolveString(f.Type, chain)
			if err != nil {
				rv.rollback(mark)
				return nil, err
			}
			fields[i] = types.Field{Name: f.Name, Type: td, TypeName: f.Type}
		}
		p.Fill(types.Struct(fields...))
		return p, nil

	case def.Enum != nil:
		if len(def.Enum) > 256 {
			return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
				ScaleType(name).
				Detail("enum has %d variants, at most 256 fit a one byte index", len(def.Enum)).
				Build()
		}
		mark := len(rv.added)
		p := types.Placeholder(name)
		rv.store(name, p)
		variants := make([]types.Variant, len(def.Enum))
		for i, v := range def.Enum {
			variants[i] = types.Variant{Name: v.Name, Index: uint8(i)}
			if v.Type == "" || v.Type == "Null" || v.Type == "()" {
				continue
			}
			td, err := rv.resolveString(v.Type, chain)
			if err != nil {
				rv.rollback(mark)
				return nil, err
			}
			variants[i].Type = payload(td)
		}
		p.Fill(types.Union(variants...))
		return p, nil
	}

	return nil, errors.UnknownType(name)
}
