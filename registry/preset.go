package registry

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/scale-codec/errors"
)

// embedded type presets
//
//go:embed presets/*.yaml
var presetFS embed.FS

// Preset is a YAML type catalogue:
//
//	types:
//	  Balance: u128                     # alias
//	  AccountId: {type: newtype, of: "[u8; 32]"}
//	  AccountInfo:
//	    type: struct
//	    type_mapping: [[nonce, Index], [data, AccountData]]
//	  Phase:
//	    type: enum
//	    type_mapping: [[ApplyExtrinsic, u32], [Finalization, "Null"]]
//	  Pays: {type: enum, value_list: ["Yes", "No"]}
//	versioning:
//	  - runtime_range: [1, 100]          # null upper bound is open ended
//	    types:
//	      Balance: u64
type Preset struct {
	Types      map[string]any   `mapstructure:"types"`
	Versioning []VersionedTypes `mapstructure:"versioning"`
}

type VersionedTypes struct {
	RuntimeRange []*uint32     `mapstructure:"runtime_range"`
	Types        map[string]any `mapstructure:"types"`
}

type typeSpec struct {
	Type        string     `mapstructure:"type"`
	Of          string     `mapstructure:"of"`
	TypeMapping [][]string `mapstructure:"type_mapping"`
	ValueList   []string   `mapstructure:"value_list"`
}

// ParsePreset decodes a YAML preset document.
func ParsePreset(data []byte) (*Preset, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.ParseFailed("preset", err)
	}
	var p Preset
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &p,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, errors.ParseFailed("preset", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.ParseFailed("preset", err)
	}
	return &p, nil
}

// LoadPreset registers every type of a YAML preset. Nothing is registered
// if any entry is invalid.
func (r *Registry) LoadPreset(data []byte) error {
	p, err := ParsePreset(data)
	if err != nil {
		return err
	}
	return r.Apply(p)
}

// LoadPresetFile reads and registers a preset from disk.
func (r *Registry) LoadPresetFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return errors.ParseFailed("preset file "+name, err)
	}
	return r.LoadPreset(data)
}

// LoadNamedPreset registers one of the embedded presets.
func (r *Registry) LoadNamedPreset(name string) error {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return errors.New(errors.PhaseParse, errors.KindUnknownType).
			Detail("unknown preset %q", name).
			Cause(err).
			Build()
	}
	return r.LoadPreset(data)
}

// PresetNames lists the embedded presets.
func PresetNames() []string {
	entries, _ := presetFS.ReadDir("presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

type versionedDef struct {
	to   *uint32
	def  Def
	name string
	from uint32
}

// Apply registers a decoded preset atomically.
func (r *Registry) Apply(p *Preset) error {
	defs := make(map[string]Def, len(p.Types))
	for name, v := range p.Types {
		key, def, err := presetEntry(name, v)
		if err != nil {
			return err
		}
		defs[key] = def
	}

	var versioned []versionedDef
	for i, vt := range p.Versioning {
		if len(vt.RuntimeRange) != 2 || vt.RuntimeRange[0] == nil {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("versioning[%d]: runtime_range must be [from, to|null]", i).
				Build()
		}
		from, to := *vt.RuntimeRange[0], vt.RuntimeRange[1]
		if to != nil && *to < from {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("versioning[%d]: empty range [%d, %d]", i, from, *to).
				Build()
		}
		// deterministic registration order keeps tie-breaking stable
		names := make([]string, 0, len(vt.Types))
		for name := range vt.Types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			key, def, err := presetEntry(name, vt.Types[name])
			if err != nil {
				return err
			}
			versioned = append(versioned, versionedDef{name: key, def: def, from: from, to: to})
		}
	}

	r.mu.Lock()
	for key, def := range defs {
		r.defs[key] = def
	}
	for _, v := range versioned {
		r.seq++
		r.overrides[v.name] = append(r.overrides[v.name], override{def: v.def, from: v.from, to: v.to, seq: r.seq})
	}
	r.gen++
	r.mu.Unlock()

	Logger().Debug("loaded preset",
		zap.Int("types", len(defs)),
		zap.Int("versioned", len(versioned)))
	return nil
}

func presetEntry(name string, v any) (string, Def, error) {
	def, err := specDef(v)
	if err != nil {
		return "", Def{}, errors.New(errors.PhaseParse, errors.KindInvalidData).
			ScaleType(name).
			Detail("invalid preset entry").
			Cause(err).
			Build()
	}
	key, err := checkEntry(name, def)
	if err != nil {
		return "", Def{}, err
	}
	return key, def, nil
}

func specDef(v any) (Def, error) {
	if s, ok := v.(string); ok {
		return Def{Alias: s}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Def{}, fmt.Errorf("expected string or mapping, got %T", v)
	}

	var spec typeSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return Def{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Def{}, err
	}

	switch spec.Type {
	case "newtype":
		if spec.Of == "" {
			return Def{}, fmt.Errorf("newtype needs 'of'")
		}
		return Def{NewType: spec.Of}, nil

	case "struct":
		fields := make([]Field, 0, len(spec.TypeMapping))
		for i, pair := range spec.TypeMapping {
			if len(pair) != 2 {
				return Def{}, fmt.Errorf("type_mapping[%d]: want [name, type]", i)
			}
			fields = append(fields, Field{Name: pair[0], Type: pair[1]})
		}
		return Def{Struct: fields}, nil

	case "enum":
		if len(spec.ValueList) > 0 {
			variants := make([]Variant, len(spec.ValueList))
			for i, name := range spec.ValueList {
				variants[i] = Variant{Name: name}
			}
			return Def{Enum: variants}, nil
		}
		variants := make([]Variant, 0, len(spec.TypeMapping))
		for i, pair := range spec.TypeMapping {
			if len(pair) != 2 {
				return Def{}, fmt.Errorf("type_mapping[%d]: want [name, type]", i)
			}
			variants = append(variants, Variant{Name: pair[0], Type: pair[1]})
		}
		return Def{Enum: variants}, nil
	}

	return Def{}, fmt.Errorf("unknown definition type %q", spec.Type)
}
