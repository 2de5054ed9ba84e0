package testmeta

import (
	"github.com/wippyai/scale-codec/metadata"
)

// Module describes a v13 module. Nil Calls or Events leave them out.
type Module struct {
	Name      string
	Prefix    string
	Storage   []map[string]any
	Calls     []Function
	Events    []LegacyEvent
	Constants []LegacyConstant
	Errors    []string
	Index     uint8
}

type Function struct {
	Name string
	Args []Arg
}

type Arg struct {
	Name string
	Type string
}

type LegacyEvent struct {
	Name string
	Args []string
}

type LegacyConstant struct {
	Name  string
	Type  string
	Value string
}

func LegacyPlain(name, value string) map[string]any {
	return storageEntry(name, map[string]any{"Plain": value})
}

func LegacyMap(name, hasher, key, value string) map[string]any {
	return storageEntry(name, map[string]any{"Map": map[string]any{
		"hasher": hasher,
		"key":    key,
		"value":  value,
		"unused": false,
	}})
}

func LegacyDoubleMap(name, hasher, key1, key2, value, key2Hasher string) map[string]any {
	return storageEntry(name, map[string]any{"DoubleMap": map[string]any{
		"hasher":      hasher,
		"key1":        key1,
		"key2":        key2,
		"value":       value,
		"key2_hasher": key2Hasher,
	}})
}

func LegacyNMap(name string, keys, hashers []string, value string) map[string]any {
	return storageEntry(name, map[string]any{"NMap": map[string]any{
		"keys":    strs(keys),
		"hashers": strs(hashers),
		"value":   value,
	}})
}

func (m Module) value() map[string]any {
	var st any
	if m.Storage != nil {
		st = map[string]any{"prefix": m.Prefix, "entries": maps(m.Storage)}
	}

	var calls any
	if m.Calls != nil {
		list := make([]any, len(m.Calls))
		for i, f := range m.Calls {
			args := make([]any, len(f.Args))
			for j, a := range f.Args {
				args[j] = map[string]any{"name": a.Name, "type": a.Type}
			}
			list[i] = map[string]any{"name": f.Name, "args": args, "docs": []any{}}
		}
		calls = list
	}

	var events any
	if m.Events != nil {
		list := make([]any, len(m.Events))
		for i, e := range m.Events {
			list[i] = map[string]any{"name": e.Name, "args": strs(e.Args), "docs": []any{}}
		}
		events = list
	}

	constants := make([]any, len(m.Constants))
	for i, c := range m.Constants {
		constants[i] = map[string]any{"name": c.Name, "type": c.Type, "value": c.Value, "docs": []any{}}
	}
	errs := make([]any, len(m.Errors))
	for i, e := range m.Errors {
		errs[i] = map[string]any{"name": e, "docs": []any{}}
	}

	return map[string]any{
		"name":      m.Name,
		"storage":   st,
		"calls":     calls,
		"events":    events,
		"constants": constants,
		"errors":    errs,
		"index":     m.Index,
	}
}

// V13 encodes a complete legacy metadata blob.
func V13(modules []Module, xtVersion uint8, signedExtensions []string) ([]byte, error) {
	mods := make([]any, len(modules))
	for i, m := range modules {
		mods[i] = m.value()
	}
	body := map[string]any{
		"modules": mods,
		"extrinsic": map[string]any{
			"version":           xtVersion,
			"signed_extensions": strs(signedExtensions),
		},
	}
	return blob(13, metadata.V13Schema(), body)
}
