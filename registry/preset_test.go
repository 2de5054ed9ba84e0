package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	scaleerrors "github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/types"
)

const samplePreset = `
types:
  Balance: u128
  AccountId: {type: newtype, of: "[u8; 32]"}
  AccountId32: AccountId
  Transfer:
    type: struct
    type_mapping:
      - [dest, AccountId]
      - [value, Compact<Balance>]
  Phase:
    type: enum
    type_mapping:
      - [ApplyExtrinsic, u32]
      - [Finalization, "Null"]
  Pays:
    type: enum
    value_list: ["Yes", "No"]
versioning:
  - runtime_range: [1, 100]
    types:
      Balance: u64
  - runtime_range: [50, null]
    types:
      Pays: {type: enum, value_list: [Never, "Yes", "No"]}
`

func TestLoadPreset(t *testing.T) {
	reg := New()
	if err := reg.LoadPreset([]byte(samplePreset)); err != nil {
		t.Fatal(err)
	}

	rv := reg.Unversioned()

	transfer, err := rv.Resolve("Transfer")
	if err != nil {
		t.Fatal(err)
	}
	if transfer.Kind != types.KindStruct || len(transfer.Fields) != 2 {
		t.Fatalf("Transfer = %s", transfer)
	}
	dest, _ := transfer.FieldByName("dest")
	if dest.Type.Name != "AccountId" || dest.Type.Kind != types.KindArray || dest.Type.Len != 32 {
		t.Errorf("dest = %+v", dest.Type)
	}
	if dest.TypeName != "AccountId" {
		t.Errorf("dest type name = %q", dest.TypeName)
	}

	a, _ := rv.Resolve("AccountId")
	b, _ := rv.Resolve("AccountId32")
	if a != b {
		t.Error("AccountId32 should alias AccountId")
	}

	phase, _ := rv.Resolve("Phase")
	if v, ok := phase.VariantByName("Finalization"); !ok || v.Type != nil || v.Index != 1 {
		t.Errorf("Finalization = %+v", v)
	}

	tests := []struct {
		name    string
		version uint32
		kind    types.Kind
	}{
		{"Balance", 0, types.KindU128},
		{"Balance", 1, types.KindU64},
		{"Balance", 100, types.KindU64},
		{"Balance", 101, types.KindU128},
	}
	for _, tt := range tests {
		td, err := reg.Resolve(tt.name, tt.version)
		if err != nil {
			t.Fatal(err)
		}
		if td.Kind != tt.kind {
			t.Errorf("%s@%d = %s, want %s", tt.name, tt.version, td.Kind, tt.kind)
		}
	}

	pays, _ := reg.Resolve("Pays", 60)
	if len(pays.Variants) != 3 {
		t.Errorf("Pays@60 variants = %d", len(pays.Variants))
	}
	pays, _ = reg.Resolve("Pays", 10)
	if len(pays.Variants) != 2 {
		t.Errorf("Pays@10 variants = %d", len(pays.Variants))
	}
}

func TestLoadPresetErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "types: [unclosed"},
		{"unknown key", "typez: {}"},
		{"unknown type kind", "types: {X: {type: union}}"},
		{"newtype without of", "types: {X: {type: newtype}}"},
		{"bad mapping pair", "types: {X: {type: struct, type_mapping: [[a]]}}"},
		{"extra spec key", "types: {X: {type: struct, fields: []}}"},
		{"non string entry", "types: {X: 5}"},
		{"open start", "versioning: [{runtime_range: [null, 5], types: {X: u8}}]"},
		{"empty range", "versioning: [{runtime_range: [9, 5], types: {X: u8}}]"},
		{"short range", "versioning: [{runtime_range: [9], types: {X: u8}}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			err := reg.LoadPreset([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, scaleerrors.ErrInvalidData) {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestLoadPresetAtomic(t *testing.T) {
	reg := New()
	doc := "types: {Good: u8, Bad: {type: nope}}"
	if err := reg.LoadPreset([]byte(doc)); err == nil {
		t.Fatal("expected error")
	}
	if reg.Has("Good") {
		t.Error("failed preset must not register anything")
	}
}

func TestLoadPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte("types: {Nonce: u64}"), 0o600); err != nil {
		t.Fatal(err)
	}
	reg := New()
	if err := reg.LoadPresetFile(path); err != nil {
		t.Fatal(err)
	}
	td, err := reg.Unversioned().Resolve("Nonce")
	if err != nil || td.Kind != types.KindU64 {
		t.Errorf("Nonce = %v, %v", td, err)
	}

	if err := reg.LoadPresetFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestNamedPresets(t *testing.T) {
	names := PresetNames()
	if len(names) < 2 || names[0] != "default" {
		t.Fatalf("PresetNames = %v", names)
	}

	reg := New()
	if err := reg.LoadNamedPreset("nope"); !errors.Is(err, scaleerrors.ErrUnknownType) {
		t.Errorf("unknown preset error = %v", err)
	}
	for _, n := range []string{"default", "legacy"} {
		if err := reg.LoadNamedPreset(n); err != nil {
			t.Fatalf("%s: %v", n, err)
		}
	}

	refcount, _ := reg.Resolve("RefCount", 1000)
	if refcount.Kind != types.KindU8 {
		t.Errorf("RefCount@1000 = %s", refcount.Kind)
	}
	refcount, _ = reg.Resolve("RefCount", 1050)
	if refcount.Kind != types.KindU32 {
		t.Errorf("RefCount@1050 = %s", refcount.Kind)
	}
	addr, _ := reg.Resolve("Address", 2030)
	if addr.Name != "MultiAddress" {
		t.Errorf("Address@2030 = %s", addr)
	}
	addr, _ = reg.Resolve("Address", 2000)
	if addr.Name != "AccountId" {
		t.Errorf("Address@2000 = %s", addr)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	if Default() != reg {
		t.Fatal("Default should be a singleton")
	}
	rv := reg.Unversioned()

	addr, err := rv.Resolve("Address")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Kind != types.KindUnion || addr.Name != "MultiAddress" {
		t.Fatalf("Address = %s", addr)
	}
	id, _ := addr.VariantByName("Id")
	if id.Index != 0 || id.Type.Name != "AccountId" {
		t.Errorf("Id variant = %+v", id)
	}
	idx, _ := addr.VariantByName("Index")
	if idx.Type.Kind != types.KindCompact || idx.Type.Elem.Kind != types.KindU32 {
		t.Errorf("Index variant = %s", idx.Type)
	}

	for _, name := range []string{"AccountInfo", "DispatchInfo", "Phase", "MultiSignature", "CallIndex", "BlockHash"} {
		if _, err := rv.Resolve(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
