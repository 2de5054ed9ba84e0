package metadata_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	scaleerrors "github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/extrinsic"
	"github.com/wippyai/scale-codec/internal/testmeta"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/registry"
	"github.com/wippyai/scale-codec/storage"
	"github.com/wippyai/scale-codec/types"
)

const (
	alice = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	dest  = "0x586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409"
	nodeA = "0x1c0d1aa34c4be7eaddc924b30bab35e45ec22307f2f7304d6e5f9c8f3753de56"
	sigA  = "0x86be385b2f7b25525518259b00e6b8a61e7e821544f102dca9b6d89c60fc327922229c975c2fa931992b17ab9d5b26f9848eeeff44e0333f6672a98aa8b11383"

	transferKeepAlive = "0xa804050700586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409070010a5d4e8"
	transferCall      = "050700586cb27c291c813ce74e86a60dad270609abf2fc8bee107e44a80ac00225c409070010a5d4e8"
	batch             = "0x5901041a0008" + transferCall + transferCall
	signedMortal      = "0x4102841c0d1aa34c4be7eaddc924b30bab35e45ec22307f2f7304d6e5f9c8f3753de560186be385b2f7b25525518259b00e6b8a61e7e821544f102dca9b6d89c60fc327922229c975c2fa931992b17ab9d5b26f9848eeeff44e0333f6672a98aa8b113836935040005031c0d1aa34c4be7eaddc924b30bab35e45ec22307f2f7304d6e5f9c8f3753de560f0080c6a47e8d03"
)

func kusama(t *testing.T) *metadata.Metadata {
	t.Helper()
	m, err := metadata.Decode(testmeta.KusamaV14(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func legacyResolver(t *testing.T) *registry.Resolver {
	t.Helper()
	reg := registry.New()
	for _, name := range []string{"default", "legacy"} {
		if err := reg.LoadNamedPreset(name); err != nil {
			t.Fatal(err)
		}
	}
	return reg.Unversioned()
}

func nodeTemplate(t *testing.T) *metadata.Metadata {
	t.Helper()
	m, err := metadata.Decode(testmeta.NodeTemplateV13(), legacyResolver(t))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func transfer() extrinsic.Call {
	return extrinsic.Call{
		Module:   "Balances",
		Function: "transfer_keep_alive",
		Args: map[string]any{
			"dest":  map[string]any{"Id": dest},
			"value": 1_000_000_000_000,
		},
	}
}

func TestDecodeV14(t *testing.T) {
	m := kusama(t)

	if m.Version != 14 || m.ExtrinsicVersion() != 4 {
		t.Errorf("version = %d, extrinsic version = %d", m.Version, m.ExtrinsicVersion())
	}
	if m.RuntimeType != testmeta.TypeRuntime {
		t.Errorf("runtime type = %d", m.RuntimeType)
	}
	if len(m.Types) != int(testmeta.TypeOptionBool)+1 {
		t.Errorf("%d portable types", len(m.Types))
	}
	if se := m.Extrinsic.SignedExtensions; len(se) != 1 || se[0].Identifier != "CheckNonce" || se[0].Type.Kind != types.KindCompact {
		t.Errorf("signed extensions = %+v", se)
	}

	var names []string
	for _, p := range m.Pallets {
		names = append(names, p.Name)
	}
	if len(names) != 4 || names[0] != "System" || names[3] != "Example" {
		t.Errorf("pallets = %v", names)
	}

	balances, err := m.Pallet("Balances")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := balances.Call("transfer_keep_alive")
	if !ok {
		t.Fatal("transfer_keep_alive missing")
	}
	if fn.Index != 7 || len(fn.Args) != 2 || fn.Args[0].Name != "dest" || fn.Args[1].TypeName != "T::Balance" {
		t.Errorf("function = %+v", fn)
	}
	if fn.Args[0].Type != mustLookup(t, m, testmeta.TypeMultiAddress) {
		t.Error("argument type is not the shared portable definition")
	}

	system, err := m.PalletByIndex(testmeta.SystemIndex)
	if err != nil || system.Name != "System" {
		t.Fatalf("PalletByIndex = %v, %v", system, err)
	}
	if len(system.Errors) != 2 || system.Errors[1].Name != "SpecVersionNeedsToIncrease" {
		t.Errorf("errors = %+v", system.Errors)
	}
	if len(system.Events) != 3 || system.Events[1].Name != "NewAccount" || system.Events[1].Index != 3 {
		t.Errorf("events = %+v", system.Events)
	}
}

func mustLookup(t *testing.T, m *metadata.Metadata, id uint32) *types.TypeDef {
	t.Helper()
	td, ok := m.Lookup(id)
	if !ok {
		t.Fatalf("type %d missing", id)
	}
	return td
}

func TestPortableShapes(t *testing.T) {
	m := kusama(t)

	tests := []struct {
		name string
		id   uint32
		kind types.Kind
		tn   string
	}{
		{"account collapses to its array", testmeta.TypeAccountID, types.KindArray, "sp_core::crypto::AccountId32"},
		{"option", testmeta.TypeOptionU32, types.KindOption, ""},
		{"btree map", testmeta.TypeLimitMap, types.KindMap, ""},
		{"empty composite", testmeta.TypeLsb0, types.KindNull, ""},
		{"empty tuple", testmeta.TypeEmptyTuple, types.KindNull, ""},
		{"named struct", testmeta.TypeTreeNode, types.KindStruct, "example::Node"},
		{"named union", testmeta.TypeMultiAddress, types.KindUnion, "sp_runtime::multiaddress::MultiAddress"},
		{"unnamed compact", testmeta.TypeCompactU128, types.KindCompact, ""},
		{"bit sequence", testmeta.TypeBitVec, types.KindBitSequence, ""},
		{"wrapper over bytes", testmeta.TypeUncheckedExtrinsic, types.KindSequence, "sp_runtime::generic::unchecked_extrinsic::UncheckedExtrinsic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := mustLookup(t, m, tt.id)
			if td.Kind != tt.kind || td.Name != tt.tn {
				t.Errorf("got %s %q, want %s %q", td.Kind, td.Name, tt.kind, tt.tn)
			}
		})
	}

	limits := mustLookup(t, m, testmeta.TypeLimitMap)
	if limits.Key.Kind != types.KindU32 || limits.Value.Kind != types.KindU128 {
		t.Errorf("map = %s", limits)
	}

	node := mustLookup(t, m, testmeta.TypeTreeNode)
	children := mustLookup(t, m, testmeta.TypeTreeVec)
	if node.Fields[1].Type != children || children.Elem != node {
		t.Error("recursive type does not link back to itself")
	}
	if node.Fields[1].TypeName != "Vec<Node>" {
		t.Errorf("field type name = %q", node.Fields[1].TypeName)
	}

	addr := mustLookup(t, m, testmeta.TypeMultiAddress)
	id, ok := addr.VariantByName("Id")
	if !ok || id.Type != mustLookup(t, m, testmeta.TypeAccountID) {
		t.Errorf("MultiAddress::Id = %+v", id)
	}
	if _, ok := m.Lookup(999); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestCallIndex(t *testing.T) {
	m := kusama(t)

	tests := []struct {
		pallet, call string
		want         [2]uint8
		err          error
	}{
		{"Balances", "transfer_keep_alive", [2]uint8{5, 7}, nil},
		{"Utility", "batch", [2]uint8{26, 0}, nil},
		{"System", "remark", [2]uint8{0, 0}, nil},
		{"Balances", "burn", [2]uint8{}, scaleerrors.ErrInvalidData},
		{"Treasury", "propose", [2]uint8{}, scaleerrors.ErrInvalidData},
	}
	for _, tt := range tests {
		p, c, err := m.CallIndex(tt.pallet, tt.call)
		if !errors.Is(err, tt.err) && !(err == nil && tt.err == nil) {
			t.Errorf("%s.%s error = %v, want %v", tt.pallet, tt.call, err, tt.err)
			continue
		}
		if tt.err == nil && [2]uint8{p, c} != tt.want {
			t.Errorf("%s.%s = (%d, %d)", tt.pallet, tt.call, p, c)
		}
	}
}

func TestV14Extrinsics(t *testing.T) {
	m := kusama(t)
	xc := extrinsic.New(m, nil)

	data, err := xc.Encode(&extrinsic.Extrinsic{Call: transfer()})
	if err != nil {
		t.Fatal(err)
	}
	if got := buffer.EncodeHex(data); got != transferKeepAlive {
		t.Fatalf("unsigned\n got  %s\n want %s", got, transferKeepAlive)
	}

	x, err := xc.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	call, ok := extrinsic.CallOf(x.Call)
	if !ok || call.Module != "Balances" || call.Function != "transfer_keep_alive" {
		t.Errorf("decoded call = %+v", call)
	}
	if x.IsSigned() || x.Version != 4 {
		t.Errorf("decoded extrinsic = %+v", x)
	}

	batchCall := extrinsic.Call{
		Module:   "Utility",
		Function: "batch",
		Args:     map[string]any{"calls": []any{transfer().Variant(), transfer().Variant()}},
	}
	data, err = xc.Encode(&extrinsic.Extrinsic{Call: batchCall})
	if err != nil {
		t.Fatal(err)
	}
	if got := buffer.EncodeHex(data); got != batch {
		t.Fatalf("batch\n got  %s\n want %s", got, batch)
	}

	x, err = xc.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	call, _ = extrinsic.CallOf(x.Call)
	calls, ok := call.Args["calls"].([]any)
	if call.Function != "batch" || !ok || len(calls) != 2 {
		t.Fatalf("decoded batch = %+v", call)
	}
	inner, ok := extrinsic.CallOf(calls[1])
	if !ok || inner.Function != "transfer_keep_alive" {
		t.Errorf("nested call = %+v", inner)
	}

	td, err := m.ExtrinsicTypeDef()
	if err != nil {
		t.Fatal(err)
	}
	viaType, err := codec.Encode(td, map[string]any{"call": batchCall})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(viaType, data) {
		t.Errorf("ExtrinsicTypeDef encodes %x", viaType)
	}
}

func TestV14SignedExtrinsic(t *testing.T) {
	m := kusama(t)
	xc := extrinsic.New(m, nil)

	x := &extrinsic.Extrinsic{
		Signature: &extrinsic.Signature{
			Address:   map[string]any{"Id": nodeA},
			Signature: map[string]any{"Sr25519": sigA},
			Era:       extrinsic.NewMortal(666, 4950),
			Nonce:     1,
		},
		Call: transfer(),
	}
	data, err := xc.Encode(x)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := xc.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	addr, ok := decoded.Signature.Address.(codec.Variant)
	if !ok || addr.Name != "Id" || buffer.EncodeHex(addr.Value.([]byte)) != nodeA {
		t.Errorf("address = %#v", decoded.Signature.Address)
	}
	if decoded.Signature.Era != x.Signature.Era {
		t.Errorf("era = %v", decoded.Signature.Era)
	}
}

func TestConstants(t *testing.T) {
	m := kusama(t)

	v, err := m.Constant("System", "BlockHashCount")
	if err != nil || v != uint32(2400) {
		t.Errorf("BlockHashCount = %v, %v", v, err)
	}

	v, err = m.Constant("Balances", "ExistentialDeposit")
	if err != nil {
		t.Fatal(err)
	}
	if ed, ok := v.(*uint256.Int); !ok || ed.Uint64() != 1_000_000_000 {
		t.Errorf("ExistentialDeposit = %v", v)
	}

	v, err = m.Constant("Example", "Limits")
	if err != nil {
		t.Fatal(err)
	}
	entries, ok := v.([]codec.MapEntry)
	if !ok || len(entries) != 1 || entries[0].Key != uint32(7) {
		t.Errorf("Limits = %#v", v)
	}

	v, err = m.Constant("Example", "MaybeLimit")
	if err != nil || v != uint32(42) {
		t.Errorf("MaybeLimit = %v, %v", v, err)
	}
	v, err = m.Constant("Example", "Flag")
	if err != nil || v != false {
		t.Errorf("Flag = %v, %v", v, err)
	}

	v, err = m.Constant("Example", "Root")
	if err != nil {
		t.Fatal(err)
	}
	var root struct {
		Children []struct {
			Value uint32 `scale:"value"`
		} `scale:"children"`
		Value uint32 `scale:"value"`
	}
	if err := codec.As(v, &root); err != nil {
		t.Fatal(err)
	}
	if root.Value != 1 || len(root.Children) != 1 || root.Children[0].Value != 2 {
		t.Errorf("Root = %+v", root)
	}

	v, err = m.Constant("Example", "Bits")
	if bits, ok := v.(codec.BitVec); err != nil || !ok || len(bits) != 3 {
		t.Errorf("Bits = %v, %v", v, err)
	}

	if _, err := m.Constant("System", "Missing"); !errors.Is(err, scaleerrors.ErrInvalidData) {
		t.Errorf("missing constant error = %v", err)
	}
}

func TestStorageKeys(t *testing.T) {
	m := kusama(t)

	account, err := m.StorageEntry("System", "Account")
	if err != nil {
		t.Fatal(err)
	}
	if len(account.Hashers) != 1 || account.Hashers[0] != storage.Blake2_128Concat {
		t.Fatalf("hashers = %v", account.Hashers)
	}
	if account.KeyNames[0] != "sp_core::crypto::AccountId32" || account.Modifier != "Default" {
		t.Errorf("entry = %+v", account)
	}

	key, err := account.Key(nil, alice)
	if err != nil {
		t.Fatal(err)
	}
	const want = "0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9" +
		"de1e86a9a8c739864cf3cc5ec2bea59f" +
		"d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	if got := buffer.EncodeHex(key); got != want {
		t.Errorf("System.Account key\n got  %s\n want %s", got, want)
	}

	number, err := m.StorageEntry("System", "Number")
	if err != nil {
		t.Fatal(err)
	}
	if len(number.Keys) != 0 || number.Value.Kind != types.KindU32 {
		t.Errorf("Number = %+v", number)
	}
	key, err = number.Key(nil)
	if err != nil || !bytes.Equal(key, storage.Prefix("System", "Number")) {
		t.Errorf("plain key = %x, %v", key, err)
	}

	limits, err := m.StorageEntry("Example", "Limits")
	if err != nil {
		t.Fatal(err)
	}
	if len(limits.Keys) != 2 || limits.Keys[1].Kind != types.KindU128 {
		t.Fatalf("double map keys = %v", limits.Keys)
	}
	key, err = limits.Key(nil, uint32(7), 9)
	if err != nil {
		t.Fatal(err)
	}
	want2, err := storage.Key("Example", "Limits", limits.Hashers,
		[]byte{7, 0, 0, 0}, append([]byte{9}, make([]byte, 15)...))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(key, want2) {
		t.Errorf("double map key = %x, want %x", key, want2)
	}

	if _, err := limits.Key(nil, 1, 2, 3); !errors.Is(err, scaleerrors.ErrEncodeConstraint) {
		t.Errorf("too many keys error = %v", err)
	}
	if _, err := m.StorageEntry("System", "Missing"); !errors.Is(err, scaleerrors.ErrInvalidData) {
		t.Errorf("missing entry error = %v", err)
	}
}

func TestEventTypeDef(t *testing.T) {
	m := kusama(t)
	td, err := m.EventTypeDef()
	if err != nil {
		t.Fatal(err)
	}

	v, err := codec.Decode(td, append([]byte{0x00, 0x03}, hexBytes(t, alice)...))
	if err != nil {
		t.Fatal(err)
	}
	outer := v.(codec.Variant)
	inner := outer.Value.(codec.Variant)
	if outer.Name != "System" || inner.Name != "NewAccount" {
		t.Fatalf("event = %s.%s", outer.Name, inner.Name)
	}
	fields := inner.Value.(map[string]any)
	if buffer.EncodeHex(fields["account"].([]byte)) != alice {
		t.Errorf("account = %x", fields["account"])
	}

	if _, err := codec.Decode(td, []byte{0x05, 0x02}); err == nil {
		t.Error("truncated transfer event should fail")
	}
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := buffer.DecodeHex(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRegisterTypes(t *testing.T) {
	m := kusama(t)
	reg := registry.New()
	if err := m.RegisterTypes(reg); err != nil {
		t.Fatal(err)
	}
	rv := reg.Unversioned()

	byID, err := rv.Resolve("scale_info::2")
	if err != nil {
		t.Fatal(err)
	}
	byPath, err := rv.Resolve("sp_core::crypto::AccountId32")
	if err != nil {
		t.Fatal(err)
	}
	if byID != mustLookup(t, m, testmeta.TypeAccountID) || byPath != byID {
		t.Error("registered names do not share the portable definition")
	}

	call, err := rv.Resolve("Call")
	if err != nil {
		t.Fatal(err)
	}
	data, err := codec.Encode(call, transfer().Variant())
	if err != nil {
		t.Fatal(err)
	}
	if got := buffer.EncodeHex(data); got != "0x"+transferCall {
		t.Errorf("Call = %s", got)
	}

	if _, err := rv.Resolve("Option"); !errors.Is(err, scaleerrors.ErrUnknownType) {
		t.Errorf("ambiguous path should stay unregistered, got %v", err)
	}
	for _, name := range []string{"Event", "Extrinsic", "UncheckedExtrinsic", "Era"} {
		if !reg.Has(name) {
			t.Errorf("%s not registered", name)
		}
	}
}

func TestDecodeV13(t *testing.T) {
	m := nodeTemplate(t)

	if m.Version != 13 || len(m.Types) != 0 {
		t.Errorf("version = %d with %d portable types", m.Version, len(m.Types))
	}
	if se := m.Extrinsic.SignedExtensions; len(se) != 2 || se[1].Identifier != "CheckNonce" {
		t.Errorf("signed extensions = %+v", se)
	}

	p, c, err := m.CallIndex("Balances", "transfer_keep_alive")
	if err != nil || p != 5 || c != 3 {
		t.Errorf("CallIndex = (%d, %d), %v", p, c, err)
	}

	v, err := m.Constant("Balances", "ExistentialDeposit")
	if ed, ok := v.(*uint256.Int); err != nil || !ok || ed.Uint64() != 500 {
		t.Errorf("ExistentialDeposit = %v, %v", v, err)
	}
	if _, err := m.Constant("Example", "Mystery"); !errors.Is(err, scaleerrors.ErrUnknownType) {
		t.Errorf("unknown constant type error = %v", err)
	}

	odd, err := m.StorageEntry("Example", "Odd")
	if err != nil {
		t.Fatal(err)
	}
	if odd.Value != nil || odd.ValueName != "UnknownThing<T>" {
		t.Errorf("Odd = %+v", odd)
	}

	votes, err := m.StorageEntry("Example", "Votes")
	if err != nil {
		t.Fatal(err)
	}
	if len(votes.Hashers) != 2 || votes.Hashers[1] != storage.Blake2_128Concat || votes.Keys[0].Kind != types.KindU32 {
		t.Errorf("Votes = %+v", votes)
	}
	if _, err := votes.Key(nil, uint32(1), alice); err != nil {
		t.Error(err)
	}

	grid, err := m.StorageEntry("Example", "Grid")
	if err != nil {
		t.Fatal(err)
	}
	key, err := grid.Key(nil, uint32(1), uint32(2))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(key, []byte{2, 0, 0, 0}) {
		t.Errorf("identity hashed key = %x", key)
	}

	td, err := m.EventTypeDef()
	if err != nil {
		t.Fatal(err)
	}
	ev, err := codec.Decode(td, append([]byte{0x00, 0x01}, hexBytes(t, alice)...))
	if err != nil {
		t.Fatal(err)
	}
	if inner := ev.(codec.Variant).Value.(codec.Variant); inner.Name != "NewAccount" {
		t.Errorf("event = %+v", ev)
	}
}

func TestV13SignedExtrinsic(t *testing.T) {
	m := nodeTemplate(t)
	xc := extrinsic.New(m, nil)

	x := &extrinsic.Extrinsic{
		Signature: &extrinsic.Signature{
			Address:   nodeA,
			Signature: codec.Variant{Name: "Sr25519", Value: sigA},
			Era:       extrinsic.NewMortal(666, 4950),
			Nonce:     1,
		},
		Call: extrinsic.Call{
			Module:   "Balances",
			Function: "transfer_keep_alive",
			Args:     map[string]any{"dest": nodeA, "value": 1_000_000_000_000_000},
		},
	}
	data, err := xc.Encode(x)
	if err != nil {
		t.Fatal(err)
	}
	if got := buffer.EncodeHex(data); got != signedMortal {
		t.Fatalf("got  %s\nwant %s", got, signedMortal)
	}

	decoded, err := xc.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Signature == nil || decoded.Signature.Nonce != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	call, _ := extrinsic.CallOf(decoded.Call)
	if call.Module != "Balances" || call.Function != "transfer_keep_alive" {
		t.Errorf("call = %+v", call)
	}
}

func TestV13NestedCalls(t *testing.T) {
	m := nodeTemplate(t)
	td, err := m.CallTypeDef()
	if err != nil {
		t.Fatal(err)
	}

	remark := extrinsic.Call{Module: "System", Function: "remark", Args: map[string]any{"_remark": "0x0102"}}
	batchCall := extrinsic.Call{
		Module:   "Utility",
		Function: "batch",
		Args:     map[string]any{"calls": []any{remark.Variant(), remark.Variant()}},
	}
	data, err := codec.Encode(td, batchCall.Variant())
	if err != nil {
		t.Fatal(err)
	}
	if got := buffer.EncodeHex(data); got != "0x01000800010801020001080102" {
		t.Errorf("batch = %s", got)
	}
	if td.Name != "Call" {
		t.Errorf("call union name = %q", td.Name)
	}
}

func TestV13CallArgumentsMustResolve(t *testing.T) {
	reg := registry.New()
	if err := reg.LoadNamedPreset("default"); err != nil {
		t.Fatal(err)
	}
	if _, err := metadata.Decode(testmeta.NodeTemplateV13(), reg.Unversioned()); err != nil {
		t.Fatalf("default preset covers the fixture calls: %v", err)
	}

	_, err := metadata.Decode(testmeta.NodeTemplateV13(), registry.New().Unversioned())
	if !errors.Is(err, scaleerrors.ErrUnknownType) {
		t.Errorf("error = %v, want unknown type", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := testmeta.KusamaV14()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, scaleerrors.ErrInvalidData},
		{"bad magic", append([]byte("atem"), valid[4:]...), scaleerrors.ErrInvalidData},
		{"version 15", append(append([]byte{}, valid[:4]...), 15), &scaleerrors.Error{Kind: scaleerrors.KindUnsupported}},
		{"version 12", append(append([]byte{}, valid[:4]...), 12), &scaleerrors.Error{Kind: scaleerrors.KindUnsupported}},
		{"truncated", valid[:len(valid)-3], scaleerrors.ErrInvalidData},
		{"trailing bytes", append(append([]byte{}, valid...), 0), scaleerrors.ErrRemainingBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metadata.Decode(tt.data, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNotInitialized(t *testing.T) {
	var m metadata.Metadata
	if _, err := m.CallTypeDef(); !errors.Is(err, scaleerrors.ErrNotInitialized) {
		t.Errorf("CallTypeDef error = %v", err)
	}
	if _, _, err := m.SignerTypeDefs(); !errors.Is(err, scaleerrors.ErrNotInitialized) {
		t.Errorf("SignerTypeDefs error = %v", err)
	}
	if _, err := m.Pallet("System"); !errors.Is(err, scaleerrors.ErrNotInitialized) {
		t.Errorf("Pallet error = %v", err)
	}
	if err := m.RegisterTypes(registry.New()); !errors.Is(err, scaleerrors.ErrNotInitialized) {
		t.Errorf("RegisterTypes error = %v", err)
	}
}
