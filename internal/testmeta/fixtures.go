package testmeta

// Portable type ids of the KusamaV14 fixture.
const (
	TypeU8 uint32 = iota
	TypeAccountBytes
	TypeAccountID
	TypeU32
	TypeCompactU32
	TypeBytes
	TypeBytes20
	TypeMultiAddress
	TypeU128
	TypeCompactU128
	TypeBalancesCall
	TypeBool
	TypeRuntimeCall
	TypeSystemCall
	TypeCallVec
	TypeUtilityCall
	TypeBytes64
	TypeBytes65
	TypeMultiSignature
	TypeUncheckedExtrinsic
	TypeEmptyTuple
	TypeSystemEvent
	TypeSystemError
	TypeOptionU32
	TypeLimitPair
	TypeLimitVec
	TypeLimitMap
	TypeTreeNode
	TypeTreeVec
	TypeBitVec
	TypeLsb0
	TypeRuntime
	TypeBalancesEvent
	TypeOptionBool
)

// Pallet indices of the fixtures.
const (
	SystemIndex   = 0
	BalancesIndex = 5
	UtilityIndex  = 26
	ExampleIndex  = 40

	LegacyUtilityIndex = 1
	LegacyExampleIndex = 9
)

// KusamaV14 returns a v14 metadata blob shaped like a relay chain runtime:
// System, Balances with transfer_keep_alive at call index 7, Utility whose
// batch nests runtime calls, and an Example pallet holding a map, an
// option, a recursive type and a bit sequence.
func KusamaV14() []byte {
	r := &Registry{}
	r.Add(TypeU8, nil, Primitive("U8"))
	r.Add(TypeAccountBytes, nil, Array(32, TypeU8))
	r.Add(TypeAccountID, []string{"sp_core", "crypto", "AccountId32"},
		Composite(Field("", TypeAccountBytes, "[u8; 32]")))
	r.Add(TypeU32, nil, Primitive("U32"))
	r.Add(TypeCompactU32, nil, Compact(TypeU32))
	r.Add(TypeBytes, nil, Sequence(TypeU8))
	r.Add(TypeBytes20, nil, Array(20, TypeU8))
	r.Add(TypeMultiAddress, []string{"sp_runtime", "multiaddress", "MultiAddress"},
		Variant(
			Case("Id", 0, Field("", TypeAccountID, "AccountId")),
			Case("Index", 1, Field("", TypeCompactU32, "AccountIndex")),
			Case("Raw", 2, Field("", TypeBytes, "Vec<u8>")),
			Case("Address32", 3, Field("", TypeAccountBytes, "[u8; 32]")),
			Case("Address20", 4, Field("", TypeBytes20, "[u8; 20]")),
		),
		P("AccountId", TypeAccountID), P("AccountIndex", TypeU32))
	r.Add(TypeU128, nil, Primitive("U128"))
	r.Add(TypeCompactU128, nil, Compact(TypeU128))
	r.Add(TypeBalancesCall, []string{"pallet_balances", "pallet", "Call"},
		Variant(
			Case("transfer_allow_death", 0,
				Field("dest", TypeMultiAddress, "AccountIdLookupOf<T>"),
				Field("value", TypeCompactU128, "T::Balance")),
			Case("force_transfer", 2,
				Field("source", TypeMultiAddress, "AccountIdLookupOf<T>"),
				Field("dest", TypeMultiAddress, "AccountIdLookupOf<T>"),
				Field("value", TypeCompactU128, "T::Balance")),
			Case("transfer_all", 4,
				Field("dest", TypeMultiAddress, "AccountIdLookupOf<T>"),
				Field("keep_alive", TypeBool, "bool")),
			Case("transfer_keep_alive", 7,
				Field("dest", TypeMultiAddress, "AccountIdLookupOf<T>"),
				Field("value", TypeCompactU128, "T::Balance")),
		))
	r.Add(TypeBool, nil, Primitive("Bool"))
	r.Add(TypeRuntimeCall, []string{"kusama_runtime", "RuntimeCall"},
		Variant(
			Case("System", SystemIndex, Field("", TypeSystemCall, "")),
			Case("Balances", BalancesIndex, Field("", TypeBalancesCall, "")),
			Case("Utility", UtilityIndex, Field("", TypeUtilityCall, "")),
		))
	r.Add(TypeSystemCall, []string{"frame_system", "pallet", "Call"},
		Variant(
			Case("remark", 0, Field("remark", TypeBytes, "Vec<u8>")),
			Case("set_heap_pages", 1, Field("pages", TypeU32, "u32")),
		))
	r.Add(TypeCallVec, nil, Sequence(TypeRuntimeCall))
	r.Add(TypeUtilityCall, []string{"pallet_utility", "pallet", "Call"},
		Variant(
			Case("batch", 0, Field("calls", TypeCallVec, "Vec<<T as Config>::RuntimeCall>")),
			Case("batch_all", 2, Field("calls", TypeCallVec, "Vec<<T as Config>::RuntimeCall>")),
		))
	r.Add(TypeBytes64, nil, Array(64, TypeU8))
	r.Add(TypeBytes65, nil, Array(65, TypeU8))
	r.Add(TypeMultiSignature, []string{"sp_runtime", "MultiSignature"},
		Variant(
			Case("Ed25519", 0, Field("", TypeBytes64, "")),
			Case("Sr25519", 1, Field("", TypeBytes64, "")),
			Case("Ecdsa", 2, Field("", TypeBytes65, "")),
		))
	r.Add(TypeUncheckedExtrinsic, []string{"sp_runtime", "generic", "unchecked_extrinsic", "UncheckedExtrinsic"},
		Composite(Field("", TypeBytes, "")),
		P("Address", TypeMultiAddress), P("Call", TypeRuntimeCall),
		P("Signature", TypeMultiSignature), P("Extra", TypeEmptyTuple))
	r.Add(TypeEmptyTuple, nil, Tuple())
	r.Add(TypeSystemEvent, []string{"frame_system", "pallet", "Event"},
		Variant(
			Case("CodeUpdated", 2),
			Case("NewAccount", 3, Field("account", TypeAccountID, "T::AccountId")),
			Case("KilledAccount", 4, Field("account", TypeAccountID, "T::AccountId")),
		))
	r.Add(TypeSystemError, []string{"frame_system", "pallet", "Error"},
		Variant(
			Case("InvalidSpecName", 0),
			Case("SpecVersionNeedsToIncrease", 1),
		))
	r.Add(TypeOptionU32, []string{"Option"},
		Variant(Case("None", 0), Case("Some", 1, Field("", TypeU32, ""))),
		P("T", TypeU32))
	r.Add(TypeLimitPair, nil, Tuple(TypeU32, TypeU128))
	r.Add(TypeLimitVec, nil, Sequence(TypeLimitPair))
	r.Add(TypeLimitMap, []string{"BTreeMap"},
		Composite(Field("", TypeLimitVec, "")),
		P("K", TypeU32), P("V", TypeU128))
	r.Add(TypeTreeNode, []string{"example", "Node"},
		Composite(
			Field("value", TypeU32, "u32"),
			Field("children", TypeTreeVec, "Vec<Node>"),
		))
	r.Add(TypeTreeVec, nil, Sequence(TypeTreeNode))
	r.Add(TypeBitVec, nil, BitSequence(TypeU8, TypeLsb0))
	r.Add(TypeLsb0, []string{"bitvec", "order", "Lsb0"}, Composite())
	r.Add(TypeRuntime, []string{"kusama_runtime", "Runtime"}, Composite())
	r.Add(TypeBalancesEvent, []string{"pallet_balances", "pallet", "Event"},
		Variant(
			Case("Transfer", 2,
				Field("from", TypeAccountID, "T::AccountId"),
				Field("to", TypeAccountID, "T::AccountId"),
				Field("amount", TypeU128, "T::Balance")),
		))
	r.Add(TypeOptionBool, []string{"Option"},
		Variant(Case("None", 0), Case("Some", 1, Field("", TypeBool, ""))),
		P("T", TypeBool))

	pallets := []Pallet{
		{
			Name:   "System",
			Index:  SystemIndex,
			Prefix: "System",
			Storage: []map[string]any{
				Map("Account", []string{"Blake2_128Concat"}, TypeAccountID, TypeU32),
				Plain("Number", TypeU32),
				Map("BlockHash", []string{"Twox64Concat"}, TypeU32, TypeAccountBytes),
			},
			Calls: ID(TypeSystemCall),
			Event: ID(TypeSystemEvent),
			Error: ID(TypeSystemError),
			Constants: []map[string]any{
				Constant("BlockHashCount", TypeU32, "0x60090000"),
			},
		},
		{
			Name:   "Balances",
			Index:  BalancesIndex,
			Prefix: "Balances",
			Storage: []map[string]any{
				Plain("TotalIssuance", TypeU128),
			},
			Calls: ID(TypeBalancesCall),
			Event: ID(TypeBalancesEvent),
			Constants: []map[string]any{
				Constant("ExistentialDeposit", TypeU128, "0x00ca9a3b000000000000000000000000"),
			},
		},
		{
			Name:  "Utility",
			Index: UtilityIndex,
			Calls: ID(TypeUtilityCall),
		},
		{
			Name:   "Example",
			Index:  ExampleIndex,
			Prefix: "Example",
			Storage: []map[string]any{
				Map("Limits", []string{"Blake2_128Concat", "Twox64Concat"}, TypeLimitPair, TypeBool),
			},
			Constants: []map[string]any{
				Constant("Limits", TypeLimitMap, "0x040700000009000000000000000000000000000000"),
				Constant("MaybeLimit", TypeOptionU32, "0x012a000000"),
				Constant("Flag", TypeOptionBool, "0x0100"),
				Constant("Root", TypeTreeNode, "0x01000000040200000000"),
				Constant("Bits", TypeBitVec, "0x0c05"),
			},
		},
	}

	data, err := V14(r, pallets, TypeUncheckedExtrinsic, 4,
		[]SignedExtension{{Identifier: "CheckNonce", Type: TypeCompactU32, AdditionalSigned: TypeEmptyTuple}},
		TypeRuntime)
	if err != nil {
		panic("testmeta: " + err.Error())
	}
	return data
}

// NodeTemplateV13 returns a legacy v13 metadata blob with string type
// names: System, Utility whose batch takes Vec<Call>, Balances with
// transfer_keep_alive at call index 3, and an Example module with double
// and n-map storage plus an item of unknown type.
func NodeTemplateV13() []byte {
	modules := []Module{
		{
			Name:   "System",
			Index:  SystemIndex,
			Prefix: "System",
			Storage: []map[string]any{
				LegacyMap("Account", "Blake2_128Concat", "T::AccountId", "AccountInfo<T::Index, T::AccountData>"),
				LegacyPlain("Number", "T::BlockNumber"),
			},
			Calls: []Function{
				{Name: "fill_block", Args: []Arg{{"_ratio", "Perbill"}}},
				{Name: "remark", Args: []Arg{{"_remark", "Vec<u8>"}}},
			},
			Events: []LegacyEvent{
				{Name: "ExtrinsicSuccess", Args: []string{"DispatchInfo"}},
				{Name: "NewAccount", Args: []string{"AccountId"}},
			},
			Constants: []LegacyConstant{
				{Name: "BlockHashCount", Type: "T::BlockNumber", Value: "0x60090000"},
			},
			Errors: []string{"InvalidSpecName", "SpecVersionNeedsToIncrease"},
		},
		{
			Name:  "Utility",
			Index: LegacyUtilityIndex,
			Calls: []Function{
				{Name: "batch", Args: []Arg{{"calls", "Vec<<T as Config>::Call>"}}},
			},
			Events: []LegacyEvent{},
		},
		{
			Name:   "Balances",
			Index:  BalancesIndex,
			Prefix: "Balances",
			Storage: []map[string]any{
				LegacyPlain("TotalIssuance", "T::Balance"),
			},
			Calls: []Function{
				{Name: "transfer", Args: []Arg{
					{"dest", "<T::Lookup as StaticLookup>::Source"},
					{"value", "Compact<T::Balance>"},
				}},
				{Name: "set_balance", Args: []Arg{
					{"who", "<T::Lookup as StaticLookup>::Source"},
					{"new_free", "Compact<T::Balance>"},
					{"new_reserved", "Compact<T::Balance>"},
				}},
				{Name: "force_transfer", Args: []Arg{
					{"source", "<T::Lookup as StaticLookup>::Source"},
					{"dest", "<T::Lookup as StaticLookup>::Source"},
					{"value", "Compact<T::Balance>"},
				}},
				{Name: "transfer_keep_alive", Args: []Arg{
					{"dest", "<T::Lookup as StaticLookup>::Source"},
					{"value", "Compact<T::Balance>"},
				}},
			},
			Events: []LegacyEvent{
				{Name: "Transfer", Args: []string{"AccountId", "AccountId", "Balance"}},
			},
			Constants: []LegacyConstant{
				{Name: "ExistentialDeposit", Type: "T::Balance", Value: "0xf4010000000000000000000000000000"},
			},
		},
		{
			Name:   "Example",
			Index:  LegacyExampleIndex,
			Prefix: "Example",
			Storage: []map[string]any{
				LegacyPlain("Odd", "UnknownThing<T>"),
				LegacyDoubleMap("Votes", "Twox64Concat", "u32", "T::AccountId", "u64", "Blake2_128Concat"),
				LegacyNMap("Grid", []string{"u32", "u32"}, []string{"Twox64Concat", "Identity"}, "u8"),
			},
			Constants: []LegacyConstant{
				{Name: "Mystery", Type: "UnknownThing<T>", Value: "0x00"},
			},
		},
	}

	data, err := V13(modules, 4, []string{"CheckSpecVersion", "CheckNonce"})
	if err != nil {
		panic("testmeta: " + err.Error())
	}
	return data
}
