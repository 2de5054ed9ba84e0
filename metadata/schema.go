package metadata

import (
	"github.com/wippyai/scale-codec/types"
)

// Magic is the "meta" prefix of an encoded metadata blob, read as a
// little-endian u32.
const Magic uint32 = 0x6174656d

var (
	u8     = types.Primitive(types.KindU8)
	u32    = types.Primitive(types.KindU32)
	boolTD = types.Primitive(types.KindBool)
	str    = types.Primitive(types.KindStr)
	typeID = types.Compact(u32)
	docs   = types.Sequence(str)
	vecStr = types.Sequence(str)

	hasherEnum = types.Enum(
		"Blake2_128", "Blake2_256", "Blake2_128Concat",
		"Twox128", "Twox256", "Twox64Concat", "Identity",
	)
	modifierEnum = types.Enum("Optional", "Default")
)

func field(name string, td *types.TypeDef) types.Field {
	return types.Field{Name: name, Type: td}
}

func variant(name string, index uint8, td *types.TypeDef) types.Variant {
	return types.Variant{Name: name, Index: index, Type: td}
}

// V14Schema describes the layout of RuntimeMetadataV14, the part of a
// blob that follows the magic and version byte.
func V14Schema() *types.TypeDef {
	return v14Schema
}

// V13Schema describes the layout of the legacy RuntimeMetadataV13.
func V13Schema() *types.TypeDef {
	return v13Schema
}

var v14Schema = func() *types.TypeDef {
	typeField := types.Struct(
		field("name", types.Option(str)),
		field("type", typeID),
		field("type_name", types.Option(str)),
		field("docs", docs),
	).Named("Field")
	fields := types.Sequence(typeField)

	typeVariant := types.Struct(
		field("name", str),
		field("fields", fields),
		field("index", u8),
		field("docs", docs),
	).Named("Variant")

	primitive := types.Enum(
		"Bool", "Char", "Str",
		"U8", "U16", "U32", "U64", "U128", "U256",
		"I8", "I16", "I32", "I64", "I128", "I256",
	)

	typeDef := types.Union(
		variant("Composite", 0, types.Struct(field("fields", fields))),
		variant("Variant", 1, types.Struct(field("variants", types.Sequence(typeVariant)))),
		variant("Sequence", 2, types.Struct(field("type", typeID))),
		variant("Array", 3, types.Struct(field("len", u32), field("type", typeID))),
		variant("Tuple", 4, types.Sequence(typeID)),
		variant("Primitive", 5, primitive),
		variant("Compact", 6, types.Struct(field("type", typeID))),
		variant("BitSequence", 7, types.Struct(
			field("bit_store_type", typeID),
			field("bit_order_type", typeID),
		)),
	).Named("TypeDef")

	portableType := types.Struct(
		field("id", typeID),
		field("type", types.Struct(
			field("path", vecStr),
			field("params", types.Sequence(types.Struct(
				field("name", str),
				field("type", types.Option(typeID)),
			))),
			field("def", typeDef),
			field("docs", docs),
		)),
	).Named("PortableType")

	storageEntry := types.Struct(
		field("name", str),
		field("modifier", modifierEnum),
		field("type", types.Union(
			variant("Plain", 0, typeID),
			variant("Map", 1, types.Struct(
				field("hashers", types.Sequence(hasherEnum)),
				field("key", typeID),
				field("value", typeID),
			)),
		)),
		field("default", types.Bytes()),
		field("docs", docs),
	).Named("StorageEntryMetadata")

	typeRef := types.Struct(field("type", typeID))

	pallet := types.Struct(
		field("name", str),
		field("storage", types.Option(types.Struct(
			field("prefix", str),
			field("entries", types.Sequence(storageEntry)),
		))),
		field("calls", types.Option(typeRef)),
		field("event", types.Option(typeRef)),
		field("constants", types.Sequence(types.Struct(
			field("name", str),
			field("type", typeID),
			field("value", types.Bytes()),
			field("docs", docs),
		))),
		field("error", types.Option(typeRef)),
		field("index", u8),
	).Named("PalletMetadata")

	extrinsic := types.Struct(
		field("type", typeID),
		field("version", u8),
		field("signed_extensions", types.Sequence(types.Struct(
			field("identifier", str),
			field("type", typeID),
			field("additional_signed", typeID),
		))),
	).Named("ExtrinsicMetadata")

	return types.Struct(
		field("types", types.Sequence(portableType)),
		field("pallets", types.Sequence(pallet)),
		field("extrinsic", extrinsic),
		field("type", typeID),
	).Named("RuntimeMetadataV14")
}()

var v13Schema = func() *types.TypeDef {
	storageEntry := types.Struct(
		field("name", str),
		field("modifier", modifierEnum),
		field("type", types.Union(
			variant("Plain", 0, str),
			variant("Map", 1, types.Struct(
				field("hasher", hasherEnum),
				field("key", str),
				field("value", str),
				field("unused", boolTD),
			)),
			variant("DoubleMap", 2, types.Struct(
				field("hasher", hasherEnum),
				field("key1", str),
				field("key2", str),
				field("value", str),
				field("key2_hasher", hasherEnum),
			)),
			variant("NMap", 3, types.Struct(
				field("keys", vecStr),
				field("hashers", types.Sequence(hasherEnum)),
				field("value", str),
			)),
		)),
		field("default", types.Bytes()),
		field("docs", docs),
	).Named("StorageEntryMetadataV13")

	function := types.Struct(
		field("name", str),
		field("args", types.Sequence(types.Struct(
			field("name", str),
			field("type", str),
		))),
		field("docs", docs),
	).Named("FunctionMetadata")

	event := types.Struct(
		field("name", str),
		field("args", vecStr),
		field("docs", docs),
	).Named("EventMetadata")

	module := types.Struct(
		field("name", str),
		field("storage", types.Option(types.Struct(
			field("prefix", str),
			field("entries", types.Sequence(storageEntry)),
		))),
		field("calls", types.Option(types.Sequence(function))),
		field("events", types.Option(types.Sequence(event))),
		field("constants", types.Sequence(types.Struct(
			field("name", str),
			field("type", str),
			field("value", types.Bytes()),
			field("docs", docs),
		))),
		field("errors", types.Sequence(types.Struct(
			field("name", str),
			field("docs", docs),
		))),
		field("index", u8),
	).Named("ModuleMetadataV13")

	return types.Struct(
		field("modules", types.Sequence(module)),
		field("extrinsic", types.Struct(
			field("version", u8),
			field("signed_extensions", vecStr),
		)),
	).Named("RuntimeMetadataV13")
}()
