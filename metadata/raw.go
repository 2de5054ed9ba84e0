package metadata

import (
	"github.com/wippyai/scale-codec/codec"
)

// PortableType is one entry of the v14 type registry as found on the wire.
type PortableType struct {
	Type TypeInfo `scale:"type"`
	ID   uint32   `scale:"id"`
}

type TypeInfo struct {
	Def    codec.Variant `scale:"def"`
	Path   []string      `scale:"path"`
	Params []TypeParam   `scale:"params"`
	Docs   []string      `scale:"docs"`
}

// TypeParam is a generic parameter. Type is nil when the parameter is not
// instantiated.
type TypeParam struct {
	Type *uint32 `scale:"type"`
	Name string  `scale:"name"`
}

type rawField struct {
	Name     *string  `scale:"name"`
	TypeName *string  `scale:"type_name"`
	Docs     []string `scale:"docs"`
	Type     uint32   `scale:"type"`
}

type rawVariant struct {
	Name   string     `scale:"name"`
	Fields []rawField `scale:"fields"`
	Docs   []string   `scale:"docs"`
	Index  uint8      `scale:"index"`
}

type rawComposite struct {
	Fields []rawField `scale:"fields"`
}

type rawVariantDef struct {
	Variants []rawVariant `scale:"variants"`
}

type rawTypeRef struct {
	Type uint32 `scale:"type"`
}

type rawArray struct {
	Len  uint32 `scale:"len"`
	Type uint32 `scale:"type"`
}

type rawStorage struct {
	Prefix  string            `scale:"prefix"`
	Entries []rawStorageEntry `scale:"entries"`
}

type rawStorageEntry struct {
	Type     codec.Variant `scale:"type"`
	Name     string        `scale:"name"`
	Modifier string        `scale:"modifier"`
	Default  []byte        `scale:"default"`
	Docs     []string      `scale:"docs"`
}

type rawStorageMap struct {
	Hashers []string `scale:"hashers"`
	Key     uint32   `scale:"key"`
	Value   uint32   `scale:"value"`
}

type rawConstant struct {
	Name  string   `scale:"name"`
	Value []byte   `scale:"value"`
	Docs  []string `scale:"docs"`
	Type  uint32   `scale:"type"`
}

type rawPallet struct {
	Storage   *rawStorage   `scale:"storage"`
	Calls     *rawTypeRef   `scale:"calls"`
	Event     *rawTypeRef   `scale:"event"`
	Error     *rawTypeRef   `scale:"error"`
	Name      string        `scale:"name"`
	Constants []rawConstant `scale:"constants"`
	Index     uint8         `scale:"index"`
}

type rawSignedExtension struct {
	Identifier       string `scale:"identifier"`
	Type             uint32 `scale:"type"`
	AdditionalSigned uint32 `scale:"additional_signed"`
}

type rawExtrinsic struct {
	SignedExtensions []rawSignedExtension `scale:"signed_extensions"`
	Type             uint32               `scale:"type"`
	Version          uint8                `scale:"version"`
}

type rawV14 struct {
	Types     []PortableType `scale:"types"`
	Pallets   []rawPallet    `scale:"pallets"`
	Extrinsic rawExtrinsic   `scale:"extrinsic"`
	Type      uint32         `scale:"type"`
}

type rawStorageV13 struct {
	Prefix  string               `scale:"prefix"`
	Entries []rawStorageEntryV13 `scale:"entries"`
}

type rawStorageEntryV13 struct {
	Type     codec.Variant `scale:"type"`
	Name     string        `scale:"name"`
	Modifier string        `scale:"modifier"`
	Default  []byte        `scale:"default"`
	Docs     []string      `scale:"docs"`
}

type rawMapV13 struct {
	Hasher string `scale:"hasher"`
	Key    string `scale:"key"`
	Value  string `scale:"value"`
}

type rawDoubleMapV13 struct {
	Hasher     string `scale:"hasher"`
	Key1       string `scale:"key1"`
	Key2       string `scale:"key2"`
	Value      string `scale:"value"`
	Key2Hasher string `scale:"key2_hasher"`
}

type rawNMapV13 struct {
	Keys    []string `scale:"keys"`
	Hashers []string `scale:"hashers"`
	Value   string   `scale:"value"`
}

type rawArgV13 struct {
	Name string `scale:"name"`
	Type string `scale:"type"`
}

type rawFunctionV13 struct {
	Name string      `scale:"name"`
	Args []rawArgV13 `scale:"args"`
	Docs []string    `scale:"docs"`
}

type rawEventV13 struct {
	Name string   `scale:"name"`
	Args []string `scale:"args"`
	Docs []string `scale:"docs"`
}

type rawConstantV13 struct {
	Name  string   `scale:"name"`
	Type  string   `scale:"type"`
	Value []byte   `scale:"value"`
	Docs  []string `scale:"docs"`
}

type rawErrorV13 struct {
	Name string   `scale:"name"`
	Docs []string `scale:"docs"`
}

type rawModuleV13 struct {
	Storage   *rawStorageV13    `scale:"storage"`
	Calls     *[]rawFunctionV13 `scale:"calls"`
	Events    *[]rawEventV13    `scale:"events"`
	Name      string            `scale:"name"`
	Constants []rawConstantV13  `scale:"constants"`
	Errors    []rawErrorV13     `scale:"errors"`
	Index     uint8             `scale:"index"`
}

type rawV13 struct {
	Modules   []rawModuleV13 `scale:"modules"`
	Extrinsic struct {
		SignedExtensions []string `scale:"signed_extensions"`
		Version          uint8    `scale:"version"`
	} `scale:"extrinsic"`
}
