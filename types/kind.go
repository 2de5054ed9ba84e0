package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindI256
	KindF32
	KindF64
	KindChar
	KindStr
	KindNull
	KindCompact
	KindArray
	KindSequence
	KindTuple
	KindStruct
	KindUnion
	KindMap
	KindBitSequence
	KindOption
	KindCustom
	KindPending
)

var kindNames = [...]string{
	KindBool:        "bool",
	KindU8:          "u8",
	KindU16:         "u16",
	KindU32:         "u32",
	KindU64:         "u64",
	KindU128:        "u128",
	KindU256:        "u256",
	KindI8:          "i8",
	KindI16:         "i16",
	KindI32:         "i32",
	KindI64:         "i64",
	KindI128:        "i128",
	KindI256:        "i256",
	KindF32:         "f32",
	KindF64:         "f64",
	KindChar:        "char",
	KindStr:         "str",
	KindNull:        "()",
	KindCompact:     "compact",
	KindArray:       "array",
	KindSequence:    "sequence",
	KindTuple:       "tuple",
	KindStruct:      "struct",
	KindUnion:       "union",
	KindMap:         "map",
	KindBitSequence: "bitsequence",
	KindOption:      "option",
	KindCustom:      "custom",
	KindPending:     "pending",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a fixed-width scalar or str.
func (k Kind) IsPrimitive() bool {
	return k <= KindStr
}

// IsInteger reports whether k is a fixed-width integer.
func (k Kind) IsInteger() bool {
	return k >= KindU8 && k <= KindI256
}

// IsSigned reports whether k is a signed integer.
func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI256
}

// Width returns the encoded byte width of fixed-width scalars, 0 otherwise.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32, KindChar:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	case KindU128, KindI128:
		return 16
	case KindU256, KindI256:
		return 32
	}
	return 0
}

// PrimitiveByName maps a primitive type name to its kind.
func PrimitiveByName(name string) (Kind, bool) {
	switch name {
	case "bool":
		return KindBool, true
	case "u8":
		return KindU8, true
	case "u16":
		return KindU16, true
	case "u32":
		return KindU32, true
	case "u64":
		return KindU64, true
	case "u128":
		return KindU128, true
	case "u256":
		return KindU256, true
	case "i8":
		return KindI8, true
	case "i16":
		return KindI16, true
	case "i32":
		return KindI32, true
	case "i64":
		return KindI64, true
	case "i128":
		return KindI128, true
	case "i256":
		return KindI256, true
	case "f32":
		return KindF32, true
	case "f64":
		return KindF64, true
	case "char":
		return KindChar, true
	case "str":
		return KindStr, true
	case "()":
		return KindNull, true
	}
	return 0, false
}
