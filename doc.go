// Package scalecodec provides a Go implementation of the SCALE codec used by
// Substrate based chains, together with a type registry and runtime metadata
// support.
//
// Values are encoded and decoded against declarative type definitions. The
// definitions come from type expressions resolved by a registry, from YAML
// presets, or from the portable type table of decoded runtime metadata.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	scalecodec/
//	├── buffer/          Read cursor, writer and the 0x hex text form
//	├── compact/         Compact<T> variable length integers
//	├── types/           Type definitions over a closed set of kinds
//	├── codec/           Type driven encoder and decoder
//	├── registry/        Named types, expression grammar, versioned overrides, presets
//	├── metadata/        Runtime metadata v14 and legacy v13
//	├── extrinsic/       Extrinsic envelope and transaction eras
//	├── storage/         Storage hashers and storage keys
//	├── ss58/            SS58 address format
//	├── errors/          Structured error types for debugging
//	└── cmd/scale/       Command line tool
//
// # Quick Start
//
// Resolve a type expression and encode a value:
//
//	reg := registry.Default()
//	td, err := reg.Unversioned().Resolve("(u8, Vec<u8>)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := codec.Encode(td, []any{1, []byte{1, 2, 3}})
//	fmt.Println(buffer.EncodeHex(data)) // 0x010c010203
//
//	v, err := codec.Decode(td, data)
//	fmt.Println(v) // [1 [1 2 3]]
//
// Decode runtime metadata and an extrinsic:
//
//	m, err := metadata.Decode(blob, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	x, err := extrinsic.New(m, nil).Decode(raw)
//	call, _ := extrinsic.CallOf(x.Call)
//	fmt.Println(call.Module, call.Function)
//
// # Value Shapes
//
// Decoding produces a fixed set of Go shapes per kind:
//
//   - Integers: uint8-uint64, int8-int64, *uint256.Int and *big.Int for 128 and 256 bits
//   - Bytes: []byte, or an address string for account types when a formatter is set
//   - Compound: []any for sequences and tuples, map[string]any for structs
//   - Unions: codec.Variant; maps: []codec.MapEntry in encounter order
//
// Top-level decoding is strict: input left after the value is an error.
//
// # Thread Safety
//
// Codecs and resolved type definitions are safe for concurrent use. A
// Registry serializes writers; resolvers cache per spec version and reset
// when the registry changes.
package scalecodec
