// Package types defines TypeDef, the closed description of every SCALE wire
// shape the codec understands.
//
// A TypeDef is a tagged variant keyed by Kind. Composite kinds reference
// their children by pointer, which lets the registry and the metadata
// decoder build cyclic graphs: a Placeholder is handed out first and later
// completed in place with Fill.
//
// # Key Types
//
//   - TypeDef: wire shape (primitive, compact, array, sequence, tuple,
//     struct, union, map, bit sequence, option, custom)
//   - Kind: discriminator over the closed set of shapes
//   - Custom: hook for shapes with bespoke packing (era, extrinsic)
package types
