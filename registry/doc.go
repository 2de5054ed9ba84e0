// Package registry maps type names and type expressions to definitions.
//
// A Registry holds named entries (aliases, new types, structs, enums and
// ready-made definitions), optionally overridden for ranges of runtime spec
// versions. A Resolver binds a registry to one spec version and resolves
// expressions such as:
//
//	u32, Compact<Balance>, Vec<(AccountId, u8)>, [u8; 32], Option<Bytes>,
//	BTreeMap<Text, u32>, Result<(), DispatchError>
//
// Legacy runtime strings are normalised first, so "<T as Trait>::Balance"
// and "T::Balance" both resolve as "Balance".
//
// Overlapping version overrides are decided by the narrowest range
// containing the version; equal ranges go to the latest registration.
//
// Presets are YAML documents loaded with LoadPreset; the embedded "default"
// preset carries the common runtime types and backs Default().
package registry
