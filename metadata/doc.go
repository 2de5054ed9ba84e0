// Package metadata decodes Substrate runtime metadata and derives the type
// definitions needed to work with a runtime: the call and event unions, the
// signer types of extrinsics, constants and storage keys.
//
// Version 14 metadata carries a portable type registry, which is converted
// into linked definitions in two passes so recursive types such as a call
// that batches calls resolve to shared, cyclic definitions:
//
//	m, err := metadata.Decode(blob, nil)
//	if err != nil {
//		return err
//	}
//	call, err := m.CallTypeDef()
//
// Version 13 metadata names its types as strings; they are resolved against
// a registry, normally one loaded with the legacy preset.
//
// Metadata implements extrinsic.Runtime, so it can be handed directly to
// extrinsic.New.
package metadata
