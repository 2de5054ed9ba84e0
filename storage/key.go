package storage

import "github.com/wippyai/scale-codec/errors"

// Prefix returns twox128(pallet) ++ twox128(entry).
func Prefix(pallet, entry string) []byte {
	return append(Twox([]byte(pallet), 16), Twox([]byte(entry), 16)...)
}

// Key builds the storage key of a map entry from the encoded keys, one per
// hasher. Fewer keys than hashers yields an iteration prefix.
func Key(pallet, entry string, hashers []Hasher, keys ...[]byte) ([]byte, error) {
	if len(keys) > len(hashers) {
		return nil, errors.New(errors.PhaseEncode, errors.KindEncodeConstraint).
			Path(pallet, entry).
			Detail("%d keys for %d hashers", len(keys), len(hashers)).
			Build()
	}
	out := Prefix(pallet, entry)
	for i, k := range keys {
		out = append(out, hashers[i].Hash(k)...)
	}
	return out, nil
}
