// Package storage derives runtime storage keys.
//
// A plain value lives at twox128(pallet) ++ twox128(entry). Map entries
// append, for every key, the key's SCALE encoding passed through the
// entry's hasher:
//
//	key, _ := storage.Key("System", "Account",
//		[]storage.Hasher{storage.Blake2_128Concat}, accountID)
package storage
