// Package ss58 encodes account public keys as checksummed base58 addresses.
//
// An address is base58(prefix ++ payload ++ checksum), where the prefix
// carries the network format in one byte (formats below 64) or two, and the
// checksum is the head of blake2b-512("SS58PRE" ++ prefix ++ payload).
//
// Formatter plugs the scheme into the codec so account ids decode to
// addresses and addresses are accepted on encode:
//
//	c := codec.New(codec.WithAddressFormatter(ss58.NewFormatter(ss58.Substrate)))
package ss58
