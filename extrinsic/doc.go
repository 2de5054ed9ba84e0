// Package extrinsic encodes and decodes runtime transactions and their
// validity era.
//
// An extrinsic is a version byte (high bit set when signed), the signing
// material when signed, and a call, all wrapped in a Compact length prefix:
//
//	[len] [0x84] [address] [signature] [era] [nonce] [tip] [pallet] [call] [args...]
//
// The call, address and signature types come from a Runtime, normally the
// decoded metadata:
//
//	c := extrinsic.New(md, nil)
//	data, err := c.Encode(&extrinsic.Extrinsic{
//		Call: extrinsic.Call{
//			Module:   "Balances",
//			Function: "transfer_keep_alive",
//			Args:     map[string]any{"dest": dest, "value": 1_000_000_000_000},
//		},
//	})
//
// Era values follow the two byte mortal encoding: the low four bits carry
// log2(period)-1 and the upper twelve the quantised phase.
package extrinsic
