package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/extrinsic"
)

// plain turns a decoded value into something YAML can print: bytes become
// hex, unions become single-key maps and wide integers become numbers when
// they fit, decimal strings otherwise.
func plain(v any) any {
	switch v := v.(type) {
	case []byte:
		return buffer.EncodeHex(v)
	case *uint256.Int:
		if v == nil {
			return nil
		}
		if v.IsUint64() {
			return v.Uint64()
		}
		return v.Dec()
	case *big.Int:
		if v == nil {
			return nil
		}
		if v.IsInt64() {
			return v.Int64()
		}
		return v.String()
	case codec.Variant:
		if v.Value == nil {
			return v.Name
		}
		return map[string]any{v.Name: plain(v.Value)}
	case codec.BitVec:
		return v.String()
	case []codec.MapEntry:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = map[string]any{"key": plain(e.Key), "value": plain(e.Value)}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}
		return out
	case extrinsic.Era:
		return v.String()
	case *extrinsic.Extrinsic:
		return plainExtrinsic(v)
	}
	return v
}

func plainExtrinsic(x *extrinsic.Extrinsic) map[string]any {
	out := map[string]any{
		"version": x.Version,
		"signed":  x.IsSigned(),
	}
	if call, ok := extrinsic.CallOf(x.Call); ok {
		out["call_module"] = call.Module
		out["call_function"] = call.Function
		out["call_args"] = plain(call.Args)
	} else {
		out["call"] = plain(x.Call)
	}
	if sig := x.Signature; sig != nil {
		out["address"] = plain(sig.Address)
		out["signature"] = plain(sig.Signature)
		out["era"] = sig.Era.String()
		out["nonce"] = sig.Nonce
		out["tip"] = plain(sig.Tip)
	}
	return out
}

func printValue(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plain(v)); err != nil {
		return err
	}
	return enc.Close()
}

// parseValue reads a YAML value from the command line. Hex literals stay
// strings so they reach byte types intact, and integers too wide for 64
// bits stay decimal strings.
func parseValue(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	return nodeValue(&doc)
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	}

	// YAML reads integers beyond 64 bits as floats
	if tag := n.ShortTag(); tag == "!!int" || (tag == "!!float" && isInteger(n.Value)) {
		return intValue(n.Value), nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse value %q: %w", n.Value, err)
	}
	return v, nil
}

func intValue(s string) any {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u
	}
	return s
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// hexArg accepts hex with or without the 0x prefix.
func hexArg(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return buffer.DecodeHex(s)
}
