package ss58

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/scale-codec/errors"
)

// Well-known network formats.
const (
	Polkadot  uint16 = 0
	Kusama    uint16 = 2
	Substrate uint16 = 42
)

// MaxFormat is the largest format that fits the two byte prefix.
const MaxFormat = 1<<14 - 1

var checksumPrefix = []byte("SS58PRE")

// Encode renders a public key or account index as an address of format.
// Accepted payload lengths are 1, 2, 4 and 8 (indices) and 32 and 33 (keys).
func Encode(payload []byte, format uint16) (string, error) {
	switch len(payload) {
	case 1, 2, 4, 8, 32, 33:
	default:
		return "", errors.New(errors.PhaseAddress, errors.KindInvalidData).
			Value(len(payload)).
			Detail("cannot encode a %d byte payload", len(payload)).
			Build()
	}
	if format > MaxFormat || format == 46 || format == 47 {
		return "", errors.New(errors.PhaseAddress, errors.KindInvalidData).
			Value(format).
			Detail("format %d is reserved or out of range", format).
			Build()
	}

	var raw []byte
	if format < 64 {
		raw = append(raw, byte(format))
	} else {
		raw = append(raw,
			byte((format&0b1111_1100)>>2)|0b0100_0000,
			byte(format>>8)|byte(format&0b11)<<6,
		)
	}
	raw = append(raw, payload...)

	sum := checksum(raw)
	n := checksumLen(len(payload))
	raw = append(raw, sum[:n]...)
	return base58.Encode(raw), nil
}

// Decode parses an address and returns its payload and network format.
func Decode(address string) ([]byte, uint16, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, 0, errors.New(errors.PhaseAddress, errors.KindInvalidData).
			Value(address).
			Detail("invalid base58").
			Cause(err).
			Build()
	}
	if len(raw) < 2 {
		return nil, 0, invalid(address, "too short")
	}
	if raw[0]&0b1000_0000 != 0 {
		return nil, 0, invalid(address, "invalid prefix")
	}

	var (
		format    uint16
		prefixLen = 1
	)
	if raw[0]&0b0100_0000 != 0 {
		prefixLen = 2
		format = uint16(raw[0]&0b0011_1111)<<2 | uint16(raw[1]>>6) | uint16(raw[1]&0b0011_1111)<<8
	} else {
		format = uint16(raw[0])
	}
	if format == 46 || format == 47 {
		return nil, 0, invalid(address, "reserved format")
	}

	n := 1
	if len(raw) == prefixLen+34 || len(raw) == prefixLen+35 {
		n = 2
	}
	if len(raw) <= prefixLen+n {
		return nil, 0, invalid(address, "too short")
	}

	body := raw[:len(raw)-n]
	payload := body[prefixLen:]
	if checksumLen(len(payload)) != n {
		return nil, 0, invalid(address, fmt.Sprintf("unexpected payload length %d", len(payload)))
	}
	sum := checksum(body)
	if !bytes.Equal(sum[:n], raw[len(raw)-n:]) {
		return nil, 0, invalid(address, "checksum mismatch")
	}
	return payload, format, nil
}

func invalid(address, detail string) error {
	return errors.New(errors.PhaseAddress, errors.KindInvalidData).
		Value(address).
		Detail("%s", detail).
		Build()
}

func checksum(data []byte) [64]byte {
	return blake2b.Sum512(append(append([]byte{}, checksumPrefix...), data...))
}

func checksumLen(payloadLen int) int {
	switch payloadLen {
	case 32, 33:
		return 2
	case 1, 2, 4, 8:
		return 1
	}
	return 0
}
