package extrinsic_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	scaleerrors "github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/extrinsic"
)

func TestDecodeEra(t *testing.T) {
	tests := []struct {
		hex    string
		period uint64
		phase  uint64
	}{
		{"0x4e9c", 32768, 20000},
		{"0xc503", 64, 60},
		{"0x8502", 64, 40},
		{"0x6935", 1024, 854},
		{"0x0100", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			b, err := buffer.FromHex(tt.hex)
			if err != nil {
				t.Fatal(err)
			}
			era, err := extrinsic.DecodeEra(b)
			if err != nil {
				t.Fatal(err)
			}
			if era.Period != tt.period || era.Phase != tt.phase {
				t.Errorf("got (%d, %d), want (%d, %d)", era.Period, era.Phase, tt.period, tt.phase)
			}
			if got := buffer.EncodeHex(era.Encode()); got != tt.hex {
				t.Errorf("re-encoded %s", got)
			}
		})
	}
}

func TestDecodeEraErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, scaleerrors.ErrBufferUnderflow},
		{"truncated mortal", []byte{0x41}, scaleerrors.ErrBufferUnderflow},
		{"period below four", []byte{0x10, 0x00}, scaleerrors.ErrInvalidData},
		{"phase beyond period", []byte{0x41, 0x00}, scaleerrors.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extrinsic.DecodeEra(buffer.New(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImmortalEra(t *testing.T) {
	era := extrinsic.NewImmortal()
	if !bytes.Equal(era.Encode(), []byte{0}) {
		t.Errorf("encode = %x", era.Encode())
	}
	for _, current := range []uint64{0, 1, 4955, math.MaxUint64} {
		if era.Birth(current) != 0 {
			t.Errorf("birth(%d) = %d", current, era.Birth(current))
		}
		if era.Death(current) != math.MaxUint64 {
			t.Errorf("death(%d) = %d", current, era.Death(current))
		}
	}

	decoded, err := extrinsic.DecodeEra(buffer.New([]byte{0}))
	if err != nil || !decoded.IsImmortal() {
		t.Errorf("decoded = %v, %v", decoded, err)
	}
}

func TestNewMortal(t *testing.T) {
	tests := []struct {
		period, current uint64
		wantPeriod      uint64
		wantPhase       uint64
	}{
		{666, 4950, 1024, 854},
		{64, 60, 64, 60},
		{1, 10, 4, 2},
		{0, 10, 4, 2},
		{1 << 20, 5, 65536, 0},
		{32768, 20000, 32768, 20000},
		{32768, 20005, 32768, 20000},
	}

	for _, tt := range tests {
		era := extrinsic.NewMortal(tt.period, tt.current)
		if era.Period != tt.wantPeriod || era.Phase != tt.wantPhase {
			t.Errorf("NewMortal(%d, %d) = %v", tt.period, tt.current, era)
		}
	}

	era := extrinsic.NewMortal(666, 4950)
	if got := buffer.EncodeHex(era.Encode()); got != "0x6935" {
		t.Errorf("encode = %s", got)
	}
	if era.Birth(4955) != 4950 {
		t.Errorf("birth = %d", era.Birth(4955))
	}
	if era.Death(4955) != 5974 {
		t.Errorf("death = %d", era.Death(4955))
	}
}

func TestMortalLifetime(t *testing.T) {
	era, err := extrinsic.MortalFromParts(256, 120)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		current, birth, death uint64
	}{
		{1400, 1400, 1656},
		{1410, 1400, 1656},
		{1399, 1144, 1400},
		{0, 120, 376},
	}
	for _, tt := range tests {
		if got := era.Birth(tt.current); got != tt.birth {
			t.Errorf("birth(%d) = %d, want %d", tt.current, got, tt.birth)
		}
		if got := era.Death(tt.current); got != tt.death {
			t.Errorf("death(%d) = %d, want %d", tt.current, got, tt.death)
		}
	}
}

func TestMortalFromPartsErrors(t *testing.T) {
	tests := []struct {
		period, phase uint64
	}{
		{2, 0},
		{100, 0},
		{1 << 17, 0},
		{64, 64},
		{32768, 20001},
	}
	for _, tt := range tests {
		_, err := extrinsic.MortalFromParts(tt.period, tt.phase)
		if !errors.Is(err, scaleerrors.ErrEncodeConstraint) {
			t.Errorf("MortalFromParts(%d, %d) error = %v", tt.period, tt.phase, err)
		}
	}
}

func TestEraTypeDef(t *testing.T) {
	td := extrinsic.EraTypeDef()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"map with current", map[string]any{"period": 666, "current": 4950}, "0x6935"},
		{"map with phase", map[string]any{"period": 64, "phase": 60}, "0xc503"},
		{"era value", extrinsic.NewMortal(64, 40), "0x8502"},
		{"hex", "0x4e9c", "0x4e9c"},
		{"bare hex", "00", "0x00"},
		{"immortal name", "Immortal", "0x00"},
		{"nil", nil, "0x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Encode(td, tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got := buffer.EncodeHex(data); got != tt.want {
				t.Fatalf("encode = %s, want %s", got, tt.want)
			}
			v, err := codec.Decode(td, data)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := v.(extrinsic.Era); !ok {
				t.Errorf("decoded %T", v)
			}
		})
	}

	if _, err := codec.Encode(td, map[string]any{"phase": 1}); !errors.Is(err, scaleerrors.ErrEncodeConstraint) {
		t.Errorf("missing period error = %v", err)
	}
	if _, err := codec.Encode(td, 5); err == nil {
		t.Error("integer input should fail")
	}
}
