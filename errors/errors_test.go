package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseEncode,
				Kind:      KindTypeMismatch,
				Path:      []string{"call", "args", "value"},
				GoType:    "string",
				ScaleType: "u32",
				Detail:    "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "call.args.value", "string", "u32", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindBufferUnderflow,
			},
			contains: []string{"[decode]", "buffer_underflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMetadata,
				Kind:   KindInvalidData,
				Detail: "bad magic",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[metadata]", "invalid_data", "bad magic", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseDecode, KindInvalidData, cause, "outer")
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := BufferUnderflow([]string{"x"}, 4, 1)

	if !errors.Is(err, ErrBufferUnderflow) {
		t.Error("sentinel without phase should match on kind")
	}
	if errors.Is(err, ErrInvalidData) {
		t.Error("different kind should not match")
	}
	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindBufferUnderflow}) {
		t.Error("same phase and kind should match")
	}
	if errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindBufferUnderflow}) {
		t.Error("different phase should not match")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrBufferUnderflow) {
		t.Error("wrapped error should match sentinel")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseEncode, KindEncodeConstraint).
		Path("a", "b").
		GoType("int").
		ScaleType("u8").
		Value(300).
		Detail("value %d too large", 300).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindEncodeConstraint {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if strings.Join(err.Path, ".") != "a.b" {
		t.Errorf("path = %v", err.Path)
	}
	if err.Detail != "value 300 too large" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Value != 300 {
		t.Errorf("value = %v", err.Value)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{BufferUnderflow(nil, 2, 0), KindBufferUnderflow},
		{RemainingBytes(3, []byte{1, 2, 3}), KindRemainingBytes},
		{UnknownType("Foo"), KindUnknownType},
		{FieldMissing(PhaseEncode, nil, "dest"), KindEncodeConstraint},
		{FieldMissing(PhaseMetadata, nil, "dest"), KindFieldMissing},
		{InvalidDiscriminant(PhaseDecode, nil, 9, 2), KindInvalidData},
		{EncodeConstraint(nil, "want %d items", 3), KindEncodeConstraint},
		{Overflow(PhaseEncode, nil, 256, "u8"), KindEncodeConstraint},
		{Overflow(PhaseDecode, nil, 256, "u8"), KindInvalidData},
		{Unsupported(PhaseMetadata, "v9"), KindUnsupported},
		{NotInitialized(PhaseMetadata, "metadata"), KindNotInitialized},
		{ParseFailed("preset", errors.New("x")), KindInvalidData},
	}

	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("%s: kind = %s, want %s", tt.err.Error(), tt.err.Kind, tt.kind)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", UnknownType("Foo"))
	if got := KindOf(err); got != KindUnknownType {
		t.Errorf("KindOf = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q", got)
	}
}
