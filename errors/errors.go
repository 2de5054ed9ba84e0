package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseResolve  Phase = "resolve"  // type expression resolution
	PhaseRegister Phase = "register" // registry mutation
	PhaseEncode   Phase = "encode"   // value to bytes
	PhaseDecode   Phase = "decode"   // bytes to value
	PhaseMetadata Phase = "metadata" // metadata decoding
	PhaseParse    Phase = "parse"    // preset/config/expression parsing
	PhaseAddress  Phase = "address"  // address format collaborator
)

// Kind categorizes the error
type Kind string

const (
	KindBufferUnderflow  Kind = "buffer_underflow"
	KindInvalidData      Kind = "invalid_data"
	KindRemainingBytes   Kind = "remaining_bytes"
	KindUnknownType      Kind = "unknown_type"
	KindEncodeConstraint Kind = "encode_constraint"
	KindTypeMismatch     Kind = "type_mismatch"
	KindFieldMissing     Kind = "field_missing"
	KindUnsupported      Kind = "unsupported"
	KindNotInitialized   Kind = "not_initialized"
)

// Sentinels for errors.Is matching by kind regardless of phase.
var (
	ErrBufferUnderflow  = &Error{Kind: KindBufferUnderflow}
	ErrInvalidData      = &Error{Kind: KindInvalidData}
	ErrRemainingBytes   = &Error{Kind: KindRemainingBytes}
	ErrUnknownType      = &Error{Kind: KindUnknownType}
	ErrEncodeConstraint = &Error{Kind: KindEncodeConstraint}
	ErrNotInitialized   = &Error{Kind: KindNotInitialized}
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	ScaleType string
	Detail    string
	Path      []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ScaleType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ScaleType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", SCALE type ")
			b.WriteString(e.ScaleType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("SCALE type ")
			b.WriteString(e.ScaleType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ScaleType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ScaleType sets the SCALE type name
func (b *Builder) ScaleType(t string) *Builder {
	b.err.ScaleType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BufferUnderflow creates an error for a read past the end of the input
func BufferUnderflow(path []string, want, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBufferUnderflow,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", want, remaining),
		Value:  want,
	}
}

// RemainingBytes creates an error for a top-level decode that left input unread
func RemainingBytes(remaining int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindRemainingBytes,
		Detail: fmt.Sprintf("%d bytes not consumed: %x", remaining, preview),
		Value:  remaining,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, scaleType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Path:      path,
		GoType:    goType,
		ScaleType: scaleType,
	}
}

// UnknownType creates a registry resolution error
func UnknownType(name string) *Error {
	return &Error{
		Phase:     PhaseResolve,
		Kind:      KindUnknownType,
		ScaleType: name,
		Detail:    fmt.Sprintf("type %q is not registered", name),
	}
}

// FieldMissing creates a missing field error.
// On encode a missing field is a constraint violation.
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	kind := KindFieldMissing
	if phase == PhaseEncode {
		kind = KindEncodeConstraint
	}
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidDiscriminant creates an invalid discriminant error for unions
func InvalidDiscriminant(phase Phase, path []string, disc uint8, variants int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d matches none of %d variants", disc, variants),
		Value:  disc,
	}
}

// EncodeConstraint creates an encode-side constraint violation
func EncodeConstraint(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncodeConstraint,
		Path:   path,
		Detail: detail,
	}
}

// Overflow creates an error for a value outside its declared width.
// Encode-side overflows are constraint violations, decode-side ones invalid data.
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	kind := KindInvalidData
	if phase == PhaseEncode {
		kind = KindEncodeConstraint
	}
	return &Error{
		Phase:     phase,
		Kind:      kind,
		Path:      path,
		ScaleType: targetType,
		Detail:    fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:     value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for objects used before decode
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
