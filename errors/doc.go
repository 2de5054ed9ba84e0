// Package errors provides structured error types for the SCALE codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/SCALE type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindEncodeConstraint).
//		Path("call", "args", "value").
//		GoType("string").
//		ScaleType("u32").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u32")
//	err := errors.BufferUnderflow(path, 4, 1)
//
// The sentinels ErrBufferUnderflow, ErrInvalidData, ErrRemainingBytes,
// ErrUnknownType and ErrEncodeConstraint match any error of the same kind:
//
//	if errors.Is(err, scaleerrors.ErrRemainingBytes) { ... }
package errors
