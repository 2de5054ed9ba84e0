// Package coerce converts loosely typed encode inputs into the Go values the
// codec writes.
//
// Inputs arrive from Go callers, YAML documents and the CLI, so the same
// integer may be an int, a float64 from a JSON-ish decoder, a decimal
// string or a big integer. Every helper reports ok=false instead of
// silently truncating.
//
// Shared by the codec, era and CLI input paths.
package coerce
