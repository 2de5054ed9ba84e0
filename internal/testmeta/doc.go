// Package testmeta builds metadata blobs for tests: a small v14 runtime
// with recursive calls and a legacy v13 runtime with string type names.
package testmeta
