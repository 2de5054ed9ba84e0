package parse

import (
	"regexp"
	"strings"
)

var (
	// <T as Trait>::, <T as frame_system::Config<I>>:: and similar
	qualifiedPath = regexp.MustCompile(`<T\s+as\s+[A-Za-z_][A-Za-z0-9_:]*(<[^<>]*>)?>::`)
	lookupSource  = regexp.MustCompile(`<T::Lookup\s+as\s+StaticLookup>::Source`)
	instanceArgs  = regexp.MustCompile(`<T(,\s*I)?>|<I>`)
	staticBytes   = regexp.MustCompile(`&(\s*'static)?\s*\[\s*u8\s*\]`)
)

// Normalize rewrites legacy runtime type strings into the plain grammar:
// trait qualified paths and T:: prefixes are dropped, bare generic
// parameters are removed and byte slices become Bytes.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", "")
	s = lookupSource.ReplaceAllString(s, "LookupSource")
	s = qualifiedPath.ReplaceAllString(s, "")
	s = staticBytes.ReplaceAllString(s, "Bytes")
	s = strings.ReplaceAll(s, "T::", "")
	s = instanceArgs.ReplaceAllString(s, "")
	return s
}
