// Package parse tokenizes and parses SCALE type expressions.
//
// Grammar:
//
//	type  := ident [ '<' list '>' ]
//	       | '(' [ list ] ')'
//	       | '[' type ';' number ']'
//	list  := type { ',' type } [ ',' ]
//	ident := name { '::' name }
//
// Normalize rewrites legacy runtime type strings (trait-qualified paths,
// T:: prefixes, &'static [u8]) before parsing.
//
// This package is internal to the registry.
package parse
