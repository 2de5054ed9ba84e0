package parse

import (
	"fmt"
	"unicode"
)

type TokenType int

const (
	Ident TokenType = iota
	Number
	LAngle
	RAngle
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semi
)

func (t TokenType) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case LAngle:
		return "'<'"
	case RAngle:
		return "'>'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Semi:
		return "';'"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  TokenType
	Pos   int
}

var punct = map[rune]TokenType{
	'<': LAngle,
	'>': RAngle,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semi,
}

// Tokenize splits a type expression. Identifiers may contain "::" path
// separators.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsSpace(r) {
			continue
		}

		if t, ok := punct[r]; ok {
			tokens = append(tokens, Token{string(r), t, i})
			continue
		}

		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, start})
			i--
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					i++
				} else if c == ':' && i+2 < len(runes) && runes[i+1] == ':' && isPathSegmentStart(runes[i+2]) {
					i += 2
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, start})
			i--
			continue
		}

		return nil, fmt.Errorf("offset %d: unexpected character %q", i, r)
	}

	return tokens, nil
}

// isPathSegmentStart allows numeric segments such as scale_info::42.
func isPathSegmentStart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
