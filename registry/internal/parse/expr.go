package parse

import (
	"fmt"
	"strconv"
	"strings"
)

type ExprKind int

const (
	// Named is an identifier with optional generic arguments.
	Named ExprKind = iota
	// Tuple is a parenthesised list. The empty tuple is the unit type.
	Tuple
	// Array is [Elem; Len].
	Array
)

// Expr is a parsed type expression.
type Expr struct {
	Elem *Expr
	Name string
	Args []*Expr // generic arguments or tuple elements
	Len  int
	Kind ExprKind
}

// String renders the canonical form: no spaces except after commas and
// semicolons.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	switch e.Kind {
	case Tuple:
		b.WriteByte('(')
		writeList(b, e.Args)
		b.WriteByte(')')
	case Array:
		b.WriteByte('[')
		e.Elem.write(b)
		b.WriteString("; ")
		b.WriteString(strconv.Itoa(e.Len))
		b.WriteByte(']')
	default:
		b.WriteString(e.Name)
		if len(e.Args) > 0 {
			b.WriteByte('<')
			writeList(b, e.Args)
			b.WriteByte('>')
		}
	}
}

func writeList(b *strings.Builder, items []*Expr) {
	for i, a := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
}

// Parse parses a complete type expression.
func Parse(input string) (*Expr, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty type expression")
	}
	p := &parser{tokens: tokens}
	e, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, fmt.Errorf("offset %d: unexpected %q after type", t.Pos, t.Value)
	}
	return e, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ TokenType) (*Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, fmt.Errorf("offset %d: expected %v, got %q", t.Pos, typ, t.Value)
	}
	return t, nil
}

func (p *parser) parseType() (*Expr, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected type")
	}

	switch t.Type {
	case LParen:
		elems, err := p.parseList(RParen)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: Tuple, Args: elems}, nil

	case LBracket:
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(Semi); err != nil {
			return nil, err
		}
		n, err := p.expect(Number)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.ReplaceAll(n.Value, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("offset %d: bad array length %q", n.Pos, n.Value)
		}
		if _, err := p.expect(RBracket); err != nil {
			return nil, err
		}
		return &Expr{Kind: Array, Elem: elem, Len: size}, nil

	case Ident:
		e := &Expr{Kind: Named, Name: t.Value}
		if next := p.peek(); next != nil && next.Type == LAngle {
			p.next()
			args, err := p.parseList(RAngle)
			if err != nil {
				return nil, err
			}
			if len(args) == 0 {
				return nil, fmt.Errorf("offset %d: empty generic arguments for %s", t.Pos, t.Value)
			}
			e.Args = args
		}
		return e, nil
	}

	return nil, fmt.Errorf("offset %d: unexpected %q", t.Pos, t.Value)
}

// parseList parses comma separated types up to the closing token. A
// trailing comma is accepted.
func (p *parser) parseList(closing TokenType) ([]*Expr, error) {
	var items []*Expr
	for {
		t := p.peek()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input, expected %v", closing)
		}
		if t.Type == closing {
			p.next()
			return items, nil
		}
		item, err := p.parseType()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		t = p.next()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input, expected %v", closing)
		}
		switch t.Type {
		case closing:
			return items, nil
		case Comma:
		default:
			return nil, fmt.Errorf("offset %d: expected ',' or %v, got %q", t.Pos, closing, t.Value)
		}
	}
}
