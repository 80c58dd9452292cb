package sexp

import (
	"fmt"
	"io"
	"strings"
)

// parser builds Node trees from a lexer token stream.
type parser struct {
	lexer   *lexer
	current token
}

// Parse reads every top-level S-expression from r.
func Parse(r io.Reader) ([]*Node, error) {
	p := &parser{lexer: newLexer(r)}

	tok, err := p.lexer.next()
	if err != nil {
		return nil, err
	}
	p.current = tok

	var result []*Node
	for p.current.typ != tokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)

		tok, err := p.lexer.next()
		if err != nil {
			return nil, err
		}
		p.current = tok
	}

	return result, nil
}

// ParseOne reads exactly one top-level S-expression from r. Used for
// documents whose root is a single node, like board and footprint files.
func ParseOne(r io.Reader) (*Node, error) {
	nodes, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty input or no valid s-expressions found")
	}
	return nodes[0], nil
}

// ParseString parses S-expressions from a string.
func ParseString(s string) ([]*Node, error) {
	return Parse(strings.NewReader(s))
}

func (p *parser) parseExpr() (*Node, error) {
	switch p.current.typ {
	case tokenLeftParen:
		return p.parseList()
	case tokenSymbol:
		return Symbol(p.current.value), nil
	case tokenString:
		return String(p.current.value), nil
	case tokenRightParen:
		return nil, fmt.Errorf("unexpected ')'")
	case tokenEOF:
		return nil, fmt.Errorf("unexpected EOF")
	default:
		return nil, fmt.Errorf("unexpected token type: %v", p.current.typ)
	}
}

func (p *parser) parseList() (*Node, error) {
	if p.current.typ != tokenLeftParen {
		return nil, fmt.Errorf("expected '(', got %v", p.current.typ)
	}

	list := List()
	for {
		tok, err := p.lexer.next()
		if err != nil {
			return nil, err
		}
		p.current = tok

		if p.current.typ == tokenRightParen {
			break
		}
		if p.current.typ == tokenEOF {
			return nil, fmt.Errorf("unexpected EOF in list")
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Append(elem)
	}

	return list, nil
}
