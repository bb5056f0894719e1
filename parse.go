package slist

import (
	"io"
	"strings"
)

// ParseString parses a whole program from s.
func ParseString(s string) (Expression, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads every top-level form from r and returns them as a proper list.
// Parsing stops at the first error.
func Parse(r io.Reader) (Expression, error) {
	p := &parser{l: newLexer(r)}

	var forms listBuilder
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return forms.list(Null), nil
		}
		form, err := p.parseExpression(tok)
		if err != nil {
			return nil, err
		}
		forms.add(form)
	}
}

type parser struct {
	l *lexer
}

func (p *parser) next() (token, error) {
	return p.l.next()
}

func (p *parser) parseExpression(tok token) (Expression, error) {
	switch tok.kind {
	case tokenAtom:
		return tok.value, nil
	case tokenOpen:
		return p.parseList()
	case tokenQuote:
		next, err := p.next()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenEOF {
			return nil, p.l.incompletef("expected an expression after quote")
		}
		if next.kind == tokenClose {
			return nil, p.l.errorf(position{next.line, next.col}, "unexpected ')' after quote")
		}
		datum, err := p.parseExpression(next)
		if err != nil {
			return nil, err
		}
		return List(Name("quote"), datum), nil
	case tokenClose:
		return nil, p.l.errorf(position{tok.line, tok.col}, "unexpected ')'")
	default:
		return nil, p.l.incompletef("unexpected end of input")
	}
}

func (p *parser) parseList() (Expression, error) {
	var elems listBuilder
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenClose:
			return elems.list(Null), nil
		case tokenEOF:
			return nil, p.l.incompletef("unterminated list")
		}
		elem, err := p.parseExpression(tok)
		if err != nil {
			return nil, err
		}
		elems.add(elem)
	}
}
