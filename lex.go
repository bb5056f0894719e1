package slist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports malformed source text.
type ParseError struct {
	Line, Column int
	Message      string

	incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// IsIncomplete returns true if err reports input that ended inside a list,
// a string or after a quote, so that more input could complete it.
func IsIncomplete(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.incomplete
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenOpen
	tokenClose
	tokenQuote
	tokenAtom
)

type token struct {
	kind      tokenKind
	value     Expression
	line, col int
}

type position struct {
	line, col int
}

type lexer struct {
	r    *bufio.Reader
	pos  position
	prev position
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), pos: position{line: 1, col: 1}}
}

// read returns 0 at the end of input.
func (l *lexer) read() (rune, error) {
	c, _, err := l.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}
	l.prev = l.pos
	if c == '\n' {
		l.pos.line, l.pos.col = l.pos.line+1, 1
	} else {
		l.pos.col++
	}
	return c, nil
}

func (l *lexer) unread() {
	if l.r.UnreadRune() == nil {
		l.pos = l.prev
	}
}

func (l *lexer) errorf(at position, format string, args ...any) *ParseError {
	return &ParseError{Line: at.line, Column: at.col, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) incompletef(format string, args ...any) *ParseError {
	err := l.errorf(l.pos, format, args...)
	err.incomplete = true
	return err
}

func (l *lexer) next() (token, error) {
	for {
		start := l.pos
		c, err := l.read()
		if err != nil {
			return token{}, err
		}

		tok := token{line: start.line, col: start.col}
		switch c {
		case 0:
			tok.kind = tokenEOF
			return tok, nil
		case '(':
			tok.kind = tokenOpen
			return tok, nil
		case ')':
			tok.kind = tokenClose
			return tok, nil
		case '\'':
			tok.kind = tokenQuote
			return tok, nil
		case ';':
			if err := l.lineComment(); err != nil {
				return token{}, err
			}
		case '"':
			s, err := l.string()
			if err != nil {
				return token{}, err
			}
			tok.kind, tok.value = tokenAtom, s
			return tok, nil
		default:
			if isSpace(c) {
				continue
			}
			v, err := l.atom(c, start)
			if err != nil {
				return token{}, err
			}
			tok.kind, tok.value = tokenAtom, v
			return tok, nil
		}
	}
}

func (l *lexer) lineComment() error {
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		if c == '\n' || c == 0 {
			return nil
		}
	}
}

func (l *lexer) string() (Expression, error) {
	var s strings.Builder
	for {
		at := l.pos
		c, err := l.read()
		if err != nil {
			return nil, err
		}
		switch c {
		case 0:
			return nil, l.incompletef("unterminated string")
		case '"':
			return String(s.String()), nil
		case '\\':
			k, err := l.read()
			if err != nil {
				return nil, err
			}
			switch k {
			case 0:
				return nil, l.incompletef("unterminated string")
			case '\\', '"':
				c = k
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			default:
				return nil, l.errorf(at, "invalid escape sequence '\\%c'", k)
			}
		}
		s.WriteRune(c)
	}
}

// atom reads a number, boolean or name.
func (l *lexer) atom(first rune, start position) (Expression, error) {
	var text strings.Builder
	text.WriteRune(first)
	for {
		c, err := l.read()
		if err != nil {
			return nil, err
		}
		if c == 0 {
			break
		}
		if isDelimiter(c) {
			l.unread()
			break
		}
		text.WriteRune(c)
	}

	s := text.String()
	switch s {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	}

	switch numberShape(s) {
	case shapeInteger:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, l.errorf(start, "invalid integer literal '%s'", s)
		}
		return Integer(i), nil
	case shapeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, l.errorf(start, "invalid number literal '%s'", s)
		}
		return Number(f), nil
	}
	return Name(s), nil
}

type shape int

const (
	shapeName shape = iota
	shapeInteger
	shapeFloat
)

// numberShape classifies an atom: an optional sign, at least one digit, and
// at most one '.'.
func numberShape(s string) shape {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return shapeName
		}
	}
	switch {
	case digits == 0 || dots > 1:
		return shapeName
	case dots == 1:
		return shapeFloat
	default:
		return shapeInteger
	}
}

func isDelimiter(c rune) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '"' || c == ';' || c == '\''
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
