package slist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, source string) Expression {
	forms, err := ParseString(source)
	require.NoError(t, err)
	elems, ok := ToSlice(forms)
	require.True(t, ok)
	require.Len(t, elems, 1)
	return elems[0]
}

func TestParseAtoms(t *testing.T) {
	cases := []struct {
		source   string
		expected Expression
	}{
		{"42", Integer(42)},
		{"-7", Integer(-7)},
		{"+7", Integer(7)},
		{"1.5", Number(1.5)},
		{"-.5", Number(-0.5)},
		{"3.", Number(3)},
		{"1.2.3", Name("1.2.3")},
		{"-", Name("-")},
		{"+", Name("+")},
		{"...", Name("...")},
		{"1a", Name("1a")},
		{"true", Boolean(true)},
		{"false", Boolean(false)},
		{"set!", Name("set!")},
		{"string->symbol", Name("string->symbol")},
		{`"hello"`, String("hello")},
		{`"a\"b\\c\nd\te\r"`, String("a\"b\\c\nd\te\r")},
		{`"héllo"`, String("héllo")},
		{".", Name(".")},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseOne(t, tc.source))
		})
	}
}

func TestParseLists(t *testing.T) {
	cases := []struct {
		source   string
		expected string
	}{
		{"()", "()"},
		{"(1 2 3)", "(1 2 3)"},
		{"(a (b (c)) d)", "(a (b (c)) d)"},
		{"'x", "(quote x)"},
		{"'(1 'x)", "(quote (1 (quote x)))"},
		{"(a . b)", "(a . b)"},
		{"(f\n  x ; trailing comment\n  y)", "(f x y)"},
		{"(\"s\"a)", "(\"s\" a)"},
		{"(a'b)", "(a (quote b))"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			assert.Equal(t, tc.expected, EncodeToString(parseOne(t, tc.source)))
		})
	}
}

func TestParseProgram(t *testing.T) {
	forms, err := ParseString("; header\n(define x 1)\n\nx ; done\n")
	require.NoError(t, err)
	assert.Equal(t, "((define x 1) x)", EncodeToString(forms))

	forms, err = ParseString("   ; only a comment")
	require.NoError(t, err)
	assert.Equal(t, Null, forms)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source     string
		line, col  int
		incomplete bool
	}{
		{")", 1, 1, false},
		{"(a\n  ))", 2, 4, false},
		{"'", 1, 2, true},
		{"')", 1, 2, false},
		{"(+ 1", 1, 5, true},
		{"(define (f)\n  (g", 2, 5, true},
		{`"abc`, 1, 5, true},
		{`"a\q"`, 1, 3, false},
		{`"a\`, 1, 4, true},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			_, err := ParseString(tc.source)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, tc.col, perr.Column)
			assert.Equal(t, tc.incomplete, IsIncomplete(err))
		})
	}
}
