package slist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	c := newTestContext()
	add, _ := c.Lookup("+")
	ifForm, _ := c.Lookup("if")
	_, err := c.Exec("(define (sq x) (* x x)) (defmacro (m) 1)")
	assert.NoError(t, err)
	sq, _ := c.Lookup("sq")
	m, _ := c.Lookup("m")
	anon, _ := c.Exec("(lambda (x) x)")

	cases := []struct {
		name     string
		value    Expression
		expected string
	}{
		{"absent", nil, ""},
		{"empty", Null, "()"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"integer", Integer(-3), "-3"},
		{"whole-float", Number(2), "2.0"},
		{"float", Number(0.5), "0.5"},
		{"large-float", Number(1e21), "1e+21"},
		{"name", Name("abc"), "abc"},
		{"string", String("a\"b\n"), `"a\"b\n"`},
		{"list", List(Integer(1), String("a"), Number(2)), `(1 "a" 2.0)`},
		{"nested", List(List(), List(Name("x"))), "(() (x))"},
		{"dotted", Cons(Integer(1), Integer(2)), "(1 . 2)"},
		{"improper", Cons(Integer(1), Cons(Integer(2), Integer(3))), "(1 2 . 3)"},
		{"primitive", add, "<native +>"},
		{"special", ifForm, "<special if>"},
		{"lambda", sq, "<procedure sq>"},
		{"anonymous", anon, "<procedure lambda>"},
		{"macro", m, "<macro m>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EncodeToString(tc.value))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "a\"b", DisplayString(String("a\"b")))
	assert.Equal(t, "(1 a (b))", DisplayString(List(Integer(1), String("a"), List(String("b")))))
	assert.Equal(t, "x", DisplayString(Name("x")))
}

func TestEncodeRoundTrip(t *testing.T) {
	sources := []string{
		`(1 "two" 3.5 (four) () true)`,
		`"tab\tquote\"backslash\\"`,
		`(quote (a b))`,
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			v := parseOne(t, source)
			assert.True(t, equal(v, parseOne(t, EncodeToString(v))))
		})
	}
}
