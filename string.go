package slist

import (
	"strings"
	"unicode/utf8"
)

func StringPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("string? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(String)
	return Boolean(ok), nil
}

// StringLength counts runes, not bytes.
func StringLength(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("string-length expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, typeError(args[0], "the argument to string-length must be a string")
	}
	return Integer(utf8.RuneCountInString(string(s))), nil
}

func StringAppend(_ *Context, args []Expression) (Expression, error) {
	var b strings.Builder
	for _, arg := range args {
		s, ok := arg.(String)
		if !ok {
			return nil, typeError(arg, "arguments to string-append must be strings")
		}
		b.WriteString(string(s))
	}
	return String(b.String()), nil
}

// Repr returns the source representation of its argument as a string.
func Repr(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("repr expects 1 argument, got %d", len(args))
	}
	return String(EncodeToString(args[0])), nil
}
