package slist

import (
	"errors"
	"fmt"
)

// Kinds of recoverable evaluation errors. An *EvalError unwraps to one of
// these.
var (
	ErrUnbound      = errors.New("unbound variable")
	ErrArity        = errors.New("wrong number of arguments")
	ErrType         = errors.New("type mismatch")
	ErrSyntax       = errors.New("malformed syntax")
	ErrNotProcedure = errors.New("not a procedure")
	ErrDivideByZero = errors.New("division by zero")
	ErrDepth        = errors.New("maximum call depth exceeded")
)

// ErrAssertion is matched by every *AssertionError.
var ErrAssertion = errors.New("assertion failed")

// EvalError is a diagnosed, recoverable evaluation error.
type EvalError struct {
	Kind    error
	Message string
	Expr    Expression
}

func (e *EvalError) Error() string {
	if e.Expr == nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %v: %v", e.Kind, e.Message, EncodeToString(e.Expr))
}

func (e *EvalError) Unwrap() error {
	return e.Kind
}

// AssertionError aborts the whole evaluation. It is raised by a failing
// assert and is never caught by the language itself.
type AssertionError struct {
	Form Expression
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrAssertion, EncodeToString(e.Form))
}

func (e *AssertionError) Unwrap() error {
	return ErrAssertion
}

func evalError(kind error, expr Expression, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...), Expr: expr}
}

func syntaxError(expr Expression, format string, args ...any) *EvalError {
	return evalError(ErrSyntax, expr, format, args...)
}

func typeError(expr Expression, format string, args ...any) *EvalError {
	return evalError(ErrType, expr, format, args...)
}

func arityError(format string, args ...any) *EvalError {
	return evalError(ErrArity, nil, format, args...)
}
