package slist

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverableErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   error
	}{
		{"unbound", "undefined-name", ErrUnbound},
		{"unbound-call", "(undefined-fn 1)", ErrUnbound},
		{"set-unbound", "(set! undefined-name 1)", ErrUnbound},
		{"too-few", "((lambda (a b) a) 1)", ErrArity},
		{"too-many", "((lambda (a) a) 1 2)", ErrArity},
		{"variadic-too-few", "((lambda (a . rest) a))", ErrArity},
		{"if-non-boolean", "(if 1 2 3)", ErrType},
		{"cond-non-boolean", "(cond (1 2))", ErrType},
		{"not-non-boolean", "(not 1)", ErrType},
		{"arith-type", "(+ 1 \"a\")", ErrType},
		{"compare-type", "(< 1 'a)", ErrType},
		{"car-non-pair", "(car 1)", ErrType},
		{"cdr-empty", "(cdr '())", ErrType},
		{"apply-improper", "(apply + 5)", ErrType},
		{"divide-int", "(/ 1 0)", ErrDivideByZero},
		{"divide-float", "(/ 1.0 0)", ErrDivideByZero},
		{"mod", "(% 5 0)", ErrDivideByZero},
		{"not-procedure", "(1 2)", ErrNotProcedure},
		{"not-procedure-list", "((list 1) 2)", ErrNotProcedure},
		{"apply-non-procedure", "(apply 1 '())", ErrNotProcedure},
		{"apply-special", "(apply if (list true 1 2))", ErrNotProcedure},
		{"unquote-outside-quote", "(unquote 1)", ErrSyntax},
		{"lambda-no-body", "(lambda (x))", ErrSyntax},
		{"lambda-bad-dot", "(lambda (a . b c) a)", ErrSyntax},
		{"lambda-duplicate", "(lambda (a a) a)", ErrSyntax},
		{"define-malformed", "(define 1 2)", ErrSyntax},
		{"let-malformed", "(let ((x)) x)", ErrSyntax},
		{"if-malformed", "(if true)", ErrSyntax},
		{"improper-call", "(eval (cons '+ (cons 1 2)))", ErrSyntax},
		{"defmacro-non-lambda", "(defmacro m 1)", ErrType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext()

			v, err := c.Exec(tc.source)
			assert.Nil(t, v)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var evalErr *EvalError
			assert.True(t, errors.As(err, &evalErr))
		})
	}
}

func TestErrorsDoNotStopLaterForms(t *testing.T) {
	c := newTestContext()

	v, err := c.Exec("(car 1) (+ 1 1)")
	assert.ErrorIs(t, err, ErrType)
	assert.Equal(t, Integer(2), v)
}

func TestSiblingsOfAFailedArgumentAreEvaluated(t *testing.T) {
	c := newTestContext()

	v, err := c.Exec("(define n 0) (list (car 1) (begin (set! n 5) n))")
	assert.ErrorIs(t, err, ErrType)
	assert.Nil(t, v)

	n, ok := c.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, Integer(5), n)
}

func TestAbsentValuesPropagateSilently(t *testing.T) {
	c := newTestContext()

	_, err := c.Exec("(+ 1 (car 1))")
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))

	// Only the original failure is reported.
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 1)
}

func TestDefineOfAbsentValueBindsNothing(t *testing.T) {
	c := newTestContext()

	_, err := c.Exec("(define x (car 1))")
	assert.ErrorIs(t, err, ErrType)

	_, ok := c.Lookup("x")
	assert.False(t, ok)
}

func TestAssertion(t *testing.T) {
	var log bytes.Buffer
	c := NewContext(WithLogger(NewLogger(&log, VerbosityError)), WithOutput(&bytes.Buffer{}))

	v, err := c.Exec(`
		(define a 1)
		(define (check) (let ((x 2)) (assert (= a x))))
		(check)
		(define b 2)`)
	assert.Nil(t, v)
	require.ErrorIs(t, err, ErrAssertion)

	var failure *AssertionError
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "(assert (= a x))", EncodeToString(failure.Form))
	assert.Contains(t, log.String(), "assertion failed")

	// Forms after the assertion are not evaluated, and the context is back
	// at top level.
	_, ok := c.Lookup("b")
	assert.False(t, ok)
	assert.Empty(t, c.stack)
	assert.Same(t, c.global, c.active)

	// Definitions made before the failure survive.
	v, err = c.Exec("a")
	require.NoError(t, err)
	assert.Equal(t, Integer(1), v)
}

func TestAssertionPasses(t *testing.T) {
	c := newTestContext()

	v, err := c.Exec("(assert (= 1 1)) 7")
	require.NoError(t, err)
	assert.Equal(t, Integer(7), v)
}

func TestAssertionNonBoolean(t *testing.T) {
	c := newTestContext()

	v, err := c.Exec("(assert 1) 7")
	assert.ErrorIs(t, err, ErrType)
	assert.NotErrorIs(t, err, ErrAssertion)
	assert.Equal(t, Integer(7), v)
}

func TestAssertionInsideApply(t *testing.T) {
	c := newTestContext()

	_, err := c.Exec("(define (fail) (assert false))")
	require.NoError(t, err)

	fail, ok := c.Lookup("fail")
	require.True(t, ok)
	_, err = c.Apply(fail.(Procedure))
	assert.ErrorIs(t, err, ErrAssertion)
	assert.Empty(t, c.stack)
}

func TestDiagnosticsAreLogged(t *testing.T) {
	var log bytes.Buffer
	c := NewContext(WithLogger(NewLogger(&log, VerbosityError)), WithOutput(&bytes.Buffer{}))

	_, err := c.Exec("(car 1)")
	require.Error(t, err)
	assert.Contains(t, log.String(), "level=ERROR")
	assert.Contains(t, log.String(), "kind=\"type mismatch\"")

	log.Reset()
	c = NewContext(WithLogger(NewLogger(&log, VerbosityAlways)), WithOutput(&bytes.Buffer{}))
	_, err = c.Exec("(car 1)")
	require.Error(t, err)
	assert.Empty(t, log.String())
}

func TestParseErrorsAreNotEvaluated(t *testing.T) {
	c := newTestContext()

	_, err := c.Exec("(define x 1) (")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.True(t, IsIncomplete(err))

	_, ok := c.Lookup("x")
	assert.False(t, ok)
}
