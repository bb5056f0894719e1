package slist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultMaxDepth bounds the number of in-flight calls that were not
// eliminated by the tail-call trampoline.
const DefaultMaxDepth = 10000

// frame is one in-flight interpreted call. A tail call made from the body it
// is running is deposited in delayed and picked up by the frame's loop.
type frame struct {
	proc    *closure
	delayed *delayedCall
}

type delayedCall struct {
	proc *closure
	env  *Environment
}

// Context is the state of one interpreter instance. It is not safe for
// concurrent use.
type Context struct {
	global *Environment
	active *Environment
	stack  []*frame

	symbols map[string]Name

	log      *slog.Logger
	out      io.Writer
	maxDepth int

	running     int
	diagnostics []error
}

// Option configures a Context.
type Option func(c *Context)

// WithLogger sets the logger that receives diagnostics and traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		c.log = l
	}
}

// WithOutput sets the writer print and println write to.
func WithOutput(w io.Writer) Option {
	return func(c *Context) {
		c.out = w
	}
}

// WithMaxDepth sets the maximum number of nested non-tail calls. Zero
// disables the limit, in which case deep non-tail recursion can exhaust the
// Go stack.
func WithMaxDepth(n int) Option {
	return func(c *Context) {
		c.maxDepth = n
	}
}

// NewContext returns a Context whose global environment holds every built-in
// special form and procedure.
func NewContext(opts ...Option) *Context {
	global := NewEnvironment(nil)
	c := &Context{
		global:   global,
		active:   global,
		symbols:  map[string]Name{},
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = NewLogger(os.Stderr, VerbosityWarning)
	}
	registerGlobals(c)
	return c
}

// Global returns the global environment.
func (c *Context) Global() *Environment {
	return c.global
}

// Define binds name in the global environment.
func (c *Context) Define(name string, v Expression) {
	c.global.Define(name, v)
}

// Lookup finds name in the global environment.
func (c *Context) Lookup(name string) (Expression, bool) {
	return c.global.Lookup(name)
}

// RegisterPrimitive binds a native procedure whose arguments are evaluated
// before fn runs.
func (c *Context) RegisterPrimitive(name string, fn PrimitiveFunc) {
	c.global.Define(name, &Primitive{name: name, fn: fn})
}

// RegisterSpecial binds a native special form that receives its call form
// unevaluated.
func (c *Context) RegisterSpecial(name string, fn SpecialFunc) {
	c.global.Define(name, &Special{name: name, fn: fn})
}

// Eval evaluates expr in the global environment. The returned error joins
// every diagnostic raised during the evaluation; the result is nil if expr
// produced no value.
func (c *Context) Eval(expr Expression) (Expression, error) {
	return c.run(func() Expression {
		return c.eval(expr, false)
	})
}

// Exec parses source and evaluates each top-level form in order, returning
// the value of the last one. A recoverable error in one form does not stop
// the forms after it; a failed assertion does.
func (c *Context) Exec(source string) (Expression, error) {
	return c.ExecReader(strings.NewReader(source))
}

// ExecReader is like Exec but reads the whole program from r.
func (c *Context) ExecReader(r io.Reader) (Expression, error) {
	forms, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return c.run(func() Expression {
		var result Expression
		Each(forms, func(form Expression) bool {
			result = c.eval(form, false)
			return true
		})
		return result
	})
}

// Apply calls proc with already-evaluated arguments.
func (c *Context) Apply(proc Procedure, args ...Expression) (Expression, error) {
	return c.run(func() Expression {
		v, err := c.applyValues(proc, args, false)
		if err != nil {
			c.report(err)
			return nil
		}
		return v
	})
}

// run is the boundary between the host and the evaluator. Only the
// outermost call collects diagnostics and recovers assertion failures.
func (c *Context) run(fn func() Expression) (result Expression, err error) {
	if c.running > 0 {
		return fn(), nil
	}

	c.running++
	c.diagnostics = nil
	defer func() {
		c.running--
		if x := recover(); x != nil {
			failure, ok := x.(*AssertionError)
			if !ok {
				panic(x)
			}
			c.reset()
			c.log.Error("assertion failed", "form", EncodeToString(failure.Form))
			result, err = nil, errors.Join(append(c.takeDiagnostics(), failure)...)
		}
	}()

	result = fn()
	return result, errors.Join(c.takeDiagnostics()...)
}

func (c *Context) reset() {
	for i := range c.stack {
		c.stack[i] = nil
	}
	c.stack = c.stack[:0]
	c.active = c.global
}

func (c *Context) takeDiagnostics() []error {
	d := c.diagnostics
	c.diagnostics = nil
	return d
}

// report records a recoverable error.
func (c *Context) report(err error) {
	c.diagnostics = append(c.diagnostics, err)

	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		attrs := []any{"kind", evalErr.Kind.Error()}
		if evalErr.Expr != nil {
			attrs = append(attrs, "expr", EncodeToString(evalErr.Expr))
		}
		c.log.Error(evalErr.Message, attrs...)
		return
	}
	c.log.Error(err.Error())
}

func (c *Context) warn(msg string, e Expression) {
	c.log.Warn(msg, "expr", EncodeToString(e))
}

func (c *Context) tracing() bool {
	return c.log.Enabled(context.Background(), slog.LevelDebug)
}

// intern returns the canonical instance of a quoted name.
func (c *Context) intern(n Name) Name {
	if sym, ok := c.symbols[string(n)]; ok {
		return sym
	}
	c.symbols[string(n)] = n
	return n
}
