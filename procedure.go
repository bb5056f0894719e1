package slist

import (
	"fmt"
)

// Procedure is a callable value. It is one of *Special, *Primitive, *Lambda
// or *Macro.
type Procedure interface {
	Expression

	// Name returns the name the procedure was defined with.
	Name() string

	kind() string
}

// SpecialFunc implements a special form. It receives the entire unevaluated
// call form and decides what to evaluate itself. tail reports whether the
// form is in tail position.
type SpecialFunc func(c *Context, form *Pair, tail bool) (Expression, error)

// PrimitiveFunc implements a native procedure over evaluated arguments.
type PrimitiveFunc func(c *Context, args []Expression) (Expression, error)

// Special is a native special form.
type Special struct {
	name string
	fn   SpecialFunc
}

func (*Special) expression()    {}
func (s *Special) Name() string { return s.name }
func (*Special) kind() string   { return "special" }

// Primitive is a native procedure whose arguments are evaluated before it
// runs.
type Primitive struct {
	name string
	fn   PrimitiveFunc
}

func (*Primitive) expression()    {}
func (p *Primitive) Name() string { return p.name }
func (*Primitive) kind() string   { return "native" }

// closure holds what interpreted procedures and macros share.
type closure struct {
	name    string
	params  Expression
	formals []Name
	rest    Name
	hasRest bool
	body    []Expression
	env     *Environment
}

func (c *closure) Name() string { return c.name }

// Lambda is an interpreted procedure closed over the environment it was
// created in.
type Lambda struct {
	closure
}

func (*Lambda) expression() {}
func (*Lambda) kind() string { return "procedure" }

// Macro is an interpreted procedure that receives its arguments unevaluated.
// The value it returns is evaluated again in the caller's environment.
type Macro struct {
	closure
}

func (*Macro) expression() {}
func (*Macro) kind() string { return "macro" }

func newClosure(name string, params Expression, body []Expression, env *Environment) (closure, error) {
	formals, rest, hasRest, err := makeFormals(params)
	if err != nil {
		return closure{}, err
	}
	if len(body) == 0 {
		return closure{}, syntaxError(nil, "%v: empty body", name)
	}
	return closure{
		name:    name,
		params:  params,
		formals: formals,
		rest:    rest,
		hasRest: hasRest,
		body:    body,
		env:     env,
	}, nil
}

const dotToken = Name(".")

// makeFormals accepts a bare name, a proper list of names, a list whose
// second-to-last element is the "." token, or an improper list ending in a
// name.
func makeFormals(declaration Expression) (formals []Name, rest Name, hasRest bool, err error) {
	const invalidFormals = "parameters must be of the form (name ...), name, or (name ... . name)"

	switch d := declaration.(type) {
	case Name:
		if d == dotToken {
			return nil, "", false, syntaxError(declaration, invalidFormals)
		}
		return nil, d, true, nil
	case Empty:
		return nil, "", false, nil
	case *Pair:
	default:
		return nil, "", false, syntaxError(declaration, invalidFormals)
	}

	declared := map[Name]struct{}{}
	declare := func(n Name) error {
		if _, ok := declared[n]; ok {
			return syntaxError(declaration, "duplicate parameter %v", n)
		}
		declared[n] = struct{}{}
		return nil
	}

	l := declaration
	for {
		switch p := l.(type) {
		case Empty:
			return formals, "", false, nil
		case Name:
			if err := declare(p); err != nil {
				return nil, "", false, err
			}
			return formals, p, true, nil
		case *Pair:
			sym, ok := p.car.(Name)
			if !ok {
				return nil, "", false, syntaxError(declaration, invalidFormals)
			}
			if sym == dotToken {
				last, ok := p.cdr.(*Pair)
				if !ok || !IsEmpty(last.cdr) {
					return nil, "", false, syntaxError(declaration, "exactly one parameter must follow '.'")
				}
				restName, ok := last.car.(Name)
				if !ok || restName == dotToken {
					return nil, "", false, syntaxError(declaration, invalidFormals)
				}
				if err := declare(restName); err != nil {
					return nil, "", false, err
				}
				return formals, restName, true, nil
			}
			if err := declare(sym); err != nil {
				return nil, "", false, err
			}
			formals = append(formals, sym)
			l = p.cdr
		default:
			return nil, "", false, syntaxError(declaration, invalidFormals)
		}
	}
}

// bind binds args into env according to the closure's parameters.
func (c *closure) bind(env *Environment, args []Expression) error {
	atLeast := ""
	if c.hasRest {
		atLeast = " at least"
	}
	if len(args) < len(c.formals) || (!c.hasRest && len(args) > len(c.formals)) {
		return &EvalError{
			Kind:    ErrArity,
			Message: fmt.Sprintf("%v expects%v %d arguments, got %d", c.name, atLeast, len(c.formals), len(args)),
		}
	}

	for i, sym := range c.formals {
		env.Define(string(sym), args[i])
	}
	if c.hasRest {
		env.Define(string(c.rest), List(args[len(c.formals):]...))
	}
	return nil
}

func ProcedurePred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("procedure? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(Procedure)
	return Boolean(ok), nil
}

// ProcedureMap applies a procedure element-wise to one or more lists and
// stops at the end of the shortest.
func ProcedureMap(c *Context, args []Expression) (Expression, error) {
	if len(args) < 2 {
		return nil, arityError("map expects at least 2 arguments, got %d", len(args))
	}
	proc, ok := args[0].(Procedure)
	if !ok {
		return nil, evalError(ErrNotProcedure, args[0], "the first argument to map must be a procedure")
	}

	lists := make([]Expression, len(args)-1)
	copy(lists, args[1:])
	actuals := make([]Expression, len(lists))

	var b listBuilder
	for {
		for i, l := range lists {
			p, ok := l.(*Pair)
			if !ok {
				if !IsEmpty(l) {
					return nil, typeError(args[i+1], "map expects proper lists")
				}
				return b.list(Null), nil
			}
			actuals[i], lists[i] = p.car, p.cdr
		}

		v, err := c.applyValues(proc, append([]Expression(nil), actuals...), false)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		b.add(v)
	}
}
