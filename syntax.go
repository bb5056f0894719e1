package slist

// formArgs returns the operands of a call form.
func formArgs(form *Pair) ([]Expression, error) {
	args, ok := ToSlice(form.cdr)
	if !ok {
		return nil, syntaxError(form, "improper form")
	}
	return args, nil
}

// (quote datum)
//
// Returns datum without evaluating it. Names are interned in the context's
// symbol table. A nested (unquote expr) is replaced by the value of expr.
func evalQuote(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, syntaxError(form, "quote expects one argument")
	}
	return c.quote(args[0]), nil
}

func isUnquote(p *Pair) (Expression, bool) {
	if sym, ok := p.car.(Name); !ok || sym != "unquote" {
		return nil, false
	}
	arg, ok := p.cdr.(*Pair)
	if !ok || !IsEmpty(arg.cdr) {
		return nil, false
	}
	return arg.car, true
}

func (c *Context) quote(datum Expression) Expression {
	switch d := datum.(type) {
	case Name:
		return c.intern(d)
	case *Pair:
		if expr, ok := isUnquote(d); ok {
			return c.eval(expr, false)
		}

		var b listBuilder
		var l Expression = d
		for {
			p, ok := l.(*Pair)
			if !ok {
				break
			}
			elem := c.quote(p.car)
			if elem == nil {
				return nil
			}
			b.add(elem)
			l = p.cdr
		}
		last := c.quote(l)
		if last == nil {
			return nil
		}
		return b.list(last)
	default:
		return d
	}
}

func evalUnquote(c *Context, form *Pair, tail bool) (Expression, error) {
	return nil, syntaxError(form, "unquote is only valid inside quote")
}

// (lambda params body...)
func evalLambda(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, syntaxError(form, "lambda must be of the form (lambda params body...)")
	}
	cl, err := newClosure("lambda", args[0], args[1:], c.active)
	if err != nil {
		return nil, err
	}
	return &Lambda{cl}, nil
}

// (define name expr)
// (define (name params...) body...)
func evalDefine(c *Context, form *Pair, tail bool) (Expression, error) {
	return define(c, form, false)
}

// (defmacro name expr)
// (defmacro (name params...) body...)
func evalDefmacro(c *Context, form *Pair, tail bool) (Expression, error) {
	return define(c, form, true)
}

func define(c *Context, form *Pair, macro bool) (Expression, error) {
	const invalidDefine = "expected (define name expr) or (define (name params...) body...)"

	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, syntaxError(form, invalidDefine)
	}

	switch target := args[0].(type) {
	case Name:
		if len(args) != 2 {
			return nil, syntaxError(form, invalidDefine)
		}
		v := c.eval(args[1], false)
		if v == nil {
			return nil, nil
		}
		if macro {
			l, ok := v.(*Lambda)
			if !ok {
				return nil, typeError(v, "defmacro expects a lambda")
			}
			v = &Macro{l.closure}
		}
		c.active.Define(string(target), v)
		return nil, nil
	case *Pair:
		name, ok := target.car.(Name)
		if !ok {
			return nil, syntaxError(form, invalidDefine)
		}
		cl, err := newClosure(string(name), target.cdr, args[1:], c.active)
		if err != nil {
			return nil, err
		}
		if macro {
			c.active.Define(string(name), &Macro{cl})
		} else {
			c.active.Define(string(name), &Lambda{cl})
		}
		return nil, nil
	default:
		return nil, syntaxError(form, invalidDefine)
	}
}

// (set! name expr)
func evalSet(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, syntaxError(form, "set! must be of the form (set! name expr)")
	}
	name, ok := args[0].(Name)
	if !ok {
		return nil, syntaxError(form, "set! must be of the form (set! name expr)")
	}
	v := c.eval(args[1], false)
	if v == nil {
		return nil, nil
	}
	if !c.active.Set(string(name), v) {
		return nil, evalError(ErrUnbound, nil, "set!: %v", string(name))
	}
	return nil, nil
}

// parseBindings splits ((name init) ...) into names and init expressions.
func parseBindings(form *Pair, bindings Expression) ([]Name, []Expression, error) {
	const invalidBinding = "bindings must be of the form ((name init) ...)"

	list, ok := ToSlice(bindings)
	if !ok {
		return nil, nil, syntaxError(form, invalidBinding)
	}
	names := make([]Name, len(list))
	inits := make([]Expression, len(list))
	for i, b := range list {
		binding, ok := ToSlice(b)
		if !ok || len(binding) != 2 {
			return nil, nil, syntaxError(b, invalidBinding)
		}
		name, ok := binding[0].(Name)
		if !ok {
			return nil, nil, syntaxError(b, "binding name must be a name")
		}
		names[i], inits[i] = name, binding[1]
	}
	return names, inits, nil
}

// (let ((name init) ...) body...)
// (let loop ((name init) ...) body...)
//
// The inits are evaluated in the current environment; the body runs in a new
// environment holding the bindings. In the named form, loop is bound in the
// body to a procedure taking the bindings as parameters.
func evalLet(c *Context, form *Pair, tail bool) (Expression, error) {
	const invalidLet = "let must be of the form (let ((name init) ...) body...)"

	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, syntaxError(form, invalidLet)
	}

	loop, isNamed := args[0].(Name)
	if isNamed {
		args = args[1:]
		if len(args) < 2 {
			return nil, syntaxError(form, invalidLet)
		}
	}

	names, inits, err := parseBindings(form, args[0])
	if err != nil {
		return nil, err
	}

	values := make([]Expression, len(inits))
	ok := true
	for i, init := range inits {
		if values[i] = c.eval(init, false); values[i] == nil {
			ok = false
		}
	}
	if !ok {
		return nil, nil
	}

	if isNamed {
		params := make([]Expression, len(names))
		for i, n := range names {
			params[i] = n
		}
		scope := c.active.Extend()
		cl, err := newClosure(string(loop), List(params...), args[1:], scope)
		if err != nil {
			return nil, err
		}
		scope.Define(string(loop), &Lambda{cl})
		return c.call(&cl, values, tail)
	}

	env := c.active.Extend()
	for i, n := range names {
		env.Define(string(n), values[i])
	}
	cl := &closure{name: "let", body: args[1:], env: env}
	return c.invoke(cl, env, tail)
}

// (letrec ((name init) ...) body...)
//
// Every name is bound to a placeholder before any init is evaluated, so inits
// may refer to each other.
func evalLetrec(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, syntaxError(form, "letrec must be of the form (letrec ((name init) ...) body...)")
	}

	names, inits, err := parseBindings(form, args[0])
	if err != nil {
		return nil, err
	}

	env := c.active.Extend()
	for _, n := range names {
		env.Define(string(n), Null)
	}

	caller := c.active
	c.active = env
	ok := true
	for i, init := range inits {
		v := c.eval(init, false)
		if v == nil {
			ok = false
			continue
		}
		env.Set(string(names[i]), v)
	}
	c.active = caller
	if !ok {
		return nil, nil
	}

	cl := &closure{name: "letrec", body: args[1:], env: env}
	return c.invoke(cl, env, tail)
}

// (begin expr...)
func evalBegin(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	return c.evalBody(args, tail), nil
}

// predicate evaluates a test expression, which must produce a Boolean.
func (c *Context) predicate(test Expression) (b Boolean, ok bool, err error) {
	v := c.eval(test, false)
	if v == nil {
		return false, false, nil
	}
	b, isBool := v.(Boolean)
	if !isBool {
		return false, false, typeError(v, "predicate did not evaluate to a boolean")
	}
	return b, true, nil
}

// (if test consequent alternate)
// (if test consequent)
func evalIf(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 || len(args) > 3 {
		return nil, syntaxError(form, "if must be of the form (if test consequent alternate)")
	}
	b, ok, err := c.predicate(args[0])
	if !ok {
		return nil, err
	}
	if b {
		return c.eval(args[1], tail), nil
	}
	if len(args) == 2 {
		return Null, nil
	}
	return c.eval(args[2], tail), nil
}

// (and expr...)
func evalAnd(c *Context, form *Pair, tail bool) (Expression, error) {
	return evalLogical(c, form, tail, false)
}

// (or expr...)
func evalOr(c *Context, form *Pair, tail bool) (Expression, error) {
	return evalLogical(c, form, tail, true)
}

// evalLogical evaluates operands until one equals stop, which is returned.
// The last operand is in tail position and its value is returned as is.
func evalLogical(c *Context, form *Pair, tail bool, stop Boolean) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return !stop, nil
	}
	for _, x := range args[:len(args)-1] {
		b, ok, err := c.predicate(x)
		if !ok {
			return nil, err
		}
		if b == stop {
			return stop, nil
		}
	}
	return c.eval(args[len(args)-1], tail), nil
}

// (cond (test body...) ... (else body...))
func evalCond(c *Context, form *Pair, tail bool) (Expression, error) {
	const invalidClause = "cond clause must be of the form (test body...) or (else body...)"

	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	for i, x := range args {
		clause, ok := ToSlice(x)
		if !ok || len(clause) == 0 {
			return nil, syntaxError(x, invalidClause)
		}
		if sym, ok := clause[0].(Name); ok && sym == "else" {
			if i != len(args)-1 {
				return nil, syntaxError(form, "else must be the last cond clause")
			}
			return c.evalBody(clause[1:], tail), nil
		}

		b, ok, err := c.predicate(clause[0])
		if !ok {
			return nil, err
		}
		if b {
			if len(clause) == 1 {
				return b, nil
			}
			return c.evalBody(clause[1:], tail), nil
		}
	}
	return Null, nil
}

// (apply proc list)
func evalApply(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, arityError("apply expects 2 arguments, got %d", len(args))
	}
	pv, lv := c.eval(args[0], false), c.eval(args[1], false)
	if pv == nil || lv == nil {
		return nil, nil
	}
	proc, ok := pv.(Procedure)
	if !ok {
		return nil, evalError(ErrNotProcedure, pv, "the first argument to apply must be a procedure")
	}
	actuals, ok := ToSlice(lv)
	if !ok {
		return nil, typeError(lv, "the second argument to apply must be a proper list")
	}
	return c.applyValues(proc, actuals, tail)
}

// (eval expr)
//
// Evaluates expr, then evaluates the resulting value as code.
func evalEval(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, arityError("eval expects 1 argument, got %d", len(args))
	}
	code := c.eval(args[0], false)
	if code == nil {
		return nil, nil
	}
	return c.eval(code, tail), nil
}

// (assert expr)
//
// Aborts the whole evaluation if expr is false.
func evalAssert(c *Context, form *Pair, tail bool) (Expression, error) {
	args, err := formArgs(form)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, arityError("assert expects 1 argument, got %d", len(args))
	}
	b, ok, err := c.predicate(args[0])
	if !ok {
		return nil, err
	}
	if !b {
		panic(&AssertionError{Form: form})
	}
	return nil, nil
}
