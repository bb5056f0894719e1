package slist

// unwoundMarker is returned in place of a value when a tail call has been
// deposited on an enclosing frame. It never escapes a frame's loop.
type unwoundMarker struct{}

func (unwoundMarker) expression() {}

var unwound Expression = unwoundMarker{}

func (c *Context) eval(expression Expression, tail bool) Expression {
	if c.tracing() {
		c.log.Debug("eval", "expr", EncodeToString(expression), "tail", tail, "depth", len(c.stack))
	}

	switch e := expression.(type) {
	case nil:
		return nil
	case Empty, Boolean, Integer, Number, String:
		return e
	case Name:
		return c.evalName(e)
	case *Pair:
		return c.evalCall(e, tail)
	case *Lambda, *Macro:
		c.warn("evaluating a procedure value that was already built; was it evaluated twice?", e)
		return e
	default:
		return e
	}
}

func (c *Context) evalName(name Name) Expression {
	v, ok := c.active.Lookup(string(name))
	if !ok {
		c.report(evalError(ErrUnbound, nil, "%v", string(name)))
		return nil
	}
	return v
}

// resolve finds the procedure a call form's head denotes.
func (c *Context) resolve(form *Pair) (Procedure, bool) {
	var head Expression
	switch h := form.car.(type) {
	case Procedure:
		return h, true
	case *Pair:
		head = c.eval(h, false)
		if head == nil {
			return nil, false
		}
	case Name:
		v, ok := c.active.Lookup(string(h))
		if !ok {
			c.report(evalError(ErrUnbound, nil, "%v", string(h)))
			return nil, false
		}
		head = v
	default:
		head = h
	}

	proc, ok := head.(Procedure)
	if !ok {
		c.report(evalError(ErrNotProcedure, form, "%v", EncodeToString(head)))
		return nil, false
	}
	return proc, true
}

func (c *Context) evalCall(form *Pair, tail bool) Expression {
	proc, ok := c.resolve(form)
	if !ok {
		return nil
	}

	var (
		v   Expression
		err error
	)
	switch p := proc.(type) {
	case *Special:
		v, err = p.fn(c, form, tail)
	case *Primitive:
		args, ok := c.evalArgs(form)
		if !ok {
			return nil
		}
		v, err = p.fn(c, args)
	case *Lambda:
		args, ok := c.evalArgs(form)
		if !ok {
			return nil
		}
		v, err = c.call(&p.closure, args, tail)
	case *Macro:
		args, ok := ToSlice(form.cdr)
		if !ok {
			err = syntaxError(form, "improper argument list")
			break
		}
		v, err = c.expand(p, args, tail)
	}
	if err != nil {
		c.report(err)
		return nil
	}
	return v
}

// evalArgs evaluates every argument of a call form in the caller's
// environment, left to right. ok is false if any argument produced no value;
// the remaining arguments are still evaluated.
func (c *Context) evalArgs(form *Pair) (args []Expression, ok bool) {
	ok = true
	tail := Each(form.cdr, func(arg Expression) bool {
		v := c.eval(arg, false)
		if v == nil {
			ok = false
		}
		args = append(args, v)
		return true
	})
	if !IsEmpty(tail) {
		c.report(syntaxError(form, "improper argument list"))
		return nil, false
	}
	return args, ok
}

// applyValues calls proc with arguments that are already values.
func (c *Context) applyValues(proc Procedure, args []Expression, tail bool) (Expression, error) {
	switch p := proc.(type) {
	case *Primitive:
		return p.fn(c, args)
	case *Lambda:
		return c.call(&p.closure, args, tail)
	case *Macro:
		return c.expand(p, args, tail)
	case *Special:
		return nil, evalError(ErrNotProcedure, nil, "special form %v cannot be applied to a list of values", p.name)
	default:
		return nil, evalError(ErrNotProcedure, proc, "unknown procedure")
	}
}

// expand runs a macro body on unevaluated syntax and evaluates the expansion
// once more in the caller's environment.
func (c *Context) expand(m *Macro, args []Expression, tail bool) (Expression, error) {
	expansion, err := c.call(&m.closure, args, false)
	if err != nil || expansion == nil {
		return nil, err
	}
	if c.tracing() {
		c.log.Debug("expand", "macro", m.name, "expansion", EncodeToString(expansion))
	}
	return c.eval(expansion, tail), nil
}

// call binds args in a fresh child of the closure's environment and runs the
// body there.
func (c *Context) call(cl *closure, args []Expression, tail bool) (Expression, error) {
	env := cl.env.Extend()
	if err := cl.bind(env, args); err != nil {
		return nil, err
	}
	return c.invoke(cl, env, tail)
}

// invoke runs a procedure body in env.
//
// A call in tail position is not run here: it is deposited on the innermost
// in-flight frame, whose body holds that tail position, and the marker
// unwinds back to that frame's loop. The loop then runs the deposited call in
// place, so chains of tail calls use one frame and one native stack segment.
// With no frame to deposit on, the call runs as an ordinary nested call.
func (c *Context) invoke(cl *closure, env *Environment, tail bool) (Expression, error) {
	if tail && len(c.stack) > 0 {
		c.stack[len(c.stack)-1].delayed = &delayedCall{proc: cl, env: env}
		return unwound, nil
	}

	if c.maxDepth > 0 && len(c.stack) >= c.maxDepth {
		return nil, evalError(ErrDepth, nil, "%v: more than %d nested calls", cl.name, c.maxDepth)
	}

	fr := &frame{proc: cl}
	c.stack = append(c.stack, fr)
	caller := c.active

	var result Expression
	for {
		c.active = env
		result = c.evalBody(fr.proc.body, true)

		d := fr.delayed
		if d == nil {
			break
		}
		fr.delayed = nil
		fr.proc, env = d.proc, d.env
	}

	c.active = caller
	c.stack[len(c.stack)-1] = nil
	c.stack = c.stack[:len(c.stack)-1]
	return result, nil
}

// evalBody evaluates a sequence and returns the value of the last expression,
// which inherits tail.
func (c *Context) evalBody(body []Expression, tail bool) Expression {
	if len(body) == 0 {
		return Null
	}
	for _, x := range body[:len(body)-1] {
		c.eval(x, false)
	}
	return c.eval(body[len(body)-1], tail)
}
