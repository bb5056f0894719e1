package slist

func PairPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("pair? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(*Pair)
	return Boolean(ok), nil
}

func PairCons(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return nil, arityError("cons expects 2 arguments, got %d", len(args))
	}
	return Cons(args[0], args[1]), nil
}

func PairCar(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("car expects 1 argument, got %d", len(args))
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, typeError(args[0], "car expects a pair")
	}
	return p.Car(), nil
}

func PairCdr(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("cdr expects 1 argument, got %d", len(args))
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, typeError(args[0], "cdr expects a pair")
	}
	return p.Cdr(), nil
}

func ListConstructor(_ *Context, args []Expression) (Expression, error) {
	return List(args...), nil
}

func ListLength(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("length expects 1 argument, got %d", len(args))
	}
	n, ok := listLength(args[0])
	if !ok {
		return nil, typeError(args[0], "length expects a proper list")
	}
	return Integer(n), nil
}

// EmptyPred is true only for the empty list.
func EmptyPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("empty? expects 1 argument, got %d", len(args))
	}
	return Boolean(IsEmpty(args[0])), nil
}

// ListAppend copies every list but the last, which becomes the shared tail of
// the result.
func ListAppend(_ *Context, args []Expression) (Expression, error) {
	if len(args) == 0 {
		return Null, nil
	}

	var b listBuilder
	for _, arg := range args[:len(args)-1] {
		elems, ok := ToSlice(arg)
		if !ok {
			return nil, typeError(arg, "arguments to append must be lists")
		}
		for _, e := range elems {
			b.add(e)
		}
	}
	return b.list(args[len(args)-1]), nil
}
