package slist

func BooleanPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("boolean? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(Boolean)
	return Boolean(ok), nil
}

func BooleanNot(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("not expects 1 argument, got %d", len(args))
	}
	b, ok := args[0].(Boolean)
	if !ok {
		return nil, typeError(args[0], "not expects a boolean")
	}
	return !b, nil
}
