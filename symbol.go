package slist

func SymbolPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("symbol? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(Name)
	return Boolean(ok), nil
}

func SymbolToString(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("symbol->string expects 1 argument, got %d", len(args))
	}
	sym, ok := args[0].(Name)
	if !ok {
		return nil, typeError(args[0], "symbol->string expects a symbol")
	}
	return String(sym), nil
}

func StringToSymbol(c *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("string->symbol expects 1 argument, got %d", len(args))
	}
	str, ok := args[0].(String)
	if !ok {
		return nil, typeError(args[0], "string->symbol expects a string")
	}
	return c.intern(Name(str)), nil
}
