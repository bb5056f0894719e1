package slist

// eq is identity for pairs and procedures and value equality for atoms.
// Quoted names are interned, so equal names are the same symbol. An Integer
// and a Number are never eq.
func eq(obj1, obj2 Expression) bool {
	return obj1 == obj2
}

func Eq(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return nil, arityError("eq? expects 2 arguments, got %d", len(args))
	}
	return Boolean(eq(args[0], args[1])), nil
}

func Equal(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return nil, arityError("equal? expects 2 arguments, got %d", len(args))
	}
	return Boolean(equal(args[0], args[1])), nil
}

// equal compares pairs structurally and everything else with eq. It recurses
// on cars and loops on cdrs so long lists do not grow the stack.
func equal(obj1, obj2 Expression) bool {
	for {
		if eq(obj1, obj2) {
			return true
		}

		p1, ok := obj1.(*Pair)
		if !ok {
			return false
		}
		p2, ok := obj2.(*Pair)
		if !ok {
			return false
		}
		if !equal(p1.car, p2.car) {
			return false
		}
		obj1, obj2 = p1.cdr, p2.cdr
	}
}
