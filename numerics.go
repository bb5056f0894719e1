package slist

import "math"

func IntegerPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("integer? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(Integer)
	return Boolean(ok), nil
}

// NumberPred is true for floating-point numbers only; integer? covers
// integers.
func NumberPred(_ *Context, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, arityError("number? expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(Number)
	return Boolean(ok), nil
}

// arithmetic folds its operands left to right. The result is a Number as soon
// as any operand is a Number.
type arithmetic struct {
	name   string
	unary  func(x Expression) (Expression, error)
	ints   func(a, b int64) (int64, error)
	floats func(a, b float64) (float64, error)
}

func isNumeric(v Expression) bool {
	switch v.(type) {
	case Integer, Number:
		return true
	default:
		return false
	}
}

func toFloat(v Expression) float64 {
	switch v := v.(type) {
	case Integer:
		return float64(v)
	case Number:
		return float64(v)
	default:
		return math.NaN()
	}
}

func (op *arithmetic) apply(_ *Context, args []Expression) (Expression, error) {
	if len(args) == 0 {
		return nil, arityError("%v expects at least one argument", op.name)
	}
	for _, v := range args {
		if !isNumeric(v) {
			return nil, typeError(v, "invalid argument to %v", op.name)
		}
	}

	if len(args) == 1 && op.unary != nil {
		return op.unary(args[0])
	}

	acc := args[0]
	for _, v := range args[1:] {
		a, aok := acc.(Integer)
		b, bok := v.(Integer)
		if aok && bok {
			x, err := op.ints(int64(a), int64(b))
			if err != nil {
				return nil, err
			}
			acc = Integer(x)
			continue
		}
		x, err := op.floats(toFloat(acc), toFloat(v))
		if err != nil {
			return nil, err
		}
		acc = Number(x)
	}
	return acc, nil
}

func divideByZero(op string) error {
	return evalError(ErrDivideByZero, nil, "%v", op)
}

var (
	numberAdd = &arithmetic{
		name:   "+",
		ints:   func(a, b int64) (int64, error) { return a + b, nil },
		floats: func(a, b float64) (float64, error) { return a + b, nil },
	}
	numberSub = &arithmetic{
		name: "-",
		unary: func(x Expression) (Expression, error) {
			if i, ok := x.(Integer); ok {
				return -i, nil
			}
			return -x.(Number), nil
		},
		ints:   func(a, b int64) (int64, error) { return a - b, nil },
		floats: func(a, b float64) (float64, error) { return a - b, nil },
	}
	numberMul = &arithmetic{
		name:   "*",
		ints:   func(a, b int64) (int64, error) { return a * b, nil },
		floats: func(a, b float64) (float64, error) { return a * b, nil },
	}
	numberDiv = &arithmetic{
		name: "/",
		ints: func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, divideByZero("/")
			}
			return a / b, nil
		},
		floats: func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, divideByZero("/")
			}
			return a / b, nil
		},
	}
	numberMod = &arithmetic{
		name: "%",
		ints: func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, divideByZero("%")
			}
			return a % b, nil
		},
		floats: func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, divideByZero("%")
			}
			return math.Mod(a, b), nil
		},
	}
)

func NumberAdd(c *Context, args []Expression) (Expression, error) { return numberAdd.apply(c, args) }
func NumberSub(c *Context, args []Expression) (Expression, error) { return numberSub.apply(c, args) }
func NumberMul(c *Context, args []Expression) (Expression, error) { return numberMul.apply(c, args) }
func NumberDiv(c *Context, args []Expression) (Expression, error) { return numberDiv.apply(c, args) }
func NumberMod(c *Context, args []Expression) (Expression, error) { return numberMod.apply(c, args) }

// compare returns -1, 0 or 1. Two integers compare exactly; anything else
// compares as floats.
func compare(a, b Expression) int {
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// comparison returns a primitive that is true if holds is true for every
// adjacent pair of operands.
func comparison(name string, holds func(cmp int) bool) PrimitiveFunc {
	return func(_ *Context, args []Expression) (Expression, error) {
		if len(args) < 2 {
			return nil, arityError("%v expects at least 2 arguments, got %d", name, len(args))
		}
		for _, v := range args {
			if !isNumeric(v) {
				return nil, typeError(v, "%v expects numeric arguments", name)
			}
		}
		for i := 1; i < len(args); i++ {
			if !holds(compare(args[i-1], args[i])) {
				return Boolean(false), nil
			}
		}
		return Boolean(true), nil
	}
}

var (
	NumberEq  = comparison("=", func(cmp int) bool { return cmp == 0 })
	NumberNe  = comparison("!=", func(cmp int) bool { return cmp != 0 })
	NumberLt  = comparison("<", func(cmp int) bool { return cmp < 0 })
	NumberGt  = comparison(">", func(cmp int) bool { return cmp > 0 })
	NumberLte = comparison("<=", func(cmp int) bool { return cmp <= 0 })
	NumberGte = comparison(">=", func(cmp int) bool { return cmp >= 0 })
)
