package slist

var specialForms = map[string]SpecialFunc{
	"quote":    evalQuote,
	"unquote":  evalUnquote,
	"lambda":   evalLambda,
	"define":   evalDefine,
	"defmacro": evalDefmacro,
	"set!":     evalSet,
	"let":      evalLet,
	"letrec":   evalLetrec,
	"begin":    evalBegin,
	"if":       evalIf,
	"and":      evalAnd,
	"or":       evalOr,
	"cond":     evalCond,
	"apply":    evalApply,
	"eval":     evalEval,
	"assert":   evalAssert,
}

var primitives = map[string]PrimitiveFunc{
	// equality predicates
	"eq?":    Eq,
	"equal?": Equal,

	// numerics
	"integer?": IntegerPred,
	"number?":  NumberPred,
	"+":        NumberAdd,
	"-":        NumberSub,
	"*":        NumberMul,
	"/":        NumberDiv,
	"%":        NumberMod,
	"=":        NumberEq,
	"!=":       NumberNe,
	"<":        NumberLt,
	">":        NumberGt,
	"<=":       NumberLte,
	">=":       NumberGte,

	// booleans
	"boolean?": BooleanPred,
	"not":      BooleanNot,

	// pairs and lists
	"pair?":  PairPred,
	"cons":   PairCons,
	"car":    PairCar,
	"cdr":    PairCdr,
	"list":   ListConstructor,
	"length": ListLength,
	"empty?": EmptyPred,
	"append": ListAppend,

	// symbols
	"symbol?":        SymbolPred,
	"symbol->string": SymbolToString,
	"string->symbol": StringToSymbol,

	// strings
	"string?":       StringPred,
	"string-length": StringLength,
	"string-append": StringAppend,
	"repr":          Repr,

	// procedures
	"procedure?": ProcedurePred,
	"map":        ProcedureMap,

	// output
	"print":   Print,
	"println": Println,
}

func registerGlobals(c *Context) {
	for name, fn := range specialForms {
		c.RegisterSpecial(name, fn)
	}
	for name, fn := range primitives {
		c.RegisterPrimitive(name, fn)
	}
}
