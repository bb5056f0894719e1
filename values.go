package slist

import (
	"strconv"
)

// Expression is the single value type for both code and data.
type Expression interface {
	expression()
}

// Empty
type Empty struct{}

// Null is the canonical empty list.
var Null Expression = Empty{}

func (Empty) expression() {}

// IsEmpty returns true if e is the empty list.
func IsEmpty(e Expression) bool {
	_, ok := e.(Empty)
	return ok
}

// Boolean
type Boolean bool

func (Boolean) expression() {}

// Integer
type Integer int64

func (Integer) expression() {}

// Number
type Number float64

func (Number) expression() {}

// Name is a symbol or identifier token.
type Name string

func (Name) expression() {}

// String
type String string

func (String) expression() {}

// Pair
type Pair struct {
	car Expression
	cdr Expression
}

func (*Pair) expression() {}

// Cons allocates a new pair.
func Cons(car, cdr Expression) *Pair {
	return &Pair{car: car, cdr: cdr}
}

// Car returns the car field of the pair.
func (p *Pair) Car() Expression {
	return p.car
}

// Cdr returns the cdr field of the pair.
func (p *Pair) Cdr() Expression {
	return p.cdr
}

// List builds a proper list from its arguments.
func List(elems ...Expression) Expression {
	var head Expression = Null
	for i := len(elems) - 1; i >= 0; i-- {
		head = &Pair{car: elems[i], cdr: head}
	}
	return head
}

// ToSlice returns the elements of a proper list. ok is false if l is not a
// proper list.
func ToSlice(l Expression) (elems []Expression, ok bool) {
	for {
		switch v := l.(type) {
		case Empty:
			return elems, true
		case *Pair:
			elems = append(elems, v.car)
			l = v.cdr
		default:
			return elems, false
		}
	}
}

// Each calls fn for every element of a list, stopping early if fn returns
// false. It returns the tail that ended the walk: Null for a proper list.
func Each(l Expression, fn func(e Expression) bool) Expression {
	for {
		p, ok := l.(*Pair)
		if !ok {
			return l
		}
		if !fn(p.car) {
			return p
		}
		l = p.cdr
	}
}

// listBuilder appends to a proper list in order.
type listBuilder struct {
	head, tail *Pair
}

func (b *listBuilder) add(e Expression) {
	p := &Pair{car: e, cdr: Null}
	if b.head == nil {
		b.head, b.tail = p, p
	} else {
		b.tail.cdr, b.tail = p, p
	}
}

func (b *listBuilder) list(last Expression) Expression {
	if b.head == nil {
		return last
	}
	b.tail.cdr = last
	return b.head
}

// listLength returns the number of elements of a proper list.
func listLength(l Expression) (int, bool) {
	n := 0
	for {
		switch v := l.(type) {
		case Empty:
			return n, true
		case *Pair:
			n, l = n+1, v.cdr
		default:
			return n, false
		}
	}
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		switch c {
		case '.', 'e', 'I', 'N':
			return s
		}
	}
	return s + ".0"
}
