package slist

import (
	"bufio"
)

// Print writes its arguments to the context output, separated by spaces.
// Strings are written without quotes.
func Print(c *Context, args []Expression) (Expression, error) {
	return nil, c.print(args, false)
}

// Println is Print followed by a newline.
func Println(c *Context, args []Expression) (Expression, error) {
	return nil, c.print(args, true)
}

func (c *Context) print(args []Expression, newline bool) error {
	w := bufio.NewWriter(c.out)
	for i, arg := range args {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeExpression(w, arg, true)
	}
	if newline {
		w.WriteByte('\n')
	}
	return w.Flush()
}
