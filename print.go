package slist

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Encode writes a source-like representation of e to w. Strings are written
// quoted.
func Encode(w io.Writer, e Expression) error {
	return encode(w, e, false)
}

// Display writes e to w the way print does: strings are written without
// quotes.
func Display(w io.Writer, e Expression) error {
	return encode(w, e, true)
}

// EncodeToString returns the textual representation of e.
func EncodeToString(e Expression) string {
	var b strings.Builder
	Encode(&b, e)
	return b.String()
}

// DisplayString returns e as print would write it.
func DisplayString(e Expression) string {
	var b strings.Builder
	Display(&b, e)
	return b.String()
}

func encode(w io.Writer, e Expression, raw bool) error {
	bw := bufio.NewWriter(w)
	writeExpression(bw, e, raw)
	return bw.Flush()
}

func writeExpression(w *bufio.Writer, e Expression, raw bool) {
	switch e := e.(type) {
	case nil:
		// absent values print as nothing
	case Empty:
		w.WriteString("()")
	case Boolean:
		if e {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case Integer:
		w.WriteString(strconv.FormatInt(int64(e), 10))
	case Number:
		w.WriteString(formatNumber(float64(e)))
	case Name:
		w.WriteString(string(e))
	case String:
		if raw {
			w.WriteString(string(e))
		} else {
			w.WriteString(quoteString(string(e)))
		}
	case *Pair:
		writePair(w, e, raw)
	case Procedure:
		w.WriteString("<")
		w.WriteString(e.kind())
		w.WriteString(" ")
		w.WriteString(e.Name())
		w.WriteString(">")
	}
}

func writePair(w *bufio.Writer, p *Pair, raw bool) {
	w.WriteByte('(')
	for {
		writeExpression(w, p.car, raw)
		switch cdr := p.cdr.(type) {
		case Empty, nil:
			w.WriteByte(')')
			return
		case *Pair:
			w.WriteByte(' ')
			p = cdr
		default:
			w.WriteString(" . ")
			writeExpression(w, cdr, raw)
			w.WriteByte(')')
			return
		}
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
