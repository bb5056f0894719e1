package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/mcoted/slist"
)

const (
	historyFile = ".slist_history"
	promptMain  = "> "
	promptCont  = ". "
)

type options struct {
	verbosity int
	source    string
	history   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("slist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.verbosity, "l", slist.VerbosityWarning, "log level: 0 always, 1 error, 2 warning, 3 trace")
	fs.IntVar(&opts.verbosity, "log-level", slist.VerbosityWarning, "log level: 0 always, 1 error, 2 warning, 3 trace")
	fs.StringVar(&opts.source, "e", "", "evaluate `source` and print each result")
	fs.StringVar(&opts.source, "exec", "", "evaluate `source` and print each result")
	fs.StringVar(&opts.history, "history", "", "REPL history file (default ~/"+historyFile+")")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: slist [flags] [path to file]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := slist.NewContext(
		slist.WithLogger(slist.NewLogger(stderr, opts.verbosity)),
		slist.WithOutput(stdout),
	)

	switch {
	case opts.source != "" && fs.NArg() == 0:
		return execSource(ctx, opts.source, stdout, stderr)
	case opts.source == "" && fs.NArg() == 1:
		return execFile(ctx, fs.Arg(0), stderr)
	case opts.source == "" && fs.NArg() == 0:
		return repl(ctx, opts.history, stdout, stderr)
	default:
		fs.Usage()
		return 2
	}
}

// execSource evaluates every top-level form of source and prints the ones
// that produce a value.
func execSource(ctx *slist.Context, source string, stdout, stderr io.Writer) int {
	status, _ := evalPrint(ctx, source, stdout, stderr)
	return status
}

func execFile(ctx *slist.Context, path string, stderr io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stderr, "invalid input file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := ctx.ExecReader(f); err != nil {
		return reportError(err, stderr)
	}
	return 0
}

// evalPrint parses source and evaluates its forms one by one, printing each
// value. It returns false if evaluation was aborted.
func evalPrint(ctx *slist.Context, source string, stdout, stderr io.Writer) (int, bool) {
	forms, err := slist.ParseString(source)
	if err != nil {
		fmt.Fprintf(stderr, "parse error: %v\n", err)
		return 1, true
	}

	status := 0
	elems, _ := slist.ToSlice(forms)
	for _, form := range elems {
		v, err := ctx.Eval(form)
		if err != nil {
			status = 1
			if errors.Is(err, slist.ErrAssertion) {
				fmt.Fprintf(stderr, "%v\n", err)
				return status, false
			}
		}
		if v != nil {
			slist.Encode(stdout, v)
			fmt.Fprintln(stdout)
		}
	}
	return status, true
}

// reportError prints what the logger has not already shown. Recoverable
// diagnostics are logged as they happen.
func reportError(err error, stderr io.Writer) int {
	var perr *slist.ParseError
	switch {
	case errors.As(err, &perr):
		fmt.Fprintf(stderr, "parse error: %v\n", err)
	case errors.Is(err, slist.ErrAssertion):
		fmt.Fprintf(stderr, "%v\n", err)
	}
	return 1
}

func repl(ctx *slist.Context, histPath string, stdout, stderr io.Writer) int {
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		source, ok := readForm(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		// A failed assertion aborts the rest of this input; the session goes on.
		evalPrint(ctx, source, stdout, stderr)
	}
}

// readForm reads lines until they parse or fail to parse for a reason other
// than running out of input.
func readForm(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !continues(b.String()) {
			return b.String(), true
		}
	}
}

// continues returns true if src is a prefix of a valid program.
func continues(src string) bool {
	_, err := slist.ParseString(src)
	return slist.IsIncomplete(err)
}
