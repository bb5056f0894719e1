package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mcoted/slist"
)

// session is one persistent interpreter shared by every tool call.
type session struct {
	mu        sync.Mutex
	verbosity int
	maxDepth  int
	out       bytes.Buffer
	ctx       *slist.Context
}

func newSession(verbosity, maxDepth int) *session {
	s := &session{verbosity: verbosity, maxDepth: maxDepth}
	s.reset()
	return s
}

// reset must be called with mu held or before the session is shared.
func (s *session) reset() {
	s.out.Reset()
	s.ctx = slist.NewContext(
		slist.WithLogger(slist.NewLogger(os.Stderr, s.verbosity)),
		slist.WithOutput(&s.out),
		slist.WithMaxDepth(s.maxDepth),
	)
}

// eval runs source and renders what it printed, its value and its
// diagnostics. fatal is true for parse errors and failed assertions.
func (s *session) eval(source string) (text string, fatal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Reset()
	v, err := s.ctx.Exec(source)

	var b strings.Builder
	b.WriteString(s.out.String())
	if v != nil {
		b.WriteString("=> ")
		b.WriteString(slist.EncodeToString(v))
		b.WriteByte('\n')
	}
	if err != nil {
		b.WriteString("error: ")
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}

	var perr *slist.ParseError
	fatal = errors.As(err, &perr) || errors.Is(err, slist.ErrAssertion)
	return b.String(), fatal
}

func (s *session) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, fatal := s.eval(source)
	if fatal {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *session) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return mcp.NewToolResultText("ok"), nil
}

func main() {
	verbosity := flag.Int("log-level", slist.VerbosityError, "log level: 0 always, 1 error, 2 warning, 3 trace")
	maxDepth := flag.Int("max-depth", slist.DefaultMaxDepth, "maximum nested non-tail calls")
	flag.Parse()

	sess := newSession(*verbosity, *maxDepth)

	s := server.NewMCPServer(
		"slist",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("slist_eval",
			mcp.WithDescription("Evaluate slist source in a persistent session. Returns printed output, the value of the last form and any diagnostics."),
			mcp.WithString("source",
				mcp.Required(),
				mcp.Description("One or more S-expressions, e.g. (define (sq x) (* x x)) (sq 4)"),
			),
		),
		sess.handleEval,
	)

	s.AddTool(
		mcp.NewTool("slist_reset",
			mcp.WithDescription("Discard every definition and start a fresh session."),
		),
		sess.handleReset,
	)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
