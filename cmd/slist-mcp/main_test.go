package main

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoted/slist"
)

func TestSessionEval(t *testing.T) {
	s := newSession(slist.VerbosityAlways, 100)

	text, fatal := s.eval(`(println "hi") (+ 1 2)`)
	assert.False(t, fatal)
	assert.Equal(t, "hi\n=> 3\n", text)

	text, fatal = s.eval("(define (sq x) (* x x))")
	assert.False(t, fatal)
	assert.Empty(t, text)

	text, fatal = s.eval("(sq 4)")
	assert.False(t, fatal)
	assert.Equal(t, "=> 16\n", text)

	text, fatal = s.eval("(car 1)")
	assert.False(t, fatal)
	assert.Contains(t, text, "error: type mismatch")

	text, fatal = s.eval("(assert (= 1 2))")
	assert.True(t, fatal)
	assert.Contains(t, text, "assertion failed")

	_, fatal = s.eval("(sq")
	assert.True(t, fatal)
}

func TestSessionReset(t *testing.T) {
	s := newSession(slist.VerbosityAlways, 100)

	_, _ = s.eval("(define x 1)")
	result, err := s.handleReset(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text, _ := s.eval("x")
	assert.Contains(t, text, "unbound variable")
}

func TestHandleEval(t *testing.T) {
	s := newSession(slist.VerbosityAlways, 100)

	var request mcp.CallToolRequest
	request.Params.Name = "slist_eval"
	request.Params.Arguments = map[string]any{"source": "(list 1 \"a\")"}

	result, err := s.handleEval(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "=> (1 \"a\")\n", content.Text)

	result, err = s.handleEval(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
