package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/lels/internal/analysis"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const uri = "file:///tmp/likes.le"

const likesDoc = `templates:
*a person* really likes *an object*.

knowledge base:
fred bloggs really likes apples.
bob dances.
fred bloggs really likes app
`

type message struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *ResponseError  `json:"error"`
	Params json.RawMessage `json:"params"`
}

type script struct {
	buf bytes.Buffer
	id  int
}

func (s *script) request(method string, params any) {
	s.id++
	s.write(map[string]any{"jsonrpc": "2.0", "id": s.id, "method": method, "params": params})
}

func (s *script) notify(method string, params any) {
	s.write(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *script) write(v any) {
	if err := writeMessage(&s.buf, v); err != nil {
		panic(err)
	}
}

func run(t *testing.T, s *script) []message {
	t.Helper()
	var out bytes.Buffer
	srv := NewServer(&s.buf, &out, zaptest.NewLogger(t), Options{
		Analysis:        analysis.Options{},
		MaxProblems:     100,
		CompletionLimit: 3,
	})
	require.NoError(t, srv.Serve(context.Background()))

	var msgs []message
	r := bufio.NewReader(&out)
	for {
		body, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		var m message
		require.NoError(t, json.Unmarshal(body, &m))
		msgs = append(msgs, m)
	}
	return msgs
}

func open(s *script, text string) {
	s.notify("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": uri, "version": 1, "languageId": "logical-english", "text": text},
	})
}

func position(line, character int) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
	}
}

func TestServer_Session(t *testing.T) {
	srv := NewServer(strings.NewReader(""), io.Discard, nil, Options{})
	assert.Len(t, srv.Session(), 36)
	require.NoError(t, srv.Serve(context.Background()))
}

func TestServer_FullSession(t *testing.T) {
	s := &script{}
	s.request("initialize", map[string]any{"capabilities": map[string]any{}})
	s.notify("initialized", map[string]any{})
	open(s, likesDoc)
	s.request("textDocument/completion", position(6, 28))
	s.request("textDocument/codeAction", map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"range":        map[string]any{"start": map[string]int{"line": 5, "character": 0}, "end": map[string]int{"line": 5, "character": 10}},
		"context": map[string]any{"diagnostics": []map[string]any{{
			"range":    map[string]any{"start": map[string]int{"line": 5, "character": 0}, "end": map[string]int{"line": 5, "character": 10}},
			"severity": 2,
			"code":     "W101",
			"message":  "Literal has no template.",
		}}},
	})
	s.request("textDocument/hover", position(4, 2))
	s.request("textDocument/semanticTokens/full", map[string]any{"textDocument": map[string]any{"uri": uri}})
	s.request("shutdown", nil)
	s.notify("exit", nil)

	msgs := run(t, s)
	require.Len(t, msgs, 7)

	// initialize
	assert.JSONEq(t, "1", string(msgs[0].ID))
	var init struct {
		Capabilities map[string]json.RawMessage `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(msgs[0].Result, &init))
	assert.Contains(t, init.Capabilities, "completionProvider")
	assert.Contains(t, init.Capabilities, "semanticTokensProvider")

	// diagnostics published on open
	assert.Equal(t, "textDocument/publishDiagnostics", msgs[1].Method)
	var published PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(msgs[1].Params, &published))
	assert.Equal(t, uri, published.URI)
	require.Len(t, published.Diagnostics, 1)
	assert.Equal(t, Diagnostic{
		Range:    Range{Start: Position{Line: 5}, End: Position{Line: 5, Character: 10}},
		Severity: 2,
		Code:     "W101",
		Source:   "logical-english",
		Message:  "Literal has no template.",
	}, published.Diagnostics[0])

	// completion
	var items []CompletionItem
	require.NoError(t, json.Unmarshal(msgs[2].Result, &items))
	require.NotEmpty(t, items)
	assert.Equal(t, "fred bloggs really likes *an object*", items[0].Label)
	assert.Equal(t, "fred bloggs really likes ${1:an object}", items[0].TextEdit.NewText)
	assert.Equal(t, Range{Start: Position{Line: 6}, End: Position{Line: 6, Character: 28}}, items[0].TextEdit.Range)
	assert.Equal(t, insertFormatSnippet, items[0].InsertTextFormat)

	// code action
	var actions []CodeAction
	require.NoError(t, json.Unmarshal(msgs[3].Result, &actions))
	require.Len(t, actions, 1)
	assert.Equal(t, "Generate a template", actions[0].Title)
	assert.Equal(t, []TextEdit{{
		Range:   Range{Start: Position{Line: 2}, End: Position{Line: 2}},
		NewText: "bob dances\n",
	}}, actions[0].Edit.Changes[uri])

	// hover
	var hover Hover
	require.NoError(t, json.Unmarshal(msgs[4].Result, &hover))
	assert.Equal(t, "markdown", hover.Contents.Kind)
	assert.Contains(t, hover.Contents.Value, "*a person* really likes *an object*")

	// semantic tokens
	var tokens SemanticTokens
	require.NoError(t, json.Unmarshal(msgs[5].Result, &tokens))
	assert.Equal(t, []int{
		4, 0, 11, 1, 0,
		0, 25, 6, 1, 0,
		2, 0, 11, 1, 0,
		0, 25, 3, 1, 0,
	}, tokens.Data)

	// shutdown
	assert.JSONEq(t, "null", string(msgs[6].Result))
	assert.Nil(t, msgs[6].Error)
}

func TestServer_ChangeAndClose(t *testing.T) {
	s := &script{}
	s.request("initialize", map[string]any{})
	open(s, likesDoc)
	s.notify("textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": uri, "version": 2},
		"contentChanges": []map[string]any{{"text": "knowledge base:\nbob dances.\nalice sings.\n"}},
	})
	s.notify("textDocument/didClose", map[string]any{"textDocument": map[string]any{"uri": uri}})
	s.request("textDocument/hover", position(1, 0))

	msgs := run(t, s)
	require.Len(t, msgs, 5)

	var changed PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(msgs[2].Params, &changed))
	assert.Equal(t, 2, changed.Version)
	assert.Len(t, changed.Diagnostics, 2)

	var closed PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(msgs[3].Params, &closed))
	assert.Empty(t, closed.Diagnostics)

	// Closed documents are unknown.
	assert.JSONEq(t, "null", string(msgs[4].Result))
}

func TestServer_Errors(t *testing.T) {
	s := &script{}
	s.request("textDocument/hover", position(0, 0))
	s.request("initialize", map[string]any{})
	s.request("workspace/symbol", map[string]any{})
	s.request("textDocument/completion", nil)
	s.notify("workspace/didChangeConfiguration", map[string]any{})
	s.request("shutdown", nil)
	s.request("textDocument/hover", position(0, 0))

	msgs := run(t, s)
	require.Len(t, msgs, 6)

	require.NotNil(t, msgs[0].Error)
	assert.Equal(t, codeServerNotInitialized, msgs[0].Error.Code)
	assert.Nil(t, msgs[1].Error)
	require.NotNil(t, msgs[2].Error)
	assert.Equal(t, codeMethodNotFound, msgs[2].Error.Code)
	require.NotNil(t, msgs[3].Error)
	assert.Equal(t, codeInvalidParams, msgs[3].Error.Code)
	assert.Nil(t, msgs[4].Error)
	require.NotNil(t, msgs[5].Error)
	assert.Equal(t, codeInvalidRequest, msgs[5].Error.Code)
}

func TestServer_MalformedMessage(t *testing.T) {
	var in bytes.Buffer
	in.WriteString("Content-Length: 5\r\n\r\n{oops")

	var out bytes.Buffer
	srv := NewServer(&in, &out, zaptest.NewLogger(t), Options{})
	require.NoError(t, srv.Serve(context.Background()))

	body, err := readMessage(bufio.NewReader(&out))
	require.NoError(t, err)
	var m message
	require.NoError(t, json.Unmarshal(body, &m))
	require.NotNil(t, m.Error)
	assert.Equal(t, codeParseError, m.Error.Code)
}

func TestServer_OversizedMessage(t *testing.T) {
	in := strings.NewReader("Content-Length: 9223372036854775807\r\n\r\n{}")

	srv := NewServer(in, io.Discard, zaptest.NewLogger(t), Options{})
	err := srv.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Content-Length")
}

func TestServer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := NewServer(strings.NewReader(""), io.Discard, zaptest.NewLogger(t), Options{})
	assert.ErrorIs(t, srv.Serve(ctx), context.Canceled)
}
