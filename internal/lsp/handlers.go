package lsp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/lels/internal/complete"
	"github.com/roach88/lels/internal/highlight"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/quickfix"
	"github.com/roach88/lels/internal/validate"
)

// TokenTypes is the semantic token legend, indexed by token type.
var TokenTypes = []string{string(ir.CategoryVariable), string(ir.CategoryConstant)}

func (s *Server) dispatch(req Request) (any, error) {
	switch req.Method {
	case "initialize":
		s.initialized = true
		return s.capabilities(), nil
	case "initialized", "$/cancelRequest", "$/setTrace":
		return nil, nil
	case "shutdown":
		s.shuttingDown = true
		return nil, nil
	case "exit":
		return nil, errExit
	}

	if !s.initialized {
		return nil, &ResponseError{Code: codeServerNotInitialized, Message: "server not initialized"}
	}
	if s.shuttingDown {
		return nil, &ResponseError{Code: codeInvalidRequest, Message: "server is shutting down"}
	}

	switch req.Method {
	case "textDocument/didOpen":
		var params DidOpenParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		return nil, s.update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)

	case "textDocument/didChange":
		var params DidChangeParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		if len(params.ContentChanges) == 0 {
			return nil, nil
		}
		// Full sync: the last change carries the whole document.
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		return nil, s.update(params.TextDocument.URI, params.TextDocument.Version, text)

	case "textDocument/didClose":
		var params DidCloseParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		delete(s.docs, params.TextDocument.URI)
		s.cache.Delete(params.TextDocument.URI)
		return nil, s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []Diagnostic{},
		})

	case "textDocument/completion":
		var params TextDocumentPositionParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		return s.completion(params), nil

	case "textDocument/codeAction":
		var params CodeActionParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		return s.codeAction(params), nil

	case "textDocument/hover":
		var params TextDocumentPositionParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		return s.hover(params), nil

	case "textDocument/semanticTokens/full":
		var params SemanticTokensParams
		if err := decode(req.Params, &params); err != nil {
			return nil, err
		}
		return s.semanticTokens(params), nil
	}

	if req.IsNotification() {
		return nil, nil
	}
	return nil, &ResponseError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
}

func (s *Server) capabilities() map[string]any {
	return map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync":   1, // full
			"completionProvider": map[string]any{"triggerCharacters": []string{" "}},
			"codeActionProvider": map[string]any{"codeActionKinds": []string{"quickfix"}},
			"hoverProvider":      true,
			"semanticTokensProvider": map[string]any{
				"legend": map[string]any{
					"tokenTypes":     TokenTypes,
					"tokenModifiers": []string{},
				},
				"full": true,
			},
		},
		"serverInfo": map[string]any{"name": "lels"},
	}
}

// update stores the new text and publishes its diagnostics.
func (s *Server) update(uri string, version int, text string) error {
	s.docs[uri] = textDocument{version: version, text: text}
	p, doc, _ := s.pass(uri)

	diags := validate.Document(p, s.opts.MaxProblems)
	li := newLineIndex(text)
	wire := make([]Diagnostic, len(diags))
	for i, d := range diags {
		wire[i] = toWireDiagnostic(li, d)
	}
	s.log.Debug("publishing diagnostics",
		zap.String("uri", uri), zap.Int("version", doc.version), zap.Int("count", len(wire)))

	return s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.version,
		Diagnostics: wire,
	})
}

func toWireDiagnostic(li lineIndex, d ir.Diagnostic) Diagnostic {
	return Diagnostic{
		Range:    li.toWire(d.Range),
		Severity: int(d.Severity),
		Code:     d.Code,
		Source:   ir.DiagnosticSource,
		Message:  d.Message,
	}
}

func (s *Server) completion(params TextDocumentPositionParams) []CompletionItem {
	items := []CompletionItem{}
	p, doc, ok := s.pass(params.TextDocument.URI)
	if !ok {
		return items
	}
	li := newLineIndex(doc.text)
	pos := li.fromWirePosition(params.Position)

	for _, c := range complete.Complete(p, pos.Line, pos.Column, s.opts.CompletionLimit) {
		items = append(items, CompletionItem{
			Label:            c.Label,
			Kind:             completionKindSnippet,
			Detail:           fmt.Sprintf("score %.2f", c.Score),
			FilterText:       c.FilterText,
			SortText:         fmt.Sprintf("%04d", c.Rank),
			InsertTextFormat: insertFormatSnippet,
			TextEdit:         TextEdit{Range: li.toWire(c.ReplaceRange), NewText: c.InsertText},
		})
	}
	return items
}

func (s *Server) codeAction(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}
	uri := params.TextDocument.URI
	p, doc, ok := s.pass(uri)
	if !ok {
		return actions
	}
	li := newLineIndex(doc.text)

	diags := make([]ir.Diagnostic, len(params.Context.Diagnostics))
	for i, d := range params.Context.Diagnostics {
		diags[i] = ir.Diagnostic{
			Range:    li.fromWire(d.Range),
			Severity: ir.Severity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
		}
	}

	for _, a := range quickfix.Actions(p, diags) {
		wireDiags := make([]Diagnostic, len(a.Diagnostics))
		for i, d := range a.Diagnostics {
			wireDiags[i] = toWireDiagnostic(li, d)
		}
		actions = append(actions, CodeAction{
			Title:       a.Title,
			Kind:        "quickfix",
			Diagnostics: wireDiags,
			Edit: WorkspaceEdit{Changes: map[string][]TextEdit{
				uri: {{Range: li.toWire(a.Edit.Range), NewText: a.Edit.NewText}},
			}},
		})
	}
	return actions
}

func (s *Server) hover(params TextDocumentPositionParams) *Hover {
	p, doc, ok := s.pass(params.TextDocument.URI)
	if !ok {
		return nil
	}
	li := newLineIndex(doc.text)
	h, ok := highlight.Hover(p, li.fromWirePosition(params.Position))
	if !ok {
		return nil
	}
	return &Hover{
		Contents: MarkupContent{Kind: "markdown", Value: h.Markdown},
		Range:    li.toWire(h.Range),
	}
}

func (s *Server) semanticTokens(params SemanticTokensParams) SemanticTokens {
	tokens := SemanticTokens{Data: []int{}}
	p, doc, ok := s.pass(params.TextDocument.URI)
	if !ok {
		return tokens
	}
	li := newLineIndex(doc.text)

	prevLine, prevCol := 0, 0
	for _, r := range highlight.Ranges(p) {
		start := li.utf16Column(r.Line, r.Column)
		end := li.utf16Column(r.Line, r.Column+r.Length)
		deltaCol := start
		if r.Line == prevLine {
			deltaCol = start - prevCol
		}
		tokens.Data = append(tokens.Data, r.Line-prevLine, deltaCol, end-start, tokenType(r.Category), 0)
		prevLine, prevCol = r.Line, start
	}
	return tokens
}

func tokenType(c ir.SemanticCategory) int {
	for i, t := range TokenTypes {
		if t == string(c) {
			return i
		}
	}
	return 0
}
