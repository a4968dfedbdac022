// Package lsp serves the analysis engine over the Language Server Protocol
// on a pair of streams, usually stdin and stdout.
//
// Messages are handled one at a time in arrival order, so every response
// reflects the latest text the server received. Analysis passes are cached
// per document until the text changes or the entry expires.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/roach88/lels/internal/analysis"
)

// Options configures the server.
type Options struct {
	Analysis        analysis.Options
	MaxProblems     int
	CompletionLimit int
	CacheTTL        time.Duration
}

type textDocument struct {
	version int
	text    string
}

type cachedPass struct {
	text string
	pass *analysis.Pass
}

// Server is a single-client language server.
type Server struct {
	in      *bufio.Reader
	out     io.Writer
	log     *zap.Logger
	opts    Options
	session string

	docs  map[string]textDocument
	cache *gocache.Cache

	initialized  bool
	shuttingDown bool
}

// NewServer returns a server reading requests from in and writing
// responses and notifications to out.
func NewServer(in io.Reader, out io.Writer, log *zap.Logger, opts Options) *Server {
	session := uuid.NewString()
	if id, err := uuid.NewV7(); err == nil {
		session = id.String()
	}
	if log == nil {
		log = zap.NewNop()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Server{
		in:      bufio.NewReader(in),
		out:     out,
		log:     log.With(zap.String("session", session)),
		opts:    opts,
		session: session,
		docs:    make(map[string]textDocument),
		// No janitor goroutine; expired entries are dropped on access.
		cache: gocache.New(ttl, 0),
	}
}

// Session returns the server's session id.
func (s *Server) Session() string {
	return s.session
}

// errExit ends the serve loop after an "exit" notification.
var errExit = errors.New("exit")

// Serve handles messages until the input ends, an exit notification
// arrives, or ctx is cancelled. Cancellation is checked between messages.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("language server started")
	defer s.log.Info("language server stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			s.log.Warn("malformed message", zap.Error(err))
			if err := s.reply(nil, nil, &ResponseError{Code: codeParseError, Message: err.Error()}); err != nil {
				return err
			}
			continue
		}

		if err := s.handle(req); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handle(req Request) error {
	start := time.Now()
	result, rerr := s.dispatch(req)
	if errors.Is(rerr, errExit) {
		return errExit
	}

	fields := []zap.Field{zap.String("method", req.Method), zap.Duration("elapsed", time.Since(start))}
	var respErr *ResponseError
	if rerr != nil && !errors.As(rerr, &respErr) {
		respErr = &ResponseError{Code: codeInvalidParams, Message: rerr.Error()}
	}
	if respErr != nil {
		s.log.Debug("request failed", append(fields, zap.Int("code", respErr.Code), zap.String("error", respErr.Message))...)
	} else {
		s.log.Debug("request handled", fields...)
	}

	if req.IsNotification() {
		return nil
	}
	return s.reply(req.ID, result, respErr)
}

func (s *Server) reply(id json.RawMessage, result any, respErr *ResponseError) error {
	resp := Response{JSONRPC: "2.0", ID: id, Error: respErr}
	if respErr == nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		resp.Result = data
	}
	return writeMessage(s.out, resp)
}

func (s *Server) notify(method string, params any) error {
	return writeMessage(s.out, Notification{JSONRPC: "2.0", Method: method, Params: params})
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return &ResponseError{Code: codeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &ResponseError{Code: codeInvalidParams, Message: err.Error()}
	}
	return nil
}

// pass returns the analysis of uri's current text.
func (s *Server) pass(uri string) (*analysis.Pass, textDocument, bool) {
	doc, ok := s.docs[uri]
	if !ok {
		return nil, textDocument{}, false
	}
	if v, found := s.cache.Get(uri); found {
		if c := v.(cachedPass); c.text == doc.text {
			return c.pass, doc, true
		}
	}
	p := analysis.Analyze(doc.text, s.opts.Analysis)
	s.cache.SetDefault(uri, cachedPass{text: doc.text, pass: p})
	return p, doc, true
}
