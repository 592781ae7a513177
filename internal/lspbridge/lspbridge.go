// Package lspbridge exposes the linter as a minimal LSP diagnostics
// server: open/change an ERB document and its offenses are published
// as protocol.Diagnostic. Grounded on pkg/lsp/server.go's request
// router and pkg/lsp/handlers.go's TranslateDiagnostics, stripped of
// the gopls proxy entirely — this module has no second language
// server to front, so "translation" here means offense.Offense →
// protocol.Diagnostic via erbsrc.Source.Position, not Go↔Dingo
// position bridging.
package lspbridge

import (
	"context"
	"encoding/json"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/linter"
	"github.com/indentlint/erblayout/internal/offense"
)

// Logger is the minimal sink the server reports through, mirroring
// pkg/plugin.Logger's shape so it can be satisfied by the same kind of
// adapter the teacher wires up around its own loggers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}

// Server is a jsonrpc2.Handler that tracks open ERB documents and
// republishes diagnostics on every open/change, per spec.md §6's LSP
// surface.
type Server struct {
	cfg    *config.Config
	logger Logger

	mu   sync.Mutex
	conn jsonrpc2.Conn
	docs map[protocol.DocumentURI][]byte
}

// NewServer builds a Server bound to cfg. A nil logger is replaced by
// a no-op one, matching the teacher's ServerConfig.Logger convention.
func NewServer(cfg *config.Config, logger Logger) *Server {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Server{cfg: cfg, logger: logger, docs: make(map[protocol.DocumentURI][]byte)}
}

// Handler returns the jsonrpc2 handler for this server, per
// pkg/lsp/server.go's Handler()/handleRequest() split.
func (s *Server) Handler() jsonrpc2.Handler {
	return jsonrpc2.ReplyHandler(s.handleRequest)
}

func (s *Server) handleRequest(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debugf("lspbridge: received %s", req.Method())

	switch req.Method() {
	case "initialize":
		return reply(ctx, &protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncKindFull,
			},
		}, nil)
	case "initialized", "shutdown":
		return reply(ctx, nil, nil)
	case "exit":
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	default:
		return reply(ctx, nil, nil)
	}
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.setDoc(params.TextDocument.URI, []byte(params.TextDocument.Text))
	s.publish(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	if n := len(params.ContentChanges); n > 0 {
		// TextDocumentSyncKindFull: the last change carries the whole document.
		s.setDoc(params.TextDocument.URI, []byte(params.ContentChanges[n-1].Text))
	}
	s.publish(ctx, params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

func (s *Server) setDoc(u protocol.DocumentURI, content []byte) {
	s.mu.Lock()
	s.docs[u] = content
	s.mu.Unlock()
}

// SetConn records the outbound connection used to push diagnostics,
// mirroring pkg/lsp/server.go's SetConn/GetConn pair (simplified to a
// single mutex-guarded field, since this bridge never talks to a
// second language server and so never needs the teacher's separate
// stored context).
func (s *Server) SetConn(conn jsonrpc2.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *Server) publish(ctx context.Context, docURI protocol.DocumentURI) {
	s.mu.Lock()
	content := s.docs[docURI]
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}

	result, err := linter.Run(ctx, string(docURI.Filename()), content, s.cfg)
	if err != nil {
		s.logger.Warnf("lspbridge: run failed for %s: %v", docURI, err)
		return
	}

	diags := toDiagnostics(result.IR.Source, result.Offenses)
	params := protocol.PublishDiagnosticsParams{URI: docURI, Diagnostics: diags}
	if err := conn.Notify(ctx, "textDocument/publishDiagnostics", params); err != nil {
		s.logger.Warnf("lspbridge: publish failed: %v", err)
	}
}

func toDiagnostics(source *erbsrc.Source, offenses []offense.Offense) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(offenses))
	for _, o := range offenses {
		diags = append(diags, protocol.Diagnostic{
			Range:    toRange(source, o.Location),
			Severity: toSeverity(o.Severity),
			Source:   "erblayout",
			Message:  o.Message,
		})
	}
	return diags
}

func toRange(source *erbsrc.Source, r erbrange.Range) protocol.Range {
	startLine, startCol := source.Position(r.Begin)
	endLine, endCol := source.Position(r.End)
	return protocol.Range{
		Start: protocol.Position{Line: uint32(startLine - 1), Character: uint32(startCol - 1)},
		End:   protocol.Position{Line: uint32(endLine - 1), Character: uint32(endCol - 1)},
	}
}

func toSeverity(s offense.Severity) protocol.DiagnosticSeverity {
	switch s {
	case offense.SeverityError, offense.SeverityFatal:
		return protocol.DiagnosticSeverityError
	case offense.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case offense.SeverityRefactor:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
