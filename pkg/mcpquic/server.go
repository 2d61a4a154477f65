// Package mcpquic carries MCP JSON-RPC over a single bidirectional QUIC
// stream per connection. Each message is one line of JSON.
package mcpquic

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hazyhaar/textnorm/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
)

// maxLine bounds one JSON-RPC message.
const maxLine = 4 << 20

// Handler serves MCP sessions on connections accepted elsewhere, such as a
// socket shared with HTTP/3.
type Handler struct {
	mcp    *server.MCPServer
	logger *slog.Logger
}

func NewHandler(srv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcp: srv, logger: logger}
}

// Listener accepts QUIC connections and serves each as an MCP session on a
// shared MCPServer.
type Listener struct {
	ql      *quic.Listener
	handler *Handler
	logger  *slog.Logger
	closed  atomic.Bool
}

func Listen(addr string, tlsCfg *tls.Config, srv *server.MCPServer, logger *slog.Logger) (*Listener, error) {
	h := NewHandler(srv, logger)
	ql, err := quic.ListenAddr(addr, tlsCfg, QUICConfig())
	if err != nil {
		return nil, fmt.Errorf("quic listen %s: %w", addr, err)
	}
	h.logger.Info("mcp quic listener ready", "addr", ql.Addr().String())
	return &Listener{ql: ql, handler: h, logger: h.logger}, nil
}

func (l *Listener) Addr() net.Addr { return l.ql.Addr() }

// Serve blocks until ctx is cancelled or the listener is closed.
func (l *Listener) Serve(ctx context.Context) error {
	for {
		conn, err := l.ql.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if l.closed.Load() {
				return nil
			}
			l.logger.Warn("quic accept", "error", err)
			continue
		}
		if p := conn.ConnectionState().TLS.NegotiatedProtocol; p != ALPNProtocol {
			conn.CloseWithError(connErrALPN, "unsupported alpn "+p)
			continue
		}
		go l.handler.ServeConn(ctx, conn)
	}
}

func (l *Listener) Close() error {
	l.closed.Store(true)
	return l.ql.Close()
}

// ServeConn runs one MCP session until the peer closes its stream.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		h.logger.Warn("mcp accept stream", "remote", remote, "error", err)
		conn.CloseWithError(connErrProtocol, "no stream")
		return
	}
	if err := ReadMagic(stream); err != nil {
		h.logger.Warn("mcp preamble rejected", "remote", remote, "error", err)
		stream.CancelRead(streamErrProtocol)
		stream.CancelWrite(streamErrProtocol)
		conn.CloseWithError(connErrProtocol, "bad preamble")
		return
	}

	sess := &session{
		id:     "quic_" + uuid.NewString(),
		notes:  make(chan mcp.JSONRPCNotification, 64),
		stream: stream,
	}
	if err := h.mcp.RegisterSession(ctx, sess); err != nil {
		h.logger.Warn("mcp register session", "session", sess.id, "error", err)
		stream.Close()
		return
	}
	defer h.mcp.UnregisterSession(ctx, sess.id)
	defer conn.CloseWithError(connErrNone, "")

	ctx, cancel := context.WithCancel(kit.WithTransport(ctx, kit.TransportMCPQUIC))
	defer cancel()
	ctx = h.mcp.WithContext(ctx, sess)
	go sess.forwardNotifications(ctx)

	h.logger.Debug("mcp session started", "session", sess.id, "remote", remote)
	sc := bufio.NewScanner(stream)
	sc.Buffer(make([]byte, 64<<10), maxLine)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := h.mcp.HandleMessage(ctx, json.RawMessage(line))
		if resp == nil {
			continue
		}
		if err := sess.send(resp); err != nil {
			h.logger.Warn("mcp write", "session", sess.id, "error", err)
			return
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		h.logger.Warn("mcp read", "session", sess.id, "error", err)
	}
	h.logger.Debug("mcp session ended", "session", sess.id)
}

// session implements server.ClientSession for one QUIC stream.
type session struct {
	id          string
	notes       chan mcp.JSONRPCNotification
	initialized atomic.Bool

	mu     sync.Mutex
	stream io.Writer
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notes }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

func (s *session) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.stream.Write(data)
	return err
}

func (s *session) forwardNotifications(ctx context.Context) {
	for {
		select {
		case n := <-s.notes:
			_ = s.send(n)
		case <-ctx.Done():
			return
		}
	}
}
