// Package chassis runs the HTTP API and the MCP tools on one port.
//
// TCP carries HTTP/1.1 and HTTP/2 over TLS. UDP carries QUIC, demultiplexed
// by ALPN: "h3" goes to HTTP/3 with the same handler, textnorm-mcp-v1 to the
// MCP session handler. TCP responses advertise HTTP/3 through Alt-Svc.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/hazyhaar/textnorm/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
)

const (
	alpnH3 = "h3"

	connErrMCPDisabled quic.ApplicationErrorCode = 0x10
	connErrUnknownALPN quic.ApplicationErrorCode = 0x11
)

type Config struct {
	Addr      string            // TCP and UDP, same port
	TLS       *tls.Config       // nil: load CertFile/KeyFile, or self-signed when both are empty
	CertFile  string
	KeyFile   string
	Handler   http.Handler
	MCPServer *server.MCPServer // nil disables MCP
	Logger    *slog.Logger
}

type Server struct {
	addr    string
	logger  *slog.Logger
	tlsCfg  *tls.Config
	handler http.Handler
	mcp     *mcpquic.Handler

	mu    sync.Mutex
	tcpLn net.Listener
	tcp   *http.Server
	h3    *http3.Server
	quic  *quic.Listener
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Handler == nil {
		return nil, errors.New("chassis: nil handler")
	}
	tlsCfg := cfg.TLS
	if tlsCfg == nil {
		var err error
		tlsCfg, err = mcpquic.ServerTLSConfig(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, err
		}
	}
	s := &Server{
		addr:    cfg.Addr,
		logger:  cfg.Logger,
		tlsCfg:  tlsCfg,
		handler: altSvc(cfg.Addr, cfg.Handler),
	}
	if cfg.MCPServer != nil {
		s.mcp = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

func altSvc(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	value := fmt.Sprintf(`h3=":%s"; ma=86400`, port)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", value)
		next.ServeHTTP(w, r)
	})
}

// Listen binds the TCP and UDP sockets. Serve must follow.
func (s *Server) Listen() error {
	tcpTLS := s.tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}
	quicTLS := s.tlsCfg.Clone()
	quicTLS.NextProtos = []string{alpnH3, mcpquic.ALPNProtocol}

	tcpLn, err := tls.Listen("tcp", s.addr, tcpTLS)
	if err != nil {
		return fmt.Errorf("tcp listen: %w", err)
	}
	ql, err := quic.ListenAddr(s.addr, quicTLS, mcpquic.QUICConfig())
	if err != nil {
		tcpLn.Close()
		return fmt.Errorf("quic listen: %w", err)
	}

	s.mu.Lock()
	s.tcpLn = tcpLn
	s.tcp = &http.Server{Handler: s.handler, TLSConfig: tcpTLS}
	s.h3 = &http3.Server{Handler: s.handler}
	s.quic = ql
	s.mu.Unlock()
	return nil
}

// Addrs returns the bound TCP and UDP addresses. Both are nil before Listen.
func (s *Server) Addrs() (tcp, udp net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tcpLn == nil {
		return nil, nil
	}
	return s.tcpLn.Addr(), s.quic.Addr()
}

// Serve blocks until ctx is done or a listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	tcpLn, tcp, ql := s.tcpLn, s.tcp, s.quic
	s.mu.Unlock()
	if tcpLn == nil {
		return errors.New("chassis: Serve before Listen")
	}

	s.logger.Info("chassis listening", "tcp", tcpLn.Addr().String(), "udp", ql.Addr().String(), "mcp", s.mcp != nil)

	errCh := make(chan error, 2)
	go func() {
		if err := tcp.Serve(tcpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("tcp: %w", err)
		}
	}()
	go func() {
		for {
			conn, err := ql.Accept(ctx)
			if err != nil {
				if ctx.Err() == nil {
					errCh <- fmt.Errorf("quic accept: %w", err)
				}
				return
			}
			s.dispatch(ctx, conn)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Start is Listen followed by Serve.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) dispatch(ctx context.Context, conn *quic.Conn) {
	switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
	case alpnH3:
		go func() {
			if err := s.h3.ServeQUICConn(conn); err != nil {
				s.logger.Debug("http3 conn done", "remote", conn.RemoteAddr(), "error", err)
			}
		}()
	case mcpquic.ALPNProtocol:
		if s.mcp == nil {
			conn.CloseWithError(connErrMCPDisabled, "mcp disabled")
			return
		}
		go s.mcp.ServeConn(ctx, conn)
	default:
		s.logger.Warn("unknown alpn", "alpn", alpn, "remote", conn.RemoteAddr())
		conn.CloseWithError(connErrUnknownALPN, "unsupported alpn "+alpn)
	}
}

// Stop shuts down every listener. The returned error joins every failure.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.tcp != nil {
		errs = append(errs, s.tcp.Shutdown(ctx))
	}
	if s.quic != nil {
		errs = append(errs, s.quic.Close())
	}
	if s.h3 != nil {
		errs = append(errs, s.h3.Close())
	}
	return errors.Join(errs...)
}
