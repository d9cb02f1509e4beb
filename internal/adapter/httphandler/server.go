package httphandler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	readHeaderTimeout     = 5 * time.Second
	idleTimeout           = 60 * time.Second
)

var timeoutBody = mustNoticeBody(errorNotice("Request timed out. Please try again later"))

// HTTPServer serves the storefront routes. Listen binds the address so a
// busy port fails startup instead of a background goroutine.
type HTTPServer struct {
	srv *http.Server
	ln  net.Listener
}

// NewHTTPServer bounds every request by requestTimeout. Non-positive
// values use the default.
func NewHTTPServer(addr string, handler http.Handler, requestTimeout time.Duration) *HTTPServer {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           http.TimeoutHandler(handler, requestTimeout, timeoutBody),
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func (s *HTTPServer) Listen() error {
	const op = "HTTPServer.Listen"

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.ln = ln
	return nil
}

// Addr is the bound address after Listen, the configured one before.
func (s *HTTPServer) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}

// Run serves until Close and calls stopFn when serving ends. It listens
// first if Listen was not called.
func (s *HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			log.Error("failed to listen", "err", err)
			return
		}
	}

	log.Info("http server is listening", "addr", s.Addr())
	err := s.srv.Serve(s.ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("unexpected server shutdown", "err", err)
	}
}

func (s *HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
