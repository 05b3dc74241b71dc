package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oauthcb/internal/shared"
)

const readHeaderTimeout = 10 * time.Second

// Server owns the listening socket and the [http.Server] bound to it.
type Server struct {
	addr    string
	srv     *http.Server
	ln      net.Listener
	logger  *log.Logger
	results <-chan CallbackResult
}

// NewServer creates a server for addr. Nothing is bound until [Server.Listen].
func NewServer(addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		addr:   addr,
		logger: logger,
		srv: &http.Server{
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}
}

// Listen binds the socket. Port 0 picks a free port; see [Server.Port].
func (s *Server) Listen() error {
	if s.ln != nil {
		return fmt.Errorf("%w: already listening on %s", shared.ErrListen, s.ln.Addr())
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrListen, err)
	}
	s.ln = ln
	return nil
}

// SetHandler sets the handler served by [Server.Serve].
func (s *Server) SetHandler(h http.Handler) {
	s.srv.Handler = h
}

// Port reports the bound TCP port, or 0 before [Server.Listen].
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	if addr, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// URL returns http://localhost:<port> for the bound port.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port())
}

// Serve accepts connections on the socket bound by [Server.Listen] until [Server.Shutdown].
// A clean shutdown returns nil.
func (s *Server) Serve() error {
	if s.ln == nil {
		return fmt.Errorf("%w: Listen must be called before Serve", shared.ErrListen)
	}
	if s.srv.Handler == nil {
		return fmt.Errorf("%w: no handler set", shared.ErrInvalidArgument)
	}

	s.logger.Debug("serving", "addr", s.ln.Addr().String())
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %v", shared.ErrServerClosed, err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight responses until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		s.srv.Close()
		return fmt.Errorf("%w: %v", shared.ErrShutdown, err)
	}
	// Serve may never have run; the listener is only tracked by srv once it has.
	if s.ln != nil {
		s.ln.Close()
	}
	return nil
}

// Run serves until ctx is cancelled, then shuts down within timeout.
//
// Cancelling ctx is the normal way to stop and is not reported as an error.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// NewCallbackServer binds cfg.Server.Addr and assembles the callback router around the bound port,
// so the not-found page always shows a URL that actually reaches this process.
func NewCallbackServer(cfg *shared.Config, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := NewServer(cfg.Server.Addr(), logger)
	if err := s.Listen(); err != nil {
		return nil, err
	}

	router := NewBasicRouter()
	router.Use(
		RequestLogger(shared.WithLogger(logger, "component", "http")),
		Recoverer(logger),
		RateLimit(NewLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)),
	)
	callback := NewCallbackHandler(CallbackOptions{
		CallbackPath: cfg.Server.CallbackPath,
		CallbackURL:  s.CallbackURL(cfg.Server.CallbackPath),
		Service:      cfg.Page.Service,
		Tool:         cfg.Page.Tool,
		Logger:       shared.WithLogger(logger, "component", "callback"),
	})
	router.Handler(callback)
	s.SetHandler(router)
	s.results = callback.Result()

	return s, nil
}

// CallbackURL joins [Server.URL] with path.
func (s *Server) CallbackURL(path string) string {
	return s.URL() + path
}

// Result forwards [CallbackHandler.Result] for servers built by [NewCallbackServer].
// It is nil, and so never ready, for servers assembled by hand.
func (s *Server) Result() <-chan CallbackResult {
	return s.results
}
