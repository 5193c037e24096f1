package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lexicon/pkg/logger"
)

var (
	ErrStart    = errors.New("failed to start HTTP server")
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)

const defaultShutdownTimeout = 5 * time.Second

// Server serves one handler for the lifetime of a context.
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	addr      net.Addr
	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a server for cfg. An empty address listens on ":8080".
func New(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{cfg: cfg, logger: logger.Discard(), ready: make(chan struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr blocks until the server listens and returns the address of the most
// recent Run.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr, nil
}

func (s *Server) listening(addr net.Addr) {
	s.mu.Lock()
	s.addr = addr
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

// Run serves handler until ctx is canceled, then drains in-flight requests
// within the shutdown timeout. A nil handler serves 404s.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	s.listening(ln.Addr())

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.InfoContext(ctx, "http server started",
			logger.Component("httpserver"),
			slog.String("addr", ln.Addr().String()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		start := time.Now()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Join(ErrShutdown, err)
		}
		s.logger.InfoContext(ctx, "http server stopped",
			logger.Component("httpserver"),
			logger.Duration(time.Since(start)),
		)
		return nil
	})

	return g.Wait()
}
