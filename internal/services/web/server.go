// Package web serves the browser-facing pet adoption site.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/pawprint/internal/platform/timeouts"
	webapp "github.com/louisbranch/pawprint/internal/services/web/app"
	"github.com/louisbranch/pawprint/internal/services/web/modules"
	"github.com/louisbranch/pawprint/internal/services/web/modules/auth"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	"github.com/louisbranch/pawprint/internal/services/web/platform/observability"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/pawprint/internal/services/web/principal"
	webstatic "github.com/louisbranch/pawprint/internal/services/web/static"
	"github.com/louisbranch/pawprint/internal/services/web/storage"
)

const defaultSessionSweep = 15 * time.Minute

// Backend is the remote API as the server uses it: the module gateways plus
// the listings behind mounted views.
type Backend interface {
	modules.API
	modules.ViewSource
}

// Config defines constructor inputs for the web service.
type Config struct {
	HTTPAddr string
	Backend  Backend
	Images   imageform.Uploader
	Verifier auth.Verifier
	// Sessions is owned by the server once NewServer succeeds.
	Sessions storage.SessionStore

	ProviderConfig string
	PublishableKey string

	Views        modules.ViewConfig
	SchemePolicy requestmeta.SchemePolicy
	// SessionSweep is how often expired sessions are deleted. Zero uses
	// the default; negative disables sweeping.
	SessionSweep time.Duration
	Logger       *log.Logger
	Now          func() time.Time
}

// Server hosts the web service HTTP listener.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	views      *modules.Views
	sessions   storage.SessionStore
	sweep      time.Duration
	logger     *log.Logger
	now        func() time.Time
}

// NewHandler builds the root handler and the mounted views behind it. The
// caller closes the returned views.
func NewHandler(cfg Config) (http.Handler, *modules.Views, error) {
	if cfg.Backend == nil {
		return nil, nil, errors.New("backend is required")
	}
	if cfg.Sessions == nil {
		return nil, nil, errors.New("session store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	viewCfg := cfg.Views
	if viewCfg.Logger == nil {
		viewCfg.Logger = logger
	}
	views, err := modules.NewViews(cfg.Backend, viewCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build views: %w", err)
	}

	resolver := principal.New(cfg.Sessions, cfg.SchemePolicy, logger)
	deps := modules.Dependencies{
		API:            cfg.Backend,
		Images:         cfg.Images,
		Verifier:       cfg.Verifier,
		Sessions:       cfg.Sessions,
		Views:          views,
		ProviderConfig: cfg.ProviderConfig,
		PublishableKey: cfg.PublishableKey,
		Resolvers:      resolver.Dependencies(),
		Now:            cfg.Now,
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		Dependencies:     deps.Resolvers,
		PublicModules:    modules.DefaultPublicModules(deps),
		ProtectedModules: modules.DefaultProtectedModules(deps),
		AdminModules:     modules.DefaultAdminModules(deps),
	})
	if err != nil {
		views.Close()
		return nil, nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RequestID(),
		observability.Trace(),
		resolver.Middleware(),
		observability.RequestLogger(logger),
		httpx.RecoverPanic(),
	), views, nil
}

// NewServer builds a configured web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, views, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	sweep := cfg.SessionSweep
	if sweep == 0 {
		sweep = defaultSessionSweep
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		views:    views,
		sessions: cfg.Sessions,
		sweep:    sweep,
		logger:   logger,
		now:      now,
	}, nil
}

// ListenAndServe serves HTTP traffic until ctx ends or the server stops.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepSessions(sweepCtx)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Printf("web listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// sweepSessions deletes expired sessions until ctx ends.
func (s *Server) sweepSessions(ctx context.Context) {
	if s.sweep < 0 || s.sessions == nil {
		return
	}
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.DeleteExpiredSessions(ctx, s.now())
			if err != nil {
				s.logger.Printf("session sweep failed err=%v", err)
				continue
			}
			if removed > 0 {
				s.logger.Printf("session sweep removed=%d", removed)
			}
		}
	}
}

// Close stops the listener, unmounts every view, and closes the session
// store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	s.views.Close()
	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			s.logger.Printf("close session store: %v", err)
		}
	}
}
