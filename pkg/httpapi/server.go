package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// Views is the display surface the API drives.
type Views interface {
	Next()
	Prev()
	Count() int
	Index() int
	Current() view.View
	RenderCurrent(ctx context.Context) (*view.Frame, error)
	LastFrame() *view.Frame
}

// Limiter admits or rejects a request.
type Limiter interface {
	Allow() bool
}

// Config holds the HTTP server settings.
type Config struct {
	// Host to bind. Loopback by default; the display API is not meant
	// to face the open network unless explicitly configured to.
	Host string

	// Port to listen on.
	Port int

	// AuthUser and AuthPass enable basic auth when both are set.
	AuthUser string
	AuthPass string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            8080,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server is the HTTP control surface over the display.
type Server struct {
	config  Config
	views   Views
	limiter Limiter
	logger  zerolog.Logger
	http    *http.Server
}

// New creates a server over a view surface and a rate limiter.
func New(config Config, views Views, limiter Limiter) (*Server, error) {
	if views == nil {
		return nil, errors.New("views surface is required")
	}
	if limiter == nil {
		return nil, errors.New("rate limiter is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", config.Port)
	}

	s := &Server{
		config:  config,
		views:   views,
		limiter: limiter,
		logger:  log.With().Str("component", "httpapi").Logger(),
	}

	s.http = &http.Server{
		Addr:         net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s, nil
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/screenshot", s.handleScreenshot).Methods(http.MethodGet)
	r.HandleFunc("/next", s.handleNext).Methods(http.MethodPost, http.MethodGet)
	r.HandleFunc("/prev", s.handlePrev).Methods(http.MethodPost, http.MethodGet)
	r.HandleFunc("/view", s.handleView).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	var h http.Handler = r
	h = rateLimit(s.limiter, h)
	h = basicAuth(s.config.AuthUser, s.config.AuthPass, h)
	h = accessLog(s.logger, h)
	return h
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP API listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info().Msg("HTTP API stopped")
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "OK")
}

// handleScreenshot renders the current view on demand. When the render
// fails, the last known good frame is served instead; only with no frame
// at all does the request fail.
func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	frame, err := s.views.RenderCurrent(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Screenshot render failed, trying last frame")
		frame = s.views.LastFrame()
	}
	if frame == nil {
		http.Error(w, "no frame available", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-View", frame.View())
	if err := frame.EncodePNG(w); err != nil {
		s.logger.Error().Err(err).Msg("PNG encode failed")
	}
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.views.Next()
	s.writeViewStatus(w)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.views.Prev()
	s.writeViewStatus(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.writeViewStatus(w)
}

// writeViewStatus reports the current view as "name (i/n)", 1-based.
func (s *Server) writeViewStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s (%d/%d)", s.views.Current().Name(), s.views.Index()+1, s.views.Count())
}
