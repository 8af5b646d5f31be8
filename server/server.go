// Package server hosts the movie dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/loader"
	"github.com/spektr-org/cinelens/styles"
)

// ErrNotLoaded is returned when the server has no dataset yet.
var ErrNotLoaded = errors.New("dataset not loaded")

const shutdownTimeout = 5 * time.Second

// Server serves dashboards for one dataset source.
type Server struct {
	loader  *loader.Loader
	source  loader.Source
	opts    []engine.Option
	started time.Time

	mu      sync.RWMutex
	dataset *loader.Dataset
}

// New creates a Server. Call Init before serving.
func New(l *loader.Loader, src loader.Source, opts ...engine.Option) *Server {
	return &Server{
		loader:  l,
		source:  src,
		opts:    opts,
		started: time.Now(),
	}
}

// Init performs the first load. A failure here is fatal to the caller.
func (s *Server) Init(ctx context.Context) error {
	_, err := s.Reload(ctx)
	return err
}

// Reload re-runs the loader and swaps in the result. On failure the
// previous dataset stays in place.
func (s *Server) Reload(ctx context.Context) (*loader.Dataset, error) {
	ds, err := s.loader.Load(ctx, s.source)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()
	return ds, nil
}

// Dataset returns the current dataset.
func (s *Server) Dataset() (*loader.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrNotLoaded
	}
	return s.dataset, nil
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(RequestID())

	api := r.Group("/api")
	NewHandler(s).RegisterRoutes(api)
	NewHealthHandler(s).RegisterRoutes(api)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Print(styles.SprintfS("info", "🔧 Cinelens: listening on %s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Print(styles.SprintfS("info", "🔧 Cinelens: shutting down"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
