// =============================================================================
// Community Order Filter - HTTP Upload Service
// =============================================================================
//
// ROUTES:
//   POST /api/filter   multipart upload: "file" (orders) + "custData"
//                      (directory); responds with filtered.xlsx
//   GET  /healthz      liveness probe
//   GET  /*            optional static client with index.html fallback
//
// ERROR RESPONSES (text/plain):
//   400  a required upload part is missing
//   413  the request body exceeds the configured limit
//   422  a required sheet is missing or an input is not a spreadsheet
//   500  anything else
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ginjaninja78/community-order-filter/internal/converter"
	"github.com/ginjaninja78/community-order-filter/pkg/utils"
)

// Logger is the logging interface the server writes to.
type Logger interface {
	converter.Logger
}

// Options configures the server.
type Options struct {
	Addr           string
	MaxUploadBytes int64
	StaticDir      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// Archive, when set, receives a copy of every generated workbook.
	Archive *utils.FileManager
}

// Server serves the upload API.
type Server struct {
	opts   Options
	conv   *converter.Converter
	log    Logger
	router *mux.Router
}

// New builds a Server around conv.
func New(opts Options, conv *converter.Converter, log Logger) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	s := &Server{opts: opts, conv: conv, log: log}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logRequests, corsMiddleware)

	router.HandleFunc("/api/filter", s.handleFilter).Methods(http.MethodPost)
	router.HandleFunc("/api/filter", preflight).Methods(http.MethodOptions)
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	if s.opts.StaticDir != "" {
		router.PathPrefix("/").Handler(spaHandler{dir: s.opts.StaticDir}).Methods(http.MethodGet, http.MethodHead)
	}

	return router
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server running on %s", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
