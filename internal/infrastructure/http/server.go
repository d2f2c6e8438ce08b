// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/usecases"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Config holds the server settings that do not belong to the use case.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	AllowedOrigins []string
	// APIKey is used for requests that carry no api_key field.
	APIKey      string
	KeyRequired bool
}

// Server is the HTTP server for the summarizer page and API.
type Server struct {
	summarizer *usecases.SummarizeUseCase
	store      ports.SummaryStore
	cfg        Config
	logger     *zap.Logger
	router     *gin.Engine
}

// NewServer creates a new HTTP server. store may be nil, which disables history.
func NewServer(
	summarizer *usecases.SummarizeUseCase,
	store ports.SummaryStore,
	cfg Config,
	logger *zap.Logger,
) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ":8501"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 200 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static files: %w", err)
	}

	s := &Server{
		summarizer: summarizer,
		store:      store,
		cfg:        cfg,
		logger:     logger,
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = 32 << 20

	router.StaticFS("/static", http.FS(staticContent))
	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/options", s.handleOptions)
	api.POST("/summaries", s.handleCreateSummary)
	api.GET("/summaries", s.handleListSummaries)
	api.GET("/summaries/:id", s.handleGetSummary)
	api.GET("/summaries/:id/download", s.handleDownload)
	api.DELETE("/summaries/:id", s.handleDeleteSummary)

	router.NoRoute(func(c *gin.Context) { notFound(c, "Not Found") })

	s.router = router
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Minute, // multi-chunk summaries stream for a long time
	}

	s.logger.Info("lecturesum server starting", zap.String("addr", s.cfg.Addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
