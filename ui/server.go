// Package ui exposes the exploration views of one session over HTTP.
package ui

import (
	"net/http"

	"diabex/internal"
	"diabex/internal/session"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the dataset explorer
type Server struct {
	router     *gin.Engine
	session    *session.Session
	sampleRows int
	logger     *internal.Logger
}

// Config holds server settings
type Config struct {
	GinMode    string
	SampleRows int
}

// NewServer creates a server bound to an already loaded session
func NewServer(s *session.Session, config Config, logger *internal.Logger) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if config.SampleRows < 1 {
		config.SampleRows = 5
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	srv := &Server{
		router:     gin.New(),
		session:    s,
		sampleRows: config.SampleRows,
		logger:     logger.With("API"),
	}
	srv.setupMiddleware()
	srv.setupRoutes()
	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/report", s.handleReport)

	api := s.router.Group("/api")
	api.GET("/session", s.handleSession)
	api.GET("/sample", s.handleSample)
	api.GET("/summary", s.handleSummary)
	api.GET("/missing", s.handleMissing)
	api.GET("/zeros", s.handleZeros)
	api.GET("/outcome", s.handleOutcome)
	api.GET("/correlation", s.handleCorrelation)
	api.GET("/boxplots", s.handleBoxplots)
}

// Handler returns the HTTP handler, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting dataset explorer on http://%s", addr)
	return s.router.Run(addr)
}
