package api

import (
	"net/http"
	"time"

	"numkit/app"
	"numkit/internal"

	"github.com/gin-gonic/gin"
)

// Server exposes the calculator over a JSON HTTP API
type Server struct {
	router     *gin.Engine
	calculator *app.CalculatorService
	logger     *internal.Logger
}

// NewServer builds the router. docs is mounted under /docs when non-nil.
func NewServer(calculator *app.CalculatorService, docs http.Handler, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:     gin.New(),
		calculator: calculator,
		logger:     logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes(docs)
	return s
}

func (s *Server) setupRoutes(docs http.Handler) {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/stats/summary", s.handleSummary)
		api.POST("/stats/columns", s.handleColumns)
		api.POST("/stats/:operation", s.handleStatistic)
		api.POST("/arithmetic/:operation", s.handleArithmetic)
		api.POST("/geometry/:measure", s.handleGeometry)
		api.POST("/complex/:operation", s.handleComplex)
		api.GET("/history", s.handleHistory)
		api.GET("/history/:id", s.handleComputation)
	}

	if docs != nil {
		s.router.Any("/docs/*path", gin.WrapH(http.StripPrefix("/docs", docs)))
	}
}

// requestLogger logs one line per request at DEBUG
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("[API] %s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), float64(time.Since(start).Nanoseconds())/1e6)
	}
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the API on addr
func (s *Server) Start(addr string) error {
	s.logger.Info("[API] listening on %s", addr)
	return s.router.Run(addr)
}
