// Package api exposes a small gin HTTP surface over a running scheduler.App:
// entity introspection, a manual tick trigger, and the tool registry a host
// advertises to its LLM planner. It never mutates the world except through
// App.RunFixed, and every route is read-only besides that one.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astraweave/core/pkg/llmiface"
	"github.com/astraweave/core/pkg/scheduler"
)

// Server wraps a scheduler.App with a gin.Engine. Zero value is not
// usable; construct with NewServer.
type Server struct {
	app      *scheduler.App
	registry llmiface.ToolRegistry
	logger   *slog.Logger

	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds a Server over app. registry is advertised verbatim by
// GET /tools; pass llmiface.DefaultRegistry() if the host has none of its
// own.
func NewServer(app *scheduler.App, registry llmiface.ToolRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		app:      app,
		registry: registry,
		logger:   logger,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// Router returns the underlying gin.Engine, mainly so tests can drive it
// with httptest without opening a real listener.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/snapshot/:entity", s.snapshotHandler)
	s.router.POST("/tick", s.tickHandler)
	s.router.GET("/tools", s.toolsHandler)
}

// requestLogger logs one line per request at slog.LevelDebug, the
// teacher's "log everything, let the level filter decide" posture.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Start listens on addr until the process is killed or Shutdown is
// called from another goroutine.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: listen on %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server started by Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
