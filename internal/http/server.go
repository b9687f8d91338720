// Package http provides the HTTP server and route wiring for the API.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	blogHTTP "github.com/allisson/blogs/internal/blog/http"
	commentHTTP "github.com/allisson/blogs/internal/comment/http"
	"github.com/allisson/blogs/internal/config"
	identityHTTP "github.com/allisson/blogs/internal/identity/http"
	identityService "github.com/allisson/blogs/internal/identity/service"
	userHTTP "github.com/allisson/blogs/internal/user/http"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server.
// The router must be configured via SetupRouter before calling Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterDeps holds the handlers and services required to build the API routes.
type RouterDeps struct {
	Config         *config.Config
	TokenService   identityService.TokenService
	AuthHandler    *identityHTTP.AuthHandler
	UserHandler    *userHTTP.UserHandler
	BlogHandler    *blogHTTP.BlogHandler
	CommentHandler *commentHTTP.CommentHandler
}

// SetupRouter builds the Gin router with all middlewares and API routes.
//
// Route layout:
//   - Public:        POST /v1/auth/login, POST /v1/users
//   - Public reads:  GET /v1/blogs, GET /v1/blogs/:id, GET /v1/blogs/:id/comments
//   - Authenticated: everything else under /v1
func (s *Server) SetupRouter(deps RouterDeps) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		deps.Config.CORSEnabled,
		deps.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := identityHTTP.AuthenticationMiddleware(deps.TokenService, s.logger)
	optionalAuth := identityHTTP.OptionalAuthenticationMiddleware(deps.TokenService, s.logger)

	v1 := router.Group("/v1")

	// Login is unauthenticated and rate limited per IP to slow down
	// credential stuffing.
	login := v1.Group("/auth")
	if deps.Config.LoginRateLimitEnabled {
		login.Use(LoginRateLimitMiddleware(
			deps.Config.LoginRateLimitRequestsPerSec,
			deps.Config.LoginRateLimitBurst,
			s.logger,
		))
	}
	login.POST("/login", deps.AuthHandler.LoginHandler)

	// Registration is public, listing and permission grants are not.
	v1.POST("/users", deps.UserHandler.RegisterHandler)
	v1.GET("/users", authenticated, deps.UserHandler.ListHandler)
	v1.POST("/users/:id/permissions", authenticated, deps.UserHandler.AssignPermissionHandler)

	// Blog reads are public, writes require an authenticated identity.
	v1.GET("/blogs", optionalAuth, deps.BlogHandler.ListHandler)
	v1.GET("/blogs/:id", optionalAuth, deps.BlogHandler.GetHandler)
	v1.POST("/blogs", authenticated, deps.BlogHandler.CreateHandler)
	v1.PUT("/blogs/:id", authenticated, deps.BlogHandler.UpdateHandler)
	v1.DELETE("/blogs/:id", authenticated, deps.BlogHandler.DeleteHandler)
	v1.POST("/blogs/:id/image", authenticated, deps.BlogHandler.UploadImageHandler)

	// Comment reads are public as well.
	v1.GET("/blogs/:id/comments", optionalAuth, deps.CommentHandler.ListHandler)
	v1.POST("/blogs/:id/comments", authenticated, deps.CommentHandler.CreateHandler)
	v1.DELETE("/comments/:id", authenticated, deps.CommentHandler.DeleteHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
