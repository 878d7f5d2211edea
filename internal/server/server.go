// Package server provides the HTTP surface of the kanban backend: thin
// request/response mapping over the resource services plus bearer token
// authentication.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kanmind/internal/service"
	"kanmind/internal/storage/sqlite"
)

// Server provides HTTP handlers for the kanban backend.
type Server struct {
	engine   *gin.Engine
	store    *sqlite.Store
	services *service.Services
	logger   *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:   router,
		store:    store,
		services: service.New(store, logger),
		logger:   logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.POST("/registration", s.handleRegistration)
		api.POST("/login", s.handleLogin)

		auth := api.Group("", s.authRequired)
		{
			auth.GET("/email-check", s.handleEmailCheck)
			auth.GET("/users", s.handleListUsers)
			auth.GET("/dashboard", s.handleListDashboards)
			auth.POST("/dashboard", s.handleCreateDashboard)

			boards := auth.Group("/boards")
			{
				boards.GET("", s.handleListBoards)
				boards.POST("", s.handleCreateBoard)
				boards.GET(":id", s.handleGetBoard)
				boards.PATCH(":id", s.handleUpdateBoard)
				boards.DELETE(":id", s.handleDeleteBoard)
			}

			tasks := auth.Group("/tasks")
			{
				tasks.GET("", s.handleListTasks)
				tasks.POST("", s.handleCreateTask)
				tasks.GET("assigned-to-me", s.handleAssignedTasks)
				tasks.GET("reviewing", s.handleReviewingTasks)
				tasks.GET(":id", s.handleGetTask)
				tasks.PATCH(":id", s.handleUpdateTask)
				tasks.DELETE(":id", s.handleDeleteTask)

				tasks.GET(":id/comments", s.handleListComments)
				tasks.POST(":id/comments", s.handleCreateComment)
				tasks.GET(":id/comments/:comment_id", s.handleGetComment)
				tasks.DELETE(":id/comments/:comment_id", s.handleDeleteComment)
			}
		}
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

// respondFailure translates the service error taxonomy to HTTP statuses:
// validation maps to a 400 field-error body, denial to 403, missing rows
// (including missing referenced ids) to 404, everything else to 500.
func (s *Server) respondFailure(c *gin.Context, err error) {
	var fields service.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, fields)
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	case errors.Is(err, sqlite.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}
