package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dashboardRequest struct {
	Title string `json:"title"`
}

// handleListDashboards returns the actor's own dashboards only.
func (s *Server) handleListDashboards(c *gin.Context) {
	dashboards, err := s.services.Dashboards.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	views := make([]gin.H, 0, len(dashboards))
	for _, d := range dashboards {
		views = append(views, dashboardView(d))
	}
	c.JSON(http.StatusOK, views)
}

// handleCreateDashboard adds a dashboard owned by the actor.
func (s *Server) handleCreateDashboard(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	dashboard, err := s.services.Dashboards.Create(c.Request.Context(), currentUser(c), req.Title)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, dashboardView(dashboard))
}
