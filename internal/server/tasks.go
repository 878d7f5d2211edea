package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanmind/internal/service"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Board       *int64  `json:"board"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *int64  `json:"assignee_id"`
	ReviewerID  *int64  `json:"reviewer_id"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// handleListTasks returns tasks on boards the actor belongs to.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.services.Tasks.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListView(tasks))
}

// handleAssignedTasks returns tasks assigned to the actor.
func (s *Server) handleAssignedTasks(c *gin.Context) {
	tasks, err := s.services.Tasks.AssignedToMe(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListView(tasks))
}

// handleReviewingTasks returns tasks the actor reviews.
func (s *Server) handleReviewingTasks(c *gin.Context) {
	tasks, err := s.services.Tasks.Reviewing(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListView(tasks))
}

// handleCreateTask creates a task on a board the actor belongs to.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	in := service.CreateTaskInput{
		Description: req.Description,
		BoardID:     req.Board,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}

	task, err := s.services.Tasks.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskView(task))
}

// handleGetTask returns a single task.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.services.Tasks.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, taskView(task))
}

// handleUpdateTask applies a partial update; the board field is immutable.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.services.Tasks.Update(c.Request.Context(), currentUser(c), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		BoardID:     req.Board,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, taskView(task))
}

// handleDeleteTask removes a task; its comments cascade.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.services.Tasks.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		s.respondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
