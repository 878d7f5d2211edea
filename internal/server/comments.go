package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// commentRequest binds only the content field: author and board are always
// derived on the server, so spoofed values in the payload are ignored.
type commentRequest struct {
	Content string `json:"content"`
}

// handleListComments returns a task's comments.
func (s *Server) handleListComments(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := s.services.Comments.ListForTask(c.Request.Context(), currentUser(c), taskID)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	views := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView(comment))
	}
	c.JSON(http.StatusOK, views)
}

// handleCreateComment adds a comment authored by the actor.
func (s *Server) handleCreateComment(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	comment, err := s.services.Comments.Create(c.Request.Context(), currentUser(c), taskID, req.Content)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentView(comment))
}

// handleGetComment returns a single comment scoped to its task.
func (s *Server) handleGetComment(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := s.services.Comments.Get(c.Request.Context(), currentUser(c), taskID, commentID)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, commentView(comment))
}

// handleDeleteComment removes a comment; only its author or an admin may.
func (s *Server) handleDeleteComment(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	if err := s.services.Comments.Delete(c.Request.Context(), currentUser(c), taskID, commentID); err != nil {
		s.respondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
