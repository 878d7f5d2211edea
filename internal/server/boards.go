package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanmind/internal/models"
	"kanmind/internal/service"
)

type boardRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Members     *[]int64 `json:"members"`
	// legacy alias kept for older clients
	MembersWrite *[]int64 `json:"members_write"`
}

func (r boardRequest) memberIDs() *[]int64 {
	if r.Members != nil {
		return r.Members
	}
	return r.MembersWrite
}

// handleListBoards returns the actor's boards with task statistics.
func (s *Server) handleListBoards(c *gin.Context) {
	actor := currentUser(c)
	boards, err := s.services.Boards.List(c.Request.Context(), actor)
	if err != nil {
		s.respondFailure(c, err)
		return
	}

	views := make([]gin.H, 0, len(boards))
	for _, b := range boards {
		stats, err := s.store.StatsForBoard(c.Request.Context(), b.ID)
		if err != nil {
			s.respondFailure(c, err)
			return
		}
		views = append(views, boardListView(b, stats))
	}
	c.JSON(http.StatusOK, views)
}

// handleCreateBoard creates a board owned by the actor.
func (s *Server) handleCreateBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	in := service.CreateBoardInput{}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if ids := req.memberIDs(); ids != nil {
		in.Members = *ids
	}

	board, err := s.services.Boards.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardDetailView(board, nil))
}

// handleGetBoard returns a board with its members and tasks.
func (s *Server) handleGetBoard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	board, err := s.services.Boards.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	s.respondBoardDetail(c, http.StatusOK, board)
}

// handleUpdateBoard applies a partial update, including member replacement.
func (s *Server) handleUpdateBoard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	board, err := s.services.Boards.Update(c.Request.Context(), currentUser(c), id, service.UpdateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Members:     req.memberIDs(),
	})
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	s.respondBoardDetail(c, http.StatusOK, board)
}

// handleDeleteBoard removes a board; its tasks and comments cascade.
func (s *Server) handleDeleteBoard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.services.Boards.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		s.respondFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) respondBoardDetail(c *gin.Context, status int, board models.Board) {
	tasks, err := s.store.ListTasksForBoard(c.Request.Context(), board.ID)
	if err != nil {
		s.respondFailure(c, err)
		return
	}
	c.JSON(status, boardDetailView(board, tasks))
}
