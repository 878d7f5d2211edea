package service

import (
	"context"
	"strings"

	"kanmind/internal/models"
	"kanmind/internal/perm"
	"kanmind/internal/storage/sqlite"
)

// BoardService implements board CRUD with membership-based access control.
type BoardService struct {
	store *sqlite.Store
}

// CreateBoardInput carries the board creation payload. Members are user ids.
type CreateBoardInput struct {
	Title       string
	Description string
	Members     []int64
}

// UpdateBoardInput carries a partial board update. Nil fields are untouched.
// A non-nil Members slice replaces the whole member set.
type UpdateBoardInput struct {
	Title       *string
	Description *string
	Members     *[]int64
}

// List returns the boards where the actor is owner or member.
func (s *BoardService) List(ctx context.Context, actor models.User) ([]models.Board, error) {
	return s.store.ListBoardsForUser(ctx, actor.ID)
}

// Create makes the actor the owner of a new board. The owner is always part
// of the resulting member set.
func (s *BoardService) Create(ctx context.Context, actor models.User, in CreateBoardInput) (models.Board, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Board{}, fieldError("title", "Title cannot be empty.")
	}
	if err := s.verifyUsersExist(ctx, in.Members); err != nil {
		return models.Board{}, err
	}
	return s.store.CreateBoard(ctx, title, in.Description, actor.ID, in.Members)
}

// Get retrieves a board the actor may read. Non-members of an existing
// board see a forbidden failure, not a missing one.
func (s *BoardService) Get(ctx context.Context, actor models.User, id int64) (models.Board, error) {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return models.Board{}, err
	}
	if !perm.Can(actor.Actor(), perm.ActionRead, board) {
		return models.Board{}, ErrForbidden
	}
	return board, nil
}

// Update applies a partial update. Replacing the member set force-reinserts
// the owner so they can never be removed this way.
func (s *BoardService) Update(ctx context.Context, actor models.User, id int64, in UpdateBoardInput) (models.Board, error) {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return models.Board{}, err
	}
	if !perm.Can(actor.Actor(), perm.ActionWrite, board) {
		return models.Board{}, ErrForbidden
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return models.Board{}, fieldError("title", "Title cannot be empty.")
	}
	if in.Members != nil {
		if err := s.verifyUsersExist(ctx, *in.Members); err != nil {
			return models.Board{}, err
		}
	}

	if in.Members != nil {
		if err := s.store.ReplaceMembers(ctx, id, *in.Members); err != nil {
			return models.Board{}, err
		}
	}

	var title *string
	if in.Title != nil {
		cleaned := strings.TrimSpace(*in.Title)
		title = &cleaned
	}
	return s.store.UpdateBoard(ctx, id, title, in.Description)
}

// Delete removes a board. Only the owner or an admin may do so; tasks and
// comments cascade.
func (s *BoardService) Delete(ctx context.Context, actor models.User, id int64) error {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return err
	}
	if !perm.Can(actor.Actor(), perm.ActionDelete, board) {
		return ErrForbidden
	}
	return s.store.DeleteBoard(ctx, id)
}

func (s *BoardService) verifyUsersExist(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.store.UserByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
