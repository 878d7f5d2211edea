package service

import (
	"context"
	"strings"

	"kanmind/internal/models"
	"kanmind/internal/perm"
	"kanmind/internal/storage/sqlite"
)

// CommentService implements comments scoped to their task. Author and board
// are always derived on the server, never taken from the client.
type CommentService struct {
	store *sqlite.Store
}

// ListForTask returns a task's comments. The actor must belong to the
// task's board; admins bypass.
func (s *CommentService) ListForTask(ctx context.Context, actor models.User, taskID int64) ([]models.Comment, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Board.HasMember(actor.ID) && !actor.IsSuperuser {
		return nil, ErrForbidden
	}
	return s.store.ListCommentsForTask(ctx, taskID)
}

// Create adds a comment to the task with the actor recorded as author and
// the task's board denormalized onto the comment.
func (s *CommentService) Create(ctx context.Context, actor models.User, taskID int64, content string) (models.Comment, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.Comment{}, err
	}
	if !task.Board.HasMember(actor.ID) && !actor.IsSuperuser {
		return models.Comment{}, ErrForbidden
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, fieldError("content", "Content cannot be empty.")
	}

	return s.store.CreateComment(ctx, models.Comment{
		Content: content,
		TaskID:  task.ID,
		Board:   task.Board,
		Author:  actor,
	})
}

// Get retrieves a single comment, scoped to the task it was requested
// under: a comment id from another task is treated as missing.
func (s *CommentService) Get(ctx context.Context, actor models.User, taskID, id int64) (models.Comment, error) {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}
	if comment.TaskID != taskID {
		return models.Comment{}, sqlite.ErrNotFound
	}
	if !perm.Can(actor.Actor(), perm.ActionRead, comment) {
		return models.Comment{}, ErrForbidden
	}
	return comment, nil
}

// Delete removes a comment. Only its author or an admin may do so.
func (s *CommentService) Delete(ctx context.Context, actor models.User, taskID, id int64) error {
	comment, err := s.store.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.TaskID != taskID {
		return sqlite.ErrNotFound
	}
	if !perm.Can(actor.Actor(), perm.ActionDelete, comment) {
		return ErrForbidden
	}
	return s.store.DeleteComment(ctx, id)
}
