package service

import (
	"context"
	"strings"
	"time"

	"kanmind/internal/models"
	"kanmind/internal/perm"
	"kanmind/internal/storage/sqlite"
)

// TaskService implements task CRUD. Tasks are bound to their board at
// creation; the board reference never changes afterwards.
type TaskService struct {
	store *sqlite.Store
}

// CreateTaskInput carries the task creation payload.
type CreateTaskInput struct {
	Title       string
	Description *string
	BoardID     *int64
	DueDate     *string
	AssigneeID  *int64
	ReviewerID  *int64
	Status      *string
	Priority    *string
}

// UpdateTaskInput carries a partial task update. Nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	BoardID     *int64
	DueDate     *string
	AssigneeID  *int64
	ReviewerID  *int64
	Status      *string
	Priority    *string
}

// List returns tasks on boards where the actor is owner or member.
func (s *TaskService) List(ctx context.Context, actor models.User) ([]models.Task, error) {
	return s.store.ListTasksForUser(ctx, actor.ID)
}

// AssignedToMe returns tasks assigned to the actor.
func (s *TaskService) AssignedToMe(ctx context.Context, actor models.User) ([]models.Task, error) {
	return s.store.ListTasksAssigned(ctx, actor.ID)
}

// Reviewing returns tasks the actor reviews.
func (s *TaskService) Reviewing(ctx context.Context, actor models.User) ([]models.Task, error) {
	return s.store.ListTasksReviewing(ctx, actor.ID)
}

// Create validates and persists a new task. The actor must be a member or
// the owner of the target board; admins bypass that gate. Assignee and
// reviewer, when given, must themselves belong to the board.
func (s *TaskService) Create(ctx context.Context, actor models.User, in CreateTaskInput) (models.Task, error) {
	if in.BoardID == nil {
		return models.Task{}, fieldError("board", "Board is required.")
	}
	board, err := s.store.GetBoard(ctx, *in.BoardID)
	if err != nil {
		return models.Task{}, err
	}
	if !board.HasMember(actor.ID) && !actor.IsSuperuser {
		return models.Task{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, fieldError("title", "Title cannot be empty.")
	}

	task := models.Task{
		Title:     title,
		Board:     &board,
		CreatedBy: actor,
		Status:    models.DefaultStatus,
		Priority:  models.DefaultPriority,
	}
	if in.Description != nil {
		task.Details = *in.Description
	}

	if in.Status != nil {
		status, err := models.ParseStatus(*in.Status)
		if err != nil {
			return models.Task{}, fieldError("status", "Select a valid status.")
		}
		task.Status = status
	}
	if in.Priority != nil {
		priority, err := models.ParsePriority(*in.Priority)
		if err != nil {
			return models.Task{}, fieldError("priority", "Select a valid priority.")
		}
		task.Priority = priority
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		task.DueDate = due
	}

	if in.AssigneeID != nil {
		task.Assigned, err = s.boardParticipant(ctx, board, *in.AssigneeID, "assignee_id")
		if err != nil {
			return models.Task{}, err
		}
	}
	if in.ReviewerID != nil {
		task.Reviewer, err = s.boardParticipant(ctx, board, *in.ReviewerID, "reviewer_id")
		if err != nil {
			return models.Task{}, err
		}
	}

	return s.store.CreateTask(ctx, task)
}

// Get retrieves a task the actor may read.
func (s *TaskService) Get(ctx context.Context, actor models.User, id int64) (models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !perm.Can(actor.Actor(), perm.ActionRead, task) {
		return models.Task{}, ErrForbidden
	}
	return task, nil
}

// Update applies a partial update. A board change is rejected outright.
func (s *TaskService) Update(ctx context.Context, actor models.User, id int64, in UpdateTaskInput) (models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !perm.Can(actor.Actor(), perm.ActionWrite, task) {
		return models.Task{}, ErrForbidden
	}

	if in.BoardID != nil && *in.BoardID != task.Board.ID {
		return models.Task{}, fieldError("board", "Board cannot be changed after creation.")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return models.Task{}, fieldError("title", "Title cannot be empty.")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Details = *in.Description
	}
	if in.Status != nil {
		status, err := models.ParseStatus(*in.Status)
		if err != nil {
			return models.Task{}, fieldError("status", "Select a valid status.")
		}
		task.Status = status
	}
	if in.Priority != nil {
		priority, err := models.ParsePriority(*in.Priority)
		if err != nil {
			return models.Task{}, fieldError("priority", "Select a valid priority.")
		}
		task.Priority = priority
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		task.DueDate = due
	}
	if in.AssigneeID != nil {
		task.Assigned, err = s.boardParticipant(ctx, *task.Board, *in.AssigneeID, "assignee_id")
		if err != nil {
			return models.Task{}, err
		}
	}
	if in.ReviewerID != nil {
		task.Reviewer, err = s.boardParticipant(ctx, *task.Board, *in.ReviewerID, "reviewer_id")
		if err != nil {
			return models.Task{}, err
		}
	}

	return s.store.UpdateTask(ctx, task)
}

// Delete removes a task. Only the board owner, the task creator or an
// admin may do so; comments cascade.
func (s *TaskService) Delete(ctx context.Context, actor models.User, id int64) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if !perm.Can(actor.Actor(), perm.ActionDelete, task) {
		return ErrForbidden
	}
	return s.store.DeleteTask(ctx, id)
}

// boardParticipant resolves a user id that must belong to the board. An
// unknown id surfaces as not-found; a known non-member as a field error.
func (s *TaskService) boardParticipant(ctx context.Context, board models.Board, id int64, field string) (*models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !board.HasMember(user.ID) {
		return nil, fieldError(field, "User must be a member of the board.")
	}
	return &user, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	due, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fieldError("due_date", "Enter a valid date in YYYY-MM-DD format.")
	}
	return &due, nil
}
