package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kanmind/internal/models"
)

const dueDateLayout = "2006-01-02"

// CreateTask inserts a new task. Relationship ids are taken from the
// hydrated fields of the given task.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if t.Board == nil {
		return models.Task{}, fmt.Errorf("task has no board")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(board_id, title, details, due_date, assigned_id, reviewer_id, created_by_id, status, priority)
         VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Board.ID, t.Title, t.Details, dueDateValue(t.DueDate),
		userIDValue(t.Assigned), userIDValue(t.Reviewer), t.CreatedBy.ID, string(t.Status), string(t.Priority))
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask fetches a task with its board, assignee, reviewer and creator
// hydrated plus its comment count.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var (
		t          models.Task
		boardID    int64
		due        sql.NullString
		assignedID sql.NullInt64
		reviewerID sql.NullInt64
		creatorID  int64
		status     string
		priority   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT t.id, t.board_id, t.title, t.details, t.due_date, t.assigned_id, t.reviewer_id, t.created_by_id,
                t.status, t.priority, t.created_at, t.updated_at,
                (SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id)
         FROM tasks t WHERE t.id = ?`, id).
		Scan(&t.ID, &boardID, &t.Title, &t.Details, &due, &assignedID, &reviewerID, &creatorID,
			&status, &priority, &t.CreatedAt, &t.UpdatedAt, &t.CommentsCount)
	if err != nil {
		return models.Task{}, notFoundOr(err, "get task")
	}
	t.Status = models.Status(status)
	t.Priority = models.Priority(priority)

	if due.Valid {
		d, err := time.Parse(dueDateLayout, due.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse due date: %w", err)
		}
		t.DueDate = &d
	}

	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return models.Task{}, err
	}
	t.Board = &board

	creator, err := s.UserByID(ctx, creatorID)
	if err != nil {
		return models.Task{}, err
	}
	t.CreatedBy = creator

	if assignedID.Valid {
		u, err := s.UserByID(ctx, assignedID.Int64)
		if err != nil {
			return models.Task{}, err
		}
		t.Assigned = &u
	}
	if reviewerID.Valid {
		u, err := s.UserByID(ctx, reviewerID.Int64)
		if err != nil {
			return models.Task{}, err
		}
		t.Reviewer = &u
	}
	return t, nil
}

// ListTasksForUser returns tasks on boards where the user is owner or member.
func (s *Store) ListTasksForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.listTasks(ctx,
		`SELECT DISTINCT t.id FROM tasks t
         JOIN boards b ON b.id = t.board_id
         LEFT JOIN board_members m ON m.board_id = b.id
         WHERE b.owner_id = ? OR m.user_id = ?
         ORDER BY t.id`, userID, userID)
}

// ListTasksForBoard returns every task on the given board.
func (s *Store) ListTasksForBoard(ctx context.Context, boardID int64) ([]models.Task, error) {
	return s.listTasks(ctx, `SELECT id FROM tasks WHERE board_id = ? ORDER BY id`, boardID)
}

// ListTasksAssigned returns tasks assigned to the user.
func (s *Store) ListTasksAssigned(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.listTasks(ctx, `SELECT id FROM tasks WHERE assigned_id = ? ORDER BY id`, userID)
}

// ListTasksReviewing returns tasks the user reviews.
func (s *Store) ListTasksReviewing(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.listTasks(ctx, `SELECT id FROM tasks WHERE reviewer_id = ? ORDER BY id`, userID)
}

// UpdateTask rewrites the mutable columns of a task from the hydrated value.
// The board reference is deliberately not part of the statement.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, details = ?, due_date = ?, assigned_id = ?, reviewer_id = ?, status = ?, priority = ?
         WHERE id = ?`,
		t.Title, t.Details, dueDateValue(t.DueDate),
		userIDValue(t.Assigned), userIDValue(t.Reviewer), string(t.Status), string(t.Priority), t.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrNotFound
	}
	return s.GetTask(ctx, t.ID)
}

// DeleteTask removes a task; its comments cascade.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) listTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func dueDateValue(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dueDateLayout)
}

func userIDValue(u *models.User) any {
	if u == nil {
		return nil
	}
	return u.ID
}
