package sqlite

import (
	"context"
	"fmt"

	"kanmind/internal/models"
)

// CreateComment inserts a new comment. Author and board ids are taken from
// the hydrated fields; callers derive them server-side.
func (s *Store) CreateComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	if c.Board == nil {
		return models.Comment{}, fmt.Errorf("comment has no board")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments(content, task_id, board_id, author_id) VALUES(?, ?, ?, ?)`,
		c.Content, c.TaskID, c.Board.ID, c.Author.ID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Comment{}, fmt.Errorf("comment id: %w", err)
	}
	return s.GetComment(ctx, id)
}

// GetComment fetches a comment with its author and board hydrated.
func (s *Store) GetComment(ctx context.Context, id int64) (models.Comment, error) {
	var (
		c        models.Comment
		boardID  int64
		authorID int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content, task_id, board_id, author_id, created_at FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.Content, &c.TaskID, &boardID, &authorID, &c.CreatedAt)
	if err != nil {
		return models.Comment{}, notFoundOr(err, "get comment")
	}

	author, err := s.UserByID(ctx, authorID)
	if err != nil {
		return models.Comment{}, err
	}
	c.Author = author

	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return models.Comment{}, err
	}
	c.Board = &board
	return c, nil
}

// ListCommentsForTask returns a task's comments in creation order.
func (s *Store) ListCommentsForTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM comments WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan comment id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		c, err := s.GetComment(ctx, id)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// DeleteComment removes a comment by id.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
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
