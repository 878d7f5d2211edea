package sqlite

import (
	"context"
	"fmt"

	"kanmind/internal/models"
)

// CreateBoard persists a new board. The owner is always stored as a member
// regardless of the supplied member list.
func (s *Store) CreateBoard(ctx context.Context, title, description string, ownerID int64, memberIDs []int64) (models.Board, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO boards(title, description, owner_id) VALUES(?, ?, ?)`, title, description, ownerID)
	if err != nil {
		return models.Board{}, fmt.Errorf("insert board: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Board{}, fmt.Errorf("board id: %w", err)
	}

	if err := s.insertMembers(ctx, id, ownerID, memberIDs); err != nil {
		return models.Board{}, err
	}
	return s.GetBoard(ctx, id)
}

// GetBoard fetches a board with its owner and member set hydrated.
func (s *Store) GetBoard(ctx context.Context, id int64) (models.Board, error) {
	var b models.Board
	var ownerID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, owner_id, created_at, updated_at FROM boards WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Description, &ownerID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Board{}, notFoundOr(err, "get board")
	}

	owner, err := s.UserByID(ctx, ownerID)
	if err != nil {
		return models.Board{}, err
	}
	b.Owner = owner

	memberIDs, err := s.memberIDs(ctx, id)
	if err != nil {
		return models.Board{}, err
	}
	b.Members, err = s.usersByIDs(ctx, memberIDs)
	if err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// ListBoardsForUser returns all boards where the user is owner or member.
func (s *Store) ListBoardsForUser(ctx context.Context, userID int64) ([]models.Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT b.id FROM boards b
         LEFT JOIN board_members m ON m.board_id = b.id
         WHERE b.owner_id = ? OR m.user_id = ?
         ORDER BY b.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan board id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	boards := make([]models.Board, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBoard(ctx, id)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// UpdateBoard applies the non-nil field changes to a board.
func (s *Store) UpdateBoard(ctx context.Context, id int64, title, description *string) (models.Board, error) {
	current, err := s.GetBoard(ctx, id)
	if err != nil {
		return models.Board{}, err
	}
	if title != nil {
		current.Title = *title
	}
	if description != nil {
		current.Description = *description
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE boards SET title = ?, description = ? WHERE id = ?`, current.Title, current.Description, id)
	if err != nil {
		return models.Board{}, fmt.Errorf("update board: %w", err)
	}
	return s.GetBoard(ctx, id)
}

// ReplaceMembers swaps the board's member set for the given one. The owner
// is force-reinserted so a member-list update can never remove them.
func (s *Store) ReplaceMembers(ctx context.Context, boardID int64, memberIDs []int64) error {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `SELECT owner_id FROM boards WHERE id = ?`, boardID).Scan(&ownerID)
	if err != nil {
		return notFoundOr(err, "get board owner")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM board_members WHERE board_id = ?`, boardID); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}
	return s.insertMembers(ctx, boardID, ownerID, memberIDs)
}

// DeleteBoard removes a board; tasks and comments cascade.
func (s *Store) DeleteBoard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
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

// BoardStats summarizes a board's tasks for list views.
type BoardStats struct {
	TicketCount   int
	ToDoCount     int
	HighPrioCount int
}

// StatsForBoard counts the board's tasks overall, in the to-do column and
// at high priority.
func (s *Store) StatsForBoard(ctx context.Context, boardID int64) (BoardStats, error) {
	var st BoardStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(CASE WHEN status = 'to-do' THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0)
         FROM tasks WHERE board_id = ?`, boardID).
		Scan(&st.TicketCount, &st.ToDoCount, &st.HighPrioCount)
	if err != nil {
		return BoardStats{}, fmt.Errorf("board stats: %w", err)
	}
	return st, nil
}

func (s *Store) insertMembers(ctx context.Context, boardID, ownerID int64, memberIDs []int64) error {
	ids := append([]int64{ownerID}, memberIDs...)
	for _, uid := range ids {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO board_members(board_id, user_id) VALUES(?, ?)`, boardID, uid)
		if err != nil {
			return fmt.Errorf("insert member: %w", err)
		}
	}
	return nil
}

func (s *Store) memberIDs(ctx context.Context, boardID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM board_members WHERE board_id = ? ORDER BY user_id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
