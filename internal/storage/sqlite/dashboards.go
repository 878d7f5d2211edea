package sqlite

import (
	"context"
	"fmt"

	"kanmind/internal/models"
)

// CreateDashboard inserts a new dashboard owned by the given user.
func (s *Store) CreateDashboard(ctx context.Context, title string, userID int64) (models.Dashboard, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO dashboards(title, user_id) VALUES(?, ?)`, title, userID)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("insert dashboard: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("dashboard id: %w", err)
	}
	return s.GetDashboard(ctx, id)
}

// GetDashboard fetches a dashboard with its owner hydrated.
func (s *Store) GetDashboard(ctx context.Context, id int64) (models.Dashboard, error) {
	var d models.Dashboard
	var userID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, user_id FROM dashboards WHERE id = ?`, id).
		Scan(&d.ID, &d.Title, &userID)
	if err != nil {
		return models.Dashboard{}, notFoundOr(err, "get dashboard")
	}

	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}
	d.User = user
	return d, nil
}

// ListDashboardsForUser returns the dashboards owned by the user.
func (s *Store) ListDashboardsForUser(ctx context.Context, userID int64) ([]models.Dashboard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM dashboards WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dashboard id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dashboards := make([]models.Dashboard, 0, len(ids))
	for _, id := range ids {
		d, err := s.GetDashboard(ctx, id)
		if err != nil {
			return nil, err
		}
		dashboards = append(dashboards, d)
	}
	return dashboards, nil
}
