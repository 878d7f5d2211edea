package service

import (
	"context"
	"strings"

	"kanmind/internal/models"
	"kanmind/internal/storage/sqlite"
)

// DashboardService implements the personal dashboard list.
type DashboardService struct {
	store *sqlite.Store
}

// List returns only the actor's own dashboards.
func (s *DashboardService) List(ctx context.Context, actor models.User) ([]models.Dashboard, error) {
	return s.store.ListDashboardsForUser(ctx, actor.ID)
}

// Create adds a dashboard owned by the actor.
func (s *DashboardService) Create(ctx context.Context, actor models.User, title string) (models.Dashboard, error) {
	cleaned := strings.TrimSpace(title)
	if cleaned == "" {
		return models.Dashboard{}, fieldError("title", "Title cannot be empty.")
	}
	return s.store.CreateDashboard(ctx, cleaned, actor.ID)
}
