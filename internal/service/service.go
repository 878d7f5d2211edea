// Package service implements the resource services of the kanban backend.
// Every operation receives the acting user explicitly, consults the
// permission engine before mutating anything and reports failures through
// the shared error taxonomy: FieldErrors for validation, ErrForbidden for
// authorization denials and the store's ErrNotFound for missing rows.
package service

import (
	"log/slog"

	"kanmind/internal/storage/sqlite"
)

// Services bundles the per-resource services over a shared store.
type Services struct {
	Accounts   *AccountService
	Boards     *BoardService
	Tasks      *TaskService
	Comments   *CommentService
	Dashboards *DashboardService
}

// New wires all resource services to the store.
func New(store *sqlite.Store, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	return &Services{
		Accounts:   &AccountService{store: store, logger: logger},
		Boards:     &BoardService{store: store},
		Tasks:      &TaskService{store: store},
		Comments:   &CommentService{store: store},
		Dashboards: &DashboardService{store: store},
	}
}
