// Package models holds the domain entities of the kanban backend. There is
// one model per entity; endpoint-specific shaping happens in the server
// package, never here.
package models

import (
	"strings"
	"time"

	"kanmind/internal/perm"
)

// User is an account in the user directory.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// FullName joins first and last name, falling back to the email when both
// are empty.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Actor converts the user into the identity the permission engine consumes.
func (u User) Actor() perm.Actor {
	return perm.Actor{ID: u.ID, Admin: u.IsSuperuser}
}

// SplitFullName splits a display name on the first whitespace into a given
// name and a remainder-as-family-name. The remainder may be empty.
func SplitFullName(fullname string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(fullname), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}

// Board is a kanban board shared between its owner and members.
type Board struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       User      `json:"owner"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ownership grants the owner full control and every member read/write
// access. The owner is always part of the member set, but is listed as an
// owner here so that only they (or an admin) may delete the board.
func (b Board) Ownership() perm.Ownership {
	editors := perm.NewUserSet()
	for _, m := range b.Members {
		editors.Add(m.ID)
	}
	return perm.Ownership{
		Owners:  perm.NewUserSet(b.Owner.ID),
		Editors: editors,
	}
}

// HasMember reports whether the user belongs to the board, counting the
// owner as an implicit member.
func (b Board) HasMember(userID int64) bool {
	if b.Owner.ID == userID {
		return true
	}
	for _, m := range b.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Task is a work item on a board. The board reference is fixed at creation.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Details       string     `json:"details"`
	Board         *Board     `json:"board,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Assigned      *User      `json:"assigned,omitempty"`
	Reviewer      *User      `json:"reviewer,omitempty"`
	CreatedBy     User       `json:"created_by"`
	Status        Status     `json:"status"`
	Priority      Priority   `json:"priority"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Ownership grants the board owner and the task creator full control, and
// the assignee, the reviewer and every board member read/write access.
func (t Task) Ownership() perm.Ownership {
	owners := perm.NewUserSet(t.CreatedBy.ID)
	editors := perm.NewUserSet()
	if t.Assigned != nil {
		editors.Add(t.Assigned.ID)
	}
	if t.Reviewer != nil {
		editors.Add(t.Reviewer.ID)
	}
	if t.Board != nil {
		owners.Add(t.Board.Owner.ID)
		for _, m := range t.Board.Members {
			editors.Add(m.ID)
		}
	}
	return perm.Ownership{Owners: owners, Editors: editors}
}

// Comment is a remark on a task. Author and board are always derived from
// the request, never taken from the client.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	TaskID    int64     `json:"task"`
	Board     *Board    `json:"-"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Ownership restricts modification and deletion to the author while board
// members keep read access.
func (c Comment) Ownership() perm.Ownership {
	viewers := perm.NewUserSet()
	if c.Board != nil {
		viewers.Add(c.Board.Owner.ID)
		for _, m := range c.Board.Members {
			viewers.Add(m.ID)
		}
	}
	return perm.Ownership{
		Owners:  perm.NewUserSet(c.Author.ID),
		Viewers: viewers,
	}
}

// Dashboard is a personal, single-owner list entry.
type Dashboard struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	User  User   `json:"user"`
}

// Ownership grants the owning user full control and nobody else anything.
func (d Dashboard) Ownership() perm.Ownership {
	return perm.Ownership{Owners: perm.NewUserSet(d.User.ID)}
}
