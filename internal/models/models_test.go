package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kanmind/internal/perm"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		in    string
		first string
		last  string
	}{
		{"Alice Smith", "Alice", "Smith"},
		{"Alice", "Alice", ""},
		{"Alice van der Berg", "Alice", "van der Berg"},
		{"  Alice Smith  ", "Alice", "Smith"},
	}
	for _, tt := range tests {
		first, last := SplitFullName(tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.last, last, tt.in)
	}
}

func TestFullNameFallsBackToEmail(t *testing.T) {
	u := User{Email: "alice@example.com"}
	assert.Equal(t, "alice@example.com", u.FullName())

	u.FirstName = "Alice"
	assert.Equal(t, "Alice", u.FullName())

	u.LastName = "Smith"
	assert.Equal(t, "Alice Smith", u.FullName())
}

func TestBoardOwnership(t *testing.T) {
	owner := User{ID: 1}
	member := User{ID: 2}
	board := Board{Owner: owner, Members: []User{owner, member}}

	assert.True(t, perm.Can(owner.Actor(), perm.ActionDelete, board))
	assert.True(t, perm.Can(member.Actor(), perm.ActionWrite, board))
	assert.False(t, perm.Can(member.Actor(), perm.ActionDelete, board))
	assert.False(t, perm.Can(perm.Actor{ID: 9}, perm.ActionRead, board))
}

func TestTaskOwnership(t *testing.T) {
	owner := User{ID: 1}
	member := User{ID: 2}
	assignee := User{ID: 3}
	creator := User{ID: 4}
	board := Board{Owner: owner, Members: []User{owner, member, assignee, creator}}
	task := Task{Board: &board, Assigned: &assignee, CreatedBy: creator}

	// creator and board owner may delete, every other participant may not
	assert.True(t, perm.Can(creator.Actor(), perm.ActionDelete, task))
	assert.True(t, perm.Can(owner.Actor(), perm.ActionDelete, task))
	assert.False(t, perm.Can(assignee.Actor(), perm.ActionDelete, task))
	assert.False(t, perm.Can(member.Actor(), perm.ActionDelete, task))

	assert.True(t, perm.Can(assignee.Actor(), perm.ActionWrite, task))
	assert.True(t, perm.Can(member.Actor(), perm.ActionWrite, task))
	assert.False(t, perm.Can(perm.Actor{ID: 9}, perm.ActionRead, task))
}

func TestCommentOwnership(t *testing.T) {
	owner := User{ID: 1}
	member := User{ID: 2}
	author := User{ID: 3}
	board := Board{Owner: owner, Members: []User{owner, member, author}}
	comment := Comment{Author: author, Board: &board}

	assert.True(t, perm.Can(author.Actor(), perm.ActionDelete, comment))
	assert.True(t, perm.Can(author.Actor(), perm.ActionWrite, comment))

	// other board members may read but never modify or delete
	assert.True(t, perm.Can(member.Actor(), perm.ActionRead, comment))
	assert.False(t, perm.Can(member.Actor(), perm.ActionWrite, comment))
	assert.False(t, perm.Can(owner.Actor(), perm.ActionDelete, comment))
}

func TestDashboardOwnership(t *testing.T) {
	user := User{ID: 1}
	dashboard := Dashboard{User: user}

	assert.True(t, perm.Can(user.Actor(), perm.ActionRead, dashboard))
	assert.False(t, perm.Can(perm.Actor{ID: 2}, perm.ActionRead, dashboard))
}

func TestAdminActorBypassesOwnership(t *testing.T) {
	admin := User{ID: 9, IsSuperuser: true}
	board := Board{Owner: User{ID: 1}}

	assert.True(t, perm.Can(admin.Actor(), perm.ActionDelete, board))
}
