package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResource struct {
	ownership Ownership
}

func (f fakeResource) Ownership() Ownership {
	return f.ownership
}

func TestCanDecisionMatrix(t *testing.T) {
	res := fakeResource{ownership: Ownership{
		Owners:  NewUserSet(1),
		Editors: NewUserSet(2),
		Viewers: NewUserSet(3),
	}}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		want   bool
	}{
		{"owner reads", Actor{ID: 1}, ActionRead, true},
		{"owner writes", Actor{ID: 1}, ActionWrite, true},
		{"owner deletes", Actor{ID: 1}, ActionDelete, true},
		{"editor reads", Actor{ID: 2}, ActionRead, true},
		{"editor writes", Actor{ID: 2}, ActionWrite, true},
		{"editor cannot delete", Actor{ID: 2}, ActionDelete, false},
		{"viewer reads", Actor{ID: 3}, ActionRead, true},
		{"viewer cannot write", Actor{ID: 3}, ActionWrite, false},
		{"viewer cannot delete", Actor{ID: 3}, ActionDelete, false},
		{"stranger reads", Actor{ID: 4}, ActionRead, false},
		{"stranger writes", Actor{ID: 4}, ActionWrite, false},
		{"stranger deletes", Actor{ID: 4}, ActionDelete, false},
		{"admin stranger reads", Actor{ID: 4, Admin: true}, ActionRead, true},
		{"admin stranger writes", Actor{ID: 4, Admin: true}, ActionWrite, true},
		{"admin stranger deletes", Actor{ID: 4, Admin: true}, ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action, res))
		})
	}
}

func TestCanDeniesWithoutRelationships(t *testing.T) {
	empty := fakeResource{}
	actor := Actor{ID: 1}

	assert.False(t, Can(actor, ActionRead, empty))
	assert.False(t, Can(actor, ActionWrite, empty))
	assert.False(t, Can(actor, ActionDelete, empty))
}

func TestCanDeniesNilResource(t *testing.T) {
	assert.False(t, Can(Actor{ID: 1}, ActionRead, nil))
	assert.True(t, Can(Actor{ID: 1, Admin: true}, ActionRead, nil))
}

func TestUserSet(t *testing.T) {
	s := NewUserSet(1, 2)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(3))

	s.Add(3)
	assert.True(t, s.Has(3))

	var nilSet UserSet
	assert.False(t, nilSet.Has(1))
}
