// Package perm decides whether an actor may read, modify or delete a
// resource. Resources describe their own ownership relationships through
// the Owned capability; the engine never inspects concrete entity types.
package perm

// Action classifies a request by its effect on the target resource.
type Action int

const (
	// ActionRead covers list and retrieve operations.
	ActionRead Action = iota
	// ActionWrite covers create and update operations.
	ActionWrite
	// ActionDelete covers destroy operations and requires elevated ownership.
	ActionDelete
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Actor identifies the authenticated user a permission decision is made for.
type Actor struct {
	ID    int64
	Admin bool
}

// UserSet is a set of user ids.
type UserSet map[int64]struct{}

// NewUserSet builds a set from the given ids.
func NewUserSet(ids ...int64) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id into the set.
func (s UserSet) Add(id int64) {
	s[id] = struct{}{}
}

// Has reports whether the id is in the set. A nil set contains nothing.
func (s UserSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Ownership lists every user relationship the engine recognizes.
//
// Owners hold full control: they may read, modify and delete the resource
// without admin rights. Editors may read and modify but not delete.
// Viewers may only read.
type Ownership struct {
	Owners  UserSet
	Editors UserSet
	Viewers UserSet
}

// Owned is implemented by every entity subject to permission checks.
type Owned interface {
	Ownership() Ownership
}

// Can reports whether the actor may perform the action on the resource.
//
// Admins pass every check. For everyone else the decision is derived
// purely from the resource's declared ownership sets; a resource that
// declares no relationships denies everything.
func Can(actor Actor, action Action, resource Owned) bool {
	if actor.Admin {
		return true
	}
	if resource == nil {
		return false
	}
	o := resource.Ownership()
	switch action {
	case ActionRead:
		return o.Owners.Has(actor.ID) || o.Editors.Has(actor.ID) || o.Viewers.Has(actor.ID)
	case ActionWrite:
		return o.Owners.Has(actor.ID) || o.Editors.Has(actor.ID)
	case ActionDelete:
		return o.Owners.Has(actor.ID)
	default:
		return false
	}
}
