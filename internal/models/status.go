package models

import (
	"fmt"
	"strings"
)

// Status is a task's position in the board workflow. Stored values are
// always canonical; legacy spellings are normalized at the boundary.
type Status string

const (
	StatusToDo       Status = "to-do"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// DefaultStatus is used when a task is created without an explicit status.
const DefaultStatus = StatusToDo

// legacy spellings still accepted by clients of the old API
var legacyStatuses = map[string]Status{
	"todo":        StatusToDo,
	"in_progress": StatusInProgress,
}

var validStatuses = map[Status]struct{}{
	StatusToDo:       {},
	StatusInProgress: {},
	StatusReview:     {},
	StatusDone:       {},
}

// ParseStatus normalizes a client-supplied status value to its canonical
// form. Legacy spellings "todo" and "in_progress" are accepted.
func ParseStatus(raw string) (Status, error) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := legacyStatuses[cleaned]; ok {
		return s, nil
	}
	s := Status(cleaned)
	if _, ok := validStatuses[s]; !ok {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return s, nil
}

// Priority is a task's urgency level. Input is case-insensitive; stored
// values are lowercase.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a task is created without an explicit priority.
const DefaultPriority = PriorityMedium

var validPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// ParsePriority normalizes a client-supplied priority value.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validPriorities[p]; !ok {
		return "", fmt.Errorf("invalid priority %q", raw)
	}
	return p, nil
}
