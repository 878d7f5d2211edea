package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrForbidden is returned when an authenticated actor is not permitted to
// perform the requested operation.
var ErrForbidden = errors.New("forbidden")

// FieldErrors is a field-keyed validation error map. No mutation happens
// once a FieldErrors is returned.
type FieldErrors map[string][]string

// Error renders the map deterministically for logs.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, strings.Join(e[f], ", "))
	}
	return "validation failed: " + b.String()
}

func fieldError(field, message string) FieldErrors {
	return FieldErrors{field: {message}}
}
