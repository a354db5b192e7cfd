package service

import "fmt"

// ReferenceError reports a required foreign identifier that does not resolve
// to a live record. Raised before any mutation is applied.
type ReferenceError struct {
	Entity string
	Field  string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %q does not reference an existing record", e.Entity, e.Field, e.ID)
}

// IntegrityError reports a delete that would leave dependent records
// dangling. Raised before any mutation is applied.
type IntegrityError struct {
	Entity     string
	ID         string
	Dependents string
	Count      int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: %d %s still reference it", e.Entity, e.ID, e.Count, e.Dependents)
}
