package service

import "errors"

// ErrProductNotFound is returned when an id does not reference an active
// (non-deleted) product.
var ErrProductNotFound = errors.New("product not found")

// ValidationError carries field-level validation failures keyed by field name.
// Each field maps to one or more human-readable messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// add appends a message to a field's error list.
func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}
