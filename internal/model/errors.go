package model

import "fmt"

// SchemaError reports an entity that fails basic shape constraints.
// Loads and imports surface it as-is; the migrator never sees such data.
type SchemaError struct {
	Entity  string
	ID      string
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s %s", e.Entity, e.ID, e.Field, e.Message)
}

func schemaErr(entity, id, field, msg string) error {
	return &SchemaError{Entity: entity, ID: id, Field: field, Message: msg}
}
