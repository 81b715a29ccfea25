package model

import (
	"strings"
	"time"
)

// Minute-of-day bounds for schedules. Start is inclusive, end may be midnight.
const (
	MinStartMin = 0
	MaxStartMin = 1439
	MinEndMin   = 1
	MaxEndMin   = 1440
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidMinutes reports whether startMin/endMin form a non-empty span of a day.
func ValidMinutes(startMin, endMin int) bool {
	return startMin >= MinStartMin && startMin <= MaxStartMin &&
		endMin >= MinEndMin && endMin <= MaxEndMin &&
		endMin > startMin
}

func validRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 5)
}

func requireID(entity, id string) error {
	if !nonEmpty(id) {
		return schemaErr(entity, id, "id", "is required")
	}
	return nil
}

func requireTime(entity, id, field string, t time.Time) error {
	if t.IsZero() {
		return schemaErr(entity, id, field, "is required")
	}
	return nil
}
