package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an update or delete targets an unknown id.
	ErrNotFound = errors.New("item not found")
	// ErrValidation is returned for empty titles and empty patches.
	ErrValidation = errors.New("invalid item")
)

// Item is one todo entry. ID is assigned by the database and never changes.
type Item struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Query narrows ListItems. The zero Query matches every item.
type Query struct {
	Completed *bool
}

// Patch carries the fields UpdateItem should change. Nil fields are left alone.
type Patch struct {
	Title     *string
	Completed *bool
}

func (p Patch) empty() bool {
	return p.Title == nil && p.Completed == nil
}

// Counts aggregates the whole collection regardless of any filter.
type Counts struct {
	Active    int
	Completed int
	Total     int
}

// Bool returns a pointer to b, for building queries and patches.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }
