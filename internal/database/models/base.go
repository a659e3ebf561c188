package models

import (
	"time"

	"github.com/google/uuid"
)

// Visibility controls who can open a chat.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// DocumentKind is the editor a document is rendered with.
type DocumentKind string

const (
	DocumentKindText  DocumentKind = "text"
	DocumentKindSheet DocumentKind = "sheet"
)

// now returns the creation timestamp stored in "timestamp" columns.
// Postgres keeps microseconds, so rows that are later referenced by value
// (Document via Suggestion) must not carry more precision than that.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ensureID fills a random UUID key when the caller left it unset.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ensureCreatedAt stamps a zero creation time.
func ensureCreatedAt(t *time.Time) {
	if t.IsZero() {
		*t = now()
	}
}
