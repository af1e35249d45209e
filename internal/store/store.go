// Package store persists user accounts and generated content. Each concern
// has a MongoDB and a PostgreSQL implementation with identical behavior.
package store

import "errors"

// ErrNotFound is returned when a lookup by key matches nothing.
var ErrNotFound = errors.New("not found")

const (
	usersCollection    = "users"
	contentsCollection = "contents"
)
