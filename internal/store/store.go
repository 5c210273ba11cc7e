package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no wish has the requested id.
	ErrNotFound = errors.New("wish not found")
	// ErrConflict is returned when an inserted id already exists.
	ErrConflict = errors.New("wish id already exists")
)

// Wish is a persisted guestbook entry. PasswordDigest never leaves the
// store and service layers.
type Wish struct {
	ID             string
	Name           string
	Message        string
	PasswordDigest string
	CreatedAt      time.Time
}

// Store handles wish persistence. Implementations must be safe for
// concurrent callers; in particular, concurrent deletes of the same id
// must report success to exactly one caller.
type Store interface {
	// ListAll returns every wish, newest first.
	ListAll(ctx context.Context) ([]*Wish, error)

	// Insert persists a new wish. Returns ErrConflict if the id is taken.
	Insert(ctx context.Context, wish *Wish) error

	// FindByID retrieves a wish by id. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id string) (*Wish, error)

	// DeleteByID removes a wish by id. Returns ErrNotFound if absent.
	DeleteByID(ctx context.Context, id string) error

	// Close closes the underlying database connection.
	Close() error
}
