package database

import "errors"

// Errors shared by every repository backend.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
	ErrConflict  = errors.New("document changed concurrently")
)

// Indexer is implemented by mongo repositories that own collection indexes.
type Indexer interface {
	EnsureIndexes() error
}
