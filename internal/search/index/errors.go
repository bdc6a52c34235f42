package index

import "errors"

var (
	// ErrLocked indicates another process holds the index lock past the timeout.
	ErrLocked = errors.New("index is locked by another process")
	// ErrVersionMismatch indicates the index was written by an incompatible version.
	ErrVersionMismatch = errors.New("index version mismatch")
)
