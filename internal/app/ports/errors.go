package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrCorruptRecord marks a stored record whose fields cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)
