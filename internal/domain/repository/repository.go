package repository

import "errors"

// ErrNotFound is returned by all repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")
