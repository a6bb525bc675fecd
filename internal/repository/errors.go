package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is owned by a
// different user; the two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("record not found")
