package repositories

import "errors"

// Sentinel errors translated from driver errors so callers never match on
// mongo internals.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
