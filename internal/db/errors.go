package db

import "errors"

var (
	// ErrNotFound signals the target row does not exist (or is outside the
	// caller's municipality scope).
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a lost status race: the guarded update matched no
	// row because another actor moved the ticket first.
	ErrConflict = errors.New("conflicting ticket state")
)
